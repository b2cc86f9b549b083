package sessionizer_test

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/gasession/internal/config"
	"github.com/m-mizutani/gasession/internal/mock"
	"github.com/m-mizutani/gasession/internal/service"
	"github.com/m-mizutani/gasession/pkg/handler"
	"github.com/m-mizutani/gasession/pkg/models"
	"github.com/m-mizutani/gasession/pkg/sessionizer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const hitRows = `{"cd5":"s1","cid":"111.222","tid":"UA-1","t":"pageview","dl":"https://example.com/a?x=1","timestamp":"2020-01-02T00:00:01Z"}
{"cd5":"s1","cid":"111.222","tid":"UA-1","t":"timing","timestamp":"2020-01-02T00:00:02Z"}
{"cd5":"s1","cid":"111.222","tid":"UA-1","t":"event","ec":"nav","ea":"click","timestamp":"2020-01-02T00:00:09Z"}
{"cd5":"s2","cid":"333.444","tid":"UA-1","t":"pageview","dl":"https://example.com/b","timestamp":"2020-01-02T00:01:00Z"}
{"cid":"555.666","tid":"UA-1","t":"pageview","timestamp":"2020-01-02T00:02:00Z"}
`

type testEnv struct {
	args   handler.Arguments
	sqs    *mock.SQSClient
	athena *mock.AthenaClient
	src    string
	dst    string
}

func newTestEnv(t *testing.T) *testEnv {
	env := &testEnv{
		sqs:    &mock.SQSClient{},
		athena: &mock.AthenaClient{},
		src:    uuid.New().String(),
		dst:    uuid.New().String(),
	}

	cfg, err := config.Parse([]byte(`
source: {bucket: ` + env.src + `, prefix: hits/}
destination: {bucket: ` + env.dst + `, prefix: ga/}
athena: {database: ga, output: "s3://athena/output/"}
notify_queue_url: https://sqs.ap-northeast-1.amazonaws.com/123456789012/notify
workers: 2
`))
	require.NoError(t, err)

	env.args = handler.Arguments{
		Config:     cfg,
		NewS3:      mock.NewS3Client,
		NewSQS:     mock.NewSQSClientFactory(env.sqs),
		NewAthena:  mock.NewAthenaClientFactory(env.athena),
		NewTimer:   mock.NewRetryTimer,
		Classifier: &mock.UserAgentClassifier{},
		Hasher:     &mock.VisitorHasher{},
	}
	return env
}

func TestSessionizerJob(t *testing.T) {
	date := time.Date(2020, 1, 2, 12, 0, 0, 0, time.UTC)

	t.Run("Sessionize hits of the date", func(tt *testing.T) {
		env := newTestEnv(tt)
		client := mock.NewS3Client("ap-northeast-1")
		require.NoError(tt, client.Upload(env.src, "hits/dt=2020-01-02/0001.json", strings.NewReader(hitRows), ""))

		job, err := sessionizer.New(context.Background(), env.args, date)
		require.NoError(tt, err)
		require.NoError(tt, job.Execute(context.Background()))

		records := job.Result().Records
		require.Equal(tt, 2, len(records))
		assert.Equal(tt, "s1", records[0].VisitID)
		assert.Equal(tt, "fv-111.222", records[0].FullVisitorID)
		assert.Equal(tt, 2, len(records[0].Hits))
		assert.Equal(tt, "2020-01-02", records[0].Date)
		assert.Equal(tt, "s2", records[1].VisitID)

		// sessions and summary
		outputs := job.Outputs()
		require.Equal(tt, 2, len(outputs))
		assert.Equal(tt, 2, len(env.athena.Queries))

		recordService, err := env.args.RecordService()
		require.NoError(tt, err)
		ch := make(chan *models.SessionRecord, 8)
		require.NoError(tt, recordService.Load(*outputs[0].Object(), ch))
		close(ch)
		assert.Equal(tt, 2, len(ch))

		require.Equal(tt, 1, len(env.sqs.Input))
		var q models.SessionQueue
		require.NoError(tt, json.Unmarshal([]byte(*env.sqs.Input[0].MessageBody), &q))
		assert.Equal(tt, "2020-01-02", q.Date)
		assert.Equal(tt, 2, q.Sessions)
		assert.Equal(tt, 3, q.Hits)
		assert.Equal(tt, 1, q.Dropped)
		assert.Equal(tt, 2, len(q.Objects))
	})

	t.Run("No hit object for the date", func(tt *testing.T) {
		env := newTestEnv(tt)

		job, err := sessionizer.New(context.Background(), env.args, date)
		require.NoError(tt, err)

		err = job.Execute(context.Background())
		require.Error(tt, err)
		assert.Contains(tt, err.Error(), sessionizer.ErrNoHitObject.Error())
		assert.Equal(tt, 0, len(env.sqs.Input))
		assert.Equal(tt, 0, len(env.athena.Queries))
	})

	t.Run("Invalid filter", func(tt *testing.T) {
		env := newTestEnv(tt)
		env.args.Config.Filter = ".t =="
		_, err := sessionizer.New(context.Background(), env.args, date)
		assert.Error(tt, err)
	})

	t.Run("Summary rows are readable", func(tt *testing.T) {
		env := newTestEnv(tt)
		env.args.Config.Athena.Database = ""
		client := mock.NewS3Client("ap-northeast-1")
		require.NoError(tt, client.Upload(env.src, "hits/dt=2020-01-02/0001.json", strings.NewReader(hitRows), ""))

		job, err := sessionizer.New(context.Background(), env.args, date)
		require.NoError(tt, err)
		require.NoError(tt, job.Execute(context.Background()))
		assert.Equal(tt, 0, len(env.athena.Queries))

		summary := job.Outputs()[1]
		assert.True(tt, strings.HasPrefix(summary.Object().Key, "ga/summary/dt=2020-01-02/"))

		body, err := service.NewS3Service(mock.NewS3Client).AsyncDownload(*summary.Object())
		require.NoError(tt, err)
		body.Close()
	})
}
