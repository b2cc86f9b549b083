package handler_test

import (
	"context"
	"io/ioutil"
	"os"
	"testing"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/m-mizutani/gasession/internal/config"
	"github.com/m-mizutani/gasession/internal/mock"
	"github.com/m-mizutani/gasession/pkg/handler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTargetDate(t *testing.T) {
	t.Run("Previous day of scheduled event", func(tt *testing.T) {
		args := handler.Arguments{
			Event: events.CloudWatchEvent{
				DetailType: "Scheduled Event",
				Time:       time.Date(2020, 1, 3, 1, 30, 0, 0, time.UTC),
			},
		}

		date, err := args.TargetDate()
		require.NoError(tt, err)
		assert.Equal(tt, time.Date(2020, 1, 2, 0, 0, 0, 0, time.UTC), date)
	})

	t.Run("No time in event", func(tt *testing.T) {
		args := handler.Arguments{Event: map[string]interface{}{"source": "aws.events"}}
		_, err := args.TargetDate()
		assert.Error(tt, err)
	})
}

func TestNewArguments(t *testing.T) {
	fd, err := ioutil.TempFile("", "*.yaml")
	require.NoError(t, err)
	defer os.Remove(fd.Name())
	fd.Write([]byte("source: {bucket: a}\ndestination: {bucket: b}\n"))
	fd.Close()

	t.Run("Load config by CONFIG_PATH", func(tt *testing.T) {
		os.Setenv("CONFIG_PATH", fd.Name())
		defer os.Unsetenv("CONFIG_PATH")

		args, err := handler.NewArguments(nil)
		require.NoError(tt, err)
		assert.Equal(tt, "a", args.Config.Source.Bucket)
		assert.Equal(tt, fd.Name(), args.ConfigPath)
	})

	t.Run("CONFIG_PATH is required", func(tt *testing.T) {
		os.Unsetenv("CONFIG_PATH")
		_, err := handler.NewArguments(nil)
		assert.Error(tt, err)
	})
}

func TestArgumentsServices(t *testing.T) {
	cfg, err := config.Parse([]byte("source: {bucket: a}\ndestination: {bucket: b}\nformat: xml\n"))
	require.NoError(t, err)

	args := handler.Arguments{Config: cfg, NewS3: mock.NewS3Client}
	_, err = args.RecordService()
	assert.Error(t, err)

	t.Run("No visitor service without hasher", func(tt *testing.T) {
		svc, err := args.VisitorService(context.Background())
		require.NoError(tt, err)
		assert.Nil(tt, svc)
	})

	t.Run("Visitor service with injected hasher", func(tt *testing.T) {
		args := handler.Arguments{Config: cfg, Hasher: &mock.VisitorHasher{}, NewTimer: mock.NewRetryTimer}
		svc, err := args.VisitorService(context.Background())
		require.NoError(tt, err)
		require.NotNil(tt, svc)
		assert.Equal(tt, "fv-1.2", svc.FullVisitorID(context.Background(), "1.2", "UA-1"))
	})
}
