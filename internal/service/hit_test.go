package service_test

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/m-mizutani/gasession/internal/mock"
	"github.com/m-mizutani/gasession/internal/service"
	"github.com/m-mizutani/gasession/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHitFilter(t *testing.T) {
	t.Run("Default filter drops timing hits", func(tt *testing.T) {
		filter, err := service.NewHitFilter("")
		require.NoError(tt, err)

		pv := models.NewHit(testDate, map[string]interface{}{"t": "pageview"})
		timing := models.NewHit(testDate, map[string]interface{}{"t": "timing"})
		adtiming := models.NewHit(testDate, map[string]interface{}{"t": "adtiming"})

		ok, err := filter.Match(pv)
		require.NoError(tt, err)
		assert.True(tt, ok)

		ok, err = filter.Match(timing)
		require.NoError(tt, err)
		assert.False(tt, ok)

		ok, err = filter.Match(adtiming)
		require.NoError(tt, err)
		assert.False(tt, ok)
	})

	t.Run("null result does not match", func(tt *testing.T) {
		filter, err := service.NewHitFilter(".ni")
		require.NoError(tt, err)

		ok, err := filter.Match(models.NewHit(testDate, map[string]interface{}{"t": "event"}))
		require.NoError(tt, err)
		assert.False(tt, ok)
	})

	t.Run("Invalid expression", func(tt *testing.T) {
		_, err := service.NewHitFilter(".t ==")
		assert.Error(tt, err)
	})
}

func TestHitServiceLoad(t *testing.T) {
	bucket := uuid.New().String()
	client := mock.NewS3Client("ap-northeast-1")

	obj1 := `{"cd5":"s1","t":"pageview","timestamp":"2020-01-02T00:00:01Z"}
{"cd5":"s1","t":"timing","timestamp":"2020-01-02T00:00:02Z"}
`
	obj2 := `{"cd5":"s2","t":"event","timestamp":"2020-01-02T00:00:03Z"}`
	require.NoError(t, client.Upload(bucket, "hits/dt=2020-01-02/0001.json", strings.NewReader(obj1), ""))
	require.NoError(t, client.Upload(bucket, "hits/dt=2020-01-02/0002.json", strings.NewReader(obj2), ""))
	require.NoError(t, client.Upload(bucket, "hits/dt=2020-01-03/0001.json", strings.NewReader(obj2), ""))

	filter, err := service.NewHitFilter("")
	require.NoError(t, err)
	svc := service.NewHitService(mock.NewS3Client, filter)

	base := models.NewS3Object("ap-northeast-1", bucket, "hits/")
	result, err := svc.Load(context.Background(), base, testDate)
	require.NoError(t, err)

	assert.Equal(t, 2, len(result.Objects))
	assert.Equal(t, 1, result.Filtered)
	require.Equal(t, 2, len(result.Hits))
	key, _ := result.Hits[0].String(models.FieldCustomDimension, 5)
	assert.Equal(t, "s1", key)
	key, _ = result.Hits[1].String(models.FieldCustomDimension, 5)
	assert.Equal(t, "s2", key)

	t.Run("Broken line fails loading", func(tt *testing.T) {
		broken := models.NewS3Object("ap-northeast-1", uuid.New().String(), "hits/")
		require.NoError(tt, client.Upload(broken.Bucket, "hits/dt=2020-01-02/0001.json", strings.NewReader("{\"t\":\n"), ""))
		_, err := svc.Load(context.Background(), broken, testDate)
		assert.Error(tt, err)
	})
}
