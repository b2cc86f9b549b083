package service_test

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/m-mizutani/gasession/internal/mock"
	"github.com/m-mizutani/gasession/internal/service"
	"github.com/m-mizutani/gasession/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummaryWriter(t *testing.T) {
	svc := service.NewSummaryService(mock.NewS3Client)
	w, err := svc.NewSummaryWriter()
	require.NoError(t, err)
	defer w.Delete()

	r1 := newTestRecord("s1")
	bounces := int64(1)
	r1.Totals.Bounces = &bounces
	require.NoError(t, w.Write(r1))
	require.NoError(t, w.Write(newTestRecord("s2")))
	require.NoError(t, w.Close())
	assert.Equal(t, 2, w.Count())

	t.Run("Read rows", func(tt *testing.T) {
		rows, err := service.ReadSummaryFile(w.FilePath())
		require.NoError(tt, err)
		require.Equal(tt, 2, len(rows))
		assert.Equal(tt, "s1", rows[0].VisitID)
		assert.Equal(tt, int64(1), rows[0].Bounces)
		assert.Equal(tt, int64(0), rows[1].Bounces)
		assert.Equal(tt, "(direct)", rows[1].Source)
	})

	t.Run("Upload to summary table", func(tt *testing.T) {
		base := models.NewS3Object("ap-northeast-1", uuid.New().String(), "output/")
		output, err := svc.Upload(w, base, testDate)
		require.NoError(tt, err)
		assert.True(tt, strings.HasPrefix(output.Object().Key, "output/summary/dt=2020-01-02/"))
		assert.True(tt, strings.HasSuffix(output.Object().Key, ".parquet"))
		assert.Greater(tt, output.DataSize, int64(0))
		assert.Equal(tt, "summary", output.PartitionQueue().TableName)
	})
}
