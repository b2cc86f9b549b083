package models_test

import (
	"testing"

	"github.com/m-mizutani/gasession/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestS3Object(t *testing.T) {
	t.Run("AppendKey inserts slash", func(tt *testing.T) {
		base := models.NewS3Object("ap-northeast-1", "blue", "path/to")
		obj := base.AppendKey("obj1")
		assert.Equal(tt, "path/to/obj1", obj.Key)
		assert.Equal(tt, "path/to", base.Key)
	})

	t.Run("AppendKey does not duplicate slash", func(tt *testing.T) {
		base := models.NewS3Object("ap-northeast-1", "blue", "path/to/")
		assert.Equal(tt, "path/to/obj1", base.AppendKey("obj1").Key)
	})

	t.Run("AppendKey with empty key", func(tt *testing.T) {
		base := models.NewS3Object("ap-northeast-1", "blue", "")
		assert.Equal(tt, "obj1", base.AppendKey("obj1").Key)
	})

	t.Run("Path", func(tt *testing.T) {
		obj := models.NewS3Object("ap-northeast-1", "blue", "path/to/obj1")
		assert.Equal(tt, "s3://blue/path/to/obj1", obj.Path())
	})

	t.Run("Encode and Decode", func(tt *testing.T) {
		obj := models.NewS3Object("ap-northeast-1", "blue", "path:to/obj1")
		decoded, err := models.DecodeS3Object(obj.Encode())
		require.NoError(tt, err)
		assert.Equal(tt, obj, *decoded)
	})

	t.Run("Decoding invalid data", func(tt *testing.T) {
		_, err := models.DecodeS3Object("blue/path")
		assert.Error(tt, err)
		_, err = models.DecodeS3Object("blue@region")
		assert.Error(tt, err)
	})
}
