package service_test

import (
	"io/ioutil"
	"os"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/google/uuid"
	"github.com/m-mizutani/gasession/internal/mock"
	"github.com/m-mizutani/gasession/internal/service"
	"github.com/m-mizutani/gasession/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestS3PutObject(t *testing.T) {
	bucket := uuid.New().String()
	svc := service.NewS3Service(mock.NewS3Client)

	fd, err := ioutil.TempFile("", "*.txt")
	require.NoError(t, err)
	defer os.Remove(fd.Name())
	fd.Write([]byte("five timeless words"))

	filePath := fd.Name()
	dst := models.NewS3Object("dokoka", bucket, "sowaka.txt")
	err = svc.UploadFileToS3(filePath, dst)
	require.NoError(t, err)

	mock := mock.NewS3Client("dokoka")
	out, err := mock.GetObject(&s3.GetObjectInput{
		Bucket: &bucket,
		Key:    aws.String("sowaka.txt"),
	})
	require.NoError(t, err)
	raw, err := ioutil.ReadAll(out.Body)
	require.NoError(t, err)
	assert.Equal(t, "five timeless words", string(raw))
}

func TestS3ListObjects(t *testing.T) {
	bucket := uuid.New().String()
	client := mock.NewS3Client("dokoka")
	keys := []string{"logs/dt=2020-01-02/b.json", "logs/dt=2020-01-02/a.json", "logs/dt=2020-01-03/a.json"}
	for _, key := range keys {
		require.NoError(t, client.Upload(bucket, key, strings.NewReader("x"), ""))
	}
	require.NoError(t, client.Upload(bucket, "logs/dt=2020-01-02/empty", strings.NewReader(""), ""))

	defer func(n int) { mock.S3MockPageSize = n }(mock.S3MockPageSize)
	mock.S3MockPageSize = 1

	svc := service.NewS3Service(mock.NewS3Client)
	objects, err := svc.ListObjects(models.NewS3Object("dokoka", bucket, "logs/dt=2020-01-02/"))
	require.NoError(t, err)
	require.Equal(t, 2, len(objects))
	assert.Equal(t, "logs/dt=2020-01-02/a.json", objects[0].Key)
	assert.Equal(t, "logs/dt=2020-01-02/b.json", objects[1].Key)
	assert.Equal(t, "dokoka", objects[0].Region)
}

func TestS3AsyncDownload(t *testing.T) {
	bucket := uuid.New().String()
	svc := service.NewS3Service(mock.NewS3Client)

	require.NoError(t, svc.AsyncUpload(strings.NewReader("blue"), models.NewS3Object("r", bucket, "k"), ""))

	body, err := svc.AsyncDownload(models.NewS3Object("r", bucket, "k"))
	require.NoError(t, err)
	defer body.Close()
	raw, err := ioutil.ReadAll(body)
	require.NoError(t, err)
	assert.Equal(t, "blue", string(raw))

	_, err = svc.AsyncDownload(models.NewS3Object("r", bucket, "nothing"))
	assert.Error(t, err)
}
