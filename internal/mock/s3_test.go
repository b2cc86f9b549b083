package mock_test

import (
	"fmt"
	"io/ioutil"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/google/uuid"
	"github.com/m-mizutani/gasession/internal/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestS3Client(t *testing.T) {
	t.Run("Can get object saved by PutObject", func(tt *testing.T) {
		bucket := uuid.New().String()
		client := mock.NewS3Client("test")
		_, err := client.PutObject(&s3.PutObjectInput{
			Bucket: &bucket,
			Key:    aws.String("k1/obj"),
			Body:   strings.NewReader("abc"),
		})
		require.NoError(tt, err)

		getOut, err := client.GetObject(&s3.GetObjectInput{
			Bucket: &bucket,
			Key:    aws.String("k1/obj"),
		})
		require.NoError(tt, err)
		raw, err := ioutil.ReadAll(getOut.Body)
		require.NoError(tt, err)
		assert.Equal(tt, "abc", string(raw))
	})

	t.Run("Can not get object unsaved by PutObject", func(tt *testing.T) {
		bucket := uuid.New().String()
		client := mock.NewS3Client("test")

		_, err := client.GetObject(&s3.GetObjectInput{
			Bucket: &bucket,
			Key:    aws.String("k1/obj"),
		})
		require.Error(tt, err)
	})

	t.Run("Upload keeps content encoding", func(tt *testing.T) {
		bucket := uuid.New().String()
		client := mock.NewS3Client("test")
		require.NoError(tt, client.Upload(bucket, "k2", strings.NewReader("xyz"), "gzip"))

		getOut, err := client.GetObject(&s3.GetObjectInput{Bucket: &bucket, Key: aws.String("k2")})
		require.NoError(tt, err)
		assert.Equal(tt, "gzip", aws.StringValue(getOut.ContentEncoding))
	})

	t.Run("List objects with pagination", func(tt *testing.T) {
		bucket := uuid.New().String()
		client := mock.NewS3Client("test")
		for i := 0; i < 5; i++ {
			require.NoError(tt, client.Upload(bucket, fmt.Sprintf("p/%d", i), strings.NewReader("a"), ""))
		}
		require.NoError(tt, client.Upload(bucket, "q/0", strings.NewReader("a"), ""))

		defer func(n int) { mock.S3MockPageSize = n }(mock.S3MockPageSize)
		mock.S3MockPageSize = 3

		out, err := client.ListObjectsV2(&s3.ListObjectsV2Input{Bucket: &bucket, Prefix: aws.String("p/")})
		require.NoError(tt, err)
		require.Equal(tt, 3, len(out.Contents))
		assert.True(tt, *out.IsTruncated)

		out, err = client.ListObjectsV2(&s3.ListObjectsV2Input{
			Bucket:            &bucket,
			Prefix:            aws.String("p/"),
			ContinuationToken: out.NextContinuationToken,
		})
		require.NoError(tt, err)
		require.Equal(tt, 2, len(out.Contents))
		assert.Equal(tt, "p/4", *out.Contents[1].Key)
		assert.False(tt, *out.IsTruncated)
	})
}
