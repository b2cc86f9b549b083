package adaptor

import (
	"io"
	"sync"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
)

// S3ClientFactory is interface S3Client constructor
type S3ClientFactory func(region string) S3Client

// S3Client is interface of AWS S3 SDK
type S3Client interface {
	GetObject(input *s3.GetObjectInput) (*s3.GetObjectOutput, error)
	PutObject(input *s3.PutObjectInput) (*s3.PutObjectOutput, error)
	ListObjectsV2(input *s3.ListObjectsV2Input) (*s3.ListObjectsV2Output, error)
	Upload(bucket, key string, body io.Reader, encoding string) error
}

type awsS3Client struct {
	*s3.S3
	uploader *s3manager.Uploader
}

var (
	awsS3ClientCache map[string]*awsS3Client
	awsS3ClientMutex sync.Mutex
)

// NewS3Client creates actual AWS S3 SDK client. A client is shared per region.
func NewS3Client(region string) S3Client {
	awsS3ClientMutex.Lock()
	defer awsS3ClientMutex.Unlock()

	if client, ok := awsS3ClientCache[region]; ok {
		return client
	}

	ssn := session.Must(session.NewSession(&aws.Config{Region: aws.String(region)}))
	client := &awsS3Client{
		S3:       s3.New(ssn),
		uploader: s3manager.NewUploader(ssn),
	}
	awsS3ClientCache[region] = client

	return client
}

// Upload sends data from body by multipart upload. ContentEncoding is set if
// encoding is not empty.
func (x *awsS3Client) Upload(bucket, key string, body io.Reader, encoding string) error {
	input := &s3manager.UploadInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
		Body:   body,
	}
	if encoding != "" {
		input.ContentEncoding = aws.String(encoding)
	}

	if _, err := x.uploader.Upload(input); err != nil {
		return err
	}
	return nil
}
