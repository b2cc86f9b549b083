package service

import (
	"io"
	"os"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/m-mizutani/gasession/internal/adaptor"
	"github.com/m-mizutani/gasession/pkg/models"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// S3Service is accessor to S3
type S3Service struct {
	newS3 adaptor.S3ClientFactory
}

// NewS3Service is constructor of S3Service
func NewS3Service(newS3 adaptor.S3ClientFactory) *S3Service {
	return &S3Service{
		newS3: newS3,
	}
}

func wrapS3Error(err error, msg string, obj models.S3Object) error {
	if aerr, ok := err.(awserr.Error); ok {
		return errors.Wrapf(aerr, "%s in AWS: %s/%s", msg, obj.Bucket, obj.Key)
	}
	return errors.Wrapf(err, "%s: %s/%s", msg, obj.Bucket, obj.Key)
}

// AsyncUpload is for uploading object by io.Reader.
func (x *S3Service) AsyncUpload(body io.Reader, dst models.S3Object, encoding string) error {
	client := x.newS3(dst.Region)
	if err := client.Upload(dst.Bucket, dst.Key, body, encoding); err != nil {
		return wrapS3Error(err, "Fail to upload an object", dst)
	}

	return nil
}

// AsyncDownload is for downloading data via io.ReadCloser
func (x *S3Service) AsyncDownload(src models.S3Object) (io.ReadCloser, error) {
	input := &s3.GetObjectInput{
		Bucket: aws.String(src.Bucket),
		Key:    aws.String(src.Key),
	}
	client := x.newS3(src.Region)
	output, err := client.GetObject(input)
	if err != nil {
		return nil, wrapS3Error(err, "Fail to download an object", src)
	}

	return output.Body, nil
}

// UploadFileToS3 upload a specified local file to S3
func (x *S3Service) UploadFileToS3(filePath string, dst models.S3Object) error {
	fd, err := os.Open(filePath)
	if err != nil {
		return errors.Wrapf(err, "Fail to open a local file: %s", filePath)
	}
	defer fd.Close()

	client := x.newS3(dst.Region)
	input := &s3.PutObjectInput{
		Body:   fd,
		Bucket: aws.String(dst.Bucket),
		Key:    aws.String(dst.Key),
	}

	resp, err := client.PutObject(input)
	if err != nil {
		return wrapS3Error(err, "Fail to upload a local file", dst)
	}

	logger.WithFields(logrus.Fields{
		"resp":   resp,
		"bucket": dst.Bucket,
		"key":    dst.Key,
	}).Debug("Uploaded a local file")

	return nil
}

// ListObjects returns all objects under the prefix in lexical order of key.
// Objects of zero size and "directory" keys are excluded.
func (x *S3Service) ListObjects(prefix models.S3Object) ([]*models.S3Object, error) {
	client := x.newS3(prefix.Region)
	input := &s3.ListObjectsV2Input{
		Bucket: aws.String(prefix.Bucket),
		Prefix: aws.String(prefix.Key),
	}

	var objects []*models.S3Object
	for {
		output, err := client.ListObjectsV2(input)
		if err != nil {
			return nil, wrapS3Error(err, "Fail to list objects", prefix)
		}

		for _, obj := range output.Contents {
			if aws.Int64Value(obj.Size) == 0 {
				continue
			}
			o := models.NewS3Object(prefix.Region, prefix.Bucket, aws.StringValue(obj.Key))
			objects = append(objects, &o)
		}

		if !aws.BoolValue(output.IsTruncated) {
			break
		}
		input.ContinuationToken = output.NextContinuationToken
	}

	logger.WithFields(logrus.Fields{
		"prefix": prefix.Path(),
		"count":  len(objects),
	}).Debug("Listed objects")

	return objects, nil
}
