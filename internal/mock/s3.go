package mock

import (
	"bytes"
	"errors"
	"io"
	"io/ioutil"
	"sort"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/m-mizutani/gasession/internal/adaptor"
)

// NewS3Client is constructor of S3 Mock. All clients share one data store.
func NewS3Client(region string) adaptor.S3Client {
	return &S3Client{
		data: mockS3ClientDataStore,
	}
}

// S3Client is on memory S3Client mock
type S3Client struct {
	data *s3DataStore
}

type s3DataStore struct {
	mutex   sync.Mutex
	buckets map[string]map[string]*s3MockObject
}

type s3MockObject struct {
	body     []byte
	encoding string
}

var mockS3ClientDataStore = &s3DataStore{
	buckets: map[string]map[string]*s3MockObject{},
}

// S3MockPageSize is max number of keys in a ListObjectsV2 response of mock.
var S3MockPageSize = 1000

func (x *s3DataStore) put(bucket, key string, obj *s3MockObject) {
	x.mutex.Lock()
	defer x.mutex.Unlock()

	bkt, ok := x.buckets[bucket]
	if !ok {
		bkt = map[string]*s3MockObject{}
		x.buckets[bucket] = bkt
	}
	bkt[key] = obj
}

func (x *s3DataStore) get(bucket, key string) (*s3MockObject, bool) {
	x.mutex.Lock()
	defer x.mutex.Unlock()

	bkt, ok := x.buckets[bucket]
	if !ok {
		return nil, false
	}
	obj, ok := bkt[key]
	return obj, ok
}

// GetObject of S3Client loads []bytes from memory
func (x *S3Client) GetObject(input *s3.GetObjectInput) (*s3.GetObjectOutput, error) {
	obj, ok := x.data.get(*input.Bucket, *input.Key)
	if !ok {
		return nil, errors.New(s3.ErrCodeNoSuchKey)
	}

	output := &s3.GetObjectOutput{
		Body:          ioutil.NopCloser(bytes.NewReader(obj.body)),
		ContentLength: aws.Int64(int64(len(obj.body))),
	}
	if obj.encoding != "" {
		output.ContentEncoding = aws.String(obj.encoding)
	}
	return output, nil
}

// PutObject of S3Client saves []bytes to memory
func (x *S3Client) PutObject(input *s3.PutObjectInput) (*s3.PutObjectOutput, error) {
	raw, err := ioutil.ReadAll(input.Body)
	if err != nil {
		return nil, err
	}

	x.data.put(*input.Bucket, *input.Key, &s3MockObject{body: raw})
	return &s3.PutObjectOutput{}, nil
}

// ListObjectsV2 of S3Client returns keys having the prefix in lexical order.
// ContinuationToken is the last key of previous page.
func (x *S3Client) ListObjectsV2(input *s3.ListObjectsV2Input) (*s3.ListObjectsV2Output, error) {
	x.data.mutex.Lock()
	defer x.data.mutex.Unlock()

	prefix := aws.StringValue(input.Prefix)
	after := aws.StringValue(input.ContinuationToken)

	var keys []string
	for key := range x.data.buckets[*input.Bucket] {
		if strings.HasPrefix(key, prefix) && key > after {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	output := &s3.ListObjectsV2Output{}
	if len(keys) > S3MockPageSize {
		keys = keys[:S3MockPageSize]
		output.IsTruncated = aws.Bool(true)
		output.NextContinuationToken = aws.String(keys[len(keys)-1])
	} else {
		output.IsTruncated = aws.Bool(false)
	}

	for _, key := range keys {
		obj := x.data.buckets[*input.Bucket][key]
		output.Contents = append(output.Contents, &s3.Object{
			Key:  aws.String(key),
			Size: aws.Int64(int64(len(obj.body))),
		})
	}
	output.KeyCount = aws.Int64(int64(len(output.Contents)))

	return output, nil
}

// Upload of S3Client put data from io.Reader
func (x *S3Client) Upload(bucket, key string, body io.Reader, encoding string) error {
	raw, err := ioutil.ReadAll(body)
	if err != nil {
		return err
	}

	x.data.put(bucket, key, &s3MockObject{body: raw, encoding: encoding})
	return nil
}
