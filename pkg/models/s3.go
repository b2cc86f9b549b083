package models

import (
	"errors"
	"fmt"
	"strings"
)

// S3Object indicates location of an object (or a prefix) on S3.
type S3Object struct {
	Region string `json:"region"`
	Bucket string `json:"bucket"`
	Key    string `json:"key"`
}

// NewS3Object is constructor of S3Object
func NewS3Object(region, bucket, key string) S3Object {
	return S3Object{
		Region: region,
		Bucket: bucket,
		Key:    key,
	}
}

// AppendKey returns a new S3Object that has joined key. Slash is inserted if
// required.
func (x S3Object) AppendKey(append string) *S3Object {
	obj := x
	if obj.Key == "" || strings.HasSuffix(obj.Key, "/") {
		obj.Key += append
	} else {
		obj.Key += "/" + append
	}
	return &obj
}

// Path returns s3:// style path of the object.
func (x S3Object) Path() string {
	return fmt.Sprintf("s3://%s/%s", x.Bucket, x.Key)
}

// Encode returns a string of bucket@region:key format.
func (x *S3Object) Encode() string {
	return fmt.Sprintf("%s@%s:%s", x.Bucket, x.Region, x.Key)
}

// DecodeS3Object parses a string generated by S3Object.Encode.
func DecodeS3Object(raw string) (*S3Object, error) {
	p1 := strings.Split(raw, "@")
	if len(p1) != 2 {
		return nil, errors.New("Invalid S3 path encode (@ is required)")
	}

	p2 := strings.Split(p1[1], ":")
	if len(p2) < 2 {
		return nil, errors.New("Invalid S3 path encode (: is required)")
	}

	return &S3Object{
		Bucket: p1[0],
		Region: p2[0],
		Key:    strings.Join(p2[1:], ":"),
	}, nil
}
