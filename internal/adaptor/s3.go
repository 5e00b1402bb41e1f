package adaptor

import (
	"bytes"
	"io/ioutil"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/pkg/errors"
)

// S3ClientFactory is interface S3Client constructor
type S3ClientFactory func(region string) S3Client

// S3Client is interface of AWS S3 SDK
type S3Client interface {
	GetObject(input *s3.GetObjectInput) (*s3.GetObjectOutput, error)
	PutObject(input *s3.PutObjectInput) (*s3.PutObjectOutput, error)
}

// NewS3Client creates actual AWS S3 SDK client
func NewS3Client(region string) S3Client {
	ssn := session.New(&aws.Config{Region: aws.String(region)})
	return s3.New(ssn)
}

// S3Mock is on memory S3Client mock
type S3Mock struct {
	data map[string]map[string][]byte
}

// NewS3Mock is constructor of S3 mock
func NewS3Mock(region string) S3Client {
	return &S3Mock{
		data: map[string]map[string][]byte{},
	}
}

// GetObject of S3Mock loads []bytes from memory
func (x *S3Mock) GetObject(input *s3.GetObjectInput) (*s3.GetObjectOutput, error) {
	bucket, ok := x.data[*input.Bucket]
	if !ok {
		return nil, errors.New(s3.ErrCodeNoSuchKey)
	}
	obj, ok := bucket[*input.Key]
	if !ok {
		return nil, errors.New(s3.ErrCodeNoSuchKey)
	}

	return &s3.GetObjectOutput{
		Body: ioutil.NopCloser(bytes.NewReader(obj)),
	}, nil
}

// PutObject of S3Mock saves []bytes to memory
func (x *S3Mock) PutObject(input *s3.PutObjectInput) (*s3.PutObjectOutput, error) {
	raw, err := ioutil.ReadAll(input.Body)
	if err != nil {
		return nil, err
	}

	bucket, ok := x.data[*input.Bucket]
	if !ok {
		bucket = map[string][]byte{}
		x.data[*input.Bucket] = bucket
	}

	bucket[*input.Key] = raw

	return &s3.PutObjectOutput{}, nil
}

// Keys of S3Mock returns saved object keys of the bucket for testing
func (x *S3Mock) Keys(bucket string) []string {
	var keys []string
	for key := range x.data[bucket] {
		keys = append(keys, key)
	}
	return keys
}
