package adaptor

import (
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/firehose"
)

// FirehoseClientFactory is interface FirehoseClient constructor
type FirehoseClientFactory func(region string) FirehoseClient

// FirehoseClient is interface of AWS Kinesis Firehose SDK
type FirehoseClient interface {
	PutRecordBatch(input *firehose.PutRecordBatchInput) (*firehose.PutRecordBatchOutput, error)
}

// NewFirehoseClient creates actual AWS Firehose SDK client
func NewFirehoseClient(region string) FirehoseClient {
	ssn := session.New(&aws.Config{Region: aws.String(region)})
	return firehose.New(ssn)
}

// FirehoseMock keeps put records on memory
type FirehoseMock struct {
	Inputs []*firehose.PutRecordBatchInput
}

// NewFirehoseMock is constructor of Firehose mock
func NewFirehoseMock(region string) FirehoseClient {
	return &FirehoseMock{}
}

// PutRecordBatch of FirehoseMock stores input on memory
func (x *FirehoseMock) PutRecordBatch(input *firehose.PutRecordBatchInput) (*firehose.PutRecordBatchOutput, error) {
	x.Inputs = append(x.Inputs, input)
	return &firehose.PutRecordBatchOutput{
		FailedPutCount: aws.Int64(0),
	}, nil
}
