package adaptor

import (
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/athena"
)

// AthenaClientFactory is interface AthenaClient constructor
type AthenaClientFactory func(region string) AthenaClient

// AthenaClient is interface of AWS Athena SDK
type AthenaClient interface {
	StartQueryExecution(input *athena.StartQueryExecutionInput) (*athena.StartQueryExecutionOutput, error)
	GetQueryExecution(input *athena.GetQueryExecutionInput) (*athena.GetQueryExecutionOutput, error)
}

// NewAthenaClient creates actual AWS Athena SDK client
func NewAthenaClient(region string) AthenaClient {
	ssn := session.New(&aws.Config{Region: aws.String(region)})
	return athena.New(ssn)
}

// AthenaMock records executed queries on memory
type AthenaMock struct {
	Queries []*athena.StartQueryExecutionInput
	State   string
}

// NewAthenaMock is constructor of Athena mock
func NewAthenaMock(region string) AthenaClient {
	return &AthenaMock{State: athena.QueryExecutionStateSucceeded}
}

// StartQueryExecution of AthenaMock stores input on memory
func (x *AthenaMock) StartQueryExecution(input *athena.StartQueryExecutionInput) (*athena.StartQueryExecutionOutput, error) {
	x.Queries = append(x.Queries, input)
	return &athena.StartQueryExecutionOutput{
		QueryExecutionId: aws.String("mock-query-id"),
	}, nil
}

// GetQueryExecution of AthenaMock always returns configured state
func (x *AthenaMock) GetQueryExecution(input *athena.GetQueryExecutionInput) (*athena.GetQueryExecutionOutput, error) {
	return &athena.GetQueryExecutionOutput{
		QueryExecution: &athena.QueryExecution{
			Status: &athena.QueryExecutionStatus{
				State: aws.String(x.State),
			},
		},
	}, nil
}
