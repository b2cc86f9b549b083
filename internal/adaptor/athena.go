package adaptor

import (
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/athena"
)

// AthenaClientFactory is interface AthenaClient constructor
type AthenaClientFactory func(region string) AthenaClient

// AthenaClient is interface of AWS SDK Athena
type AthenaClient interface {
	StartQueryExecution(*athena.StartQueryExecutionInput) (*athena.StartQueryExecutionOutput, error)
	GetQueryExecution(*athena.GetQueryExecutionInput) (*athena.GetQueryExecutionOutput, error)
}

// NewAthenaClient creates actual AWS Athena SDK client
func NewAthenaClient(region string) AthenaClient {
	ssn := session.Must(session.NewSession(&aws.Config{Region: aws.String(region)}))
	return athena.New(ssn)
}
