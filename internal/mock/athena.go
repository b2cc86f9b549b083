package mock

import (
	"fmt"
	"sync"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/athena"
	"github.com/m-mizutani/gasession/internal/adaptor"
)

// AthenaClient is mock of AWS Athena SDK. A query becomes SUCCEEDED after
// RunningCount times of GetQueryExecution.
type AthenaClient struct {
	Queries      []*athena.StartQueryExecutionInput
	Region       string
	RunningCount int
	FinalState   string

	mutex sync.Mutex
	polls map[string]int
}

// NewAthenaClientFactory returns factory that always provides client.
func NewAthenaClientFactory(client *AthenaClient) adaptor.AthenaClientFactory {
	return func(region string) adaptor.AthenaClient {
		client.Region = region
		return client
	}
}

// StartQueryExecution of mock stores input and returns sequential ID
func (x *AthenaClient) StartQueryExecution(input *athena.StartQueryExecutionInput) (*athena.StartQueryExecutionOutput, error) {
	x.mutex.Lock()
	defer x.mutex.Unlock()

	x.Queries = append(x.Queries, input)
	return &athena.StartQueryExecutionOutput{
		QueryExecutionId: aws.String(fmt.Sprintf("query-%d", len(x.Queries))),
	}, nil
}

// GetQueryExecution of mock returns RUNNING state RunningCount times
func (x *AthenaClient) GetQueryExecution(input *athena.GetQueryExecutionInput) (*athena.GetQueryExecutionOutput, error) {
	x.mutex.Lock()
	defer x.mutex.Unlock()

	if x.polls == nil {
		x.polls = map[string]int{}
	}
	id := aws.StringValue(input.QueryExecutionId)
	x.polls[id]++

	state := athena.QueryExecutionStateRunning
	if x.polls[id] > x.RunningCount {
		state = athena.QueryExecutionStateSucceeded
		if x.FinalState != "" {
			state = x.FinalState
		}
	}

	return &athena.GetQueryExecutionOutput{
		QueryExecution: &athena.QueryExecution{
			QueryExecutionId: input.QueryExecutionId,
			Status:           &athena.QueryExecutionStatus{State: aws.String(state)},
		},
	}, nil
}
