package mock

import (
	"sync"

	"github.com/aws/aws-sdk-go/service/sqs"
	"github.com/m-mizutani/gasession/internal/adaptor"
)

// SQSClient is mock of AWS SQS SDK
type SQSClient struct {
	Input  []*sqs.SendMessageInput
	Region string
	mutex  sync.Mutex
}

// NewSQSClientFactory returns factory that always provides client.
func NewSQSClientFactory(client *SQSClient) adaptor.SQSClientFactory {
	return func(region string) adaptor.SQSClient {
		client.Region = region
		return client
	}
}

// SendMessage of mock just stores SendMessage input
func (x *SQSClient) SendMessage(input *sqs.SendMessageInput) (*sqs.SendMessageOutput, error) {
	x.mutex.Lock()
	defer x.mutex.Unlock()
	x.Input = append(x.Input, input)
	return &sqs.SendMessageOutput{}, nil
}
