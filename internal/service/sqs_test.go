package service_test

import (
	"encoding/json"
	"testing"

	"github.com/m-mizutani/gasession/internal/mock"
	"github.com/m-mizutani/gasession/internal/service"
	"github.com/m-mizutani/gasession/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendSQS(t *testing.T) {
	t.Run("Send session queue", func(tt *testing.T) {
		client := &mock.SQSClient{}
		svc := service.NewSQSService(mock.NewSQSClientFactory(client))

		q := &models.SessionQueue{Date: "2020-01-02", Sessions: 3, Hits: 10}
		require.NoError(tt, svc.SendSQS(q, "https://sqs.ap-northeast-1.amazonaws.com/123456789012/notify"))

		require.Equal(tt, 1, len(client.Input))
		assert.Equal(tt, "ap-northeast-1", client.Region)

		var sent models.SessionQueue
		require.NoError(tt, json.Unmarshal([]byte(*client.Input[0].MessageBody), &sent))
		assert.Equal(tt, "2020-01-02", sent.Date)
		assert.Equal(tt, 3, sent.Sessions)
	})

	t.Run("Invalid URL", func(tt *testing.T) {
		svc := service.NewSQSService(mock.NewSQSClientFactory(&mock.SQSClient{}))
		assert.Error(tt, svc.SendSQS(&models.SessionQueue{}, "https://example.com/queue"))
	})
}
