package testutil

import (
	"time"

	"github.com/aws/aws-lambda-go/events"
)

// ScheduledEvent returns events.CloudWatchEvent fired by a schedule rule at t.
func ScheduledEvent(t time.Time) events.CloudWatchEvent {
	return events.CloudWatchEvent{
		Version:    "0",
		ID:         "89d1a02d-5ec7-412e-82f5-13505f849b41",
		DetailType: "Scheduled Event",
		Source:     "aws.events",
		AccountID:  "123456789012",
		Time:       t,
		Region:     "ap-northeast-1",
		Resources:  []string{"arn:aws:events:ap-northeast-1:123456789012:rule/gasession-daily"},
	}
}
