package handler

import (
	"context"
	"encoding/json"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/m-mizutani/gasession/internal/adaptor"
	"github.com/m-mizutani/gasession/internal/config"
	"github.com/m-mizutani/gasession/internal/repository"
	"github.com/m-mizutani/gasession/internal/service"
	"github.com/m-mizutani/gasession/internal/transform"
	"github.com/m-mizutani/gasession/internal/util"
	"github.com/pkg/errors"
)

// Arguments has environment variables, config, Event record and adaptor
type Arguments struct {
	EnvVars
	Config *config.Config
	Event  interface{}

	NewS3      adaptor.S3ClientFactory     `json:"-"`
	NewSQS     adaptor.SQSClientFactory    `json:"-"`
	NewAthena  adaptor.AthenaClientFactory `json:"-"`
	NewEncoder adaptor.EncoderFactory      `json:"-"`
	NewDecoder adaptor.DecoderFactory      `json:"-"`
	NewTimer   util.RetryTimerFactory      `json:"-"`

	Classifier  transform.UserAgentClassifier `json:"-"`
	Hasher      service.VisitorHasher         `json:"-"`
	VisitorRepo repository.VisitorRepository  `json:"-"`
}

// BindEvent directly decode event data and unmarshal to ev object.
func (x *Arguments) BindEvent(ev interface{}) error {
	raw, err := json.Marshal(x.Event)
	if err != nil {
		Logger.WithField("event", x.Event).Error("json.Marshal")
		return errors.Wrap(err, "Failed to marshal lambda event in BindEvent")
	}

	if err := json.Unmarshal(raw, ev); err != nil {
		Logger.WithField("raw", string(raw)).Error("json.Unmarshal")
		return errors.Wrap(err, "Failed json.Unmarshal in BindEvent")
	}

	return nil
}

// TargetDate returns the day before time of scheduled event. The date is
// truncated to 00:00:00 UTC.
func (x *Arguments) TargetDate() (time.Time, error) {
	var ev events.CloudWatchEvent
	if err := x.BindEvent(&ev); err != nil {
		return time.Time{}, err
	}
	if ev.Time.IsZero() {
		return time.Time{}, errors.New("No time in scheduled event")
	}

	t := ev.Time.UTC().AddDate(0, 0, -1)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

// S3Service provides service.S3Service with S3 adaptor
func (x *Arguments) S3Service() *service.S3Service {
	return service.NewS3Service(x.newS3())
}

// SQSService provides service.SQSService with SQS adaptor
func (x *Arguments) SQSService() *service.SQSService {
	return service.NewSQSService(x.newSQS())
}

// AthenaService provides service.AthenaService for configured database
func (x *Arguments) AthenaService() *service.AthenaService {
	athena := x.Config.Athena
	return service.NewAthenaService(x.newAthena(), athena.Region, athena.Database, athena.Output)
}

// HitService provides hit loader with configured filter
func (x *Arguments) HitService() (*service.HitService, error) {
	filter, err := service.NewHitFilter(x.Config.Filter)
	if err != nil {
		return nil, err
	}
	return service.NewHitService(x.newS3(), filter), nil
}

// RecordService provides encode/decode logic and S3 access for session records
func (x *Arguments) RecordService() (*service.RecordService, error) {
	newEncoder, newDecoder, err := adaptor.LookupFormat(x.Config.Format)
	if err != nil {
		return nil, err
	}
	if x.NewEncoder != nil {
		newEncoder = x.NewEncoder
	}
	if x.NewDecoder != nil {
		newDecoder = x.NewDecoder
	}

	return service.NewRecordService(x.newS3(), newEncoder, newDecoder), nil
}

// SummaryService provides parquet summary writer and uploader
func (x *Arguments) SummaryService() *service.SummaryService {
	return service.NewSummaryService(x.newS3())
}

// UserAgentClassifier provides adaptor.UserAgentParser if Classifier is not set
func (x *Arguments) UserAgentClassifier() transform.UserAgentClassifier {
	if x.Classifier != nil {
		return x.Classifier
	}
	return adaptor.NewUserAgentParser()
}

// VisitorService provides full visitor ID resolver. nil is returned if
// neither Hasher nor credentials file is configured.
func (x *Arguments) VisitorService(ctx context.Context) (*service.VisitorService, error) {
	hasher := x.Hasher
	if hasher == nil {
		if x.Config.Visitor.CredentialsFile == "" {
			return nil, nil
		}

		gaHasher, err := adaptor.NewGAHasher(ctx, x.Config.Visitor.CredentialsFile)
		if err != nil {
			return nil, err
		}
		hasher = gaHasher
	}

	repo := x.VisitorRepo
	if repo == nil && x.Config.Visitor.TableName != "" {
		repo = repository.NewVisitorDynamoDB(x.Config.Visitor.Region, x.Config.Visitor.TableName)
	}

	return service.NewVisitorService(repo, hasher, x.NewTimer), nil
}

func (x *Arguments) newS3() adaptor.S3ClientFactory {
	if x.NewS3 != nil {
		return x.NewS3
	}
	return adaptor.NewS3Client
}

func (x *Arguments) newSQS() adaptor.SQSClientFactory {
	if x.NewSQS != nil {
		return x.NewSQS
	}
	return adaptor.NewSQSClient
}

func (x *Arguments) newAthena() adaptor.AthenaClientFactory {
	if x.NewAthena != nil {
		return x.NewAthena
	}
	return adaptor.NewAthenaClient
}
