package sessionizer

import (
	"context"
	"time"

	"github.com/m-mizutani/gasession/internal"
	"github.com/m-mizutani/gasession/internal/service"
	"github.com/m-mizutani/gasession/internal/transform"
	"github.com/m-mizutani/gasession/pkg/handler"
	"github.com/m-mizutani/gasession/pkg/models"
	"github.com/m-mizutani/gasession/pkg/pipeline"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var logger = internal.Logger

// ErrNoHitObject is returned if no hit object exists for the date.
var ErrNoHitObject = errors.New("No hit object for the date")

// Job is a batch run for one day.
type Job struct {
	args    handler.Arguments
	date    time.Time
	profile *internal.Profile
	pipe    *pipeline.Pipeline

	hitService     *service.HitService
	recordService  *service.RecordService
	summaryService *service.SummaryService
	sessionizer    *transform.Sessionizer

	hits    *service.HitLoadResult
	set     *models.SessionSet
	result  *transform.AggregateResult
	summary *service.SummaryWriter
	outputs []*models.OutputObject
}

// New builds Job for the date. date is truncated to 00:00:00 UTC.
func New(ctx context.Context, args handler.Arguments, date time.Time) (*Job, error) {
	if args.Config == nil {
		return nil, errors.New("Config is not set")
	}

	hitService, err := args.HitService()
	if err != nil {
		return nil, err
	}
	recordService, err := args.RecordService()
	if err != nil {
		return nil, err
	}
	visitors, err := args.VisitorService(ctx)
	if err != nil {
		return nil, err
	}

	var hasher transform.VisitorHasher
	if visitors != nil {
		hasher = visitors
	}

	cfg := args.Config
	date = date.UTC()
	x := &Job{
		args:           args,
		date:           time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC),
		profile:        internal.NewProfile(),
		hitService:     hitService,
		recordService:  recordService,
		summaryService: args.SummaryService(),
		sessionizer: transform.NewSessionizer(args.UserAgentClassifier(), hasher, transform.Options{
			SessionKeyIndex: cfg.SessionKeyIndex,
			UserAgentIndex:  cfg.UserAgentIndex,
			Workers:         cfg.Workers,
			SkipBots:        cfg.SkipBots,
		}),
	}

	x.pipe = &pipeline.Pipeline{
		PreChecks: []pipeline.Step{
			x.step("validate", x.validate),
			x.step("source", x.checkSource),
		},
		Transform: []pipeline.Step{
			x.step("load", x.load),
			x.step("group", x.group),
			x.step("aggregate", x.aggregate),
			x.step("dump", x.dump),
		},
		PostActions: []pipeline.Step{
			x.step("partition", x.addPartitions),
			x.step("notify", x.notify),
			{Name: "cleanup", Run: x.cleanup},
			{Name: "profile", Run: x.logProfile},
		},
	}

	return x, nil
}

func (x *Job) step(name string, f func(ctx context.Context) error) pipeline.Step {
	return pipeline.Step{
		Name: name,
		Run: func(ctx context.Context) error {
			return x.profile.Measure(name, func() error { return f(ctx) })
		},
	}
}

// Execute runs the pipeline of the job.
func (x *Job) Execute(ctx context.Context) error {
	logger.WithFields(logrus.Fields{
		"date":   x.date.Format(models.DateFormat),
		"source": x.args.Config.Source.Object().Path(),
	}).Info("Start sessionize")

	return x.pipe.Execute(ctx)
}

// Outputs returns uploaded objects of sessions and summary tables.
func (x *Job) Outputs() []*models.OutputObject { return x.outputs }

// Result returns aggregated records. nil before aggregate step.
func (x *Job) Result() *transform.AggregateResult { return x.result }

// Queue builds a notification of the job.
func (x *Job) Queue() *models.SessionQueue {
	q := &models.SessionQueue{Date: x.date.Format(models.DateFormat)}
	for _, output := range x.outputs {
		q.Objects = append(q.Objects, output.Object())
	}
	if x.set != nil {
		q.Hits = x.set.HitCount()
		q.Dropped = x.set.Dropped
		q.Skipped = x.set.Skipped
	}
	if x.result != nil {
		q.Sessions = len(x.result.Records)
		q.Skipped += len(x.result.Skipped)
	}
	return q
}

// ------------------------------------------------------------
// PreChecks
//

func (x *Job) validate(ctx context.Context) error {
	return x.args.Config.Validate()
}

func (x *Job) checkSource(ctx context.Context) error {
	objects, err := x.hitService.ListHitObjects(x.args.Config.Source.Object(), x.date)
	if err != nil {
		return err
	}
	if len(objects) == 0 {
		return errors.Wrap(ErrNoHitObject, models.HitPrefix(x.args.Config.Source.Object(), x.date).Path())
	}
	return nil
}

// ------------------------------------------------------------
// Transform
//

func (x *Job) load(ctx context.Context) error {
	hits, err := x.hitService.Load(ctx, x.args.Config.Source.Object(), x.date)
	if err != nil {
		return err
	}
	x.hits = hits
	return nil
}

func (x *Job) group(ctx context.Context) error {
	x.set = x.sessionizer.GroupSessions(x.hits.Hits)
	// Release raw hits. Sessions keep references of them.
	x.hits.Hits = nil
	return nil
}

func (x *Job) aggregate(ctx context.Context) error {
	result, err := x.sessionizer.AggregateAll(ctx, x.set.Ordered())
	if err != nil {
		return err
	}
	x.result = result
	return nil
}

func (x *Job) dump(ctx context.Context) error {
	dst := x.args.Config.Destination.Object()
	dumper := x.recordService.NewDumper(dst, x.date)

	summary, err := x.summaryService.NewSummaryWriter()
	if err != nil {
		return err
	}
	x.summary = summary

	for _, record := range x.result.Records {
		if err := dumper.Dump(record); err != nil {
			return err
		}
		if err := summary.Write(record); err != nil {
			return err
		}
	}

	if err := dumper.Close(); err != nil {
		return err
	}
	x.outputs = append(x.outputs, dumper.Objects()...)

	if err := summary.Close(); err != nil {
		return err
	}
	if summary.Count() == 0 {
		return nil
	}

	output, err := x.summaryService.Upload(summary, dst, x.date)
	if err != nil {
		return err
	}
	x.outputs = append(x.outputs, output)

	return nil
}

// ------------------------------------------------------------
// PostActions
//

func (x *Job) addPartitions(ctx context.Context) error {
	if x.pipe.Failed || x.args.Config.Athena.Database == "" {
		return nil
	}

	athena := x.args.AthenaService()
	done := map[string]bool{}
	for _, output := range x.outputs {
		q := output.PartitionQueue()
		if done[q.Location] {
			continue
		}
		done[q.Location] = true

		if err := athena.AddPartition(ctx, q); err != nil {
			return err
		}
	}

	return nil
}

func (x *Job) notify(ctx context.Context) error {
	if x.pipe.Failed || x.args.Config.NotifyQueueURL == "" {
		return nil
	}

	return x.args.SQSService().SendSQS(x.Queue(), x.args.Config.NotifyQueueURL)
}

func (x *Job) cleanup(ctx context.Context) error {
	if x.summary == nil {
		return nil
	}
	return x.summary.Delete()
}

func (x *Job) logProfile(ctx context.Context) error {
	x.profile.Log()
	return nil
}
