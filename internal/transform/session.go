package transform

import (
	"context"
	"sync"

	"github.com/m-mizutani/gasession/pkg/models"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Sessionizer groups hits into sessions and aggregates each session to
// SessionRecord.
type Sessionizer struct {
	opt        Options
	classifier UserAgentClassifier
	hasher     VisitorHasher
	skips      []SkipPolicy
}

// NewSessionizer is constructor of Sessionizer. classifier and hasher can be
// nil, then device and full visitor ID are always placeholders.
func NewSessionizer(classifier UserAgentClassifier, hasher VisitorHasher, opt Options) *Sessionizer {
	x := &Sessionizer{
		opt:        opt.withDefault(),
		classifier: classifier,
		hasher:     hasher,
	}

	if x.opt.SkipBots && classifier != nil {
		x.skips = append(x.skips, SkipBots(classifier, x.opt.UserAgentIndex))
	}

	return x
}

// Options returns options with default values.
func (x *Sessionizer) Options() Options { return x.opt }

// Aggregate converts a session to SessionRecord. ErrNoTimestamp is returned if
// the first hit has no timestamp.
func (x *Sessionizer) Aggregate(ctx context.Context, ssn *models.Session) (*models.SessionRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	first := ssn.First()
	if first == nil {
		return nil, errors.New("Empty session")
	}
	if !first.HasTimestamp() {
		return nil, ErrNoTimestamp
	}

	exit := exitIndex(ssn)
	hits := make([]models.HitRecord, ssn.Len())
	for i := range ssn.Hits {
		hits[i] = transformHit(ssn, i, exit)
	}

	totals := computeTotals(ssn)
	// Single entrance and exit hit is a bounce regardless of totals.
	if exit == 0 {
		totals.Bounces = int64Ptr(1)
	}

	clientID, _ := first.String(models.FieldClientID)
	propertyID, _ := first.String(models.FieldTrackingID)
	startAt := first.Timestamp.UTC()

	record := &models.SessionRecord{
		ClientID:         clientID,
		FullVisitorID:    x.fullVisitorID(ctx, clientID, propertyID),
		VisitID:          ssn.Key,
		VisitStartTime:   startAt.Unix(),
		Date:             startAt.Format(models.DateFormat),
		Totals:           totals,
		TrafficSource:    ResolveTrafficSource(ssn),
		Device:           resolveDevice(ssn, x.classifier, x.opt.UserAgentIndex),
		CustomDimensions: CollapseCustomFields(ssn, Family(models.FieldCustomDimension), KindDimension),
		CustomMetrics:    CollapseCustomFields(ssn, Family(models.FieldCustomMetric), KindMetric),
		GeoNetwork:       models.EmptyGeoNetwork,
		Hits:             hits,
	}

	return record, nil
}

func (x *Sessionizer) fullVisitorID(ctx context.Context, clientID, propertyID string) string {
	if x.hasher == nil || clientID == "" {
		return ""
	}

	id, err := x.hasher.HashClientID(ctx, clientID, propertyID)
	if err != nil {
		logger.WithError(err).WithFields(logrus.Fields{
			"clientID":   clientID,
			"propertyID": propertyID,
		}).Warn("Fail to get full visitor ID")
		return ""
	}
	return id
}

// AggregateResult is output of AggregateAll
type AggregateResult struct {
	// Records is in order of input sessions.
	Records []*models.SessionRecord
	// Skipped has keys of sessions that have no timestamp in the first hit.
	Skipped []string
}

// AggregateAll aggregates sessions with worker goroutines. Order of records is
// same with order of sessions. The first error stops remaining sessions and
// is returned with the session key.
func (x *Sessionizer) AggregateAll(ctx context.Context, sessions []*models.Session) (*AggregateResult, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	results := make([]*models.SessionRecord, len(sessions))
	skipped := make([]bool, len(sessions))

	var firstErr error
	var errOnce sync.Once

	ch := make(chan int)
	wg := &sync.WaitGroup{}
	for w := 0; w < x.opt.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range ch {
				ssn := sessions[idx]
				record, err := x.Aggregate(ctx, ssn)

				switch {
				case err == nil:
					results[idx] = record
				case errors.Is(err, ErrNoTimestamp):
					logger.WithField("session", ssn.Key).Warn("Skip session without timestamp")
					skipped[idx] = true
				default:
					errOnce.Do(func() {
						firstErr = errors.Wrapf(err, "Fail to aggregate session: %s", ssn.Key)
						cancel()
					})
				}
			}
		}()
	}

	for idx := range sessions {
		if ctx.Err() != nil {
			break
		}
		ch <- idx
	}
	close(ch)
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, "Aggregation is canceled")
	}

	output := &AggregateResult{}
	for idx, record := range results {
		if skipped[idx] {
			output.Skipped = append(output.Skipped, sessions[idx].Key)
			continue
		}
		output.Records = append(output.Records, record)
	}

	return output, nil
}
