package service

import (
	"context"
	"io"
	"time"

	"github.com/itchyny/gojq"
	"github.com/m-mizutani/gasession/internal/adaptor"
	"github.com/m-mizutani/gasession/pkg/models"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// DefaultHitFilter drops site speed hits that are not part of sessions.
const DefaultHitFilter = `.t != "timing" and .t != "adtiming"`

// HitFilter selects hits by jq expression. A hit is kept if the expression
// returns neither false nor null.
type HitFilter struct {
	expr  string
	query *gojq.Query
}

// NewHitFilter compiles expr. Empty expr means DefaultHitFilter.
func NewHitFilter(expr string) (*HitFilter, error) {
	if expr == "" {
		expr = DefaultHitFilter
	}

	query, err := gojq.Parse(expr)
	if err != nil {
		return nil, errors.Wrapf(err, "Fail to parse hit filter: %s", expr)
	}

	return &HitFilter{expr: expr, query: query}, nil
}

// Match evaluates the filter with fields of hit.
func (x *HitFilter) Match(hit *models.Hit) (bool, error) {
	iter := x.query.Run(hit.Fields)
	v, ok := iter.Next()
	if !ok {
		return false, nil
	}

	switch r := v.(type) {
	case error:
		return false, errors.Wrapf(r, "Fail to evaluate hit filter: %s", x.expr)
	case nil:
		return false, nil
	case bool:
		return r, nil
	default:
		return true, nil
	}
}

// HitLoadResult is output of HitService.Load
type HitLoadResult struct {
	Hits     []*models.Hit
	Objects  []*models.S3Object
	Filtered int
}

// HitService loads hit rows of a date from S3.
type HitService struct {
	s3     *S3Service
	filter *HitFilter
}

// NewHitService is constructor of HitService. filter can be nil, then all hits
// are loaded.
func NewHitService(newS3 adaptor.S3ClientFactory, filter *HitFilter) *HitService {
	return &HitService{
		s3:     NewS3Service(newS3),
		filter: filter,
	}
}

// ListHitObjects returns objects of hit rows of the date.
func (x *HitService) ListHitObjects(base models.S3Object, date time.Time) ([]*models.S3Object, error) {
	return x.s3.ListObjects(*models.HitPrefix(base, date))
}

// Load reads all hit objects of the date in order of key. Order of hits in
// each object is preserved.
func (x *HitService) Load(ctx context.Context, base models.S3Object, date time.Time) (*HitLoadResult, error) {
	objects, err := x.ListHitObjects(base, date)
	if err != nil {
		return nil, err
	}

	result := &HitLoadResult{Objects: objects}
	for _, obj := range objects {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if err := x.loadObject(obj, result); err != nil {
			return nil, err
		}
	}

	logger.WithFields(logrus.Fields{
		"objects":  len(objects),
		"hits":     len(result.Hits),
		"filtered": result.Filtered,
	}).Info("Loaded hits")

	return result, nil
}

func (x *HitService) loadObject(obj *models.S3Object, result *HitLoadResult) error {
	body, err := x.s3.AsyncDownload(*obj)
	if err != nil {
		return err
	}
	defer body.Close()

	return x.Read(body, result)
}

// Read decodes hit rows from r and appends them to result.
func (x *HitService) Read(r io.Reader, result *HitLoadResult) error {
	decoder, err := adaptor.NewHitDecoder(r)
	if err != nil {
		return err
	}

	for {
		hit, err := decoder.Next()
		if err == io.EOF {
			return nil
		} else if err != nil {
			return err
		}

		if x.filter != nil {
			matched, err := x.filter.Match(hit)
			if err != nil {
				return err
			}
			if !matched {
				result.Filtered++
				continue
			}
		}

		result.Hits = append(result.Hits, hit)
	}
}
