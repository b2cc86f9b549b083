package service

import (
	"context"
	"time"

	"github.com/m-mizutani/gasession/internal/repository"
	"github.com/m-mizutani/gasession/internal/util"
	"github.com/sirupsen/logrus"
)

const (
	defaultVisitorRetryLimit = 3
	defaultVisitorTimeout    = 5 * time.Second
)

// VisitorHasher is interface of full visitor ID source. It is same with
// transform.VisitorHasher.
type VisitorHasher interface {
	HashClientID(ctx context.Context, clientID, propertyID string) (string, error)
}

// VisitorService resolves full visitor ID with cache repository and hasher.
// It implements transform.VisitorHasher and never returns error.
type VisitorService struct {
	RetryLimit int
	Timeout    time.Duration

	repo     repository.VisitorRepository
	hasher   VisitorHasher
	newTimer util.RetryTimerFactory
}

// NewVisitorService is constructor of VisitorService. newTimer can be nil,
// then util.NewExpRetryTimer is used.
func NewVisitorService(repo repository.VisitorRepository, hasher VisitorHasher, newTimer util.RetryTimerFactory) *VisitorService {
	if newTimer == nil {
		newTimer = util.NewExpRetryTimer
	}

	return &VisitorService{
		RetryLimit: defaultVisitorRetryLimit,
		Timeout:    defaultVisitorTimeout,
		repo:       repo,
		hasher:     hasher,
		newTimer:   newTimer,
	}
}

// HashClientID is same with FullVisitorID. The error is always nil.
func (x *VisitorService) HashClientID(ctx context.Context, clientID, propertyID string) (string, error) {
	return x.FullVisitorID(ctx, clientID, propertyID), nil
}

// FullVisitorID returns cached ID or hashed ID. Empty string is returned if
// the hasher failed.
func (x *VisitorService) FullVisitorID(ctx context.Context, clientID, propertyID string) string {
	log := logger.WithFields(logrus.Fields{
		"clientID":   clientID,
		"propertyID": propertyID,
	})

	if x.repo != nil {
		id, found, err := x.repo.GetFullVisitorID(propertyID, clientID)
		if err != nil {
			log.WithError(err).Warn("Fail to get cached full visitor ID")
		} else if found {
			return id
		}
	}

	var id string
	timer := x.newTimer(x.RetryLimit)
	err := timer.Run(func(seq int) (bool, error) {
		if err := ctx.Err(); err != nil {
			return false, err
		}

		callCtx, cancel := context.WithTimeout(ctx, x.Timeout)
		defer cancel()

		hashed, err := x.hasher.HashClientID(callCtx, clientID, propertyID)
		if err != nil {
			log.WithError(err).WithField("seq", seq).Debug("Retry HashClientID")
			return false, nil
		}

		id = hashed
		return true, nil
	})
	if err != nil {
		log.WithError(err).Warn("Fail to hash client ID")
		return ""
	}

	if x.repo != nil {
		if err := x.repo.PutFullVisitorID(propertyID, clientID, id); err != nil {
			log.WithError(err).Warn("Fail to cache full visitor ID")
		}
	}

	return id
}
