package transform

import (
	"context"
	"runtime"

	"github.com/m-mizutani/gasession/internal"
	"github.com/m-mizutani/gasession/pkg/models"
	"github.com/pkg/errors"
)

var logger = internal.Logger

var (
	// ErrNoTimestamp indicates the first hit of a session has no timestamp.
	// The session is skipped.
	ErrNoTimestamp = errors.New("No timestamp in the first hit of session")
	// ErrNoSessionKey indicates a hit has no session key. The hit is dropped.
	ErrNoSessionKey = errors.New("No session key in hit")
)

// UserAgentClassifier classifies user agent string.
type UserAgentClassifier interface {
	Classify(ua string) (*models.UserAgent, error)
}

// VisitorHasher converts client ID to full visitor ID.
type VisitorHasher interface {
	HashClientID(ctx context.Context, clientID, propertyID string) (string, error)
}

const (
	defaultSessionKeyIndex = 5
	defaultUserAgentIndex  = 30
)

// Options of Sessionizer. Zero value means default.
type Options struct {
	// SessionKeyIndex is custom dimension index of session key (cd5 by default)
	SessionKeyIndex int
	// UserAgentIndex is custom dimension index of user agent (cd30 by default)
	UserAgentIndex int
	// Workers is number of goroutines to aggregate sessions (runtime.NumCPU() by default)
	Workers int
	// SkipBots drops sessions of which user agent is classified as bot
	SkipBots bool
}

func (x Options) withDefault() Options {
	if x.SessionKeyIndex <= 0 {
		x.SessionKeyIndex = defaultSessionKeyIndex
	}
	if x.UserAgentIndex <= 0 {
		x.UserAgentIndex = defaultUserAgentIndex
	}
	if x.Workers <= 0 {
		x.Workers = runtime.NumCPU()
	}
	return x
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }
func int64Ptr(n int64) *int64 { return &n }

func nonEmptyPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
