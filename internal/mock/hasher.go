package mock

import (
	"context"
	"errors"
	"sync"
)

// ErrHashFailed is returned by VisitorHasher for failing calls.
var ErrHashFailed = errors.New("hash failed")

// VisitorHasher returns "fv-" + clientID as full visitor ID.
type VisitorHasher struct {
	FailIDs map[string]bool
	// FailCount makes the first N calls fail.
	FailCount int

	mutex sync.Mutex
	calls int
}

// HashClientID of VisitorHasher
func (x *VisitorHasher) HashClientID(ctx context.Context, clientID, propertyID string) (string, error) {
	x.mutex.Lock()
	defer x.mutex.Unlock()

	x.calls++
	if x.calls <= x.FailCount || x.FailIDs[clientID] {
		return "", ErrHashFailed
	}

	return "fv-" + clientID, nil
}

// Calls returns number of HashClientID calls
func (x *VisitorHasher) Calls() int {
	x.mutex.Lock()
	defer x.mutex.Unlock()
	return x.calls
}
