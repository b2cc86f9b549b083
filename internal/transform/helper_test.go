package transform_test

import (
	"time"

	"github.com/m-mizutani/gasession/pkg/models"
)

var baseTime = time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC)

type row map[string]interface{}

// newSession creates a session of which i-th hit is at baseTime + i seconds.
func newSession(key string, rows ...row) *models.Session {
	ssn := &models.Session{Key: key}
	for i, r := range rows {
		ssn.Hits = append(ssn.Hits, models.NewHit(baseTime.Add(time.Duration(i)*time.Second), r))
	}
	return ssn
}

func newHit(r row) *models.Hit {
	return models.NewHit(baseTime, r)
}

func idx(n int64) *int64 { return &n }
