package internal

import (
	"time"

	"github.com/sirupsen/logrus"
)

type profileRecord struct {
	current *time.Time
	total   time.Duration
	max     time.Duration
	count   int64
}

type profileResult struct {
	Total float64 `json:"total"`
	Max   float64 `json:"max"`
	Count int64   `json:"count"`
}

// Profile measures elapsed time of each stage of a batch run.
type Profile struct {
	Records map[string]*profileRecord `json:"records"`
}

// NewProfile is constructor of Profile
func NewProfile() *Profile {
	return &Profile{
		Records: map[string]*profileRecord{},
	}
}

// Start begins measurement of target. Start twice without Stop is a bug.
func (x *Profile) Start(target string) {
	p, ok := x.Records[target]
	if !ok {
		p = &profileRecord{}
		x.Records[target] = p
	}

	if p.current != nil {
		Logger.WithField("target", target).Fatal("target started twice for profile")
	}

	now := time.Now()
	p.current = &now
	p.count++
}

// Stop ends measurement of target.
func (x *Profile) Stop(target string) {
	now := time.Now()

	p, ok := x.Records[target]
	if !ok || p.current == nil {
		Logger.WithField("target", target).Fatal("Not started for profile")
	}

	sub := now.Sub(*p.current)
	p.total += sub
	if p.max < sub {
		p.max = sub
	}

	p.current = nil
}

// Measure runs f between Start and Stop of target.
func (x *Profile) Measure(target string, f func() error) error {
	x.Start(target)
	defer x.Stop(target)
	return f()
}

// Pack returns seconds of each target.
func (x *Profile) Pack() map[string]profileResult {
	v := map[string]profileResult{}
	for k, r := range x.Records {
		v[k] = profileResult{
			Total: r.total.Seconds(),
			Max:   r.max.Seconds(),
			Count: r.count,
		}
	}
	return v
}

// Log writes packed result to Logger.
func (x *Profile) Log() {
	fields := logrus.Fields{}
	for k, v := range x.Pack() {
		fields[k] = v
	}
	Logger.WithFields(fields).Info("Profile")
}
