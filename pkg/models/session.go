package models

// Session is an ordered group of hits sharing one session key. It is created
// by grouping and must not be modified after that.
type Session struct {
	Key  string
	Hits []*Hit
}

// Len returns number of hits
func (x *Session) Len() int { return len(x.Hits) }

// First returns the first hit (entrance). Returns nil for empty session.
func (x *Session) First() *Hit {
	if len(x.Hits) == 0 {
		return nil
	}
	return x.Hits[0]
}

// Last returns the last hit. Returns nil for empty session.
func (x *Session) Last() *Hit {
	if len(x.Hits) == 0 {
		return nil
	}
	return x.Hits[len(x.Hits)-1]
}

// SessionSet is result of grouping hits. Keys has session keys in first-seen
// order.
type SessionSet struct {
	Keys     []string
	Sessions map[string]*Session

	// Dropped is number of hits without session key.
	Dropped int
	// Skipped is number of sessions removed by skip policy.
	Skipped int
}

// NewSessionSet is constructor of SessionSet
func NewSessionSet() *SessionSet {
	return &SessionSet{
		Sessions: map[string]*Session{},
	}
}

// Add appends a hit to the session of key.
func (x *SessionSet) Add(key string, hit *Hit) {
	ssn, ok := x.Sessions[key]
	if !ok {
		ssn = &Session{Key: key}
		x.Sessions[key] = ssn
		x.Keys = append(x.Keys, key)
	}
	ssn.Hits = append(ssn.Hits, hit)
}

// RemoveIf deletes sessions matched with f and keeps order of other keys.
// Returns number of removed sessions.
func (x *SessionSet) RemoveIf(f func(ssn *Session) bool) int {
	removed := 0
	keys := x.Keys[:0]
	for _, k := range x.Keys {
		if f(x.Sessions[k]) {
			delete(x.Sessions, k)
			removed++
			continue
		}
		keys = append(keys, k)
	}
	x.Keys = keys
	return removed
}

// Ordered returns sessions in first-seen order.
func (x *SessionSet) Ordered() []*Session {
	out := make([]*Session, 0, len(x.Keys))
	for _, k := range x.Keys {
		out = append(out, x.Sessions[k])
	}
	return out
}

// HitCount returns total number of hits in the set.
func (x *SessionSet) HitCount() int {
	n := 0
	for _, ssn := range x.Sessions {
		n += ssn.Len()
	}
	return n
}
