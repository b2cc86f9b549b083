package transform

import (
	"github.com/m-mizutani/gasession/pkg/models"
	"github.com/sirupsen/logrus"
)

// SkipPolicy returns true if the session should be dropped from output.
type SkipPolicy func(ssn *models.Session) bool

// SkipBots drops a session if user agent of the first hit is a bot.
func SkipBots(classifier UserAgentClassifier, uaIndex int) SkipPolicy {
	return func(ssn *models.Session) bool {
		ua, ok := userAgentOf(ssn.First(), uaIndex)
		if !ok {
			return false
		}

		result, err := classifier.Classify(ua)
		if err != nil {
			logger.WithError(err).WithField("ua", ua).Debug("Fail to classify user agent for skip policy")
			return false
		}
		return result.IsBot
	}
}

// SessionKey returns session key of the hit.
func SessionKey(hit *models.Hit, keyIndex int) (string, error) {
	key, ok := hit.String(models.FieldCustomDimension, keyIndex)
	if !ok {
		return "", ErrNoSessionKey
	}
	return key, nil
}

// GroupSessions partitions ordered hits into sessions. Hits without session
// key are dropped and counted. Sessions matched with a skip policy are
// removed.
func (x *Sessionizer) GroupSessions(hits []*models.Hit) *models.SessionSet {
	set := models.NewSessionSet()

	for _, hit := range hits {
		key, err := SessionKey(hit, x.opt.SessionKeyIndex)
		if err != nil {
			set.Dropped++
			continue
		}
		set.Add(key, hit)
	}

	if len(x.skips) > 0 {
		set.Skipped = set.RemoveIf(func(ssn *models.Session) bool {
			for _, skip := range x.skips {
				if skip(ssn) {
					logger.WithField("session", ssn.Key).Trace("Skip session by policy")
					return true
				}
			}
			return false
		})
	}

	logger.WithFields(logrus.Fields{
		"hits":     len(hits),
		"sessions": len(set.Keys),
		"dropped":  set.Dropped,
		"skipped":  set.Skipped,
	}).Info("Grouped hits into sessions")

	return set
}
