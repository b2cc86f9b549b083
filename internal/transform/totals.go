package transform

import (
	"time"

	"github.com/m-mizutani/gasession/pkg/models"
)

// lastTimestamp returns timestamp of the last hit that has one.
func lastTimestamp(ssn *models.Session) time.Time {
	for j := len(ssn.Hits) - 1; j >= 0; j-- {
		if ssn.Hits[j].HasTimestamp() {
			return ssn.Hits[j].Timestamp
		}
	}
	return ssn.First().Timestamp
}

func computeTotals(ssn *models.Session) models.Totals {
	var pageViews, events, nonInteractions, purchases int64
	var revenue int64

	for _, hit := range ssn.Hits {
		switch t, _ := hit.String(models.FieldHitType); t {
		case "pageview":
			pageViews++
		case "event":
			events++
		}

		if isNonInteraction(hit) {
			nonInteractions++
		}

		if pa, _ := hit.String(models.FieldProductAction); pa == purchaseAction {
			purchases++
			if tr, ok := hit.Float(models.FieldTransactionRevenue); ok {
				revenue += models.ToMicro(tr)
			}
		}
	}

	totals := models.Totals{
		Hits:       pageViews + events,
		PageViews:  pageViews,
		TimeOnSite: int64Ptr(int64(lastTimestamp(ssn).Sub(ssn.First().Timestamp) / time.Second)),
	}

	if purchases > 0 {
		totals.Transactions = int64Ptr(purchases)
		totals.TotalTransactionRevenue = int64Ptr(revenue)
	}

	if totals.Hits-nonInteractions <= 1 {
		totals.Bounces = int64Ptr(1)
	}

	return totals
}
