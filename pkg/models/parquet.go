package models

// SessionSummary is a flat row of a session for parquet summary table.
type SessionSummary struct {
	Date           string `parquet:"name=date, type=UTF8, encoding=PLAIN_DICTIONARY" json:"date"`
	VisitID        string `parquet:"name=visit_id, type=UTF8" json:"visit_id"`
	ClientID       string `parquet:"name=client_id, type=UTF8" json:"client_id"`
	FullVisitorID  string `parquet:"name=full_visitor_id, type=UTF8" json:"full_visitor_id"`
	VisitStartTime int64  `parquet:"name=visit_start_time, type=INT64" json:"visit_start_time"`
	Hits           int64  `parquet:"name=hits, type=INT64" json:"hits"`
	PageViews      int64  `parquet:"name=page_views, type=INT64" json:"page_views"`
	TimeOnSite     int64  `parquet:"name=time_on_site, type=INT64" json:"time_on_site"`
	Bounces        int64  `parquet:"name=bounces, type=INT64" json:"bounces"`
	Transactions   int64  `parquet:"name=transactions, type=INT64" json:"transactions"`
	// Revenue is micro units
	Revenue        int64  `parquet:"name=revenue, type=INT64" json:"revenue"`
	Source         string `parquet:"name=source, type=UTF8, encoding=PLAIN_DICTIONARY" json:"source"`
	Medium         string `parquet:"name=medium, type=UTF8, encoding=PLAIN_DICTIONARY" json:"medium"`
	DeviceCategory string `parquet:"name=device_category, type=UTF8, encoding=PLAIN_DICTIONARY" json:"device_category"`
}

// NewSessionSummary flattens SessionRecord. null values are stored as zero.
func NewSessionSummary(r *SessionRecord) *SessionSummary {
	deref := func(p *int64) int64 {
		if p == nil {
			return 0
		}
		return *p
	}

	s := &SessionSummary{
		Date:           r.Date,
		VisitID:        r.VisitID,
		ClientID:       r.ClientID,
		FullVisitorID:  r.FullVisitorID,
		VisitStartTime: r.VisitStartTime,
		Hits:           r.Totals.Hits,
		PageViews:      r.Totals.PageViews,
		TimeOnSite:     deref(r.Totals.TimeOnSite),
		Bounces:        deref(r.Totals.Bounces),
		Transactions:   deref(r.Totals.Transactions),
		Revenue:        deref(r.Totals.TotalTransactionRevenue),
		Source:         r.TrafficSource.Source,
		Medium:         r.TrafficSource.Medium,
	}
	if r.Device.DeviceCategory != nil {
		s.DeviceCategory = *r.Device.DeviceCategory
	}

	return s
}
