package transform

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/m-mizutani/gasession/pkg/models"
)

const (
	contentGroupSize     = 5
	contentGroupNotSet   = "(not set)"
	contentGroupEntrance = "(entrance)"

	actionTypeUnknown = "0"
	nonInteraction    = "1"
	purchaseAction    = "purchase"
)

var hitTypes = map[string]string{
	"pageview":    "PAGE",
	"transaction": "TRANSACTION",
	"event":       "EVENT",
	"screenview":  "APPVIEW",
	"social":      "SOCIAL",
	"exception":   "EXCEPTION",
	"item":        "ITEM",
	"timing":      "TIMING",
}

var actionTypes = map[string]string{
	"click":           "1",
	"detail":          "2",
	"add":             "3",
	"remove":          "4",
	"checkout":        "5",
	"purchase":        "6",
	"refund":          "7",
	"checkout_option": "8",
}

var experimentPattern = regexp.MustCompile(`^(.*)\.(\d+)$`)

func isNonInteraction(hit *models.Hit) bool {
	ni, _ := hit.String(models.FieldNonInteraction)
	return ni == nonInteraction
}

// exitIndex scans hits backward and returns index of the last interactive
// hit. -1 if all hits are non-interaction.
func exitIndex(ssn *models.Session) int {
	for j := len(ssn.Hits) - 1; j >= 0; j-- {
		if !isNonInteraction(ssn.Hits[j]) {
			return j
		}
	}
	return -1
}

// TransformHit converts hitIndex-th hit of the session to HitRecord.
func TransformHit(ssn *models.Session, hitIndex int) models.HitRecord {
	return transformHit(ssn, hitIndex, exitIndex(ssn))
}

func transformHit(ssn *models.Session, i, exit int) models.HitRecord {
	hit := ssn.Hits[i]
	first := ssn.First()

	// A hit without timestamp is placed at start of the session.
	ts := hit.Timestamp
	if !hit.HasTimestamp() {
		ts = first.Timestamp
	}
	ts = ts.UTC()

	record := models.HitRecord{
		HitNumber:       int64(i + 1),
		Time:            ts.Sub(first.Timestamp).Milliseconds(),
		Hour:            ts.Hour(),
		Minute:          ts.Minute(),
		IsInteraction:   !isNonInteraction(hit),
		Referrer:        hit.StringPtr(models.FieldDocumentReferrer),
		Type:            hitType(hit),
		Page:            buildPage(hit),
		Transaction:     buildTransaction(hit),
		EventInfo:       buildEventInfo(hit),
		Product:         BuildProducts(ssn, i),
		Promotion:       models.EmptyPromotion,
		ECommerceAction: buildECommerceAction(hit),
		Experiment:      buildExperiment(hit),
		ContentGroup:    buildContentGroup(ssn, i),
	}

	record.CustomDimensions = ExtractCustomFields(hit, Family(models.FieldCustomDimension),
		MaxCustomIndex, KindDimension, ScopeHit)
	record.CustomMetrics = ExtractCustomFields(hit, Family(models.FieldCustomMetric),
		MaxCustomIndex, KindMetric, ScopeHit)

	if i == 0 {
		record.IsEntrance = boolPtr(true)
	}
	if i == exit {
		record.IsExit = boolPtr(true)
	}

	return record
}

func hitType(hit *models.Hit) *string {
	t, ok := hit.String(models.FieldHitType)
	if !ok {
		return nil
	}
	if v, ok := hitTypes[t]; ok {
		return &v
	}
	return strPtr(strings.ToUpper(t))
}

func buildPage(hit *models.Hit) models.Page {
	page := models.Page{
		PageTitle: hit.StringPtr(models.FieldDocumentTitle),
	}

	dl, ok := hit.String(models.FieldDocumentLocation)
	if !ok {
		return page
	}
	u, err := url.Parse(dl)
	if err != nil {
		logger.WithField("dl", dl).WithError(err).Debug("Fail to parse document location")
		return page
	}

	page.Hostname = nonEmptyPtr(u.Hostname())
	page.PagePath = nonEmptyPtr(u.Path)

	levels := []**string{
		&page.PagePathLevel1,
		&page.PagePathLevel2,
		&page.PagePathLevel3,
		&page.PagePathLevel4,
	}
	segments := strings.Split(u.Path, "/")
	for n, level := range levels {
		*level = strPtr(pagePathLevel(segments, n+1))
	}

	return page
}

// pagePathLevel returns n-th directory of path as "/dir/". Returns empty
// string if the path is not deep enough.
func pagePathLevel(segments []string, n int) string {
	if n >= len(segments) {
		return ""
	}
	if segments[n] == "" {
		return "/"
	}
	return "/" + segments[n] + "/"
}

func microPtr(hit *models.Hit, f models.Field) *int64 {
	v, ok := hit.Float(f)
	if !ok {
		return nil
	}
	return int64Ptr(models.ToMicro(v))
}

func buildTransaction(hit *models.Hit) models.Transaction {
	if pa, _ := hit.String(models.FieldProductAction); pa != purchaseAction {
		return models.Transaction{}
	}

	return models.Transaction{
		TransactionID:       hit.StringPtr(models.FieldTransactionID),
		TransactionRevenue:  microPtr(hit, models.FieldTransactionRevenue),
		TransactionTax:      microPtr(hit, models.FieldTransactionTax),
		TransactionShipping: microPtr(hit, models.FieldTransactionShipping),
		Affiliation:         hit.StringPtr(models.FieldAffiliation),
		CurrencyCode:        hit.StringPtr(models.FieldCurrencyCode),
	}
}

func buildEventInfo(hit *models.Hit) models.EventInfo {
	return models.EventInfo{
		EventCategory: hit.StringPtr(models.FieldEventCategory),
		EventAction:   hit.StringPtr(models.FieldEventAction),
		EventLabel:    hit.StringPtr(models.FieldEventLabel),
		EventValue:    hit.IntPtr(models.FieldEventValue),
	}
}

func buildECommerceAction(hit *models.Hit) models.ECommerceAction {
	action := models.ECommerceAction{
		ActionType: actionTypeUnknown,
		Option:     hit.StringPtr(models.FieldCheckoutOption),
		Step:       hit.IntPtr(models.FieldCheckoutStep),
	}

	if pa, ok := hit.String(models.FieldProductAction); ok {
		if v, ok := actionTypes[pa]; ok {
			action.ActionType = v
		}
	}

	return action
}

func buildExperiment(hit *models.Hit) models.Experiment {
	exp, ok := hit.String(models.FieldExperiment)
	if !ok {
		return models.Experiment{}
	}

	m := experimentPattern.FindStringSubmatch(exp)
	if m == nil {
		return models.Experiment{}
	}

	return models.Experiment{
		ExperimentID:      strPtr(m[1]),
		ExperimentVariant: strPtr(m[2]),
	}
}

func contentGroups(hit *models.Hit) [contentGroupSize]string {
	var groups [contentGroupSize]string
	for n := 0; n < contentGroupSize; n++ {
		if v, ok := hit.String(models.FieldContentGroup, n+1); ok {
			groups[n] = v
		} else {
			groups[n] = contentGroupNotSet
		}
	}
	return groups
}

func buildContentGroup(ssn *models.Session, i int) models.ContentGroup {
	current := contentGroups(ssn.Hits[i])

	var previous [contentGroupSize]string
	if i == 0 {
		for n := range previous {
			previous[n] = contentGroupEntrance
		}
	} else {
		previous = contentGroups(ssn.Hits[i-1])
	}

	return models.ContentGroup{
		ContentGroup1:         current[0],
		ContentGroup2:         current[1],
		ContentGroup3:         current[2],
		ContentGroup4:         current[3],
		ContentGroup5:         current[4],
		PreviousContentGroup1: previous[0],
		PreviousContentGroup2: previous[1],
		PreviousContentGroup3: previous[2],
		PreviousContentGroup4: previous[3],
		PreviousContentGroup5: previous[4],
	}
}
