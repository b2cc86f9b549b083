package transform

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/m-mizutani/gasession/pkg/models"
)

var socialReferrerPattern = regexp.MustCompile(`fb|facebook|t.co|twitter|pinterest|linkedin|linked.in|insta|ig|vsco|reddit|digg|myspace`)

// queryKeys maps landing page query parameter to hit field code. When both
// of utm_keyword and utm_term exist, utm_keyword is used.
var queryKeys = []struct {
	param string
	key   string
}{
	{"utm_source", "cs"},
	{"utm_medium", "cm"},
	{"utm_campaign", "cn"},
	{"utm_keyword", "ck"},
	{"utm_term", "ck"},
	{"utm_content", "ct"},
	{"gclid", "gclid"},
	{"fbclid", "fbclid"},
}

const (
	sourceGoogle   = "google"
	sourceDirect   = "direct"
	mediumCPC      = "cpc"
	mediumReferral = "referral"
	mediumNone     = "none"
	socialYes      = "Yes"
	socialNo       = "No"
)

// parseLandingQuery extracts recognized query parameters of landing URL.
func parseLandingQuery(landing string) map[string]string {
	result := map[string]string{}

	pos := strings.Index(landing, "?")
	if pos < 0 {
		return result
	}
	qs := landing[pos+1:]
	if frag := strings.Index(qs, "#"); frag >= 0 {
		qs = qs[:frag]
	}

	// ParseQuery returns valid parameters even if some of them are broken.
	values, _ := url.ParseQuery(qs)
	for _, q := range queryKeys {
		if _, ok := result[q.key]; ok {
			continue
		}
		if v := values.Get(q.param); v != "" {
			result[q.key] = v
		}
	}

	return result
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// ResolveTrafficSource derives acquisition attribution from the first hit of
// the session.
func ResolveTrafficSource(ssn *models.Session) models.TrafficSource {
	hit := ssn.First()
	landing, _ := hit.String(models.FieldDocumentLocation)
	query := parseLandingQuery(landing)

	field := func(f models.Field) string {
		v, _ := hit.String(f)
		return v
	}
	referrer := field(models.FieldDocumentReferrer)

	ts := models.TrafficSource{
		ReferralPath: nonEmptyPtr(referrer),
		Campaign:     nonEmptyPtr(firstNonEmpty(field(models.FieldCampaignName), query["cn"])),
		Keyword:      nonEmptyPtr(firstNonEmpty(field(models.FieldCampaignKeyword), query["ck"])),
		AdContent:    nonEmptyPtr(firstNonEmpty(field(models.FieldCampaignContent), query["ct"])),
		Social:       models.TrafficSocial{HasSocialSourceReferral: socialNo},
	}

	if gclid := firstNonEmpty(query["gclid"], field(models.FieldGclid)); gclid != "" {
		ts.Source = sourceGoogle
		ts.Medium = mediumCPC
		ts.AdwordsClickInfo.Gclid = strPtr(gclid)
	} else {
		ts.Source = firstNonEmpty(field(models.FieldCampaignSource), query["cs"], referrer, sourceDirect)

		defaultMedium := mediumNone
		if referrer != "" {
			defaultMedium = mediumReferral
		}
		ts.Medium = firstNonEmpty(field(models.FieldCampaignMedium), query["cm"], defaultMedium)
	}

	if referrer != "" && socialReferrerPattern.MatchString(referrer) {
		ts.Social.HasSocialSourceReferral = socialYes
	}

	return ts
}
