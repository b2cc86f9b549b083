package models

// Output records. Order of struct fields is order of keys in encoded JSON and
// msgpack, then do not reorder them. A pointer field is encoded as null when
// value is not available.

// SessionRecord is one session row of the output table.
type SessionRecord struct {
	ClientID         string        `json:"clientId" msgpack:"clientId"`
	FullVisitorID    string        `json:"fullVisitorId" msgpack:"fullVisitorId"`
	VisitID          string        `json:"visitId" msgpack:"visitId"`
	VisitStartTime   int64         `json:"visitStartTime" msgpack:"visitStartTime"`
	Date             string        `json:"date" msgpack:"date"`
	Totals           Totals        `json:"totals" msgpack:"totals"`
	TrafficSource    TrafficSource `json:"trafficSource" msgpack:"trafficSource"`
	Device           Device        `json:"device" msgpack:"device"`
	CustomDimensions []CustomField `json:"customDimensions" msgpack:"customDimensions"`
	CustomMetrics    []CustomField `json:"customMetrics" msgpack:"customMetrics"`
	GeoNetwork       GeoNetwork    `json:"geoNetwork" msgpack:"geoNetwork"`
	Hits             []HitRecord   `json:"hits" msgpack:"hits"`
	ChannelGrouping  *string       `json:"channelGrouping" msgpack:"channelGrouping"`
}

// Totals is summary of a session
type Totals struct {
	Hits                    int64  `json:"hits" msgpack:"hits"`
	PageViews               int64  `json:"pageViews" msgpack:"pageViews"`
	TimeOnSite              *int64 `json:"timeOnSite" msgpack:"timeOnSite"`
	Bounces                 *int64 `json:"bounces" msgpack:"bounces"`
	TotalTransactionRevenue *int64 `json:"totalTransactionRevenue" msgpack:"totalTransactionRevenue"`
	Transactions            *int64 `json:"transactions" msgpack:"transactions"`
}

// TrafficSource is acquisition attribution of a session
type TrafficSource struct {
	ReferralPath     *string          `json:"referralPath" msgpack:"referralPath"`
	Campaign         *string          `json:"campaign" msgpack:"campaign"`
	Source           string           `json:"source" msgpack:"source"`
	Medium           string           `json:"medium" msgpack:"medium"`
	Keyword          *string          `json:"keyword" msgpack:"keyword"`
	AdContent        *string          `json:"adContent" msgpack:"adContent"`
	AdwordsClickInfo AdwordsClickInfo `json:"adwordsClickInfo" msgpack:"adwordsClickInfo"`
	Social           TrafficSocial    `json:"social" msgpack:"social"`
}

// AdwordsClickInfo has gclid of landing page
type AdwordsClickInfo struct {
	Gclid *string `json:"gclid" msgpack:"gclid"`
}

// TrafficSocial indicates if referrer is a social network
type TrafficSocial struct {
	HasSocialSourceReferral string `json:"hasSocialSourceReferral" msgpack:"hasSocialSourceReferral"`
}

// Device is classification result of user agent
type Device struct {
	Browser              *string `json:"browser" msgpack:"browser"`
	BrowserVersion       *string `json:"browserVersion" msgpack:"browserVersion"`
	BrowserSize          *string `json:"browserSize" msgpack:"browserSize"`
	OperatingSystem      *string `json:"operatingSystem" msgpack:"operatingSystem"`
	IsMobile             bool    `json:"isMobile" msgpack:"isMobile"`
	MobileDeviceBranding *string `json:"mobileDeviceBranding" msgpack:"mobileDeviceBranding"`
	MobileDeviceModel    *string `json:"mobileDeviceModel" msgpack:"mobileDeviceModel"`
	MobileDeviceInfo     *string `json:"mobileDeviceInfo" msgpack:"mobileDeviceInfo"`
	Language             *string `json:"language" msgpack:"language"`
	ScreenResolution     *string `json:"screenResolution" msgpack:"screenResolution"`
	DeviceCategory       *string `json:"deviceCategory" msgpack:"deviceCategory"`
}

// GeoNetwork is not resolved because hit rows have no IP address.
type GeoNetwork struct {
	Continent       *string `json:"continent" msgpack:"continent"`
	SubContinent    *string `json:"subContinent" msgpack:"subContinent"`
	Region          *string `json:"region" msgpack:"region"`
	Metro           *string `json:"metro" msgpack:"metro"`
	City            *string `json:"city" msgpack:"city"`
	CityID          *string `json:"cityId" msgpack:"cityId"`
	Latitude        *string `json:"latitude" msgpack:"latitude"`
	Longitude       *string `json:"longitude" msgpack:"longitude"`
	NetworkDomain   *string `json:"networkDomain" msgpack:"networkDomain"`
	NetworkLocation *string `json:"networkLocation" msgpack:"networkLocation"`
}

// CustomField is an entry of custom dimensions/metrics. Index is nil only in
// the placeholder returned by EmptyCustomFields.
type CustomField struct {
	Index *int64      `json:"index" msgpack:"index"`
	Value interface{} `json:"value" msgpack:"value"`
}

// IsPlaceholder returns true if the entry has no index.
func (x CustomField) IsPlaceholder() bool { return x.Index == nil }

// HitRecord is one hit in a session record.
type HitRecord struct {
	HitNumber        int64            `json:"hitNumber" msgpack:"hitNumber"`
	Time             int64            `json:"time" msgpack:"time"`
	Hour             int              `json:"hour" msgpack:"hour"`
	Minute           int              `json:"minute" msgpack:"minute"`
	IsInteraction    bool             `json:"isInteraction" msgpack:"isInteraction"`
	IsEntrance       *bool            `json:"isEntrance" msgpack:"isEntrance"`
	IsExit           *bool            `json:"isExit" msgpack:"isExit"`
	Referrer         *string          `json:"referrer" msgpack:"referrer"`
	Type             *string          `json:"type" msgpack:"type"`
	Page             Page             `json:"page" msgpack:"page"`
	Transaction      Transaction      `json:"transaction" msgpack:"transaction"`
	EventInfo        EventInfo        `json:"eventInfo" msgpack:"eventInfo"`
	Product          []Product        `json:"product" msgpack:"product"`
	Promotion        Promotion        `json:"promotion" msgpack:"promotion"`
	ECommerceAction  ECommerceAction  `json:"eCommerceAction" msgpack:"eCommerceAction"`
	Experiment       Experiment       `json:"experiment" msgpack:"experiment"`
	CustomDimensions []CustomField    `json:"customDimensions" msgpack:"customDimensions"`
	CustomMetrics    []CustomField    `json:"customMetrics" msgpack:"customMetrics"`
	Social           *Social          `json:"social" msgpack:"social"`
	LatencyTracking  *LatencyTracking `json:"latencyTracking" msgpack:"latencyTracking"`
	ContentGroup     ContentGroup     `json:"contentGroup" msgpack:"contentGroup"`
	DataSource       *string          `json:"datasource" msgpack:"datasource"`
}

// Page is page information of a hit
type Page struct {
	PagePath       *string `json:"pagePath" msgpack:"pagePath"`
	Hostname       *string `json:"hostname" msgpack:"hostname"`
	PageTitle      *string `json:"pageTitle" msgpack:"pageTitle"`
	PagePathLevel1 *string `json:"pagePathLevel1" msgpack:"pagePathLevel1"`
	PagePathLevel2 *string `json:"pagePathLevel2" msgpack:"pagePathLevel2"`
	PagePathLevel3 *string `json:"pagePathLevel3" msgpack:"pagePathLevel3"`
	PagePathLevel4 *string `json:"pagePathLevel4" msgpack:"pagePathLevel4"`
	SearchKeyword  *string `json:"searchKeyword" msgpack:"searchKeyword"`
}

// Transaction is set only for purchase hit. Revenue, tax and shipping are
// micro units.
type Transaction struct {
	TransactionID       *string `json:"transactionId" msgpack:"transactionId"`
	TransactionRevenue  *int64  `json:"transactionRevenue" msgpack:"transactionRevenue"`
	TransactionTax      *int64  `json:"transactionTax" msgpack:"transactionTax"`
	TransactionShipping *int64  `json:"transactionShipping" msgpack:"transactionShipping"`
	Affiliation         *string `json:"affiliation" msgpack:"affiliation"`
	CurrencyCode        *string `json:"currencyCode" msgpack:"currencyCode"`
}

// EventInfo is event tracking values
type EventInfo struct {
	EventCategory *string `json:"eventCategory" msgpack:"eventCategory"`
	EventAction   *string `json:"eventAction" msgpack:"eventAction"`
	EventLabel    *string `json:"eventLabel" msgpack:"eventLabel"`
	EventValue    *int64  `json:"eventValue" msgpack:"eventValue"`
}

// Product is one product of enhanced ecommerce. ProductPrice is micro units.
type Product struct {
	ProductSKU          *string       `json:"productSKU" msgpack:"productSKU"`
	V2ProductName       *string       `json:"v2ProductName" msgpack:"v2ProductName"`
	V2ProductCategory   *string       `json:"v2ProductCategory" msgpack:"v2ProductCategory"`
	ProductVariant      *string       `json:"productVariant" msgpack:"productVariant"`
	ProductBrand        *string       `json:"productBrand" msgpack:"productBrand"`
	ProductRevenue      *int64        `json:"productRevenue" msgpack:"productRevenue"`
	ProductPrice        *int64        `json:"productPrice" msgpack:"productPrice"`
	ProductQuantity     *int64        `json:"productQuantity" msgpack:"productQuantity"`
	IsImpression        *bool         `json:"isImpression" msgpack:"isImpression"`
	IsClick             *bool         `json:"isClick" msgpack:"isClick"`
	CustomDimensions    []CustomField `json:"customDimensions" msgpack:"customDimensions"`
	CustomMetrics       []CustomField `json:"customMetrics" msgpack:"customMetrics"`
	ProductListName     *string       `json:"productListName" msgpack:"productListName"`
	ProductListPosition *int64        `json:"productListPosition" msgpack:"productListPosition"`
}

// Promotion is internal promotion of a hit
type Promotion struct {
	PromoCreative       *string             `json:"promoCreative" msgpack:"promoCreative"`
	PromoID             *string             `json:"promoId" msgpack:"promoId"`
	PromoName           *string             `json:"promoName" msgpack:"promoName"`
	PromoPosition       *string             `json:"promoPosition" msgpack:"promoPosition"`
	PromotionActionInfo PromotionActionInfo `json:"promotionActionInfo" msgpack:"promotionActionInfo"`
}

// PromotionActionInfo is view/click flags of promotion
type PromotionActionInfo struct {
	PromoIsView  *bool `json:"promoIsView" msgpack:"promoIsView"`
	PromoIsClick *bool `json:"promoIsClick" msgpack:"promoIsClick"`
}

// ECommerceAction is action of enhanced ecommerce
type ECommerceAction struct {
	ActionType string  `json:"action_type" msgpack:"action_type"`
	Option     *string `json:"option" msgpack:"option"`
	Step       *int64  `json:"step" msgpack:"step"`
}

// Experiment is experiment ID and variant of a hit
type Experiment struct {
	ExperimentID      *string `json:"experimentId" msgpack:"experimentId"`
	ExperimentVariant *string `json:"experimentVariant" msgpack:"experimentVariant"`
}

// ContentGroup has content groups of current and previous hit
type ContentGroup struct {
	ContentGroup1         string `json:"contentGroup1" msgpack:"contentGroup1"`
	ContentGroup2         string `json:"contentGroup2" msgpack:"contentGroup2"`
	ContentGroup3         string `json:"contentGroup3" msgpack:"contentGroup3"`
	ContentGroup4         string `json:"contentGroup4" msgpack:"contentGroup4"`
	ContentGroup5         string `json:"contentGroup5" msgpack:"contentGroup5"`
	PreviousContentGroup1 string `json:"previousContentGroup1" msgpack:"previousContentGroup1"`
	PreviousContentGroup2 string `json:"previousContentGroup2" msgpack:"previousContentGroup2"`
	PreviousContentGroup3 string `json:"previousContentGroup3" msgpack:"previousContentGroup3"`
	PreviousContentGroup4 string `json:"previousContentGroup4" msgpack:"previousContentGroup4"`
	PreviousContentGroup5 string `json:"previousContentGroup5" msgpack:"previousContentGroup5"`
}

// Social is social interaction of a hit. Hit rows have no social interaction
// fields and it is always encoded as null.
type Social struct {
	SocialInteractionNetwork       *string `json:"socialInteractionNetwork" msgpack:"socialInteractionNetwork"`
	SocialInteractionAction        *string `json:"socialInteractionAction" msgpack:"socialInteractionAction"`
	SocialInteractions             *int64  `json:"socialInteractions" msgpack:"socialInteractions"`
	SocialInteractionTarget        *string `json:"socialInteractionTarget" msgpack:"socialInteractionTarget"`
	SocialNetwork                  *string `json:"socialNetwork" msgpack:"socialNetwork"`
	UniqueSocialInteractions       *int64  `json:"uniqueSocialInteractions" msgpack:"uniqueSocialInteractions"`
	HasSocialSourceReferral        *string `json:"hasSocialSourceReferral" msgpack:"hasSocialSourceReferral"`
	SocialInteractionNetworkAction *string `json:"socialInteractionNetworkAction" msgpack:"socialInteractionNetworkAction"`
}

// LatencyTracking is site speed values. timing hits are filtered out before
// sessionizing, then it is always encoded as null.
type LatencyTracking struct {
	PageLoadSample          *int64  `json:"pageLoadSample" msgpack:"pageLoadSample"`
	PageLoadTime            *int64  `json:"pageLoadTime" msgpack:"pageLoadTime"`
	PageDownloadTime        *int64  `json:"pageDownloadTime" msgpack:"pageDownloadTime"`
	RedirectionTime         *int64  `json:"redirectionTime" msgpack:"redirectionTime"`
	SpeedMetricsSample      *int64  `json:"speedMetricsSample" msgpack:"speedMetricsSample"`
	DomainLookupTime        *int64  `json:"domainLookupTime" msgpack:"domainLookupTime"`
	ServerConnectionTime    *int64  `json:"serverConnectionTime" msgpack:"serverConnectionTime"`
	ServerResponseTime      *int64  `json:"serverResponseTime" msgpack:"serverResponseTime"`
	DomLatencyMetricsSample *int64  `json:"domLatencyMetricsSample" msgpack:"domLatencyMetricsSample"`
	DomInteractiveTime      *int64  `json:"domInteractiveTime" msgpack:"domInteractiveTime"`
	DomContentLoadedTime    *int64  `json:"domContentLoadedTime" msgpack:"domContentLoadedTime"`
	UserTimingValue         *int64  `json:"userTimingValue" msgpack:"userTimingValue"`
	UserTimingSample        *int64  `json:"userTimingSample" msgpack:"userTimingSample"`
	UserTimingVariable      *string `json:"userTimingVariable" msgpack:"userTimingVariable"`
	UserTimingCategory      *string `json:"userTimingCategory" msgpack:"userTimingCategory"`
	UserTimingLabel         *string `json:"userTimingLabel" msgpack:"userTimingLabel"`
}

// Placeholders. Struct values are copied by assignment. Slices are built by
// function every time because callers may append to them.
var (
	// EmptyDevice is used when user agent is not available or not classified.
	EmptyDevice = Device{}
	// EmptyGeoNetwork is geoNetwork of all sessions.
	EmptyGeoNetwork = GeoNetwork{}
	// EmptyPromotion is promotion of all hits.
	EmptyPromotion = Promotion{}
)

// EmptyCustomFields returns the one-element placeholder of custom fields.
func EmptyCustomFields() []CustomField {
	return []CustomField{{Index: nil, Value: nil}}
}

// EmptyProduct returns the all-null product.
func EmptyProduct() Product {
	return Product{
		CustomDimensions: EmptyCustomFields(),
		CustomMetrics:    EmptyCustomFields(),
	}
}

// UserAgent is result of user agent classification.
type UserAgent struct {
	DeviceCategory  string
	Browser         string
	BrowserVersion  string
	OperatingSystem string
	Platform        string
	IsMobile        bool
	IsBot           bool
}
