package adaptor

import (
	"strings"

	"github.com/m-mizutani/gasession/pkg/models"
	"github.com/mssola/useragent"
	"github.com/pkg/errors"
)

// Device categories
const (
	DeviceDesktop = "desktop"
	DeviceMobile  = "mobile"
	DeviceTablet  = "tablet"
)

// UserAgentParser classifies user agent string by mssola/useragent.
type UserAgentParser struct{}

// NewUserAgentParser is constructor of UserAgentParser
func NewUserAgentParser() *UserAgentParser {
	return &UserAgentParser{}
}

// Classify parses ua and returns device category, browser and OS.
func (x *UserAgentParser) Classify(ua string) (*models.UserAgent, error) {
	if strings.TrimSpace(ua) == "" {
		return nil, errors.New("Empty user agent")
	}

	parsed := useragent.New(ua)
	browser, version := parsed.Browser()

	result := &models.UserAgent{
		DeviceCategory:  deviceCategory(ua, parsed),
		Browser:         browser,
		BrowserVersion:  version,
		OperatingSystem: parsed.OSInfo().Name,
		Platform:        parsed.Platform(),
		IsMobile:        parsed.Mobile(),
		IsBot:           parsed.Bot(),
	}
	if result.DeviceCategory == DeviceTablet {
		result.IsMobile = true
	}

	return result, nil
}

func deviceCategory(ua string, parsed *useragent.UserAgent) string {
	switch {
	case strings.Contains(ua, "iPad"):
		return DeviceTablet
	case strings.Contains(ua, "Android") && !strings.Contains(ua, "Mobile"):
		return DeviceTablet
	case parsed.Mobile():
		return DeviceMobile
	default:
		return DeviceDesktop
	}
}
