package transform

import (
	"github.com/m-mizutani/gasession/pkg/models"
)

const deviceDesktop = "desktop"

func userAgentOf(hit *models.Hit, uaIndex int) (string, bool) {
	return hit.String(models.FieldCustomDimension, uaIndex)
}

// resolveDevice classifies user agent in the first hit. models.EmptyDevice is
// returned if user agent is not available or classification failed.
func resolveDevice(ssn *models.Session, classifier UserAgentClassifier, uaIndex int) models.Device {
	hit := ssn.First()
	ua, ok := userAgentOf(hit, uaIndex)
	if !ok || classifier == nil {
		return models.EmptyDevice
	}

	result, err := classifier.Classify(ua)
	if err != nil {
		logger.WithError(err).WithField("ua", ua).Warn("Fail to classify user agent")
		return models.EmptyDevice
	}

	device := models.Device{
		Browser:          nonEmptyPtr(result.Browser),
		BrowserVersion:   nonEmptyPtr(result.BrowserVersion),
		BrowserSize:      hit.StringPtr(models.FieldViewportSize),
		OperatingSystem:  nonEmptyPtr(result.OperatingSystem),
		IsMobile:         result.IsMobile,
		Language:         hit.StringPtr(models.FieldLanguage),
		ScreenResolution: hit.StringPtr(models.FieldScreenResolution),
		DeviceCategory:   nonEmptyPtr(result.DeviceCategory),
	}

	if result.DeviceCategory != deviceDesktop {
		device.MobileDeviceModel = nonEmptyPtr(result.Platform)
		device.MobileDeviceInfo = nonEmptyPtr(result.Platform)
	}

	return device
}
