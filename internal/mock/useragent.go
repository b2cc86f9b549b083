package mock

import (
	"github.com/m-mizutani/gasession/pkg/models"
)

// UserAgentClassifier returns result registered in Results. Unknown user
// agent is classified as desktop Chrome.
type UserAgentClassifier struct {
	Results map[string]*models.UserAgent
	Err     error
}

// Classify of UserAgentClassifier looks up Results
func (x *UserAgentClassifier) Classify(ua string) (*models.UserAgent, error) {
	if x.Err != nil {
		return nil, x.Err
	}
	if r, ok := x.Results[ua]; ok {
		return r, nil
	}

	return &models.UserAgent{
		DeviceCategory:  "desktop",
		Browser:         "Chrome",
		BrowserVersion:  "80.0",
		OperatingSystem: "Windows",
		Platform:        "Windows",
	}, nil
}
