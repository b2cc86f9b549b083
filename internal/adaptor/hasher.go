package adaptor

import (
	"context"

	"github.com/pkg/errors"
	analytics "google.golang.org/api/analytics/v3"
	"google.golang.org/api/option"
)

const hashClientIDRequestKind = "analytics#hashClientIdRequest"

// GAHasher converts client ID to full visitor ID by Google Analytics
// Management API (management.clientId.hashClientId).
type GAHasher struct {
	svc *analytics.Service
}

// NewGAHasher creates GAHasher with service account credentials file.
// Application default credentials are used if credentialsFile is empty.
func NewGAHasher(ctx context.Context, credentialsFile string) (*GAHasher, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	svc, err := analytics.NewService(ctx, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "Fail to create analytics service")
	}

	return &GAHasher{svc: svc}, nil
}

// HashClientID calls hashClientId API.
func (x *GAHasher) HashClientID(ctx context.Context, clientID, propertyID string) (string, error) {
	req := &analytics.HashClientIdRequest{
		ClientId:      clientID,
		WebPropertyId: propertyID,
		Kind:          hashClientIDRequestKind,
	}

	resp, err := x.svc.Management.ClientId.HashClientId(req).Context(ctx).Do()
	if err != nil {
		return "", errors.Wrapf(err, "Fail to hash client ID: %s", clientID)
	}

	return resp.HashedClientId, nil
}
