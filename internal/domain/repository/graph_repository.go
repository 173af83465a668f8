package repository

import (
	"context"

	"github.com/dylanstetts/listGraphWebhooks/internal/domain/entity"
)

// GraphRepository defines the interface for Microsoft Graph interactions.
type GraphRepository interface {
	// Authenticate acquires a bearer token for the Graph API. When
	// clientSecret is empty an interactive browser login is used.
	Authenticate(ctx context.Context, clientID, tenantID, clientSecret string) (string, error)

	// GetAllSubscriptions follows the collection's continuation links until
	// exhausted and returns every subscription visible to the token.
	GetAllSubscriptions(ctx context.Context, token string) ([]entity.Subscription, error)

	// GetServicePrincipal looks up the service principal for an application
	// id. It returns (nil, nil) when the tenant has no match.
	GetServicePrincipal(ctx context.Context, token, appID string) (*entity.ServicePrincipal, error)
}
