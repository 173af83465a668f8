package usecase

import (
	"context"

	"github.com/dylanstetts/listGraphWebhooks/internal/domain/entity"
	"github.com/dylanstetts/listGraphWebhooks/internal/domain/repository"
)

// ApplicationResolver resolves application ids to display names through the
// directory, memoizing results so each distinct id costs at most one lookup
// per run. The cache belongs to the resolver instance, not the package, so a
// run stays side-effect free.
type ApplicationResolver struct {
	graphRepo repository.GraphRepository
	token     string
	cache     map[string]entity.ApplicationInfo

	// lookupErrors collects per-id failure messages for the caller to surface
	// as warnings; a failed lookup never aborts the run.
	lookupErrors map[string]error
}

// NewApplicationResolver creates a resolver with an empty per-run cache.
func NewApplicationResolver(graphRepo repository.GraphRepository, token string) *ApplicationResolver {
	return &ApplicationResolver{
		graphRepo:    graphRepo,
		token:        token,
		cache:        make(map[string]entity.ApplicationInfo),
		lookupErrors: make(map[string]error),
	}
}

// Resolve returns the ApplicationInfo for an application id. Cache hits make
// no network call. A lookup miss and a lookup failure are both terminal,
// cached outcomes distinguished only by their display-name sentinel.
func (r *ApplicationResolver) Resolve(ctx context.Context, appID string) entity.ApplicationInfo {
	if info, ok := r.cache[appID]; ok {
		return info
	}

	info := entity.ApplicationInfo{ApplicationID: appID}

	sp, err := r.graphRepo.GetServicePrincipal(ctx, r.token, appID)
	switch {
	case err != nil:
		info.DisplayName = entity.DisplayNameLookupError
		r.lookupErrors[appID] = err
	case sp == nil:
		info.DisplayName = entity.DisplayNameNotFound
	default:
		info.DisplayName = sp.DisplayName
		if info.DisplayName == "" {
			info.DisplayName = entity.UnknownApplicationID
		}
		if sp.ID != "" {
			id := sp.ID
			info.ServicePrincipalID = &id
		}
	}

	r.cache[appID] = info
	return info
}

// LookupErrors returns the failures absorbed during resolution, keyed by
// application id.
func (r *ApplicationResolver) LookupErrors() map[string]error {
	return r.lookupErrors
}
