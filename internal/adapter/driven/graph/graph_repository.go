package graph

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/dylanstetts/listGraphWebhooks/internal/domain/entity"
	"github.com/dylanstetts/listGraphWebhooks/internal/domain/repository"
)

const defaultEndpoint = "https://graph.microsoft.com/v1.0"

// Delegated scopes for the interactive flow; app-only tokens use .default.
var (
	delegatedScopes = []string{
		"https://graph.microsoft.com/Subscription.Read.All",
		"https://graph.microsoft.com/Application.Read.All",
	}
	appOnlyScopes = []string{"https://graph.microsoft.com/.default"}
)

// GraphRepositoryImpl implements the GraphRepository against the Graph REST
// endpoint, caching the acquired credential for the lifetime of the run.
type GraphRepositoryImpl struct {
	endpoint   string
	httpClient *http.Client

	mu   sync.Mutex
	cred azcore.TokenCredential
}

// NewGraphRepository creates a new implementation of the GraphRepository.
func NewGraphRepository() repository.GraphRepository {
	return &GraphRepositoryImpl{
		endpoint:   defaultEndpoint,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Authenticate acquires a bearer token for the Graph API. A client secret
// selects the app-only flow; otherwise the user signs in through the browser,
// matching how an admin runs the tool ad hoc.
func (r *GraphRepositoryImpl) Authenticate(ctx context.Context, clientID, tenantID, clientSecret string) (string, error) {
	cred, scopes, err := r.getCredential(clientID, tenantID, clientSecret)
	if err != nil {
		return "", err
	}

	tok, err := cred.GetToken(ctx, policy.TokenRequestOptions{Scopes: scopes})
	if err != nil {
		return "", fmt.Errorf("failed to acquire Graph token: %w", err)
	}

	return tok.Token, nil
}

func (r *GraphRepositoryImpl) getCredential(clientID, tenantID, clientSecret string) (azcore.TokenCredential, []string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	scopes := delegatedScopes
	if clientSecret != "" {
		scopes = appOnlyScopes
	}

	if r.cred != nil {
		return r.cred, scopes, nil
	}

	var (
		cred azcore.TokenCredential
		err  error
	)
	if clientSecret != "" {
		cred, err = azidentity.NewClientSecretCredential(tenantID, clientID, clientSecret, nil)
	} else {
		cred, err = azidentity.NewInteractiveBrowserCredential(&azidentity.InteractiveBrowserCredentialOptions{
			ClientID: clientID,
			TenantID: tenantID,
		})
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create Graph credential: %w", err)
	}

	r.cred = cred
	return cred, scopes, nil
}

// subscriptionsPage is the Graph collection envelope for one result page.
type subscriptionsPage struct {
	Value    []entity.Subscription `json:"value"`
	NextLink string                `json:"@odata.nextLink"`
}

// GetAllSubscriptions walks the subscriptions collection following
// @odata.nextLink until the server stops returning one. Any failed page
// aborts the whole fetch; partial results are never returned.
func (r *GraphRepositoryImpl) GetAllSubscriptions(ctx context.Context, token string) ([]entity.Subscription, error) {
	all := []entity.Subscription{}
	next := r.endpoint + "/subscriptions"

	for next != "" {
		var page subscriptionsPage
		if err := r.doGet(ctx, next, token, &page); err != nil {
			return nil, fmt.Errorf("failed to fetch subscriptions: %w", err)
		}

		all = append(all, page.Value...)
		next = page.NextLink
	}

	return all, nil
}

type servicePrincipalsPage struct {
	Value []entity.ServicePrincipal `json:"value"`
}

// GetServicePrincipal runs an exact-match $filter query against the
// servicePrincipals collection. A tenant without a match yields (nil, nil).
func (r *GraphRepositoryImpl) GetServicePrincipal(ctx context.Context, token, appID string) (*entity.ServicePrincipal, error) {
	query := url.Values{}
	query.Set("$filter", fmt.Sprintf("appId eq '%s'", appID))
	query.Set("$select", "displayName,appId,id")

	var page servicePrincipalsPage
	reqURL := r.endpoint + "/servicePrincipals?" + query.Encode()
	if err := r.doGet(ctx, reqURL, token, &page); err != nil {
		return nil, fmt.Errorf("failed to look up service principal for %s: %w", appID, err)
	}

	if len(page.Value) == 0 {
		return nil, nil
	}
	return &page.Value[0], nil
}

// doGet issues a single authenticated GET and decodes the JSON body into out.
// There is no retry layer: callers decide whether a failure is fatal.
func (r *GraphRepositoryImpl) doGet(ctx context.Context, reqURL, token string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("GET %s returned %d: %s", reqURL, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", reqURL, err)
	}

	return nil
}
