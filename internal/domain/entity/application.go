package entity

// Display-name sentinels used when a service principal cannot be resolved.
const (
	DisplayNameNotFound    = "Unknown (Not found in tenant)"
	DisplayNameLookupError = "Error fetching details"

	// UnknownApplicationID groups subscriptions that carry no applicationId.
	UnknownApplicationID = "Unknown"
)

// ServicePrincipal is the subset of the Graph servicePrincipal resource the
// analyzer selects in its lookup query.
type ServicePrincipal struct {
	DisplayName string `json:"displayName"`
	AppID       string `json:"appId"`
	ID          string `json:"id"`
}

// ApplicationInfo is the resolved identity for an application id. The
// service principal id is nil when the lookup found no match or failed.
type ApplicationInfo struct {
	ApplicationID      string  `json:"applicationId"`
	DisplayName        string  `json:"displayName"`
	ServicePrincipalID *string `json:"servicePrincipalId"`
}

// ApplicationGroup is one application's slice of the report: its resolved
// identity plus every subscription attributed to it, in fetch order.
type ApplicationGroup struct {
	ApplicationID      string         `json:"applicationId"`
	DisplayName        string         `json:"displayName"`
	ServicePrincipalID *string        `json:"servicePrincipalId"`
	Subscriptions      []Subscription `json:"subscriptions"`
}
