package entity

import "strings"

// Subscription is a single webhook registration as returned by the Graph
// subscriptions collection. Expiration is kept as the raw string Graph
// returned so the report re-emits it untouched.
type Subscription struct {
	ID                 string `json:"id"`
	Resource           string `json:"resource"`
	ChangeType         string `json:"changeType"`
	ExpirationDateTime string `json:"expirationDateTime"`
	NotificationURL    string `json:"notificationUrl"`
	ClientState        string `json:"clientState,omitempty"`
	ApplicationID      string `json:"applicationId,omitempty"`
}

// IsTranscriptRelated reports whether the subscription targets call-transcript
// or online-meeting resources. "transcript" matches case-insensitively,
// the onlineMeetings path segment exactly.
func (s Subscription) IsTranscriptRelated() bool {
	return strings.Contains(strings.ToLower(s.Resource), "transcript") ||
		strings.Contains(s.Resource, "communications/onlineMeetings")
}
