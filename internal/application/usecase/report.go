package usecase

import (
	"context"
	"sort"
	"time"

	"github.com/dylanstetts/listGraphWebhooks/internal/domain/entity"
	"github.com/dylanstetts/listGraphWebhooks/internal/shared/types"
)

// BuildReport turns the flat subscription list into the per-application
// rollup. When transcriptsOnly is set the grouped content narrows to the
// transcript-related subset; the transcript counter is computed either way.
// progress may be nil; when present it is incremented once per subscription.
func BuildReport(
	ctx context.Context,
	subscriptions []entity.Subscription,
	transcriptsOnly bool,
	resolver *ApplicationResolver,
	progress types.ProgressHandle,
) entity.Report {
	transcriptCount := 0
	for _, sub := range subscriptions {
		if sub.IsTranscriptRelated() {
			transcriptCount++
		}
	}

	working := subscriptions
	if transcriptsOnly {
		working = []entity.Subscription{}
		for _, sub := range subscriptions {
			if sub.IsTranscriptRelated() {
				working = append(working, sub)
			}
		}
	}

	// Group by application id, resolving each distinct id exactly once and
	// keeping first-seen order for the tie-break of the final sort.
	groups := make(map[string]*entity.ApplicationGroup)
	order := []string{}

	for _, sub := range working {
		appID := sub.ApplicationID
		if appID == "" {
			appID = entity.UnknownApplicationID
		}

		group, ok := groups[appID]
		if !ok {
			info := resolver.Resolve(ctx, appID)
			group = &entity.ApplicationGroup{
				ApplicationID:      appID,
				DisplayName:        info.DisplayName,
				ServicePrincipalID: info.ServicePrincipalID,
				Subscriptions:      []entity.Subscription{},
			}
			groups[appID] = group
			order = append(order, appID)
		}

		group.Subscriptions = append(group.Subscriptions, sub)

		if progress != nil {
			progress.Increment()
		}
	}

	applications := make([]entity.ApplicationGroup, 0, len(order))
	for _, appID := range order {
		applications = append(applications, *groups[appID])
	}
	sort.SliceStable(applications, func(i, j int) bool {
		return len(applications[i].Subscriptions) > len(applications[j].Subscriptions)
	})

	return entity.Report{
		GeneratedAt:             time.Now().UTC().Format(time.RFC3339),
		TotalSubscriptions:      len(subscriptions),
		TranscriptSubscriptions: transcriptCount,
		ReportedSubscriptions:   len(working),
		UniqueApplications:      len(applications),
		Applications:            applications,
	}
}
