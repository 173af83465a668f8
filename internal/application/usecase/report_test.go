package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dylanstetts/listGraphWebhooks/internal/domain/entity"
)

// fakeGraphRepository implements repository.GraphRepository for tests and
// counts service-principal lookups per application id.
type fakeGraphRepository struct {
	subscriptions []entity.Subscription
	principals    map[string]*entity.ServicePrincipal
	lookupErr     map[string]error
	lookups       map[string]int
}

func newFakeGraphRepository() *fakeGraphRepository {
	return &fakeGraphRepository{
		principals: map[string]*entity.ServicePrincipal{},
		lookupErr:  map[string]error{},
		lookups:    map[string]int{},
	}
}

func (f *fakeGraphRepository) Authenticate(ctx context.Context, clientID, tenantID, clientSecret string) (string, error) {
	return "fake-token", nil
}

func (f *fakeGraphRepository) GetAllSubscriptions(ctx context.Context, token string) ([]entity.Subscription, error) {
	return f.subscriptions, nil
}

func (f *fakeGraphRepository) GetServicePrincipal(ctx context.Context, token, appID string) (*entity.ServicePrincipal, error) {
	f.lookups[appID]++
	if err, ok := f.lookupErr[appID]; ok {
		return nil, err
	}
	return f.principals[appID], nil
}

func sampleSubscriptions() []entity.Subscription {
	return []entity.Subscription{
		{
			ID:            "sub-1",
			Resource:      "communications/onlineMeetings/getAllTranscripts",
			ChangeType:    "created",
			ApplicationID: "A",
		},
		{
			ID:            "sub-2",
			Resource:      "communications/onlineMeetings/getAllTranscripts",
			ChangeType:    "created",
			ApplicationID: "A",
		},
		{
			ID:         "sub-3",
			Resource:   "/users/messages",
			ChangeType: "updated",
		},
	}
}

func TestBuildReportUnfiltered(t *testing.T) {
	repo := newFakeGraphRepository()
	repo.principals["A"] = &entity.ServicePrincipal{DisplayName: "Recorder Bot", AppID: "A", ID: "sp-a"}

	resolver := NewApplicationResolver(repo, "fake-token")
	report := BuildReport(context.Background(), sampleSubscriptions(), false, resolver, nil)

	assert.Equal(t, 3, report.TotalSubscriptions)
	assert.Equal(t, 2, report.TranscriptSubscriptions)
	assert.Equal(t, 3, report.ReportedSubscriptions)
	assert.Equal(t, 2, report.UniqueApplications)

	require.Len(t, report.Applications, 2)
	assert.Equal(t, "A", report.Applications[0].ApplicationID)
	assert.Equal(t, "Recorder Bot", report.Applications[0].DisplayName)
	assert.Len(t, report.Applications[0].Subscriptions, 2)
	assert.Equal(t, entity.UnknownApplicationID, report.Applications[1].ApplicationID)
	assert.Len(t, report.Applications[1].Subscriptions, 1)
}

func TestBuildReportTranscriptsOnly(t *testing.T) {
	repo := newFakeGraphRepository()
	repo.principals["A"] = &entity.ServicePrincipal{DisplayName: "Recorder Bot", AppID: "A", ID: "sp-a"}

	resolver := NewApplicationResolver(repo, "fake-token")
	report := BuildReport(context.Background(), sampleSubscriptions(), true, resolver, nil)

	assert.Equal(t, 3, report.TotalSubscriptions)
	// The transcript counter must not depend on the filter flag.
	assert.Equal(t, 2, report.TranscriptSubscriptions)
	assert.Equal(t, 2, report.ReportedSubscriptions)
	assert.Equal(t, 1, report.UniqueApplications)

	require.Len(t, report.Applications, 1)
	assert.Equal(t, "A", report.Applications[0].ApplicationID)
	assert.Len(t, report.Applications[0].Subscriptions, 2)
}

func TestBuildReportResolvesEachApplicationOnce(t *testing.T) {
	repo := newFakeGraphRepository()
	repo.principals["A"] = &entity.ServicePrincipal{DisplayName: "App A", AppID: "A", ID: "sp-a"}
	repo.principals["B"] = &entity.ServicePrincipal{DisplayName: "App B", AppID: "B", ID: "sp-b"}

	subs := []entity.Subscription{}
	for i := 0; i < 5; i++ {
		subs = append(subs, entity.Subscription{ID: "a", Resource: "/r", ApplicationID: "A"})
	}
	for i := 0; i < 3; i++ {
		subs = append(subs, entity.Subscription{ID: "b", Resource: "/r", ApplicationID: "B"})
	}

	resolver := NewApplicationResolver(repo, "fake-token")
	report := BuildReport(context.Background(), subs, false, resolver, nil)

	assert.Equal(t, 1, repo.lookups["A"])
	assert.Equal(t, 1, repo.lookups["B"])
	assert.Equal(t, 2, report.UniqueApplications)
}

func TestBuildReportGroupSumInvariant(t *testing.T) {
	repo := newFakeGraphRepository()
	subs := []entity.Subscription{
		{ID: "1", Resource: "/a/transcript", ApplicationID: "A"},
		{ID: "2", Resource: "/b", ApplicationID: "B"},
		{ID: "3", Resource: "/c", ApplicationID: "B"},
		{ID: "4", Resource: "/d"},
		{ID: "5", Resource: "/e", ApplicationID: "A"},
	}

	for _, transcriptsOnly := range []bool{false, true} {
		resolver := NewApplicationResolver(repo, "fake-token")
		report := BuildReport(context.Background(), subs, transcriptsOnly, resolver, nil)

		sum := 0
		for _, app := range report.Applications {
			sum += len(app.Subscriptions)
		}
		assert.Equal(t, report.ReportedSubscriptions, sum)
		assert.Equal(t, len(report.Applications), report.UniqueApplications)
	}
}

func TestBuildReportSortsByCountWithStableTies(t *testing.T) {
	repo := newFakeGraphRepository()

	// B first with 1, then A with 2, then C with 1: expect A, B, C.
	subs := []entity.Subscription{
		{ID: "1", Resource: "/r", ApplicationID: "B"},
		{ID: "2", Resource: "/r", ApplicationID: "A"},
		{ID: "3", Resource: "/r", ApplicationID: "A"},
		{ID: "4", Resource: "/r", ApplicationID: "C"},
	}

	resolver := NewApplicationResolver(repo, "fake-token")
	report := BuildReport(context.Background(), subs, false, resolver, nil)

	require.Len(t, report.Applications, 3)
	assert.Equal(t, "A", report.Applications[0].ApplicationID)
	assert.Equal(t, "B", report.Applications[1].ApplicationID)
	assert.Equal(t, "C", report.Applications[2].ApplicationID)
}

func TestBuildReportEmptyInput(t *testing.T) {
	repo := newFakeGraphRepository()
	resolver := NewApplicationResolver(repo, "fake-token")
	report := BuildReport(context.Background(), nil, false, resolver, nil)

	assert.Equal(t, 0, report.TotalSubscriptions)
	assert.Equal(t, 0, report.TranscriptSubscriptions)
	assert.Equal(t, 0, report.ReportedSubscriptions)
	assert.Equal(t, 0, report.UniqueApplications)
	assert.Empty(t, report.Applications)
	assert.Empty(t, repo.lookups)
}

func TestBuildReportLookupFailureDoesNotAbort(t *testing.T) {
	repo := newFakeGraphRepository()
	repo.lookupErr["A"] = errors.New("boom")

	subs := []entity.Subscription{
		{ID: "1", Resource: "/r", ApplicationID: "A"},
		{ID: "2", Resource: "/r", ApplicationID: "A"},
	}

	resolver := NewApplicationResolver(repo, "fake-token")
	report := BuildReport(context.Background(), subs, false, resolver, nil)

	require.Len(t, report.Applications, 1)
	assert.Equal(t, entity.DisplayNameLookupError, report.Applications[0].DisplayName)
	assert.Nil(t, report.Applications[0].ServicePrincipalID)
	assert.Len(t, report.Applications[0].Subscriptions, 2)
	// The failed lookup is cached like any other outcome.
	assert.Equal(t, 1, repo.lookups["A"])
}

func TestTranscriptClassification(t *testing.T) {
	tests := []struct {
		name     string
		resource string
		want     bool
	}{
		{"transcript path", "communications/onlineMeetings/getAllTranscripts", true},
		{"online meetings path", "communications/onlineMeetings('x')/recordings", true},
		{"transcript uppercase", "/users/x/Transcripts", true},
		{"mail resource", "/users/messages", false},
		{"case sensitive meetings path", "Communications/OnlineMeetings", false},
		{"empty resource", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub := entity.Subscription{Resource: tt.resource}
			assert.Equal(t, tt.want, sub.IsTranscriptRelated())
		})
	}
}
