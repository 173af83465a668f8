package entity

// Report is the consolidated run output, serialized as-is to the JSON export.
// Applications are sorted by descending subscription count; equal counts keep
// the order in which the application ids were first seen.
type Report struct {
	GeneratedAt             string             `json:"generatedAt"`
	TotalSubscriptions      int                `json:"totalSubscriptions"`
	TranscriptSubscriptions int                `json:"transcriptSubscriptions"`
	ReportedSubscriptions   int                `json:"reportedSubscriptions"`
	UniqueApplications      int                `json:"uniqueApplications"`
	Applications            []ApplicationGroup `json:"applications"`
}
