package types

// Config represents the application configuration that can be loaded from a file.
type Config struct {
	ClientID        string   `json:"client_id" yaml:"client_id" toml:"client_id"`
	TenantID        string   `json:"tenant_id" yaml:"tenant_id" toml:"tenant_id"`
	TranscriptsOnly bool     `json:"transcripts_only" yaml:"transcripts_only" toml:"transcripts_only"`
	ReportName      string   `json:"report_name" yaml:"report_name" toml:"report_name"`
	ReportType      []string `json:"report_type" yaml:"report_type" toml:"report_type"`
	Dir             string   `json:"dir" yaml:"dir" toml:"dir"`
}
