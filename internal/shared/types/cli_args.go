package types

// CLIArgs represents the command-line arguments.
type CLIArgs struct {
	ConfigFile      string
	ClientID        string
	TenantID        string
	ClientSecret    string
	TranscriptsOnly bool
	ReportName      string
	ReportType      []string
	Dir             string
}
