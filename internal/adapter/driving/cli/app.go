package cli

import (
	"context"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dylanstetts/listGraphWebhooks/internal/application/usecase"
	"github.com/dylanstetts/listGraphWebhooks/internal/shared/types"
	"github.com/dylanstetts/listGraphWebhooks/pkg/version"
)

// CLIApp represents the command-line interface application.
type CLIApp struct {
	rootCmd         *cobra.Command
	analyzerUseCase *usecase.AnalyzerUseCase
	version         string
}

// NewCLIApp creates a new CLI application.
func NewCLIApp(versionStr string) *CLIApp {
	app := &CLIApp{
		version: versionStr,
	}

	formattedVersion := version.FormatVersion()

	rootCmd := &cobra.Command{
		Use:     "graph-webhooks",
		Short:   "Microsoft Graph webhook subscription analyzer",
		Long:    "Enumerates Graph webhook subscriptions, attributes each to the application that created it and reports quota-consuming applications.",
		Version: formattedVersion,
		RunE:    app.runCommand,
	}

	rootCmd.SetVersionTemplate(`{{printf "Graph Webhook Analyzer version: %s\n" .Version}}`)

	rootCmd.PersistentFlags().StringP("config-file", "C", "", "Path to a TOML, YAML, or JSON configuration file")
	rootCmd.PersistentFlags().StringP("client-id", "c", "", "Entra application (client) ID used to sign in (falls back to CLIENT_ID)")
	rootCmd.PersistentFlags().StringP("tenant-id", "t", "", "Entra tenant ID (falls back to TENANT_ID)")
	rootCmd.PersistentFlags().String("client-secret", "", "Client secret for app-only auth; omit for interactive browser login (falls back to CLIENT_SECRET)")
	rootCmd.PersistentFlags().Bool("transcripts-only", false, "Restrict the report to transcript-related subscriptions")
	rootCmd.PersistentFlags().StringP("report-name", "n", "subscription_report", "Base name for the report files (a timestamp is appended)")
	rootCmd.PersistentFlags().StringSliceP("report-type", "y", []string{"json"}, "Report types to write: json, csv, pdf")
	rootCmd.PersistentFlags().StringP("dir", "d", "", "Directory to save the report files (default: current directory)")

	app.rootCmd = rootCmd
	return app
}

// Execute runs the CLI application.
func (app *CLIApp) Execute() error {
	return app.rootCmd.Execute()
}

// parseArgs parses command-line arguments into a CLIArgs struct. Flags left
// at their defaults stay empty here so config-file values can fill them in;
// the use case applies the defaults after the merge.
func (app *CLIApp) parseArgs() (*types.CLIArgs, error) {
	flags := app.rootCmd.Flags()

	configFile, _ := flags.GetString("config-file")
	clientID, _ := flags.GetString("client-id")
	tenantID, _ := flags.GetString("tenant-id")
	clientSecret, _ := flags.GetString("client-secret")
	transcriptsOnly, _ := flags.GetBool("transcripts-only")
	reportName, _ := flags.GetString("report-name")
	reportType, _ := flags.GetStringSlice("report-type")
	dir, _ := flags.GetString("dir")

	// Identifiers may come from the environment instead of flags.
	if clientID == "" {
		clientID = os.Getenv("CLIENT_ID")
	}
	if tenantID == "" {
		tenantID = os.Getenv("TENANT_ID")
	}
	if clientSecret == "" {
		clientSecret = os.Getenv("CLIENT_SECRET")
	}

	if !flags.Changed("report-name") {
		reportName = ""
	}
	if !flags.Changed("report-type") {
		reportType = nil
	}

	if dir != "" {
		absDir, err := filepath.Abs(dir)
		if err != nil {
			return nil, err
		}
		dir = absDir
	}

	args := &types.CLIArgs{
		ConfigFile:      configFile,
		ClientID:        clientID,
		TenantID:        tenantID,
		ClientSecret:    clientSecret,
		TranscriptsOnly: transcriptsOnly,
		ReportName:      reportName,
		ReportType:      reportType,
		Dir:             dir,
	}

	return args, nil
}

// runCommand is the main entry point for the CLI command.
func (app *CLIApp) runCommand(cmd *cobra.Command, args []string) error {
	displayWelcomeBanner(app.version)

	go version.CheckLatestVersion(app.version)

	cliArgs, err := app.parseArgs()
	if err != nil {
		return err
	}

	ctx := context.Background()
	return app.analyzerUseCase.RunAnalysis(ctx, cliArgs)
}

// SetAnalyzerUseCase sets the analyzer use case for the CLI app.
func (app *CLIApp) SetAnalyzerUseCase(useCase *usecase.AnalyzerUseCase) {
	app.analyzerUseCase = useCase
}
