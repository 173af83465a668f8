package usecase

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/pterm/pterm"

	"github.com/dylanstetts/listGraphWebhooks/internal/domain/entity"
	"github.com/dylanstetts/listGraphWebhooks/internal/domain/repository"
	"github.com/dylanstetts/listGraphWebhooks/internal/shared/types"
)

// AnalyzerUseCase handles the main subscription analysis functionality.
type AnalyzerUseCase struct {
	graphRepo  repository.GraphRepository
	exportRepo repository.ExportRepository
	configRepo repository.ConfigRepository
	console    types.ConsoleInterface
}

// NewAnalyzerUseCase creates a new analyzer use case.
func NewAnalyzerUseCase(
	graphRepo repository.GraphRepository,
	exportRepo repository.ExportRepository,
	configRepo repository.ConfigRepository,
	console types.ConsoleInterface,
) *AnalyzerUseCase {
	return &AnalyzerUseCase{
		graphRepo:  graphRepo,
		exportRepo: exportRepo,
		configRepo: configRepo,
		console:    console,
	}
}

// RunAnalysis executes the full analysis: authenticate, fetch every
// subscription page, resolve owning applications, render the console report
// and persist the selected export formats.
func (uc *AnalyzerUseCase) RunAnalysis(ctx context.Context, args *types.CLIArgs) error {
	if err := uc.applyConfigFile(args); err != nil {
		return err
	}
	if err := applyDefaults(args); err != nil {
		return err
	}
	if args.ClientID == "" {
		return types.ErrMissingClientID
	}
	if args.TenantID == "" {
		return types.ErrMissingTenantID
	}

	uc.console.LogInfo("Authenticating with Microsoft Graph (tenant %s)...", args.TenantID)
	token, err := uc.graphRepo.Authenticate(ctx, args.ClientID, args.TenantID, args.ClientSecret)
	if err != nil {
		return err
	}
	uc.console.LogSuccess("Authentication successful")

	status := uc.console.Status("Fetching subscriptions...")
	subscriptions, err := uc.graphRepo.GetAllSubscriptions(ctx, token)
	status.Stop()
	if err != nil {
		return err
	}
	uc.console.LogSuccess("Retrieved %d subscriptions", len(subscriptions))

	resolver := NewApplicationResolver(uc.graphRepo, token)

	progress := uc.console.ProgressWithTotal(len(subscriptions))
	report := BuildReport(ctx, subscriptions, args.TranscriptsOnly, resolver, progress)
	progress.Stop()

	lookupErrors := resolver.LookupErrors()
	failedApps := make([]string, 0, len(lookupErrors))
	for appID := range lookupErrors {
		failedApps = append(failedApps, appID)
	}
	sort.Strings(failedApps)
	for _, appID := range failedApps {
		uc.console.LogWarning("Could not fetch details for app %s: %s", appID, lookupErrors[appID])
	}

	uc.printConsoleReport(report)
	uc.exportReport(report, args)

	return nil
}

// applyConfigFile merges values from the optional config file into args;
// flags that were set explicitly win over file values. The CLI leaves
// unset flags empty so the merge can see the difference.
func (uc *AnalyzerUseCase) applyConfigFile(args *types.CLIArgs) error {
	if args.ConfigFile == "" {
		return nil
	}

	cfg, err := uc.configRepo.LoadConfigFile(args.ConfigFile)
	if err != nil {
		return err
	}

	if args.ClientID == "" {
		args.ClientID = cfg.ClientID
	}
	if args.TenantID == "" {
		args.TenantID = cfg.TenantID
	}
	if cfg.TranscriptsOnly {
		args.TranscriptsOnly = true
	}
	if args.ReportName == "" {
		args.ReportName = cfg.ReportName
	}
	if len(args.ReportType) == 0 {
		args.ReportType = cfg.ReportType
	}
	if args.Dir == "" {
		args.Dir = cfg.Dir
	}

	return nil
}

// applyDefaults fills whatever neither flags nor the config file set.
func applyDefaults(args *types.CLIArgs) error {
	if args.ReportName == "" {
		args.ReportName = "subscription_report"
	}
	if len(args.ReportType) == 0 {
		args.ReportType = []string{"json"}
	}
	if args.Dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return err
		}
		args.Dir = cwd
	}
	return nil
}

// printConsoleReport renders the header counters, a summary table, the
// per-application bar chart and the detailed per-subscription blocks.
func (uc *AnalyzerUseCase) printConsoleReport(report entity.Report) {
	uc.console.Println()
	uc.console.Println(pterm.DefaultHeader.Sprint("Microsoft Graph Subscription Report"))
	uc.console.LogInfo("Generated: %s", report.GeneratedAt)
	uc.console.LogInfo("Total subscriptions: %d", report.TotalSubscriptions)
	uc.console.LogInfo("Transcript-related subscriptions: %d", report.TranscriptSubscriptions)
	uc.console.LogInfo("Reported subscriptions: %d", report.ReportedSubscriptions)
	uc.console.LogInfo("Unique applications: %d", report.UniqueApplications)

	table := uc.console.CreateTable()
	table.AddColumn("Application")
	table.AddColumn("App ID")
	table.AddColumn("Service Principal ID")
	table.AddColumn("Subscriptions")

	counts := make([]types.ApplicationCount, 0, len(report.Applications))
	for _, app := range report.Applications {
		spID := "-"
		if app.ServicePrincipalID != nil {
			spID = *app.ServicePrincipalID
		}
		table.AddRow(
			pterm.FgCyan.Sprint(app.DisplayName),
			app.ApplicationID,
			spID,
			fmt.Sprintf("%d", len(app.Subscriptions)),
		)
		counts = append(counts, types.ApplicationCount{
			Name:  app.DisplayName,
			Count: len(app.Subscriptions),
		})
	}

	uc.console.Print(table.Render())
	uc.console.DisplaySubscriptionBars(counts)

	for _, app := range report.Applications {
		uc.console.Printf("\n%s\n", pterm.NewStyle(pterm.FgCyan, pterm.Bold).
			Sprintf("Application: %s", app.DisplayName))
		uc.console.Printf("  App ID: %s\n", app.ApplicationID)
		if app.ServicePrincipalID != nil {
			uc.console.Printf("  Service Principal ID: %s\n", *app.ServicePrincipalID)
		}
		uc.console.Printf("  Subscription Count: %d\n", len(app.Subscriptions))

		for _, sub := range app.Subscriptions {
			uc.console.Printf("    - ID: %s\n", sub.ID)
			uc.console.Printf("      Resource: %s\n", sub.Resource)
			uc.console.Printf("      Change Type: %s\n", sub.ChangeType)
			uc.console.Printf("      Expires: %s\n", sub.ExpirationDateTime)
			if sub.NotificationURL != "" {
				uc.console.Printf("      Notification URL: %s\n", sub.NotificationURL)
			}
		}
	}
	uc.console.Println()
}

// exportReport persists the report in every requested format. Export
// failures are warnings: the console report already completed.
func (uc *AnalyzerUseCase) exportReport(report entity.Report, args *types.CLIArgs) {
	for _, reportType := range args.ReportType {
		switch reportType {
		case "json":
			path, err := uc.exportRepo.ExportReportToJSON(report, args.ReportName, args.Dir)
			if err != nil {
				uc.console.LogWarning("Failed to export report to JSON: %s", err)
			} else {
				uc.console.LogSuccess("Report saved to: %s", path)
			}
		case "csv":
			path, err := uc.exportRepo.ExportReportToCSV(report, args.ReportName, args.Dir)
			if err != nil {
				uc.console.LogWarning("Failed to export report to CSV: %s", err)
			} else {
				uc.console.LogSuccess("Report saved to: %s", path)
			}
		case "pdf":
			path, err := uc.exportRepo.ExportReportToPDF(report, args.ReportName, args.Dir)
			if err != nil {
				uc.console.LogWarning("Failed to export report to PDF: %s", err)
			} else {
				uc.console.LogSuccess("Report saved to: %s", path)
			}
		default:
			uc.console.LogWarning("Unknown report type: %s", reportType)
		}
	}
}
