package main

import (
	"fmt"
	"os"

	"github.com/dylanstetts/listGraphWebhooks/internal/adapter/driven/config"
	"github.com/dylanstetts/listGraphWebhooks/internal/adapter/driven/export"
	"github.com/dylanstetts/listGraphWebhooks/internal/adapter/driven/graph"
	"github.com/dylanstetts/listGraphWebhooks/internal/adapter/driving/cli"
	"github.com/dylanstetts/listGraphWebhooks/internal/application/usecase"
	"github.com/dylanstetts/listGraphWebhooks/pkg/console"
	"github.com/dylanstetts/listGraphWebhooks/pkg/version"
)

func main() {
	app := cli.NewCLIApp(version.Version)

	graphRepo := graph.NewGraphRepository()
	exportRepo := export.NewExportRepository()
	configRepo := config.NewConfigRepository()
	consoleImpl := console.NewConsole()

	analyzerUseCase := usecase.NewAnalyzerUseCase(
		graphRepo,
		exportRepo,
		configRepo,
		consoleImpl,
	)

	app.SetAnalyzerUseCase(analyzerUseCase)

	if err := app.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
