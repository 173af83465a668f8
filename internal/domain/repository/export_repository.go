package repository

import (
	"github.com/dylanstetts/listGraphWebhooks/internal/domain/entity"
)

// ExportRepository defines the interface for persisting reports to disk.
type ExportRepository interface {
	ExportReportToJSON(report entity.Report, filename string, outputDir string) (string, error)
	ExportReportToCSV(report entity.Report, filename string, outputDir string) (string, error)
	ExportReportToPDF(report entity.Report, filename string, outputDir string) (string, error)
}
