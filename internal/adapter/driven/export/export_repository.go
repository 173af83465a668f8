package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/dylanstetts/listGraphWebhooks/internal/domain/entity"
	"github.com/dylanstetts/listGraphWebhooks/internal/domain/repository"
)

// ExportRepositoryImpl implements the ExportRepository.
type ExportRepositoryImpl struct{}

// NewExportRepository creates a new implementation of the ExportRepository.
func NewExportRepository() repository.ExportRepository {
	return &ExportRepositoryImpl{}
}

// ExportReportToJSON writes the report as an indented JSON document.
func (r *ExportRepositoryImpl) ExportReportToJSON(report entity.Report, filename, outputDir string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "json")
	if err != nil {
		return "", err
	}

	file, err := os.Create(outputFilename)
	if err != nil {
		return "", fmt.Errorf("error creating JSON file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(report); err != nil {
		return "", fmt.Errorf("error encoding JSON data: %w", err)
	}

	return filepath.Abs(outputFilename)
}

// ExportReportToCSV writes one row per subscription with its application's
// resolved identity repeated on each row.
func (r *ExportRepositoryImpl) ExportReportToCSV(report entity.Report, filename, outputDir string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "csv")
	if err != nil {
		return "", err
	}

	file, err := os.Create(outputFilename)
	if err != nil {
		return "", fmt.Errorf("error creating CSV file: %w", err)
	}
	defer file.Close()

	if err := writeReportCSV(file, report); err != nil {
		return "", fmt.Errorf("error writing CSV file: %w", err)
	}

	return filepath.Abs(outputFilename)
}

// writeReportCSV writes the header row and one record per subscription,
// checking every write so a short write surfaces as an error instead of a
// truncated file.
func writeReportCSV(w io.Writer, report entity.Report) error {
	writer := csv.NewWriter(w)

	headers := []string{
		"Application", "App ID", "Service Principal ID",
		"Subscription ID", "Resource", "Change Type", "Expires", "Notification URL", "Client State",
	}
	if err := writer.Write(headers); err != nil {
		return err
	}

	for _, app := range report.Applications {
		spID := ""
		if app.ServicePrincipalID != nil {
			spID = *app.ServicePrincipalID
		}
		for _, sub := range app.Subscriptions {
			record := []string{
				app.DisplayName,
				app.ApplicationID,
				spID,
				sub.ID,
				sub.Resource,
				sub.ChangeType,
				sub.ExpirationDateTime,
				sub.NotificationURL,
				sub.ClientState,
			}
			if err := writer.Write(record); err != nil {
				return err
			}
		}
	}

	writer.Flush()
	return writer.Error()
}

// ExportReportToPDF renders the header counters and a section per application.
func (r *ExportRepositoryImpl) ExportReportToPDF(report entity.Report, filename, outputDir string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "pdf")
	if err != nil {
		return "", err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	headerColor := [3]int{40, 40, 40}
	headerTextColor := [3]int{255, 255, 255}
	bodyTextColor := [3]int{50, 50, 50}
	lineColor := [3]int{200, 200, 200}

	pdf.AddPage()
	pdf.SetFillColor(headerColor[0], headerColor[1], headerColor[2])
	pdf.SetTextColor(headerTextColor[0], headerTextColor[1], headerTextColor[2])
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 12, "Microsoft Graph Subscription Report", "", 1, "C", true, 0, "")
	pdf.Ln(4)

	pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
	pdf.SetFont("Arial", "", 10)
	counters := []string{
		fmt.Sprintf("Generated: %s", report.GeneratedAt),
		fmt.Sprintf("Total subscriptions: %d", report.TotalSubscriptions),
		fmt.Sprintf("Transcript-related subscriptions: %d", report.TranscriptSubscriptions),
		fmt.Sprintf("Reported subscriptions: %d", report.ReportedSubscriptions),
		fmt.Sprintf("Unique applications: %d", report.UniqueApplications),
	}
	for _, line := range counters {
		pdf.Cell(0, 6, tr(line))
		pdf.Ln(5)
	}
	pdf.Ln(3)

	for _, app := range report.Applications {
		pdf.SetFont("Arial", "B", 12)
		pdf.Cell(0, 8, tr(fmt.Sprintf("%s (%d subscriptions)", app.DisplayName, len(app.Subscriptions))))
		pdf.Ln(7)

		pdf.SetFont("Arial", "", 9)
		pdf.Cell(0, 5, tr(fmt.Sprintf("App ID: %s", app.ApplicationID)))
		pdf.Ln(5)
		if app.ServicePrincipalID != nil {
			pdf.Cell(0, 5, tr(fmt.Sprintf("Service Principal ID: %s", *app.ServicePrincipalID)))
			pdf.Ln(5)
		}

		for _, sub := range app.Subscriptions {
			pdf.MultiCell(0, 5, tr(fmt.Sprintf("- %s | %s | %s | expires %s",
				sub.ID, sub.Resource, sub.ChangeType, sub.ExpirationDateTime)), "", "L", false)
		}

		pdf.SetDrawColor(lineColor[0], lineColor[1], lineColor[2])
		pdf.Line(pdf.GetX(), pdf.GetY()+2, 200, pdf.GetY()+2)
		pdf.Ln(5)
	}

	if err := pdf.OutputFileAndClose(outputFilename); err != nil {
		return "", fmt.Errorf("error writing PDF file: %w", err)
	}

	return filepath.Abs(outputFilename)
}

// generateFilename builds a unique timestamped file name and ensures the
// output directory exists.
func generateFilename(base, dir, ext string) (string, error) {
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("could not get current working directory: %w", err)
		}
		dir = cwd
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("error creating output directory '%s': %w", dir, err)
	}
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.%s", base, timestamp, ext)
	return filepath.Join(dir, filename), nil
}
