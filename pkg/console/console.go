package console

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/pterm/pterm"

	"github.com/dylanstetts/listGraphWebhooks/internal/shared/types"
)

// Console is an implementation of the ConsoleInterface.
type Console struct{}

// NewConsole creates a new Console.
func NewConsole() *Console {
	return &Console{}
}

// Print writes to the console.
func (c *Console) Print(a ...interface{}) {
	fmt.Print(a...)
}

// Printf writes a formatted string to the console.
func (c *Console) Printf(format string, a ...interface{}) {
	fmt.Printf(format, a...)
}

// Println writes to the console with a trailing newline.
func (c *Console) Println(a ...interface{}) {
	fmt.Println(a...)
}

// LogInfo logs an informational message.
func (c *Console) LogInfo(format string, a ...interface{}) {
	pterm.Info.Printfln(format, a...)
}

// LogWarning logs a warning message.
func (c *Console) LogWarning(format string, a ...interface{}) {
	pterm.Warning.Printfln(format, a...)
}

// LogError logs an error message.
func (c *Console) LogError(format string, a ...interface{}) {
	pterm.Error.Printfln(format, a...)
}

// LogSuccess logs a success message.
func (c *Console) LogSuccess(format string, a ...interface{}) {
	pterm.Success.Printfln(format, a...)
}

// Predefined colors for consistent use.
var (
	BrightMagenta = color.New(color.FgMagenta, color.Bold).SprintFunc()
	BoldRed       = color.New(color.FgRed, color.Bold).SprintFunc()
	BrightGreen   = color.New(color.FgGreen, color.Bold).SprintFunc()
	BrightYellow  = color.New(color.FgYellow, color.Bold).SprintFunc()
	BrightCyan    = color.New(color.FgCyan, color.Bold).SprintFunc()
)

// statusHandle is an implementation of the StatusHandle.
type statusHandle struct {
	spinner *pterm.SpinnerPrinter
}

// Status creates a status spinner with the given message.
func (c *Console) Status(message string) types.StatusHandle {
	spinner, _ := pterm.DefaultSpinner.Start(message)
	return &statusHandle{spinner: spinner}
}

// Update updates the status message.
func (h *statusHandle) Update(message string) {
	if h.spinner != nil {
		h.spinner.UpdateText(message)
	}
}

// Stop stops the status spinner.
func (h *statusHandle) Stop() {
	if h.spinner != nil {
		h.spinner.Stop()
	}
}

// progressHandle is an implementation of the ProgressHandle.
type progressHandle struct {
	bar *pterm.ProgressbarPrinter
}

// ProgressWithTotal creates a progress bar with the given total.
func (c *Console) ProgressWithTotal(total int) types.ProgressHandle {
	bar, _ := pterm.DefaultProgressbar.
		WithTotal(total).
		WithTitle("Resolving applications").
		WithShowElapsedTime(true).
		WithShowCount(true).
		WithRemoveWhenDone(false).
		Start()
	return &progressHandle{bar: bar}
}

// Increment advances the progress bar.
func (h *progressHandle) Increment() {
	if h.bar != nil {
		h.bar.Increment()
	}
}

// Stop stops the progress bar.
func (h *progressHandle) Stop() {
	if h.bar != nil {
		h.bar.Stop()
	}
}

// Table is an implementation of the TableInterface.
type Table struct {
	columns []string
	rows    [][]string
}

// CreateTable creates a new table.
func (c *Console) CreateTable() types.TableInterface {
	return &Table{
		columns: []string{},
		rows:    [][]string{},
	}
}

// AddColumn adds a column to the table.
func (t *Table) AddColumn(name string, options ...interface{}) {
	t.columns = append(t.columns, name)
}

// AddRow adds a row to the table.
func (t *Table) AddRow(cells ...interface{}) {
	processedCells := make([]string, len(cells))
	for i, cell := range cells {
		processedCells[i] = fmt.Sprint(cell)
	}
	t.rows = append(t.rows, processedCells)
}

// Render renders the table as a string.
func (t *Table) Render() string {
	tableData := pterm.TableData{t.columns}
	for _, row := range t.rows {
		tableData = append(tableData, row)
	}

	table := pterm.DefaultTable.
		WithHasHeader().
		WithBoxed().
		WithHeaderStyle(pterm.NewStyle(pterm.FgLightCyan)).
		WithData(tableData)

	renderedTable, _ := table.Srender()
	return renderedTable
}

// DisplaySubscriptionBars shows a bar per application scaled to the busiest
// one, so the quota hogs stand out at a glance.
func (c *Console) DisplaySubscriptionBars(counts []types.ApplicationCount) {
	maxCount := 0
	for _, ac := range counts {
		if ac.Count > maxCount {
			maxCount = ac.Count
		}
	}

	if maxCount == 0 {
		pterm.Warning.Println("No subscriptions to chart")
		return
	}

	tableData := pterm.TableData{
		{"Application", "Subscriptions", ""},
	}

	for _, ac := range counts {
		barLength := int(float64(ac.Count) / float64(maxCount) * 40)
		if barLength == 0 {
			barLength = 1
		}
		bar := strings.Repeat("█", barLength)

		// The heaviest consumers are the cleanup candidates.
		barColor := pterm.FgGreen.Sprint(bar)
		if ac.Count == maxCount {
			barColor = pterm.FgRed.Sprint(bar)
		} else if ac.Count > maxCount/2 {
			barColor = pterm.FgYellow.Sprint(bar)
		}

		tableData = append(tableData, []string{
			ac.Name,
			fmt.Sprintf("%d", ac.Count),
			barColor,
		})
	}

	table := pterm.DefaultTable.WithHasHeader().WithData(tableData)
	renderedTable, _ := table.Srender()

	panel := pterm.DefaultBox.WithTitle("Subscriptions by Application").
		WithBoxStyle(pterm.NewStyle(pterm.FgCyan)).Sprint(renderedTable)

	fmt.Println("\n" + panel)
}
