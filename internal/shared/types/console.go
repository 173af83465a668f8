package types

// ConsoleInterface defines the interface for console output.
type ConsoleInterface interface {
	Print(a ...interface{})
	Printf(format string, a ...interface{})
	Println(a ...interface{})

	LogInfo(format string, a ...interface{})
	LogWarning(format string, a ...interface{})
	LogError(format string, a ...interface{})
	LogSuccess(format string, a ...interface{})

	Status(message string) StatusHandle
	ProgressWithTotal(total int) ProgressHandle

	CreateTable() TableInterface
	DisplaySubscriptionBars(counts []ApplicationCount)
}

// StatusHandle updates a status spinner message.
type StatusHandle interface {
	Update(message string)
	Stop()
}

// ProgressHandle updates a progress bar.
type ProgressHandle interface {
	Increment()
	Stop()
}

// TableInterface defines the interface for building and rendering tables.
type TableInterface interface {
	AddColumn(name string, options ...interface{})
	AddRow(cells ...interface{})
	Render() string
}

// ApplicationCount holds a per-application subscription tally, used for the
// bar-chart display.
type ApplicationCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}
