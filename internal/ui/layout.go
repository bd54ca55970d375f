package ui

// Fixed rows around the content box.
const (
	headerRows     = 1
	searchRows     = 1
	commandBarRows = 1
	chromeRows     = headerRows + searchRows + commandBarRows
)

// Terminal width thresholds for responsive layouts.
const (
	// LayoutCompactWidth is the width below which fixed-width columns are
	// hidden and only the title column is shown.
	LayoutCompactWidth = 70
)

// Log display limits.
const (
	// LogTailLines is the number of log lines loaded into the log view.
	LogTailLines = 500
)
