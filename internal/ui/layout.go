package ui

import "time"

// Terminal width thresholds for responsive layouts.
const (
	// LayoutCompactWidth is the threshold below which compact mode is used.
	LayoutCompactWidth = 100
)

// Table layout.
const (
	// columnGap is the number of blank cells between rendered columns.
	columnGap = 2

	// chromeLines is the number of lines used by header, tabs, table header
	// and footer around the table body.
	chromeLines = 5
)

// Timing constants.
const (
	// DefaultUIInterval is the default UI refresh interval.
	DefaultUIInterval = time.Second
)
