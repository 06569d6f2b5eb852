package cli

import "time"

// Default values for CLI output.
const (
	// timePrecision is the rounding applied to durations in text output.
	timePrecision = 10 * time.Millisecond
)
