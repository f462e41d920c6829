package report

import (
	"fmt"
	"time"
)

// formatDuration renders d as HH:MM:SS.mmm-uuu. Anything finer than a
// microsecond is discarded, matching the resolution every formatter in
// this package reports at.
func formatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second
	d -= s * time.Second
	ms := d / time.Millisecond
	d -= ms * time.Millisecond
	us := d / time.Microsecond
	return fmt.Sprintf("%02d:%02d:%02d.%03d-%03d", h, m, s, ms, us)
}

// formatPercent renders a ratio as a right-justified, dash-free percentage
// field, width 6 total, 2 decimal places, e.g. " 66.67" or "100.00".
func formatPercent(ratio float64) string {
	return fmt.Sprintf("%6.2f", ratio*100)
}
