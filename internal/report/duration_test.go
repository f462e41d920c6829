package report

import (
	"testing"
	"time"
)

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		d    time.Duration
		want string
	}{
		{0, "00:00:00.000-000"},
		{3723456789000 * time.Nanosecond, "01:02:03.456-789"},
		{999 * time.Microsecond, "00:00:00.000-999"},
	}
	for _, c := range cases {
		if got := formatDuration(c.d); got != c.want {
			t.Errorf("formatDuration(%v) = %q, want %q", c.d, got, c.want)
		}
	}
}

func TestFormatPercent(t *testing.T) {
	cases := []struct {
		ratio float64
		want  string
	}{
		{1, "100.00"},
		{2.0 / 3.0, " 66.67"},
		{0, "  0.00"},
	}
	for _, c := range cases {
		if got := formatPercent(c.ratio); got != c.want {
			t.Errorf("formatPercent(%v) = %q, want %q", c.ratio, got, c.want)
		}
	}
}
