package report

import (
	"strings"
	"testing"
	"time"

	"github.com/coldstore/filed/internal/clock"
	"github.com/coldstore/filed/internal/profiler"
)

var reportTestBlock = &profiler.BlockIdentity{Name: "work"}

func newTimedRegistry() (*profiler.Registry, *clock.Fake) {
	clk := clock.NewFake(time.Unix(0, 0))
	reg := profiler.NewRegistry(clk)
	end := reg.TimedBlock(reportTestBlock)
	clk.Advance(5 * time.Millisecond)
	end()
	return reg, clk
}

func TestCallstackReportBoundaries(t *testing.T) {
	reg, clk := newTimedRegistry()
	out := Callstack(reg.Callstack(), clk.Now(), 0, false)

	if !strings.HasPrefix(out, "=== Start Performance Report (Callstack) ===\n") {
		t.Fatalf("missing start boundary:\n%s", out)
	}
	if !strings.HasSuffix(out, "=== End Performance Report ===\n") {
		t.Fatalf("missing end boundary:\n%s", out)
	}
	if !strings.Contains(out, "== Thread: ") {
		t.Fatalf("missing thread section header:\n%s", out)
	}
}

func TestCollapsedReportBoundaries(t *testing.T) {
	reg, clk := newTimedRegistry()
	out := Collapsed(reg.Callstack(), clk.Now(), 0)

	if !strings.HasPrefix(out, "=== Start Performance Report (Collapsed Callstack) ===\n") {
		t.Fatalf("missing start boundary:\n%s", out)
	}
	if !strings.HasSuffix(out, "=== End Performance Report ===\n") {
		t.Fatalf("missing end boundary:\n%s", out)
	}
}

func TestOverviewReportBoundaries(t *testing.T) {
	reg, clk := newTimedRegistry()
	out := Overview(reg.Overview(), clk.Now(), 0)

	if !strings.HasPrefix(out, "=== Start Performance Report (Overview) ===\n") {
		t.Fatalf("missing start boundary:\n%s", out)
	}
	if !strings.HasSuffix(out, "=== End Performance Report ===\n") {
		t.Fatalf("missing end boundary:\n%s", out)
	}
}

func TestCallstackOverviewReportBoundaries(t *testing.T) {
	reg, clk := newTimedRegistry()
	out := CallstackOverview(reg.Callstack(), clk.Now(), 0, false)

	if !strings.HasPrefix(out, "=== Start Performance Report (Overview) ===\n") {
		t.Fatalf("missing start boundary:\n%s", out)
	}
	if !strings.HasSuffix(out, "=== End Performance Report ===\n") {
		t.Fatalf("missing end boundary:\n%s", out)
	}
}
