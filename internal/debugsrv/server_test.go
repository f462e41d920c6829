package debugsrv

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/coldstore/filed/internal/clock"
	"github.com/coldstore/filed/internal/profiler"
)

func TestHandleCallstackAndOverview(t *testing.T) {
	clk := clock.NewFake(time.Unix(0, 0))
	reg := profiler.NewRegistry(clk)
	a := &profiler.BlockIdentity{Name: "A"}
	end := reg.TimedBlock(a)
	clk.Advance(5 * time.Millisecond)
	end()

	s, err := New(Options{
		Addr:      ":0",
		Registry:  reg,
		Callstack: reg.Callstack(),
		Overview:  reg.Overview(),
		Clock:     clk,
	})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	router, err := s.newRouter()
	if err != nil {
		t.Fatalf("newRouter() error: %v", err)
	}

	paths := []string{
		"/health",
		"/debug/callstack",
		"/debug/collapsed",
		"/debug/overview",
		"/debug/callstack-overview",
		"/debug/metrics",
	}
	for _, path := range paths {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code >= 400 {
			t.Fatalf("%s returned status %d", path, rec.Code)
		}
	}
}

func TestHandleCallstackHonorsCanceledContext(t *testing.T) {
	clk := clock.NewFake(time.Unix(0, 0))
	reg := profiler.NewRegistry(clk)

	s, err := New(Options{
		Addr:      ":0",
		Registry:  reg,
		Callstack: reg.Callstack(),
		Overview:  reg.Overview(),
		Clock:     clk,
	})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	router, err := s.newRouter()
	if err != nil {
		t.Fatalf("newRouter() error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	req := httptest.NewRequest(http.MethodGet, "/debug/callstack", nil).WithContext(ctx)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code >= 400 {
		t.Fatalf("/debug/callstack with canceled context returned status %d", rec.Code)
	}

	if snap := reg.Callstack().Snapshot(clk.Now()); len(snap) != 0 {
		t.Fatalf("TimedBlockCtx should have skipped recording for a canceled context, got %d registered goroutines", len(snap))
	}
}
