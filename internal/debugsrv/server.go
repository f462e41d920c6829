// Package debugsrv exposes a daemon's profiler state over HTTP: the report
// flavors (callstack, collapsed, overview, callstack-overview), per-block
// latency percentiles at /debug/metrics, and a liveness probe. It is
// deliberately separate from any application-facing API surface — nothing
// here is meant to be reachable from outside the operator's own network.
package debugsrv

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/CAFxX/httpcompression"
	"github.com/julienschmidt/httprouter"

	"github.com/coldstore/filed/internal/clock"
	"github.com/coldstore/filed/internal/logging"
	"github.com/coldstore/filed/internal/profiler"
	"github.com/coldstore/filed/internal/quantile"
	"github.com/coldstore/filed/internal/report"
)

var log = logging.Component("debugsrv")

var (
	blockHandleCallstack         = &profiler.BlockIdentity{Name: "debugsrv.callstack"}
	blockHandleCollapsed         = &profiler.BlockIdentity{Name: "debugsrv.collapsed"}
	blockHandleOverview          = &profiler.BlockIdentity{Name: "debugsrv.overview"}
	blockHandleCallstackOverview = &profiler.BlockIdentity{Name: "debugsrv.callstack_overview"}
	blockHandleMetrics           = &profiler.BlockIdentity{Name: "debugsrv.metrics"}
)

// Server serves /debug/* profiler reports and /health over HTTP.
type Server struct {
	http      *http.Server
	registry  *profiler.Registry
	callstack profiler.CallstackReport
	overview  profiler.OverviewReport
	latency   *quantile.Tracker
	clk       clock.Clock
}

// Options configures a Server. A zero Latency is fine; the /debug/metrics
// route then always reports an empty set. Registry is used only to time
// the handlers' own work via TimedBlockCtx; a nil Registry disables that
// self-instrumentation.
type Options struct {
	Addr      string
	Registry  *profiler.Registry
	Callstack profiler.CallstackReport
	Overview  profiler.OverviewReport
	Latency   *quantile.Tracker
	Clock     clock.Clock
}

// New builds a Server. It does not start listening until Run is called.
func New(opts Options) (*Server, error) {
	if opts.Clock == nil {
		opts.Clock = clock.Real{}
	}
	s := &Server{
		registry:  opts.Registry,
		callstack: opts.Callstack,
		overview:  opts.Overview,
		latency:   opts.Latency,
		clk:       opts.Clock,
	}

	router, err := s.newRouter()
	if err != nil {
		return nil, err
	}
	s.http = &http.Server{
		Addr:    opts.Addr,
		Handler: router,
	}
	return s, nil
}

// timedCtx wraps id around the handler's own work, the way TimedBlock
// wraps a goroutine-local scope, but honoring the request's context.
func (s *Server) timedCtx(r *http.Request, id *profiler.BlockIdentity) func() {
	if s.registry == nil {
		return func() {}
	}
	return s.registry.TimedBlockCtx(r.Context(), id)
}

func (s *Server) newRouter() (*httprouter.Router, error) {
	compress, err := httpcompression.DefaultAdapter()
	if err != nil {
		return nil, fmt.Errorf("debugsrv: building compression adapter: %w", err)
	}

	routes := []struct {
		method  string
		path    string
		handler http.HandlerFunc
	}{
		{http.MethodGet, "/health", s.handleHealth},
		{http.MethodGet, "/debug/callstack", s.handleCallstack},
		{http.MethodGet, "/debug/collapsed", s.handleCollapsed},
		{http.MethodGet, "/debug/overview", s.handleOverview},
		{http.MethodGet, "/debug/callstack-overview", s.handleCallstackOverview},
		{http.MethodGet, "/debug/metrics", s.handleMetrics},
	}

	router := httprouter.New()
	for _, route := range routes {
		router.Handler(route.method, route.path, compress(route.handler))
	}
	return router, nil
}

// Run listens and serves until ctx is canceled, then gracefully shuts
// down, allowing up to 10 seconds for in-flight requests to finish.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() { errCh <- s.http.ListenAndServe() }()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	case <-ctx.Done():
		sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.http.Shutdown(sctx); err != nil {
			log.Error().Err(err).Msg("error shutting down debug server")
			return err
		}
		return nil
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCallstack(w http.ResponseWriter, r *http.Request) {
	defer s.timedCtx(r, blockHandleCallstack)()
	depth, relative := parseTreeParams(r)
	now := s.clk.Now()
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprint(w, report.Callstack(s.callstack, now, depth, relative))
}

func (s *Server) handleCollapsed(w http.ResponseWriter, r *http.Request) {
	defer s.timedCtx(r, blockHandleCollapsed)()
	depth, _ := parseTreeParams(r)
	now := s.clk.Now()
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprint(w, report.Collapsed(s.callstack, now, depth))
}

func (s *Server) handleOverview(w http.ResponseWriter, r *http.Request) {
	defer s.timedCtx(r, blockHandleOverview)()
	now := s.clk.Now()
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprint(w, report.Overview(s.overview, now, 0))
}

func (s *Server) handleCallstackOverview(w http.ResponseWriter, r *http.Request) {
	defer s.timedCtx(r, blockHandleCallstackOverview)()
	depth, relative := parseTreeParams(r)
	now := s.clk.Now()
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprint(w, report.CallstackOverview(s.callstack, now, depth, relative))
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	defer s.timedCtx(r, blockHandleMetrics)()
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if s.latency == nil {
		return
	}
	for _, id := range s.latency.Blocks() {
		sum := s.latency.Summary(id)
		fmt.Fprintf(w, "%s: count=%d p50=%s p95=%s p99=%s\n",
			id.Name, sum.Count, sum.P50, sum.P95, sum.P99)
	}
}

func parseTreeParams(r *http.Request) (depth int, relative bool) {
	q := r.URL.Query()
	relative = q.Get("relative") == "true"
	if v := q.Get("depth"); v != "" {
		fmt.Sscanf(v, "%d", &depth)
	}
	return depth, relative
}
