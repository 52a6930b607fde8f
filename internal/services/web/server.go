package web

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/louisbranch/sympsolve/internal/platform/timeouts"
	"github.com/louisbranch/sympsolve/internal/services/web/app"
	module "github.com/louisbranch/sympsolve/internal/services/web/module"
	"github.com/louisbranch/sympsolve/internal/services/web/modules"
	"github.com/louisbranch/sympsolve/internal/services/web/platform/httpx"
	"github.com/louisbranch/sympsolve/internal/services/web/platform/observability"
	"github.com/louisbranch/sympsolve/internal/services/web/platform/visitorcookie"
	"github.com/louisbranch/sympsolve/internal/services/web/routepath"
	webstatic "github.com/louisbranch/sympsolve/internal/services/web/static"
	"github.com/louisbranch/sympsolve/internal/solver"
	"github.com/louisbranch/sympsolve/internal/submission"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// DefaultVisitorIdleTTL is how long an untouched visitor machine is kept.
const DefaultVisitorIdleTTL = 30 * time.Minute

// Config defines startup inputs for the web service.
type Config struct {
	HTTPAddr  string
	SolverURL string
	// SolverHTTPClient overrides the instrumented default client.
	SolverHTTPClient    *http.Client
	VisitorIdleTTL      time.Duration
	TrustForwardedProto bool
}

// Server hosts the web HTTP surface and lifecycle.
type Server struct {
	httpAddr   string
	httpServer *http.Server
	visitors   *submission.Registry
	idleTTL    time.Duration
}

// NewHandler builds the root handler with a fresh visitor registry.
func NewHandler(cfg Config) (http.Handler, error) {
	visitors, err := newVisitors(cfg)
	if err != nil {
		return nil, err
	}
	return newHandler(cfg, visitors)
}

func newVisitors(cfg Config) (*submission.Registry, error) {
	client, err := solver.New(solver.Config{BaseURL: cfg.SolverURL, HTTPClient: cfg.SolverHTTPClient})
	if err != nil {
		return nil, fmt.Errorf("create solver client: %w", err)
	}
	return submission.NewRegistry(client), nil
}

func newHandler(cfg Config, visitors *submission.Registry) (http.Handler, error) {
	deps := module.Dependencies{
		Visitors:      visitors,
		VisitorPolicy: visitorcookie.Policy{TrustForwardedProto: cfg.TrustForwardedProto},
	}
	h, err := app.Composer{}.Compose(app.ComposeInput{Modules: modules.DefaultModules(deps)})
	if err != nil {
		return nil, err
	}
	rootMux := http.NewServeMux()
	rootMux.Handle(routepath.StaticPrefix, http.StripPrefix(routepath.StaticPrefix, http.FileServer(http.FS(webstatic.FS))))
	rootMux.Handle(routepath.Health, httpx.Chain(http.HandlerFunc(handleHealth), httpx.AllowMethods(http.MethodGet)))
	rootMux.Handle("/", h)
	chained := httpx.Chain(rootMux,
		httpx.RecoverPanic(),
		httpx.RequestID(),
		observability.RequestLogger(log.Default()),
	)
	return otelhttp.NewHandler(chained, "web"), nil
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, "ok")
}

// NewServer validates config and constructs a web server.
func NewServer(_ context.Context, cfg Config) (*Server, error) {
	httpAddr := strings.TrimSpace(cfg.HTTPAddr)
	if httpAddr == "" {
		return nil, errors.New("http address is required")
	}
	idleTTL := cfg.VisitorIdleTTL
	if idleTTL <= 0 {
		idleTTL = DefaultVisitorIdleTTL
	}
	visitors, err := newVisitors(cfg)
	if err != nil {
		return nil, err
	}
	handler, err := newHandler(cfg, visitors)
	if err != nil {
		return nil, fmt.Errorf("compose web handler: %w", err)
	}
	return &Server{
		httpAddr: httpAddr,
		httpServer: &http.Server{
			Addr:              httpAddr,
			Handler:           handler,
			ReadHeaderTimeout: timeouts.ReadHeader,
		},
		visitors: visitors,
		idleTTL:  idleTTL,
	}, nil
}

// ListenAndServe serves HTTP traffic until context cancellation or server stop.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil {
		return errors.New("web server is nil")
	}
	if ctx == nil {
		return errors.New("context is required")
	}

	sweepCtx, stopSweep := context.WithCancel(ctx)
	defer stopSweep()
	go s.visitors.RunSweeper(sweepCtx, timeouts.VisitorSweep, s.idleTTL)

	serveErr := make(chan error, 1)
	go func() {
		log.Printf("web listening addr=%s", s.httpAddr)
		serveErr <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		err := s.httpServer.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("shutdown web http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve web http: %w", err)
	}
}

// Close closes open server resources.
func (s *Server) Close() {
	if s == nil || s.httpServer == nil {
		return
	}
	_ = s.httpServer.Close()
}
