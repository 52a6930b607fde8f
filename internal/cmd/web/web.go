// Package web parses web command flags and starts the browser-facing server.
package web

import (
	"context"
	"flag"
	"fmt"
	"time"

	entrypoint "github.com/louisbranch/sympsolve/internal/platform/cmd"
	"github.com/louisbranch/sympsolve/internal/platform/config"
	"github.com/louisbranch/sympsolve/internal/services/web"
)

// Config holds the web command configuration.
type Config struct {
	config.Solver
	HTTPAddr            string        `env:"SYMPSOLVE_WEB_HTTP_ADDR"             envDefault:"localhost:8090"`
	VisitorIdleTTL      time.Duration `env:"SYMPSOLVE_VISITOR_IDLE_TTL"          envDefault:"30m"`
	TrustForwardedProto bool          `env:"SYMPSOLVE_WEB_TRUST_FORWARDED_PROTO" envDefault:"false"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
	fs.StringVar(&cfg.BaseURL, "solver-url", cfg.BaseURL, "solver service base URL")
	fs.DurationVar(&cfg.VisitorIdleTTL, "visitor-idle-ttl", cfg.VisitorIdleTTL, "how long an idle visitor keeps its submission state")
	fs.BoolVar(&cfg.TrustForwardedProto, "trust-forwarded-proto", cfg.TrustForwardedProto, "mark cookies secure when X-Forwarded-Proto is https")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	if err := cfg.Solver.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the web server and blocks until ctx ends.
func Run(ctx context.Context, cfg Config) error {
	server, err := web.NewServer(ctx, web.Config{
		HTTPAddr:            cfg.HTTPAddr,
		SolverURL:           cfg.BaseURL,
		VisitorIdleTTL:      cfg.VisitorIdleTTL,
		TrustForwardedProto: cfg.TrustForwardedProto,
	})
	if err != nil {
		return fmt.Errorf("init web server: %w", err)
	}
	defer server.Close()

	if err := server.ListenAndServe(ctx); err != nil {
		return fmt.Errorf("serve web: %w", err)
	}
	return nil
}
