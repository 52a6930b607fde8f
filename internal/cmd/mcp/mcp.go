// Package mcp parses MCP command flags and selects stdio or HTTP transport.
package mcp

import (
	"context"
	"flag"

	entrypoint "github.com/louisbranch/sympsolve/internal/platform/cmd"
	"github.com/louisbranch/sympsolve/internal/platform/config"
	"github.com/louisbranch/sympsolve/internal/services/mcp/service"
)

// Config holds MCP command configuration.
type Config struct {
	config.Solver
	HTTPAddr  string `env:"SYMPSOLVE_MCP_HTTP_ADDR" envDefault:"localhost:8081"`
	Transport string `env:"SYMPSOLVE_MCP_TRANSPORT" envDefault:"stdio"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.BaseURL, "solver-url", cfg.BaseURL, "solver service base URL")
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP server address (for HTTP transport)")
	fs.StringVar(&cfg.Transport, "transport", cfg.Transport, "Transport type: stdio or http")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	if err := cfg.Solver.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the MCP protocol adapter.
func Run(ctx context.Context, cfg Config) error {
	return service.Run(ctx, service.Config{
		Transport: service.Transport(cfg.Transport),
		HTTPAddr:  cfg.HTTPAddr,
		SolverURL: cfg.BaseURL,
	})
}
