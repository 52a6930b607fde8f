// Package config loads service configuration from the environment.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
)

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Solver holds the settings shared by every service that talks to the remote
// solving service.
type Solver struct {
	BaseURL string `env:"SYMPSOLVE_SOLVER_URL" envDefault:"http://localhost:8000"`
}

// Validate checks that BaseURL is an absolute http(s) URL.
func (s Solver) Validate() error {
	raw := strings.TrimSpace(s.BaseURL)
	if raw == "" {
		return fmt.Errorf("solver url is required")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("parse solver url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("solver url %q must use http or https", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("solver url %q has no host", raw)
	}
	return nil
}

// Exitf writes a formatted error message to stderr and exits with code 1.
func Exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
