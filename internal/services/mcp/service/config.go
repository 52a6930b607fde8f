package service

import "time"

// Transport selects how the MCP server talks to its client.
type Transport string

const (
	TransportStdio Transport = "stdio"
	TransportHTTP  Transport = "http"
)

// defaultHTTPAddr keeps the HTTP transport on loopback unless configured.
const defaultHTTPAddr = "localhost:8081"

// defaultShutdownTimeout bounds graceful HTTP shutdown.
const defaultShutdownTimeout = 10 * time.Second

// Config defines startup inputs for the MCP service.
type Config struct {
	Transport Transport
	HTTPAddr  string
	SolverURL string
	// AllowedHosts extends the loopback-only Host/Origin allowlist of the
	// HTTP transport.
	AllowedHosts []string
}

// mcpHTTPEnv holds env-parsed configuration for MCP HTTP transport.
type mcpHTTPEnv struct {
	AllowedHosts []string `env:"SYMPSOLVE_MCP_ALLOWED_HOSTS" envSeparator:","`
}
