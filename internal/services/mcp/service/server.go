package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/louisbranch/sympsolve/internal/platform/config"
	"github.com/louisbranch/sympsolve/internal/services/mcp/domain"
	"github.com/louisbranch/sympsolve/internal/solver"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	serverName    = "sympsolve"
	serverVersion = "0.1.0"
)

// Server owns the MCP server and its registered tools.
type Server struct {
	mcpServer *mcp.Server
}

// NewServer builds an MCP server whose tools call solver.
func NewServer(solver domain.Solver) *Server {
	server := mcp.NewServer(&mcp.Implementation{Name: serverName, Version: serverVersion}, nil)
	mcp.AddTool(server, domain.SolveEquationTool(), domain.SolveEquationHandler(solver))
	mcp.AddTool(server, domain.RenderExpressionTool(), domain.RenderExpressionHandler())
	return &Server{mcpServer: server}
}

// Run is the service entrypoint for MCP and blocks until context cancellation.
func Run(ctx context.Context, cfg Config) error {
	if cfg.Transport == "" {
		cfg.Transport = TransportStdio
	}
	switch cfg.Transport {
	case TransportStdio, TransportHTTP:
	default:
		return fmt.Errorf("transport %q is not supported", cfg.Transport)
	}

	client, err := solver.New(solver.Config{BaseURL: cfg.SolverURL})
	if err != nil {
		return fmt.Errorf("create solver client: %w", err)
	}
	server := NewServer(client)

	if cfg.Transport == TransportHTTP {
		var raw mcpHTTPEnv
		if err := config.ParseEnv(&raw); err != nil {
			return err
		}
		transport := NewHTTPTransport(cfg.HTTPAddr, server.mcpServer, append(raw.AllowedHosts, cfg.AllowedHosts...))
		return transport.Start(ctx)
	}
	log.Printf("serving MCP on stdio solver=%s", client.BaseURL())
	return server.serveWithTransport(ctx, &mcp.StdioTransport{})
}

// serveWithTransport runs the server until the client disconnects or ctx ends.
func (s *Server) serveWithTransport(ctx context.Context, transport mcp.Transport) error {
	if s == nil || s.mcpServer == nil {
		return fmt.Errorf("MCP server is not configured")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	err := s.mcpServer.Run(ctx, transport)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("serve MCP: %w", err)
	}
	return nil
}
