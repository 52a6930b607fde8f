package service

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/louisbranch/sympsolve/internal/services/mcp/domain"
	"github.com/louisbranch/sympsolve/internal/solution"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type fakeSolver struct {
	result solution.APIResult
	err    error
}

func (f fakeSolver) Solve(context.Context, string) (solution.APIResult, error) {
	return f.result, f.err
}

// connect serves NewServer(solver) over in-memory transports and returns a
// connected client session.
func connect(t *testing.T, solver domain.Solver) *mcp.ClientSession {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	serverTransport, clientTransport := mcp.NewInMemoryTransports()
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- NewServer(solver).serveWithTransport(ctx, serverTransport)
	}()

	client := mcp.NewClient(&mcp.Implementation{Name: "client", Version: "v0.0.1"}, nil)
	clientCtx, clientCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer clientCancel()
	session, err := client.Connect(clientCtx, clientTransport, nil)
	if err != nil {
		cancel()
		t.Fatalf("connect client: %v", err)
	}
	t.Cleanup(func() {
		cancel()
		_ = session.Close()
		select {
		case <-serveErr:
		case <-time.After(2 * time.Second):
			t.Error("serve did not stop after cancel")
		}
	})
	return session
}

func TestServerListsTools(t *testing.T) {
	t.Parallel()

	session := connect(t, fakeSolver{})
	res, err := session.ListTools(context.Background(), nil)
	if err != nil {
		t.Fatalf("ListTools() error = %v", err)
	}
	names := map[string]bool{}
	for _, tool := range res.Tools {
		names[tool.Name] = true
	}
	for _, want := range []string{"solve_equation", "render_expression"} {
		if !names[want] {
			t.Fatalf("tools = %v, missing %q", names, want)
		}
	}
}

func TestSolveEquationOverMCP(t *testing.T) {
	t.Parallel()

	session := connect(t, fakeSolver{result: solution.APIResult{Result: solution.List("2", "-2")}})
	res, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "solve_equation",
		Arguments: map[string]any{"equation": "x^2 - 4"},
	})
	if err != nil {
		t.Fatalf("CallTool() error = %v", err)
	}
	if res.IsError {
		t.Fatalf("CallTool() IsError = true: %+v", res.Content)
	}
	raw, err := json.Marshal(res.StructuredContent)
	if err != nil {
		t.Fatalf("marshal structured content: %v", err)
	}
	var got domain.SolveEquationResult
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatalf("unmarshal structured content: %v", err)
	}
	if len(got.Expressions) != 2 || got.Expressions[0] != "2" || got.Expressions[1] != "-2" {
		t.Fatalf("Expressions = %v, want [2 -2]", got.Expressions)
	}
	if len(got.Outcomes) != 2 || !got.Outcomes[0].OK || !got.Outcomes[1].OK {
		t.Fatalf("Outcomes = %+v, want two successes", got.Outcomes)
	}
}

func TestSolveEquationOverMCPRejectsBlank(t *testing.T) {
	t.Parallel()

	session := connect(t, fakeSolver{})
	res, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "solve_equation",
		Arguments: map[string]any{"equation": "  "},
	})
	if err != nil {
		t.Fatalf("CallTool() error = %v", err)
	}
	if !res.IsError {
		t.Fatal("CallTool() IsError = false, want true")
	}
	var text strings.Builder
	for _, c := range res.Content {
		if tc, ok := c.(*mcp.TextContent); ok {
			text.WriteString(tc.Text)
		}
	}
	if !strings.Contains(text.String(), "Please enter an equation.") {
		t.Fatalf("content = %q, want validation message", text.String())
	}
}

func TestRenderExpressionOverMCP(t *testing.T) {
	t.Parallel()

	session := connect(t, fakeSolver{})
	res, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "render_expression",
		Arguments: map[string]any{"expression": `\sqrt{2}`},
	})
	if err != nil {
		t.Fatalf("CallTool() error = %v", err)
	}
	raw, _ := json.Marshal(res.StructuredContent)
	var got domain.RenderOutcome
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatalf("unmarshal structured content: %v", err)
	}
	if !got.OK || !strings.Contains(got.Markup, "<msqrt>") {
		t.Fatalf("outcome = %+v, want square root markup", got)
	}
}

func TestRunUnsupportedTransport(t *testing.T) {
	t.Parallel()

	err := Run(context.Background(), Config{Transport: "websocket", SolverURL: "http://localhost:8000"})
	if err == nil {
		t.Fatal("expected error for unsupported transport")
	}
	if !strings.Contains(err.Error(), "not supported") {
		t.Errorf("expected 'not supported' in error, got: %v", err)
	}
}

func TestRunRejectsInvalidSolverURL(t *testing.T) {
	t.Parallel()

	if err := Run(context.Background(), Config{Transport: TransportStdio, SolverURL: "::bad"}); err == nil {
		t.Fatal("expected solver url error")
	}
}

func TestServeWithTransportNilServer(t *testing.T) {
	t.Parallel()

	var s *Server
	if err := s.serveWithTransport(context.Background(), nil); err == nil {
		t.Fatal("expected error for nil server")
	}
}
