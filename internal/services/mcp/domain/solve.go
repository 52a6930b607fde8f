package domain

import (
	"context"
	"fmt"
	"strings"

	"github.com/louisbranch/sympsolve/internal/solution"
	"github.com/louisbranch/sympsolve/internal/submission"
	"github.com/louisbranch/sympsolve/internal/typeset"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Solver solves one equation against the solver service.
type Solver interface {
	Solve(ctx context.Context, equation string) (solution.APIResult, error)
}

// SolveEquationInput represents the MCP tool input for solving an equation.
type SolveEquationInput struct {
	Equation string `json:"equation" jsonschema:"equation to solve, for example x^2 + 2x - 10"`
}

// RenderOutcome is the typeset form of one expression.
type RenderOutcome struct {
	OK     bool   `json:"ok" jsonschema:"whether the expression was typeset"`
	Markup string `json:"markup,omitempty" jsonschema:"HTML with embedded MathML for the expression"`
}

// SolveEquationResult represents the MCP tool output for a solved equation.
type SolveEquationResult struct {
	Expressions []string        `json:"expressions" jsonschema:"solution expressions in solver order"`
	Outcomes    []RenderOutcome `json:"outcomes" jsonschema:"typeset outcome for each expression, index aligned"`
	FigureURL   string          `json:"figure_url,omitempty" jsonschema:"absolute URL of the plot when the solver produced one"`
}

// RenderExpressionInput represents the MCP tool input for typesetting.
type RenderExpressionInput struct {
	Expression string `json:"expression" jsonschema:"expression to typeset as x = expression"`
}

// SolveEquationTool defines the MCP tool schema for solving equations.
func SolveEquationTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "solve_equation",
		Description: "Solves an equation for x and typesets each solution",
	}
}

// RenderExpressionTool defines the MCP tool schema for typesetting one expression.
func RenderExpressionTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "render_expression",
		Description: "Typesets x = expression as MathML",
	}
}

// SolveEquationHandler solves input.Equation and typesets the result.
// Blank equations are rejected before the solver is called.
func SolveEquationHandler(solver Solver) mcp.ToolHandlerFor[SolveEquationInput, SolveEquationResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input SolveEquationInput) (*mcp.CallToolResult, SolveEquationResult, error) {
		equation := strings.TrimSpace(input.Equation)
		if equation == "" {
			return nil, SolveEquationResult{}, submission.ErrEmptyEquation
		}
		if solver == nil {
			return nil, SolveEquationResult{}, fmt.Errorf("solver is not configured")
		}
		res, err := solver.Solve(ctx, equation)
		if err != nil {
			return nil, SolveEquationResult{}, fmt.Errorf("solve equation: %w", err)
		}
		expressions := solution.Normalize(res.Result)
		return nil, SolveEquationResult{
			Expressions: expressions,
			Outcomes:    toRenderOutcomes(typeset.RenderAll(expressions)),
			FigureURL:   res.FigureURL,
		}, nil
	}
}

// RenderExpressionHandler typesets input.Expression. It never fails; a bad
// expression yields OK false.
func RenderExpressionHandler() mcp.ToolHandlerFor[RenderExpressionInput, RenderOutcome] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input RenderExpressionInput) (*mcp.CallToolResult, RenderOutcome, error) {
		out := typeset.Render(input.Expression)
		return nil, RenderOutcome{OK: out.OK, Markup: out.Markup}, nil
	}
}

func toRenderOutcomes(outcomes []typeset.Outcome) []RenderOutcome {
	out := make([]RenderOutcome, len(outcomes))
	for i, o := range outcomes {
		out[i] = RenderOutcome{OK: o.OK, Markup: o.Markup}
	}
	return out
}
