// Package routepath stores canonical HTTP paths for web modules.
package routepath

import "net/url"

const (
	Root         = "/"
	Solve        = "/solve"
	Health       = "/health"
	StaticPrefix = "/static/"
	APIPrefix    = "/api/"
	APISolve     = "/api/solve"
	APIRender    = "/api/render"

	EquationQueryKey   = "equation"
	ExpressionQueryKey = "expr"
)

// SolveEquation returns the page route that solves equation.
func SolveEquation(equation string) string {
	return Solve + "?" + url.Values{EquationQueryKey: {equation}}.Encode()
}

// APISolveEquation returns the JSON route that solves equation.
func APISolveEquation(equation string) string {
	return APISolve + "?" + url.Values{EquationQueryKey: {equation}}.Encode()
}

// APIRenderExpression returns the JSON route that renders expr.
func APIRenderExpression(expr string) string {
	return APIRender + "?" + url.Values{ExpressionQueryKey: {expr}}.Encode()
}
