// Package web hosts the browser-facing equation solver.
//
// Pages post nothing: the form issues GET /solve, which runs the visitor's
// submission machine against the solver service and renders each returned
// expression as MathML. HTMX requests receive only the result panel. The same
// flow is exposed as JSON under /api/.
package web
