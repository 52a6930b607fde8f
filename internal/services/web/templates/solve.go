package templates

// ResultID is the element id swapped by HTMX on submit.
const ResultID = "solve-result"

// SolveView is the display state of the solve page.
type SolveView struct {
	Equation  string
	State     string
	Lines     []LineView
	Error     string
	FigureURL string
}

// LineView is one rendered solution. Markup is trusted typesetter output.
type LineView struct {
	OK     bool
	Markup string
}
