package templates

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"github.com/louisbranch/sympsolve/internal/services/shared/i18nhttp"
	"golang.org/x/net/html"
)

func render(t *testing.T, ctx context.Context, c templ.Component) string {
	t.Helper()

	var buf bytes.Buffer
	if err := c.Render(ctx, &buf); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	return buf.String()
}

func findByID(n *html.Node, id string) *html.Node {
	if n.Type == html.ElementNode {
		for _, a := range n.Attr {
			if a.Key == "id" && a.Val == id {
				return n
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findByID(c, id); found != nil {
			return found
		}
	}
	return nil
}

func TestSolveResultPlaceholder(t *testing.T) {
	t.Parallel()

	got := render(t, context.Background(), SolveResult(SolveView{State: "idle"}, nil))
	if !strings.Contains(got, `<p class="solve-placeholder">solve.placeholder</p>`) {
		t.Fatalf("SolveResult() = %s, want placeholder", got)
	}
	if !strings.Contains(got, `id="solve-result"`) || !strings.Contains(got, `data-state="idle"`) {
		t.Fatalf("SolveResult() = %s, want result container", got)
	}
}

func TestSolveResultLinesKeepOrderAndIsolateFailures(t *testing.T) {
	t.Parallel()

	view := SolveView{
		State: "success",
		Lines: []LineView{
			{OK: true, Markup: `<span class="katex">one</span>`},
			{OK: false},
			{OK: true, Markup: `<span class="katex">three</span>`},
		},
	}
	got := render(t, context.Background(), SolveResult(view, nil))

	first := strings.Index(got, "one")
	failed := strings.Index(got, `<div class="solve-line-error">solve.render_failed</div>`)
	third := strings.Index(got, "three")
	if first < 0 || failed < 0 || third < 0 {
		t.Fatalf("SolveResult() = %s, want all three lines", got)
	}
	if !(first < failed && failed < third) {
		t.Fatalf("SolveResult() = %s, lines out of order", got)
	}
	if strings.Contains(got, "solve-placeholder") {
		t.Fatalf("SolveResult() = %s, want no placeholder", got)
	}
}

func TestSolveResultErrorIsEscaped(t *testing.T) {
	t.Parallel()

	got := render(t, context.Background(), SolveResult(SolveView{State: "error", Error: `<b>invalid</b> equation`}, nil))
	if !strings.Contains(got, `<p class="solve-error" role="alert">&lt;b&gt;invalid&lt;/b&gt; equation</p>`) {
		t.Fatalf("SolveResult() = %s, want escaped error", got)
	}
}

func TestSolveResultFigure(t *testing.T) {
	t.Parallel()

	got := render(t, context.Background(), SolveResult(SolveView{
		State:     "success",
		FigureURL: "http://localhost:8000/static/plots/p.png",
	}, nil))
	if !strings.Contains(got, `<img src="http://localhost:8000/static/plots/p.png" alt="solve.plot_alt"`) {
		t.Fatalf("SolveResult() = %s, want figure", got)
	}

	unsafe := render(t, context.Background(), SolveResult(SolveView{FigureURL: "javascript:alert(1)"}, nil))
	if strings.Contains(unsafe, "javascript:") {
		t.Fatalf("SolveResult() = %s, want unsafe url sanitized", unsafe)
	}
}

func TestSolvePageFormKeepsEquation(t *testing.T) {
	t.Parallel()

	got := render(t, context.Background(), SolvePage(SolveView{Equation: `x" onfocus="alert(1)`}, nil))
	doc, err := html.Parse(strings.NewReader(got))
	if err != nil {
		t.Fatalf("html.Parse() error = %v", err)
	}
	input := findByID(doc, "equation")
	if input == nil {
		t.Fatalf("SolvePage() = %s, want equation input", got)
	}
	for _, a := range input.Attr {
		if a.Key == "onfocus" {
			t.Fatalf("equation value escaped into attribute: %s", got)
		}
		if a.Key == "value" && a.Val != `x" onfocus="alert(1)` {
			t.Fatalf("value = %q", a.Val)
		}
	}
	if findByID(doc, ResultID) == nil {
		t.Fatalf("SolvePage() = %s, want result panel", got)
	}
	if !strings.Contains(got, `hx-target="#solve-result"`) {
		t.Fatalf("SolvePage() = %s, want htmx target", got)
	}
}

func TestLayoutWrapsChildren(t *testing.T) {
	t.Parallel()

	child := templ.Raw(`<p id="child">hi</p>`)
	page := PageContext{
		Title: "Solve equation",
		Lang:  "pt-BR",
		Languages: []i18nhttp.LanguageOption{
			{Tag: "en-US", Label: "English", URL: "/?lang=en-US"},
			{Tag: "pt-BR", Label: "Português", URL: "/?lang=pt-BR", Active: true},
		},
	}
	got := render(t, templ.WithChildren(context.Background(), child), Layout(page))

	for _, marker := range []string{
		`<html lang="pt-BR">`,
		`<title>Solve equation | core.app_name</title>`,
		`<main id="main" class="app-main"><p id="child">hi</p></main>`,
		`href="/?lang=pt-BR" hreflang="pt-BR" aria-current="true"`,
		`href="/static/app.css"`,
	} {
		if !strings.Contains(got, marker) {
			t.Fatalf("Layout() missing %q in %s", marker, got)
		}
	}
}

func TestErrorState(t *testing.T) {
	t.Parallel()

	got := render(t, context.Background(), ErrorState(http.StatusNotFound, nil))
	if !strings.Contains(got, `data-status="404"`) || !strings.Contains(got, "<h1>errors.not_found</h1>") {
		t.Fatalf("ErrorState(404) = %s", got)
	}
	if title := ErrorPageTitle(http.StatusBadGateway, nil); title != "errors.internal" {
		t.Fatalf("ErrorPageTitle(502) = %q", title)
	}
}

func TestSolveResultEmbedsLineMarkupVerbatim(t *testing.T) {
	t.Parallel()

	view := SolveView{
		State: "success",
		Lines: []LineView{{OK: true, Markup: `<math><mi>x</mi><mo>=</mo><mn>2</mn></math>`}},
	}
	got := render(t, context.Background(), SolveResult(view, nil))
	want := `<li class="solve-line" data-index="0"><math><mi>x</mi><mo>=</mo><mn>2</mn></math></li>`
	if !strings.Contains(got, want) {
		t.Fatalf("SolveResult() = %s, want %s", got, want)
	}
}

func TestLayoutDefaultsWithoutLanguages(t *testing.T) {
	t.Parallel()

	got := render(t, context.Background(), Layout(PageContext{}))
	for _, marker := range []string{
		`<!doctype html><html lang="en-US">`,
		`<title>core.app_name</title>`,
		`<main id="main" class="app-main"></main>`,
	} {
		if !strings.Contains(got, marker) {
			t.Fatalf("Layout() missing %q in %s", marker, got)
		}
	}
	if strings.Contains(got, "language-nav") {
		t.Fatalf("Layout() = %s, want no language nav", got)
	}
}

func TestComponentsStopOnCancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var buf bytes.Buffer
	if err := SolvePage(SolveView{}, nil).Render(ctx, &buf); !errors.Is(err, context.Canceled) {
		t.Fatalf("Render() error = %v, want context.Canceled", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("Render() wrote %q after cancel", buf.String())
	}
}

func TestT_NilLocalizer(t *testing.T) {
	got := T(nil, "some.key")
	if got != "some.key" {
		t.Fatalf("T(nil, ...) = %q, want %q", got, "some.key")
	}
}

func TestT_NilLocalizerNonStringKey(t *testing.T) {
	got := T(nil, 42)
	if got != "" {
		t.Fatalf("T(nil, 42) = %q, want empty", got)
	}
}
