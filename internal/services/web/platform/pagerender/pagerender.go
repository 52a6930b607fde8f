// Package pagerender centralizes page rendering for full-page and HTMX flows.
package pagerender

import (
	"bytes"
	"net/http"

	"github.com/a-h/templ"
	"github.com/louisbranch/sympsolve/internal/services/shared/i18nhttp"
	"github.com/louisbranch/sympsolve/internal/services/web/platform/httpx"
	webi18n "github.com/louisbranch/sympsolve/internal/services/web/platform/i18n"
	webtemplates "github.com/louisbranch/sympsolve/internal/services/web/templates"
	"golang.org/x/text/language"
)

// Page describes one page response.
//
// Fragment is the full page body. Partial, when set, replaces it for HTMX
// requests so a swap only carries the region being updated.
type Page struct {
	Title      string
	StatusCode int
	Fragment   func(loc webi18n.Localizer) templ.Component
	Partial    func(loc webi18n.Localizer) templ.Component
}

// WritePage renders page. HTMX requests get the bare fragment, everything
// else gets the layout around it.
func WritePage(w http.ResponseWriter, r *http.Request, page Page) error {
	if w == nil {
		return nil
	}
	statusCode := page.StatusCode
	if statusCode <= 0 {
		statusCode = http.StatusOK
	}
	loc, lang := webi18n.ResolveLocalizer(w, r)
	ctx := httpx.RequestContext(r)

	fragment := componentFor(page.Fragment, loc)
	w.Header().Add("Vary", "HX-Request")

	var buf bytes.Buffer
	if httpx.IsHTMXRequest(r) {
		if page.Partial != nil {
			fragment = componentFor(page.Partial, loc)
		}
		if err := fragment.Render(ctx, &buf); err != nil {
			return err
		}
		return httpx.WriteHTML(w, statusCode, buf.String())
	}

	layout := webtemplates.Layout(webtemplates.PageContext{
		Title:     webtemplates.T(loc, page.Title),
		Lang:      lang,
		Loc:       loc,
		Languages: languageOptions(r, lang, loc),
	})
	if err := layout.Render(templ.WithChildren(ctx, fragment), &buf); err != nil {
		return err
	}
	return httpx.WriteHTML(w, statusCode, buf.String())
}

func componentFor(build func(webi18n.Localizer) templ.Component, loc webi18n.Localizer) templ.Component {
	if build == nil {
		return templ.NopComponent
	}
	if c := build(loc); c != nil {
		return c
	}
	return templ.NopComponent
}

func languageOptions(r *http.Request, lang string, loc webi18n.Localizer) []i18nhttp.LanguageOption {
	path, query := "/", ""
	if r != nil && r.URL != nil {
		path, query = r.URL.Path, r.URL.RawQuery
	}
	return i18nhttp.BuildLanguageOptions(language.Make(lang), path, query, func(tag language.Tag) string {
		return webtemplates.T(loc, i18nhttp.LanguageKeyLabel(tag))
	})
}
