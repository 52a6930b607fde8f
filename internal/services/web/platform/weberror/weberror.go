// Package weberror renders localized error responses for web handlers.
package weberror

import (
	"net/http"
	"strings"

	"github.com/a-h/templ"
	apperrors "github.com/louisbranch/sympsolve/internal/platform/errors"
	"github.com/louisbranch/sympsolve/internal/services/web/platform/httpx"
	webi18n "github.com/louisbranch/sympsolve/internal/services/web/platform/i18n"
	"github.com/louisbranch/sympsolve/internal/services/web/platform/pagerender"
	webtemplates "github.com/louisbranch/sympsolve/internal/services/web/templates"
)

// ShouldRenderErrorPage reports whether status should use the error page.
func ShouldRenderErrorPage(statusCode int) bool {
	return statusCode == http.StatusNotFound || statusCode >= http.StatusInternalServerError
}

// PublicMessage resolves a user-safe localized error message.
//
// Keyed errors are translated. Unkeyed input and solver errors carry a
// message meant for the user and are shown as-is. Anything else is reduced
// to its status text.
func PublicMessage(loc webi18n.Localizer, err error) string {
	if err == nil {
		return ""
	}
	if loc != nil {
		if key := apperrors.LocalizationKey(err); key != "" {
			if localized := strings.TrimSpace(loc.Sprintf(key)); localized != "" && localized != key {
				return localized
			}
		}
	}
	switch apperrors.KindOf(err) {
	case apperrors.KindInvalidInput, apperrors.KindSolver:
		if message := strings.TrimSpace(err.Error()); message != "" {
			return message
		}
	}
	statusCode := apperrors.HTTPStatus(err)
	if statusCode < http.StatusBadRequest {
		statusCode = http.StatusInternalServerError
	}
	return http.StatusText(statusCode)
}

// WriteErrorPage writes the localized error page for statusCode.
func WriteErrorPage(w http.ResponseWriter, r *http.Request, statusCode int) {
	if w == nil {
		return
	}
	if !ShouldRenderErrorPage(statusCode) {
		statusCode = http.StatusInternalServerError
	}
	err := pagerender.WritePage(w, r, pagerender.Page{
		Title:      titleKey(statusCode),
		StatusCode: statusCode,
		Fragment: func(loc webi18n.Localizer) templ.Component {
			return webtemplates.ErrorState(statusCode, loc)
		},
	})
	if err != nil {
		http.Error(w, http.StatusText(statusCode), statusCode)
	}
}

// WriteModuleError writes err as a page for 404 and 5xx, or as plain text.
func WriteModuleError(w http.ResponseWriter, r *http.Request, err error) {
	if w == nil {
		return
	}
	statusCode := apperrors.HTTPStatus(err)
	if ShouldRenderErrorPage(statusCode) {
		WriteErrorPage(w, r, statusCode)
		return
	}
	loc, _ := webi18n.ResolveLocalizer(w, r)
	http.Error(w, PublicMessage(loc, err), statusCode)
}

// WriteJSONError writes err as {"error": message} with its mapped status.
func WriteJSONError(w http.ResponseWriter, r *http.Request, err error) {
	if w == nil {
		return
	}
	loc, _ := webi18n.ResolveLocalizer(w, r)
	_ = httpx.WriteJSONError(w, apperrors.HTTPStatus(err), PublicMessage(loc, err))
}

func titleKey(statusCode int) string {
	if statusCode == http.StatusNotFound {
		return "errors.not_found"
	}
	return "errors.internal"
}
