// Package i18n resolves the request localizer for web handlers.
package i18n

import (
	"net/http"

	"github.com/louisbranch/sympsolve/internal/services/shared/i18nhttp"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Localizer formats catalog messages.
type Localizer interface {
	Sprintf(key message.Reference, args ...any) string
}

// ResolveLocalizer picks the request language, persists an explicit lang
// query choice as a cookie, and returns a printer for it.
func ResolveLocalizer(w http.ResponseWriter, r *http.Request) (Localizer, string) {
	tag := ResolveTag(w, r)
	return i18nhttp.Printer(tag), tag.String()
}

// ResolveTag is ResolveLocalizer without the printer.
func ResolveTag(w http.ResponseWriter, r *http.Request) language.Tag {
	tag, persist := i18nhttp.ResolveTag(r)
	if persist {
		i18nhttp.SetLanguageCookie(w, tag)
	}
	return tag
}
