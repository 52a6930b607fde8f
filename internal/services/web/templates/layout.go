package templates

import "github.com/louisbranch/sympsolve/internal/services/shared/i18nhttp"

// PageContext carries the shared layout state of a full page.
type PageContext struct {
	Title     string
	Lang      string
	Loc       Localizer
	Languages []i18nhttp.LanguageOption
}

func pageTitle(page PageContext) string {
	appName := T(page.Loc, "core.app_name")
	if page.Title == "" {
		return appName
	}
	return page.Title + " | " + appName
}

func pageLang(page PageContext) string {
	if page.Lang == "" {
		return "en-US"
	}
	return page.Lang
}
