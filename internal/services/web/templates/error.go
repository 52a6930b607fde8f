package templates

import "net/http"

// ErrorPageTitle returns the page title for an error status.
func ErrorPageTitle(statusCode int, loc Localizer) string {
	if statusCode == http.StatusNotFound {
		return T(loc, "errors.not_found")
	}
	return T(loc, "errors.internal")
}
