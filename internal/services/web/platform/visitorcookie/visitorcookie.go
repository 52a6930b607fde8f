// Package visitorcookie identifies anonymous visitors across requests so each
// browser keeps its own submission state.
package visitorcookie

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/louisbranch/sympsolve/internal/platform/id"
)

// Name is the visitor cookie name.
const Name = "sympsolve_visitor"

const maxAge = 30 * 24 * time.Hour

// Policy controls how the request scheme is detected.
//
// TrustForwardedProto must be enabled explicitly before X-Forwarded-Proto is
// consulted.
type Policy struct {
	TrustForwardedProto bool
}

// Read returns the visitor id when the request carries a well-formed one.
func Read(r *http.Request) (string, bool) {
	if r == nil {
		return "", false
	}
	cookie, err := r.Cookie(Name)
	if err != nil || cookie == nil {
		return "", false
	}
	value := strings.TrimSpace(cookie.Value)
	if !id.Valid(value) {
		return "", false
	}
	return value, true
}

// Ensure returns the request's visitor id, issuing and setting a new one when
// the cookie is missing or malformed.
func Ensure(w http.ResponseWriter, r *http.Request, policy Policy) (string, error) {
	if visitorID, ok := Read(r); ok {
		return visitorID, nil
	}
	visitorID, err := id.NewID()
	if err != nil {
		return "", fmt.Errorf("generate visitor id: %w", err)
	}
	Write(w, r, visitorID, policy)
	return visitorID, nil
}

// Write sets the visitor cookie.
func Write(w http.ResponseWriter, r *http.Request, visitorID string, policy Policy) {
	if w == nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     Name,
		Value:    strings.TrimSpace(visitorID),
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		HttpOnly: true,
		Secure:   isHTTPS(r, policy),
		SameSite: http.SameSiteLaxMode,
	})
}

func isHTTPS(r *http.Request, policy Policy) bool {
	if r == nil {
		return false
	}
	if policy.TrustForwardedProto {
		if forwarded := strings.ToLower(strings.TrimSpace(r.Header.Get("X-Forwarded-Proto"))); forwarded == "http" || forwarded == "https" {
			return forwarded == "https"
		}
	}
	if r.URL != nil && strings.EqualFold(r.URL.Scheme, "https") {
		return true
	}
	return r.TLS != nil
}
