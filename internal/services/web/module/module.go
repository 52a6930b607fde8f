// Package module defines the feature contract used by web composition.
package module

import (
	"net/http"

	"github.com/louisbranch/sympsolve/internal/services/web/platform/visitorcookie"
	"github.com/louisbranch/sympsolve/internal/submission"
)

// Mount describes a module route mount.
type Mount struct {
	Prefix  string
	Handler http.Handler
}

// Module declares the minimum contract required by web composition.
type Module interface {
	ID() string
	Mount() (Mount, error)
}

// Dependencies carries what the server shares with every module.
type Dependencies struct {
	// Visitors owns one submission machine per visitor cookie.
	Visitors      *submission.Registry
	VisitorPolicy visitorcookie.Policy
}
