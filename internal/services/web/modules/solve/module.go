package solve

import (
	"net/http"

	module "github.com/louisbranch/sympsolve/internal/services/web/module"
	"github.com/louisbranch/sympsolve/internal/services/web/platform/visitorcookie"
	"github.com/louisbranch/sympsolve/internal/services/web/routepath"
)

// Module provides the equation form and the rendered result pages.
type Module struct {
	service       service
	visitorPolicy visitorcookie.Policy
}

// New returns a solve module backed by visitors.
func New(visitors Visitors, policy visitorcookie.Policy) Module {
	return Module{service: newService(visitors), visitorPolicy: policy}
}

// ID returns a stable module identifier.
func (Module) ID() string { return "solve" }

// Mount wires the page routes under the root prefix.
func (m Module) Mount() (module.Mount, error) {
	mux := http.NewServeMux()
	registerRoutes(mux, newHandlers(m.service, m.visitorPolicy))
	return module.Mount{Prefix: routepath.Root, Handler: mux}, nil
}
