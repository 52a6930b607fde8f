package api

import (
	"net/http"

	module "github.com/louisbranch/sympsolve/internal/services/web/module"
	"github.com/louisbranch/sympsolve/internal/services/web/platform/visitorcookie"
	"github.com/louisbranch/sympsolve/internal/services/web/routepath"
)

// Module provides JSON solve and render endpoints.
type Module struct {
	service       service
	visitorPolicy visitorcookie.Policy
}

// New returns an api module backed by visitors.
func New(visitors Visitors, policy visitorcookie.Policy) Module {
	return Module{service: newService(visitors), visitorPolicy: policy}
}

// ID returns a stable module identifier.
func (Module) ID() string { return "api" }

// Mount wires JSON routes under the api prefix.
func (m Module) Mount() (module.Mount, error) {
	mux := http.NewServeMux()
	registerRoutes(mux, newHandlers(m.service, m.visitorPolicy))
	return module.Mount{Prefix: routepath.APIPrefix, Handler: mux}, nil
}
