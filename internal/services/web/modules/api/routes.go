package api

import (
	"net/http"

	"github.com/louisbranch/sympsolve/internal/services/web/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.APISolve, h.handleSolve)
	mux.HandleFunc(http.MethodGet+" "+routepath.APIRender, h.handleRender)
	mux.HandleFunc(http.MethodGet+" "+routepath.APIPrefix+"{rest...}", h.handleNotFound)
}
