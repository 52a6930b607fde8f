package api

import (
	"log"
	"net/http"

	apperrors "github.com/louisbranch/sympsolve/internal/platform/errors"
	"github.com/louisbranch/sympsolve/internal/services/web/platform/httpx"
	"github.com/louisbranch/sympsolve/internal/services/web/platform/visitorcookie"
	"github.com/louisbranch/sympsolve/internal/services/web/platform/weberror"
	"github.com/louisbranch/sympsolve/internal/services/web/routepath"
	"github.com/louisbranch/sympsolve/internal/typeset"
)

// solvePayload is the JSON body of a successful solve.
type solvePayload struct {
	Expressions []string          `json:"expressions"`
	Outcomes    []typeset.Outcome `json:"outcomes"`
	FigureURL   string            `json:"figure_url,omitempty"`
}

type handlers struct {
	service       service
	visitorPolicy visitorcookie.Policy
}

func newHandlers(s service, policy visitorcookie.Policy) handlers {
	return handlers{service: s, visitorPolicy: policy}
}

func (h handlers) handleSolve(w http.ResponseWriter, r *http.Request) {
	visitorID, err := visitorcookie.Ensure(w, r, h.visitorPolicy)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	snap, err := h.service.solve(r.Context(), visitorID, r.URL.Query().Get(routepath.EquationQueryKey))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, r, solvePayload{
		Expressions: snap.Expressions,
		Outcomes:    snap.Outcomes,
		FigureURL:   snap.FigureURL,
	})
}

func (h handlers) handleRender(w http.ResponseWriter, r *http.Request) {
	out := h.service.render(r.Context(), r.URL.Query().Get(routepath.ExpressionQueryKey))
	writeJSON(w, r, out)
}

func (h handlers) handleNotFound(w http.ResponseWriter, r *http.Request) {
	h.writeError(w, r, apperrors.E(apperrors.KindNotFound, "route not found"))
}

func (h handlers) writeError(w http.ResponseWriter, r *http.Request, err error) {
	if apperrors.HTTPStatus(err) >= http.StatusInternalServerError {
		log.Printf("api error path=%s request_id=%s err=%v", r.URL.Path, httpx.RequestIDFrom(r), err)
	}
	weberror.WriteJSONError(w, r, err)
}

// writeJSON answers 200 with payload. The status line is already sent when
// encoding fails, so the failure is only logged.
func writeJSON(w http.ResponseWriter, r *http.Request, payload any) {
	if err := httpx.WriteJSON(w, http.StatusOK, payload); err != nil {
		log.Printf("api write failed path=%s request_id=%s err=%v", r.URL.Path, httpx.RequestIDFrom(r), err)
	}
}
