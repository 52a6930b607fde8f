package solve

import (
	"errors"
	"log"
	"net/http"

	"github.com/a-h/templ"
	apperrors "github.com/louisbranch/sympsolve/internal/platform/errors"
	"github.com/louisbranch/sympsolve/internal/services/web/platform/httpx"
	webi18n "github.com/louisbranch/sympsolve/internal/services/web/platform/i18n"
	"github.com/louisbranch/sympsolve/internal/services/web/platform/pagerender"
	"github.com/louisbranch/sympsolve/internal/services/web/platform/visitorcookie"
	"github.com/louisbranch/sympsolve/internal/services/web/platform/weberror"
	"github.com/louisbranch/sympsolve/internal/services/web/routepath"
	webtemplates "github.com/louisbranch/sympsolve/internal/services/web/templates"
	"github.com/louisbranch/sympsolve/internal/submission"
)

type handlers struct {
	service       service
	visitorPolicy visitorcookie.Policy
}

func newHandlers(s service, policy visitorcookie.Policy) handlers {
	return handlers{service: s, visitorPolicy: policy}
}

func (h handlers) handleIndex(w http.ResponseWriter, r *http.Request) {
	view := idleView()
	h.writeSolvePage(w, r, http.StatusOK, func(webi18n.Localizer) webtemplates.SolveView { return view })
}

// handleSolve submits the equation query value and renders the outcome. HTMX
// only swaps 2xx responses, so fragment requests always answer 200 and carry
// the error in the body.
func (h handlers) handleSolve(w http.ResponseWriter, r *http.Request) {
	visitorID, err := visitorcookie.Ensure(w, r, h.visitorPolicy)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	equation := r.URL.Query().Get(routepath.EquationQueryKey)
	snap, err := h.service.submit(r.Context(), visitorID, equation)
	if errors.Is(err, submission.ErrSuperseded) {
		h.writeError(w, r, err)
		return
	}
	if err != nil && snap.State != submission.StateError {
		h.writeError(w, r, err)
		return
	}
	statusCode := http.StatusOK
	if err != nil {
		if apperrors.KindOf(err) == apperrors.KindUnavailable || apperrors.HTTPStatus(err) >= http.StatusInternalServerError {
			log.Printf("solve failed request_id=%s err=%v", httpx.RequestIDFrom(r), err)
		}
		if !httpx.IsHTMXRequest(r) {
			statusCode = apperrors.HTTPStatus(err)
		}
	}
	h.writeSolvePage(w, r, statusCode, func(loc webi18n.Localizer) webtemplates.SolveView {
		return mapSolveView(snap, loc)
	})
}

func (h handlers) handleNotFound(w http.ResponseWriter, r *http.Request) {
	weberror.WriteErrorPage(w, r, http.StatusNotFound)
}

func (h handlers) writeSolvePage(w http.ResponseWriter, r *http.Request, statusCode int, view func(webi18n.Localizer) webtemplates.SolveView) {
	if err := pagerender.WritePage(w, r, pagerender.Page{
		Title:      "solve.title",
		StatusCode: statusCode,
		Fragment: func(loc webi18n.Localizer) templ.Component {
			return webtemplates.SolvePage(view(loc), loc)
		},
		Partial: func(loc webi18n.Localizer) templ.Component {
			return webtemplates.SolveResult(view(loc), loc)
		},
	}); err != nil {
		h.writeError(w, r, err)
	}
}

func (h handlers) writeError(w http.ResponseWriter, r *http.Request, err error) {
	weberror.WriteModuleError(w, r, err)
}
