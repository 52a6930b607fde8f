package solve

import (
	webi18n "github.com/louisbranch/sympsolve/internal/services/web/platform/i18n"
	"github.com/louisbranch/sympsolve/internal/services/web/platform/weberror"
	webtemplates "github.com/louisbranch/sympsolve/internal/services/web/templates"
	"github.com/louisbranch/sympsolve/internal/submission"
)

func idleView() webtemplates.SolveView {
	return webtemplates.SolveView{State: submission.StateIdle.String()}
}

func mapSolveView(snap submission.Snapshot, loc webi18n.Localizer) webtemplates.SolveView {
	view := webtemplates.SolveView{
		Equation:  snap.Equation,
		State:     snap.State.String(),
		FigureURL: snap.FigureURL,
	}
	if snap.State == submission.StateError {
		view.Error = weberror.PublicMessage(loc, snap.Err)
		return view
	}
	view.Lines = make([]webtemplates.LineView, 0, len(snap.Outcomes))
	for _, outcome := range snap.Outcomes {
		view.Lines = append(view.Lines, webtemplates.LineView{OK: outcome.OK, Markup: outcome.Markup})
	}
	return view
}
