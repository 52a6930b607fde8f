package api

import (
	"context"

	apperrors "github.com/louisbranch/sympsolve/internal/platform/errors"
	"github.com/louisbranch/sympsolve/internal/platform/otel"
	"github.com/louisbranch/sympsolve/internal/submission"
	"github.com/louisbranch/sympsolve/internal/typeset"
	"go.opentelemetry.io/otel/attribute"
)

// Visitors hands out the submission machine owned by one visitor.
type Visitors interface {
	Machine(visitorID string) *submission.Machine
}

var errNoVisitors = apperrors.EK(apperrors.KindUnavailable, "errors.unavailable", "submission registry is not configured")

type service struct {
	visitors Visitors
}

func newService(visitors Visitors) service {
	return service{visitors: visitors}
}

func (s service) solve(ctx context.Context, visitorID string, equation string) (submission.Snapshot, error) {
	if s.visitors == nil {
		return submission.Snapshot{}, errNoVisitors
	}
	return s.visitors.Machine(visitorID).Submit(ctx, equation)
}

func (s service) render(ctx context.Context, expr string) typeset.Outcome {
	_, span := otel.Tracer("web.api").Start(ctx, "typeset.Render")
	defer span.End()
	out := typeset.Render(expr)
	span.SetAttributes(attribute.Bool("typeset.ok", out.OK))
	return out
}
