package solve

import (
	"context"

	apperrors "github.com/louisbranch/sympsolve/internal/platform/errors"
	"github.com/louisbranch/sympsolve/internal/submission"
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

// submit runs equation on the visitor's machine. A newer submission from the
// same visitor cancels this one.
func (s service) submit(ctx context.Context, visitorID string, equation string) (submission.Snapshot, error) {
	if s.visitors == nil {
		return submission.Snapshot{}, errNoVisitors
	}
	return s.visitors.Machine(visitorID).Submit(ctx, equation)
}
