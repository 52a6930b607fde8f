package modules

import (
	"github.com/louisbranch/sympsolve/internal/services/web/modules/api"
	"github.com/louisbranch/sympsolve/internal/services/web/modules/solve"
	"github.com/louisbranch/sympsolve/internal/submission"
)

type visitorMachines interface {
	Machine(visitorID string) *submission.Machine
}

// DefaultModules returns the stable web modules in mount order.
func DefaultModules(deps Dependencies) []Module {
	// A nil registry stays a nil interface so modules report unavailable.
	var visitors visitorMachines
	if deps.Visitors != nil {
		visitors = deps.Visitors
	}
	return []Module{
		solve.New(visitors, deps.VisitorPolicy),
		api.New(visitors, deps.VisitorPolicy),
	}
}
