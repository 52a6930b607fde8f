package submission

import (
	"context"
	"log"
	"sync"
	"time"
)

// Registry keeps one Machine per visitor.
type Registry struct {
	solver Solver
	now    func() time.Time

	mu       sync.Mutex
	machines map[string]*Machine
}

// NewRegistry builds an empty Registry whose machines share solver.
func NewRegistry(solver Solver) *Registry {
	return &Registry{
		solver:   solver,
		now:      time.Now,
		machines: map[string]*Machine{},
	}
}

// Machine returns the visitor's Machine, creating it on first use.
func (r *Registry) Machine(visitorID string) *Machine {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.machines[visitorID]
	if !ok {
		m = newMachine(r.solver, r.now)
		r.machines[visitorID] = m
	}
	return m
}

// Lookup returns the visitor's Machine if one exists.
func (r *Registry) Lookup(visitorID string) (*Machine, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.machines[visitorID]
	return m, ok
}

// Len returns the number of tracked visitors.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.machines)
}

// Sweep drops machines idle for longer than idleTTL and returns how many were
// removed. Machines with a submission in flight are kept.
func (r *Registry) Sweep(idleTTL time.Duration) int {
	cutoff := r.now().Add(-idleTTL)
	r.mu.Lock()
	defer r.mu.Unlock()
	removed := 0
	for id, m := range r.machines {
		if m.idleSince(cutoff) {
			delete(r.machines, id)
			removed++
		}
	}
	return removed
}

// RunSweeper calls Sweep every interval until ctx is done.
func (r *Registry) RunSweeper(ctx context.Context, interval, idleTTL time.Duration) {
	if interval <= 0 || idleTTL <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.Sweep(idleTTL); n > 0 {
				log.Printf("swept idle visitors count=%d remaining=%d", n, r.Len())
			}
		}
	}
}
