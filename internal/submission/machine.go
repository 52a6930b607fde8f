// Package submission tracks the lifecycle of equation submissions.
//
// A Machine moves through Idle, Loading, Success and Error. Submitting while a
// request is still in flight cancels that request and replaces it; the
// replaced call returns ErrSuperseded and never touches the visible state.
package submission

import (
	"context"
	"strings"
	"sync"
	"time"

	apperrors "github.com/louisbranch/sympsolve/internal/platform/errors"
	"github.com/louisbranch/sympsolve/internal/platform/otel"
	"github.com/louisbranch/sympsolve/internal/solution"
	"github.com/louisbranch/sympsolve/internal/typeset"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// State is a submission lifecycle state.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateSuccess
	StateError
)

// String returns the lowercase state name.
func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateSuccess:
		return "success"
	case StateError:
		return "error"
	default:
		return "idle"
	}
}

// EmptyEquationMessage is shown when a blank equation is submitted.
const EmptyEquationMessage = "Please enter an equation."

// ErrEmptyEquation rejects blank submissions before any network call.
var ErrEmptyEquation = apperrors.EK(apperrors.KindInvalidInput, "errors.empty_equation", EmptyEquationMessage)

// ErrSuperseded is returned to a submission replaced by a newer one.
var ErrSuperseded = apperrors.EK(apperrors.KindConflict, "errors.superseded", "submission superseded")

// Solver is the transport collaborator that solves one equation.
type Solver interface {
	Solve(ctx context.Context, equation string) (solution.APIResult, error)
}

// Snapshot is an immutable view of a Machine.
type Snapshot struct {
	State       State
	Seq         uint64
	Equation    string
	Expressions []string
	Outcomes    []typeset.Outcome
	FigureURL   string
	Err         error
}

// Machine runs submissions for one visitor.
type Machine struct {
	solver Solver
	now    func() time.Time

	mu       sync.Mutex
	snap     Snapshot
	seq      uint64
	cancel   context.CancelFunc
	lastUsed time.Time
}

// NewMachine builds an idle Machine.
func NewMachine(solver Solver) *Machine {
	return newMachine(solver, time.Now)
}

func newMachine(solver Solver, now func() time.Time) *Machine {
	return &Machine{
		solver:   solver,
		now:      now,
		snap:     idleSnapshot(),
		lastUsed: now(),
	}
}

func idleSnapshot() Snapshot {
	return Snapshot{State: StateIdle, Expressions: []string{}, Outcomes: []typeset.Outcome{}}
}

// Snapshot returns the current state.
func (m *Machine) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snap
}

// Reset cancels any in-flight submission and returns to Idle.
func (m *Machine) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cancelLocked()
	m.seq++
	m.snap = idleSnapshot()
	m.snap.Seq = m.seq
}

// Submit solves equation and returns the resulting state.
//
// A blank equation moves straight to Error with ErrEmptyEquation. Otherwise
// the Machine enters Loading, calls the Solver, then normalizes and renders
// the result. Solver failures move to Error and are also returned.
func (m *Machine) Submit(ctx context.Context, equation string) (Snapshot, error) {
	trimmed := strings.TrimSpace(equation)

	m.mu.Lock()
	m.lastUsed = m.now()
	m.cancelLocked()
	m.seq++
	seq := m.seq
	if trimmed == "" {
		m.snap = Snapshot{
			State:       StateError,
			Seq:         seq,
			Equation:    equation,
			Expressions: []string{},
			Outcomes:    []typeset.Outcome{},
			Err:         ErrEmptyEquation,
		}
		snap := m.snap
		m.mu.Unlock()
		return snap, ErrEmptyEquation
	}
	runCtx, cancel := context.WithCancel(ctx)
	m.cancel = cancel
	m.snap = Snapshot{
		State:       StateLoading,
		Seq:         seq,
		Equation:    trimmed,
		Expressions: []string{},
		Outcomes:    []typeset.Outcome{},
	}
	m.mu.Unlock()
	defer cancel()

	next := m.run(runCtx, seq, trimmed)

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.seq != seq {
		return Snapshot{}, ErrSuperseded
	}
	m.cancel = nil
	m.snap = next
	return next, next.Err
}

func (m *Machine) run(ctx context.Context, seq uint64, equation string) Snapshot {
	ctx, span := otel.Tracer("submission").Start(ctx, "submission.Submit")
	defer span.End()
	span.SetAttributes(attribute.Int64("submission.seq", int64(seq)))

	res, err := m.solver.Solve(ctx, equation)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "solve failed")
		return Snapshot{
			State:       StateError,
			Seq:         seq,
			Equation:    equation,
			Expressions: []string{},
			Outcomes:    []typeset.Outcome{},
			Err:         err,
		}
	}

	_, normalizeSpan := otel.Tracer("submission").Start(ctx, "solution.Normalize")
	expressions := solution.Normalize(res.Result)
	normalizeSpan.SetAttributes(
		attribute.String("solution.kind", res.Result.Kind.String()),
		attribute.Int("solution.expressions", len(expressions)),
	)
	normalizeSpan.End()

	_, renderSpan := otel.Tracer("submission").Start(ctx, "typeset.RenderAll")
	outcomes := typeset.RenderAll(expressions)
	renderSpan.SetAttributes(attribute.Int("typeset.failures", countFailures(outcomes)))
	renderSpan.End()

	return Snapshot{
		State:       StateSuccess,
		Seq:         seq,
		Equation:    equation,
		Expressions: expressions,
		Outcomes:    outcomes,
		FigureURL:   res.FigureURL,
	}
}

func (m *Machine) cancelLocked() {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
}

func (m *Machine) idleSince(cutoff time.Time) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cancel == nil && m.lastUsed.Before(cutoff)
}

func countFailures(outcomes []typeset.Outcome) int {
	n := 0
	for _, o := range outcomes {
		if !o.OK {
			n++
		}
	}
	return n
}
