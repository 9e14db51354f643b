// Package orchestrator owns the per-request lifecycle shared by every
// inference flow: Idle → Pending → Succeeded/Failed, with last-submit-wins
// semantics for single-slot flows.
package orchestrator

import (
	"context"
	"errors"
	"sync"
	"time"
)

type Phase string

const (
	PhaseIdle      Phase = "idle"
	PhasePending   Phase = "pending"
	PhaseSucceeded Phase = "succeeded"
	PhaseFailed    Phase = "failed"
)

// ErrSuperseded is returned to a submitter whose call finished after a newer
// Submit (or a Reset) took over the slot. The stale outcome is discarded,
// never applied to state.
var ErrSuperseded = errors.New("submission superseded by a newer request")

// Task produces the result for one submission.
type Task[T any] func(ctx context.Context) (T, error)

// Slot is a single-slot request lifecycle. One instance per logical flow
// (one diagnosis slot per user, one price-feed slot per process, and so on).
//
// Submissions do not queue: whichever Submit was issued last is the only one
// whose outcome may transition the slot. Completions from superseded
// submissions are discarded.
type Slot[T any] struct {
	mu        sync.Mutex
	gen       uint64
	phase     Phase
	result    *T
	err       error
	updatedAt time.Time
}

// Snapshot is an observable view of the slot. Result is the last committed
// successful result; it is retained through later failures so callers can
// keep displaying it until an explicit reset.
type Snapshot[T any] struct {
	Phase     Phase
	Result    *T
	Err       error
	UpdatedAt time.Time
}

func NewSlot[T any]() *Slot[T] {
	return &Slot[T]{phase: PhaseIdle}
}

// Submit runs task and, if this submission is still the newest when the task
// finishes, commits its outcome. The optional effect runs inside the commit
// for successful outcomes only — flow side effects (conditional persistence,
// snapshot replacement) belong there, so a superseded call never triggers
// them. effect may mutate the committed value, e.g. to record a
// persistence warning.
//
// The committed result is returned to the submitter. A superseded submitter
// gets ErrSuperseded; a failed task's error passes through unchanged.
func (s *Slot[T]) Submit(ctx context.Context, task Task[T], effect func(*T)) (*T, error) {
	s.mu.Lock()
	s.gen++
	gen := s.gen
	s.phase = PhasePending
	s.err = nil
	s.updatedAt = time.Now()
	s.mu.Unlock()

	v, err := task(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.gen {
		return nil, ErrSuperseded
	}

	s.updatedAt = time.Now()
	if err != nil {
		s.phase = PhaseFailed
		s.err = err
		return nil, err
	}

	s.phase = PhaseSucceeded
	s.result = &v
	if effect != nil {
		effect(s.result)
	}
	return s.result, nil
}

// Snapshot returns the current state. The Result pointer is shared: callers
// treat it as read-only.
func (s *Slot[T]) Snapshot() Snapshot[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot[T]{
		Phase:     s.phase,
		Result:    s.result,
		Err:       s.err,
		UpdatedAt: s.updatedAt,
	}
}

// Reset discards all state and returns the slot to Idle. In-flight
// submissions from before the reset are invalidated: their completions will
// be discarded as superseded.
func (s *Slot[T]) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	s.phase = PhaseIdle
	s.result = nil
	s.err = nil
	s.updatedAt = time.Now()
}
