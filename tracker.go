package cubegame

import (
	"sync"
	"time"
)

// Result summarizes a finished solve.
type Result struct {
	Size     int
	Moves    int
	Elapsed  time.Duration
	Notation []string
}

// Tracker times solves on an Engine. The clock starts on the first recorded
// move after a scramble or reset and stops when the cube is solved.
type Tracker struct {
	mu       sync.Mutex
	engine   *Engine
	now      func() time.Time
	started  time.Time
	stopped  time.Duration
	running  bool
	finished bool
	moves    int
	notation []string

	highestPhase  Phase // Monotonic - never goes backwards
	phaseCallback func(Phase)
	solveCallback func(Result)
}

// NewTracker attaches a tracker to an engine.
func NewTracker(e *Engine) *Tracker {
	t := &Tracker{engine: e, now: time.Now}

	e.OnMoveRecorded(t.moveRecorded)
	e.OnSolved(t.solved)
	e.OnScrambled(t.Reset)
	e.OnReset(t.Reset)
	return t
}

// SetClock replaces the time source.
func (t *Tracker) SetClock(now func() time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.now = now
}

// SetSolveCallback sets a callback that fires when a solve finishes.
func (t *Tracker) SetSolveCallback(cb func(Result)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.solveCallback = cb
}

// SetPhaseCallback sets a callback that fires when a new highest phase is
// reached during a solve.
func (t *Tracker) SetPhaseCallback(cb func(Phase)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.phaseCallback = cb
}

// Reset clears the timer and move log.
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.running = false
	t.finished = false
	t.stopped = 0
	t.moves = 0
	t.notation = nil
	t.highestPhase = PhaseScrambled
}

func (t *Tracker) moveRecorded(notation string, count int) {
	t.mu.Lock()
	if t.finished {
		t.mu.Unlock()
		return
	}
	if !t.running {
		t.running = true
		t.started = t.now()
	}
	t.moves = count
	t.notation = append(t.notation, notation)

	// Only report a NEW high; phases never go backwards during a solve.
	phase := t.engine.Progress().Phase
	var cb func(Phase)
	if phase > t.highestPhase {
		t.highestPhase = phase
		cb = t.phaseCallback
	}
	t.mu.Unlock()

	if cb != nil {
		cb(phase)
	}
}

func (t *Tracker) solved() {
	t.mu.Lock()
	if !t.running || t.finished {
		t.mu.Unlock()
		return
	}
	t.running = false
	t.finished = true
	t.stopped = t.now().Sub(t.started)

	result := Result{
		Size:     t.engine.Size(),
		Moves:    t.moves,
		Elapsed:  t.stopped,
		Notation: append([]string(nil), t.notation...),
	}
	cb := t.solveCallback
	t.mu.Unlock()

	if cb != nil {
		cb(result)
	}
}

// Elapsed returns the time spent on the current solve.
func (t *Tracker) Elapsed() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.running {
		return t.now().Sub(t.started)
	}
	return t.stopped
}

// Running reports whether the timer is counting.
func (t *Tracker) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.running
}

// Finished reports whether the current solve has completed.
func (t *Tracker) Finished() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.finished
}

// HighestPhase returns the highest phase reached during the current solve.
func (t *Tracker) HighestPhase() Phase {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.highestPhase
}

// Moves returns the move count of the current solve.
func (t *Tracker) Moves() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.moves
}
