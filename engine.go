package cubegame

import (
	"fmt"
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"go.uber.org/zap"
)

// HistoryEntry is one recorded user move.
type HistoryEntry struct {
	Move     Move
	Notation string
}

// Engine owns a cube, its move queue and move history. Engines are
// independent of each other.
//
// Time advances only through Tick or Flush. Submit never finalizes a move.
// Callbacks run after the engine's lock is released, in finalize order, so
// they may call back into the engine.
type Engine struct {
	mu   sync.Mutex
	cfg  *config
	log  *zap.Logger
	rng  *rand.Rand
	cube *Cube
	exec *executor

	history   []HistoryEntry
	moveCount int

	// Callbacks
	onMoveRecorded []func(notation string, count int)
	onSolved       []func()
	onScrambled    []func()
	onReset        []func()
}

// NewEngine creates an engine with a solved cube of the given size.
func NewEngine(size int, opts ...Option) (*Engine, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	cube, err := NewCube(size)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		cfg:  cfg,
		log:  cfg.logger,
		rng:  cfg.rng,
		cube: cube,
		exec: newExecutor(cube),
	}
	if e.log == nil {
		e.log = zap.NewNop()
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return e, nil
}

// OnMoveRecorded registers a callback for every recorded move. count is the
// move count after the move.
func (e *Engine) OnMoveRecorded(fn func(notation string, count int)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onMoveRecorded = append(e.onMoveRecorded, fn)
}

// OnSolved registers a callback fired when a recorded move leaves the cube
// solved.
func (e *Engine) OnSolved(fn func()) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onSolved = append(e.onSolved, fn)
}

// OnScrambled registers a callback fired when the last scramble move
// finalizes.
func (e *Engine) OnScrambled(fn func()) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onScrambled = append(e.onScrambled, fn)
}

// OnReset registers a callback fired after Reset or Resize.
func (e *Engine) OnReset(fn func()) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onReset = append(e.onReset, fn)
}

// Submit queues a move. It returns false, leaving the queue untouched, if the
// move's axis or layer does not exist for the current size.
func (e *Engine) Submit(m Move, opts ...SubmitOption) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.submitLocked(m, opts...)
}

// SubmitMove is Submit for a raw (axis, layer, direction) triple.
func (e *Engine) SubmitMove(axis Axis, layer float64, direction int, opts ...SubmitOption) bool {
	return e.Submit(Move{Axis: axis, Layer: layer, Direction: direction}, opts...)
}

func (e *Engine) submitLocked(m Move, opts ...SubmitOption) bool {
	s := submission{move: m, duration: e.cfg.rotationSpeed, record: true}
	for _, opt := range opts {
		opt(&s)
	}
	if !e.exec.enqueue(s) {
		e.log.Debug("move rejected",
			zap.Stringer("move", m),
			zap.Int("size", e.cube.size))
		return false
	}
	return true
}

// Tick advances the animation clock by dt, finalizing every move that
// completes within it.
func (e *Engine) Tick(dt time.Duration) {
	e.mu.Lock()
	var calls []func()
	e.exec.advance(dt, func(s submission) {
		calls = append(calls, e.finalized(s)...)
	})
	e.mu.Unlock()

	for _, fn := range calls {
		fn()
	}
}

// Flush completes every queued move immediately, including moves submitted
// by callbacks while flushing.
func (e *Engine) Flush() {
	for {
		e.mu.Lock()
		if !e.exec.busy() {
			e.mu.Unlock()
			return
		}
		e.mu.Unlock()
		e.Tick(time.Duration(math.MaxInt64))
	}
}

// finalized updates history and solved state for a completed move and
// returns the callbacks to run once the lock is released.
func (e *Engine) finalized(s submission) []func() {
	var calls []func()

	if s.record {
		e.moveCount++
		notation := s.move.Notation(e.cube.size)
		if e.cfg.moveHistory {
			e.history = append(e.history, HistoryEntry{Move: s.move, Notation: notation})
		}
		e.log.Debug("move recorded",
			zap.String("notation", notation),
			zap.Int("count", e.moveCount))

		count := e.moveCount
		for _, fn := range e.onMoveRecorded {
			calls = append(calls, func() { fn(notation, count) })
		}

		if e.cube.IsSolved() {
			e.log.Info("cube solved", zap.Int("moves", count))
			calls = append(calls, e.onSolved...)
		}
	}

	if s.onComplete != nil {
		calls = append(calls, s.onComplete)
	}
	if s.scrambleEnd {
		calls = append(calls, e.onScrambled...)
	}
	return calls
}

// IsAnimating reports whether a move is in flight.
func (e *Engine) IsAnimating() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.exec.active != nil
}

// Pending returns the number of queued moves that have not started.
func (e *Engine) Pending() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.exec.queue)
}

// IsIdle reports whether nothing is animating and the queue is empty.
func (e *Engine) IsIdle() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return !e.exec.busy()
}

// ClearQueue drops queued moves that have not started and returns how many
// were dropped.
func (e *Engine) ClearQueue() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.exec.clearQueue()
}

// Animation returns the in-flight move for renderers.
func (e *Engine) Animation() (Animation, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.exec.animation()
}

// Reset restores the solved state and clears history.
// Returns ErrBusy while a move is animating or queued.
func (e *Engine) Reset() error {
	e.mu.Lock()
	if e.exec.busy() {
		e.mu.Unlock()
		return ErrBusy
	}
	e.cube.Reset()
	e.clearHistoryLocked()
	calls := append([]func(){}, e.onReset...)
	e.mu.Unlock()

	e.log.Info("cube reset", zap.Int("size", e.Size()))
	for _, fn := range calls {
		fn()
	}
	return nil
}

// Resize rebuilds a solved cube of a new size and clears history.
func (e *Engine) Resize(size int) error {
	if size < MinSize || size > MaxSize {
		return fmt.Errorf("%w: got %d", ErrInvalidSize, size)
	}

	e.mu.Lock()
	if e.exec.busy() {
		e.mu.Unlock()
		return ErrBusy
	}
	cube, err := NewCube(size)
	if err != nil {
		e.mu.Unlock()
		return err
	}
	e.cube = cube
	e.exec = newExecutor(cube)
	e.clearHistoryLocked()
	calls := append([]func(){}, e.onReset...)
	e.mu.Unlock()

	e.log.Info("cube resized", zap.Int("size", size))
	for _, fn := range calls {
		fn()
	}
	return nil
}

func (e *Engine) clearHistoryLocked() {
	e.history = nil
	e.moveCount = 0
}

// Scramble queues a random scramble and returns it. Scramble moves are not
// recorded; history and the move count are cleared first. OnScrambled fires
// when the last scramble move finalizes.
func (e *Engine) Scramble() ([]Move, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.exec.busy() {
		return nil, ErrBusy
	}

	moves := GenerateScramble(e.cube.size, e.rng)
	e.clearHistoryLocked()
	for i, m := range moves {
		e.exec.enqueue(submission{
			move:        m,
			duration:    e.cfg.scrambleSpeed,
			scrambleEnd: i == len(moves)-1,
		})
	}

	e.log.Info("scramble queued",
		zap.Int("size", e.cube.size),
		zap.String("moves", FormatMoves(moves, e.cube.size)))
	return moves, nil
}

// Undo pops the last recorded move, decrements the move count and queues its
// inverse unrecorded. It returns the queued inverse.
func (e *Engine) Undo() (Move, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.exec.busy() {
		return Move{}, ErrBusy
	}
	if len(e.history) == 0 {
		return Move{}, ErrNoHistory
	}

	last := e.history[len(e.history)-1]
	e.history = e.history[:len(e.history)-1]
	e.moveCount = max(0, e.moveCount-1)

	inv := last.Move.Inverse()
	e.exec.enqueue(submission{move: inv, duration: e.cfg.rotationSpeed})
	e.log.Debug("undo queued",
		zap.String("undone", last.Notation),
		zap.String("inverse", inv.Notation(e.cube.size)))
	return inv, nil
}

// History returns a copy of the recorded moves.
func (e *Engine) History() []HistoryEntry {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]HistoryEntry, len(e.history))
	copy(out, e.history)
	return out
}

// MoveCount returns the number of recorded moves since the last scramble or
// reset, less undone moves.
func (e *Engine) MoveCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.moveCount
}

// IsSolved reports whether the cube is solved.
func (e *Engine) IsSolved() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cube.IsSolved()
}

// Progress returns solve progress for the current state.
func (e *Engine) Progress() Progress {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cube.Progress()
}

// Size returns N.
func (e *Engine) Size() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cube.size
}

// Snapshot returns a deep copy of the current cube state.
func (e *Engine) Snapshot() *Cube {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cube.Clone()
}

// Resolver returns a gesture resolver configured for the current size.
func (e *Engine) Resolver() Resolver {
	e.mu.Lock()
	defer e.mu.Unlock()
	return Resolver{
		Size:     e.cube.size,
		Mode:     e.cfg.resolverMode,
		ViewAxis: e.cfg.viewAxis,
		MinDrag:  e.cfg.minDrag,
	}
}

// ResolveGesture maps a drag on a picked sticker to a move without
// submitting it.
func (e *Engine) ResolveGesture(hit Hit, drag Vec2, project ProjectFunc) (Move, bool) {
	r := e.Resolver()
	return r.Resolve(hit, drag, project)
}

// Drag resolves a gesture and submits the resulting move.
func (e *Engine) Drag(hit Hit, drag Vec2, project ProjectFunc) (Move, bool) {
	m, ok := e.ResolveGesture(hit, drag, project)
	if !ok {
		return Move{}, false
	}
	if !e.Submit(m) {
		return Move{}, false
	}
	return m, true
}

// SetResolverMode switches the gesture mapping at runtime.
func (e *Engine) SetResolverMode(mode ResolverMode) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cfg.resolverMode = mode
}
