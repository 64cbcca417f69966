package cubegame

import (
	"math"
	"time"
)

// submission is a queued move plus its submission options.
type submission struct {
	move        Move
	duration    time.Duration
	record      bool
	onComplete  func()
	scrambleEnd bool
}

// SubmitOption configures a single submitted move.
type SubmitOption func(*submission)

// Unrecorded keeps the move out of history and the move count.
func Unrecorded() SubmitOption {
	return func(s *submission) {
		s.record = false
	}
}

// WithDuration overrides the animation duration of the move.
func WithDuration(d time.Duration) SubmitOption {
	return func(s *submission) {
		if d >= 0 {
			s.duration = d
		}
	}
}

// WithOnComplete registers fn to run after the move finalizes.
func WithOnComplete(fn func()) SubmitOption {
	return func(s *submission) {
		s.onComplete = fn
	}
}

// Animation describes the move currently being animated.
type Animation struct {
	Move     Move
	PieceIDs []int   // Pieces turning with the layer
	Progress float64 // Eased progress in [0, 1]
	Angle    float64 // Current rotation about the positive axis, radians
}

type activeMove struct {
	submission
	pieces  []*Piece
	angle   float64
	elapsed time.Duration
}

// executor runs queued moves one at a time: Idle, then Animating, then Idle
// again once the queue drains. Cube state changes only in finalize.
type executor struct {
	cube   *Cube
	queue  []submission
	active *activeMove
}

func newExecutor(c *Cube) *executor {
	return &executor{cube: c}
}

// enqueue normalizes s and appends it. Moves naming an axis or layer that
// does not exist for the current size are rejected.
func (x *executor) enqueue(s submission) bool {
	if !s.move.Axis.Valid() {
		return false
	}
	layer, ok := x.cube.ValidLayer(s.move.Layer)
	if !ok {
		return false
	}
	s.move.Layer = layer
	s.move.Direction = clampDirection(s.move.Direction)

	x.queue = append(x.queue, s)
	if x.active == nil {
		x.startNext()
	}
	return true
}

func (x *executor) startNext() {
	if len(x.queue) == 0 {
		x.active = nil
		return
	}
	s := x.queue[0]
	x.queue[0] = submission{}
	x.queue = x.queue[1:]

	x.active = &activeMove{
		submission: s,
		pieces:     x.cube.PiecesInLayer(s.move.Axis, s.move.Layer),
		angle:      s.move.Angle(),
	}
}

// advance moves the clock forward by dt. Every move that completes is
// finalized and handed to done before the next one starts; leftover time
// carries into the next move.
func (x *executor) advance(dt time.Duration, done func(submission)) {
	if dt < 0 {
		dt = 0
	}
	if x.active == nil {
		x.startNext()
	}
	for x.active != nil {
		need := x.active.duration - x.active.elapsed
		if dt < need {
			x.active.elapsed += dt
			return
		}
		dt -= need
		finished := x.finalize()
		if done != nil {
			done(finished)
		}
		x.startNext()
	}
}

// finalize applies the exact rotation once to each selected piece.
func (x *executor) finalize() submission {
	a := x.active
	x.cube.rotateLayer(a.pieces, a.move.Axis, a.angle)
	x.active = nil
	return a.submission
}

// clearQueue drops moves that have not started. The active move, if any,
// still completes.
func (x *executor) clearQueue() int {
	n := len(x.queue)
	x.queue = nil
	return n
}

func (x *executor) busy() bool {
	return x.active != nil || len(x.queue) > 0
}

func (x *executor) animation() (Animation, bool) {
	a := x.active
	if a == nil {
		return Animation{}, false
	}
	t := 1.0
	if a.duration > 0 {
		t = float64(a.elapsed) / float64(a.duration)
	}
	eased := easeOutCubic(t)
	ids := make([]int, len(a.pieces))
	for i, p := range a.pieces {
		ids[i] = p.ID
	}
	return Animation{
		Move:     a.move,
		PieceIDs: ids,
		Progress: eased,
		Angle:    a.angle * eased,
	}, true
}

func easeOutCubic(t float64) float64 {
	t = math.Max(0, math.Min(1, t))
	return 1 - math.Pow(1-t, 3)
}
