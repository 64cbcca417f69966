package cubegame

import (
	"errors"
	"math"
	"math/rand/v2"
	"testing"
	"time"
)

func newTestEngine(t *testing.T, size int, opts ...Option) *Engine {
	t.Helper()
	opts = append([]Option{WithRand(rand.New(rand.NewPCG(42, 42)))}, opts...)
	e, err := NewEngine(size, opts...)
	if err != nil {
		t.Fatalf("NewEngine(%d): %v", size, err)
	}
	return e
}

func TestSubmitDoesNotFinalize(t *testing.T) {
	e := newTestEngine(t, 3)
	if !e.Submit(R) {
		t.Fatal("Submit(R) rejected")
	}
	if !e.IsSolved() {
		t.Error("move must not finalize inside Submit")
	}
	if !e.IsAnimating() {
		t.Error("engine should be animating after Submit")
	}
	if e.MoveCount() != 0 {
		t.Errorf("MoveCount = %d before Tick, want 0", e.MoveCount())
	}

	e.Tick(DefaultRotationSpeed)
	if e.IsSolved() {
		t.Error("cube should be unsolved after R completes")
	}
	if !e.IsIdle() {
		t.Error("engine should be idle after the move completes")
	}
	if e.MoveCount() != 1 {
		t.Errorf("MoveCount = %d, want 1", e.MoveCount())
	}
}

func TestTickAnimatesWithEasing(t *testing.T) {
	e := newTestEngine(t, 3)
	e.Submit(R, WithDuration(100*time.Millisecond))
	e.Tick(50 * time.Millisecond)

	anim, ok := e.Animation()
	if !ok {
		t.Fatal("expected an active animation")
	}
	if len(anim.PieceIDs) != 9 {
		t.Errorf("R layer has %d pieces, want 9", len(anim.PieceIDs))
	}
	if math.Abs(anim.Progress-0.875) > 1e-9 {
		t.Errorf("Progress = %v, want 0.875", anim.Progress)
	}
	if want := -math.Pi / 2 * 0.875; math.Abs(anim.Angle-want) > 1e-9 {
		t.Errorf("Angle = %v, want %v", anim.Angle, want)
	}
	if !e.IsSolved() {
		t.Error("cube state must not change mid-animation")
	}

	e.Tick(50 * time.Millisecond)
	if _, ok := e.Animation(); ok {
		t.Error("animation should be finished")
	}
}

func TestZeroDurationCompletesOnTick(t *testing.T) {
	e := newTestEngine(t, 3, WithRotationSpeed(0))
	e.Submit(R)
	e.Submit(RPrime)
	if e.MoveCount() != 0 {
		t.Fatal("moves must not complete inside Submit")
	}
	e.Tick(0)
	if e.MoveCount() != 2 {
		t.Errorf("MoveCount = %d after Tick(0), want 2", e.MoveCount())
	}
	if !e.IsSolved() {
		t.Error("R R' should be solved")
	}
}

func TestMovesCompleteInFIFOOrder(t *testing.T) {
	e := newTestEngine(t, 3)
	var got []string
	e.OnMoveRecorded(func(notation string, count int) {
		got = append(got, notation)
		if count != len(got) {
			t.Errorf("count = %d, want %d", count, len(got))
		}
	})

	for _, m := range SexyMove {
		e.Submit(m)
	}
	if e.Pending() != 3 {
		t.Errorf("Pending = %d, want 3", e.Pending())
	}
	e.Tick(DefaultRotationSpeed * 2)
	if len(got) != 2 {
		t.Errorf("two ticks worth of time should finish 2 moves, got %d", len(got))
	}
	e.Flush()

	want := []string{"R", "U", "R'", "U'"}
	if len(got) != len(want) {
		t.Fatalf("recorded %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("move %d = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestSubmitRejectsInvalidMove(t *testing.T) {
	e := newTestEngine(t, 4)
	if e.SubmitMove(AxisX, 0, CW) {
		t.Error("layer 0 must be rejected on an even cube")
	}
	if e.SubmitMove(AxisY, 3, CW) {
		t.Error("out of range layer must be rejected")
	}
	if !e.IsIdle() {
		t.Error("rejected moves must not enter the queue")
	}
	if !e.SubmitMove(AxisX, 0.5, CW) {
		t.Error("inner layer 0.5 should be accepted on a 4x4")
	}
}

func TestSexyMoveScenario(t *testing.T) {
	e := newTestEngine(t, 3)
	solvedCount := 0
	e.OnSolved(func() { solvedCount++ })

	for _, m := range SexyMove {
		e.Submit(m)
	}
	e.Flush()
	if e.IsSolved() {
		t.Fatal("R U R' U' should not be solved")
	}

	for _, m := range InverseSexyMove {
		e.Submit(m)
	}
	e.Flush()
	if !e.IsSolved() {
		t.Error("U R U' R' should restore solved state")
		t.Log(e.Snapshot().String())
	}
	if solvedCount != 1 {
		t.Errorf("OnSolved fired %d times, want 1", solvedCount)
	}
	if e.MoveCount() != 8 {
		t.Errorf("MoveCount = %d, want 8", e.MoveCount())
	}
}

func TestResetAndResizeRequireIdle(t *testing.T) {
	e := newTestEngine(t, 3)
	e.Submit(R)

	if err := e.Reset(); !errors.Is(err, ErrBusy) {
		t.Errorf("Reset while animating = %v, want ErrBusy", err)
	}
	if err := e.Resize(4); !errors.Is(err, ErrBusy) {
		t.Errorf("Resize while animating = %v, want ErrBusy", err)
	}
	if err := e.Resize(9); !errors.Is(err, ErrInvalidSize) {
		t.Errorf("Resize(9) = %v, want ErrInvalidSize", err)
	}

	e.Flush()
	resets := 0
	e.OnReset(func() { resets++ })

	if err := e.Reset(); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if !e.IsSolved() || e.MoveCount() != 0 || len(e.History()) != 0 {
		t.Error("Reset should restore solved state and clear history")
	}

	if err := e.Resize(5); err != nil {
		t.Fatalf("Resize: %v", err)
	}
	if e.Size() != 5 || e.Snapshot().Len() != 124 {
		t.Errorf("after Resize(5): size %d, %d pieces", e.Size(), e.Snapshot().Len())
	}
	if resets != 2 {
		t.Errorf("OnReset fired %d times, want 2", resets)
	}
}

func TestScrambleIsUnrecorded(t *testing.T) {
	e := newTestEngine(t, 3, WithRotationSpeed(0))
	e.Submit(R)
	e.Flush()

	scrambled := 0
	recorded := 0
	e.OnScrambled(func() { scrambled++ })
	e.OnMoveRecorded(func(string, int) { recorded++ })

	moves, err := e.Scramble()
	if err != nil {
		t.Fatalf("Scramble: %v", err)
	}
	if len(moves) != ScrambleLength(3) {
		t.Errorf("scramble has %d moves, want %d", len(moves), ScrambleLength(3))
	}
	if _, err := e.Scramble(); !errors.Is(err, ErrBusy) {
		t.Errorf("second Scramble while busy = %v, want ErrBusy", err)
	}

	e.Tick(DefaultScrambleSpeed)
	if scrambled != 0 {
		t.Error("OnScrambled fired before the last scramble move")
	}
	e.Flush()

	if scrambled != 1 {
		t.Errorf("OnScrambled fired %d times, want 1", scrambled)
	}
	if recorded != 0 || e.MoveCount() != 0 || len(e.History()) != 0 {
		t.Error("scramble moves must not be recorded")
	}
	if e.IsSolved() {
		t.Error("cube should be scrambled")
	}
}

func TestUndo(t *testing.T) {
	e := newTestEngine(t, 3)
	if _, err := e.Undo(); !errors.Is(err, ErrNoHistory) {
		t.Errorf("Undo with empty history = %v, want ErrNoHistory", err)
	}

	solved := 0
	e.OnSolved(func() { solved++ })

	e.Submit(R)
	if _, err := e.Undo(); !errors.Is(err, ErrBusy) {
		t.Errorf("Undo while animating = %v, want ErrBusy", err)
	}
	e.Flush()

	inv, err := e.Undo()
	if err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if inv != RPrime {
		t.Errorf("Undo queued %v, want R'", inv)
	}
	if e.MoveCount() != 0 {
		t.Errorf("MoveCount after Undo = %d, want 0", e.MoveCount())
	}
	e.Flush()

	if !e.IsSolved() {
		t.Error("Undo should restore the solved state")
	}
	if solved != 0 {
		t.Error("undo moves are unrecorded and must not fire OnSolved")
	}
}

func TestClearQueueKeepsActiveMove(t *testing.T) {
	e := newTestEngine(t, 3)
	e.Submit(R)
	e.Submit(U)
	e.Submit(F)
	e.Tick(DefaultRotationSpeed / 2)

	if n := e.ClearQueue(); n != 2 {
		t.Errorf("ClearQueue dropped %d, want 2", n)
	}
	if !e.IsAnimating() {
		t.Error("active move must survive ClearQueue")
	}
	e.Flush()
	if e.MoveCount() != 1 {
		t.Errorf("MoveCount = %d, want 1", e.MoveCount())
	}
}

func TestEnginesAreIndependent(t *testing.T) {
	a := newTestEngine(t, 3, WithRotationSpeed(0))
	b := newTestEngine(t, 3, WithRotationSpeed(0))
	a.Submit(R)
	a.Flush()
	if !b.IsSolved() || b.MoveCount() != 0 {
		t.Error("moves on one engine must not affect another")
	}
}

func TestCallbacksMayReenterEngine(t *testing.T) {
	e := newTestEngine(t, 3, WithRotationSpeed(0))
	var followUp bool
	e.OnMoveRecorded(func(notation string, count int) {
		if notation == "R" {
			followUp = e.Submit(RPrime, Unrecorded())
		}
	})
	e.Submit(R)
	e.Flush()

	if !followUp {
		t.Fatal("submitting from a callback failed")
	}
	if !e.IsSolved() {
		t.Error("follow-up move should have been flushed")
	}
}

func TestMoveHistoryDisabled(t *testing.T) {
	e := newTestEngine(t, 3, WithMoveHistory(false), WithRotationSpeed(0))
	e.Submit(R)
	e.Flush()
	if e.MoveCount() != 1 {
		t.Errorf("MoveCount = %d, want 1", e.MoveCount())
	}
	if len(e.History()) != 0 {
		t.Error("history should be empty when disabled")
	}
	if _, err := e.Undo(); !errors.Is(err, ErrNoHistory) {
		t.Errorf("Undo without history = %v, want ErrNoHistory", err)
	}
}

func TestOnCompleteRunsAfterFinalize(t *testing.T) {
	e := newTestEngine(t, 3)
	var solvedAtCallback bool
	e.Submit(R, Unrecorded(), WithOnComplete(func() {
		solvedAtCallback = e.IsSolved()
	}))
	e.Flush()
	if solvedAtCallback {
		t.Error("OnComplete should observe the finalized move")
	}
	if e.MoveCount() != 0 {
		t.Error("unrecorded move counted")
	}
}
