package cubegame

import "testing"

func TestPhaseDetection(t *testing.T) {
	tests := []struct {
		name  string
		moves []Move
		want  Phase
	}{
		{"solved", nil, PhaseSolved},
		{"D turn keeps everything above", []Move{D}, PhaseLastFace},
		{"E turn breaks the middle layer", []Move{E}, PhaseFirstLayer},
		{"U turn keeps the white face", []Move{U}, PhaseFirstFace},
		{"R turn breaks the white face", []Move{R}, PhaseScrambled},
	}

	for _, tt := range tests {
		c, _ := NewCube(3)
		c.ApplyMoves(tt.moves)
		if got := c.DetectPhase(); got != tt.want {
			t.Errorf("%s: DetectPhase = %v, want %v", tt.name, got, tt.want)
			t.Log(c.String())
		}
	}
}

func TestPhaseOrdering(t *testing.T) {
	if !(PhaseScrambled < PhaseFirstFace && PhaseFirstLayer < PhaseMiddleLayers && PhaseLastFace < PhaseSolved) {
		t.Error("phases must be ordered from scrambled to solved")
	}
	if !PhaseSolved.IsComplete() || PhaseLastFace.IsComplete() {
		t.Error("only PhaseSolved is complete")
	}
}

func TestProgress(t *testing.T) {
	c, _ := NewCube(3)
	p := c.Progress()
	if p.PiecesHome != 26 || p.FacesSolved != 6 || p.Percent() != 100 {
		t.Errorf("solved progress = %+v", p)
	}

	c.Apply(R)
	p = c.Progress()
	// R moves 8 pieces and spins its center.
	if p.PiecesHome != 17 {
		t.Errorf("PiecesHome after R = %d, want 17", p.PiecesHome)
	}
	if p.FacesSolved != 2 {
		t.Errorf("FacesSolved after R = %d, want 2 (R and L)", p.FacesSolved)
	}
}

func TestTrackerPhaseCallback(t *testing.T) {
	e := newTestEngine(t, 3, WithRotationSpeed(0))
	tr := NewTracker(e)

	var phases []Phase
	tr.SetPhaseCallback(func(p Phase) { phases = append(phases, p) })

	e.Submit(D)
	e.Flush()
	e.Submit(DPrime)
	e.Flush()

	if len(phases) != 2 || phases[0] != PhaseLastFace || phases[1] != PhaseSolved {
		t.Errorf("phases = %v, want [last_face solved]", phases)
	}
	if tr.HighestPhase() != PhaseSolved {
		t.Errorf("HighestPhase = %v", tr.HighestPhase())
	}
}
