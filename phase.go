package cubegame

// Phase is a layer-by-layer solving milestone, counted from the U face down.
// Phases progress from Scrambled (0) to Solved, allowing comparison with
// < and >.
type Phase int

const (
	// PhaseScrambled indicates no milestone has been reached.
	PhaseScrambled Phase = iota

	// PhaseFirstFace indicates every U sticker shows the U color.
	PhaseFirstFace

	// PhaseFirstLayer indicates every piece of the top layer is home and
	// correctly oriented.
	PhaseFirstLayer

	// PhaseMiddleLayers indicates everything above the bottom layer is home.
	PhaseMiddleLayers

	// PhaseLastFace indicates the D face also shows a single color.
	PhaseLastFace

	// PhaseSolved indicates the cube is completely solved.
	PhaseSolved
)

// String returns a short identifier for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseScrambled:
		return "scrambled"
	case PhaseFirstFace:
		return "first_face"
	case PhaseFirstLayer:
		return "first_layer"
	case PhaseMiddleLayers:
		return "middle_layers"
	case PhaseLastFace:
		return "last_face"
	case PhaseSolved:
		return "solved"
	default:
		return "unknown"
	}
}

// DisplayName returns a human-readable name for the phase.
func (p Phase) DisplayName() string {
	switch p {
	case PhaseScrambled:
		return "Scrambled"
	case PhaseFirstFace:
		return "First Face"
	case PhaseFirstLayer:
		return "First Layer"
	case PhaseMiddleLayers:
		return "Middle Layers"
	case PhaseLastFace:
		return "Last Face"
	case PhaseSolved:
		return "Solved"
	default:
		return "Unknown"
	}
}

// IsComplete returns true if the cube is solved.
func (p Phase) IsComplete() bool {
	return p == PhaseSolved
}

// Progress reports how many pieces and faces are already in place.
type Progress struct {
	PiecesHome  int
	Pieces      int
	FacesSolved int
	Phase       Phase
}

// Percent returns the share of pieces at home, 0 to 100.
func (p Progress) Percent() float64 {
	if p.Pieces == 0 {
		return 0
	}
	return 100 * float64(p.PiecesHome) / float64(p.Pieces)
}
