package cubegame

// Phase detection for a layer-by-layer solve.
// Standard orientation: white (U) on top, yellow (D) on the bottom.

// IsFaceSolved reports whether every sticker of face f shows f's own color.
func (c *Cube) IsFaceSolved(f Face) bool {
	for _, row := range c.FaceStickers(f) {
		for _, s := range row {
			if s != f {
				return false
			}
		}
	}
	return true
}

// IsFaceUniform reports whether every sticker of face f shows one color,
// whichever color that is.
func (c *Cube) IsFaceUniform(f Face) bool {
	grid := c.FaceStickers(f)
	first := grid[0][0]
	for _, row := range grid {
		for _, s := range row {
			if s != first {
				return false
			}
		}
	}
	return true
}

// layersHomeAbove reports whether every piece that starts at or above y is
// home.
func (c *Cube) layersHomeAbove(y float64) bool {
	for _, p := range c.pieces {
		if p.InitialPosition[AxisY] >= y-layerTolerance && !p.IsHome() {
			return false
		}
	}
	return true
}

// DetectPhase returns the highest milestone whose predecessors also hold.
func (c *Cube) DetectPhase() Phase {
	if c.IsSolved() {
		return PhaseSolved
	}
	if !c.IsFaceSolved(FaceU) {
		return PhaseScrambled
	}
	if !c.layersHomeAbove(c.half) {
		return PhaseFirstFace
	}
	// On a 2x2 the layer below the top is already the bottom one.
	if !c.layersHomeAbove(-c.half + 1) {
		return PhaseFirstLayer
	}
	if !c.IsFaceSolved(FaceD) {
		return PhaseMiddleLayers
	}
	return PhaseLastFace
}

// Progress returns the detailed progress.
func (c *Cube) Progress() Progress {
	p := Progress{Pieces: len(c.pieces), Phase: c.DetectPhase()}
	for _, piece := range c.pieces {
		if piece.IsHome() {
			p.PiecesHome++
		}
	}
	for _, f := range Faces {
		if c.IsFaceUniform(f) {
			p.FacesSolved++
		}
	}
	return p
}
