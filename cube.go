package cubegame

import (
	"fmt"
	"math"
	"strings"
)

// Cube is the N×N×N collection of pieces. The true center of an odd-sized
// cube is never visible and is omitted.
type Cube struct {
	size   int
	half   float64
	pieces []*Piece
}

// NewCube builds a solved cube of the given size.
func NewCube(size int) (*Cube, error) {
	if size < MinSize || size > MaxSize {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidSize, size)
	}

	c := &Cube{size: size, half: halfExtent(size)}
	coords := c.Layers()
	for _, x := range coords {
		for _, y := range coords {
			for _, z := range coords {
				if x == 0 && y == 0 && z == 0 {
					continue
				}
				c.pieces = append(c.pieces, newPiece(len(c.pieces), Vec3{x, y, z}))
			}
		}
	}
	return c, nil
}

// Size returns N.
func (c *Cube) Size() int {
	return c.size
}

// HalfExtent returns (N-1)/2, the largest grid coordinate.
func (c *Cube) HalfExtent() float64 {
	return c.half
}

// Len returns the number of pieces.
func (c *Cube) Len() int {
	return len(c.pieces)
}

// Layers returns every valid grid coordinate in ascending order.
func (c *Cube) Layers() []float64 {
	layers := make([]float64, c.size)
	for i := range layers {
		layers[i] = float64(i) - c.half
	}
	return layers
}

// ValidLayer snaps layer to the grid and reports whether it names an existing
// layer for this size.
func (c *Cube) ValidLayer(layer float64) (float64, bool) {
	if math.IsNaN(layer) || math.IsInf(layer, 0) {
		return 0, false
	}
	s := snapCoord(layer, c.size)
	if math.Abs(s-layer) > layerTolerance {
		return 0, false
	}
	return s, true
}

// Reset restores every piece to its initial position and orientation.
func (c *Cube) Reset() {
	for _, p := range c.pieces {
		p.reset()
	}
}

// PiecesInLayer returns the live pieces whose coordinate on axis equals layer.
func (c *Cube) PiecesInLayer(axis Axis, layer float64) []*Piece {
	var out []*Piece
	for _, p := range c.pieces {
		if p.InLayer(axis, layer) {
			out = append(out, p)
		}
	}
	return out
}

// IsSolved returns true if every piece is at its initial position with its
// initial orientation.
func (c *Cube) IsSolved() bool {
	for _, p := range c.pieces {
		if !p.IsHome() {
			return false
		}
	}
	return true
}

// Pieces returns a copy of every piece.
func (c *Cube) Pieces() []Piece {
	out := make([]Piece, len(c.pieces))
	for i, p := range c.pieces {
		out[i] = *p
	}
	return out
}

// PieceAt returns a copy of the piece currently at pos.
func (c *Cube) PieceAt(pos Vec3) (Piece, bool) {
	for _, p := range c.pieces {
		if p.InLayer(AxisX, pos[0]) && p.InLayer(AxisY, pos[1]) && p.InLayer(AxisZ, pos[2]) {
			return *p, true
		}
	}
	return Piece{}, false
}

// Clone creates a deep copy of the cube.
func (c *Cube) Clone() *Cube {
	clone := &Cube{size: c.size, half: c.half, pieces: make([]*Piece, len(c.pieces))}
	for i, p := range c.pieces {
		cp := *p
		clone.pieces[i] = &cp
	}
	return clone
}

// Apply turns one layer immediately, bypassing any queue or animation.
// Invalid moves are ignored and reported as false.
func (c *Cube) Apply(m Move) bool {
	layer, ok := c.ValidLayer(m.Layer)
	if !ok || !m.Axis.Valid() {
		return false
	}
	m.Layer = layer
	c.rotateLayer(c.PiecesInLayer(m.Axis, layer), m.Axis, m.Angle())
	return true
}

// ApplyMoves applies a sequence of moves immediately.
func (c *Cube) ApplyMoves(moves []Move) {
	for _, m := range moves {
		c.Apply(m)
	}
}

func (c *Cube) rotateLayer(pieces []*Piece, axis Axis, angle float64) {
	rot := rotationMatrix(axis, angle)
	for _, p := range pieces {
		p.apply(rot, c.size)
	}
}

// Sticker returns which home face's sticker piece p shows on the world
// direction dir (an outward face normal).
func (c *Cube) Sticker(p Piece, dir Vec3) (Face, bool) {
	return p.sticker(snapUnit(dir), c.half)
}

// FaceStickers returns the N×N grid of sticker colors on a face, row by row
// as seen from outside in net orientation.
func (c *Cube) FaceStickers(f Face) [][]Face {
	index := make(map[[3]int]*Piece, len(c.pieces))
	for _, p := range c.pieces {
		index[gridKey(p.Position)] = p
	}

	normal, right, down := FaceFrame(f)
	grid := make([][]Face, c.size)
	for row := 0; row < c.size; row++ {
		grid[row] = make([]Face, c.size)
		for col := 0; col < c.size; col++ {
			pos := normal.Mul(c.half).
				Add(right.Mul(float64(col) - c.half)).
				Add(down.Mul(float64(row) - c.half))
			if p, ok := index[gridKey(pos)]; ok {
				if face, ok := p.sticker(normal, c.half); ok {
					grid[row][col] = face
				}
			}
		}
	}
	return grid
}

// gridKey doubles coordinates so half-integers become exact map keys.
func gridKey(v Vec3) [3]int {
	return [3]int{
		int(math.Round(v[0] * 2)),
		int(math.Round(v[1] * 2)),
		int(math.Round(v[2] * 2)),
	}
}

// String returns a text representation of the cube as an unfolded net.
func (c *Cube) String() string {
	var b strings.Builder
	indent := strings.Repeat(" ", 2*c.size)

	grids := make(map[Face][][]Face, len(Faces))
	for _, f := range Faces {
		grids[f] = c.FaceStickers(f)
	}

	writeRow := func(f Face, row int) {
		for _, s := range grids[f][row] {
			if s == "" {
				b.WriteString("? ")
				continue
			}
			b.WriteString(s.ColorCode() + " ")
		}
	}

	for row := 0; row < c.size; row++ {
		b.WriteString(indent)
		writeRow(FaceU, row)
		b.WriteString("\n")
	}
	for row := 0; row < c.size; row++ {
		for _, f := range []Face{FaceL, FaceF, FaceR, FaceB} {
			writeRow(f, row)
		}
		b.WriteString("\n")
	}
	for row := 0; row < c.size; row++ {
		b.WriteString(indent)
		writeRow(FaceD, row)
		b.WriteString("\n")
	}
	return b.String()
}
