// Package netview lays a cube out as an unfolded net of terminal cells and
// maps cells back to stickers, so pointer drags on the net can be resolved
// as layer turns.
//
//	    U
//	L   F   R   B
//	    D
package netview

import (
	cubegame "github.com/trollgameskr/cube-game"
)

// CellWidth is the number of terminal columns per sticker.
const CellWidth = 2

// faceSlots positions each face block on the net, in block units.
var faceSlots = map[cubegame.Face][2]int{
	cubegame.FaceU: {1, 0},
	cubegame.FaceL: {0, 1},
	cubegame.FaceF: {1, 1},
	cubegame.FaceR: {2, 1},
	cubegame.FaceB: {3, 1},
	cubegame.FaceD: {1, 2},
}

// Layout places the net of a size×size×size cube at (Left, Top).
type Layout struct {
	Size int
	Left int
	Top  int
	// Gap is the number of blank columns between face blocks.
	Gap int
}

// New returns a layout at the origin with a one-column gap.
func New(size int) Layout {
	return Layout{Size: size, Gap: 1}
}

func (l Layout) blockWidth() int { return l.Size*CellWidth + l.Gap }

// Width returns the total number of columns the net occupies.
func (l Layout) Width() int { return 4*l.blockWidth() - l.Gap }

// Height returns the total number of rows the net occupies.
func (l Layout) Height() int { return 3 * l.Size }

// Origin returns the top-left cell of a face block.
func (l Layout) Origin(f cubegame.Face) (col, row int) {
	slot := faceSlots[f]
	return l.Left + slot[0]*l.blockWidth(), l.Top + slot[1]*l.Size
}

// Cell returns the top-left terminal cell of sticker (r, c) on face f.
func (l Layout) Cell(f cubegame.Face, r, c int) (col, row int) {
	col0, row0 := l.Origin(f)
	return col0 + c*CellWidth, row0 + r
}

// Locate returns the face and sticker under a terminal cell.
func (l Layout) Locate(col, row int) (f cubegame.Face, r, c int, ok bool) {
	for _, face := range cubegame.Faces {
		col0, row0 := l.Origin(face)
		dc, dr := col-col0, row-row0
		if dc < 0 || dr < 0 || dc >= l.Size*CellWidth || dr >= l.Size {
			continue
		}
		return face, dr, dc / CellWidth, true
	}
	return "", 0, 0, false
}

// Hit returns the pick result for sticker (r, c) of face f.
func (l Layout) Hit(f cubegame.Face, r, c int) cubegame.Hit {
	half := float64(l.Size-1) / 2
	normal, right, down := cubegame.FaceFrame(f)
	piece := normal.Mul(half).
		Add(right.Mul(float64(c) - half)).
		Add(down.Mul(float64(r) - half))
	return cubegame.Hit{
		Piece:  piece,
		Point:  piece.Add(normal.Mul(0.5)),
		Normal: normal,
	}
}

// Projector returns an orthographic projection onto face f's block, in
// terminal cells with y growing downward. Sticker centers land on the
// middle of their cells.
func (l Layout) Projector(f cubegame.Face) cubegame.ProjectFunc {
	_, right, down := cubegame.FaceFrame(f)
	col0, row0 := l.Origin(f)
	extent := float64(l.Size) / 2
	return func(p cubegame.Vec3) cubegame.Vec2 {
		u := p.Dot(right) + extent
		v := p.Dot(down) + extent
		return cubegame.Vec2{
			float64(col0) + u*CellWidth,
			float64(row0) + v,
		}
	}
}

// Grid returns the sticker faces of every face of cube, keyed by face.
func Grid(cube *cubegame.Cube) map[cubegame.Face][][]cubegame.Face {
	grid := make(map[cubegame.Face][][]cubegame.Face, len(cubegame.Faces))
	for _, f := range cubegame.Faces {
		grid[f] = cube.FaceStickers(f)
	}
	return grid
}
