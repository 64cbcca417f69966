package netview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cubegame "github.com/trollgameskr/cube-game"
)

func TestLocateRoundTrip(t *testing.T) {
	for size := cubegame.MinSize; size <= cubegame.MaxSize; size++ {
		l := Layout{Size: size, Left: 3, Top: 2, Gap: 1}
		for _, f := range cubegame.Faces {
			for r := 0; r < size; r++ {
				for c := 0; c < size; c++ {
					col, row := l.Cell(f, r, c)
					for dx := 0; dx < CellWidth; dx++ {
						gf, gr, gc, ok := l.Locate(col+dx, row)
						require.True(t, ok)
						assert.Equal(t, f, gf)
						assert.Equal(t, r, gr)
						assert.Equal(t, c, gc)
					}
				}
			}
		}
	}
}

func TestLocateMisses(t *testing.T) {
	l := New(3)
	_, _, _, ok := l.Locate(0, 0) // left of U
	assert.False(t, ok)
	_, _, _, ok = l.Locate(6, 3) // gap between L and F
	assert.False(t, ok)
	_, _, _, ok = l.Locate(l.Width(), 4)
	assert.False(t, ok)
	assert.Equal(t, 27, l.Width())
	assert.Equal(t, 9, l.Height())
}

func TestHitMatchesFaceStickers(t *testing.T) {
	cube, err := cubegame.NewCube(4)
	require.NoError(t, err)
	require.True(t, cube.Apply(cubegame.FaceMove(cubegame.FaceR, 4, cubegame.CW)))

	l := New(4)
	for _, f := range cubegame.Faces {
		stickers := cube.FaceStickers(f)
		for r := 0; r < 4; r++ {
			for c := 0; c < 4; c++ {
				hit := l.Hit(f, r, c)
				p, ok := cube.PieceAt(hit.Piece)
				require.True(t, ok, "%s %d,%d", f, r, c)
				got, ok := cube.Sticker(p, hit.Normal)
				require.True(t, ok)
				assert.Equal(t, stickers[r][c], got)
			}
		}
	}
}

func TestProjectorCentersStickers(t *testing.T) {
	l := New(3)
	for _, f := range cubegame.Faces {
		project := l.Projector(f)
		hit := l.Hit(f, 2, 0)
		col, row := l.Cell(f, 2, 0)
		px := project(hit.Point)
		assert.InDelta(t, float64(col)+1, px.X(), 1e-9, f)
		assert.InDelta(t, float64(row)+0.5, px.Y(), 1e-9, f)
	}
}

func TestDragOnNetResolves(t *testing.T) {
	l := New(3)
	r := cubegame.NewResolver(3)
	r.MinDrag = 1

	// right column of F dragged up
	m, ok := r.Resolve(l.Hit(cubegame.FaceF, 1, 2), cubegame.Vec2{0, -2}, l.Projector(cubegame.FaceF))
	require.True(t, ok)
	assert.Equal(t, "R", m.Notation(3))

	// top row of F dragged left
	m, ok = r.Resolve(l.Hit(cubegame.FaceF, 0, 2), cubegame.Vec2{-4, 0}, l.Projector(cubegame.FaceF))
	require.True(t, ok)
	assert.Equal(t, "U", m.Notation(3))
}

func TestPalette(t *testing.T) {
	assert.Equal(t, "#ef4444", Hex(cubegame.FaceR))
	assert.Equal(t, "#22c55e", Hex(cubegame.FaceF))
	assert.Equal(t, "#1f2937", Hex(""))
	assert.Equal(t, Hex(cubegame.FaceB), Highlight(cubegame.FaceB, 0))
	assert.NotEqual(t, Hex(cubegame.FaceB), Highlight(cubegame.FaceB, 1))
	assert.Equal(t, Highlight(cubegame.FaceB, 1), Highlight(cubegame.FaceB, 3))
	assert.NotEqual(t, Hex(cubegame.FaceB), Dim(cubegame.FaceB, 0.5))
}
