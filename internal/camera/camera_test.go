package camera

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cubegame "github.com/trollgameskr/cube-game"
)

func frontCamera(size int) *Camera {
	c := New(size, 600, 600)
	c.Theta = 0
	c.Phi = math.Pi / 2
	return c
}

func TestDefaults(t *testing.T) {
	c := New(3, 800, 600)
	assert.Equal(t, DefaultTheta, c.Theta)
	assert.Equal(t, DefaultPhi, c.Phi)
	assert.InDelta(t, 7.4, c.Distance, 1e-9)
	assert.InDelta(t, 7.4, c.Eye().Len(), 1e-9)

	big := New(6, 800, 600)
	assert.InDelta(t, 14.8, big.Distance, 1e-9)
}

func TestProjectCenterAndAxes(t *testing.T) {
	c := frontCamera(3)

	center := c.Project(cubegame.Vec3{})
	assert.InDelta(t, 300, center.X(), 1e-6)
	assert.InDelta(t, 300, center.Y(), 1e-6)

	right := c.Project(cubegame.Vec3{1, 0, 1.5})
	assert.Greater(t, right.X(), 300.0)
	assert.InDelta(t, 300, right.Y(), 1e-6)

	up := c.Project(cubegame.Vec3{0, 1, 1.5})
	assert.Less(t, up.Y(), 300.0, "screen y grows downward")
}

func TestPickFront(t *testing.T) {
	cube, err := cubegame.NewCube(3)
	require.NoError(t, err)
	c := frontCamera(3)

	hit, ok := c.Pick(cube, 300, 300)
	require.True(t, ok)
	assert.Equal(t, cubegame.Vec3{0, 0, 1}, hit.Piece)
	assert.Equal(t, cubegame.Vec3{0, 0, 1}, hit.Normal)
	assert.InDelta(t, 1.5, hit.Point.Z(), 1e-6)

	px := c.Project(cubegame.Vec3{1, -1, 1.5})
	hit, ok = c.Pick(cube, px.X(), px.Y())
	require.True(t, ok)
	assert.Equal(t, cubegame.Vec3{1, -1, 1}, hit.Piece)

	_, ok = c.Pick(cube, 2, 2)
	assert.False(t, ok, "corner of the viewport misses the cube")
}

func TestPickDefaultViewHitsTopCorner(t *testing.T) {
	cube, err := cubegame.NewCube(3)
	require.NoError(t, err)
	c := New(3, 600, 600)

	hit, ok := c.Pick(cube, 300, 300)
	require.True(t, ok)
	assert.Equal(t, cubegame.Vec3{1, 1, 1}, hit.Piece)
	assert.Equal(t, cubegame.Vec3{0, 1, 0}, hit.Normal)
}

func TestPickThenResolve(t *testing.T) {
	e, err := cubegame.NewEngine(3)
	require.NoError(t, err)
	c := frontCamera(3)

	px := c.Project(cubegame.Vec3{1, 0, 1.5})
	hit, ok := c.Pick(e.Snapshot(), px.X(), px.Y())
	require.True(t, ok)

	m, ok := e.ResolveGesture(hit, cubegame.Vec2{0, -40}, c.Project)
	require.True(t, ok)
	assert.Equal(t, "R", m.Notation(3))
}

func TestOrbitClampsPhi(t *testing.T) {
	c := New(3, 600, 600)
	c.Orbit(100, 0)
	assert.InDelta(t, DefaultTheta-0.5, c.Theta, 1e-9)

	c.Orbit(0, 10000)
	assert.Equal(t, MinPhi, c.Phi)
	c.Orbit(0, -10000)
	assert.Equal(t, MaxPhi, c.Phi)
}

func TestZoomClamps(t *testing.T) {
	c := New(3, 600, 600)
	c.Zoom(100)
	assert.Equal(t, MaxDistance, c.Distance)
	c.Zoom(0.001)
	assert.Equal(t, MinDistance, c.Distance)
	c.Zoom(-1)
	assert.Equal(t, MinDistance, c.Distance)

	c.Wheel(0)
	assert.Equal(t, MinDistance, c.Distance)
}

func TestIntersectBox(t *testing.T) {
	origin := mgl64.Vec3{5, 0, 0}
	dir := mgl64.Vec3{-1, 0, 0}

	tHit, n, ok := intersectBox(origin, dir, mgl64.Vec3{}, 0.5)
	require.True(t, ok)
	assert.InDelta(t, 4.5, tHit, 1e-9)
	assert.Equal(t, mgl64.Vec3{1, 0, 0}, n)

	_, _, ok = intersectBox(origin, dir, mgl64.Vec3{0, 2, 0}, 0.5)
	assert.False(t, ok)

	_, _, ok = intersectBox(origin, mgl64.Vec3{1, 0, 0}, mgl64.Vec3{}, 0.5)
	assert.False(t, ok, "box behind the ray")
}
