// Package camera implements the orbit camera used to view and pick pieces.
package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	cubegame "github.com/trollgameskr/cube-game"
)

// Orbit defaults for a 3×3×3; distance limits scale with the cube size.
const (
	DefaultTheta    = math.Pi / 4
	DefaultPhi      = math.Pi / 4
	DefaultDistance = 7.4
	MinPhi          = 0.2
	MaxPhi          = math.Pi - 0.2
	MinDistance     = 3.5
	MaxDistance     = 12.0
	FOV             = 45.0 // degrees

	orbitSpeed = 0.005 // radians per pixel
	near, far  = 0.1, 80.0
)

// Camera orbits the origin at a distance, looking at the cube center.
type Camera struct {
	Theta    float64 // azimuth around +Y, 0 looks down -Z from the front
	Phi      float64 // polar angle from +Y
	Distance float64
	Width    int
	Height   int

	scale float64
}

// New returns a camera framing a cube of the given size in a viewport of
// width×height pixels.
func New(size, width, height int) *Camera {
	scale := float64(size) / 3
	return &Camera{
		Theta:    DefaultTheta,
		Phi:      DefaultPhi,
		Distance: DefaultDistance * scale,
		Width:    width,
		Height:   height,
		scale:    scale,
	}
}

// Eye returns the camera position.
func (c *Camera) Eye() mgl64.Vec3 {
	sinPhi, cosPhi := math.Sincos(c.Phi)
	sinTheta, cosTheta := math.Sincos(c.Theta)
	return mgl64.Vec3{
		c.Distance * sinPhi * sinTheta,
		c.Distance * cosPhi,
		c.Distance * sinPhi * cosTheta,
	}
}

func (c *Camera) view() mgl64.Mat4 {
	return mgl64.LookAtV(c.Eye(), mgl64.Vec3{}, mgl64.Vec3{0, 1, 0})
}

func (c *Camera) projection() mgl64.Mat4 {
	aspect := 1.0
	if c.Height > 0 {
		aspect = float64(c.Width) / float64(c.Height)
	}
	return mgl64.Perspective(mgl64.DegToRad(FOV), aspect, near, far)
}

// Project maps a world point to pixel coordinates with y growing downward.
func (c *Camera) Project(p cubegame.Vec3) cubegame.Vec2 {
	win := mgl64.Project(p, c.view(), c.projection(), 0, 0, c.Width, c.Height)
	return cubegame.Vec2{win.X(), float64(c.Height) - win.Y()}
}

// Ray returns the world-space ray through pixel (x, y).
func (c *Camera) Ray(x, y float64) (origin, dir mgl64.Vec3, ok bool) {
	view, proj := c.view(), c.projection()
	wy := float64(c.Height) - y

	nearPt, err := mgl64.UnProject(mgl64.Vec3{x, wy, 0}, view, proj, 0, 0, c.Width, c.Height)
	if err != nil {
		return origin, dir, false
	}
	farPt, err := mgl64.UnProject(mgl64.Vec3{x, wy, 1}, view, proj, 0, 0, c.Width, c.Height)
	if err != nil {
		return origin, dir, false
	}
	d := farPt.Sub(nearPt)
	if d.Len() == 0 {
		return origin, dir, false
	}
	return nearPt, d.Normalize(), true
}

// Pick returns the sticker under pixel (x, y), nearest first.
func (c *Camera) Pick(cube *cubegame.Cube, x, y float64) (cubegame.Hit, bool) {
	origin, dir, ok := c.Ray(x, y)
	if !ok {
		return cubegame.Hit{}, false
	}

	var (
		best  cubegame.Hit
		bestT = math.Inf(1)
		found bool
	)
	for _, p := range cube.Pieces() {
		t, normal, ok := intersectBox(origin, dir, p.Position, 0.5)
		if !ok || t >= bestT {
			continue
		}
		bestT, found = t, true
		best = cubegame.Hit{
			Piece:  p.Position,
			Point:  origin.Add(dir.Mul(t)),
			Normal: normal,
		}
	}
	return best, found
}

// Orbit turns the camera by a pointer drag of (dx, dy) pixels.
func (c *Camera) Orbit(dx, dy float64) {
	c.Theta -= dx * orbitSpeed
	c.Phi = mgl64.Clamp(c.Phi-dy*orbitSpeed, MinPhi, MaxPhi)
}

// Zoom multiplies the distance by factor within the size-scaled limits.
func (c *Camera) Zoom(factor float64) {
	if factor <= 0 {
		return
	}
	c.Distance = mgl64.Clamp(c.Distance*factor, MinDistance*c.scale, MaxDistance*c.scale)
}

// Wheel zooms by a mouse wheel delta.
func (c *Camera) Wheel(delta float64) {
	c.Zoom(math.Exp(delta * 0.0015))
}

// intersectBox intersects a ray with the axis-aligned box of the given half
// extent around center. It returns the entry distance and the normal of the
// face entered.
func intersectBox(origin, dir, center mgl64.Vec3, half float64) (float64, mgl64.Vec3, bool) {
	const eps = 1e-12
	tmin, tmax := math.Inf(-1), math.Inf(1)
	enterAxis, enterSign := -1, 0.0

	for ax := 0; ax < 3; ax++ {
		o := origin[ax] - center[ax]
		d := dir[ax]
		if math.Abs(d) < eps {
			if math.Abs(o) > half {
				return 0, mgl64.Vec3{}, false
			}
			continue
		}
		t1 := (-half - o) / d
		t2 := (half - o) / d
		sign := -1.0
		if t1 > t2 {
			t1, t2 = t2, t1
			sign = 1
		}
		if t1 > tmin {
			tmin, enterAxis, enterSign = t1, ax, sign
		}
		if t2 < tmax {
			tmax = t2
		}
	}
	if enterAxis < 0 || tmax < 0 || tmin > tmax || tmin < 0 {
		return 0, mgl64.Vec3{}, false
	}

	var n mgl64.Vec3
	n[enterAxis] = enterSign
	return tmin, n, true
}
