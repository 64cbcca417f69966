package cubegame

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Vec3 is a point or direction in cube space. One grid step equals one piece.
type Vec3 = mgl64.Vec3

// Vec2 is a point or displacement in screen pixels.
type Vec2 = mgl64.Vec2

// Supported cube sizes.
const (
	MinSize = 2
	MaxSize = 7
)

// layerTolerance absorbs floating-point error when matching half-integer
// coordinates on even-sized cubes.
const layerTolerance = 1e-3

// Axis is one of the three orthogonal cube axes.
type Axis int

const (
	AxisX Axis = iota // Right (+) / Left (-)
	AxisY             // Up (+) / Down (-)
	AxisZ             // Front (+) / Back (-)
)

// Axes lists every axis in X, Y, Z order.
var Axes = [3]Axis{AxisX, AxisY, AxisZ}

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	default:
		return "?"
	}
}

// Valid reports whether a is X, Y or Z.
func (a Axis) Valid() bool {
	return a >= AxisX && a <= AxisZ
}

// Vec returns the positive unit vector of the axis.
func (a Axis) Vec() Vec3 {
	var v Vec3
	if a.Valid() {
		v[a] = 1
	}
	return v
}

// halfExtent returns the largest grid coordinate for a cube of the given size.
func halfExtent(size int) float64 {
	return float64(size-1) / 2
}

// snapCoord rounds v to the nearest grid coordinate of a cube of the given
// size: integers for odd sizes, half-integers for even sizes, clamped to
// [-half, +half].
func snapCoord(v float64, size int) float64 {
	half := halfExtent(size)
	var s float64
	if size%2 == 1 {
		s = math.Round(v)
	} else {
		s = math.Floor(v) + 0.5
	}
	if s > half {
		s = half
	}
	if s < -half {
		s = -half
	}
	if s == 0 {
		return 0 // no negative zero
	}
	return s
}

func snapVec(v Vec3, size int) Vec3 {
	return Vec3{snapCoord(v[0], size), snapCoord(v[1], size), snapCoord(v[2], size)}
}

// snapUnit rounds every component to -1, 0 or 1.
func snapUnit(v Vec3) Vec3 {
	var out Vec3
	for i, c := range v {
		r := math.Round(c)
		switch {
		case r > 0:
			out[i] = 1
		case r < 0:
			out[i] = -1
		}
	}
	return out
}

// dominantAxis picks the axis with the largest absolute component. Ties go
// to X, then Y.
func dominantAxis(v Vec3) Axis {
	ax, ay, az := math.Abs(v[0]), math.Abs(v[1]), math.Abs(v[2])
	if ax >= ay && ax >= az {
		return AxisX
	}
	if ay >= az {
		return AxisY
	}
	return AxisZ
}

// viewAlign is the sign convention shared by the executor and the gesture
// resolver: negative layers turn the opposite way from positive ones, and the
// middle layer follows the positive side.
func viewAlign(layer float64) float64 {
	if layer < 0 {
		return -1
	}
	return 1
}

// rotationAngle returns the signed angle in radians for a quarter turn of the
// given layer in the given direction.
func rotationAngle(layer float64, direction int) float64 {
	return -float64(direction) * viewAlign(layer) * math.Pi / 2
}

// rotationMatrix builds the rotation of angle radians about axis.
func rotationMatrix(axis Axis, angle float64) mgl64.Mat3 {
	return mgl64.HomogRotate3D(angle, axis.Vec()).Mat3()
}
