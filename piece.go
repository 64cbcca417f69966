package cubegame

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Face names an outer face of the cube in standard notation.
type Face string

const (
	FaceR Face = "R" // Right (+x)
	FaceL Face = "L" // Left (-x)
	FaceU Face = "U" // Up (+y)
	FaceD Face = "D" // Down (-y)
	FaceF Face = "F" // Front (+z)
	FaceB Face = "B" // Back (-z)
)

// Faces lists every face in net order: U, L, F, R, B, D.
var Faces = [6]Face{FaceU, FaceL, FaceF, FaceR, FaceB, FaceD}

// FaceFor returns the face on the given side of an axis.
func FaceFor(axis Axis, sign float64) Face {
	switch axis {
	case AxisX:
		if sign < 0 {
			return FaceL
		}
		return FaceR
	case AxisY:
		if sign < 0 {
			return FaceD
		}
		return FaceU
	default:
		if sign < 0 {
			return FaceB
		}
		return FaceF
	}
}

// Axis returns the axis the face is perpendicular to and the side it sits on.
func (f Face) Axis() (Axis, float64) {
	switch f {
	case FaceR:
		return AxisX, 1
	case FaceL:
		return AxisX, -1
	case FaceU:
		return AxisY, 1
	case FaceD:
		return AxisY, -1
	case FaceF:
		return AxisZ, 1
	default:
		return AxisZ, -1
	}
}

// Normal returns the outward unit normal of the face.
func (f Face) Normal() Vec3 {
	axis, sign := f.Axis()
	return axis.Vec().Mul(sign)
}

// ColorCode returns the single-letter sticker color of the face when solved.
func (f Face) ColorCode() string {
	switch f {
	case FaceU:
		return "W"
	case FaceD:
		return "Y"
	case FaceF:
		return "G"
	case FaceB:
		return "B"
	case FaceR:
		return "R"
	case FaceL:
		return "O"
	default:
		return "?"
	}
}

// FaceFrame returns the outward normal of a face plus the directions that
// point right and down when the face is viewed from outside, laid out as an
// unfolded net with U above F.
func FaceFrame(f Face) (normal, right, down Vec3) {
	switch f {
	case FaceU:
		return Vec3{0, 1, 0}, Vec3{1, 0, 0}, Vec3{0, 0, 1}
	case FaceD:
		return Vec3{0, -1, 0}, Vec3{1, 0, 0}, Vec3{0, 0, -1}
	case FaceF:
		return Vec3{0, 0, 1}, Vec3{1, 0, 0}, Vec3{0, -1, 0}
	case FaceB:
		return Vec3{0, 0, -1}, Vec3{-1, 0, 0}, Vec3{0, -1, 0}
	case FaceR:
		return Vec3{1, 0, 0}, Vec3{0, 0, -1}, Vec3{0, -1, 0}
	default: // FaceL
		return Vec3{-1, 0, 0}, Vec3{0, 0, 1}, Vec3{0, -1, 0}
	}
}

// Basis is a piece orientation: its local X, Y and Z axes expressed in world
// space.
type Basis [3]Vec3

// IdentityBasis returns the unrotated orientation.
func IdentityBasis() Basis {
	return Basis{AxisX.Vec(), AxisY.Vec(), AxisZ.Vec()}
}

// rotate applies m to every basis vector and snaps the result back to unit
// axes.
func (b Basis) rotate(m mgl64.Mat3) Basis {
	var out Basis
	for i, v := range b {
		out[i] = snapUnit(m.Mul3x1(v))
	}
	return out
}

// Equal reports exact equality of two snapped bases.
func (b Basis) Equal(o Basis) bool {
	return b == o
}

// Valid reports whether the basis is axis-aligned, unit length and
// orthogonal.
func (b Basis) Valid() bool {
	for _, v := range b {
		nonZero := 0
		for _, c := range v {
			switch c {
			case 0:
			case 1, -1:
				nonZero++
			default:
				return false
			}
		}
		if nonZero != 1 {
			return false
		}
	}
	return b[0].Dot(b[1]) == 0 && b[0].Dot(b[2]) == 0 && b[1].Dot(b[2]) == 0
}

// Piece is one visible sub-cube.
type Piece struct {
	ID                 int
	Position           Vec3
	Orientation        Basis
	InitialPosition    Vec3
	InitialOrientation Basis
}

func newPiece(id int, pos Vec3) *Piece {
	return &Piece{
		ID:                 id,
		Position:           pos,
		Orientation:        IdentityBasis(),
		InitialPosition:    pos,
		InitialOrientation: IdentityBasis(),
	}
}

// InLayer reports whether the piece currently sits in the given layer.
func (p *Piece) InLayer(axis Axis, layer float64) bool {
	return math.Abs(p.Position[axis]-layer) <= layerTolerance
}

// IsHome reports whether the piece is back at its initial position and
// orientation.
func (p *Piece) IsHome() bool {
	return p.Position == p.InitialPosition && p.Orientation.Equal(p.InitialOrientation)
}

// apply rotates the piece's live position and orientation, then snaps both.
func (p *Piece) apply(m mgl64.Mat3, size int) {
	p.Position = snapVec(m.Mul3x1(p.Position), size)
	p.Orientation = p.Orientation.rotate(m)
}

func (p *Piece) reset() {
	p.Position = p.InitialPosition
	p.Orientation = p.InitialOrientation
}

// sticker returns the home face whose sticker points along the world
// direction dir, if the piece carries one there.
func (p *Piece) sticker(dir Vec3, half float64) (Face, bool) {
	local := Vec3{
		p.Orientation[0].Dot(dir),
		p.Orientation[1].Dot(dir),
		p.Orientation[2].Dot(dir),
	}
	axis := dominantAxis(local)
	sign := viewAlign(local[axis])
	if p.InitialPosition[axis]*sign != half {
		return "", false
	}
	return FaceFor(axis, sign), true
}
