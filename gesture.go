package cubegame

import (
	"fmt"
	"math"
	"strings"
)

// Hit is the result of picking a sticker: the hit piece's grid position, the
// world-space hit point and the outward normal of the face that was hit.
type Hit struct {
	Piece  Vec3
	Point  Vec3
	Normal Vec3
}

// ProjectFunc maps a world-space point to screen pixels (y down).
type ProjectFunc func(Vec3) Vec2

// ResolverMode selects which layer a drag on the camera-facing face turns.
type ResolverMode int

const (
	// ModeFaceLayer turns the layer that contains the hit piece.
	ModeFaceLayer ResolverMode = iota
	// ModeAdjacentLayer turns the outer side layer next to the hit piece when
	// the drag starts on the face looking at the camera.
	ModeAdjacentLayer
)

func (m ResolverMode) String() string {
	switch m {
	case ModeFaceLayer:
		return "face"
	case ModeAdjacentLayer:
		return "adjacent"
	default:
		return "unknown"
	}
}

// ParseResolverMode parses "face" or "adjacent".
func ParseResolverMode(s string) (ResolverMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "face", "":
		return ModeFaceLayer, nil
	case "adjacent":
		return ModeAdjacentLayer, nil
	default:
		return ModeFaceLayer, fmt.Errorf("unknown resolver mode %q", s)
	}
}

const (
	// sampleOffset is how far along the drag tangent the direction probe
	// sits from the hit point, in grid units.
	sampleOffset = 0.35
	// probeAngle is the trial rotation applied to the probe. It must stay well
	// under a quarter turn or probes near the rim of large cubes wrap past
	// the edge.
	probeAngle = math.Pi / 16
	// projectionEpsilon is the smallest on-screen displacement, in pixels,
	// treated as movement.
	projectionEpsilon = 1e-6
)

// Resolver maps a pointer drag anchored on a sticker to one move.
type Resolver struct {
	Size     int
	Mode     ResolverMode
	ViewAxis Axis
	MinDrag  float64
}

// NewResolver returns a resolver with default settings for a cube of the
// given size.
func NewResolver(size int) Resolver {
	return Resolver{Size: size, Mode: ModeFaceLayer, ViewAxis: AxisZ, MinDrag: DefaultMinDrag}
}

// Resolve returns the move a drag describes, or false when the drag is too
// short or its direction cannot be decided.
//
// The drag is compared against the screen projections of the two tangents of
// the hit face; the better-aligned tangent and the face normal give the
// rotation axis. Both turn directions are then tried on a probe point and the
// one whose on-screen motion follows the drag wins.
func (r Resolver) Resolve(hit Hit, drag Vec2, project ProjectFunc) (Move, bool) {
	if project == nil || r.Size < MinSize || r.Size > MaxSize {
		return Move{}, false
	}
	dragLen := drag.Len()
	if dragLen < r.MinDrag || dragLen == 0 {
		return Move{}, false
	}
	dragDir := drag.Mul(1 / dragLen)

	if hit.Normal.Len() < projectionEpsilon {
		return Move{}, false
	}
	n := hit.Normal.Normalize()

	ref := Vec3{0, 1, 0}
	if math.Abs(ref.Dot(n)) > 0.9 {
		ref = Vec3{1, 0, 0}
	}
	tA := ref.Cross(n).Normalize()
	tB := n.Cross(tA).Normalize()

	origin := project(hit.Point)
	score := func(t Vec3) (float64, bool) {
		d := project(hit.Point.Add(t)).Sub(origin)
		l := d.Len()
		if l < projectionEpsilon || math.IsNaN(l) {
			return 0, false
		}
		return d.Mul(1 / l).Dot(dragDir), true
	}

	sA, okA := score(tA)
	sB, okB := score(tB)
	if !okA && !okB {
		return Move{}, false
	}
	t, s := tA, sA
	if !okA || (okB && math.Abs(sB) > math.Abs(sA)) {
		t, s = tB, sB
	}
	if s < 0 {
		t = t.Mul(-1)
	}

	axisVec := n.Cross(t)
	if axisVec.Len() < projectionEpsilon {
		return Move{}, false
	}
	axis := dominantAxis(axisVec)

	layer, ok := r.layerFor(hit, axis, n)
	if !ok {
		return Move{}, false
	}

	sample := hit.Point.Add(t.Mul(sampleOffset))
	base := project(sample)
	bestSign, best := 0.0, math.Inf(-1)
	for _, sign := range [2]float64{1, -1} {
		moved := project(rotationMatrix(axis, sign*probeAngle).Mul3x1(sample))
		d := moved.Sub(base)
		l := d.Len()
		if l < projectionEpsilon || math.IsNaN(l) {
			continue
		}
		if a := d.Mul(1 / l).Dot(dragDir); a > best {
			bestSign, best = sign, a
		}
	}
	if bestSign == 0 {
		return Move{}, false
	}

	return Move{
		Axis:      axis,
		Layer:     layer,
		Direction: int(-bestSign * viewAlign(layer)),
	}, true
}

// layerFor picks the layer to turn on axis for a hit.
func (r Resolver) layerFor(hit Hit, axis Axis, n Vec3) (float64, bool) {
	coord := hit.Piece[axis]
	if math.IsNaN(coord) || math.IsInf(coord, 0) {
		return 0, false
	}
	layer := snapCoord(coord, r.Size)
	if math.Abs(layer-coord) > layerTolerance {
		return 0, false
	}

	if r.Mode != ModeAdjacentLayer {
		return layer, true
	}

	half := halfExtent(r.Size)
	faceAxis := dominantAxis(n)
	onViewFace := faceAxis == r.ViewAxis &&
		math.Abs(math.Abs(hit.Piece[faceAxis])-half) <= layerTolerance
	if onViewFace && axis != faceAxis && math.Abs(layer) > layerTolerance {
		return viewAlign(layer) * half, true
	}
	return layer, true
}
