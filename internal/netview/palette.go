package netview

import (
	"github.com/lucasb-eyer/go-colorful"

	cubegame "github.com/trollgameskr/cube-game"
)

var (
	baseColor = mustHex("#1f2937")
	white     = colorful.Color{R: 1, G: 1, B: 1}
)

var faceColors = map[cubegame.Face]colorful.Color{
	cubegame.FaceR: mustHex("#ef4444"),
	cubegame.FaceL: mustHex("#f97316"),
	cubegame.FaceU: mustHex("#f8fafc"),
	cubegame.FaceD: mustHex("#facc15"),
	cubegame.FaceF: mustHex("#22c55e"),
	cubegame.FaceB: mustHex("#3b82f6"),
}

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Color returns the sticker color of a home face. Unknown faces get the
// plastic base color.
func Color(f cubegame.Face) colorful.Color {
	if c, ok := faceColors[f]; ok {
		return c
	}
	return baseColor
}

// Hex returns Color(f) as "#rrggbb".
func Hex(f cubegame.Face) string {
	return Color(f).Hex()
}

// Highlight lightens a sticker toward white by t in [0, 1], used for the
// layer under a drag.
func Highlight(f cubegame.Face, t float64) string {
	if t <= 0 {
		return Hex(f)
	}
	if t > 1 {
		t = 1
	}
	return Color(f).BlendLab(white, t).Clamped().Hex()
}

// Dim darkens a sticker by t in [0, 1] toward the base color, used for
// stickers of a turning layer.
func Dim(f cubegame.Face, t float64) string {
	if t <= 0 {
		return Hex(f)
	}
	if t > 1 {
		t = 1
	}
	return Color(f).BlendLab(baseColor, t).Clamped().Hex()
}
