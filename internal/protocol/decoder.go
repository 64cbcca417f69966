package protocol

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"

	cubegame "github.com/trollgameskr/cube-game"
)

// RotationEvent is a single face turn reported by the cube.
type RotationEvent struct {
	FaceCode          byte   // Raw face+direction code (0x00-0x0B)
	CenterOrientation byte   // Center piece orientation
	Clockwise         bool   // Direction of rotation
	Color             string // Color name (blue, green, white, yellow, red, orange)
}

// BatteryEvent is a battery level notification.
type BatteryEvent struct {
	Level int // 0-100 percentage
}

// OrientationEvent is a cube orientation notification.
type OrientationEvent struct {
	Quat mgl64.Quat

	// Derived discrete orientation
	UpFace    cubegame.Face
	FrontFace cubegame.Face
}

// colorNames indexes face colors by faceCode/2.
var colorNames = map[byte]string{
	0: "blue",
	1: "green",
	2: "white",
	3: "yellow",
	4: "red",
	5: "orange",
}

// DecodeRotation decodes a rotation payload made of
// [face_dir] [center_orientation] byte pairs. Even face codes are clockwise.
func DecodeRotation(payload []byte) ([]RotationEvent, error) {
	if len(payload)%2 != 0 {
		return nil, fmt.Errorf("rotation payload must have even length, got %d", len(payload))
	}

	events := make([]RotationEvent, 0, len(payload)/2)
	for i := 0; i < len(payload); i += 2 {
		code := payload[i]
		color, ok := colorNames[code/2]
		if !ok {
			return nil, fmt.Errorf("unknown color index %d from face code 0x%02X", code/2, code)
		}
		events = append(events, RotationEvent{
			FaceCode:          code,
			CenterOrientation: payload[i+1],
			Clockwise:         code%2 == 0,
			Color:             color,
		})
	}
	return events, nil
}

// DecodeBattery decodes a battery payload.
func DecodeBattery(payload []byte) (*BatteryEvent, error) {
	if len(payload) < 1 {
		return nil, fmt.Errorf("battery payload too short")
	}
	return &BatteryEvent{Level: int(payload[0])}, nil
}

// DecodeOrientation decodes an orientation payload, the ASCII string
// "x#y#z#w" possibly followed by trailing bytes after w.
func DecodeOrientation(payload []byte) (*OrientationEvent, error) {
	parts := strings.Split(string(payload), "#")
	if len(parts) != 4 {
		return nil, fmt.Errorf("orientation payload must have 4 parts, got %d", len(parts))
	}
	parts[3] = leadingNumber(parts[3])

	var v [4]float64
	for i, part := range parts {
		f, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid orientation component %d: %w", i, err)
		}
		v[i] = f
	}

	q := mgl64.Quat{W: v[3], V: mgl64.Vec3{v[0], v[1], v[2]}}
	if q.Len() > 0 {
		q = q.Normalize()
	}

	return &OrientationEvent{
		Quat:      q,
		UpFace:    faceAlong(q.Rotate(mgl64.Vec3{0, 1, 0})),
		FrontFace: faceAlong(q.Rotate(mgl64.Vec3{0, 0, 1})),
	}, nil
}

// leadingNumber returns the leading decimal number in s.
func leadingNumber(s string) string {
	end := 0
	for i, r := range s {
		if (r == '-' && i == 0) || r == '.' || (r >= '0' && r <= '9') {
			end = i + 1
			continue
		}
		break
	}
	return s[:end]
}

// faceAlong returns the face whose outward normal is closest to v.
func faceAlong(v mgl64.Vec3) cubegame.Face {
	best, face := -2.0, cubegame.FaceU
	for _, f := range cubegame.Faces {
		if d := f.Normal().Dot(v); d > best {
			best, face = d, f
		}
	}
	return face
}
