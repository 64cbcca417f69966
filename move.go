package cubegame

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// Direction values for a quarter turn.
const (
	CW  = 1  // Clockwise when looking at the layer's positive side
	CCW = -1 // Counter-clockwise
)

// Move is a quarter turn of one layer. It is a command, not stored state.
type Move struct {
	Axis      Axis    // Axis the layer is perpendicular to
	Layer     float64 // Grid coordinate of the layer on Axis
	Direction int     // CW (+1) or CCW (-1)
}

// FaceMove returns the quarter turn of an outer face on a cube of the given
// size.
func FaceMove(f Face, size int, direction int) Move {
	axis, sign := f.Axis()
	return Move{Axis: axis, Layer: sign * halfExtent(size), Direction: clampDirection(direction)}
}

func clampDirection(d int) int {
	if d < 0 {
		return CCW
	}
	return CW
}

// Angle returns the signed rotation about the positive axis, in radians.
// Turning a negative layer visually requires the opposite sense from the
// positive layer for the same direction; the middle layer follows the
// positive side.
func (m Move) Angle() float64 {
	return rotationAngle(m.Layer, clampDirection(m.Direction))
}

// Inverse returns the move that undoes this one.
func (m Move) Inverse() Move {
	inv := m
	inv.Direction = -clampDirection(m.Direction)
	return inv
}

// SameLayer reports whether two moves turn the same (axis, layer) pair.
func (m Move) SameLayer(o Move) bool {
	return m.Axis == o.Axis && math.Abs(m.Layer-o.Layer) <= layerTolerance
}

// String returns a size-independent debug form, e.g. "x[1]+1".
func (m Move) String() string {
	return fmt.Sprintf("%s[%g]%+d", m.Axis, m.Layer, clampDirection(m.Direction))
}

// sliceLetters names the middle layer of an odd-sized cube per axis.
var sliceLetters = map[Axis]string{AxisX: "M", AxisY: "E", AxisZ: "S"}

// sliceFollowsNegative marks slices named after the negative face's turning
// sense: M turns like L and E like D, while S turns like F.
var sliceFollowsNegative = map[Axis]bool{AxisX: true, AxisY: true}

// Notation returns the cube notation for this move on a cube of the given
// size. Outer layers use face letters, odd-size middle layers use M/E/S and
// other inner layers use the axis letter plus a 1-based index counted from
// the negative side (X2, Y3). A trailing ' marks direction -1, except that M
// and E turn with L and D, so their prime marks direction +1.
// Examples: R, U', M, X2'
func (m Move) Notation(size int) string {
	half := halfExtent(size)
	prime := clampDirection(m.Direction) == CCW
	var s string
	switch {
	case math.Abs(m.Layer-half) <= layerTolerance:
		s = string(FaceFor(m.Axis, 1))
	case math.Abs(m.Layer+half) <= layerTolerance:
		s = string(FaceFor(m.Axis, -1))
	case size%2 == 1 && math.Abs(m.Layer) <= layerTolerance:
		s = sliceLetters[m.Axis]
		if sliceFollowsNegative[m.Axis] {
			prime = !prime
		}
	default:
		index := int(math.Round(m.Layer+half)) + 1
		s = strings.ToUpper(m.Axis.String()) + strconv.Itoa(index)
	}
	if prime {
		s += "'"
	}
	return s
}

// ParseMove parses one notation token for a cube of the given size.
// Examples: R, R', M, X2'
// Returns an error if the notation is invalid for that size.
func ParseMove(s string, size int) (Move, error) {
	moves, err := parseToken(s, size)
	if err != nil {
		return Move{}, err
	}
	if len(moves) != 1 {
		return Move{}, fmt.Errorf("%w: %q is not a quarter turn", ErrInvalidNotation, s)
	}
	return moves[0], nil
}

// parseToken parses a token into one quarter turn, or two for a half turn.
func parseToken(s string, size int) ([]Move, error) {
	if size < MinSize || size > MaxSize {
		return nil, ErrInvalidSize
	}
	tok := strings.TrimSpace(s)
	if len(tok) == 0 {
		return nil, ErrInvalidNotation
	}
	bad := func() error {
		return fmt.Errorf("%w: %q", ErrInvalidNotation, s)
	}

	half := halfExtent(size)
	var m Move
	rest := tok[1:]

	switch unicode.ToUpper(rune(tok[0])) {
	case 'R', 'L', 'U', 'D', 'F', 'B':
		m = FaceMove(Face(strings.ToUpper(tok[:1])), size, CW)
	case 'M', 'E', 'S':
		if size%2 == 0 {
			return nil, bad()
		}
		for axis, letter := range sliceLetters {
			if strings.EqualFold(letter, tok[:1]) {
				m = Move{Axis: axis, Layer: 0, Direction: CW}
				if sliceFollowsNegative[axis] {
					m.Direction = CCW
				}
			}
		}
	case 'X', 'Y', 'Z':
		axis := Axis(unicode.ToUpper(rune(tok[0])) - 'X')
		digits := 0
		for digits < len(rest) && rest[digits] >= '0' && rest[digits] <= '9' {
			digits++
		}
		if digits == 0 {
			return nil, bad()
		}
		index, err := strconv.Atoi(rest[:digits])
		if err != nil || index < 1 || index > size {
			return nil, bad()
		}
		m = Move{Axis: axis, Layer: float64(index-1) - half, Direction: CW}
		rest = rest[digits:]
	default:
		return nil, bad()
	}

	switch rest {
	case "":
		return []Move{m}, nil
	case "'", "`":
		return []Move{m.Inverse()}, nil
	case "2", "2'", "2`":
		return []Move{m, m}, nil
	default:
		return nil, bad()
	}
}

// ParseMoves parses a space-separated sequence of moves.
// Example: "R U R' U'". Half turns (R2) expand to two quarter turns.
func ParseMoves(s string, size int) ([]Move, error) {
	parts := strings.Fields(s)
	moves := make([]Move, 0, len(parts))

	for _, part := range parts {
		parsed, err := parseToken(part, size)
		if err != nil {
			return nil, err
		}
		moves = append(moves, parsed...)
	}

	return moves, nil
}

// FormatMoves formats a slice of moves as a space-separated notation string.
func FormatMoves(moves []Move, size int) string {
	if len(moves) == 0 {
		return ""
	}

	parts := make([]string, len(moves))
	for i, m := range moves {
		parts[i] = m.Notation(size)
	}

	return strings.Join(parts, " ")
}

// InverseSequence returns the moves that undo the given sequence.
func InverseSequence(moves []Move) []Move {
	inv := make([]Move, len(moves))
	for i, m := range moves {
		inv[len(moves)-1-i] = m.Inverse()
	}
	return inv
}
