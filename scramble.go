package cubegame

import "math/rand/v2"

// ScrambleLength returns how many moves a scramble of the given size uses.
func ScrambleLength(size int) int {
	return max(20, 8*size)
}

// GenerateScramble returns a random scramble for a cube of the given size.
// Every (axis, layer) pair is eligible, including inner layers, and no move
// turns the same layer as the move before it.
// A nil rng uses a randomly seeded source.
func GenerateScramble(size int, rng *rand.Rand) []Move {
	if size < MinSize || size > MaxSize {
		return nil
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	half := halfExtent(size)
	n := ScrambleLength(size)
	moves := make([]Move, 0, n)

	for len(moves) < n {
		m := Move{
			Axis:      Axes[rng.IntN(len(Axes))],
			Layer:     float64(rng.IntN(size)) - half,
			Direction: CW,
		}
		if rng.IntN(2) == 0 {
			m.Direction = CCW
		}
		if len(moves) > 0 && m.SameLayer(moves[len(moves)-1]) {
			continue
		}
		moves = append(moves, m)
	}

	return moves
}
