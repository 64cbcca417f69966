package protocol

import (
	cubegame "github.com/trollgameskr/cube-game"
)

// ColorToFace maps GoCube color names to face notation.
// This mapping assumes the standard orientation: White on top, Green in front.
var ColorToFace = map[string]cubegame.Face{
	"white":  cubegame.FaceU,
	"yellow": cubegame.FaceD,
	"green":  cubegame.FaceF,
	"blue":   cubegame.FaceB,
	"red":    cubegame.FaceR,
	"orange": cubegame.FaceL,
}

// RotationToMove converts a rotation event to the equivalent outer-face move
// on a cube of the given size.
func RotationToMove(rot RotationEvent, size int) (cubegame.Move, bool) {
	face, ok := ColorToFace[rot.Color]
	if !ok {
		return cubegame.Move{}, false
	}
	dir := cubegame.CW
	if !rot.Clockwise {
		dir = cubegame.CCW
	}
	return cubegame.FaceMove(face, size, dir), true
}

// RotationsToMoves converts a batch of rotation events.
func RotationsToMoves(rotations []RotationEvent, size int) []cubegame.Move {
	moves := make([]cubegame.Move, 0, len(rotations))
	for _, rot := range rotations {
		if m, ok := RotationToMove(rot, size); ok {
			moves = append(moves, m)
		}
	}
	return moves
}
