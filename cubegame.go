// Package cubegame provides the logical model of an N×N×N twisty puzzle
// (2×2×2 up to 7×7×7): piece positions and orientations, a queued move
// executor with eased animation, a gesture resolver that turns a 2D drag on a
// projected cube into a layer turn, scrambling and move notation.
//
// # Features
//
//   - Cube state for sizes 2 through 7 with exact solved detection
//   - FIFO move queue, one rotation in flight at a time
//   - Drag-to-move inference from a hit-test and a camera projection
//   - Scramble generation and R/L/U/D/F/B, M/E/S notation
//   - Undo, move history and a solve timer
//
// # Quick Start
//
//	engine, err := cubegame.NewEngine(3)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	engine.OnMoveRecorded(func(notation string, count int) {
//	    fmt.Println(count, notation)
//	})
//	engine.OnSolved(func() {
//	    fmt.Println("Solved!")
//	})
//
//	engine.Submit(cubegame.R)
//	engine.Submit(cubegame.U)
//
//	// Advance animations from the render loop...
//	engine.Tick(16 * time.Millisecond)
//
//	// ...or finish everything at once when headless.
//	engine.Flush()
//
// # Gestures
//
// A renderer hands the engine what it hit and how far the pointer moved:
//
//	hit := cubegame.Hit{Piece: piecePos, Point: hitPoint, Normal: faceNormal}
//	if m, ok := engine.Drag(hit, dragPixels, camera.Project); ok {
//	    fmt.Println("turning", m.Notation(engine.Size()))
//	}
//
// A declined gesture is normal: the caller should treat the drag as a camera
// orbit instead.
package cubegame
