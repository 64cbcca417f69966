package cubegame

// Predefined quarter turns for a 3×3×3 cube.
// Use FaceMove for other sizes.
//
// Example:
//
//	cube.ApplyMoves([]cubegame.Move{cubegame.R, cubegame.U, cubegame.RPrime, cubegame.UPrime})
var (
	// Right face moves
	R      = Move{Axis: AxisX, Layer: 1, Direction: CW}  // Right clockwise
	RPrime = Move{Axis: AxisX, Layer: 1, Direction: CCW} // Right counter-clockwise

	// Left face moves
	L      = Move{Axis: AxisX, Layer: -1, Direction: CW}
	LPrime = Move{Axis: AxisX, Layer: -1, Direction: CCW}

	// Up face moves
	U      = Move{Axis: AxisY, Layer: 1, Direction: CW}
	UPrime = Move{Axis: AxisY, Layer: 1, Direction: CCW}

	// Down face moves
	D      = Move{Axis: AxisY, Layer: -1, Direction: CW}
	DPrime = Move{Axis: AxisY, Layer: -1, Direction: CCW}

	// Front face moves
	F      = Move{Axis: AxisZ, Layer: 1, Direction: CW}
	FPrime = Move{Axis: AxisZ, Layer: 1, Direction: CCW}

	// Back face moves
	B      = Move{Axis: AxisZ, Layer: -1, Direction: CW}
	BPrime = Move{Axis: AxisZ, Layer: -1, Direction: CCW}

	// Middle slices, turning with L, D and F
	M = Move{Axis: AxisX, Layer: 0, Direction: CCW}
	E = Move{Axis: AxisY, Layer: 0, Direction: CCW}
	S = Move{Axis: AxisZ, Layer: 0, Direction: CW}
)

// Sexy move: R U R' U'
var SexyMove = []Move{R, U, RPrime, UPrime}

// Inverse sexy move: U R U' R'
var InverseSexyMove = []Move{U, R, UPrime, RPrime}
