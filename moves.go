package gocube3d

// Predefined moves for convenience.
//
// Example:
//
//	for _, m := range []gocube3d.Move{gocube3d.R, gocube3d.U, gocube3d.RPrime} {
//		ctrl.ApplyMove(m)
//		for ctrl.Busy() {
//			ctrl.Tick(16 * time.Millisecond)
//		}
//	}
var (
	R      = Move{Face: FaceR, Turn: CW}
	RPrime = Move{Face: FaceR, Turn: CCW}
	R2     = Move{Face: FaceR, Turn: Double}

	L      = Move{Face: FaceL, Turn: CW}
	LPrime = Move{Face: FaceL, Turn: CCW}
	L2     = Move{Face: FaceL, Turn: Double}

	U      = Move{Face: FaceU, Turn: CW}
	UPrime = Move{Face: FaceU, Turn: CCW}
	U2     = Move{Face: FaceU, Turn: Double}

	D      = Move{Face: FaceD, Turn: CW}
	DPrime = Move{Face: FaceD, Turn: CCW}
	D2     = Move{Face: FaceD, Turn: Double}

	F      = Move{Face: FaceF, Turn: CW}
	FPrime = Move{Face: FaceF, Turn: CCW}
	F2     = Move{Face: FaceF, Turn: Double}

	B      = Move{Face: FaceB, Turn: CW}
	BPrime = Move{Face: FaceB, Turn: CCW}
	B2     = Move{Face: FaceB, Turn: Double}

	M      = Move{Face: FaceM, Turn: CW}
	MPrime = Move{Face: FaceM, Turn: CCW}
	M2     = Move{Face: FaceM, Turn: Double}

	E      = Move{Face: FaceE, Turn: CW}
	EPrime = Move{Face: FaceE, Turn: CCW}
	E2     = Move{Face: FaceE, Turn: Double}

	S      = Move{Face: FaceS, Turn: CW}
	SPrime = Move{Face: FaceS, Turn: CCW}
	S2     = Move{Face: FaceS, Turn: Double}
)

// SexyMove is R U R' U'.
var SexyMove = []Move{R, U, RPrime, UPrime}

// TPerm swaps two corners and two edges of the top layer.
var TPerm = []Move{R, U, RPrime, UPrime, RPrime, F, R2, UPrime, RPrime, UPrime, R, U, RPrime, FPrime}

// Checkerboard is the M2 E2 S2 pattern.
var Checkerboard = []Move{M2, E2, S2}
