// Package gocube3d is the rotation core of a 3D Rubik's Cube game.
//
// It turns a pointer drag into either an orbit of the whole puzzle or a
// quarter turn of one layer, animates the turn tick by tick, keeps an undo
// history and detects when a shuffled cube has been solved. Rendering and
// windowing stay with the host; the core only needs a Projector for
// screen-to-world mapping and a per-frame delta time.
//
// # Features
//
//   - Pose arena of 27 pieces, no scene graph
//   - Orbit / layer-turn / tap classification with boundary disambiguation
//   - Resumable turn animation with lattice snapping
//   - Shuffle, undo, pause and a solve timer
//   - Standard notation including M, E and S slices
//
// # Quick Start
//
//	cam := gocube3d.NewCamera(800, 600)
//	ctrl, err := gocube3d.NewController(cam)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	ctrl.OnSolved(func(e gocube3d.SolveEvent) {
//	    fmt.Println("Solved in", gocube3d.FormatElapsed(e.Elapsed))
//	})
//
//	// every frame
//	ctrl.Begin(press)     // on pointer down
//	ctrl.Continue(drag)   // while held
//	ctrl.End(release)     // on pointer up
//	ctrl.Tick(frameTime)
//
// # Notation
//
// Turns can also be driven from notation:
//
//	moves, _ := gocube3d.ParseMoves("R U R' U'")
//	for _, m := range moves {
//	    ctrl.ApplyMove(m)
//	    for ctrl.Busy() {
//	        ctrl.Tick(16 * time.Millisecond)
//	    }
//	}
//	fmt.Print(ctrl.Cube().Net())
package gocube3d
