// Package game implements the rules engine of a falling-block puzzle game.
//
// # Overview
//
// An [Engine] owns the playing field ([Board]), the active and queued pieces,
// collision detection, line clearing, scoring and the lifecycle [Status]. It
// exposes a small command surface consumed by an outer layer that handles
// input, rendering and timing:
//
//	e, err := game.New(game.DefaultConfig(), game.WithSeed(42))
//	if err != nil {
//	    return err
//	}
//	e.Start()
//	e.Move(game.Left)
//	e.Rotate()
//	e.Drop()
//	st := e.State()
//
// The engine never schedules anything itself. The caller decides when gravity
// applies by calling [Engine.Move] with [Down] at the configured fall speed.
//
// # Lifecycle
//
// Status moves between [StatusReady], [StatusPlaying], [StatusPaused] and
// [StatusOver]:
//
//   - [Engine.Start] moves any non-playing status to playing. This is also how
//     a paused game resumes.
//   - [Engine.Pause] moves a playing game to paused.
//   - A newly spawned piece that collides at its spawn position ends the game.
//   - [Engine.Reset] returns to ready with an empty board and a new piece pair.
//
// Movement, rotation and drops are silent no-ops unless the game is playing.
//
// # Coordinates
//
// Row 0 is the top of the board and y grows downward. A piece is anchored by
// the top-left corner of its square shape matrix. Cells above row 0 only
// collide with the side walls, which lets pieces spawn partly above the
// visible field. When a piece locks, cells still above the board are dropped.
//
// # Scoring
//
// Clearing 1, 2, 3 or 4 rows at once scores 40, 100, 300 or 1200 points times
// the current level. The level is recomputed after every score change as
// score/1000 + 1. Custom catalogs with shapes taller than four rows can clear
// more rows at once; those clears score as four.
//
// # Concurrency
//
// Engine is not safe for concurrent use. Callers serialise all calls. The
// [State] returned by [Engine.State] is a deep copy and may be retained or
// modified freely.
package game
