// Package pkg provides the core libraries for blockfall, a headless
// falling-block puzzle engine.
//
// # Overview
//
// Blockfall models the rules of a classic falling-block game: a fixed grid,
// pieces that fall, rotate and lock, full rows that clear, and a score that
// drives the level. Everything that turns those rules into a playable game
// (drawing, key handling, the gravity timer) belongs to the caller. The pkg
// directory is organized into these areas:
//
//  1. [game] - The rules engine: board, pieces, collision, scoring, lifecycle
//  2. [script] - Textual command scripts for replaying sessions
//  3. [store] - Save slots for snapshots (file, Redis, MongoDB)
//  4. [config] - TOML configuration: board, catalog, storage
//  5. [errors], [observability], [buildinfo] - Cross-cutting support
//
// # Architecture
//
// The typical data flow through blockfall:
//
//	config.toml ──→ [config] ──→ game.Config + game.Catalog
//	                                  ↓
//	script text ──→ [script] ──→ [game].Engine ──→ game.State
//	                                  ↓
//	                              [store] save slot
//
// # Quick Start
//
// Play a few moves and inspect the result:
//
//	import (
//	    "context"
//	    "github.com/matzehuels/blockfall/pkg/game"
//	    "github.com/matzehuels/blockfall/pkg/script"
//	)
//
//	// 1. Build an engine
//	e, _ := game.New(game.DefaultConfig(), game.WithSeed(42))
//
//	// 2. Drive it directly...
//	e.Start()
//	e.Move(game.Left)
//	e.Rotate()
//	e.Drop()
//
//	// 3. ...or from a script
//	s, _ := script.ParseString("left*2 drop state")
//	res, _ := script.Run(context.Background(), e, s)
//
//	// 4. Read the snapshot
//	fmt.Println(res.Final.String())
//	fmt.Println(res.Final.Summary())
//
// # Main Packages
//
// [game] holds all gameplay. It never fails during play: commands outside
// the PLAYING status are ignored and an unplaceable spawn ends the game.
// Errors only come from construction (game.New and game.Restore).
//
// [script] parses whitespace-separated commands with optional "*N" repeats
// and applies them to an engine in order.
//
// [store] persists game.State snapshots behind a small interface with
// file, Redis, MongoDB and no-op backends.
//
// [config] decodes the TOML file and turns it into engine and store
// configuration.
//
// [errors] provides coded errors shared by all packages, and
// [observability] lets the CLI subscribe to engine and store events without
// the libraries depending on a logger.
//
// [game]: https://pkg.go.dev/github.com/matzehuels/blockfall/pkg/game
// [script]: https://pkg.go.dev/github.com/matzehuels/blockfall/pkg/script
// [store]: https://pkg.go.dev/github.com/matzehuels/blockfall/pkg/store
// [config]: https://pkg.go.dev/github.com/matzehuels/blockfall/pkg/config
// [errors]: https://pkg.go.dev/github.com/matzehuels/blockfall/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/blockfall/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/blockfall/pkg/buildinfo
package pkg
