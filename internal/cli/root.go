// Package cli implements the blockfall command-line interface.
//
// This package provides commands for running command scripts against a game
// engine, inspecting the piece catalog and configuration, and managing save
// slots. The CLI is built using cobra and supports verbose logging via the
// charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - run: Play a command script and print the resulting session
//   - catalog: Show the piece catalog
//   - config: Show, locate or initialise the configuration file
//   - saves: List, inspect, pick and delete save slots
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context; engine and store events are forwarded to
// the logger through observability hooks.
//
// # Example
//
//	import "github.com/matzehuels/blockfall/internal/cli"
//
//	func main() {
//	    c := cli.New(os.Stderr, cli.LogInfo)
//	    if err := c.RootCommand().Execute(); err != nil {
//	        os.Exit(1)
//	    }
//	}
package cli
