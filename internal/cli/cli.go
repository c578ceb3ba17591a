package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/matzehuels/blockfall/pkg/buildinfo"
	"github.com/matzehuels/blockfall/pkg/config"
	"github.com/matzehuels/blockfall/pkg/store"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "blockfall"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Blockfall runs falling-block puzzle games from scripts",
		Long:         `Blockfall is a headless falling-block puzzle engine. It replays command scripts against a game session, prints the resulting board and score, and keeps snapshots in save slots.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			// Styled output and machine output share the command's writer.
			stdout = cmd.OutOrStdout()
			newLogHooks(c.Logger).install()
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "config file (default $XDG_CONFIG_HOME/blockfall/config.toml)")

	// Register all subcommands
	root.AddCommand(c.runCommand())
	root.AddCommand(c.catalogCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.savesCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Config and Store
// =============================================================================

// loadConfig reads the file named by --config, or the default config file
// when present.
func (c *CLI) loadConfig() (*config.File, error) {
	if c.configPath != "" {
		f, err := config.Load(c.configPath)
		if err != nil {
			return nil, err
		}
		c.Logger.Debug("config loaded", "path", c.configPath)
		return f, nil
	}
	f, path, err := config.LoadDefault()
	if err != nil {
		return nil, err
	}
	if path != "" {
		c.Logger.Debug("config loaded", "path", path)
	}
	return f, nil
}

// openStore opens the configured save-slot backend. Remote backends show a
// spinner while connecting.
func (c *CLI) openStore(ctx context.Context, f *config.File) (store.Store, error) {
	cfg := f.StoreConfig()
	switch cfg.Backend {
	case store.BackendRedis, store.BackendMongo:
		spin := newSpinnerWithContext(ctx, fmt.Sprintf("Connecting to %s...", cfg.Backend))
		spin.Start()
		s, err := store.Open(ctx, cfg)
		spin.Stop()
		if err != nil {
			return nil, err
		}
		c.Logger.Debug("store opened", "backend", cfg.Backend)
		return s, nil
	default:
		return store.Open(ctx, cfg)
	}
}

// saveDir returns the directory the file backend writes to.
func saveDir(f *config.File) (string, error) {
	if f.Store.Dir != "" {
		return f.Store.Dir, nil
	}
	return store.DefaultDir()
}

// isTerminal reports whether f is an interactive terminal.
func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
