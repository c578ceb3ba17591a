package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	bferrors "github.com/matzehuels/blockfall/pkg/errors"
	"github.com/matzehuels/blockfall/pkg/config"
	"github.com/matzehuels/blockfall/pkg/game"
	"github.com/matzehuels/blockfall/pkg/script"
	"github.com/matzehuels/blockfall/pkg/store"
)

// Output formats for the run command.
const (
	formatText = "text"
	formatJSON = "json"
)

// runOptions holds flags for the run command.
type runOptions struct {
	seed      uint64
	width     int
	height    int
	setWidth  bool
	setHeight bool
	format    string
	save      string
	resume    string
}

// runReport is the JSON form of a finished run.
type runReport struct {
	Seed      uint64            `json:"seed"`
	Config    game.Config       `json:"config"`
	Calls     int               `json:"calls"`
	Moves     int               `json:"moves"`
	Snapshots []script.Snapshot `json:"snapshots"`
	Final     game.State        `json:"final"`
	SaveID    string            `json:"save_id,omitempty"`
}

// runCommand creates the run command.
func (c *CLI) runCommand() *cobra.Command {
	var opts runOptions

	cmd := &cobra.Command{
		Use:   "run [script]",
		Short: "Run a command script against a new or saved game",
		Long: `Run a command script against a game session and print the result.

The script is read from the given file, or from stdin when the argument is "-".
Without a script the initial session is printed. Commands are separated by
whitespace and '#' starts a comment:

  start left*2 rotate drop state

Commands: start, pause, reset, left (l), right (r), down (d), rotate (u),
drop (x) and state (s). Append *N to repeat a command N times.`,
		Example: `  # Run a script with a fixed seed
  blockfall run moves.txt --seed 42

  # Pipe commands and get JSON
  echo "start drop drop" | blockfall run - --format json

  # Continue a saved game and save the result
  blockfall run more.txt --resume 3f2a --save "after level 2"`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var src string
			if len(args) == 1 {
				src = args[0]
			}
			opts.setWidth = cmd.Flags().Changed("width")
			opts.setHeight = cmd.Flags().Changed("height")
			return c.runRun(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), src, opts)
		},
	}

	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "seed for piece selection (0 uses the config seed, or a random one)")
	cmd.Flags().IntVar(&opts.width, "width", 0, "board width (overrides config)")
	cmd.Flags().IntVar(&opts.height, "height", 0, "board height (overrides config)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", formatText, "output format: text or json")
	cmd.Flags().StringVar(&opts.save, "save", "", "save the final session under this name")
	cmd.Flags().StringVar(&opts.resume, "resume", "", "resume from a save slot (ID, ID prefix or name)")

	return cmd
}

func (c *CLI) runRun(ctx context.Context, stdin io.Reader, out io.Writer, src string, opts runOptions) error {
	logger := loggerFromContext(ctx)

	if opts.format != formatText && opts.format != formatJSON {
		return bferrors.New(bferrors.ErrCodeInvalidInput, "unknown format %q (want text or json)", opts.format)
	}

	f, err := c.loadConfig()
	if err != nil {
		return err
	}

	steps, err := readScript(stdin, src)
	if err != nil {
		return err
	}
	logger.Debug("script parsed", "steps", len(steps), "calls", steps.Len())

	if opts.resume != "" && (opts.setWidth || opts.setHeight) {
		logger.Warn("--width and --height are ignored when resuming; the saved board size is used")
	}

	var saves store.Store
	if opts.resume != "" || opts.save != "" {
		saves, err = c.openStore(ctx, f)
		if err != nil {
			return err
		}
		defer saves.Close()
	}

	e, err := newEngine(ctx, f, saves, opts)
	if err != nil {
		return err
	}

	prog := newProgress(logger)
	res, err := script.Run(ctx, e, steps)
	if err != nil {
		return err
	}
	prog.done("script finished", "calls", res.Calls, "moves", res.Moves, "status", res.Final.Status)

	report := runReport{
		Seed:      e.Seed(),
		Config:    e.Config(),
		Calls:     res.Calls,
		Moves:     res.Moves,
		Snapshots: res.Snapshots,
		Final:     res.Final,
	}

	if opts.save != "" {
		rec, err := store.NewRecord(opts.save, e.Config(), e.Seed(), res.Final)
		if err != nil {
			return err
		}
		if err := saves.Save(ctx, rec); err != nil {
			return err
		}
		report.SaveID = rec.ID
	}

	if opts.format == formatJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}
	printReport(report)
	return nil
}

// newEngine builds a fresh engine from the config, or restores one from a
// save slot when resuming.
func newEngine(ctx context.Context, f *config.File, saves store.Store, opts runOptions) (*game.Engine, error) {
	catalog, err := f.Catalog()
	if err != nil {
		return nil, err
	}
	engineOpts := []game.Option{game.WithCatalog(catalog)}

	seed := opts.seed
	if seed == 0 {
		seed = f.Game.Seed
	}
	if seed != 0 {
		engineOpts = append(engineOpts, game.WithSeed(seed))
	}

	if opts.resume != "" {
		rec, err := loadRecord(ctx, saves, opts.resume)
		if err != nil {
			return nil, err
		}
		loggerFromContext(ctx).Debug("resuming", "id", rec.ID, "name", rec.Name)
		return rec.Restore(engineOpts...)
	}

	cfg := f.GameConfig()
	if opts.setWidth {
		cfg.Width = opts.width
	}
	if opts.setHeight {
		cfg.Height = opts.height
	}
	return game.New(cfg, engineOpts...)
}

// readScript parses the script at path, or stdin for "-". An empty path is an
// empty script.
func readScript(stdin io.Reader, path string) (script.Script, error) {
	switch path {
	case "":
		return nil, nil
	case "-":
		return script.Parse(stdin)
	}
	if err := bferrors.ValidatePath(path); err != nil {
		return nil, err
	}
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, bferrors.New(bferrors.ErrCodeFileNotFound, "script not found: %s", path)
		}
		return nil, fmt.Errorf("open script: %w", err)
	}
	defer file.Close()

	s, err := script.Parse(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// printReport prints the snapshots and final state of a run.
func printReport(r runReport) {
	for i, snap := range r.Snapshots {
		fmt.Fprintln(stdout, StyleTitle.Render(fmt.Sprintf("Snapshot %d", i+1))+StyleDim.Render(fmt.Sprintf(" (line %d)", snap.Line)))
		printState(snap.State)
		printNewline()
	}

	fmt.Fprintln(stdout, StyleTitle.Render("Final"))
	printState(r.Final)
	printDetail("%d commands, %d moves, seed %d", r.Calls, r.Moves, r.Seed)
	if r.Final.Status == game.StatusOver {
		printWarning("Game over at level %d", r.Final.Level)
	}

	if r.SaveID != "" {
		printNewline()
		printSuccess("Saved as %s", StyleHighlight.Render(r.SaveID))
		printNextStep("Resume with", fmt.Sprintf("%s run --resume %s", appName, r.SaveID))
	}
}
