package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	bferrors "github.com/matzehuels/blockfall/pkg/errors"
	"github.com/matzehuels/blockfall/pkg/store"
)

// savesCommand creates the save slot management command.
func (c *CLI) savesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "saves",
		Aliases: []string{"save"},
		Short:   "Manage save slots",
		Long: `Manage save slots written by "run --save".

Slots are addressed by ID, by a unique ID prefix, or by name.`,
	}

	cmd.AddCommand(c.savesListCommand())
	cmd.AddCommand(c.savesShowCommand())
	cmd.AddCommand(c.savesDeleteCommand())
	cmd.AddCommand(c.savesPickCommand())
	cmd.AddCommand(c.savesPathCommand())

	return cmd
}

// withStore loads the config, opens the store and hands it to fn.
func (c *CLI) withStore(ctx context.Context, fn func(store.Store) error) error {
	f, err := c.loadConfig()
	if err != nil {
		return err
	}
	s, err := c.openStore(ctx, f)
	if err != nil {
		return err
	}
	defer s.Close()
	return fn(s)
}

// savesListCommand creates the "saves list" subcommand.
func (c *CLI) savesListCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List save slots, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withStore(cmd.Context(), func(s store.Store) error {
				list, err := s.List(cmd.Context())
				if err != nil {
					return err
				}
				if format == formatJSON {
					enc := json.NewEncoder(cmd.OutOrStdout())
					enc.SetIndent("", "  ")
					return enc.Encode(list)
				}
				if len(list) == 0 {
					printInfo("No saves yet")
					printNextStep("Create one with", appName+" run moves.txt --save NAME")
					return nil
				}
				fmt.Fprintln(stdout, savesTable(list, -1).Render())
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", formatText, "output format: text or json")
	return cmd
}

// savesShowCommand creates the "saves show" subcommand.
func (c *CLI) savesShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <save>",
		Short: "Show a save slot and its board",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withStore(cmd.Context(), func(s store.Store) error {
				rec, err := loadRecord(cmd.Context(), s, args[0])
				if err != nil {
					return err
				}
				printRecord(rec)
				return nil
			})
		},
	}
}

// savesDeleteCommand creates the "saves delete" subcommand.
func (c *CLI) savesDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "delete <save>...",
		Aliases: []string{"rm"},
		Short:   "Delete save slots",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return c.withStore(ctx, func(s store.Store) error {
				for _, ref := range args {
					id, err := resolveSaveID(ctx, s, ref)
					if err != nil {
						return err
					}
					if err := s.Delete(ctx, id); err != nil {
						if errors.Is(err, store.ErrNotFound) {
							return bferrors.Wrap(bferrors.ErrCodeSaveNotFound, err, "save %s", ref)
						}
						return err
					}
					printSuccess("Deleted %s", id)
				}
				return nil
			})
		},
	}
}

// savesPickCommand creates the "saves pick" subcommand.
func (c *CLI) savesPickCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "pick",
		Short: "Choose a save slot interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return c.withStore(ctx, func(s store.Store) error {
				list, err := s.List(ctx)
				if err != nil {
					return err
				}
				if len(list) == 0 {
					printInfo("No saves yet")
					return nil
				}
				if !isTerminal(os.Stdin) {
					return bferrors.New(bferrors.ErrCodeUnsupported, "saves pick needs an interactive terminal; use saves list instead")
				}

				final, err := tea.NewProgram(NewSaveListModel(list), tea.WithContext(ctx)).Run()
				if err != nil {
					return fmt.Errorf("save picker: %w", err)
				}
				picked := final.(SaveListModel).Selected
				if picked == nil {
					return nil
				}

				rec, err := s.Load(ctx, picked.ID)
				if err != nil {
					return err
				}
				printRecord(rec)
				printNewline()
				printNextStep("Resume with", fmt.Sprintf("%s run --resume %s", appName, rec.ID))
				return nil
			})
		},
	}
}

// savesPathCommand creates the "saves path" subcommand.
func (c *CLI) savesPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the save directory path",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := c.loadConfig()
			if err != nil {
				return err
			}
			if b := f.Store.Backend; b != "" && b != store.BackendFile {
				return bferrors.New(bferrors.ErrCodeUnsupported, "the %s backend does not keep saves on disk", b)
			}
			dir, err := saveDir(f)
			if err != nil {
				return fmt.Errorf("get save dir: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), dir)
			return nil
		},
	}
}

// resolveSaveID turns a user reference into a slot ID. A full ID is used as
// is; otherwise the reference must match exactly one slot name or ID prefix.
func resolveSaveID(ctx context.Context, s store.Store, ref string) (string, error) {
	if bferrors.ValidateSaveID(ref) == nil {
		return ref, nil
	}
	if strings.TrimSpace(ref) == "" {
		return "", bferrors.New(bferrors.ErrCodeInvalidInput, "save reference cannot be empty")
	}

	list, err := s.List(ctx)
	if err != nil {
		return "", err
	}
	var matches []store.Summary
	for _, sum := range list {
		if sum.Name == ref || strings.HasPrefix(sum.ID, strings.ToLower(ref)) {
			matches = append(matches, sum)
		}
	}
	switch len(matches) {
	case 0:
		return "", bferrors.New(bferrors.ErrCodeSaveNotFound, "no save matches %q", ref)
	case 1:
		return matches[0].ID, nil
	default:
		ids := make([]string, len(matches))
		for i, m := range matches {
			ids[i] = m.ID
		}
		return "", bferrors.New(bferrors.ErrCodeInvalidInput, "%q matches %d saves: %s", ref, len(matches), strings.Join(ids, ", "))
	}
}

// loadRecord resolves ref and loads the slot.
func loadRecord(ctx context.Context, s store.Store, ref string) (*store.Record, error) {
	id, err := resolveSaveID(ctx, s, ref)
	if err != nil {
		return nil, err
	}
	rec, err := s.Load(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, bferrors.Wrap(bferrors.ErrCodeSaveNotFound, err, "save %s", ref)
	}
	return rec, err
}

// printRecord prints slot metadata followed by its board.
func printRecord(rec *store.Record) {
	fmt.Fprintln(stdout, StyleTitle.Render(rec.Name))
	printKeyValue("ID", rec.ID)
	printKeyValue("Created", rec.CreatedAt.Local().Format("2006-01-02 15:04:05"))
	printKeyValue("Board", fmt.Sprintf("%dx%d", rec.Config.Width, rec.Config.Height))
	printKeyValue("Seed", fmt.Sprintf("%d", rec.Seed))
	printNewline()
	printState(rec.State)
}

// savesTable renders summaries as a table. The row at cursor (if any) is
// highlighted.
func savesTable(list []store.Summary, cursor int) *table.Table {
	rows := make([][]string, len(list))
	for i, s := range list {
		rows[i] = []string{
			shortID(s.ID),
			s.Name,
			fmt.Sprintf("%d", s.Score),
			fmt.Sprintf("%d", s.Level),
			fmt.Sprintf("%d", s.Lines),
			string(s.Status),
			formatRelativeTime(s.CreatedAt),
		}
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("ID", "Name", "Score", "Level", "Lines", "Status", "Saved").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			base := lipgloss.NewStyle().Padding(0, 1)
			if row == cursor {
				return base.Foreground(colorCyan).Bold(true)
			}
			switch col {
			case 0, 6:
				return base.Foreground(colorDim)
			case 2, 3, 4:
				return base.Foreground(colorCyan)
			case 5:
				if style, ok := statusStyles[list[row].Status]; ok {
					return style.Padding(0, 1)
				}
			}
			return base
		})
}

// shortID returns the first block of a UUID, enough to address a slot.
func shortID(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return id[:i]
	}
	return id
}
