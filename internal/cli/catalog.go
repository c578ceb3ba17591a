package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/blockfall/pkg/game"
)

// catalogCommand creates the catalog command.
func (c *CLI) catalogCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Show the piece catalog",
		Long: `Show the pieces new games draw from.

This is the standard seven-piece set unless the config file defines [[pieces]].`,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := c.loadConfig()
			if err != nil {
				return err
			}
			catalog, err := f.Catalog()
			if err != nil {
				return err
			}
			if format == formatJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(catalog)
			}
			fmt.Fprintln(stdout, catalogTable(catalog).Render())
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", formatText, "output format: text or json")
	return cmd
}

// catalogTable renders each kind with its color swatch and spawn shape.
func catalogTable(c game.Catalog) *table.Table {
	rows := make([][]string, len(c))
	for i, k := range c {
		rows[i] = []string{k.Name, k.Color, fmt.Sprintf("%dx%d", k.Shape.Size(), k.Shape.Size()), renderShape(k)}
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		BorderRow(true).
		Headers("Piece", "Color", "Size", "Shape").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle.Padding(0, 1)
			}
			base := lipgloss.NewStyle().Padding(0, 1)
			switch col {
			case 0:
				return base.Bold(true)
			case 1:
				return base.Foreground(lipgloss.Color(c[row].Color))
			case 2:
				return base.Foreground(colorDim)
			}
			return base
		})
}

// renderShape draws a shape in the piece's color, trimming empty rows.
func renderShape(k game.Kind) string {
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(k.Color))
	var lines []string
	for _, row := range k.Shape {
		var b strings.Builder
		empty := true
		for _, filled := range row {
			if filled {
				b.WriteString(style.Render(cellFilled))
				empty = false
			} else {
				b.WriteString("  ")
			}
		}
		if !empty {
			lines = append(lines, strings.TrimRight(b.String(), " "))
		}
	}
	return strings.Join(lines, "\n")
}
