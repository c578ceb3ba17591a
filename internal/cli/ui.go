package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/blockfall/pkg/game"
)

// stdout is where status output goes. RootCommand points it at the
// command's output writer before any subcommand runs.
var stdout io.Writer = os.Stdout

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorBlue   = lipgloss.Color("75")  // Light blue - commands
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Public Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleHighlight for emphasized values.
	StyleHighlight = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleNumber for numeric values.
	StyleNumber = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleSuccess for success messages.
	StyleSuccess = lipgloss.NewStyle().Foreground(colorGreen)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

// =============================================================================
// Internal Styles
// =============================================================================

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleFrozen = lipgloss.NewStyle().Foreground(colorGray)
	styleEmpty  = lipgloss.NewStyle().Foreground(colorDim)
	styleBoard  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorDim)

	styleCommand = lipgloss.NewStyle().Foreground(colorBlue)
)

// statusStyles colors each lifecycle status.
var statusStyles = map[game.Status]lipgloss.Style{
	game.StatusReady:   lipgloss.NewStyle().Foreground(colorGray),
	game.StatusPlaying: lipgloss.NewStyle().Foreground(colorGreen),
	game.StatusPaused:  lipgloss.NewStyle().Foreground(colorYellow),
	game.StatusOver:    lipgloss.NewStyle().Foreground(colorRed).Bold(true),
}

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
)

// Board cells are two columns wide so the field looks square in a terminal.
const (
	cellFilled = "[]"
	cellEmpty  = " ."
)

// =============================================================================
// Status Output
// =============================================================================

// printSuccess prints a success message.
func printSuccess(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(stdout, styleIconSuccess.Render(iconSuccess)+" "+msg)
}

// printError prints an error message.
func printError(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(stdout, styleIconError.Render(iconError)+" "+msg)
}

// printWarning prints a warning message.
func printWarning(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(stdout, styleIconWarning.Render(iconWarning)+" "+StyleWarning.Render(msg))
}

// printInfo prints an info/status message.
func printInfo(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(stdout, styleIconInfo.Render(iconInfo)+" "+msg)
}

// printDetail prints a detail line (indented).
func printDetail(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(stdout, "  "+StyleDim.Render(msg))
}

// =============================================================================
// Key-Value Output
// =============================================================================

// printKeyValue prints a labeled value.
func printKeyValue(key, value string) {
	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(12)
	fmt.Fprintln(stdout, keyStyle.Render(key)+" "+StyleValue.Render(value))
}

// =============================================================================
// Game Display
// =============================================================================

// renderBoard draws the board in a rounded frame. Frozen cells are gray and
// the active piece is drawn in its own color.
func renderBoard(st game.State) string {
	active := make(map[game.Cell]bool)
	var pieceStyle lipgloss.Style
	if st.Current != nil {
		pieceStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(st.Current.Color)).Bold(true)
		for _, c := range st.Current.Cells(0, 0) {
			active[c] = true
		}
	}

	rows := make([]string, len(st.Board))
	for y, row := range st.Board {
		var b strings.Builder
		for x, filled := range row {
			switch {
			case active[game.Cell{X: x, Y: y}]:
				b.WriteString(pieceStyle.Render(cellFilled))
			case filled:
				b.WriteString(styleFrozen.Render(cellFilled))
			default:
				b.WriteString(styleEmpty.Render(cellEmpty))
			}
		}
		rows[y] = b.String()
	}
	return styleBoard.Render(strings.Join(rows, "\n"))
}

// renderStatus renders a status in its color.
func renderStatus(s game.Status) string {
	if style, ok := statusStyles[s]; ok {
		return style.Render(string(s))
	}
	return string(s)
}

// printTally prints the score line for a state.
func printTally(st game.State) {
	next := "-"
	if st.Next != nil {
		next = st.Next.Kind
	}
	parts := []string{
		StyleNumber.Render(fmt.Sprintf("%d", st.Score)) + StyleDim.Render(" points"),
		StyleDim.Render("level ") + StyleNumber.Render(fmt.Sprintf("%d", st.Level)),
		StyleNumber.Render(fmt.Sprintf("%d", st.Lines)) + StyleDim.Render(" lines"),
		StyleDim.Render("next ") + StyleValue.Render(next),
		renderStatus(st.Status),
	}
	fmt.Fprintln(stdout, "  "+strings.Join(parts, StyleDim.Render(" · ")))
}

// printState prints the framed board followed by its tally.
func printState(st game.State) {
	fmt.Fprintln(stdout, renderBoard(st))
	printTally(st)
}

// =============================================================================
// Commands & Next Steps
// =============================================================================

// printNextStep prints a suggested next command.
func printNextStep(description, cmd string) {
	fmt.Fprintln(stdout, StyleDim.Render(description+":")+" "+styleCommand.Render(cmd))
}

// =============================================================================
// Utilities
// =============================================================================

// printFile prints a file output line.
func printFile(path string) {
	fmt.Fprintln(stdout, "  "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(path))
}

// printNewline prints an empty line.
func printNewline() {
	fmt.Fprintln(stdout)
}
