package game

import "strings"

// Board is the grid of frozen cells, indexed [row][col] with row 0 at the top.
type Board [][]bool

// NewBoard returns an empty board of the given size.
func NewBoard(width, height int) Board {
	b := make(Board, height)
	for y := range b {
		b[y] = make([]bool, width)
	}
	return b
}

// Width returns the number of columns.
func (b Board) Width() int {
	if len(b) == 0 {
		return 0
	}
	return len(b[0])
}

// Height returns the number of rows.
func (b Board) Height() int { return len(b) }

// Occupied reports whether the cell at (x, y) is frozen. Coordinates outside
// the board are reported empty.
func (b Board) Occupied(x, y int) bool {
	if y < 0 || y >= len(b) || x < 0 || x >= len(b[y]) {
		return false
	}
	return b[y][x]
}

// Clone returns a deep copy.
func (b Board) Clone() Board {
	out := make(Board, len(b))
	for y, row := range b {
		out[y] = append([]bool(nil), row...)
	}
	return out
}

// Filled counts occupied cells.
func (b Board) Filled() int {
	n := 0
	for _, row := range b {
		for _, c := range row {
			if c {
				n++
			}
		}
	}
	return n
}

// rowFull reports whether every cell of row y is occupied.
func (b Board) rowFull(y int) bool {
	for _, c := range b[y] {
		if !c {
			return false
		}
	}
	return true
}

// clearLines removes every full row, shifting the rows above it down and
// inserting empty rows at the top. It returns the number of rows removed.
//
// Rows are scanned bottom to top. After a removal the same index is examined
// again, since it now holds the row that was above it.
func (b Board) clearLines() int {
	cleared := 0
	for y := len(b) - 1; y >= 0; {
		if !b.rowFull(y) {
			y--
			continue
		}
		width := len(b[y])
		copy(b[1:y+1], b[:y])
		b[0] = make([]bool, width)
		cleared++
	}
	return cleared
}

// String renders the board with '#' for frozen cells and '.' for empty ones.
func (b Board) String() string {
	return render(b, nil)
}

// render draws the board, overlaying the cells of p (if any) as '@'.
func render(b Board, p *Piece) string {
	grid := make([][]byte, len(b))
	for y, row := range b {
		grid[y] = make([]byte, len(row))
		for x, c := range row {
			if c {
				grid[y][x] = '#'
			} else {
				grid[y][x] = '.'
			}
		}
	}
	if p != nil {
		for _, c := range p.Cells(0, 0) {
			if c.Y >= 0 && c.Y < len(grid) && c.X >= 0 && c.X < len(grid[c.Y]) {
				grid[c.Y][c.X] = '@'
			}
		}
	}
	var sb strings.Builder
	for y, row := range grid {
		if y > 0 {
			sb.WriteByte('\n')
		}
		sb.Write(row)
	}
	return sb.String()
}
