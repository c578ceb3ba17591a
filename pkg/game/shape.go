package game

import (
	"strings"

	"github.com/matzehuels/blockfall/pkg/errors"
)

// Shape is a square bitmap of occupied cells, indexed [row][col].
type Shape [][]bool

// ParseShape builds a shape from text rows. '#', 'X', 'x' and '1' mark an
// occupied cell; '.', '0', '_' and ' ' mark an empty one.
func ParseShape(rows ...string) (Shape, error) {
	s := make(Shape, len(rows))
	for i, row := range rows {
		s[i] = make([]bool, 0, len(row))
		for _, r := range row {
			switch r {
			case '#', 'X', 'x', '1':
				s[i] = append(s[i], true)
			case '.', '0', '_', ' ':
				s[i] = append(s[i], false)
			default:
				return nil, errors.New(errors.ErrCodeInvalidCatalog, "shape row %d: unexpected character %q", i, r)
			}
		}
	}
	return s, nil
}

// MustParseShape is like ParseShape but panics on malformed input.
// It is intended for static tables.
func MustParseShape(rows ...string) Shape {
	s, err := ParseShape(rows...)
	if err != nil {
		panic(err)
	}
	return s
}

// Size returns the side length of the square matrix.
func (s Shape) Size() int { return len(s) }

// Clone returns a deep copy.
func (s Shape) Clone() Shape {
	if s == nil {
		return nil
	}
	out := make(Shape, len(s))
	for i, row := range s {
		out[i] = append([]bool(nil), row...)
	}
	return out
}

// Rotate returns the shape turned 90 degrees clockwise: the transpose with
// every row reversed. The receiver is left untouched.
func (s Shape) Rotate() Shape {
	if len(s) == 0 {
		return Shape{}
	}
	rows, cols := len(s), len(s[0])
	out := make(Shape, cols)
	for i := range out {
		out[i] = make([]bool, rows)
		for j := range rows {
			out[i][j] = s[rows-1-j][i]
		}
	}
	return out
}

// Equal reports whether two shapes have identical cells.
func (s Shape) Equal(o Shape) bool {
	if len(s) != len(o) {
		return false
	}
	for i := range s {
		if len(s[i]) != len(o[i]) {
			return false
		}
		for j := range s[i] {
			if s[i][j] != o[i][j] {
				return false
			}
		}
	}
	return true
}

// String renders the shape with '#' and '.' one row per line.
func (s Shape) String() string {
	var b strings.Builder
	for i, row := range s {
		if i > 0 {
			b.WriteByte('\n')
		}
		for _, c := range row {
			if c {
				b.WriteByte('#')
			} else {
				b.WriteByte('.')
			}
		}
	}
	return b.String()
}
