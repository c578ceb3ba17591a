package game

// Piece is a falling shape with its anchor in board coordinates.
// (X, Y) is the top-left corner of the shape matrix.
type Piece struct {
	Kind  string `json:"kind"`
	Shape Shape  `json:"shape"`
	Color string `json:"color"`
	X     int    `json:"x"`
	Y     int    `json:"y"`
}

// newPiece instantiates a kind at the given anchor with its own copy of the
// shape.
func newPiece(k Kind, x, y int) *Piece {
	return &Piece{
		Kind:  k.Name,
		Shape: k.Shape.Clone(),
		Color: k.Color,
		X:     x,
		Y:     y,
	}
}

// Clone returns a deep copy, or nil for a nil piece.
func (p *Piece) Clone() *Piece {
	if p == nil {
		return nil
	}
	c := *p
	c.Shape = p.Shape.Clone()
	return &c
}

// Cells returns the absolute board coordinates of every occupied cell,
// offset by (dx, dy).
func (p *Piece) Cells(dx, dy int) []Cell {
	var cells []Cell
	for row, line := range p.Shape {
		for col, filled := range line {
			if filled {
				cells = append(cells, Cell{X: p.X + col + dx, Y: p.Y + row + dy})
			}
		}
	}
	return cells
}

// rotated returns a candidate piece with the same anchor and color and the
// shape turned clockwise.
func (p *Piece) rotated() *Piece {
	return &Piece{
		Kind:  p.Kind,
		Shape: p.Shape.Rotate(),
		Color: p.Color,
		X:     p.X,
		Y:     p.Y,
	}
}

// Cell is a board coordinate.
type Cell struct {
	X int `json:"x"`
	Y int `json:"y"`
}
