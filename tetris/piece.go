package tetris

// Cell is a block offset inside a piece, or a board coordinate.
type Cell struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Piece is a tetromino shape and its color.
type Piece struct {
	Shape []Cell `json:"shape"`
	Color string `json:"color"`
}

// Tetrominoes are the seven standard pieces.
var Tetrominoes = []Piece{
	{Shape: []Cell{{0, 1}, {1, 1}, {2, 1}, {3, 1}}, Color: "#00eaff"},
	{Shape: []Cell{{0, 0}, {0, 1}, {1, 1}, {2, 1}}, Color: "#294cfc"},
	{Shape: []Cell{{2, 0}, {0, 1}, {1, 1}, {2, 1}}, Color: "#ffb500"},
	{Shape: []Cell{{1, 0}, {2, 0}, {1, 1}, {2, 1}}, Color: "#ffe800"},
	{Shape: []Cell{{1, 0}, {2, 0}, {0, 1}, {1, 1}}, Color: "#39ff14"},
	{Shape: []Cell{{1, 0}, {0, 1}, {1, 1}, {2, 1}}, Color: "#ff2fd3"},
	{Shape: []Cell{{0, 0}, {1, 0}, {1, 1}, {2, 1}}, Color: "#ff5555"},
}

func (p Piece) clone() Piece {
	shape := make([]Cell, len(p.Shape))
	copy(shape, p.Shape)
	return Piece{Shape: shape, Color: p.Color}
}

// Rotated returns the piece turned a quarter, (x, y) -> (y, -x).
func (p Piece) Rotated() Piece {
	shape := make([]Cell, len(p.Shape))
	for i, c := range p.Shape {
		shape[i] = Cell{X: c.Y, Y: -c.X}
	}
	return Piece{Shape: shape, Color: p.Color}
}
