package engine

// Geometry places the 3x3 board on screen: the top-left corner of the grid
// and the side of one square cell, in pixels.
type Geometry struct {
	Left int
	Top  int
	Cell int
}

// DefaultGeometry is a 300 pixel board 40 pixels from the left edge and
// 150 pixels from the top.
var DefaultGeometry = Geometry{Left: 40, Top: 150, Cell: 100}

// CellAt translates a pointer position into a cell index. Points on the
// outer border or outside the board are rejected.
func (g Geometry) CellAt(x, y int) (int, bool) {
	size := 3 * g.Cell
	if g.Cell <= 0 || x <= g.Left || x >= g.Left+size || y <= g.Top || y >= g.Top+size {
		return -1, false
	}
	col := (x - g.Left) / g.Cell
	row := (y - g.Top) / g.Cell
	return row*3 + col, true
}
