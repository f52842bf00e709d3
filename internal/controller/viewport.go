package controller

import "pegboard/internal/geometry"

// Viewport maps pointer coordinates onto grid cells. OriginX/OriginY is where
// cell (0,0) starts; cells are CellWidth by CellHeight pointer units.
type Viewport struct {
	OriginX    int
	OriginY    int
	CellWidth  int
	CellHeight int
}

// ToGrid returns the cell under the pointer, rounding toward negative
// infinity so that points left of or above the grid map to negative cells.
func (v Viewport) ToGrid(x, y int) geometry.Position {
	return geometry.Position{
		X: floorDiv(x-v.OriginX, v.CellWidth),
		Y: floorDiv(y-v.OriginY, v.CellHeight),
	}
}

// FromGrid returns the pointer coordinate of the top-left corner of p.
func (v Viewport) FromGrid(p geometry.Position) (x, y int) {
	return v.OriginX + p.X*v.CellWidth, v.OriginY + p.Y*v.CellHeight
}

func floorDiv(a, b int) int {
	if b <= 0 {
		b = 1
	}
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
