package geometry

import "fmt"

// Position is a cell coordinate. X grows to the right, Y grows down.
type Position struct {
	X, Y int
}

// Add returns p translated by o.
func (p Position) Add(o Position) Position {
	return Position{X: p.X + o.X, Y: p.Y + o.Y}
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Size is the dimension of the grid in cells.
type Size struct {
	Width  int
	Height int
}

// Contains reports whether p is a cell of the grid.
func (s Size) Contains(p Position) bool {
	return p.X >= 0 && p.X < s.Width && p.Y >= 0 && p.Y < s.Height
}

// OccupiedCells returns the absolute cells covered by shape when its top-left
// corner sits at origin.
func OccupiedCells(shape Shape, origin Position) []Position {
	cells := make([]Position, len(shape.offsets))
	for i, off := range shape.offsets {
		cells[i] = origin.Add(off)
	}
	return cells
}

// Overlaps reports whether the two cell sets share at least one cell.
func Overlaps(a, b []Position) bool {
	if len(a) > len(b) {
		a, b = b, a
	}
	if len(a) == 0 {
		return false
	}
	seen := make(map[Position]struct{}, len(a))
	for _, c := range a {
		seen[c] = struct{}{}
	}
	for _, c := range b {
		if _, ok := seen[c]; ok {
			return true
		}
	}
	return false
}

// WithinBounds reports whether every cell lies inside the grid.
func WithinBounds(cells []Position, size Size) bool {
	for _, c := range cells {
		if !size.Contains(c) {
			return false
		}
	}
	return true
}

// Rect is an axis-aligned box of cells with inclusive corners.
type Rect struct {
	Min Position
	Max Position
}

// NormalizeRect returns the rectangle spanned by two corner cells given in
// any order.
func NormalizeRect(a, b Position) Rect {
	return Rect{
		Min: Position{X: min(a.X, b.X), Y: min(a.Y, b.Y)},
		Max: Position{X: max(a.X, b.X), Y: max(a.Y, b.Y)},
	}
}

// Contains reports whether p lies inside r, edges included.
func (r Rect) Contains(p Position) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// Intersects reports whether any of the cells lies inside r.
func (r Rect) Intersects(cells []Position) bool {
	for _, c := range cells {
		if r.Contains(c) {
			return true
		}
	}
	return false
}

// Width returns the number of columns covered by r.
func (r Rect) Width() int { return r.Max.X - r.Min.X + 1 }

// Height returns the number of rows covered by r.
func (r Rect) Height() int { return r.Max.Y - r.Min.Y + 1 }
