// Package geometry holds the grid primitives of the pegboard: cell positions,
// grid sizes, shape masks and the pure functions that translate a mask into
// occupied cells.
package geometry

import (
	"strings"

	"pegboard/internal/errors"
)

// Shape is a rectangular occupancy mask. Rows run top to bottom, columns left
// to right, and (0,0) is the top-left cell. A Shape is immutable: NewShape
// copies its input and nothing in this package writes to the mask afterwards,
// so values can be shared freely between items and snapshots.
type Shape struct {
	mask    [][]bool
	width   int
	offsets []Position // occupied cells relative to (0,0), row-major
}

// NewShape builds a Shape from rows of 0/1 values.
func NewShape(rows [][]int) (Shape, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return Shape{}, errors.New(errors.ErrCodeInvalidShape, "shape mask is empty")
	}

	width := len(rows[0])
	mask := make([][]bool, len(rows))
	var offsets []Position
	for y, row := range rows {
		if len(row) != width {
			return Shape{}, errors.New(errors.ErrCodeInvalidShape,
				"row %d has %d cells, want %d", y, len(row), width)
		}
		mask[y] = make([]bool, width)
		for x, v := range row {
			switch v {
			case 0:
			case 1:
				mask[y][x] = true
				offsets = append(offsets, Position{X: x, Y: y})
			default:
				return Shape{}, errors.New(errors.ErrCodeInvalidShape,
					"cell (%d,%d) has value %d, want 0 or 1", x, y, v)
			}
		}
	}
	if len(offsets) == 0 {
		return Shape{}, errors.New(errors.ErrCodeInvalidShape, "shape has no occupied cells")
	}

	return Shape{mask: mask, width: width, offsets: offsets}, nil
}

// MustShape is NewShape for literal masks known to be valid.
func MustShape(rows [][]int) Shape {
	s, err := NewShape(rows)
	if err != nil {
		panic(err)
	}
	return s
}

// Width returns the number of columns in the mask.
func (s Shape) Width() int { return s.width }

// Height returns the number of rows in the mask.
func (s Shape) Height() int { return len(s.mask) }

// IsZero reports whether s is the zero Shape.
func (s Shape) IsZero() bool { return len(s.mask) == 0 }

// At reports whether the cell at column x, row y is occupied.
// Cells outside the mask are unoccupied.
func (s Shape) At(x, y int) bool {
	if y < 0 || y >= len(s.mask) || x < 0 || x >= s.width {
		return false
	}
	return s.mask[y][x]
}

// Offsets returns the occupied cells relative to the shape origin.
// The returned slice is a copy.
func (s Shape) Offsets() []Position {
	out := make([]Position, len(s.offsets))
	copy(out, s.offsets)
	return out
}

// Count returns the number of occupied cells.
func (s Shape) Count() int { return len(s.offsets) }

// Rows returns the mask as 0/1 rows, the same form NewShape accepts.
func (s Shape) Rows() [][]int {
	rows := make([][]int, len(s.mask))
	for y, row := range s.mask {
		rows[y] = make([]int, len(row))
		for x, v := range row {
			if v {
				rows[y][x] = 1
			}
		}
	}
	return rows
}

// Equal reports whether two shapes have the same mask.
func (s Shape) Equal(o Shape) bool {
	if s.width != o.width || len(s.mask) != len(o.mask) {
		return false
	}
	for y := range s.mask {
		for x := range s.mask[y] {
			if s.mask[y][x] != o.mask[y][x] {
				return false
			}
		}
	}
	return true
}

// String draws the mask with '#' for occupied and '.' for empty cells.
func (s Shape) String() string {
	var b strings.Builder
	for y, row := range s.mask {
		if y > 0 {
			b.WriteByte('\n')
		}
		for _, v := range row {
			if v {
				b.WriteByte('#')
			} else {
				b.WriteByte('.')
			}
		}
	}
	return b.String()
}
