// Package placement decides whether a shape may be dropped at a grid origin.
//
// Validation is stateless. It reads the footprints of already placed items and
// never changes them, so it serves both committed drops and drag previews.
package placement

import (
	"pegboard/internal/errors"
	"pegboard/internal/geometry"
)

// Footprint is the part of a placed item the validator needs.
type Footprint struct {
	ID     string
	Shape  geometry.Shape
	Origin geometry.Position
}

// Cells returns the absolute cells covered by f.
func (f Footprint) Cells() []geometry.Position {
	return geometry.OccupiedCells(f.Shape, f.Origin)
}

// Check returns nil when shape fits at origin, or a PLACEMENT_REJECTED error
// naming the first problem found: the grid edge, or the first existing item,
// in the given order, that shares a cell with it.
func Check(shape geometry.Shape, origin geometry.Position, existing []Footprint, size geometry.Size) error {
	cells := geometry.OccupiedCells(shape, origin)
	if !geometry.WithinBounds(cells, size) {
		return errors.New(errors.ErrCodePlacementRejected,
			"position %s is outside the %dx%d grid", origin, size.Width, size.Height)
	}
	for _, f := range existing {
		if geometry.Overlaps(cells, f.Cells()) {
			return errors.New(errors.ErrCodePlacementRejected,
				"position %s is occupied by %s", origin, f.ID)
		}
	}
	return nil
}

// CanPlace reports whether shape fits at origin.
func CanPlace(shape geometry.Shape, origin geometry.Position, existing []Footprint, size geometry.Size) bool {
	return Check(shape, origin, existing, size) == nil
}
