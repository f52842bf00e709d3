// Package board holds the authoritative pegboard state and the operations
// that change it.
//
// State is a value. Every operation returns a new State and leaves its
// receiver untouched, which is what lets the history log keep snapshots
// without copying on every read. Board operations know nothing about history;
// the caller records the states it wants to keep.
package board

import (
	"slices"

	"pegboard/internal/geometry"
	"pegboard/internal/placement"
)

// Rotation is the orientation of a blueprint in degrees. It is carried on
// items but no transform is applied to the shape.
type Rotation int

const (
	Rotate0   Rotation = 0
	Rotate90  Rotation = 90
	Rotate180 Rotation = 180
	Rotate270 Rotation = 270
)

// Valid reports whether r is one of the four right angles.
func (r Rotation) Valid() bool {
	switch r {
	case Rotate0, Rotate90, Rotate180, Rotate270:
		return true
	}
	return false
}

// Blueprint is an unplaced tool template.
type Blueprint struct {
	Type     string
	Name     string
	Shape    geometry.Shape
	Rotation Rotation
	Color    string
}

// Item is a blueprint placed on the board.
type Item struct {
	ID       string
	Type     string
	Name     string
	Shape    geometry.Shape
	Rotation Rotation
	Color    string
	Position geometry.Position
}

// Blueprint returns the template the item was created from.
func (it Item) Blueprint() Blueprint {
	return Blueprint{
		Type:     it.Type,
		Name:     it.Name,
		Shape:    it.Shape,
		Rotation: it.Rotation,
		Color:    it.Color,
	}
}

// Cells returns the absolute cells covered by the item.
func (it Item) Cells() []geometry.Position {
	return geometry.OccupiedCells(it.Shape, it.Position)
}

// Footprint returns the item in the form the placement validator reads.
func (it Item) Footprint() placement.Footprint {
	return placement.Footprint{ID: it.ID, Shape: it.Shape, Origin: it.Position}
}

// Equal reports whether two items are identical.
func (it Item) Equal(o Item) bool {
	return it.ID == o.ID &&
		it.Type == o.Type &&
		it.Name == o.Name &&
		it.Rotation == o.Rotation &&
		it.Color == o.Color &&
		it.Position == o.Position &&
		it.Shape.Equal(o.Shape)
}

// State is the complete board: placed items in placement order, the ordered
// selection and the grid geometry.
type State struct {
	Items    []Item
	Selected []string
	Grid     geometry.Size
	CellSize int
}

// New returns an empty board.
func New(grid geometry.Size, cellSize int) State {
	return State{Grid: grid, CellSize: cellSize}
}

// Clone returns a deep copy of s. Shapes are immutable and shared.
func (s State) Clone() State {
	out := s
	out.Items = slices.Clone(s.Items)
	out.Selected = slices.Clone(s.Selected)
	return out
}

// Equal reports whether two states hold the same items, selection and grid.
func (s State) Equal(o State) bool {
	if s.Grid != o.Grid || s.CellSize != o.CellSize {
		return false
	}
	if !slices.Equal(s.Selected, o.Selected) {
		return false
	}
	return slices.EqualFunc(s.Items, o.Items, Item.Equal)
}

// Item returns the item with the given id.
func (s State) Item(id string) (Item, bool) {
	i := s.index(id)
	if i < 0 {
		return Item{}, false
	}
	return s.Items[i], true
}

// Has reports whether an item with the given id is on the board.
func (s State) Has(id string) bool {
	return s.index(id) >= 0
}

// ItemAt returns the item covering pos.
func (s State) ItemAt(pos geometry.Position) (Item, bool) {
	for _, it := range s.Items {
		off := geometry.Position{X: pos.X - it.Position.X, Y: pos.Y - it.Position.Y}
		if it.Shape.At(off.X, off.Y) {
			return it, true
		}
	}
	return Item{}, false
}

// ItemsInRect returns, in placement order, the ids of items with at least one
// occupied cell inside r.
func (s State) ItemsInRect(r geometry.Rect) []string {
	var ids []string
	for _, it := range s.Items {
		if r.Intersects(it.Cells()) {
			ids = append(ids, it.ID)
		}
	}
	return ids
}

// IsSelected reports whether id is part of the selection.
func (s State) IsSelected(id string) bool {
	return slices.Contains(s.Selected, id)
}

// Footprints returns the footprints of every item except excludeID.
func (s State) Footprints(excludeID string) []placement.Footprint {
	out := make([]placement.Footprint, 0, len(s.Items))
	for _, it := range s.Items {
		if it.ID == excludeID {
			continue
		}
		out = append(out, it.Footprint())
	}
	return out
}

// OccupiedCount returns the number of grid cells covered by items.
func (s State) OccupiedCount() int {
	n := 0
	for _, it := range s.Items {
		n += it.Shape.Count()
	}
	return n
}

func (s State) index(id string) int {
	return slices.IndexFunc(s.Items, func(it Item) bool { return it.ID == id })
}
