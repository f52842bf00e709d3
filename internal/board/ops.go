package board

import (
	"slices"

	"pegboard/internal/errors"
	"pegboard/internal/geometry"
	"pegboard/internal/placement"
)

// Place drops bp at origin as a new item with the given id. On success the
// selection becomes exactly the new item. A rejected placement returns s
// unchanged together with a PLACEMENT_REJECTED error.
func (s State) Place(bp Blueprint, origin geometry.Position, id string) (State, Item, error) {
	if id == "" {
		return s, Item{}, errors.New(errors.ErrCodeInvalidReference, "item id is empty")
	}
	if s.Has(id) {
		return s, Item{}, errors.New(errors.ErrCodeInvalidReference, "item id %s is already in use", id)
	}
	if err := placement.Check(bp.Shape, origin, s.Footprints(""), s.Grid); err != nil {
		return s, Item{}, err
	}

	it := Item{
		ID:       id,
		Type:     bp.Type,
		Name:     bp.Name,
		Shape:    bp.Shape,
		Rotation: bp.Rotation,
		Color:    bp.Color,
		Position: origin,
	}

	next := s.Clone()
	next.Items = append(next.Items, it)
	next.Selected = []string{id}
	return next, it, nil
}

// Move replaces the item with a copy at origin. The item is validated against
// every other item, so it may overlap its own old cells. On success the
// selection becomes exactly the moved item.
func (s State) Move(id string, origin geometry.Position) (State, Item, error) {
	i := s.index(id)
	if i < 0 {
		return s, Item{}, errors.New(errors.ErrCodeInvalidReference, "no item with id %s", id)
	}
	it := s.Items[i]
	if err := placement.Check(it.Shape, origin, s.Footprints(id), s.Grid); err != nil {
		return s, Item{}, err
	}

	it.Position = origin
	next := s.Clone()
	next.Items[i] = it
	next.Selected = []string{id}
	return next, it, nil
}

// Delete removes every item whose id is listed and drops those ids from the
// selection. Unknown ids are ignored, so deleting twice equals deleting once.
// The second result is the number of items removed.
func (s State) Delete(ids ...string) (State, int) {
	if len(ids) == 0 {
		return s, 0
	}
	drop := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}

	next := s.Clone()
	before := len(next.Items)
	next.Items = slices.DeleteFunc(next.Items, func(it Item) bool {
		_, ok := drop[it.ID]
		return ok
	})
	next.Selected = slices.DeleteFunc(next.Selected, func(id string) bool {
		_, ok := drop[id]
		return ok
	})
	return next, before - len(next.Items)
}

// Select changes the selection for a click on id. A plain click selects only
// id; an additive click toggles id, appending it or removing it. Unknown ids
// leave the state unchanged.
func (s State) Select(id string, additive bool) State {
	if !s.Has(id) {
		return s
	}
	next := s.Clone()
	if !additive {
		next.Selected = []string{id}
		return next
	}
	if i := slices.Index(next.Selected, id); i >= 0 {
		next.Selected = slices.Delete(next.Selected, i, i+1)
	} else {
		next.Selected = append(next.Selected, id)
	}
	return next
}

// SelectRectangle adds ids to the selection. Unlike an additive click it
// never deselects: ids already selected keep their place.
func (s State) SelectRectangle(ids []string) State {
	next := s.Clone()
	for _, id := range ids {
		if !s.Has(id) || slices.Contains(next.Selected, id) {
			continue
		}
		next.Selected = append(next.Selected, id)
	}
	return next
}

// ClearSelection deselects everything.
func (s State) ClearSelection() State {
	next := s.Clone()
	next.Selected = nil
	return next
}

// Clear removes every item.
func (s State) Clear() State {
	next := s.Clone()
	next.Items = nil
	next.Selected = nil
	return next
}
