package controller

import (
	"fmt"

	"pegboard/internal/board"
	"pegboard/internal/geometry"
)

// PointerDown starts a rectangle selection at pos when the modifier is held
// and no other gesture is in progress. It reports whether it did.
func (c *Controller) PointerDown(pos geometry.Position, modifier bool) bool {
	if !modifier || c.mode != ModeIdle {
		return false
	}
	c.mode = ModeRectSelecting
	c.rect = SelectionRect{Anchor: pos, Current: pos}
	c.logger.Debug("rect select started", "anchor", pos)
	return true
}

// PointerMove extends the rectangle selection to pos.
func (c *Controller) PointerMove(pos geometry.Position) {
	if c.mode != ModeRectSelecting {
		return
	}
	c.rect.Current = pos
}

// PointerUp finishes a rectangle selection at pos. Every item with an
// occupied cell inside the rectangle joins the selection. The returned ids
// are the items the rectangle touched.
func (c *Controller) PointerUp(pos geometry.Position) []string {
	if c.mode != ModeRectSelecting {
		return nil
	}
	c.rect.Current = pos
	ids := c.state.ItemsInRect(c.rect.Rect())
	c.state = c.state.SelectRectangle(ids)
	c.logger.Debug("rect select finished", "rect", c.rect.Rect(), "hits", len(ids))

	c.mode = ModeIdle
	c.rect = SelectionRect{}
	return ids
}

// StartDrag begins dragging a palette blueprint.
func (c *Controller) StartDrag(bp board.Blueprint) bool {
	if c.mode != ModeIdle || bp.Shape.IsZero() {
		return false
	}
	c.mode = ModeDragging
	c.drag = DragState{Active: true, Blueprint: bp}
	c.logger.Debug("drag started", "blueprint", bp.Name)
	return true
}

// StartMove begins dragging the placed item id. Unknown ids are ignored.
func (c *Controller) StartMove(id string) bool {
	if c.mode != ModeIdle {
		return false
	}
	it, ok := c.state.Item(id)
	if !ok {
		c.logger.Debug("move of unknown item ignored", "id", id)
		return false
	}
	c.mode = ModeDragging
	p := it.Position
	c.drag = DragState{Active: true, Blueprint: it.Blueprint(), SourceID: id, Preview: &p}
	c.logger.Debug("move started", "id", id)
	return true
}

// UpdateDragPreview sets where the dragged shape would land. A nil position
// hides the preview. The preview is advisory and only validated on drop.
func (c *Controller) UpdateDragPreview(pos *geometry.Position) {
	if c.mode != ModeDragging {
		return
	}
	if pos == nil {
		c.drag.Preview = nil
		return
	}
	p := *pos
	c.drag.Preview = &p
}

// DropAt ends the drag on the grid cell pos. A palette blueprint becomes a
// new item; a dragged item moves. A rejected drop leaves the board unchanged,
// fires a notice and returns the PLACEMENT_REJECTED error.
func (c *Controller) DropAt(pos geometry.Position) error {
	if c.mode != ModeDragging {
		return nil
	}
	drag := c.drag
	c.endDrag()

	if drag.SourceID != "" {
		return c.moveItem(drag.SourceID, pos)
	}
	return c.placeBlueprint(drag.Blueprint, pos)
}

func (c *Controller) placeBlueprint(bp board.Blueprint, pos geometry.Position) error {
	next, it, err := c.state.Place(bp, pos, c.ids())
	if err != nil {
		c.reject(bp, pos, err)
		return err
	}
	c.state = next
	c.record()
	c.logger.Debug("placed", "id", it.ID, "name", it.Name, "at", pos)
	c.notify(Notice{
		Kind:    NoticePlaced,
		Message: fmt.Sprintf("%s placed on pegboard", it.Name),
		Count:   1,
	})
	return nil
}

func (c *Controller) moveItem(id string, pos geometry.Position) error {
	before, ok := c.state.Item(id)
	if !ok {
		// Undone away while dragging; nothing left to move.
		c.logger.Debug("drop of stale item ignored", "id", id)
		return nil
	}
	next, it, err := c.state.Move(id, pos)
	if err != nil {
		c.reject(before.Blueprint(), pos, err)
		return err
	}
	c.state = next
	if before.Position == pos {
		// Dropped where it was picked up: only the selection changed.
		return nil
	}
	c.record()
	c.logger.Debug("moved", "id", id, "to", pos)
	c.notify(Notice{
		Kind:    NoticeMoved,
		Message: fmt.Sprintf("%s moved to %s", it.Name, pos),
		Count:   1,
	})
	return nil
}

func (c *Controller) reject(bp board.Blueprint, pos geometry.Position, err error) {
	c.logger.Debug("placement rejected", "name", bp.Name, "at", pos, "err", err)
	msg := "Cannot place tool here - position occupied"
	if !geometry.WithinBounds(geometry.OccupiedCells(bp.Shape, pos), c.state.Grid) {
		msg = "Cannot place tool here - outside the pegboard"
	}
	c.notify(Notice{
		Kind:    NoticeRejected,
		Message: msg,
		Detail:  "Try a different location",
	})
}

// DropOutside ends the drag away from the grid. Dropping a placed item on the
// trash deletes it, together with the rest of the selection when the item was
// selected. Any other drop outside the grid cancels the drag. It returns the
// number of deleted items.
func (c *Controller) DropOutside(onTrash bool) int {
	if c.mode != ModeDragging {
		return 0
	}
	drag := c.drag
	c.endDrag()

	if !onTrash || drag.SourceID == "" {
		c.logger.Debug("drag cancelled", "blueprint", drag.Blueprint.Name)
		return 0
	}
	ids := []string{drag.SourceID}
	if c.state.IsSelected(drag.SourceID) {
		ids = c.selectedIDs()
	}
	return c.DeleteIDs(ids)
}

// CancelDrag abandons the drag without touching the board.
func (c *Controller) CancelDrag() {
	if c.mode != ModeDragging {
		return
	}
	c.endDrag()
}

// CancelRect abandons a rectangle selection without changing the selection.
func (c *Controller) CancelRect() {
	if c.mode != ModeRectSelecting {
		return
	}
	c.mode = ModeIdle
	c.rect = SelectionRect{}
}

func (c *Controller) endDrag() {
	c.mode = ModeIdle
	c.drag = DragState{}
}
