package controller

import (
	"fmt"

	"pegboard/internal/geometry"
)

// Click selects the item under pos. With additive set the item's selection
// is toggled instead. Clicks on empty cells do nothing. Selection changes are
// not history entries.
func (c *Controller) Click(pos geometry.Position, additive bool) (string, bool) {
	if c.mode != ModeIdle {
		return "", false
	}
	it, ok := c.state.ItemAt(pos)
	if !ok {
		return "", false
	}
	c.Select(it.ID, additive)
	return it.ID, true
}

// Select applies a click selection to id.
func (c *Controller) Select(id string, additive bool) {
	c.state = c.state.Select(id, additive)
	c.logger.Debug("select", "id", id, "additive", additive, "selected", len(c.state.Selected))
}

// SelectRectangle adds ids to the selection.
func (c *Controller) SelectRectangle(ids []string) {
	c.state = c.state.SelectRectangle(ids)
}

// ClearSelection deselects everything.
func (c *Controller) ClearSelection() {
	c.state = c.state.ClearSelection()
}

// DeleteSelected deletes every selected item. It does nothing when the
// selection is empty.
func (c *Controller) DeleteSelected() int {
	if len(c.state.Selected) == 0 {
		return 0
	}
	return c.DeleteIDs(c.selectedIDs())
}

// DeleteIDs deletes the listed items and returns how many were removed.
// Unknown ids are ignored; a call that removes nothing is not recorded.
func (c *Controller) DeleteIDs(ids []string) int {
	next, n := c.state.Delete(ids...)
	if n == 0 {
		c.logger.Debug("delete matched nothing", "ids", ids)
		return 0
	}
	c.state = next
	c.record()
	c.logger.Debug("deleted", "count", n)
	c.notify(Notice{
		Kind:    NoticeDeleted,
		Message: fmt.Sprintf("Deleted %d tool(s)", n),
		Count:   n,
	})
	return n
}

// ClearBoard removes every item.
func (c *Controller) ClearBoard() {
	n := len(c.state.Items)
	c.state = c.state.Clear()
	c.record()
	c.logger.Debug("cleared", "count", n)
	c.notify(Notice{
		Kind:    NoticeCleared,
		Message: "Pegboard cleared",
		Count:   n,
	})
}

// Undo restores the previous snapshot. At the start of history it only fires
// a notice and reports false.
func (c *Controller) Undo() bool {
	s, err := c.history.Undo()
	if err != nil {
		c.notify(Notice{Kind: NoticeHistoryBoundary, Message: "Nothing to undo"})
		return false
	}
	c.restore()
	c.state = s
	c.notify(Notice{Kind: NoticeUndone, Message: "Undid last action"})
	return true
}

// Redo restores the next snapshot. At the end of history it only fires a
// notice and reports false.
func (c *Controller) Redo() bool {
	s, err := c.history.Redo()
	if err != nil {
		c.notify(Notice{Kind: NoticeHistoryBoundary, Message: "Nothing to redo"})
		return false
	}
	c.restore()
	c.state = s
	c.notify(Notice{Kind: NoticeRedone, Message: "Redid action"})
	return true
}

// restore drops any gesture in progress before a snapshot replaces the board.
func (c *Controller) restore() {
	c.mode = ModeIdle
	c.drag = DragState{}
	c.rect = SelectionRect{}
	c.logger.Debug("history moved", "cursor", c.history.Cursor(), "len", c.history.Len())
}
