package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"pegboard/internal/controller"
	"pegboard/internal/geometry"
)

// handleMouse maps terminal mouse events onto controller gestures:
//
//   - ctrl/alt + press on the grid starts a rectangle selection
//   - shift + press on an item toggles it in the selection
//   - press on an item picks it up; release drops it
//   - press on a palette entry picks up a new tool
//   - release over the trash deletes a dragged item
func (m *Model) handleMouse(msg tea.MouseMsg) {
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return
		}
		m.mousePress(msg)
	case tea.MouseActionMotion:
		m.mouseMotion(msg)
	case tea.MouseActionRelease:
		m.mouseRelease(msg)
	}
}

func (m *Model) mousePress(msg tea.MouseMsg) {
	t := m.hit(msg.X, msg.Y)
	switch t.kind {
	case targetGrid:
		m.cursor = t.cell
		if msg.Ctrl || msg.Alt {
			m.ctrl.PointerDown(t.cell, true)
			return
		}
		if msg.Shift {
			m.ctrl.Click(t.cell, true)
			return
		}
		it, ok := m.ctrl.State().ItemAt(t.cell)
		if !ok {
			return
		}
		if m.ctrl.StartMove(it.ID) {
			m.grab = geometry.Position{X: t.cell.X - it.Position.X, Y: t.cell.Y - it.Position.Y}
		}
	case targetPalette:
		m.paletteIndex = t.index
		if bp, ok := m.activeBlueprint(); ok {
			m.ctrl.StartDrag(bp)
			m.grab = geometry.Position{}
		}
	}
}

func (m *Model) mouseMotion(msg tea.MouseMsg) {
	switch m.ctrl.Mode() {
	case controller.ModeRectSelecting:
		m.ctrl.PointerMove(m.clampToGrid(m.ctrl.PointerToGrid(msg.X, msg.Y)))
	case controller.ModeDragging:
		t := m.hit(msg.X, msg.Y)
		if t.kind != targetGrid {
			m.ctrl.UpdateDragPreview(nil)
			return
		}
		m.cursor = t.cell
		origin := m.dropOrigin(t.cell)
		m.ctrl.UpdateDragPreview(&origin)
	}
}

func (m *Model) mouseRelease(msg tea.MouseMsg) {
	switch m.ctrl.Mode() {
	case controller.ModeRectSelecting:
		m.ctrl.PointerUp(m.clampToGrid(m.ctrl.PointerToGrid(msg.X, msg.Y)))
	case controller.ModeDragging:
		t := m.hit(msg.X, msg.Y)
		switch t.kind {
		case targetGrid:
			m.cursor = t.cell
			_ = m.ctrl.DropAt(m.dropOrigin(t.cell))
		case targetTrash:
			m.ctrl.DropOutside(true)
		default:
			m.ctrl.DropOutside(false)
		}
		m.grab = geometry.Position{}
	}
}

// dropOrigin is where the dragged shape's origin lands when the pointer is
// over cell.
func (m Model) dropOrigin(cell geometry.Position) geometry.Position {
	return geometry.Position{X: cell.X - m.grab.X, Y: cell.Y - m.grab.Y}
}

func (m Model) clampToGrid(p geometry.Position) geometry.Position {
	grid := m.ctrl.State().Grid
	return geometry.Position{
		X: clamp(p.X, 0, grid.Width-1),
		Y: clamp(p.Y, 0, grid.Height-1),
	}
}
