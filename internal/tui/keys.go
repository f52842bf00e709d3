package tui

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"pegboard/internal/board"
	"pegboard/internal/controller"
	"pegboard/internal/errors"
	"pegboard/internal/export"
	"pegboard/internal/geometry"
)

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	switch key {
	case "h", "left", "H", "shift+left",
		"l", "right", "L", "shift+right",
		"k", "up", "K", "shift+up",
		"j", "down", "J", "shift+down":
		m.moveCursor(key, moveSpeed(key))
		return m, nil
	}

	m.status.clear()

	switch key {
	case "esc":
		switch m.ctrl.Mode() {
		case controller.ModeDragging:
			m.ctrl.CancelDrag()
		case controller.ModeRectSelecting:
			m.ctrl.CancelRect()
		default:
			m.ctrl.ClearSelection()
		}
		m.grab = geometry.Position{}

	case "q", "ctrl+c":
		if !m.cfg.Confirmations {
			return m, tea.Quit
		}
		m.mode = ModeConfirm
		m.confirmAction = ConfirmQuit

	case "?":
		m.help = true
		m.helpScroll = 0

	case "tab":
		m.cyclePalette(1)
	case "shift+tab":
		m.cyclePalette(-1)

	case "/":
		m.mode = ModeSearch

	case "enter", "b":
		m.pickOrDrop()

	case "m":
		if it, ok := m.ctrl.State().ItemAt(m.cursor); ok && m.ctrl.StartMove(it.ID) {
			m.grab = geometry.Position{X: m.cursor.X - it.Position.X, Y: m.cursor.Y - it.Position.Y}
		}

	case " ":
		m.ctrl.Click(m.cursor, false)
	case "a":
		m.ctrl.Click(m.cursor, true)

	case "v":
		switch m.ctrl.Mode() {
		case controller.ModeIdle:
			m.ctrl.PointerDown(m.cursor, true)
		case controller.ModeRectSelecting:
			m.ctrl.PointerUp(m.cursor)
		}

	case "x", "d", "delete", "backspace":
		if m.ctrl.Mode() == controller.ModeDragging {
			m.ctrl.DropOutside(true)
			m.grab = geometry.Position{}
		} else {
			m.ctrl.DeleteSelected()
		}

	case "u", "ctrl+z":
		m.ctrl.Undo()
	case "U", "ctrl+r", "ctrl+y":
		m.ctrl.Redo()

	case "C":
		if len(m.ctrl.State().Items) == 0 {
			break
		}
		if !m.cfg.Confirmations {
			m.ctrl.ClearBoard()
			break
		}
		m.mode = ModeConfirm
		m.confirmAction = ConfirmClear

	case "P":
		m.exportPNG()
	case "T":
		m.exportText()
	case "y":
		m.yank()
	}
	return m, nil
}

// pickOrDrop is the keyboard drag: the first press picks up the highlighted
// palette tool at the cursor, the second drops whatever is being dragged.
// During a rectangle selection it finishes the rectangle.
func (m *Model) pickOrDrop() {
	switch m.ctrl.Mode() {
	case controller.ModeIdle:
		bp, ok := m.activeBlueprint()
		if !ok {
			m.status.warning("No tool matches the search")
			return
		}
		if m.ctrl.StartDrag(bp) {
			m.grab = geometry.Position{}
			origin := m.cursor
			m.ctrl.UpdateDragPreview(&origin)
		}
	case controller.ModeDragging:
		_ = m.ctrl.DropAt(m.dropOrigin(m.cursor))
		m.grab = geometry.Position{}
	case controller.ModeRectSelecting:
		m.ctrl.PointerUp(m.cursor)
	}
}

func (m *Model) moveCursor(key string, speed int) {
	switch key {
	case "h", "left", "H", "shift+left":
		m.cursor.X -= speed
	case "l", "right", "L", "shift+right":
		m.cursor.X += speed
	case "k", "up", "K", "shift+up":
		m.cursor.Y -= speed
	case "j", "down", "J", "shift+down":
		m.cursor.Y += speed
	}
	m.cursor = m.clampToGrid(m.cursor)

	switch m.ctrl.Mode() {
	case controller.ModeDragging:
		origin := m.dropOrigin(m.cursor)
		m.ctrl.UpdateDragPreview(&origin)
	case controller.ModeRectSelecting:
		m.ctrl.PointerMove(m.cursor)
	}
}

func moveSpeed(key string) int {
	switch key {
	case "H", "L", "K", "J", "shift+left", "shift+right", "shift+up", "shift+down":
		return 2
	default:
		return 1
	}
}

func (m *Model) cyclePalette(delta int) {
	n := len(m.palette())
	if n == 0 {
		m.paletteIndex = 0
		return
	}
	m.paletteIndex = ((m.paletteIndex+delta)%n + n) % n
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.search = ""
		m.paletteIndex = 0
		m.mode = ModeNormal
	case tea.KeyEnter:
		m.mode = ModeNormal
	case tea.KeyBackspace:
		if r := []rune(m.search); len(r) > 0 {
			m.search = string(r[:len(r)-1])
			m.paletteIndex = 0
		}
	case tea.KeyRunes:
		m.search += string(msg.Runes)
		m.paletteIndex = 0
	case tea.KeySpace:
		m.search += " "
		m.paletteIndex = 0
	case tea.KeyCtrlC:
		m.mode = ModeNormal
	}
	return m, nil
}

func (m Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.mode = ModeNormal
	switch msg.String() {
	case "y", "Y":
		switch m.confirmAction {
		case ConfirmQuit:
			return m, tea.Quit
		case ConfirmClear:
			m.ctrl.ClearBoard()
		}
	}
	return m, nil
}

func (m Model) handleHelpKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q", "?":
		m.help = false
		m.helpScroll = 0
	case "j", "down":
		if m.helpScroll < len(helpLines)-1 {
			m.helpScroll++
		}
	case "k", "up":
		if m.helpScroll > 0 {
			m.helpScroll--
		}
	}
	return m, nil
}

func (m Model) exportFileName(ext string) string {
	return fmt.Sprintf("pegboard-%s.%s", m.now().Format("20060102-150405"), ext)
}

func (m *Model) exportPNG() {
	path, err := m.cfg.SavePath(m.exportFileName("png"))
	if err == nil {
		err = export.PNG(path, m.ctrl.State())
	}
	if err != nil {
		m.logger.Error("png export failed", "err", err)
		m.status.fail("Export failed: " + errors.Message(err))
		return
	}
	m.logger.Info("exported png", "path", path)
	m.status.success("Exported " + path)
}

func (m *Model) exportText() {
	path, err := m.cfg.SavePath(m.exportFileName("txt"))
	if err == nil {
		err = writeText(path, m.ctrl.State())
	}
	if err != nil {
		m.logger.Error("text export failed", "err", err)
		m.status.fail("Export failed: " + errors.Message(err))
		return
	}
	m.logger.Info("exported text", "path", path)
	m.status.success("Exported " + path)
}

func writeText(path string, s board.State) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeExport, err, "create %s", path)
	}
	if err := export.Text(f, s); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeExport, err, "close %s", path)
	}
	return nil
}

func (m *Model) yank() {
	if err := m.writeClipboard(export.String(m.ctrl.State())); err != nil {
		m.logger.Error("clipboard write failed", "err", err)
		m.status.fail("Copy failed: " + err.Error())
		return
	}
	m.status.success("Board copied to clipboard")
}
