package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"pegboard/internal/board"
	"pegboard/internal/export"
	"pegboard/internal/geometry"
)

var helpLines = []string{
	"Pegboard Help",
	"=============",
	"",
	"Navigation:",
	"-----------",
	"  h/←/j/↓/k/↑/l/→  Move cursor on the pegboard",
	"  Shift+h/j/k/l    Move cursor 2x faster",
	"",
	"Tools:",
	"------",
	"  Tab/Shift+Tab    Highlight next/previous tool in the palette",
	"  /                Search tools by name or type (Enter keeps, Esc clears)",
	"  Enter/b          Pick up the highlighted tool, Enter again to place it",
	"  m                Pick up the tool under the cursor to move it",
	"  x/d/Delete       Delete the selection (or the tool being moved)",
	"  Esc              Cancel the drag or clear the selection",
	"",
	"Selection:",
	"----------",
	"  Space            Select the tool under the cursor",
	"  a                Add/remove the tool under the cursor",
	"  v                Start/finish a rectangle selection at the cursor",
	"",
	"Mouse:",
	"------",
	"  Drag a tool from the palette onto the pegboard to place it",
	"  Drag a placed tool to move it, or onto the trash to delete it",
	"  Shift+click      Add/remove a tool from the selection",
	"  Ctrl/Alt+drag    Rectangle selection",
	"",
	"General:",
	"--------",
	"  u/Ctrl+Z         Undo",
	"  U/Ctrl+R         Redo",
	"  C                Clear the pegboard",
	"  P                Export PNG to the save directory",
	"  T                Export text to the save directory",
	"  y                Copy the board as text to the clipboard",
	"  ?                Toggle this help screen",
	"  q/Ctrl+C         Quit",
}

func (m Model) View() string {
	if m.help {
		return m.helpView()
	}

	st := m.ctrl.State()
	left := m.paletteView()
	right := m.gridView(st)

	n := max(len(left), len(right))
	column := lipgloss.NewStyle().Width(paletteWidth).MaxWidth(paletteWidth).MaxHeight(1)
	pad := strings.Repeat(" ", gutter)

	var b strings.Builder
	b.WriteString(m.toolbarView(st))
	b.WriteString("\n")
	for i := 0; i < n; i++ {
		var l, r string
		if i < len(left) {
			l = left[i]
		}
		if i < len(right) {
			r = right[i]
		}
		b.WriteString(column.Render(l))
		b.WriteString(pad)
		b.WriteString(r)
		b.WriteString("\n")
	}
	b.WriteString(m.statusLine(st))
	return b.String()
}

func (m Model) toolbarView(st board.State) string {
	action := func(key, label string, enabled bool) string {
		s := fmt.Sprintf("[%s] %s", key, label)
		if !enabled {
			return styleDim.Render(s)
		}
		return s
	}
	parts := []string{
		styleTitle.Render("Pegboard"),
		action("u", "Undo", m.ctrl.CanUndo()),
		action("U", "Redo", m.ctrl.CanRedo()),
		action("C", "Clear", len(st.Items) > 0),
		action("P", "Export", len(st.Items) > 0),
		styleDim.Render(fmt.Sprintf("%d tools, %d selected", len(st.Items), len(st.Selected))),
	}
	return strings.Join(parts, "  ")
}

// paletteView returns the palette column: header line then one line per
// paletteRow, aligned with the grid rows.
func (m Model) paletteView() []string {
	header := styleTitle.Render("Tools")
	switch {
	case m.mode == ModeSearch:
		header = styleActive.Render("/" + m.search + "█")
	case m.search != "":
		header = styleTitle.Render("Tools") + styleDim.Render(" /"+m.search)
	}
	lines := []string{header}

	bps := m.palette()
	if len(bps) == 0 {
		return append(lines, styleDim.Render("(no matching tools)"))
	}
	active := clamp(m.paletteIndex, 0, len(bps)-1)
	for _, row := range paletteRows(bps) {
		if row.index < 0 {
			lines = append(lines, styleGroup.Render(strings.ToUpper(row.header)))
			continue
		}
		bp := bps[row.index]
		swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(bp.Color)).Render("■")
		name := fmt.Sprintf("%s %dx%d", bp.Name, bp.Shape.Width(), bp.Shape.Height())
		if row.index == active {
			lines = append(lines, "▸ "+swatch+" "+styleActive.Render(name))
		} else {
			lines = append(lines, "  "+swatch+" "+styleEntry.Render(name))
		}
	}
	return lines
}

// gridView returns the right column: header, one line per grid row, a blank
// line and the trash box.
func (m Model) gridView(st board.State) []string {
	lines := []string{styleDim.Render(fmt.Sprintf("%dx%d  cursor %s", st.Grid.Width, st.Grid.Height, m.cursor))}

	owner := make(map[geometry.Position]int, st.OccupiedCount())
	for i, it := range st.Items {
		for _, p := range it.Cells() {
			owner[p] = i
		}
	}

	preview := map[geometry.Position]bool{}
	for _, p := range m.ctrl.PreviewCells() {
		preview[p] = true
	}
	previewStyle := stylePreviewNo
	if m.ctrl.PreviewValid() {
		previewStyle = stylePreviewOK
	}

	rect, selecting := m.ctrl.SelectionRect()
	band := rect.Rect()

	for y := 0; y < st.Grid.Height; y++ {
		var row strings.Builder
		for x := 0; x < st.Grid.Width; x++ {
			p := geometry.Position{X: x, Y: y}
			style, text := styleHole, "· "
			switch i, placed := owner[p]; {
			case preview[p]:
				style, text = previewStyle, "▓▓"
			case placed:
				it := st.Items[i]
				style, text = itemStyle(it.Color, st.IsSelected(it.ID)), string(export.Marker(i))+" "
			case selecting && band.Contains(p):
				style, text = styleRect, "░░"
			}
			if p == m.cursor {
				style = style.Reverse(true)
			}
			row.WriteString(style.Render(text))
		}
		lines = append(lines, row.String())
	}

	lines = append(lines, "")
	trash := styleTrash
	if d := m.ctrl.Drag(); d.Active && d.SourceID != "" {
		trash = styleTrashHot
	}
	lines = append(lines, strings.Split(trash.Render(trashLabel), "\n")...)
	return lines
}

func (m Model) statusLine(st board.State) string {
	if m.mode == ModeConfirm {
		var message string
		switch m.confirmAction {
		case ConfirmClear:
			message = fmt.Sprintf("Remove all %d tools from the pegboard? (y/n)", len(st.Items))
		case ConfirmQuit:
			message = "Quit Pegboard? (y/n)"
		}
		return fmt.Sprintf("Mode: CONFIRM | %s", message)
	}
	if m.mode == ModeSearch {
		return fmt.Sprintf("Mode: SEARCH | %d matching | Enter=keep, Esc=clear", len(m.palette()))
	}

	status := fmt.Sprintf("Mode: %s | Cursor: %s", m.ctrl.Mode(), m.cursor)
	switch d := m.ctrl.Drag(); {
	case d.Active && d.SourceID != "":
		status += fmt.Sprintf(" | Moving %s (Enter=drop, d=trash, Esc=cancel)", d.Blueprint.Name)
	case d.Active:
		status += fmt.Sprintf(" | Placing %s (Enter=drop, Esc=cancel)", d.Blueprint.Name)
	default:
		if bp, ok := m.activeBlueprint(); ok {
			status += " | Tool: " + bp.Name
		}
	}
	if it, ok := st.ItemAt(m.cursor); ok {
		status += " | Under cursor: " + it.Name
	}
	if n := len(st.Selected); n > 0 {
		status += fmt.Sprintf(" | Selected: %d", n)
	}

	switch {
	case m.status.err:
		status += " | " + styleError.Render("ERROR: "+m.status.text)
	case m.status.warn:
		status += " | " + styleWarning.Render(m.status.text)
	case m.status.text != "":
		status += " | " + styleSuccess.Render(m.status.text)
	default:
		status += " | ? for help | q to quit"
	}
	return status
}

func (m Model) helpView() string {
	visibleHeight := m.height - 1
	if visibleHeight < 1 {
		visibleHeight = len(helpLines)
	}
	start := clamp(m.helpScroll, 0, max(len(helpLines)-visibleHeight, 0))
	end := min(start+visibleHeight, len(helpLines))

	result := strings.Join(helpLines[start:end], "\n")
	result += "\n" + fmt.Sprintf("Help (%d-%d of %d lines) | j/k to scroll, Esc to close",
		start+1, end, len(helpLines))
	return result
}
