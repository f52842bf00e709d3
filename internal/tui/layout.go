package tui

import (
	"pegboard/internal/board"
	"pegboard/internal/catalog"
	"pegboard/internal/controller"
	"pegboard/internal/geometry"
)

// Screen layout, in terminal cells:
//
//	row 0         toolbar
//	row 1         palette header | grid header
//	rows 2..      palette rows   | grid rows, blank, trash box
//	last row      status line
//
// Each grid cell is two columns wide so the board looks roughly square.
const (
	paletteWidth = 30
	gutter       = 2
	gridLeft     = paletteWidth + gutter
	gridTop      = 2
	cellWidth    = 2
	trashLabel   = " Trash "
	trashWidth   = len(trashLabel) + 2
	trashHeight  = 3
)

var gridViewport = controller.Viewport{
	OriginX:    gridLeft,
	OriginY:    gridTop,
	CellWidth:  cellWidth,
	CellHeight: 1,
}

// paletteRow is one line of the palette: a group header when index is -1,
// otherwise the index of a blueprint in Model.palette().
type paletteRow struct {
	header string
	index  int
}

func paletteRows(bps []board.Blueprint) []paletteRow {
	var rows []paletteRow
	i := 0
	for _, g := range catalog.GroupByType(bps) {
		rows = append(rows, paletteRow{header: g.Type, index: -1})
		for range g.Blueprints {
			rows = append(rows, paletteRow{index: i})
			i++
		}
	}
	return rows
}

type targetKind int

const (
	targetNone targetKind = iota
	targetGrid
	targetPalette
	targetTrash
)

type target struct {
	kind  targetKind
	cell  geometry.Position
	index int
}

func trashTop(grid geometry.Size) int {
	return gridTop + grid.Height + 1
}

// hit resolves a pointer position to the screen region under it.
func (m Model) hit(x, y int) target {
	grid := m.ctrl.State().Grid
	cell := m.ctrl.PointerToGrid(x, y)
	if x >= gridLeft && grid.Contains(cell) {
		return target{kind: targetGrid, cell: cell}
	}

	tt := trashTop(grid)
	if x >= gridLeft && x < gridLeft+trashWidth && y >= tt && y < tt+trashHeight {
		return target{kind: targetTrash}
	}

	if x < paletteWidth && y >= gridTop {
		rows := paletteRows(m.palette())
		if r := y - gridTop; r < len(rows) && rows[r].index >= 0 {
			return target{kind: targetPalette, index: rows[r].index}
		}
	}
	return target{kind: targetNone}
}
