package controller

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pegboard/internal/board"
	"pegboard/internal/errors"
	"pegboard/internal/geometry"
)

var (
	screwdriver = board.Blueprint{
		Type:  "screwdriver",
		Name:  "Phillips Screwdriver",
		Shape: geometry.MustShape([][]int{{1}, {1}, {1}, {1}}),
	}
	cutters = board.Blueprint{
		Type:  "pliers",
		Name:  "Wire Cutters",
		Shape: geometry.MustShape([][]int{{1, 1}, {1, 1}}),
	}
	peg = board.Blueprint{Type: "peg", Name: "Peg", Shape: geometry.MustShape([][]int{{1}})}
)

func pos(x, y int) geometry.Position { return geometry.Position{X: x, Y: y} }

type recorder struct {
	notices []Notice
}

func (r *recorder) Notify(n Notice) { r.notices = append(r.notices, n) }

func (r *recorder) kinds() []NoticeKind {
	var out []NoticeKind
	for _, n := range r.notices {
		out = append(out, n.Kind)
	}
	return out
}

func (r *recorder) last() Notice {
	if len(r.notices) == 0 {
		return Notice{}
	}
	return r.notices[len(r.notices)-1]
}

func newTestController(t *testing.T) (*Controller, *recorder) {
	t.Helper()
	rec := &recorder{}
	c := New(board.New(geometry.Size{Width: 20, Height: 15}, 30),
		WithNotifier(rec),
		WithIDs(board.Sequence("tool")),
	)
	return c, rec
}

// drop drags bp from the palette and drops it at p.
func drop(t *testing.T, c *Controller, bp board.Blueprint, p geometry.Position) error {
	t.Helper()
	require.True(t, c.StartDrag(bp))
	c.UpdateDragPreview(&p)
	return c.DropAt(p)
}

func TestPlacementScenario(t *testing.T) {
	c, rec := newTestController(t)

	require.NoError(t, drop(t, c, screwdriver, pos(0, 0)))
	assert.Equal(t, []string{"tool_1"}, c.State().Selected)
	assert.Equal(t, "Phillips Screwdriver placed on pegboard", rec.last().Message)

	err := drop(t, c, cutters, pos(0, 0))
	assert.True(t, errors.Is(err, errors.ErrCodePlacementRejected))
	assert.Equal(t, NoticeRejected, rec.last().Kind)
	assert.Equal(t, "Cannot place tool here - position occupied", rec.last().Message)
	assert.Len(t, c.State().Items, 1)
	assert.Equal(t, ModeIdle, c.Mode(), "a rejected drop still ends the drag")

	require.NoError(t, drop(t, c, cutters, pos(5, 5)))
	got, ok := c.State().Item("tool_3")
	require.True(t, ok, "the rejected drop consumed tool_2")
	assert.Equal(t, []geometry.Position{{X: 5, Y: 5}, {X: 6, Y: 5}, {X: 5, Y: 6}, {X: 6, Y: 6}}, got.Cells())

	assert.True(t, c.CanUndo())
	assert.False(t, c.CanRedo())
}

func TestBoundaryDrop(t *testing.T) {
	c, rec := newTestController(t)

	require.NoError(t, drop(t, c, peg, pos(19, 0)))
	err := drop(t, c, peg, pos(20, 0))
	require.Error(t, err)
	assert.Equal(t, "Cannot place tool here - outside the pegboard", rec.last().Message)
}

func TestHistoryScenario(t *testing.T) {
	c, rec := newTestController(t)
	require.NoError(t, drop(t, c, peg, pos(0, 0)))
	require.NoError(t, drop(t, c, peg, pos(3, 3)))

	require.True(t, c.Undo())
	assert.Len(t, c.State().Items, 1)
	assert.Equal(t, "tool_1", c.State().Items[0].ID)

	require.True(t, c.Undo())
	assert.Empty(t, c.State().Items)

	assert.False(t, c.Undo())
	assert.Empty(t, c.State().Items)
	assert.Equal(t, NoticeHistoryBoundary, rec.last().Kind)

	require.True(t, c.Redo())
	require.True(t, c.Redo())
	assert.Len(t, c.State().Items, 2)
	assert.False(t, c.Redo())
}

func TestUndoRedoRoundTrip(t *testing.T) {
	c, _ := newTestController(t)
	require.NoError(t, drop(t, c, peg, pos(0, 0)))
	require.NoError(t, drop(t, c, cutters, pos(4, 4)))
	before := c.State()

	require.True(t, c.Undo())
	require.True(t, c.Redo())
	assert.True(t, c.State().Equal(before))
}

func TestRecordAfterUndoDropsRedo(t *testing.T) {
	c, _ := newTestController(t)
	require.NoError(t, drop(t, c, peg, pos(0, 0)))
	require.True(t, c.Undo())
	require.NoError(t, drop(t, c, peg, pos(9, 9)))

	assert.False(t, c.CanRedo())
	assert.False(t, c.Redo())
	ids := []string{}
	for _, it := range c.State().Items {
		ids = append(ids, it.ID)
	}
	assert.Equal(t, []string{"tool_2"}, ids)
}

func TestRectangleSelection(t *testing.T) {
	c, _ := newTestController(t)
	require.NoError(t, drop(t, c, screwdriver, pos(0, 0)))
	require.NoError(t, drop(t, c, cutters, pos(5, 5)))
	require.NoError(t, drop(t, c, peg, pos(10, 10)))
	c.ClearSelection()

	assert.False(t, c.PointerDown(pos(6, 6), false), "no modifier, no rectangle")
	require.True(t, c.PointerDown(pos(6, 6), true))
	assert.Equal(t, ModeRectSelecting, c.Mode())

	c.PointerMove(pos(3, 3))
	r, ok := c.SelectionRect()
	require.True(t, ok)
	assert.Equal(t, geometry.Rect{Min: pos(3, 3), Max: pos(6, 6)}, r.Rect())

	hits := c.PointerUp(pos(0, 0))
	assert.Equal(t, []string{"tool_1", "tool_2"}, hits)
	assert.Equal(t, []string{"tool_1", "tool_2"}, c.State().Selected)
	assert.Equal(t, ModeIdle, c.Mode())
	_, ok = c.SelectionRect()
	assert.False(t, ok)

	// A second rectangle over already selected items never deselects.
	require.True(t, c.PointerDown(pos(0, 0), true))
	c.PointerUp(pos(0, 3))
	assert.Equal(t, []string{"tool_1", "tool_2"}, c.State().Selected)
}

func TestSelectionIsNotHistory(t *testing.T) {
	c, _ := newTestController(t)
	require.NoError(t, drop(t, c, peg, pos(0, 0)))
	require.NoError(t, drop(t, c, peg, pos(2, 0)))

	id, ok := c.Click(pos(0, 0), true)
	require.True(t, ok)
	assert.Equal(t, "tool_1", id)
	assert.Equal(t, []string{"tool_2", "tool_1"}, c.State().Selected)

	_, ok = c.Click(pos(8, 8), false)
	assert.False(t, ok)

	// Undo goes back past the placement of tool_2, not past the click.
	require.True(t, c.Undo())
	assert.Equal(t, []string{"tool_1"}, c.State().Selected)
}

func TestClickToggle(t *testing.T) {
	c, _ := newTestController(t)
	require.NoError(t, drop(t, c, peg, pos(0, 0)))
	require.NoError(t, drop(t, c, peg, pos(2, 0)))
	before := c.State().IsSelected("tool_1")

	c.Click(pos(0, 0), true)
	c.Click(pos(0, 0), true)
	assert.Equal(t, before, c.State().IsSelected("tool_1"))

	c.Click(pos(0, 0), false)
	assert.Equal(t, []string{"tool_1"}, c.State().Selected)
}

func TestDeleteSelected(t *testing.T) {
	c, rec := newTestController(t)
	assert.Equal(t, 0, c.DeleteSelected(), "empty selection is a no-op")
	assert.False(t, c.CanUndo())

	require.NoError(t, drop(t, c, peg, pos(0, 0)))
	require.NoError(t, drop(t, c, peg, pos(2, 0)))
	require.NoError(t, drop(t, c, peg, pos(4, 0)))
	c.Select("tool_1", true)

	assert.Equal(t, 2, c.DeleteSelected())
	assert.Equal(t, "Deleted 2 tool(s)", rec.last().Message)
	assert.Empty(t, c.State().Selected)
	require.Len(t, c.State().Items, 1)
	assert.Equal(t, "tool_2", c.State().Items[0].ID)
}

func TestDeleteIDsIsIdempotent(t *testing.T) {
	c, _ := newTestController(t)
	require.NoError(t, drop(t, c, peg, pos(0, 0)))
	require.NoError(t, drop(t, c, peg, pos(2, 0)))

	assert.Equal(t, 1, c.DeleteIDs([]string{"tool_1"}))
	once := c.State()
	cursor := c.history.Cursor()

	assert.Equal(t, 0, c.DeleteIDs([]string{"tool_1"}))
	assert.True(t, c.State().Equal(once))
	assert.Equal(t, cursor, c.history.Cursor(), "a no-op delete is not recorded")
}

func TestClearBoard(t *testing.T) {
	c, rec := newTestController(t)
	require.NoError(t, drop(t, c, peg, pos(0, 0)))
	require.NoError(t, drop(t, c, cutters, pos(3, 3)))

	c.ClearBoard()
	assert.Empty(t, c.State().Items)
	assert.Empty(t, c.State().Selected)
	assert.Equal(t, NoticeCleared, rec.last().Kind)
	assert.Equal(t, 2, rec.last().Count)

	require.True(t, c.Undo())
	assert.Len(t, c.State().Items, 2)
}

func TestMoveDrag(t *testing.T) {
	c, rec := newTestController(t)
	require.NoError(t, drop(t, c, screwdriver, pos(0, 0)))
	require.NoError(t, drop(t, c, cutters, pos(5, 5)))

	require.True(t, c.StartMove("tool_1"))
	d := c.Drag()
	require.True(t, d.Active)
	assert.Equal(t, "tool_1", d.SourceID)
	require.NotNil(t, d.Preview)
	assert.Equal(t, pos(0, 0), *d.Preview)

	p := pos(0, 1)
	c.UpdateDragPreview(&p)
	assert.True(t, c.PreviewValid(), "an item may overlap its own old cells")
	require.NoError(t, c.DropAt(p))
	it, _ := c.State().Item("tool_1")
	assert.Equal(t, pos(0, 1), it.Position)
	assert.Equal(t, NoticeMoved, rec.last().Kind)

	require.True(t, c.StartMove("tool_1"))
	err := c.DropAt(pos(5, 3))
	assert.True(t, errors.Is(err, errors.ErrCodePlacementRejected))
	it, _ = c.State().Item("tool_1")
	assert.Equal(t, pos(0, 1), it.Position)

	require.True(t, c.Undo())
	it, _ = c.State().Item("tool_1")
	assert.Equal(t, pos(0, 0), it.Position)

	assert.False(t, c.StartMove("nope"))
}

func TestMoveInPlaceIsNotRecorded(t *testing.T) {
	c, _ := newTestController(t)
	require.NoError(t, drop(t, c, peg, pos(0, 0)))
	require.NoError(t, drop(t, c, peg, pos(2, 0)))
	cursor := c.history.Cursor()

	require.True(t, c.StartMove("tool_1"))
	require.NoError(t, c.DropAt(pos(0, 0)))
	assert.Equal(t, cursor, c.history.Cursor())
	assert.Equal(t, []string{"tool_1"}, c.State().Selected)
}

func TestDropOutside(t *testing.T) {
	c, rec := newTestController(t)
	require.NoError(t, drop(t, c, peg, pos(0, 0)))
	require.NoError(t, drop(t, c, peg, pos(2, 0)))
	require.NoError(t, drop(t, c, peg, pos(4, 0)))

	// Palette drags dropped anywhere off the grid are cancelled.
	require.True(t, c.StartDrag(peg))
	assert.Equal(t, 0, c.DropOutside(true))
	assert.Len(t, c.State().Items, 3)

	// An unselected item on the trash goes alone.
	c.Select("tool_1", false)
	require.True(t, c.StartMove("tool_3"))
	assert.Equal(t, 1, c.DropOutside(true))
	assert.Equal(t, []string{"tool_1"}, c.State().Selected)

	// A selected item takes the whole selection with it.
	c.Select("tool_2", true)
	require.True(t, c.StartMove("tool_2"))
	assert.Equal(t, 2, c.DropOutside(true))
	assert.Empty(t, c.State().Items)
	assert.Equal(t, NoticeDeleted, rec.last().Kind)

	require.True(t, c.Undo())
	require.True(t, c.StartMove("tool_1"))
	assert.Equal(t, 0, c.DropOutside(false), "not on the trash: cancel")
	assert.Len(t, c.State().Items, 2)
}

func TestCancelDragIsPureNoop(t *testing.T) {
	c, rec := newTestController(t)
	require.True(t, c.StartDrag(peg))
	p := pos(3, 3)
	c.UpdateDragPreview(&p)
	assert.Equal(t, []geometry.Position{p}, c.PreviewCells())

	c.CancelDrag()
	assert.Equal(t, ModeIdle, c.Mode())
	assert.False(t, c.Drag().Active)
	assert.Empty(t, rec.notices)
	assert.False(t, c.CanUndo())
	assert.NoError(t, c.DropAt(p), "drop without a drag does nothing")
	assert.Empty(t, c.State().Items)
}

func TestGesturesExcludeEachOther(t *testing.T) {
	c, _ := newTestController(t)
	require.True(t, c.StartDrag(peg))
	assert.False(t, c.PointerDown(pos(0, 0), true), "no rectangle mid-drag")
	assert.False(t, c.StartDrag(cutters))
	c.CancelDrag()

	require.True(t, c.PointerDown(pos(0, 0), true))
	assert.False(t, c.StartDrag(peg))
	c.CancelRect()
	assert.Equal(t, ModeIdle, c.Mode())
}

func TestPreviewValidity(t *testing.T) {
	c, _ := newTestController(t)
	require.NoError(t, drop(t, c, screwdriver, pos(0, 0)))

	assert.False(t, c.PreviewValid(), "no drag")
	require.True(t, c.StartDrag(cutters))
	assert.False(t, c.PreviewValid(), "no preview yet")

	p := pos(0, 2)
	c.UpdateDragPreview(&p)
	assert.False(t, c.PreviewValid())
	p = pos(1, 2)
	c.UpdateDragPreview(&p)
	assert.True(t, c.PreviewValid())

	c.UpdateDragPreview(nil)
	assert.Nil(t, c.Drag().Preview)
	assert.False(t, c.CanRedo())
}

func TestUndoEndsGesture(t *testing.T) {
	c, _ := newTestController(t)
	require.NoError(t, drop(t, c, peg, pos(0, 0)))
	require.True(t, c.StartDrag(cutters))
	require.True(t, c.Undo())
	assert.Equal(t, ModeIdle, c.Mode())
}

func TestPointerToGrid(t *testing.T) {
	c, _ := newTestController(t)
	c.SetViewport(Viewport{OriginX: 100, OriginY: 50, CellWidth: 30, CellHeight: 30})

	tests := []struct {
		x, y int
		want geometry.Position
	}{
		{100, 50, pos(0, 0)},
		{129, 79, pos(0, 0)},
		{130, 80, pos(1, 1)},
		{699, 499, pos(19, 14)},
		{99, 49, pos(-1, -1)},
		{40, 50, pos(-2, 0)},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, c.PointerToGrid(tt.x, tt.y), "pointer (%d,%d)", tt.x, tt.y)
	}

	x, y := c.Viewport().FromGrid(pos(2, 3))
	assert.Equal(t, 160, x)
	assert.Equal(t, 140, y)
}

func TestDefaultViewportUsesCellSize(t *testing.T) {
	c := New(board.New(geometry.Size{Width: 20, Height: 15}, 30))
	assert.Equal(t, pos(2, 1), c.PointerToGrid(61, 45))
}

func TestDebugLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})
	c := New(board.New(geometry.Size{Width: 4, Height: 4}, 10), WithLogger(logger))

	require.True(t, c.StartDrag(peg))
	require.NoError(t, c.DropAt(pos(1, 1)))
	assert.Contains(t, buf.String(), "placed")
	assert.Contains(t, buf.String(), "history recorded")
}

func TestNoticeKindString(t *testing.T) {
	assert.Equal(t, "rejected", NoticeRejected.String())
	assert.True(t, Notice{Kind: NoticeRejected}.Warning())
	assert.False(t, Notice{Kind: NoticePlaced}.Warning())
	assert.Equal(t, "DRAG", ModeDragging.String())

	var got Notice
	NotifierFunc(func(n Notice) { got = n }).Notify(Notice{Kind: NoticeCleared})
	assert.Equal(t, NoticeCleared, got.Kind)
}
