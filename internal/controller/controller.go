// Package controller turns pointer, drag and keyboard gestures into board
// operations.
//
// The controller is the only writer of board state. Each command runs
// validation, mutation and history recording to completion before it
// returns; the host event loop delivers one gesture at a time, so no locking
// is needed. Drag previews and selection rectangles live here as plain
// fields and never enter history.
package controller

import (
	"io"
	"slices"

	"github.com/charmbracelet/log"

	"pegboard/internal/board"
	"pegboard/internal/geometry"
	"pegboard/internal/history"
	"pegboard/internal/placement"
)

// Mode is the gesture the controller is in.
type Mode int

const (
	ModeIdle Mode = iota
	ModeRectSelecting
	ModeDragging
)

func (m Mode) String() string {
	switch m {
	case ModeIdle:
		return "IDLE"
	case ModeRectSelecting:
		return "SELECT"
	case ModeDragging:
		return "DRAG"
	default:
		return "UNKNOWN"
	}
}

// DragState describes a drag in progress. SourceID is empty for blueprints
// dragged from the palette and names the item for drags of placed items.
type DragState struct {
	Active    bool
	Blueprint board.Blueprint
	SourceID  string
	Preview   *geometry.Position
}

// SelectionRect is the rubber band of a rectangle selection, in cells.
type SelectionRect struct {
	Anchor  geometry.Position
	Current geometry.Position
}

// Rect returns the normalized, inclusive rectangle.
func (r SelectionRect) Rect() geometry.Rect {
	return geometry.NormalizeRect(r.Anchor, r.Current)
}

// Controller owns the board state, its history and the transient gesture
// state.
type Controller struct {
	state    board.State
	history  *history.Log
	mode     Mode
	drag     DragState
	rect     SelectionRect
	viewport Viewport

	ids      board.IDFunc
	notifier Notifier
	logger   *log.Logger
}

// Option configures a Controller.
type Option func(*Controller)

// WithNotifier sets the receiver of user-facing notices.
func WithNotifier(n Notifier) Option {
	return func(c *Controller) { c.notifier = n }
}

// WithLogger sets the logger used for debug tracing of commands.
func WithLogger(l *log.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// WithIDs sets the id source for new items.
func WithIDs(ids board.IDFunc) Option {
	return func(c *Controller) { c.ids = ids }
}

// WithViewport sets the pointer-to-grid mapping.
func WithViewport(v Viewport) Option {
	return func(c *Controller) { c.viewport = v }
}

// New returns a controller whose history starts with initial.
func New(initial board.State, opts ...Option) *Controller {
	c := &Controller{
		state:    initial.Clone(),
		history:  history.New(initial),
		viewport: Viewport{CellWidth: initial.CellSize, CellHeight: initial.CellSize},
		ids:      board.UUIDs(),
		notifier: nopNotifier{},
		logger:   log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns a copy of the current board.
func (c *Controller) State() board.State { return c.state.Clone() }

// Mode returns the current gesture mode.
func (c *Controller) Mode() Mode { return c.mode }

// Drag returns the current drag state. Active is false outside a drag.
func (c *Controller) Drag() DragState {
	d := c.drag
	if d.Preview != nil {
		p := *d.Preview
		d.Preview = &p
	}
	return d
}

// SelectionRect returns the rubber band while a rectangle selection is in
// progress.
func (c *Controller) SelectionRect() (SelectionRect, bool) {
	return c.rect, c.mode == ModeRectSelecting
}

// CanUndo reports whether there is a snapshot before the current one.
func (c *Controller) CanUndo() bool { return c.history.CanUndo() }

// CanRedo reports whether there is a snapshot after the current one.
func (c *Controller) CanRedo() bool { return c.history.CanRedo() }

// Viewport returns the pointer-to-grid mapping.
func (c *Controller) Viewport() Viewport { return c.viewport }

// SetViewport replaces the pointer-to-grid mapping, for example after the
// host layout changed.
func (c *Controller) SetViewport(v Viewport) { c.viewport = v }

// PointerToGrid maps pointer coordinates to a grid cell.
func (c *Controller) PointerToGrid(x, y int) geometry.Position {
	return c.viewport.ToGrid(x, y)
}

// PreviewCells returns the cells the dragged shape would cover at the
// current preview position.
func (c *Controller) PreviewCells() []geometry.Position {
	if c.mode != ModeDragging || c.drag.Preview == nil {
		return nil
	}
	return geometry.OccupiedCells(c.drag.Blueprint.Shape, *c.drag.Preview)
}

// PreviewValid reports whether dropping at the preview position would be
// accepted. It is false when there is no preview.
func (c *Controller) PreviewValid() bool {
	if c.mode != ModeDragging || c.drag.Preview == nil {
		return false
	}
	return placement.CanPlace(c.drag.Blueprint.Shape, *c.drag.Preview,
		c.state.Footprints(c.drag.SourceID), c.state.Grid)
}

// record commits the current state as a new history entry.
func (c *Controller) record() {
	c.history.Record(c.state)
	c.logger.Debug("history recorded", "len", c.history.Len(), "cursor", c.history.Cursor())
}

func (c *Controller) notify(n Notice) {
	c.notifier.Notify(n)
}

func (c *Controller) selectedIDs() []string {
	return slices.Clone(c.state.Selected)
}
