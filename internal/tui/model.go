// Package tui is the terminal front end of the pegboard editor: a palette of
// tool blueprints, the grid, a trash zone and a status line, driven by mouse
// and keyboard through the controller.
package tui

import (
	"context"
	"io"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"pegboard/internal/board"
	"pegboard/internal/catalog"
	"pegboard/internal/config"
	"pegboard/internal/controller"
	"pegboard/internal/geometry"
)

// Mode is what the keyboard is currently talking to.
type Mode int

const (
	ModeNormal Mode = iota
	ModeSearch
	ModeConfirm
)

// ConfirmAction is the action waiting on a y/n answer.
type ConfirmAction int

const (
	ConfirmClear ConfirmAction = iota
	ConfirmQuit
)

// Options configures a Model. Zero values fall back to the built-in catalog,
// default config, discarded logs, uuid ids and the system clipboard.
type Options struct {
	Config    *config.Config
	Catalog   *catalog.Catalog
	Logger    *log.Logger
	IDs       board.IDFunc
	Clipboard func(string) error
	Now       func() time.Time
}

// status is the message shown on the status line. The model and the
// controller's notifier share it through a pointer since bubbletea copies the
// model on every update.
type status struct {
	text string
	warn bool
	err  bool
}

func (s *status) success(text string) { *s = status{text: text} }
func (s *status) warning(text string) { *s = status{text: text, warn: true} }
func (s *status) fail(text string)    { *s = status{text: text, err: true} }
func (s *status) clear()              { *s = status{} }

// Model is the bubbletea model.
type Model struct {
	ctrl    *controller.Controller
	catalog *catalog.Catalog
	cfg     *config.Config
	logger  *log.Logger
	status  *status

	writeClipboard func(string) error
	now            func() time.Time

	width         int
	height        int
	mode          Mode
	confirmAction ConfirmAction
	help          bool
	helpScroll    int

	cursor       geometry.Position
	paletteIndex int
	search       string
	// grab is the offset from a dragged item's origin to the cell it was
	// picked up by, so the item keeps its place under the pointer.
	grab geometry.Position
}

// New builds the editor model with an empty board sized from the config.
func New(opts Options) Model {
	if opts.Config == nil {
		opts.Config = config.Default()
	}
	if opts.Catalog == nil {
		opts.Catalog = catalog.Default()
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.IDs == nil {
		opts.IDs = board.UUIDs()
	}
	if opts.Clipboard == nil {
		opts.Clipboard = clipboard.WriteAll
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	st := &status{}
	logger := opts.Logger
	notifier := controller.NotifierFunc(func(n controller.Notice) {
		text := n.Message
		if n.Detail != "" {
			text += " (" + n.Detail + ")"
		}
		if n.Warning() {
			st.warning(text)
		} else {
			st.success(text)
		}
		logger.Info("notice", "kind", n.Kind, "message", n.Message)
	})

	initial := board.New(opts.Config.Grid(), opts.Config.CellSize)
	ctrl := controller.New(initial,
		controller.WithNotifier(notifier),
		controller.WithLogger(opts.Logger),
		controller.WithIDs(opts.IDs),
		controller.WithViewport(gridViewport),
	)

	return Model{
		ctrl:           ctrl,
		catalog:        opts.Catalog,
		cfg:            opts.Config,
		logger:         opts.Logger,
		status:         st,
		writeClipboard: opts.Clipboard,
		now:            opts.Now,
	}
}

// Run starts the full-screen program and blocks until the user quits or ctx
// is cancelled.
func Run(ctx context.Context, m Model) error {
	p := tea.NewProgram(m,
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	_, err := p.Run()
	return err
}

// Controller exposes the engine behind the model.
func (m Model) Controller() *controller.Controller { return m.ctrl }

// Cursor returns the keyboard cursor cell.
func (m Model) Cursor() geometry.Position { return m.cursor }

// Mode returns the keyboard mode.
func (m Model) Mode() Mode { return m.mode }

// Status returns the current status message.
func (m Model) Status() string { return m.status.text }

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.MouseMsg:
		if m.help || m.mode != ModeNormal {
			return m, nil
		}
		m.handleMouse(msg)
		return m, nil

	case tea.KeyMsg:
		if m.help {
			return m.handleHelpKey(msg)
		}
		switch m.mode {
		case ModeConfirm:
			return m.handleConfirmKey(msg)
		case ModeSearch:
			return m.handleSearchKey(msg)
		default:
			return m.handleKey(msg)
		}
	}
	return m, nil
}

// palette returns the blueprints matching the search term, in the order the
// palette lists them.
func (m Model) palette() []board.Blueprint {
	var out []board.Blueprint
	for _, g := range catalog.GroupByType(m.catalog.Filter(m.search)) {
		out = append(out, g.Blueprints...)
	}
	return out
}

// activeBlueprint returns the highlighted palette entry.
func (m Model) activeBlueprint() (board.Blueprint, bool) {
	bps := m.palette()
	if len(bps) == 0 {
		return board.Blueprint{}, false
	}
	return bps[clamp(m.paletteIndex, 0, len(bps)-1)], true
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
