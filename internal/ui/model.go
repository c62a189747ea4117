package ui

import (
	"context"
	"reflect"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/mindmap-tui/internal/backend"
	"github.com/atomicstack/mindmap-tui/internal/data/dispatcher"
	"github.com/atomicstack/mindmap-tui/internal/logging/events"
	"github.com/atomicstack/mindmap-tui/internal/theme"
	"github.com/atomicstack/mindmap-tui/internal/tree"
	"github.com/atomicstack/mindmap-tui/internal/ui/command"
	uistate "github.com/atomicstack/mindmap-tui/internal/ui/state"
)

type Mode int

const (
	ModeOutline Mode = iota
	ModeEdit
	ModeSearch
)

const (
	defaultSaveGrace = 750 * time.Millisecond
	doubleClickGap   = 400 * time.Millisecond
	infoLifetime     = 5 * time.Second
)

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// Options configures a Model.
type Options struct {
	Engine     *tree.Engine
	Watcher    *backend.Watcher
	Width      int
	Height     int
	ShowFooter bool
	Verbose    bool
	ExportPath string
	Clipboard  command.Clipboard
	// SaveGrace is how long watcher events are ignored after our own save.
	SaveGrace time.Duration
	Context   context.Context
}

// Model implements the Bubble Tea model for the outline editor.
type Model struct {
	ctx        context.Context
	engine     *tree.Engine
	dispatcher *dispatcher.Dispatcher
	outline    *uistate.Outline
	bus        *command.Bus
	keys       keyMap
	help       help.Model

	mode       Mode
	labelForm  *labelForm
	searchForm *searchForm

	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool
	showFooter  bool
	verbose     bool

	errMsg     string
	infoMsg    string
	infoExpire time.Time

	backend      *backend.Watcher
	storeChanged bool
	saveGrace    time.Duration

	quitArmed      bool
	childrenFolded map[int64]bool
	lastClickID    int64
	lastClickAt    time.Time
	exportPath     string
	clipboard      command.Clipboard

	handlers map[reflect.Type]msgHandler
}

// NewModel initialises the UI state around an already loaded engine.
func NewModel(opts Options) *Model {
	engine := opts.Engine
	if engine == nil {
		engine = tree.New()
	}
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	grace := opts.SaveGrace
	if grace <= 0 {
		grace = defaultSaveGrace
	}
	exportPath := opts.ExportPath
	if exportPath == "" {
		exportPath = engine.Key() + ".md"
	}
	clip := opts.Clipboard
	if clip == nil {
		clip = command.SystemClipboard()
	}
	h := help.New()
	h.ShowAll = false
	m := &Model{
		ctx:            ctx,
		engine:         engine,
		dispatcher:     dispatcher.New(engine),
		outline:        uistate.NewOutline(),
		bus:            command.New(),
		keys:           defaultKeyMap(),
		help:           h,
		mode:           ModeOutline,
		showFooter:     opts.ShowFooter,
		verbose:        opts.Verbose,
		backend:        opts.Watcher,
		saveGrace:      grace,
		childrenFolded: make(map[int64]bool),
		exportPath:     exportPath,
		clipboard:      clip,
	}
	if opts.Width > 0 {
		m.width = opts.Width
		m.fixedWidth = true
	}
	if opts.Height > 0 {
		m.height = opts.Height
		m.fixedHeight = true
	}
	m.help.Width = m.width
	m.rebuild()
	m.registerHandlers()
	return m
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	if m.backend != nil {
		return waitForBackendEvent(m.backend)
	}
	return nil
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, 2)
	if handled, cmd := m.handleActiveForm(msg); handled {
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		return m, m.finishUpdate(cmds)
	}

	if handler := m.handlerFor(msg); handler != nil {
		if cmd := handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, m.finishUpdate(cmds)
}

// Close releases engine subscriptions held by the model.
func (m *Model) Close() {
	m.dispatcher.Close()
}

// Mode reports which input mode is active.
func (m *Model) Mode() Mode {
	return m.mode
}

// Outline exposes the flattened rows for tests and tooling.
func (m *Model) Outline() *uistate.Outline {
	return m.outline
}

func (m *Model) handleActiveForm(msg tea.Msg) (bool, tea.Cmd) {
	// only key presses go to forms; resizes and results still reach handlers
	if _, ok := msg.(tea.KeyMsg); !ok {
		return false, nil
	}
	switch m.mode {
	case ModeEdit:
		return m.handleLabelForm(msg)
	case ModeSearch:
		return m.handleSearchForm(msg)
	default:
		return false, nil
	}
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.MouseMsg{}):      m.handleMouseMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(command.Result{}):    m.handleActionResultMsg,
		reflect.TypeOf(backendEventMsg{}):   m.handleBackendEventMsg,
		reflect.TypeOf(backendDoneMsg{}):    m.handleBackendDoneMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

// finishUpdate folds engine notifications raised during this update into
// the visible rows.
func (m *Model) finishUpdate(cmds []tea.Cmd) tea.Cmd {
	res := m.dispatcher.Drain()
	if res.RootChanged || res.ToolbarChanged || len(res.Nodes) > 0 {
		m.rebuild()
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

func (m *Model) rebuild() {
	m.outline.Rebuild(m.engine)
	m.dispatcher.Track(m.outline.IDs())
	m.outline.EnsureCursorVisible(m.maxVisibleRows())
	events.UI.Rebuild(len(m.outline.Rows))
}

func (m *Model) activeID() int64 {
	if active := m.engine.Active(); active != nil {
		return active.ID
	}
	return 0
}
