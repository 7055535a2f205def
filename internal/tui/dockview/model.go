// Package dockview is a terminal host for the dock: it lays stacks out over
// the terminal, draws tab bars and panels, and feeds mouse gestures to the
// drag controller.
package dockview

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/regenrek/peakydock/internal/config"
	"github.com/regenrek/peakydock/internal/dock"
	"github.com/regenrek/peakydock/internal/dockgeom"
	"github.com/regenrek/peakydock/internal/drag"
	"github.com/regenrek/peakydock/internal/layoutstore"
	"github.com/regenrek/peakydock/internal/tui/picker"
)

// statusRows is the number of terminal rows below the dock.
const statusRows = 1

// resizeStep is how far [ and ] move a divider, in dock.RatioScale units.
const resizeStep = 50

type mode int

const (
	modeDock mode = iota
	modeSave
	modePicker
)

type Options struct {
	Config config.Config
	// ConfigPath is watched for changes when set.
	ConfigPath string
	Store      *layoutstore.Store
	// Layout names a saved layout to open instead of the demo layout.
	Layout string
	// Clipboard defaults to the system clipboard.
	Clipboard func(string) error
}

type ghostState struct {
	visible bool
	title   string
	pos     dockgeom.Point
}

type indicatorState struct {
	visible bool
	rect    dockgeom.Rect
}

type Model struct {
	tree    *dock.Tree
	history *dock.History
	drag    *drag.Controller
	store   *layoutstore.Store
	catalog map[dock.ItemID]dock.Item

	cfg        config.Config
	configPath string
	keys       keyMap
	help       help.Model

	width, height int
	focus         dock.NodeID
	resizeSnap    map[dock.NodeID]dock.SnapState
	scratchCount  int

	ghost     ghostState
	indicator indicatorState

	mode      mode
	nameInput textinput.Model
	picker    list.Model

	status    status
	clipboard func(string) error

	configCh  chan configMsg
	stopWatch context.CancelFunc
	quitting  bool
}

// New builds the model and its tree. The tree starts from the saved layout
// named in opts, or the demo layout.
func New(opts Options) (*Model, error) {
	m := &Model{
		tree:       dock.NewTree(),
		history:    dock.NewHistory(),
		store:      opts.Store,
		catalog:    make(map[dock.ItemID]dock.Item),
		cfg:        opts.Config,
		configPath: opts.ConfigPath,
		keys:       defaultKeyMap(),
		help:       help.New(),
		resizeSnap: make(map[dock.NodeID]dock.SnapState),
		nameInput:  textinput.New(),
		picker:     picker.NewLayoutPicker(),
		clipboard:  opts.Clipboard,
	}
	if m.clipboard == nil {
		m.clipboard = clipboard.WriteAll
	}
	m.nameInput.Placeholder = "layout name"
	m.nameInput.CharLimit = layoutstore.MaxNameLength
	for _, item := range DemoItems() {
		m.catalog[item.ID] = item
	}
	m.tree.OnItemRemoved = func(item dock.Item) {
		slog.Debug("dockview: panel closed", slog.String("item", string(item.ID)))
	}
	m.history.Fallback = func(id dock.ItemID) (dock.Item, bool) {
		item, ok := m.catalog[id]
		return item, ok
	}
	m.drag = drag.NewController(m.tree, m, m)
	m.drag.SetThreshold(m.cfg.Dock.DragThreshold)
	m.drag.BeforeMove = func(dock.ItemID, dock.DropTarget) {
		m.history.Record(m.tree)
	}

	layout := DemoLayout()
	if opts.Layout != "" {
		if m.store == nil {
			return nil, fmt.Errorf("dockview: layout %q requested without a layout store", opts.Layout)
		}
		entry, err := m.store.Get(opts.Layout)
		if err != nil {
			return nil, err
		}
		layout = entry.Layout
	}
	if err := m.tree.SetLayout(layout, m.resolve); err != nil {
		return nil, err
	}
	m.focus = m.firstStack()
	return m, nil
}

// Tree exposes the dock for tests and callers embedding the model.
func (m *Model) Tree() *dock.Tree { return m.tree }

// resolve finds items for a restored layout: open items first, then the
// demo catalog.
func (m *Model) resolve(id dock.ItemID) (dock.Item, bool) {
	if item, ok := m.tree.Item(id); ok {
		return item, true
	}
	item, ok := m.catalog[id]
	return item, ok
}

func (m *Model) firstStack() dock.NodeID {
	stacks := m.tree.Stacks()
	if len(stacks) == 0 {
		return ""
	}
	return stacks[0]
}

// remember keeps every open item resolvable after the tree drops it.
func (m *Model) remember() {
	for _, id := range m.tree.Items() {
		if item, ok := m.tree.Item(id); ok {
			m.catalog[id] = item
		}
	}
}

// fixFocus moves focus to a live stack after the tree changed shape.
func (m *Model) fixFocus(prefer dock.ItemID) {
	if prefer != "" {
		if stack, err := m.tree.FindStackContaining(prefer); err == nil {
			m.focus = stack
			return
		}
	}
	if view, ok := m.tree.Node(m.focus); ok && view.IsStack() {
		return
	}
	m.focus = m.firstStack()
}

func (m *Model) Init() tea.Cmd {
	if m.configPath == "" {
		return nil
	}
	ctx, cancel := context.WithCancel(context.Background())
	ch := make(chan configMsg, 1)
	err := config.Watch(ctx, m.configPath, 0, func(cfg config.Config, err error) {
		select {
		case ch <- configMsg{cfg: cfg, err: err}:
		case <-ctx.Done():
		}
	})
	if err != nil {
		cancel()
		slog.Warn("dockview: config watch unavailable", slog.Any("err", err))
		return nil
	}
	m.configCh = ch
	m.stopWatch = cancel
	return waitForConfig(ch)
}

type configMsg struct {
	cfg config.Config
	err error
}

func waitForConfig(ch <-chan configMsg) tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return nil
		}
		return msg
	}
}

func (m *Model) applyConfig(cfg config.Config) {
	m.cfg = cfg
	m.drag.SetThreshold(cfg.Dock.DragThreshold)
	slog.Debug("dockview: config applied",
		slog.Int("drag_threshold", cfg.Dock.DragThreshold),
		slog.Int("tab_max_width", cfg.Dock.TabMaxWidth))
}

func (m *Model) quit() tea.Cmd {
	m.quitting = true
	m.drag.Abort()
	if m.stopWatch != nil {
		m.stopWatch()
		m.stopWatch = nil
	}
	return tea.Quit
}
