package app

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/miosa/osa-vnav/config"
	"github.com/miosa/osa-vnav/msg"
	"github.com/miosa/osa-vnav/style"
	"github.com/miosa/osa-vnav/ui/anim"
	"github.com/miosa/osa-vnav/ui/common"
	"github.com/miosa/osa-vnav/ui/scroller"
	"github.com/miosa/osa-vnav/ui/spatial"
	"github.com/miosa/osa-vnav/ui/status"
	"github.com/miosa/osa-vnav/ui/toast"
	"github.com/miosa/osa-vnav/ui/vlist"
)

// ProfileDir is set by main to the user's profile directory path.
var ProfileDir string

// dataStep is how many items grow and shrink add or remove.
const dataStep = 100

// -- Options ------------------------------------------------------------------

type options struct {
	logger     *slog.Logger
	scrollOpts []scroller.Option
	now        func() time.Time
}

// Option configures New.
type Option func(*options)

// WithLogger routes engine debug output to l.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithScrollerOptions passes extra options to the scroller, after the ones
// derived from the config.
func WithScrollerOptions(opts ...scroller.Option) Option {
	return func(o *options) { o.scrollOpts = append(o.scrollOpts, opts...) }
}

// WithClock replaces time.Now for key timestamps and toasts.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// -- Model --------------------------------------------------------------------

// Model is the root Bubble Tea model. The engine is shared by pointer, so
// copies of the model drive the same list and focus state.
type Model struct {
	e       *engine
	keys    KeyMap
	state   State
	layout  Layout
	spinner anim.Model
	status  status.Model
	toasts  toast.Model
	help    *helpCache
	now     func() time.Time

	width        int
	height       int
	selected     int
	toastTicking bool
}

// New builds the model from cfg. It fails only when cfg is invalid.
func New(cfg config.Config, opts ...Option) (Model, error) {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	e, err := newEngine(cfg, o.logger, o.scrollOpts...)
	if err != nil {
		return Model{}, err
	}
	style.SetTheme(cfg.Theme)
	return Model{
		e:        e,
		keys:     DefaultKeyMap(),
		state:    StateBrowsing,
		spinner:  anim.New(anim.Opts{}),
		status:   status.New(),
		toasts:   toast.New(o.now),
		help:     &helpCache{},
		now:      o.now,
		selected: -1,
	}, nil
}

// Init requests the terminal size.
func (m Model) Init() tea.Cmd {
	return func() tea.Msg { return tea.RequestWindowSize() }
}

// -- Update -------------------------------------------------------------------

func (m Model) Update(rawMsg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch v := rawMsg.(type) {

	case tea.WindowSizeMsg:
		m.width, m.height = v.Width, v.Height
		m.relayout()

	case scroller.TickMsg:
		cmds = append(cmds, m.e.scroll.Update(v))

	case scroller.SettledMsg:
		if v.ID == m.e.scroll.ID() {
			m.e.coord.ScrollSettled()
		}

	case anim.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(v)
		cmds = append(cmds, cmd)

	case msg.GestureIdle:
		m.e.endGesture(v.Seq)

	case msg.Selected:
		m.selected = v.Index
		cmds = append(cmds, m.toast(toast.Info, "selected #%d", v.Index))

	case msg.ConfigSaved:
		if v.Err != nil {
			cmds = append(cmds, m.toast(toast.Error, "save failed: %v", v.Err))
		} else {
			cmds = append(cmds, m.toast(toast.Info, "saved %s", v.Path))
		}

	case msg.ToastTick:
		m.toasts.Tick()
		m.toastTicking = m.toasts.HasToasts()
		if m.toastTicking {
			cmds = append(cmds, toastTick())
		}

	case tea.MouseWheelMsg:
		if m.state != StateBrowsing {
			break
		}
		lines := m.e.cfg.WheelLines
		switch v.Button {
		case tea.MouseWheelUp, tea.MouseWheelLeft:
			lines = -lines
		case tea.MouseWheelDown, tea.MouseWheelRight:
		default:
			lines = 0
		}
		if lines != 0 {
			seq := m.e.wheel(lines)
			cmds = append(cmds, tea.Tick(m.e.cfg.GestureIdle(), func(time.Time) tea.Msg {
				return msg.GestureIdle{Seq: seq}
			}))
		}

	case tea.MouseClickMsg:
		if m.state != StateBrowsing {
			break
		}
		y := v.Y - m.layout.ListTop()
		if y >= 0 && y < m.layout.ListHeight && v.X < m.layout.ListWidth {
			m.e.click(v.X, y)
		}

	case tea.KeyPressMsg:
		var cmd tea.Cmd
		m, cmd = m.handleKey(v)
		cmds = append(cmds, cmd)
	}

	cmds = append(cmds, m.e.scroll.Cmd(), m.syncSpinner())
	return m, tea.Batch(cmds...)
}

func (m Model) handleKey(k tea.KeyPressMsg) (Model, tea.Cmd) {
	if key.Matches(k, m.keys.Quit) {
		return m, tea.Quit
	}
	if m.state == StateHelp {
		if key.Matches(k, m.keys.Escape, m.keys.Help) {
			m.state = StateBrowsing
		}
		return m, nil
	}

	switch {
	case key.Matches(k, m.keys.Up):
		return m.move(m.dpad(spatial.Up, k))
	case key.Matches(k, m.keys.Down):
		return m.move(m.dpad(spatial.Down, k))
	case key.Matches(k, m.keys.Left):
		return m.move(m.dpad(spatial.Left, k))
	case key.Matches(k, m.keys.Right):
		return m.move(m.dpad(spatial.Right, k))
	case key.Matches(k, m.keys.PageUp):
		return m.move(m.page(false, k))
	case key.Matches(k, m.keys.PageDown):
		return m.move(m.page(true, k))
	case key.Matches(k, m.keys.Select):
		return m.activate()
	case key.Matches(k, m.keys.Wrap):
		return m.action("wrap")
	case key.Matches(k, m.keys.Orientation):
		return m.action("orientation")
	case key.Matches(k, m.keys.RTL):
		return m.action("rtl")
	case key.Matches(k, m.keys.Theme):
		return m.action("theme")
	case key.Matches(k, m.keys.Grow):
		return m.action("grow")
	case key.Matches(k, m.keys.Shrink):
		return m.action("shrink")
	case key.Matches(k, m.keys.Help):
		return m.action("help")
	case key.Matches(k, m.keys.Save):
		cmd := m.save()
		return m, cmd
	}
	return m, nil
}

// move navigates and announces wraps and long scrolls.
func (m Model) move(k spatial.Key) (Model, tea.Cmd) {
	prev := m.e.coord.State()
	m.e.navigate(k)
	if !m.toasts.Navigation(prev, m.e.coord.State()) {
		return m, nil
	}
	cmd := m.startToastTicker()
	return m, cmd
}

func (m Model) dpad(d spatial.Direction, k tea.KeyPressMsg) spatial.Key {
	return spatial.Key{Direction: d, Lines: 1, Repeat: k.IsRepeat, At: m.now()}
}

func (m Model) page(forward bool, k tea.KeyPressMsg) spatial.Key {
	pk := m.e.pageKey(forward, k.IsRepeat)
	pk.At = m.now()
	return pk
}

// activate handles enter: a focused item is selected, a focused toolbar
// button runs its action.
func (m Model) activate() (Model, tea.Cmd) {
	if i := m.e.focused(); i >= 0 {
		at := m.now()
		return m, func() tea.Msg { return msg.Selected{Index: i, At: at} }
	}
	if i := m.e.toolbar.index(m.e.registry.Current()); i >= 0 {
		return m.action(m.e.toolbar.buttons[i])
	}
	return m, nil
}

// action runs a toolbar command by name.
func (m Model) action(name string) (Model, tea.Cmd) {
	cfg := m.e.cfg
	switch name {
	case "wrap":
		w, _ := spatial.ParseWrapMode(cfg.Wrap)
		cfg.Wrap = spatial.WrapMode((int(w) + 1) % 3).String()
	case "orientation":
		if m.e.list.Vertical() {
			cfg.Orientation = vlist.Horizontal.String()
		} else {
			cfg.Orientation = vlist.Vertical.String()
		}
	case "rtl":
		cfg.RTL = !cfg.RTL
	case "theme":
		style.SetTheme(style.NextTheme())
		cfg.Theme = style.CurrentThemeName
		m.spinner.SetColors(style.GradColorA, style.GradColorB)
	case "grow":
		m.e.setDataSize(cfg.DataSize + dataStep)
		return m, nil
	case "shrink":
		m.e.setDataSize(cfg.DataSize - dataStep)
		return m, nil
	case "help":
		m.state = StateHelp
		return m, nil
	default:
		return m, nil
	}
	if err := m.e.applyConfig(cfg); err != nil {
		cmd := m.toast(toast.Error, "%v", err)
		return m, cmd
	}
	m.relayout()
	return m, nil
}

func (m *Model) save() tea.Cmd {
	if ProfileDir == "" {
		return m.toast(toast.Warning, "no profile directory")
	}
	cfg := m.e.cfg
	path := filepath.Join(ProfileDir, config.Filename)
	return func() tea.Msg {
		return msg.ConfigSaved{Path: path, Err: config.Save(path, cfg)}
	}
}

func (m *Model) relayout() {
	if m.width == 0 || m.height == 0 {
		return
	}
	o := m.e.list.Config().Orientation
	m.layout = ComputeLayout(m.width, m.height, o)
	m.e.resize(m.layout.ListWidth, m.layout.ListHeight)
}

// toast queues a notification and starts the expiry ticker if needed.
func (m *Model) toast(level toast.Level, format string, args ...any) tea.Cmd {
	m.toasts.Addf(level, format, args...)
	return m.startToastTicker()
}

func (m *Model) startToastTicker() tea.Cmd {
	if m.toastTicking {
		return nil
	}
	m.toastTicking = true
	return toastTick()
}

func toastTick() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg { return msg.ToastTick{} })
}

// syncSpinner runs the spinner for as long as navigation is paused.
func (m *Model) syncSpinner() tea.Cmd {
	paused := m.e.registry.IsPaused()
	switch {
	case paused && !m.spinner.IsSpinning():
		return m.spinner.Start()
	case !paused && m.spinner.IsSpinning():
		m.spinner.Stop()
	}
	return nil
}

// -- View ---------------------------------------------------------------------

func (m Model) View() tea.View {
	v := tea.NewView(m.renderView())
	v.AltScreen = true
	v.MouseMode = tea.MouseModeCellMotion
	return v
}

func (m Model) renderView() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	l := m.layout
	bodyHeight := max(0, m.height-toolbarHeight-statusHeight)

	var body string
	if m.state == StateHelp {
		body = renderHelp(m.help, m.keys, m.width, bodyHeight)
	} else {
		rows := renderGrid(m.e, l.ListWidth, l.ListHeight, m.selected)
		overlayRight(rows, m.toasts.View(l.ListWidth), l.ListWidth)
		bar := common.NewScrollbar(m.e.list.Bounds(), l.Orientation, m.e.scroll.Offset())
		body = joinScrollbar(rows, bar.View(), l.Orientation, l.ListWidth)
	}

	st := m.status
	st.SetWidth(m.width)
	st.SetSpinner(m.spinner.View())
	st.SetHint(common.KeyHelp(m.keys.ShortBindings()...))
	st.Set(m.snapshot())

	return strings.Join([]string{renderToolbar(m.e, m.width), body, st.View()}, "\n")
}

func (m Model) snapshot() status.Snapshot {
	e := m.e
	w := e.list.Window()
	unit := "cols"
	if !e.list.Vertical() {
		unit = "rows"
	}
	return status.Snapshot{
		FirstIndex: w.FirstIndex,
		NumOfItems: w.NumOfItems,
		DataSize:   e.list.DataSize(),
		Focused:    e.focused(),
		Selected:   m.selected,
		Offset:     e.scroll.Offset(),
		MaxScroll:  e.list.MaxScroll(),
		Phase:      e.coord.State().Phase.String(),
		Wrap:       e.cfg.Wrap,
		Paused:     e.registry.PauseCount(),
		Layout:     fmt.Sprintf("%d %s", e.list.DimensionToExtent(), unit),
	}
}
