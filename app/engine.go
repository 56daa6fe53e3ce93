package app

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/miosa/osa-vnav/config"
	"github.com/miosa/osa-vnav/ui/accel"
	"github.com/miosa/osa-vnav/ui/focus"
	"github.com/miosa/osa-vnav/ui/scroller"
	"github.com/miosa/osa-vnav/ui/spatial"
	"github.com/miosa/osa-vnav/ui/vlist"
)

// Container IDs.
const (
	gridID    = "grid"
	toolbarID = "toolbar"
)

// card is the render node of one grid item.
type card struct {
	Index int
	Title string
}

func renderCard(it vlist.Item) card {
	return card{Index: it.Index, Title: "#" + strconv.Itoa(it.Index)}
}

// ---------------------------------------------------------------------------
// Toolbar
// ---------------------------------------------------------------------------

type toolbar struct {
	buttons []string
}

func newToolbar() toolbar {
	return toolbar{buttons: []string{"wrap", "orientation", "rtl", "theme", "grow", "shrink", "help"}}
}

func (t toolbar) id(i int) string { return toolbarID + "/" + t.buttons[i] }

func (t toolbar) index(id string) int {
	name, ok := strings.CutPrefix(id, toolbarID+"/")
	if !ok {
		return -1
	}
	return slices.Index(t.buttons, name)
}

func (t toolbar) contains(id string) bool { return t.index(id) >= 0 }

// ---------------------------------------------------------------------------
// Engine
// ---------------------------------------------------------------------------

// engine owns the list, its hosts and the navigation coordinator. Model
// copies share it by pointer.
type engine struct {
	cfg      config.Config
	list     *vlist.List[card]
	scroll   *scroller.Scroller
	registry *focus.Registry
	coord    *spatial.Coordinator
	accel    *accel.Accelerator
	toolbar  toolbar
	nodes    spatial.Nodes
	logger   *slog.Logger

	gestureSeq int
	pauses     int
	resumes    int
}

func newEngine(cfg config.Config, logger *slog.Logger, scrollOpts ...scroller.Option) (*engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	e := &engine{
		cfg:     cfg,
		toolbar: newToolbar(),
		nodes:   spatial.NewNodes(gridID, uuid.NewString()[:8]),
		logger:  logger,
	}

	opts := append([]scroller.Option{
		scroller.WithDuration(cfg.ScrollDuration()),
		scroller.WithLogger(logger),
	}, scrollOpts...)
	e.scroll = scroller.New(opts...)

	list, err := vlist.New(cfg.List(), renderCard,
		vlist.WithDataSize(cfg.DataSize),
		vlist.WithScroller(e.scroll),
		vlist.WithLogger(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("app: build list: %w", err)
	}
	e.list = list
	e.registry = focus.NewRegistry(focus.WithLogger(logger))

	copts := []spatial.CoordinatorOption{
		spatial.WithOptions(cfg.Navigation()),
		spatial.WithDisabled(e.disabled),
		spatial.WithLogger(logger),
	}
	if cfg.Accelerate {
		e.accel = accel.New()
		copts = append(copts, spatial.WithAccelerator(e.accel))
	}
	e.coord = spatial.NewCoordinator(e.nodes, e.list, e.scroll, e.registry, copts...)

	err = errors.Join(
		e.registry.Register(focus.Container{
			ID:                 gridID,
			EnterTo:            cfg.Enter(),
			Contains:           e.coord.Contains,
			DefaultElement:     e.coord.DefaultElement,
			LastFocusedPersist: e.coord.PersistLastFocused,
			LastFocusedRestore: e.coord.RestoreLastFocused,
		}),
		e.registry.Register(focus.Container{
			ID:             toolbarID,
			Contains:       e.toolbar.contains,
			DefaultElement: func() string { return e.toolbar.id(0) },
		}),
		e.registry.Link(gridID, spatial.Up, toolbarID),
		e.registry.Link(toolbarID, spatial.Down, gridID),
	)
	if err != nil {
		return nil, fmt.Errorf("app: register containers: %w", err)
	}

	e.registry.OnChange(func(_, next string) { e.coord.FocusChanged(next) })
	// Pointer focus is refused for as long as navigation is paused. The
	// coordinator's resume hook runs first and may pause again.
	e.registry.OnPause(func() {
		e.pauses++
		e.registry.SetDisabled(gridID, true)
	})
	e.registry.OnResume(func() {
		e.resumes++
		e.registry.SetDisabled(gridID, e.registry.IsPaused())
	})
	e.scroll.OnScroll(func(pos int) {
		e.list.DidScroll(pos)
		e.coord.DidRender()
	})

	e.syncBounds()
	e.registry.Enter(gridID)
	return e, nil
}

func (e *engine) disabled(i int) bool { return e.cfg.Disabled(i) }

// focused returns the focused item index, or -1.
func (e *engine) focused() int {
	if i, ok := e.nodes.IndexOf(e.registry.Current()); ok {
		return i
	}
	return -1
}

// syncBounds pushes the list bounds into the scroller and lets a waiting
// navigation observe the new window.
func (e *engine) syncBounds() {
	e.scroll.SetMax(e.list.MaxScroll())
	e.coord.DidRender()
}

// follow scrolls the focused item back into view after a layout change.
func (e *engine) follow() {
	if i := e.focused(); i >= 0 {
		e.coord.Sync().OnFocus(i)
	}
}

func (e *engine) resize(w, h int) {
	e.list.SetSize(w, h)
	e.syncBounds()
	if e.registry.Current() == gridID {
		e.registry.Enter(gridID)
	}
	e.follow()
}

// setDataSize grows or shrinks the dataset. Focus on a removed item moves to
// the new last item.
func (e *engine) setDataSize(n int) {
	n = max(0, n)
	e.cfg.DataSize = n
	e.list.SetDataSize(n)
	e.syncBounds()

	if i := e.focused(); i >= n {
		if n == 0 || !e.coord.FocusIndex(n-1) {
			e.registry.Focus(gridID)
		}
	}
}

// applyConfig swaps the layout and navigation settings in place.
func (e *engine) applyConfig(cfg config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := e.list.SetConfig(cfg.List()); err != nil {
		return err
	}
	e.cfg = cfg
	e.coord.SetOptions(cfg.Navigation())
	e.list.SetDataSize(cfg.DataSize)
	e.syncBounds()
	e.follow()
	return nil
}

// ---------------------------------------------------------------------------
// Input
// ---------------------------------------------------------------------------

// navigate routes a directional key to the focused container. It reports
// whether anything consumed the key.
func (e *engine) navigate(k spatial.Key) bool {
	cur := e.registry.Current()
	switch {
	case cur == "" || cur == gridID:
		if e.registry.IsPaused() {
			return true
		}
		return e.registry.Enter(gridID)
	case e.registry.ContainerOf(cur) == toolbarID:
		if k.Direction == spatial.Left || k.Direction == spatial.Right {
			return e.stepToolbar(k.Direction)
		}
		return e.registry.Move(k.Direction)
	}
	if e.coord.HandleKey(k) {
		return true
	}
	return e.registry.Move(k.Direction)
}

func (e *engine) stepToolbar(d spatial.Direction) bool {
	i := e.toolbar.index(e.registry.Current())
	j := i + 1
	if d == spatial.Left {
		j = i - 1
	}
	if i < 0 || j < 0 || j >= len(e.toolbar.buttons) {
		return false
	}
	return e.registry.Focus(e.toolbar.id(j))
}

// pageKey returns the page-sized key moving forward or backward along the
// scrolling axis.
func (e *engine) pageKey(forward, repeat bool) spatial.Key {
	d := spatial.Down
	if !e.list.Vertical() {
		d = spatial.Right
		if e.list.RTL() {
			d = spatial.Left
		}
	}
	if !forward {
		d = d.Opposite()
	}
	return spatial.Key{Direction: d, Lines: e.list.LinesPerPage(), Repeat: repeat}
}

// wheel scrolls by lines grid lines as a pointer gesture and returns the
// sequence number identifying this wheel event.
func (e *engine) wheel(lines int) int {
	e.coord.Sync().BeginGesture()
	e.scroll.ScrollBy(lines*e.list.Metrics().Primary.GridSize, false)
	// A jump cancels any navigation scroll; let a waiting target resolve.
	e.coord.ScrollSettled()
	e.gestureSeq++
	return e.gestureSeq
}

// endGesture ends the gesture if seq is still the latest wheel event.
func (e *engine) endGesture(seq int) bool {
	if seq != e.gestureSeq {
		return false
	}
	return e.coord.Sync().EndGesture()
}

// click focuses the item under a point in list coordinates.
func (e *engine) click(x, y int) bool {
	i := e.list.IndexAt(x, y, e.scroll.Offset())
	if i < 0 {
		return false
	}
	return e.registry.FocusFromPointer(e.nodes.ItemID(i))
}
