// Package focus is the in-process focus host: a registry of navigation
// containers, the current focus target, per-container disable flags and a
// shared navigation pause. A Registry is an explicit service object; nothing
// in this package is global.
package focus

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/miosa/osa-vnav/ui/pause"
	"github.com/miosa/osa-vnav/ui/spatial"
)

// Sentinel errors returned by Register.
var (
	ErrInvalidContainer   = errors.New("focus: invalid container")
	ErrDuplicateContainer = errors.New("focus: duplicate container")
)

// EnterTo selects what a container focuses when navigation enters it.
type EnterTo int

const (
	EnterLastFocused    EnterTo = iota // restore the last focused element
	EnterDefaultElement                // always focus the default element
)

func (e EnterTo) String() string {
	if e == EnterDefaultElement {
		return "default-element"
	}
	return "last-focused"
}

// ParseEnterTo accepts "last-focused" and "default-element".
func ParseEnterTo(s string) (EnterTo, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "last-focused", "lastfocused":
		return EnterLastFocused, nil
	case "default-element", "defaultelement":
		return EnterDefaultElement, nil
	}
	return EnterLastFocused, fmt.Errorf("focus: unknown enterTo %q", s)
}

// Container describes one navigation scope.
type Container struct {
	ID      string
	EnterTo EnterTo

	// Contains reports whether id is a focusable element of the container.
	Contains func(id string) bool

	// DefaultElement returns the element to focus when there is nothing to
	// restore. An empty result focuses the container itself.
	DefaultElement func() string

	// LastFocusedPersist converts the focused element into a key stored on
	// the container. Without it the element ID itself is stored.
	LastFocusedPersist func(id string) string

	// LastFocusedRestore turns a stored key back into an element ID.
	LastFocusedRestore func(key string) string
}

type entry struct {
	Container
	disabled bool
	lastKey  string
	links    map[spatial.Direction]string
}

// Registry implements spatial.FocusHost. It is meant to be driven from a
// single UI goroutine; only the pause set is safe for concurrent use.
type Registry struct {
	order     []*entry
	byID      map[string]*entry
	current   string
	pause     *pause.Set
	observers []func(prev, next string)
	logger    *slog.Logger
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger routes debug output to l.
func WithLogger(l *slog.Logger) Option {
	return func(r *Registry) {
		if l != nil {
			r.logger = l
		}
	}
}

// NewRegistry returns an empty registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		byID:   make(map[string]*entry),
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.pause = pause.New(r.logger)
	return r
}

// Register adds a container.
func (r *Registry) Register(c Container) error {
	if c.ID == "" {
		return fmt.Errorf("%w: empty id", ErrInvalidContainer)
	}
	if c.Contains == nil {
		return fmt.Errorf("%w: %s has no Contains hook", ErrInvalidContainer, c.ID)
	}
	if _, ok := r.byID[c.ID]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateContainer, c.ID)
	}
	e := &entry{Container: c, links: make(map[spatial.Direction]string)}
	r.order = append(r.order, e)
	r.byID[c.ID] = e
	r.logger.Debug("focus: container registered", "id", c.ID, "enterTo", c.EnterTo.String())
	return nil
}

// Unregister removes a container. Focus inside it is dropped.
func (r *Registry) Unregister(id string) {
	e, ok := r.byID[id]
	if !ok {
		return
	}
	if r.ownerOf(r.current) == e {
		r.setCurrent("")
	}
	delete(r.byID, id)
	for i, o := range r.order {
		if o == e {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

// Link makes a move in dir out of container from enter container to.
func (r *Registry) Link(from string, dir spatial.Direction, to string) error {
	e, ok := r.byID[from]
	if !ok {
		return fmt.Errorf("%w: unknown container %s", ErrInvalidContainer, from)
	}
	if _, ok := r.byID[to]; !ok {
		return fmt.Errorf("%w: unknown container %s", ErrInvalidContainer, to)
	}
	e.links[dir] = to
	return nil
}

// OnChange registers fn to observe focus changes.
func (r *Registry) OnChange(fn func(prev, next string)) {
	r.observers = append(r.observers, fn)
}

// Current returns the focused target ID, or "" when nothing has focus.
func (r *Registry) Current() string { return r.current }

// ContainerOf returns the container owning id, or "".
func (r *Registry) ContainerOf(id string) string {
	if e := r.ownerOf(id); e != nil {
		return e.ID
	}
	return ""
}

// Focus moves focus to id, which may be an element or a container ID.
func (r *Registry) Focus(id string) bool {
	if id == "" {
		return false
	}
	if r.ownerOf(id) == nil {
		return false
	}
	r.setCurrent(id)
	return true
}

// FocusFromPointer is Focus for pointer-driven requests, which disabled
// containers refuse.
func (r *Registry) FocusFromPointer(id string) bool {
	if e := r.ownerOf(id); e == nil || e.disabled {
		return false
	}
	return r.Focus(id)
}

// Move leaves the current container in dir through a link. It refuses while
// paused or when the target container is disabled.
func (r *Registry) Move(dir spatial.Direction) bool {
	if r.IsPaused() {
		return false
	}
	from := r.ownerOf(r.current)
	if from == nil {
		return false
	}
	to, ok := r.byID[from.links[dir]]
	if !ok {
		return false
	}
	return r.Enter(to.ID)
}

// Enter focuses container id according to its EnterTo rule.
func (r *Registry) Enter(id string) bool {
	e, ok := r.byID[id]
	if !ok || e.disabled {
		return false
	}
	var target string
	if e.EnterTo == EnterLastFocused && e.lastKey != "" {
		target = e.lastKey
		if e.LastFocusedRestore != nil {
			target = e.LastFocusedRestore(e.lastKey)
		}
	}
	if (target == "" || !e.Contains(target)) && e.DefaultElement != nil {
		target = e.DefaultElement()
	}
	if target == "" || !r.Focus(target) {
		r.setCurrent(e.ID)
	}
	r.logger.Debug("focus: entered container", "id", e.ID, "target", r.current)
	return true
}

// SetDisabled toggles container-level focus acquisition for id.
func (r *Registry) SetDisabled(id string, disabled bool) {
	if e, ok := r.byID[id]; ok {
		e.disabled = disabled
	}
}

// Disabled reports whether container id refuses container-level focus.
func (r *Registry) Disabled(id string) bool {
	e, ok := r.byID[id]
	return ok && e.disabled
}

// LastFocused returns the key container id stored for its last element.
func (r *Registry) LastFocused(id string) string {
	if e, ok := r.byID[id]; ok {
		return e.lastKey
	}
	return ""
}

// ---------------------------------------------------------------------------
// Pause
// ---------------------------------------------------------------------------

// Pause acquires a navigation pause on behalf of owner.
func (r *Registry) Pause(owner string) pause.Token { return r.pause.Acquire(owner) }

// Resume releases t.
func (r *Registry) Resume(t pause.Token) { r.pause.Release(t) }

// IsPaused reports whether any pause is outstanding.
func (r *Registry) IsPaused() bool { return r.pause.Paused() }

// PauseCount returns the number of outstanding pauses.
func (r *Registry) PauseCount() int { return r.pause.Count() }

// OnPause registers fn for the first pause.
func (r *Registry) OnPause(fn func()) { r.pause.OnPause(fn) }

// OnResume registers fn for the last release.
func (r *Registry) OnResume(fn func()) { r.pause.OnResume(fn) }

// ---------------------------------------------------------------------------
// Internals
// ---------------------------------------------------------------------------

func (r *Registry) ownerOf(id string) *entry {
	if id == "" {
		return nil
	}
	if e, ok := r.byID[id]; ok {
		return e
	}
	for _, e := range r.order {
		if e.Contains(id) {
			return e
		}
	}
	return nil
}

func (r *Registry) setCurrent(id string) {
	if id == r.current {
		return
	}
	prev := r.current
	r.current = id
	if e := r.ownerOf(id); e != nil && id != e.ID {
		key := id
		if e.LastFocusedPersist != nil {
			key = e.LastFocusedPersist(id)
		}
		if key != "" {
			e.lastKey = key
		}
	}
	r.logger.Debug("focus: changed", "from", prev, "to", id)
	for _, fn := range r.observers {
		fn(prev, id)
	}
}
