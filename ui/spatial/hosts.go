package spatial

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/miosa/osa-vnav/ui/pause"
)

// Layout is the read side of a virtualized list as seen by navigation.
type Layout interface {
	DataSize() int
	DimensionToExtent() int
	Vertical() bool
	RTL() bool
	IsRendered(index int) bool
	ItemExtent(index int) (start, end int)
	ClientSize() int
	MaxScroll() int
	LinesPerPage() int
	OffsetForIndex(index int, leading bool) int
}

// ScrollHost moves the viewport.
type ScrollHost interface {
	ScrollTo(offset int, animate bool)
	Offset() int
	IsAnimatingToward(offset int) bool
	Stop()
}

// FocusHost owns the current focus target and the navigation pause.
type FocusHost interface {
	Focus(id string) bool
	Current() string
	IsPaused() bool
	Pause(owner string) pause.Token
	Resume(t pause.Token)
	OnResume(fn func())
}

// Accelerator throttles held-down keys.
type Accelerator interface {
	ShouldProcessRepeat(k Key) bool
}

// Nodes maps item indices to focus target IDs inside one container.
type Nodes struct {
	Container   string
	placeholder string
}

// NewNodes returns the ID scheme for container. token distinguishes the
// placeholder of this container from any other.
func NewNodes(container, token string) Nodes {
	return Nodes{Container: container, placeholder: fmt.Sprintf("%s/placeholder-%s", container, token)}
}

// ItemID returns the focus target ID of index.
func (n Nodes) ItemID(index int) string {
	return n.Container + "/item/" + strconv.Itoa(index)
}

// PlaceholderID returns the ID of the transient placeholder node.
func (n Nodes) PlaceholderID() string { return n.placeholder }

// IndexOf parses an item ID produced by ItemID.
func (n Nodes) IndexOf(id string) (int, bool) {
	rest, ok := strings.CutPrefix(id, n.Container+"/item/")
	if !ok {
		return -1, false
	}
	i, err := strconv.Atoi(rest)
	if err != nil || i < 0 {
		return -1, false
	}
	return i, true
}
