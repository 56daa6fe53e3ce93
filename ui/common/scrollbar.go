// Package common holds small rendering helpers shared by the vnav views.
package common

import (
	"strings"

	"github.com/miosa/osa-vnav/style"
	"github.com/miosa/osa-vnav/ui/vlist"
)

const (
	scrollTrackV = "│"
	scrollTrackH = "─"
	scrollThumbV = "█"
	scrollThumbH = "▀"
)

// ScrollbarModel tracks the dimensions needed to render a scrollbar along
// the scrolling axis of a list.
type ScrollbarModel struct {
	orientation vlist.Orientation
	viewport    int
	content     int
	offset      int
}

// NewScrollbar creates a ScrollbarModel for the primary axis of b.
func NewScrollbar(b vlist.ScrollBounds, o vlist.Orientation, offset int) ScrollbarModel {
	var s ScrollbarModel
	s.SetBounds(b, o, offset)
	return s
}

// SetBounds updates the scrollbar from fresh bounds.
func (s *ScrollbarModel) SetBounds(b vlist.ScrollBounds, o vlist.Orientation, offset int) {
	s.orientation = o
	s.offset = offset
	if o == vlist.Horizontal {
		s.viewport, s.content = b.ClientWidth, b.ScrollWidth
		return
	}
	s.viewport, s.content = b.ClientHeight, b.ScrollHeight
}

// Thumb returns the thumb start and length in cells. The length is zero
// when the content fits the viewport.
func (s ScrollbarModel) Thumb() (start, length int) {
	vp, ct := s.viewport, s.content
	if vp <= 0 || ct <= vp {
		return 0, 0
	}

	length = max(1, min(vp*vp/ct, vp))
	scrollable := ct - vp
	start = s.offset * (vp - length) / scrollable
	start = max(0, min(start, vp-length))
	return start, length
}

// View renders the scrollbar: a single column for vertical lists, a single
// row for horizontal ones. It is empty when the content fits.
func (s ScrollbarModel) View() string {
	start, length := s.Thumb()
	if length == 0 {
		return ""
	}

	track, thumb, sep := scrollTrackV, scrollThumbV, "\n"
	if s.orientation == vlist.Horizontal {
		track, thumb, sep = scrollTrackH, scrollThumbH, ""
	}

	cells := make([]string, s.viewport)
	for i := range cells {
		if i >= start && i < start+length {
			cells[i] = style.ScrollbarThumb.Render(thumb)
		} else {
			cells[i] = style.ScrollbarTrack.Render(track)
		}
	}
	return strings.Join(cells, sep)
}
