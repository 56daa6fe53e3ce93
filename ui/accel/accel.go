// Package accel throttles held-down keys. Early repeats are mostly skipped
// and the pass-through rate rises the longer the key is held, so a long
// press accelerates instead of flooding navigation.
package accel

import (
	"time"

	"github.com/miosa/osa-vnav/ui/spatial"
)

// DefaultFrequency processes every third repeat at first, then every
// second, then all of them.
var DefaultFrequency = []int{3, 3, 3, 2, 2, 2, 2, 1}

// DefaultResetGap is the pause between repeats that counts as a new press.
const DefaultResetGap = 300 * time.Millisecond

// Accelerator implements spatial.Accelerator.
type Accelerator struct {
	frequency []int
	resetGap  time.Duration

	dir     spatial.Direction
	last    time.Time
	stage   int
	skipped int
}

// New returns an accelerator with the given frequency table. An empty
// table uses DefaultFrequency; entries below one are treated as one.
func New(frequency ...int) *Accelerator {
	if len(frequency) == 0 {
		frequency = DefaultFrequency
	}
	f := make([]int, len(frequency))
	for i, v := range frequency {
		f[i] = max(v, 1)
	}
	return &Accelerator{frequency: f, resetGap: DefaultResetGap}
}

// SetResetGap changes the gap after which a repeat restarts the table.
func (a *Accelerator) SetResetGap(d time.Duration) { a.resetGap = d }

// Reset forgets the current press.
func (a *Accelerator) Reset() {
	a.stage, a.skipped = 0, 0
	a.last = time.Time{}
	a.dir = spatial.None
}

// ShouldProcessRepeat reports whether k should be acted on. Non-repeat keys
// always pass and restart the table.
func (a *Accelerator) ShouldProcessRepeat(k spatial.Key) bool {
	gap := !a.last.IsZero() && !k.At.IsZero() && k.At.Sub(a.last) > a.resetGap
	if !k.Repeat || k.Direction != a.dir || gap {
		a.Reset()
		a.dir = k.Direction
		a.last = k.At
		if !k.Repeat {
			return true
		}
	}
	a.last = k.At

	a.skipped++
	if a.skipped < a.frequency[min(a.stage, len(a.frequency)-1)] {
		return false
	}
	a.skipped = 0
	a.stage++
	return true
}
