// Package msg defines the tea.Msg types shared between the app and the ui
// packages. It has no upstream imports to avoid import cycles.
package msg

import "time"

// -- Pointer gestures --

// GestureIdle fires after the wheel has been quiet for the idle timeout.
// Seq identifies the wheel event that scheduled it; a newer wheel event
// supersedes older timers.
type GestureIdle struct {
	Seq int
}

// -- Selection --

// Selected reports that the focused item was activated with enter.
type Selected struct {
	Index int
	At    time.Time
}

// -- Config --

// ConfigSaved reports the outcome of writing the config file.
type ConfigSaved struct {
	Path string
	Err  error
}

// -- Toasts --

// ToastTick prunes expired notifications.
type ToastTick struct{}
