package app

// State represents the current application state.
type State int

const (
	StateBrowsing State = iota // D-pad drives the grid and toolbar
	StateHelp                  // Help overlay is open
)

func (s State) String() string {
	switch s {
	case StateBrowsing:
		return "browsing"
	case StateHelp:
		return "help"
	default:
		return "unknown"
	}
}
