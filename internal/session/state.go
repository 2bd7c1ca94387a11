package session

// State is a phase of the session lifecycle.
type State int

const (
	StateIdle State = iota
	StateRegistering
	StateThemeSelection
	StateLevelActive
	StateLevelComplete
	StateSessionEnded
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRegistering:
		return "registering"
	case StateThemeSelection:
		return "theme_selection"
	case StateLevelActive:
		return "level_active"
	case StateLevelComplete:
		return "level_complete"
	case StateSessionEnded:
		return "session_ended"
	default:
		return "unknown"
	}
}

// CompletionReason says why a level stopped accepting input.
type CompletionReason int

const (
	NotCompleted CompletionReason = iota
	AllFound
	TimedOut
	Quit
)

func (r CompletionReason) String() string {
	switch r {
	case AllFound:
		return "all_found"
	case TimedOut:
		return "timed_out"
	case Quit:
		return "quit"
	default:
		return "in_progress"
	}
}
