package session

import "fmt"

// LevelStartError reports that a level could not be set up. The session
// keeps its previous level and state.
type LevelStartError struct {
	Level int
	Err   error
}

func (e *LevelStartError) Error() string {
	return fmt.Sprintf("session: start level %d: %v", e.Level, e.Err)
}

func (e *LevelStartError) Unwrap() error {
	return e.Err
}

// InvalidStateError reports an operation that is not legal in the
// session's current state.
type InvalidStateError struct {
	Op    string
	State State
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("session: %s not allowed in state %s", e.Op, e.State)
}
