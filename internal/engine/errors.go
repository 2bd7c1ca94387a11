package engine

import (
	"errors"
	"fmt"
)

// ErrInvalidName is returned by Login for a blank name.
var ErrInvalidName = errors.New("engine: player name must not be empty")

// SessionCreationError reports that a session could not be recorded.
type SessionCreationError struct {
	PlayerID int64
	ThemeID  int64
	Err      error
}

func (e *SessionCreationError) Error() string {
	return fmt.Sprintf("engine: create session for player %d, theme %d: %v", e.PlayerID, e.ThemeID, e.Err)
}

func (e *SessionCreationError) Unwrap() error {
	return e.Err
}
