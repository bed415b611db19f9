package editor

import (
	"errors"
	"fmt"
)

// ErrNotOpen is returned by operations requiring open carousel.
var ErrNotOpen = errors.New("editor is not open")

// UserError is failure the host should present to the user. It never
// leaves editor state half applied.
type UserError struct {
	Op      string
	Message string
	Err     error
}

func (e *UserError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Err)
}

func (e *UserError) Unwrap() error { return e.Err }

// IsUserError reports whether err carries user visible message.
func IsUserError(err error) (*UserError, bool) {
	var ue *UserError
	if errors.As(err, &ue) {
		return ue, true
	}
	return nil, false
}
