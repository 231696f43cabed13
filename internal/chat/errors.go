package chat

import (
	"errors"
	"fmt"
)

// Validation rejections are surfaced to the UI as notices, never as faults.
var (
	// ErrEmptyUserName is returned when an added user name trims to nothing.
	ErrEmptyUserName = errors.New("user name is empty")

	// ErrEmptyMessage is returned when a sent message trims to nothing.
	ErrEmptyMessage = errors.New("message text is empty")

	// ErrNoCurrentUser is returned when sending without a selected identity.
	ErrNoCurrentUser = errors.New("no current user selected")
)

// DuplicateUserError is returned when adding a user whose name already
// exists in the roster, compared case-insensitively.
type DuplicateUserError struct {
	Name string
}

func (e *DuplicateUserError) Error() string {
	return fmt.Sprintf("user %q already exists", e.Name)
}
