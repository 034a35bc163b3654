package service

import "errors"

var (
	// ErrNotAssigned is returned when a work event targets a member that has
	// no session row on the project.
	ErrNotAssigned = errors.New("member is not assigned to project")

	ErrAlreadyAssigned = errors.New("member is already assigned to project")

	// ErrSessionActive blocks unassigning a member whose session is running
	// or on hold, which would leave an unterminated segment in the history.
	ErrSessionActive = errors.New("work session is still active")
)
