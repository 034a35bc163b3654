package domain

import "errors"

var (
	// ErrInvalidTransition is returned when an event is not allowed from the
	// session's current status. The session is left unchanged.
	ErrInvalidTransition = errors.New("invalid work transition")

	// ErrDoneNoteRequired is returned when an end event carries an empty or
	// whitespace-only note.
	ErrDoneNoteRequired = errors.New("done notes are required to end a work session")
)
