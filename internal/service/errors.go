package service

import "errors"

var (
	// ErrInvalidSessionID is returned when a session ID is empty.
	ErrInvalidSessionID = errors.New("invalid session id")

	// ErrEmptyMessage is returned when a chat message has no text.
	ErrEmptyMessage = errors.New("message is required")

	// ErrNoTripForSession is returned when a session has no planned trip yet.
	ErrNoTripForSession = errors.New("no trip plan for session")

	// ErrSessionBusy is returned when another edit of the same session is in flight.
	ErrSessionBusy = errors.New("session is being modified by another request")
)
