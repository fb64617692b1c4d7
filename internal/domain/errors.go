package domain

import "errors"

// Sentinel errors returned by the core operations. All are recoverable and
// reach the caller as typed results; errors.Is at the boundaries.
var (
	// ErrNotFound marks a consultation, participant, room or issue that does
	// not exist or is soft-deleted.
	ErrNotFound = errors.New("not found")

	// ErrNotAuthorized marks a role or ownership check failure.
	ErrNotAuthorized = errors.New("not authorized")

	// ErrInvalidTransition marks a lifecycle guard failure: the consultation
	// is not in a state the operation accepts.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrAlreadyStarted is returned to the loser of a start race. Benign:
	// the consultation is live either way.
	ErrAlreadyStarted = errors.New("consultation already started")

	// ErrOutsideJoinWindow marks a waiting-room join attempted before or
	// after the allowed window around the scheduled start.
	ErrOutsideJoinWindow = errors.New("outside waiting room join window")

	// ErrNoProviderAvailable means no active, configured video provider
	// satisfies the required capabilities. A configuration problem, not a
	// transient one.
	ErrNoProviderAvailable = errors.New("no video provider available")
)
