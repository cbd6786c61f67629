package session

import "errors"

var (
	// ErrInvalidToken is returned by Login for an empty token.
	ErrInvalidToken = errors.New("session: token must not be empty")
	// ErrInvalidUser is returned by Login for a malformed user profile.
	ErrInvalidUser = errors.New("session: user profile is incomplete or has an unknown role")
	// ErrCorruptSnapshot wraps decoding failures of persisted snapshots.
	ErrCorruptSnapshot = errors.New("session: corrupt persisted snapshot")
)
