package session

import "strings"

// loginTransition computes the snapshot produced by a login. It has no side
// effects; the store applies and persists the result.
func loginTransition(token string, user User) (Snapshot, error) {
	if strings.TrimSpace(token) == "" {
		return Snapshot{}, ErrInvalidToken
	}
	if !user.Valid() {
		return Snapshot{}, ErrInvalidUser
	}
	u := user
	return Snapshot{Token: token, User: &u}, nil
}

// logoutTransition returns the empty snapshot whatever the current state.
func logoutTransition(Snapshot) Snapshot {
	return Snapshot{}
}
