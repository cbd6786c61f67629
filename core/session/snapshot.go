package session

import "encoding/json"

// Namespace is the fixed prefix of every persisted snapshot key.
const Namespace = "auth-storage"

// Key returns the persistence key of a client's snapshot.
func Key(clientID string) string {
	return Namespace + ":" + clientID
}

// Snapshot is the authentication state of one client. Token and User are
// either both set or both empty.
type Snapshot struct {
	Token string
	User  *User
}

// IsAuthenticated reports whether the snapshot carries a token and a user.
func (s Snapshot) IsAuthenticated() bool {
	return s.Token != "" && s.User != nil
}

// HasRole reports whether the snapshot is authenticated with role r.
func (s Snapshot) HasRole(r Role) bool {
	return s.IsAuthenticated() && s.User.Role == r
}

// Role returns the user's role, or "" when anonymous.
func (s Snapshot) Role() Role {
	if s.User == nil {
		return ""
	}
	return s.User.Role
}

// clone returns a deep copy so callers never share the store's User.
func (s Snapshot) clone() Snapshot {
	if s.User == nil {
		return Snapshot{Token: s.Token}
	}
	u := *s.User
	return Snapshot{Token: s.Token, User: &u}
}

// normalize collapses any half-populated or malformed state to empty.
func (s Snapshot) normalize() Snapshot {
	if s.Token == "" || s.User == nil || !s.User.Valid() {
		return Snapshot{}
	}
	return s.clone()
}

type snapshotJSON struct {
	Token *string `json:"token"`
	User  *User   `json:"user"`
}

// MarshalJSON encodes the snapshot as {"token":...,"user":...}; the empty
// snapshot is {"token":null,"user":null}.
func (s Snapshot) MarshalJSON() ([]byte, error) {
	s = s.normalize()
	var out snapshotJSON
	if s.IsAuthenticated() {
		out.Token = &s.Token
		out.User = s.User
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes a persisted snapshot. A half state decodes as empty.
func (s *Snapshot) UnmarshalJSON(data []byte) error {
	var in snapshotJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	var decoded Snapshot
	if in.Token != nil {
		decoded.Token = *in.Token
	}
	decoded.User = in.User
	*s = decoded.normalize()
	return nil
}
