package sessiontransport

import "errors"

var (
	// ErrNoClientID is returned when the request carries no client cookie.
	ErrNoClientID = errors.New("sessiontransport: no client id")

	// ErrInvalidClientID is returned when the client cookie is tampered or malformed.
	ErrInvalidClientID = errors.New("sessiontransport: invalid client id")

	// ErrNotJWT is returned by InspectBearer for tokens that are not JWTs.
	ErrNotJWT = errors.New("sessiontransport: bearer token is not a JWT")
)
