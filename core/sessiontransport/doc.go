// Package sessiontransport connects HTTP requests to session stores.
//
// A browser is identified by a random client id kept in a signed cookie.
// The id selects the client's store in a session.Registry; the bearer token
// and profile never leave the server.
//
//	transport := sessiontransport.NewCookie(registry, cookies)
//	store, clientID, err := transport.Load(ctx)
//
// Load issues a new id when the cookie is missing or fails verification.
// Lookup does the same resolution without issuing, which suits endpoints
// such as websockets that cannot set cookies. Authenticate signs a client in
// under a freshly issued id and retires the previous one.
//
// InspectBearer reads the expiry of a JWT bearer token for display. It does
// not verify signatures.
package sessiontransport
