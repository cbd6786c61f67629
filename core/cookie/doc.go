// Package cookie manages HTTP cookies with HMAC signing, AES-256-GCM
// encryption and one-time flash values.
//
// Signing and encryption keys are derived from each configured secret with
// HKDF-SHA256. Listing an old secret after the new one keeps existing
// cookies readable during rotation.
//
//	m, err := cookie.New([]string{os.Getenv("COOKIE_SECRET")}, cookie.WithSecure(true))
//	err = m.SetSigned(w, "biblio_client", clientID)
//	id, err := m.GetSigned(r, "biblio_client")
package cookie
