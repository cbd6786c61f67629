// Package session keeps the authentication state of each client: a bearer
// token and the matching user profile.
//
// A Store is the single source of truth for one client. Login and Logout are
// its only mutations; both replace token and user together and persist the
// result through an injected Persister under the key "auth-storage:<client>".
// A new store starts in HydrationUnknown and becomes HydrationReady once the
// persisted snapshot has been restored, so readers can tell "not restored yet"
// apart from "logged out".
//
//	reg := session.NewRegistry(persister, session.WithHydrateTimeout(2*time.Second))
//	store := reg.Get(clientID)
//	<-store.Ready()
//	if err := store.Login(token, user); err != nil {
//		// invalid token or user, store unchanged
//	}
//	snap := store.Read()
//
// Persistence failures are logged once and the store continues in memory.
package session
