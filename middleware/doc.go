// Package middleware provides HTTP middleware for the generic router.
//
// Every middleware is a handler.Middleware[C] and works with any context
// type implementing handler.Context.
//
// # Request plumbing
//
//   - RequestID assigns a UUID per request and echoes it in X-Request-ID.
//   - ClientIP resolves the client address through proxy headers.
//   - Logging writes one structured line per request.
//   - BodyLimit caps form submissions.
//   - SecurityHeaders sets CSP, frame and referrer policies.
//
// # Session and access control
//
// Session resolves the client's session store through a StoreLoader
// (usually sessiontransport.Cookie) and stores it in context:
//
//	r.Use(middleware.Session[*app.Context](transport))
//
//	func dashboard(ctx *app.Context) handler.Response {
//		snap := middleware.MustGetStore(ctx).Read()
//		...
//	}
//
// RequireRole and RequireAuth guard routes on the store's state. A guard
// never trusts an empty store before it has been restored: while hydration
// is unknown it waits briefly and then serves a neutral placeholder page
// instead of either the protected content or a redirect.
//
//	r.Route("/admin", func(r router.Router[*app.Context]) {
//		r.Use(middleware.RequireRole[*app.Context](session.RoleAdmin))
//		r.Get("/livres", adminBooks)
//	})
//
// Order matters: RequestID and ClientIP before Logging's inner handlers,
// Session before any guard.
package middleware
