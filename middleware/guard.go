package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/biblio2ie/biblio/core/handler"
	"github.com/biblio2ie/biblio/core/logger"
	"github.com/biblio2ie/biblio/core/response"
	"github.com/biblio2ie/biblio/core/session"
)

// DefaultHydrationWait is how long a guard waits for a restoring session
// before falling back to the placeholder page.
const DefaultHydrationWait = 250 * time.Millisecond

// GuardConfig configures the route guard.
type GuardConfig[C handler.Context] struct {
	// Skip defines a function to skip middleware execution for specific requests
	Skip func(ctx C) bool
	// Role required on the route. Empty admits any authenticated user.
	Role session.Role
	// RedirectTo is the target for rejected requests (default: "/")
	RedirectTo string
	// HydrationWait bounds the wait for session restore (default: 250ms).
	// A negative value disables waiting.
	HydrationWait time.Duration
	// LiveURL is the session channel the placeholder listens on (default: "/session/live")
	LiveURL string
	// Placeholder renders the pending page (default: GuardPlaceholder)
	Placeholder func(ctx C) handler.Response
	// Logger for structured logging (default: slog with io.Discard)
	Logger *slog.Logger
}

// RequireRole admits only users with role; everyone else is sent to "/".
//
//	r.Route("/admin", func(r router.Router[*app.Context]) {
//		r.Use(middleware.RequireRole[*app.Context](session.RoleAdmin))
//		...
//	})
func RequireRole[C handler.Context](role session.Role) handler.Middleware[C] {
	return GuardWithConfig(GuardConfig[C]{Role: role})
}

// RequireAuth admits any authenticated user and redirects the rest to redirectTo.
func RequireAuth[C handler.Context](redirectTo string) handler.Middleware[C] {
	return GuardWithConfig(GuardConfig[C]{RedirectTo: redirectTo})
}

// GuardWithConfig creates a route guard with custom configuration.
//
// The guard runs on every request to the route:
//   - while the store is still restoring it waits up to HydrationWait, then
//     serves the placeholder (200, Cache-Control: no-store), never a
//     redirect and never the protected handler;
//   - once restored, a missing token or a role mismatch redirects;
//   - otherwise the request proceeds.
//
// Pages served behind the guard subscribe to the live session channel and
// reload when the snapshot changes, so a logout elsewhere re-runs this check.
func GuardWithConfig[C handler.Context](cfg GuardConfig[C]) handler.Middleware[C] {
	if cfg.RedirectTo == "" {
		cfg.RedirectTo = "/"
	}
	if cfg.HydrationWait == 0 {
		cfg.HydrationWait = DefaultHydrationWait
	}
	if cfg.LiveURL == "" {
		cfg.LiveURL = "/session/live"
	}
	if cfg.Placeholder == nil {
		component := GuardPlaceholder(cfg.LiveURL)
		cfg.Placeholder = func(C) handler.Response {
			return response.NoStore(response.Templ(component))
		}
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			if cfg.Skip != nil && cfg.Skip(ctx) {
				return next(ctx)
			}

			store, ok := GetStore(ctx)
			if !ok {
				return response.Error(response.ErrInternalServerError.WithError(ErrNoSessionStore))
			}

			if !awaitHydration(ctx, store, cfg.HydrationWait) {
				return cfg.Placeholder(ctx)
			}

			snap := store.Read()
			if !admitted(snap, cfg.Role) {
				cfg.Logger.DebugContext(ctx, "route guard rejected request",
					logger.Component("guard"),
					logger.Path(ctx.Request().URL.Path),
					slog.String("required_role", string(cfg.Role)),
					slog.String("role", string(snap.Role())),
				)
				return response.NoStore(redirectAway(cfg.RedirectTo))
			}

			return response.NoStore(next(ctx))
		}
	}
}

// awaitHydration reports whether store is ready, waiting at most d.
func awaitHydration(ctx handler.Context, store *session.Store, d time.Duration) bool {
	if store.Hydration() == session.HydrationReady {
		return true
	}
	if d <= 0 {
		return false
	}

	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-store.Ready():
	case <-timer.C:
	case <-ctx.Done():
	}
	return store.Hydration() == session.HydrationReady
}

func admitted(snap session.Snapshot, role session.Role) bool {
	if !snap.IsAuthenticated() {
		return false
	}
	return role == "" || snap.HasRole(role)
}

// redirectAway uses 303 so that rejected form posts land on a GET.
func redirectAway(to string) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		if r.Method == http.MethodGet || r.Method == http.MethodHead {
			return response.Redirect(to)(w, r)
		}
		return response.RedirectSeeOther(to)(w, r)
	}
}
