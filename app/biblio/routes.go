package biblio

import (
	"github.com/biblio2ie/biblio/core/handler"
	"github.com/biblio2ie/biblio/core/health"
	"github.com/biblio2ie/biblio/core/router"
	"github.com/biblio2ie/biblio/core/session"
	"github.com/biblio2ie/biblio/core/static"
	"github.com/biblio2ie/biblio/middleware"
)

func (a *App) routes(r router.Router[*Context]) {
	security := middleware.LibrarySecurity
	security.IsDevelopment = a.config.IsDevelopment()

	r.Use(
		middleware.RequestID[*Context](),
		middleware.ClientIP[*Context](),
		middleware.LoggingWithConfig[*Context](middleware.LoggingConfig{Logger: a.logger}),
		middleware.SecurityHeadersWithConfig[*Context](security),
		middleware.BodyLimit[*Context](middleware.DefaultBodyLimit),
	)

	r.Get("/healthz", health.Liveness[*Context])
	r.Get("/readyz", health.Readiness[*Context](a.logger, a.backend.checks...))
	r.Get("/static/{path...}", static.FS[*Context](assetFS,
		static.WithSubFS("assets"),
		static.WithFSStripPrefix("/static"),
		static.WithCacheControl("public, max-age=3600"),
	))
	r.Get(liveURL, a.live)

	r.Group(func(r router.Router[*Context]) {
		r.Use(middleware.SessionWithConfig(middleware.SessionConfig[*Context]{
			Transport: a.transport,
			Logger:    a.logger,
		}))

		r.Get("/", a.home)
		r.Get("/livres", a.catalogue)
		r.Get("/livres/{id}", a.bookDetails)
		r.Post("/livres/{id}/emprunter", a.borrowBook)
		r.Post("/livres/{id}/avis", a.addReview)

		r.Get("/connexion", a.loginForm)
		r.Get("/inscription", a.registerForm)
		r.With(a.authThrottle()...).Post("/connexion", a.login)
		r.With(a.authThrottle()...).Post("/inscription", a.register)
		r.Post("/deconnexion", a.logout)

		r.With(middleware.GuardWithConfig(middleware.GuardConfig[*Context]{
			RedirectTo:    "/connexion",
			HydrationWait: a.config.Session.HydrationWait,
			LiveURL:       liveURL,
			Logger:        a.logger,
		})).Get("/dashboard", a.dashboard)

		r.Route("/admin", func(r router.Router[*Context]) {
			r.Use(middleware.GuardWithConfig(middleware.GuardConfig[*Context]{
				Role:          session.RoleAdmin,
				HydrationWait: a.config.Session.HydrationWait,
				LiveURL:       liveURL,
				Logger:        a.logger,
			}))

			r.Get("/", a.adminHome)
			r.Get("/livres", a.adminBooks)
			r.Get("/livres/nouveau", a.newBookForm)
			r.Post("/livres", a.createBook)
			r.Get("/livres/{id}/modifier", a.editBookForm)
			r.Post("/livres/{id}", a.updateBook)
			r.Post("/livres/{id}/supprimer", a.deleteBook)

			r.Get("/etudiants", a.adminStudents)
			r.Get("/etudiants/{id}/modifier", a.editStudentForm)
			r.Post("/etudiants/{id}", a.updateStudent)
			r.Post("/etudiants/{id}/supprimer", a.deleteStudent)

			r.Get("/emprunts", a.adminBorrows)
			r.Post("/emprunts/{id}/retour", a.returnBorrow)
		})
	})
}

// authThrottle limits credential submissions per client IP when enabled.
func (a *App) authThrottle() []handler.Middleware[*Context] {
	if a.throttle == nil {
		return nil
	}
	return []handler.Middleware[*Context]{
		middleware.RateLimit[*Context](middleware.RateLimitConfig{
			Limiter: a.throttle,
			Logger:  a.logger,
		}),
	}
}
