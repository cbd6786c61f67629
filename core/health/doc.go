// Package health provides liveness and readiness handlers.
//
//	r.Get("/healthz", health.Liveness[*biblio.Context])
//	r.Get("/readyz", health.Readiness[*biblio.Context](log, sqlite.Healthcheck(db)))
//
// Checks follow the func(context.Context) error signature exposed by the
// database integrations.
package health
