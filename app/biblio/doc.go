// Package biblio is the university library web front-end.
//
// It serves the public catalogue, the student space and the admin pages,
// and keeps one session store per browser. Stores are keyed by a signed
// client cookie, restored from the configured backend (memory, file,
// sqlite, redis or postgres) and pushed to open pages over a websocket so
// a logout in one tab reloads the others.
//
// Basic usage:
//
//	app, err := biblio.NewApp(ctx)
//	if err != nil {
//		return err
//	}
//	return app.Run(ctx)
//
// Configuration is read from the environment (and .env). See Config.
package biblio
