// Package pg connects to Postgres through pgxpool, applies the embedded goose
// migrations and carries transactions through contexts.
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	if err := pg.Migrate(ctx, pool, log); err != nil {
//		return err
//	}
package pg
