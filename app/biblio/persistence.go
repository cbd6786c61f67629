package biblio

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/biblio2ie/biblio/core/session"
	"github.com/biblio2ie/biblio/core/sessionstore"
	"github.com/biblio2ie/biblio/integration/database/pg"
	"github.com/biblio2ie/biblio/integration/database/redis"
	"github.com/biblio2ie/biblio/integration/database/sqlite"
)

// persistence is the snapshot backend selected by SESSION_PERSISTENCE,
// with its readiness checks and cleanup.
type persistence struct {
	persister session.Persister
	checks    []func(context.Context) error
	close     func() error
}

func openPersistence(ctx context.Context, cfg Config, log *slog.Logger) (persistence, error) {
	switch cfg.Session.Persistence {
	case "", session.PersistenceMemory:
		return persistence{persister: sessionstore.NewMemory()}, nil

	case session.PersistenceFile:
		f, err := sessionstore.NewFile(cfg.Session.FileDir)
		if err != nil {
			return persistence{}, err
		}
		return persistence{persister: f}, nil

	case session.PersistenceSQLite:
		db, err := sqlite.Open(ctx, cfg.Session.SQLitePath)
		if err != nil {
			return persistence{}, fmt.Errorf("open sqlite: %w", err)
		}
		store, err := sessionstore.NewSQLite(ctx, db)
		if err != nil {
			return persistence{}, errors.Join(err, db.Close())
		}
		return persistence{
			persister: store,
			checks:    []func(context.Context) error{sqlite.Healthcheck(db)},
			close:     db.Close,
		}, nil

	case session.PersistenceRedis:
		client, err := redis.Connect(ctx, cfg.Redis)
		if err != nil {
			return persistence{}, err
		}
		return persistence{
			persister: sessionstore.NewRedis(client, cfg.Redis.KeyTTL),
			checks:    []func(context.Context) error{redis.Healthcheck(client)},
			close:     client.Close,
		}, nil

	case session.PersistencePostgres:
		pool, err := pg.Connect(ctx, cfg.DB)
		if err != nil {
			return persistence{}, err
		}
		if err := pg.Migrate(ctx, pool, log); err != nil {
			pool.Close()
			return persistence{}, err
		}
		return persistence{
			persister: sessionstore.NewPostgres(pool),
			checks:    []func(context.Context) error{pg.Healthcheck(pool)},
			close: func() error {
				pool.Close()
				return nil
			},
		}, nil

	default:
		return persistence{}, fmt.Errorf("%w: %q", ErrUnknownPersistence, cfg.Session.Persistence)
	}
}

func (p persistence) Close() error {
	if p.close == nil {
		return nil
	}
	return p.close()
}
