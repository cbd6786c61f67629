package sessionstore

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/biblio2ie/biblio/core/session"
	"github.com/biblio2ie/biblio/integration/database/pg"
)

type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Postgres persists snapshots in the session_snapshots table created by
// pg.Migrate. Calls join a transaction carried by the context (pg.WithTx).
type Postgres struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

func (p *Postgres) db(ctx context.Context) querier {
	if tx, ok := pg.TxFromContext(ctx); ok {
		return tx
	}
	return p.pool
}

func (p *Postgres) Load(ctx context.Context, key string) (session.Snapshot, bool, error) {
	var payload []byte
	err := p.db(ctx).QueryRow(ctx,
		`SELECT payload FROM session_snapshots WHERE storage_key = $1`, key,
	).Scan(&payload)
	if pg.IsNotFoundError(err) {
		return session.Snapshot{}, false, nil
	}
	if err != nil {
		return session.Snapshot{}, false, err
	}
	snap, err := decode(payload)
	if err != nil {
		return session.Snapshot{}, false, err
	}
	return snap, true, nil
}

func (p *Postgres) Save(ctx context.Context, key string, snap session.Snapshot) error {
	raw, err := encode(snap)
	if err != nil {
		return err
	}
	_, err = p.db(ctx).Exec(ctx, `
		INSERT INTO session_snapshots (storage_key, payload, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (storage_key) DO UPDATE SET payload = EXCLUDED.payload, updated_at = EXCLUDED.updated_at`,
		key, raw,
	)
	return err
}
