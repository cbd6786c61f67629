package session

import "context"

// Persister is the durable slot behind a store. Load reports found=false when
// nothing was saved under key. Implementations must be safe for concurrent use.
type Persister interface {
	Load(ctx context.Context, key string) (snap Snapshot, found bool, err error)
	Save(ctx context.Context, key string, snap Snapshot) error
}
