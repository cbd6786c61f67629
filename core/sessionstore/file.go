package sessionstore

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/biblio2ie/biblio/core/session"
)

// File stores one JSON file per key in a directory. Writes go to a temporary
// file that is renamed into place, so a crash never leaves a torn snapshot.
type File struct {
	dir string
}

// NewFile creates the directory if needed.
func NewFile(dir string) (*File, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create session dir: %w", err)
	}
	return &File{dir: dir}, nil
}

func (f *File) path(key string) string {
	return filepath.Join(f.dir, base64.RawURLEncoding.EncodeToString([]byte(key))+".json")
}

func (f *File) Load(ctx context.Context, key string) (session.Snapshot, bool, error) {
	if err := ctx.Err(); err != nil {
		return session.Snapshot{}, false, err
	}
	raw, err := os.ReadFile(f.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return session.Snapshot{}, false, nil
	}
	if err != nil {
		return session.Snapshot{}, false, err
	}
	snap, err := decode(raw)
	if err != nil {
		return session.Snapshot{}, false, err
	}
	return snap, true, nil
}

func (f *File) Save(ctx context.Context, key string, snap session.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	raw, err := encode(snap)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(f.dir, ".snapshot-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(raw); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), f.path(key))
}
