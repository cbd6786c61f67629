package static

import (
	"io/fs"
	"net/http"

	"github.com/biblio2ie/biblio/core/handler"
)

type fsConfig struct {
	fs           fs.FS
	stripPrefix  string
	subPath      string
	cacheControl string
}

// FSOption configures FS.
type FSOption func(*fsConfig)

// WithFSStripPrefix removes prefix from the URL path before lookup, so
// "/static/app.css" serves "app.css".
func WithFSStripPrefix(prefix string) FSOption {
	return func(c *fsConfig) {
		c.stripPrefix = prefix
	}
}

// WithSubFS serves files from a subdirectory of the filesystem.
func WithSubFS(path string) FSOption {
	return func(c *fsConfig) {
		c.subPath = path
	}
}

// WithCacheControl sets the Cache-Control header of served files.
func WithCacheControl(value string) FSOption {
	return func(c *fsConfig) {
		c.cacheControl = value
	}
}

// FS serves files from fsys, including embed.FS. It panics at startup when
// the sub path is invalid or the root cannot be opened.
func FS[C handler.Context](fsys fs.FS, opts ...FSOption) handler.HandlerFunc[C] {
	cfg := &fsConfig{fs: fsys}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.subPath != "" {
		sub, err := fs.Sub(fsys, cfg.subPath)
		if err != nil {
			panic("static.FS: invalid sub-path '" + cfg.subPath + "': " + err.Error())
		}
		cfg.fs = sub
	}
	if _, err := cfg.fs.Open("."); err != nil {
		panic("static.FS: filesystem is not accessible: " + err.Error())
	}

	fileServer := http.FileServer(neuteredFileSystem{fs: http.FS(cfg.fs)})
	if cfg.stripPrefix != "" {
		fileServer = http.StripPrefix(cfg.stripPrefix, fileServer)
	}

	return func(ctx C) handler.Response {
		return func(w http.ResponseWriter, r *http.Request) error {
			if cfg.cacheControl != "" {
				w.Header().Set("Cache-Control", cfg.cacheControl)
			}
			fileServer.ServeHTTP(w, r)
			return nil
		}
	}
}
