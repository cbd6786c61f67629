package biblio

import (
	"net/http"

	"github.com/biblio2ie/biblio/core/router"
)

// Context is the request context of every biblio handler.
type Context struct {
	*router.Context
}

func newContext(w http.ResponseWriter, r *http.Request, params map[string]string) *Context {
	return &Context{Context: router.NewContext(w, r, params)}
}
