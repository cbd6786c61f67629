package health

import (
	"github.com/biblio2ie/biblio/core/handler"
	"github.com/biblio2ie/biblio/core/response"
)

// Liveness reports that the process is serving. No dependency is checked.
func Liveness[C handler.Context](C) handler.Response {
	return response.NoStore(response.String("ALIVE"))
}
