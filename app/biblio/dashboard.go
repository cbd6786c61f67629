package biblio

import (
	"net/http"
	"time"

	"github.com/biblio2ie/biblio/core/handler"
	"github.com/biblio2ie/biblio/core/sessiontransport"
	"github.com/biblio2ie/biblio/integration/libraryapi"
	"github.com/biblio2ie/biblio/pkg/notify"
)

type dashboardData struct {
	Borrows   []libraryapi.Borrow
	ExpiresAt *time.Time
}

func (a *App) dashboard(ctx *Context) handler.Response {
	store, snap := a.session(ctx)
	v := view{Title: "Mon espace"}

	borrows, err := a.api.MyBorrows(ctx, snap.Token)
	if err != nil {
		if a.backendFailed(ctx, store, "my borrows", err) {
			return a.sessionExpired(ctx)
		}
		loc := notify.For(ctx.Request())
		v.Notice = loc.Error(notify.Failure, loc.T(notify.MyBorrowsFailed))
	}

	data := dashboardData{Borrows: borrows}
	if claims, err := sessiontransport.InspectBearer(snap.Token); err == nil && !claims.ExpiresAt.IsZero() {
		data.ExpiresAt = &claims.ExpiresAt
	}
	v.Data = data
	return a.render(ctx, "dashboard", http.StatusOK, v)
}
