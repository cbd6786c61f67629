package biblio

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/biblio2ie/biblio/core/binder"
	"github.com/biblio2ie/biblio/core/handler"
	"github.com/biblio2ie/biblio/core/logger"
	"github.com/biblio2ie/biblio/core/response"
	"github.com/biblio2ie/biblio/core/sanitizer"
	"github.com/biblio2ie/biblio/core/session"
	"github.com/biblio2ie/biblio/core/validator"
	"github.com/biblio2ie/biblio/integration/libraryapi"
	"github.com/biblio2ie/biblio/middleware"
	"github.com/biblio2ie/biblio/pkg/notify"
)

var formBinder = binder.Form()

func pathID(ctx *Context) (int64, error) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidID
	}
	return id, nil
}

func notFound(message string) handler.Response {
	err := response.ErrNotFound
	if message != "" {
		err = err.WithMessage(message)
	}
	return response.Error(err)
}

// bind decodes the form body into v, cleans it and validates it.
// Validation failures come back as validator.ValidationErrors.
func bind(ctx *Context, v any) error {
	if err := formBinder(ctx.Request(), v); err != nil {
		return err
	}
	if err := sanitizer.SanitizeStruct(v); err != nil {
		return err
	}
	return validator.ValidateStruct(v)
}

// formFailure turns a bind error into either field messages or a 400.
func formFailure(err error) (map[string]string, handler.Response) {
	if ve := validator.ExtractValidationErrors(err); ve != nil {
		return ve.Fields(), nil
	}
	return nil, response.Error(response.ErrBadRequest.WithError(err))
}

// session returns the client's store once it is restored. Handlers that
// act on the snapshot wait for hydration, bounded by the hydrate timeout
// and the request.
func (a *App) session(ctx *Context) (*session.Store, session.Snapshot) {
	store := middleware.MustGetStore(ctx)
	if store.Hydration() != session.HydrationReady {
		wait := a.config.Session.HydrateTimeout
		if wait <= 0 {
			wait = session.DefaultHydrateTimeout
		}
		timer := time.NewTimer(wait)
		defer timer.Stop()
		select {
		case <-store.Ready():
		case <-timer.C:
		case <-ctx.Done():
		}
	}
	return store, store.Read()
}

// redirectWith queues note for the next page and redirects with 303.
func (a *App) redirectWith(to string, note notify.Notification) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		if err := a.notifier.Push(w, note); err != nil {
			a.logger.WarnContext(r.Context(), "failed to queue notification",
				logger.Component("notify"),
				logger.Error(err),
			)
		}
		return response.RedirectSeeOther(to)(w, r)
	}
}

// backendFailed logs a failed backend call and applies the 401 policy.
// It reports whether the store was logged out as a result.
func (a *App) backendFailed(ctx *Context, store *session.Store, op string, err error) bool {
	level := slog.LevelWarn
	if errors.Is(err, libraryapi.ErrUnavailable) || errors.Is(err, libraryapi.ErrDecode) {
		level = slog.LevelError
	}
	a.logger.Log(ctx, level, "library backend call failed",
		logger.Component("libraryapi"),
		slog.String("op", op),
		logger.Error(err),
	)

	if store == nil || !a.config.Session.LogoutOnUnauthorized || !libraryapi.IsUnauthorized(err) {
		return false
	}
	store.Logout()
	a.logger.InfoContext(ctx, "session cleared after backend rejected the token",
		logger.Component("session"),
	)
	return true
}

// backendError maps a failed call to the status page shown instead of the
// requested resource.
func backendError(err error, notFoundMessage string) handler.Response {
	switch {
	case libraryapi.IsNotFound(err):
		return notFound(notFoundMessage)
	case errors.Is(err, libraryapi.ErrUnavailable):
		return response.Error(response.ErrServiceUnavailable.WithError(err))
	default:
		return response.Error(response.ErrBadGateway.WithError(err))
	}
}

func (a *App) sessionExpired(ctx *Context) handler.Response {
	loc := notify.For(ctx.Request())
	return a.redirectWith("/connexion", loc.Error(notify.Failure, loc.T(notify.LoginRequired)))
}
