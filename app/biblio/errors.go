package biblio

import (
	"errors"
	"net/http"
	"strings"

	"github.com/biblio2ie/biblio/core/logger"
	"github.com/biblio2ie/biblio/core/response"
	"github.com/biblio2ie/biblio/core/router"
)

var (
	ErrUnknownPersistence = errors.New("unknown session persistence backend")
	ErrUnknownPage        = errors.New("unknown page template")
	ErrInvalidID          = errors.New("invalid identifier")
)

var statusMessages = map[int]string{
	http.StatusBadRequest:            "La requête est invalide.",
	http.StatusForbidden:             "Accès refusé.",
	http.StatusNotFound:              "Page introuvable.",
	http.StatusMethodNotAllowed:      "Méthode non autorisée.",
	http.StatusRequestEntityTooLarge: "La requête est trop volumineuse.",
	http.StatusTooManyRequests:       "Trop de tentatives. Réessayez dans quelques instants.",
	http.StatusBadGateway:            "Le service de la bibliothèque a répondu de façon inattendue.",
	http.StatusServiceUnavailable:    "Le service de la bibliothèque est momentanément indisponible.",
}

// handleError renders failures as the error page. Server-side details are
// logged, never shown.
func (a *App) handleError(ctx *Context, err error) {
	httpErr := response.AsHTTPError(err)
	switch {
	case errors.Is(err, router.ErrNotFound):
		httpErr = response.ErrNotFound.WithError(err)
	case errors.Is(err, router.ErrMethodNotAllowed):
		httpErr = response.ErrMethodNotAllowed.WithError(err)
	}
	status := httpErr.Status

	r := ctx.Request()
	if status >= http.StatusInternalServerError {
		a.logger.ErrorContext(ctx, "request failed",
			logger.Method(r.Method),
			logger.Path(r.URL.Path),
			logger.StatusCode(status),
			logger.Error(err),
		)
	}

	w := ctx.ResponseWriter()
	if router.Written(w) {
		return
	}

	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		if status >= http.StatusInternalServerError {
			httpErr.Details = nil
		}
		response.JSONErrorHandler(ctx, httpErr)
		return
	}

	message := httpErr.Message
	switch {
	case status >= http.StatusInternalServerError:
		message = "Une erreur inattendue est survenue."
		if msg, ok := statusMessages[status]; ok {
			message = msg
		}
	case message == http.StatusText(status):
		if msg, ok := statusMessages[status]; ok {
			message = msg
		}
	}

	resp := a.render(ctx, "error", status, view{
		Title: http.StatusText(status),
		Data:  errorPage{Status: status, Message: message},
	})
	if err := response.NoStore(resp)(w, r); err != nil {
		a.logger.ErrorContext(ctx, "failed to render error page", logger.Error(err))
		response.ErrorHandler(ctx, httpErr)
	}
}

type errorPage struct {
	Status  int
	Message string
}
