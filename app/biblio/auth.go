package biblio

import (
	"errors"
	"net/http"

	"github.com/biblio2ie/biblio/core/handler"
	"github.com/biblio2ie/biblio/core/logger"
	"github.com/biblio2ie/biblio/integration/libraryapi"
	"github.com/biblio2ie/biblio/pkg/notify"
)

func (a *App) loginForm(ctx *Context) handler.Response {
	return a.page(ctx, "login", "Connexion", libraryapi.Credentials{})
}

func (a *App) login(ctx *Context) handler.Response {
	var creds libraryapi.Credentials
	err := bind(ctx, &creds)
	echo := libraryapi.Credentials{Email: creds.Email}
	if err != nil {
		fields, resp := formFailure(err)
		if resp != nil {
			return resp
		}
		return a.render(ctx, "login", http.StatusUnprocessableEntity, view{Title: "Connexion", Errors: fields, Data: echo})
	}

	loc := notify.For(ctx.Request())
	res, err := a.api.Login(ctx, creds)
	if err != nil {
		a.backendFailed(ctx, nil, "login", err)
		desc := loc.T(notify.BadCredentials)
		if errors.Is(err, libraryapi.ErrUnavailable) {
			desc = loc.T(notify.Unexpected)
		}
		return a.render(ctx, "login", http.StatusOK, view{
			Title:  "Connexion",
			Notice: loc.Error(notify.LoginFailed, desc),
			Data:   echo,
		})
	}

	if _, _, err := a.transport.Authenticate(ctx, res.Token, res.User); err != nil {
		a.logger.ErrorContext(ctx, "backend returned an unusable login",
			logger.Component("session"),
			logger.Error(err),
		)
		return a.render(ctx, "login", http.StatusOK, view{
			Title:  "Connexion",
			Notice: loc.Error(notify.LoginFailed, loc.T(notify.Unexpected)),
			Data:   echo,
		})
	}

	a.logger.InfoContext(ctx, "user signed in",
		logger.Component("session"),
		logger.UserID(res.User.ID),
	)
	return a.redirectWith("/dashboard", loc.Success(notify.LoginSucceeded, loc.T(notify.Welcome, res.User.Name)))
}

func (a *App) registerForm(ctx *Context) handler.Response {
	return a.page(ctx, "register", "Inscription", libraryapi.Registration{})
}

func (a *App) register(ctx *Context) handler.Response {
	var reg libraryapi.Registration
	err := bind(ctx, &reg)
	echo := libraryapi.Registration{Name: reg.Name, Email: reg.Email}
	if err != nil {
		fields, resp := formFailure(err)
		if resp != nil {
			return resp
		}
		return a.render(ctx, "register", http.StatusUnprocessableEntity, view{Title: "Inscription", Errors: fields, Data: echo})
	}

	loc := notify.For(ctx.Request())
	if err := a.api.Register(ctx, reg); err != nil {
		a.backendFailed(ctx, nil, "register", err)
		return a.render(ctx, "register", http.StatusOK, view{
			Title:  "Inscription",
			Notice: loc.Error(notify.RegisterFailed, libraryapi.Message(err, loc.T(notify.EmailMaybeTaken))),
			Data:   echo,
		})
	}
	return a.redirectWith("/connexion", loc.Success(notify.RegisterSucceeded, loc.T(notify.RegisterNext)))
}

func (a *App) logout(ctx *Context) handler.Response {
	store, _ := a.session(ctx)
	store.Logout()
	loc := notify.For(ctx.Request())
	return a.redirectWith("/", loc.Success(notify.LoggedOut, ""))
}
