// Package handler defines the request-processing contracts shared by the router,
// the middleware package and the application: a custom request Context, handlers
// that return a deferred Response, error handlers and middleware.
//
// Handlers never write to the ResponseWriter directly. They return a Response
// closure, which lets middleware decorate or replace it before anything is sent:
//
//	func home(ctx *biblio.Context) handler.Response {
//		return response.HTML("<h1>Bienvenue</h1>")
//	}
//
// Middleware composes with Chain; the first middleware is the outermost one:
//
//	h := handler.Chain(home, middleware.RequestID[*biblio.Context](), logging)
package handler
