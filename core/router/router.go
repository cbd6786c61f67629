package router

import (
	"net/http"

	"github.com/biblio2ie/biblio/core/handler"
)

// Router registers typed handlers and serves them as an http.Handler.
type Router[C handler.Context] interface {
	http.Handler
	Routes

	Get(pattern string, h handler.HandlerFunc[C])
	Post(pattern string, h handler.HandlerFunc[C])
	Put(pattern string, h handler.HandlerFunc[C])
	Patch(pattern string, h handler.HandlerFunc[C])
	Delete(pattern string, h handler.HandlerFunc[C])

	// Handle registers h for every method.
	Handle(pattern string, h handler.HandlerFunc[C])
	// Method registers h for the listed methods.
	Method(pattern string, h handler.HandlerFunc[C], methods ...string)

	// Use appends middleware. It must be called before any route is registered.
	Use(middlewares ...handler.Middleware[C])
	// With returns an inline router whose routes get the extra middleware.
	With(middlewares ...handler.Middleware[C]) Router[C]
	// Group runs fn against an inline router sharing this router's middleware.
	Group(fn func(r Router[C])) Router[C]
	// Route runs fn against an inline router rooted at pattern.
	Route(pattern string, fn func(r Router[C])) Router[C]
}

// Routes exposes the registered routes for introspection.
type Routes interface {
	Routes() []Route
}

// Route describes one registered route.
type Route struct {
	Method  string
	Pattern string
}

// New creates a router. Routers for a custom context type need WithContextFactory.
func New[C handler.Context](opts ...Option[C]) Router[C] {
	return newMux(opts...)
}
