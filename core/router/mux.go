package router

import (
	"io"
	"log/slog"
	"net/http"
	"runtime/debug"
	"slices"
	"strings"
	"sync"

	"github.com/biblio2ie/biblio/core/handler"
)

var supportedMethods = []string{
	http.MethodGet,
	http.MethodHead,
	http.MethodPost,
	http.MethodPut,
	http.MethodPatch,
	http.MethodDelete,
	http.MethodOptions,
}

// shared is the state common to a router and all its inline groups.
type shared[C handler.Context] struct {
	std          *http.ServeMux
	errorHandler handler.ErrorHandler[C]
	newContext   func(http.ResponseWriter, *http.Request, map[string]string) C
	logger       *slog.Logger

	mu     sync.RWMutex
	routes []Route
}

// mux is the private implementation of Router. Pattern matching is done by
// http.ServeMux; mux adds typed handlers, middleware chains and error handling.
type mux[C handler.Context] struct {
	shared      *shared[C]
	prefix      string
	middlewares []handler.Middleware[C]
	inline      bool
}

func newMux[C handler.Context](opts ...Option[C]) *mux[C] {
	m := &mux[C]{
		shared: &shared[C]{
			std:          http.NewServeMux(),
			errorHandler: defaultErrorHandler[C],
			logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		},
	}

	for _, opt := range opts {
		opt(m)
	}

	if m.shared.newContext == nil {
		m.shared.newContext = func(w http.ResponseWriter, r *http.Request, params map[string]string) C {
			var zero C
			if _, ok := any(zero).(*Context); ok {
				return any(NewContext(w, r, params)).(C)
			}
			panic(ErrNoContextFactory)
		}
	}

	return m
}

// ServeHTTP implements http.Handler.
func (m *mux[C]) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ww := newResponseWriter(w)

	if !slices.Contains(supportedMethods, r.Method) {
		m.fail(ww, r, nil, ErrMethodNotAllowed)
		return
	}

	if _, pattern := m.shared.std.Handler(r); pattern == "" {
		if allowed := m.allowedMethods(r); len(allowed) > 0 {
			ww.Header().Set("Allow", strings.Join(allowed, ", "))
			m.fail(ww, r, nil, ErrMethodNotAllowed)
			return
		}
		m.fail(ww, r, nil, ErrNotFound)
		return
	}

	m.shared.std.ServeHTTP(ww, r)
}

// allowedMethods lists the methods that would match r's path.
func (m *mux[C]) allowedMethods(r *http.Request) []string {
	var allowed []string
	for _, method := range supportedMethods {
		if method == r.Method {
			continue
		}
		probe := r.Clone(r.Context())
		probe.Method = method
		if _, pattern := m.shared.std.Handler(probe); pattern != "" {
			allowed = append(allowed, method)
		}
	}
	return allowed
}

func (m *mux[C]) fail(w *responseWriter, r *http.Request, params map[string]string, err error) {
	ctx := m.shared.newContext(w, r, params)
	m.shared.errorHandler(ctx, err)
}

func (m *mux[C]) Routes() []Route {
	m.shared.mu.RLock()
	defer m.shared.mu.RUnlock()
	return slices.Clone(m.shared.routes)
}

func (m *mux[C]) Get(pattern string, h handler.HandlerFunc[C]) {
	m.handle(http.MethodGet, pattern, h)
}

func (m *mux[C]) Post(pattern string, h handler.HandlerFunc[C]) {
	m.handle(http.MethodPost, pattern, h)
}

func (m *mux[C]) Put(pattern string, h handler.HandlerFunc[C]) {
	m.handle(http.MethodPut, pattern, h)
}

func (m *mux[C]) Patch(pattern string, h handler.HandlerFunc[C]) {
	m.handle(http.MethodPatch, pattern, h)
}

func (m *mux[C]) Delete(pattern string, h handler.HandlerFunc[C]) {
	m.handle(http.MethodDelete, pattern, h)
}

func (m *mux[C]) Handle(pattern string, h handler.HandlerFunc[C]) {
	m.handle("", pattern, h)
}

func (m *mux[C]) Method(pattern string, h handler.HandlerFunc[C], methods ...string) {
	if len(methods) == 0 {
		panic(ErrInvalidMethod)
	}
	for _, method := range methods {
		method = strings.ToUpper(method)
		if !slices.Contains(supportedMethods, method) {
			panic(ErrInvalidMethod)
		}
		m.handle(method, pattern, h)
	}
}

func (m *mux[C]) Use(middlewares ...handler.Middleware[C]) {
	if !m.inline {
		m.shared.mu.RLock()
		registered := len(m.shared.routes) > 0
		m.shared.mu.RUnlock()
		if registered {
			panic("router: all middlewares must be defined before routes")
		}
	}
	m.middlewares = append(m.middlewares, middlewares...)
}

func (m *mux[C]) With(middlewares ...handler.Middleware[C]) Router[C] {
	return m.child(m.prefix, middlewares)
}

func (m *mux[C]) Group(fn func(r Router[C])) Router[C] {
	g := m.child(m.prefix, nil)
	if fn != nil {
		fn(g)
	}
	return g
}

func (m *mux[C]) Route(pattern string, fn func(r Router[C])) Router[C] {
	if fn == nil {
		panic(ErrNilSubrouter)
	}
	if !strings.HasPrefix(pattern, "/") {
		panic(ErrInvalidPattern)
	}
	g := m.child(joinPath(m.prefix, strings.TrimSuffix(pattern, "/")), nil)
	fn(g)
	return g
}

func (m *mux[C]) child(prefix string, extra []handler.Middleware[C]) *mux[C] {
	mws := make([]handler.Middleware[C], 0, len(m.middlewares)+len(extra))
	mws = append(mws, m.middlewares...)
	mws = append(mws, extra...)
	return &mux[C]{
		shared:      m.shared,
		prefix:      prefix,
		middlewares: mws,
		inline:      true,
	}
}

func (m *mux[C]) handle(method, pattern string, h handler.HandlerFunc[C]) {
	if h == nil {
		panic("router: nil handler for " + pattern)
	}
	if pattern == "" || pattern[0] != '/' {
		panic(ErrInvalidPattern)
	}

	full := joinPath(m.prefix, pattern)
	names := wildcardNames(full)
	chained := handler.Chain(h, m.middlewares...)

	stdPattern := exactPattern(full)
	if method != "" {
		stdPattern = method + " " + stdPattern
	}

	m.shared.std.HandleFunc(stdPattern, func(w http.ResponseWriter, r *http.Request) {
		m.serve(w, r, names, chained)
	})

	m.shared.mu.Lock()
	m.shared.routes = append(m.shared.routes, Route{Method: method, Pattern: full})
	m.shared.mu.Unlock()
}

func (m *mux[C]) serve(w http.ResponseWriter, r *http.Request, names []string, h handler.HandlerFunc[C]) {
	ww, ok := w.(*responseWriter)
	if !ok {
		ww = newResponseWriter(w)
	}

	var params map[string]string
	if len(names) > 0 {
		params = make(map[string]string, len(names))
		for _, name := range names {
			params[name] = r.PathValue(name)
		}
	}

	ctx := m.shared.newContext(ww, r, params)

	defer func() {
		if p := recover(); p != nil {
			perr := &panicError{value: p, stack: debug.Stack()}
			if ww.Written() {
				m.shared.logger.Error("panic after response written",
					"value", perr.value,
					"stack", string(perr.stack),
					"path", r.URL.Path,
					"method", r.Method,
					"status", ww.Status(),
				)
				return
			}
			m.shared.errorHandler(ctx, perr)
		}
	}()

	resp := h(ctx)
	if resp == nil {
		m.shared.errorHandler(ctx, ErrNilResponse)
		return
	}

	// Middleware may have replaced the request through SetValue.
	if err := resp(ctx.ResponseWriter(), ctx.Request()); err != nil {
		m.shared.errorHandler(ctx, err)
	}
}

func joinPath(prefix, pattern string) string {
	if prefix == "" {
		return pattern
	}
	if pattern == "/" {
		return prefix
	}
	return prefix + pattern
}

// exactPattern turns a route path into a ServeMux pattern that matches only
// that path. Trailing "{name...}" wildcards keep their subtree semantics.
func exactPattern(p string) string {
	if strings.HasSuffix(p, "...}") {
		return p
	}
	if strings.HasSuffix(p, "/") {
		return p + "{$}"
	}
	return p
}

func wildcardNames(p string) []string {
	var names []string
	for seg := range strings.SplitSeq(p, "/") {
		if len(seg) < 3 || seg[0] != '{' || seg[len(seg)-1] != '}' {
			continue
		}
		name := strings.TrimSuffix(seg[1:len(seg)-1], "...")
		if name == "$" || name == "" {
			continue
		}
		names = append(names, name)
	}
	return names
}
