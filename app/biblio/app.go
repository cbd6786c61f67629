package biblio

import (
	"context"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/biblio2ie/biblio/core/config"
	"github.com/biblio2ie/biblio/core/cookie"
	"github.com/biblio2ie/biblio/core/logger"
	"github.com/biblio2ie/biblio/core/router"
	"github.com/biblio2ie/biblio/core/server"
	"github.com/biblio2ie/biblio/core/session"
	"github.com/biblio2ie/biblio/core/sessiontransport"
	"github.com/biblio2ie/biblio/integration/libraryapi"
	"github.com/biblio2ie/biblio/pkg/notify"
	"github.com/biblio2ie/biblio/pkg/ratelimiter"
)

// App wires the library front-end: session registry, client cookie
// transport, backend client, pages and HTTP server.
type App struct {
	config    Config
	hasConfig bool

	router    router.Router[*Context]
	server    *server.Server
	cookie    *cookie.Manager
	registry  *session.Registry
	transport *sessiontransport.Cookie
	api       *libraryapi.Client
	notifier  *notify.Notifier
	pages     map[string]*template.Template
	backend   persistence
	attempts  *ratelimiter.MemoryStore
	throttle  *ratelimiter.Bucket
	logger    *slog.Logger
}

type AppOption func(*App) error

// NewApp builds the application. Without WithConfig the configuration is
// read from the environment and .env.
func NewApp(ctx context.Context, opts ...AppOption) (*App, error) {
	app := &App{}
	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	if !app.hasConfig {
		if err := config.Load(&app.config); err != nil {
			return nil, err
		}
	}
	if app.logger == nil {
		app.logger = logger.New(app.config.Log, slog.String("app", app.config.AppName))
	}

	if app.cookie == nil {
		cm, err := cookie.NewFromConfig(app.config.Cookie)
		if err != nil {
			return nil, err
		}
		app.cookie = cm
	}

	if app.registry == nil {
		backend, err := openPersistence(ctx, app.config, app.logger)
		if err != nil {
			return nil, err
		}
		app.backend = backend
		app.registry = session.NewRegistry(backend.persister,
			session.WithRegistryLogger(app.logger),
			session.WithHydrateTimeout(app.config.Session.HydrateTimeout),
			session.WithStoreOptions(session.WithSaveTimeout(app.config.Session.SaveTimeout)),
		)
	}
	app.transport = sessiontransport.NewCookieFromConfig(app.config.Transport, app.registry, app.cookie)

	if app.api == nil {
		api, err := libraryapi.NewFromConfig(app.config.API, libraryapi.WithLogger(app.logger))
		if err != nil {
			return nil, errors.Join(err, app.backend.Close())
		}
		app.api = api
	}

	app.notifier = notify.New(app.cookie, notify.WithLogger(app.logger))

	if app.config.LoginLimit.Enabled() {
		app.attempts = ratelimiter.NewMemoryStore(ratelimiter.WithMemoryStoreLogger(app.logger))
		throttle, err := ratelimiter.NewBucket(app.attempts, app.config.LoginLimit)
		if err != nil {
			return nil, errors.Join(err, app.backend.Close())
		}
		app.throttle = throttle
	}

	pages, err := parsePages()
	if err != nil {
		return nil, errors.Join(err, app.backend.Close())
	}
	app.pages = pages

	if app.server == nil {
		s, err := server.NewFromConfig(app.config.Server, server.WithLogger(app.logger))
		if err != nil {
			return nil, errors.Join(err, app.backend.Close())
		}
		app.server = s
	}

	app.router = router.New[*Context](
		router.WithContextFactory[*Context](newContext),
		router.WithErrorHandler[*Context](app.handleError),
		router.WithLogger[*Context](app.logger),
	)
	app.routes(app.router)

	return app, nil
}

func WithConfig(cfg Config) AppOption {
	return func(app *App) error {
		app.config = cfg
		app.hasConfig = true
		return nil
	}
}

func WithLogger(logger *slog.Logger) AppOption {
	return func(app *App) error {
		if logger == nil {
			return errors.New("logger cannot be nil")
		}
		app.logger = logger
		return nil
	}
}

func WithServer(server *server.Server) AppOption {
	return func(app *App) error {
		if server == nil {
			return errors.New("server cannot be nil")
		}
		app.server = server
		return nil
	}
}

func WithCookieManager(cookie *cookie.Manager) AppOption {
	return func(app *App) error {
		if cookie == nil {
			return errors.New("cookie manager cannot be nil")
		}
		app.cookie = cookie
		return nil
	}
}

// WithRegistry injects the session registry, bypassing SESSION_PERSISTENCE.
func WithRegistry(registry *session.Registry) AppOption {
	return func(app *App) error {
		if registry == nil {
			return errors.New("session registry cannot be nil")
		}
		app.registry = registry
		return nil
	}
}

func WithAPIClient(api *libraryapi.Client) AppOption {
	return func(app *App) error {
		if api == nil {
			return errors.New("api client cannot be nil")
		}
		app.api = api
		return nil
	}
}

// Handler returns the HTTP handler serving every route.
func (a *App) Handler() http.Handler {
	return a.router
}

// Run serves HTTP and sweeps idle session stores until ctx is canceled,
// then releases the session backend.
func (a *App) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(a.server.Run(gctx, a.router))
	if a.config.Session.SweepInterval > 0 && a.config.Session.IdleTTL > 0 {
		g.Go(a.registry.Run(gctx, a.config.Session.IdleTTL, a.config.Session.SweepInterval))
	}
	if a.attempts != nil {
		g.Go(a.attempts.Run(gctx, time.Hour, 10*time.Minute))
	}

	a.logger.InfoContext(ctx, "library front-end started",
		slog.String("addr", a.server.Addr()),
		slog.String("persistence", a.config.Session.Persistence),
		slog.String("api_url", a.config.API.BaseURL),
	)

	err := g.Wait()
	return errors.Join(err, a.Close())
}

// Close releases the session backend.
func (a *App) Close() error {
	return a.backend.Close()
}
