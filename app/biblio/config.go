package biblio

import (
	"github.com/biblio2ie/biblio/core/cookie"
	"github.com/biblio2ie/biblio/core/logger"
	"github.com/biblio2ie/biblio/core/server"
	"github.com/biblio2ie/biblio/core/session"
	"github.com/biblio2ie/biblio/core/sessiontransport"
	"github.com/biblio2ie/biblio/integration/database/pg"
	"github.com/biblio2ie/biblio/integration/database/redis"
	"github.com/biblio2ie/biblio/integration/libraryapi"
	"github.com/biblio2ie/biblio/pkg/ratelimiter"
)

type Config struct {
	Log       logger.Config
	Cookie    cookie.Config
	Session   session.Config
	Transport sessiontransport.CookieConfig
	Server    server.Config
	API       libraryapi.Config
	Redis     redis.Config
	DB        pg.Config
	// LoginLimit throttles sign-in and sign-up attempts per client IP.
	// LOGIN_RATE_CAPACITY=0 disables it.
	LoginLimit ratelimiter.Config `envPrefix:"LOGIN_RATE_"`

	AppName string `env:"APP_NAME" envDefault:"Biblio 2iE"`
	Env     string `env:"APP_ENV" envDefault:"development"`
}

// IsDevelopment reports whether the app runs on a developer machine.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}
