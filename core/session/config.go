package session

import "time"

// Persistence backends selectable through SESSION_PERSISTENCE.
const (
	PersistenceMemory   = "memory"
	PersistenceFile     = "file"
	PersistenceSQLite   = "sqlite"
	PersistenceRedis    = "redis"
	PersistencePostgres = "postgres"
)

// Config holds session settings loaded from the environment.
type Config struct {
	Persistence    string        `env:"SESSION_PERSISTENCE" envDefault:"memory"`
	FileDir        string        `env:"SESSION_FILE_DIR" envDefault:"./data/sessions"`
	SQLitePath     string        `env:"SESSION_SQLITE_PATH" envDefault:"./data/sessions.db"`
	IdleTTL        time.Duration `env:"SESSION_IDLE_TTL" envDefault:"30m"`
	SweepInterval  time.Duration `env:"SESSION_SWEEP_INTERVAL" envDefault:"5m"`
	HydrateTimeout time.Duration `env:"SESSION_HYDRATE_TIMEOUT" envDefault:"2s"`
	SaveTimeout    time.Duration `env:"SESSION_SAVE_TIMEOUT" envDefault:"2s"`
	// HydrationWait is how long a guarded request waits for hydration before
	// the placeholder is rendered.
	HydrationWait time.Duration `env:"SESSION_HYDRATION_WAIT" envDefault:"250ms"`
	// LogoutOnUnauthorized clears the store when the backend answers 401.
	LogoutOnUnauthorized bool `env:"SESSION_LOGOUT_ON_UNAUTHORIZED" envDefault:"false"`
}
