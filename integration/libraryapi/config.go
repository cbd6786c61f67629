package libraryapi

import "time"

// Config holds the backend connection settings.
type Config struct {
	BaseURL      string        `env:"API_URL" envDefault:"http://localhost:5000/api"`
	Timeout      time.Duration `env:"API_TIMEOUT" envDefault:"10s"`
	DemoFallback bool          `env:"API_DEMO_FALLBACK" envDefault:"false"`
}

// NewFromConfig builds a client from cfg.
func NewFromConfig(cfg Config, opts ...Option) (*Client, error) {
	base := []Option{WithTimeout(cfg.Timeout), WithDemoFallback(cfg.DemoFallback)}
	return New(cfg.BaseURL, append(base, opts...)...)
}
