package cookie

import (
	"net/http"
	"strings"
)

// Config is the environment configuration for the cookie manager.
// COOKIE_SECRET may list several comma-separated secrets; the first one is
// used for new cookies.
type Config struct {
	Secret   string        `env:"COOKIE_SECRET,required"`
	Domain   string        `env:"COOKIE_DOMAIN"`
	Secure   bool          `env:"COOKIE_SECURE" envDefault:"false"`
	SameSite http.SameSite `env:"COOKIE_SAME_SITE" envDefault:"2"`
	MaxSize  int           `env:"COOKIE_MAX_SIZE" envDefault:"4096"`
}

func (c Config) secrets() []string {
	var out []string
	for s := range strings.SplitSeq(c.Secret, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// NewFromConfig creates a Manager from cfg; opts override config values.
func NewFromConfig(cfg Config, opts ...Option) (*Manager, error) {
	var configOpts []Option
	if cfg.Domain != "" {
		configOpts = append(configOpts, WithDomain(cfg.Domain))
	}
	if cfg.Secure {
		configOpts = append(configOpts, WithSecure(true))
	}
	if cfg.SameSite != 0 {
		configOpts = append(configOpts, WithSameSite(cfg.SameSite))
	}

	m, err := New(cfg.secrets(), append(configOpts, opts...)...)
	if err != nil {
		return nil, err
	}
	if cfg.MaxSize > 0 {
		m.maxSize = cfg.MaxSize
	}
	return m, nil
}
