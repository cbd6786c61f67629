package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/biblio2ie/biblio/core/handler"
	"github.com/biblio2ie/biblio/core/logger"
	"github.com/biblio2ie/biblio/core/response"
	"github.com/biblio2ie/biblio/pkg/ratelimiter"
)

// RateLimitConfig configures the rate limiting middleware.
type RateLimitConfig struct {
	// Skip defines a function to skip middleware execution for specific requests
	Skip func(ctx handler.Context) bool
	// Limiter is the rate limiting implementation to use
	Limiter ratelimiter.RateLimiter
	// KeyExtractor picks the bucket key (default: client IP)
	KeyExtractor func(ctx handler.Context) string
	// ErrorHandler answers refused requests (default: 429 Too Many Requests)
	ErrorHandler func(ctx handler.Context, result *ratelimiter.Result) handler.Response
	// SetHeaders adds X-RateLimit-* headers to every response
	SetHeaders bool
	// Logger records refused requests (default: discard)
	Logger *slog.Logger
}

// RateLimit throttles requests per key, typically the client IP. Requests
// over the limit get 429 with a Retry-After header. Panics without a limiter.
func RateLimit[C handler.Context](cfg RateLimitConfig) handler.Middleware[C] {
	if cfg.Limiter == nil {
		panic("ratelimit middleware: limiter is required")
	}
	if cfg.KeyExtractor == nil {
		cfg.KeyExtractor = func(ctx handler.Context) string {
			if ip, ok := GetClientIP(ctx); ok {
				return ip
			}
			return ctx.Request().RemoteAddr
		}
	}
	if cfg.ErrorHandler == nil {
		cfg.ErrorHandler = func(_ handler.Context, result *ratelimiter.Result) handler.Response {
			err := response.ErrTooManyRequests
			if result != nil && result.RetryAfter() > 0 {
				err = err.WithDetails(map[string]any{
					"retry_after": fmt.Sprintf("%.0f", result.RetryAfter().Seconds()),
				})
			}
			return response.Error(err)
		}
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.Discard()
	}

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			if cfg.Skip != nil && cfg.Skip(ctx) {
				return next(ctx)
			}

			key := cfg.KeyExtractor(ctx)
			result, err := cfg.Limiter.Allow(ctx, key)
			if err != nil {
				return response.Error(response.ErrInternalServerError.WithError(err))
			}

			var resp handler.Response
			if result.Allowed() {
				resp = next(ctx)
			} else {
				cfg.Logger.WarnContext(ctx, "request rate limited",
					logger.Component("ratelimit"),
					logger.Path(ctx.Request().URL.Path),
					slog.String("key", key),
				)
				resp = cfg.ErrorHandler(ctx, result)
			}

			if cfg.SetHeaders || !result.Allowed() {
				return withRateLimitHeaders(resp, result, cfg.SetHeaders)
			}
			return resp
		}
	}
}

func withRateLimitHeaders(resp handler.Response, result *ratelimiter.Result, full bool) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		if full {
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(result.Limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(max(0, result.Remaining)))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt.Unix(), 10))
		}
		if retry := result.RetryAfter(); retry > 0 {
			w.Header().Set("Retry-After", strconv.Itoa(int(retry.Seconds()+0.5)))
		}
		return resp(w, r)
	}
}
