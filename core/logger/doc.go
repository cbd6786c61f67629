// Package logger configures log/slog and offers nil-safe attribute helpers.
package logger
