// Package redis creates a verified go-redis client from a redis:// URL.
package redis
