package handler

import (
	"context"
	"net/http"
)

// Context is the request context every handler and middleware receives.
// It is a context.Context bound to the request, so it can be passed to any
// blocking call and is canceled when the client goes away.
type Context interface {
	context.Context
	Request() *http.Request
	ResponseWriter() http.ResponseWriter
	Param(key string) string
	SetValue(key, val any)
}
