package middleware

import "errors"

// ErrNoSessionStore is returned by guards mounted without the Session middleware.
var ErrNoSessionStore = errors.New("middleware: no session store in context")
