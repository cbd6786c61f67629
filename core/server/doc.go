// Package server runs an http.Handler with graceful shutdown. Run plugs into
// errgroup so the server shares a lifecycle with background workers.
package server
