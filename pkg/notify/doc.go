// Package notify carries one-shot notifications across a redirect.
//
// A handler pushes a Notification before redirecting; the next page pops
// it and renders it once. Notifications travel in an encrypted flash cookie
// so nothing is stored server-side.
//
//	loc := notify.For(r)
//	_ = notifier.Push(w, loc.Success(notify.LoginSucceeded, loc.T(notify.Welcome, user.Name)))
//
// Texts come from a French catalogue with an English translation, chosen
// from the Accept-Language header.
package notify
