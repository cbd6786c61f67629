// Package libraryapi is the HTTP client of the library backend.
//
// Each method performs exactly one request with the caller's context, so a
// visitor who navigates away cancels the backend call. Authenticated calls
// take the bearer token explicitly; the client never reads session state.
//
//	api, err := libraryapi.New("https://api.example.org/api")
//	books, err := api.ListBooks(ctx, libraryapi.BookFilter{Genre: "Roman"})
//
// Non-2xx answers become *APIError, whose Message is the backend's
// {"message"} when it sent one. Transport failures wrap ErrUnavailable.
package libraryapi
