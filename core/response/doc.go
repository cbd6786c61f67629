// Package response builds handler.Response values: plain text, HTML,
// html/template and templ pages, JSON, htmx-aware redirects, structured HTTP
// errors and websocket upgrades.
//
// Responses are plain functions, so they compose:
//
//	return response.NoStore(response.TemplateName(pages, "placeholder", data))
//
// Handlers that fail return response.Error(err); the router's error handler
// turns it into a status using StatusCode() when the error provides one.
package response
