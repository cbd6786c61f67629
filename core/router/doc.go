// Package router provides a generic HTTP router built on http.ServeMux patterns.
//
// Handlers receive a typed context and return a handler.Response. Errors
// returned by responses, panics, unknown paths and wrong methods all flow to a
// single error handler.
//
//	r := router.New[*router.Context]()
//	r.Get("/livres/{id}", func(ctx *router.Context) handler.Response {
//		return response.String("book " + ctx.Param("id"))
//	})
//	r.Route("/admin", func(r router.Router[*router.Context]) {
//		r.Use(requireAdmin)
//		r.Get("/livres", listBooks)
//	})
//	http.ListenAndServe(":8080", r)
//
// Patterns match exact paths; a trailing "{name...}" wildcard matches a subtree.
// Custom context types need WithContextFactory.
package router
