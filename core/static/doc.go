// Package static serves embedded assets (stylesheets, scripts, images).
//
//	//go:embed assets
//	var assets embed.FS
//
//	r.Get("/static/{path...}", static.FS[*biblio.Context](assets,
//		static.WithSubFS("assets"),
//		static.WithFSStripPrefix("/static"),
//	))
//
// Directory listings are disabled: a directory is only served when it holds
// an index.html.
package static
