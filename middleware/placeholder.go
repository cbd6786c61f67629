package middleware

import (
	"context"
	"encoding/json"
	"io"

	"github.com/a-h/templ"
)

// PlaceholderText is shown while a guarded page waits for session restore.
const PlaceholderText = "Vérification des permissions en cours..."

// GuardPlaceholder renders the neutral page served while the session is
// still being restored. It never contains protected content. The page
// listens on liveURL and reloads once the session settles; without
// JavaScript it refreshes after a second.
func GuardPlaceholder(liveURL string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		// json.Marshal escapes <, > and & so the URL is safe inside <script>.
		target, err := json.Marshal(liveURL)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, `<!DOCTYPE html><html lang="fr"><head><meta charset="utf-8">`+
			`<title>Biblio</title><noscript><meta http-equiv="refresh" content="1"></noscript></head>`+
			`<body><main class="guard-pending" role="status" aria-live="polite"><p>`+
			templ.EscapeString(PlaceholderText)+
			`</p></main><script>(function(){`+
			`var p=`+string(target)+`;`+
			`function retry(){setTimeout(function(){location.reload()},1000)}`+
			`try{var ws=new WebSocket((location.protocol==="https:"?"wss://":"ws://")+location.host+p);`+
			`ws.onmessage=function(e){if(JSON.parse(e.data).hydrated){location.reload()}};`+
			`ws.onerror=retry}catch(_){retry()}`+
			`})();</script></body></html>`)
		return err
	})
}
