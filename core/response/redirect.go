package response

import (
	"net/http"

	"github.com/biblio2ie/biblio/core/handler"
)

// Redirect creates a 302 Found response. htmx requests get an HX-Location
// header with 200 OK instead, so the client navigates without a full reload.
func Redirect(url string) handler.Response {
	return redirect(url, http.StatusFound)
}

// RedirectSeeOther creates a 303 See Other response, used after form posts.
func RedirectSeeOther(url string) handler.Response {
	return redirect(url, http.StatusSeeOther)
}

// RedirectPermanent creates a 301 Moved Permanently response.
func RedirectPermanent(url string) handler.Response {
	return redirect(url, http.StatusMovedPermanently)
}

func redirect(url string, code int) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		if IsHTMX(r) {
			w.Header().Set(HeaderHXLocation, url)
			w.WriteHeader(http.StatusOK)
			return nil
		}
		http.Redirect(w, r, url, code)
		return nil
	}
}
