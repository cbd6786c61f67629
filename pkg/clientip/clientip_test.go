package clientip_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/biblio2ie/biblio/pkg/clientip"
)

func TestGetIP(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{name: "remote addr", remote: "10.0.0.1:5000", want: "10.0.0.1"},
		{name: "cloudflare first", headers: map[string]string{"CF-Connecting-IP": "1.1.1.1", "X-Forwarded-For": "2.2.2.2"}, remote: "10.0.0.1:1", want: "1.1.1.1"},
		{name: "leftmost forwarded", headers: map[string]string{"X-Forwarded-For": "203.0.113.5, 10.0.0.2"}, remote: "10.0.0.1:1", want: "203.0.113.5"},
		{name: "real ip", headers: map[string]string{"X-Real-IP": "2001:db8::1"}, remote: "10.0.0.1:1", want: "2001:db8::1"},
		{name: "invalid header skipped", headers: map[string]string{"X-Forwarded-For": "nope", "X-Real-IP": "0.0.0.0"}, remote: "10.0.0.1:1", want: "10.0.0.1"},
		{name: "unparseable remote", remote: "pipe", want: "pipe"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, clientip.GetIP(r))
		})
	}
}
