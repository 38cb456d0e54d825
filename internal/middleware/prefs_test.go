package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestPrefs(t *testing.T) {
	tests := []struct {
		name       string
		url        string
		cookie     string
		accept     string
		want       string
		wantCookie bool
	}{
		{"default", "/", "", "", "en", false},
		{"accept language", "/", "", "fr-FR,fr;q=0.9", "fr", false},
		{"cookie beats header", "/", "en", "fr", "en", false},
		{"query beats cookie", "/?lang=fr", "en", "", "fr", true},
		{"unsupported query falls back to header", "/?lang=de", "", "fr", "fr", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got string
			h := Prefs(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = LangFrom(r)
			}))
			req := httptest.NewRequest(http.MethodGet, tt.url, nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: "lang", Value: tt.cookie})
			}
			if tt.accept != "" {
				req.Header.Set("Accept-Language", tt.accept)
			}
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)
			if got != tt.want {
				t.Fatalf("lang = %q, want %q", got, tt.want)
			}
			if hasCookie := len(w.Result().Cookies()) > 0; hasCookie != tt.wantCookie {
				t.Fatalf("cookie set = %v, want %v", hasCookie, tt.wantCookie)
			}
		})
	}

	if got := LangFrom(httptest.NewRequest(http.MethodGet, "/", nil)); got != "en" {
		t.Fatalf("LangFrom without middleware = %q", got)
	}
}
