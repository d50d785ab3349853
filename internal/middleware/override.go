package middleware

import (
	"net/http"
	"strings"
)

const overrideParam = "_method"

// MethodOverride lets HTML forms tunnel PUT and DELETE over POST via a
// _method parameter in the query string or an urlencoded body. It must
// wrap the router, since the rewrite has to happen before dispatch.
func MethodOverride(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			method := r.URL.Query().Get(overrideParam)
			if method == "" && strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded") {
				// ParseForm caches the parsed values on the request, so
				// handlers can still read the body's fields afterwards.
				if err := r.ParseForm(); err == nil {
					method = r.PostForm.Get(overrideParam)
				}
			}
			switch strings.ToUpper(strings.TrimSpace(method)) {
			case http.MethodPut:
				r.Method = http.MethodPut
			case http.MethodPatch:
				r.Method = http.MethodPatch
			case http.MethodDelete:
				r.Method = http.MethodDelete
			}
		}
		next.ServeHTTP(w, r)
	})
}
