package middleware

import "net/http"

// SecurityHeadersMiddleware sets response headers suited to a JSON API that
// serves per-user data.
func SecurityHeadersMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")
		h.Set("Referrer-Policy", "no-referrer")
		h.Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		// Item lists differ per session token.
		h.Set("Cache-Control", "no-store")
		h.Add("Vary", "X-Session-Token")

		next.ServeHTTP(w, r)
	})
}
