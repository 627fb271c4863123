package middleware

import (
	"crypto/subtle"
	"net/http"
)

// AdminHeader carries the shared admin secret on mutating requests.
const AdminHeader = "X-Admin-Password"

// AdminGate rejects any request whose admin header does not match the
// configured secret. It is a stateless capability check per request;
// there are no sessions or tokens. The UI keeps its own cosmetic
// "admin mode" flag to show edit buttons, but that flag gates nothing
// here.
func AdminGate(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			supplied := r.Header.Get(AdminHeader)
			if supplied == "" || subtle.ConstantTimeCompare([]byte(supplied), []byte(secret)) != 1 {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
