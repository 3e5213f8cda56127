package guard

import (
	"errors"
	"net/http"
)

// Resolver returns the guard of the visitor making the request.
type Resolver func(r *http.Request) (*Guard, error)

// Middleware gates next behind req. Restoration is awaited before the
// decision; denied requests are answered with a 303 redirect and allowed
// ones see the session through FromContext.
func Middleware(resolve Resolver, req Requirement) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			g, err := resolve(r)
			if err != nil {
				http.Error(w, "Session unavailable", http.StatusInternalServerError)
				return
			}

			g.Restore(r.Context())
			decision, err := g.Check(r.Context(), req)
			if err != nil {
				if errors.Is(err, ErrNotReady) {
					http.Error(w, "Session not ready", http.StatusServiceUnavailable)
					return
				}
				http.Error(w, "Session error", http.StatusInternalServerError)
				return
			}

			if !decision.Allowed {
				http.Redirect(w, r, decision.Location(r.URL.RequestURI()), http.StatusSeeOther)
				return
			}

			ctx := WithSession(r.Context(), g.Session())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
