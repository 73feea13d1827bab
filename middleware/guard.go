package middleware

import (
	"context"
	"net/http"
	"net/url"

	portalauth "github.com/kokomatto/portalauth"
	"github.com/kokomatto/portalauth/session"
)

type sessionContextKey struct{}

// SessionFromContext returns the session Guard resolved for this request.
func SessionFromContext(ctx context.Context) (session.Session, bool) {
	sess, ok := ctx.Value(sessionContextKey{}).(session.Session)
	return sess, ok
}

// Guard applies the engine's route guard to each request path. Denied
// requests are redirected with 303 See Other to the decision's target;
// login redirects carry the attempted path in the return_to query so the
// login surface can resume it.
func Guard(engine *portalauth.Engine) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if engine == nil {
				http.Error(w, "service unavailable", http.StatusServiceUnavailable)
				return
			}

			sess, err := engine.Session(r.Context())
			if err != nil {
				// Store outage reads as guest; the guard then sends the
				// request to the login surface rather than failing it.
				sess = session.Guest()
			}

			decision := engine.ResolveRoute(r.Context(), r.URL.Path, sess)
			if !decision.Allow {
				http.Redirect(w, r, redirectTarget(decision), http.StatusSeeOther)
				return
			}

			ctx := context.WithValue(r.Context(), sessionContextKey{}, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func redirectTarget(decision portalauth.Decision) string {
	if decision.ReturnTo == "" {
		return decision.RedirectTo
	}
	return decision.RedirectTo + "?return_to=" + url.QueryEscape(decision.ReturnTo)
}
