package middleware

import (
	"context"
	"net/http"
	"net/url"

	"github.com/campaignwala/sessiongate"
)

type sessionContextKey struct{}

// SessionFromContext returns the session snapshot injected by a guard that
// rendered the request.
func SessionFromContext(ctx context.Context) (sessiongate.Session, bool) {
	sess, ok := ctx.Value(sessionContextKey{}).(sessiongate.Session)
	return sess, ok
}

// FromParam is the query parameter carrying the attempted path on redirects.
const FromParam = "from"

// Option adjusts guard behavior.
type Option func(*options)

type options struct {
	pending http.Handler
}

// WithPendingHandler replaces the handler served while session state is still
// being determined. The default responds 503 with Retry-After: 1.
func WithPendingHandler(h http.Handler) Option {
	return func(o *options) {
		o.pending = h
	}
}

func buildOptions(opts []Option) options {
	o := options{
		pending: http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Retry-After", "1")
			http.Error(w, "session state loading", http.StatusServiceUnavailable)
		}),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Protected returns role-gated guard middleware.
func Protected(mgr *sessiongate.Manager, spec sessiongate.ProtectedSpec, opts ...Option) func(http.Handler) http.Handler {
	o := buildOptions(opts)
	return guard(mgr, o, func(path string) sessiongate.GuardDecision {
		return mgr.DecideProtected(spec, path)
	})
}

// Public returns inverse-gated guard middleware; with Restricted set, an
// authenticated user cannot revisit the wrapped route (e.g. the login screen).
func Public(mgr *sessiongate.Manager, spec sessiongate.PublicSpec, opts ...Option) func(http.Handler) http.Handler {
	o := buildOptions(opts)
	return guard(mgr, o, func(path string) sessiongate.GuardDecision {
		return mgr.DecidePublic(spec, path)
	})
}

// Private returns permission-gated guard middleware.
func Private(mgr *sessiongate.Manager, spec sessiongate.PrivateSpec, opts ...Option) func(http.Handler) http.Handler {
	o := buildOptions(opts)
	return guard(mgr, o, func(path string) sessiongate.GuardDecision {
		return mgr.DecidePrivate(spec, path)
	})
}

// RoleBased returns exact-role guard middleware.
func RoleBased(mgr *sessiongate.Manager, spec sessiongate.RoleSpec, opts ...Option) func(http.Handler) http.Handler {
	o := buildOptions(opts)
	return guard(mgr, o, func(path string) sessiongate.GuardDecision {
		return mgr.DecideRoleBased(spec, path)
	})
}

func guard(mgr *sessiongate.Manager, o options, decide func(path string) sessiongate.GuardDecision) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if mgr == nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			decision := decide(r.URL.Path)

			switch decision.Action {
			case sessiongate.GuardPending:
				o.pending.ServeHTTP(w, r)
			case sessiongate.GuardRedirect:
				http.Redirect(w, r, redirectTarget(decision), http.StatusFound)
			default:
				ctx := context.WithValue(r.Context(), sessionContextKey{}, mgr.Snapshot())
				next.ServeHTTP(w, r.WithContext(ctx))
			}
		})
	}
}

func redirectTarget(decision sessiongate.GuardDecision) string {
	if decision.From == "" {
		return decision.Location
	}

	u, err := url.Parse(decision.Location)
	if err != nil {
		return decision.Location
	}
	q := u.Query()
	q.Set(FromParam, decision.From)
	u.RawQuery = q.Encode()
	return u.String()
}
