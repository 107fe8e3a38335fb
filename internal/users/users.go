// Package users holds the fixed commenter roster and the request middleware
// that resolves the acting user. There is no account system: the roster is
// a hard-coded picker, and authorship checks compare plain names.
package users

import (
	"context"
	"net/http"
	"strings"
)

// Roster is the fixed set of selectable users.
var Roster = []string{"Alice", "Bob", "Charlie", "David"}

// Default is the picker's initial selection. Mutating requests still have
// to name their user explicitly; the default only seeds the client picker.
const Default = "Alice"

// Header carries the acting user on mutating requests.
const Header = "X-Gallery-User"

// Valid reports whether name is on the roster.
func Valid(name string) bool {
	for _, u := range Roster {
		if u == name {
			return true
		}
	}
	return false
}

type ctxKeyUser struct{}

// FromContext returns the acting user set by Require.
func FromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(ctxKeyUser{}).(string)
	return v, ok
}

// WithUser injects the acting user into context. Useful for testing.
func WithUser(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, ctxKeyUser{}, name)
}

// Require validates the X-Gallery-User header against the roster and
// injects the user into the request context.
func Require() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			name := strings.TrimSpace(r.Header.Get(Header))
			if name == "" || !Valid(name) {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), name)))
		})
	}
}
