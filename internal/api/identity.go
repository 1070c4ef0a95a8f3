package api

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

type viewIDKey struct{}

// ViewIdentity ensures every request carries a view id. The id is read from
// the named cookie, or issued in a fresh one. The browser never sees the
// session credential; the view id only selects it on the server.
func ViewIdentity(cookieName string, secure bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := ""
			if c, err := r.Cookie(cookieName); err == nil {
				if parsed, err := uuid.Parse(c.Value); err == nil {
					id = parsed.String()
				}
			}
			if id == "" {
				id = uuid.NewString()
				http.SetCookie(w, &http.Cookie{
					Name:     cookieName,
					Value:    id,
					Path:     "/",
					HttpOnly: true,
					Secure:   secure,
					SameSite: http.SameSiteLaxMode,
				})
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), viewIDKey{}, id)))
		})
	}
}

// ViewIDFromContext returns the view id set by ViewIdentity.
func ViewIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(viewIDKey{}).(string)
	return id
}
