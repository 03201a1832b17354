package auth

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/alexedwards/scs/v2"
	"github.com/irsalhamdi/art-market/api/web"
	"github.com/irsalhamdi/art-market/api/weberr"
	"github.com/irsalhamdi/art-market/core/claims"
)

// userKey is the only thing stored in the session: the authenticated
// user's id.
const userKey = "user_id"

// LoadAndSave adapts the scs middleware to the web.Handler chain. It must be
// the outermost middleware so every handler below sees session data in its
// context.
func LoadAndSave(session *scs.SessionManager) web.Middleware {
	m := func(handler web.Handler) web.Handler {
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
			var err error

			sh := session.LoadAndSave(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				err = handler(r.Context(), w, r)
			}))
			sh.ServeHTTP(w, r)

			return err
		}
		return h
	}
	return m
}

// Authenticate resolves the session into explicit claims. Handlers and the
// core packages below never touch the session themselves.
func Authenticate(session *scs.SessionManager) web.Middleware {
	m := func(handler web.Handler) web.Handler {
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
			userID := session.GetString(ctx, userKey)
			if userID == "" {
				return weberr.NotAuthorized(errors.New("user not authenticated"))
			}

			ctx = claims.Set(ctx, claims.Claims{UserID: userID})
			return handler(ctx, w, r)
		}
		return h
	}
	return m
}

// login binds the session to a user, renewing the token against fixation.
func login(ctx context.Context, session *scs.SessionManager, userID string) error {
	if err := session.RenewToken(ctx); err != nil {
		return err
	}
	session.Put(ctx, userKey, userID)
	return nil
}

func clientAddr(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
