package middleware

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"
)

type ctxKey string

const sessionKey ctxKey = "session"

// SessionStore is the session lifecycle needed by the middleware.
type SessionStore interface {
	Create(ctx context.Context) (string, error)
	Exists(ctx context.Context, sessionID string) (bool, error)
}

// Sessions binds requests to visitor sessions carried in a cookie.
type Sessions struct {
	Store      SessionStore
	CookieName string
	Secure     bool
	TTL        time.Duration
	Log        *zap.Logger
}

// cookieValue returns the session id carried by the request, or "".
func (s *Sessions) cookieValue(r *http.Request) string {
	c, err := r.Cookie(s.CookieName)
	if err != nil {
		return ""
	}
	return c.Value
}

// lookup returns the live session named by the request cookie, or "".
func (s *Sessions) lookup(r *http.Request) (string, error) {
	id := s.cookieValue(r)
	if id == "" {
		return "", nil
	}
	ok, err := s.Store.Exists(r.Context(), id)
	if err != nil || !ok {
		return "", err
	}
	return id, nil
}

// Establish attaches the caller's session to the request, starting a new
// session and setting its cookie when there is none.
func (s *Sessions) Establish(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := s.lookup(r)
		if err != nil {
			s.Log.Error("session lookup failed", zap.Error(err))
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		if id == "" {
			id, err = s.Store.Create(r.Context())
			if err != nil {
				s.Log.Error("session create failed", zap.Error(err))
				http.Error(w, "internal error", http.StatusInternalServerError)
				return
			}
			http.SetCookie(w, &http.Cookie{
				Name:     s.CookieName,
				Value:    id,
				Path:     "/",
				MaxAge:   int(s.TTL / time.Second),
				HttpOnly: true,
				Secure:   s.Secure,
				SameSite: http.SameSiteLaxMode,
			})
		}
		next.ServeHTTP(w, r.WithContext(WithSessionID(r.Context(), id)))
	})
}

// Load attaches the session id named by the cookie without touching the
// store. It never creates a session; downstream code must check that the id
// is live and may see an empty id.
func (s *Sessions) Load(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id := s.cookieValue(r); id != "" {
			r = r.WithContext(WithSessionID(r.Context(), id))
		}
		next.ServeHTTP(w, r)
	})
}

// ExpireCookie tells the client to drop its session cookie.
func (s *Sessions) ExpireCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// WithSessionID returns a copy of ctx carrying sessionID.
func WithSessionID(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, sessionKey, sessionID)
}

// GetSessionIDFromContext extracts the session id from the request context.
// Returns an empty string if the request has no session.
func GetSessionIDFromContext(ctx context.Context) string {
	val := ctx.Value(sessionKey)
	if s, ok := val.(string); ok {
		return s
	}
	return ""
}
