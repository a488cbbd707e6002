package auth

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
)

// ErrInvalidCredentials is returned when an email/password pair is rejected.
var ErrInvalidCredentials = eris.New("Invalid login credentials")

// ErrNoSession is returned when sign-in completed without producing a session.
var ErrNoSession = eris.New("no session was issued")

// User identifies the signed-in administrator.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Session is an authenticated session issued by the data service.
type Session struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token,omitempty"`
	ExpiresAt    time.Time `json:"expires_at"`
	User         User      `json:"user"`
}

// Expired reports whether the access token is no longer valid at now.
func (s *Session) Expired(now time.Time) bool {
	if s == nil {
		return true
	}
	if s.ExpiresAt.IsZero() {
		return false
	}
	return !now.Before(s.ExpiresAt)
}

// Authenticator is the auth sub-interface of the data service.
type Authenticator interface {
	SignInWithPassword(ctx context.Context, email, password string) (*Session, error)
	SignOut(ctx context.Context, session *Session) error
	Refresh(ctx context.Context, refreshToken string) (*Session, error)
}

// UserVerifier is implemented by authenticators that can check an access token is still accepted.
// Stored sessions are verified before use when the authenticator supports it.
type UserVerifier interface {
	User(ctx context.Context, accessToken string) (*User, error)
}

type contextKey string

const sessionContextKey contextKey = "folio/auth-session"

// ContextWithSession attaches session to ctx so data service calls run as that user.
func ContextWithSession(ctx context.Context, session *Session) context.Context {
	if session == nil {
		return ctx
	}
	return context.WithValue(ctx, sessionContextKey, session)
}

// SessionFromContext returns the session attached to ctx, if any.
func SessionFromContext(ctx context.Context) *Session {
	if ctx == nil {
		return nil
	}
	if session, ok := ctx.Value(sessionContextKey).(*Session); ok {
		return session
	}
	return nil
}
