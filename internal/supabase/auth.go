package supabase

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/rotisserie/eris"

	"folio/app/internal/auth"
)

var _ auth.Authenticator = (*Client)(nil)

type tokenResponse struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresIn    int64     `json:"expires_in"`
	ExpiresAt    int64     `json:"expires_at"`
	User         auth.User `json:"user"`
}

func (t tokenResponse) session(now time.Time) *auth.Session {
	if t.AccessToken == "" {
		return nil
	}

	session := &auth.Session{
		AccessToken:  t.AccessToken,
		RefreshToken: t.RefreshToken,
		User:         t.User,
	}
	switch {
	case t.ExpiresAt > 0:
		session.ExpiresAt = time.Unix(t.ExpiresAt, 0).UTC()
	case t.ExpiresIn > 0:
		session.ExpiresAt = now.Add(time.Duration(t.ExpiresIn) * time.Second).UTC()
	}
	return session
}

func grant(kind string) url.Values {
	query := url.Values{}
	query.Set("grant_type", kind)
	return query
}

// SignInWithPassword exchanges an email and password for a session.
func (c *Client) SignInWithPassword(ctx context.Context, email, password string) (*auth.Session, error) {
	var token tokenResponse
	err := c.do(ctx, request{
		method: http.MethodPost,
		path:   authPath("token"),
		query:  grant("password"),
		body:   map[string]string{"email": email, "password": password},
		token:  c.anonKey,
	}, &token)
	if err != nil {
		if IsStatus(err, http.StatusBadRequest) || IsStatus(err, http.StatusUnauthorized) {
			return nil, eris.Wrap(auth.ErrInvalidCredentials, "supabase.SignInWithPassword")
		}
		return nil, eris.Wrap(err, "supabase.SignInWithPassword")
	}
	return token.session(time.Now()), nil
}

// Refresh trades a refresh token for a new session.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*auth.Session, error) {
	var token tokenResponse
	err := c.do(ctx, request{
		method: http.MethodPost,
		path:   authPath("token"),
		query:  grant("refresh_token"),
		body:   map[string]string{"refresh_token": refreshToken},
		token:  c.anonKey,
	}, &token)
	if err != nil {
		return nil, eris.Wrap(err, "supabase.Refresh")
	}
	return token.session(time.Now()), nil
}

// SignOut revokes the session on the auth server.
func (c *Client) SignOut(ctx context.Context, session *auth.Session) error {
	if session == nil || session.AccessToken == "" {
		return nil
	}
	err := c.do(ctx, request{
		method: http.MethodPost,
		path:   authPath("logout"),
		token:  session.AccessToken,
	}, nil)
	if err != nil {
		return eris.Wrap(err, "supabase.SignOut")
	}
	return nil
}

// User returns the user owning accessToken. A revoked or expired token fails with a 401 APIError.
func (c *Client) User(ctx context.Context, accessToken string) (*auth.User, error) {
	if accessToken == "" {
		return nil, auth.ErrNoSession
	}
	var user auth.User
	err := c.do(ctx, request{
		method: http.MethodGet,
		path:   authPath("user"),
		token:  accessToken,
	}, &user)
	if err != nil {
		return nil, eris.Wrap(err, "supabase.User")
	}
	return &user, nil
}
