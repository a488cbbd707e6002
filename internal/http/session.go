package http

import (
	"context"
	stdhttp "net/http"
	"strings"

	"folio/app/internal/auth"
)

const sessionCookieName = "folio_session"

func sessionIDFromRequest(req *stdhttp.Request) string {
	cookie, err := req.Cookie(sessionCookieName)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(cookie.Value)
}

// openGate resolves the admin session of id. The caller must Close the gate.
func (s *Server) openGate(ctx context.Context, id string) *auth.Gate {
	gate := auth.NewGate(s.sessions.Provider(id))
	if err := gate.Start(ctx); err != nil {
		s.recordError(ctx, err, "resolving admin session", nil)
	}
	return gate
}

func (s *Server) sessionCookie(id string) string {
	cookie := &stdhttp.Cookie{
		Name:     sessionCookieName,
		Value:    id,
		Path:     auth.LoginPath,
		MaxAge:   int(s.sessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: stdhttp.SameSiteLaxMode,
	}
	return cookie.String()
}

func (s *Server) expiredSessionCookie() string {
	cookie := &stdhttp.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     auth.LoginPath,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: stdhttp.SameSiteLaxMode,
	}
	return cookie.String()
}
