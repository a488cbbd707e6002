package auth

import (
	"context"
	"strings"
	"sync"

	"github.com/rotisserie/eris"
)

const (
	// LoginPath renders the admin login form.
	LoginPath = "/admin"
	// DashboardPath renders the admin dashboard.
	DashboardPath = "/admin/dashboard"
)

// State is the admin gate state.
type State int

const (
	StateLoading State = iota
	StateAuthenticated
	StateUnauthenticated
)

func (s State) String() string {
	switch s {
	case StateAuthenticated:
		return "authenticated"
	case StateUnauthenticated:
		return "unauthenticated"
	default:
		return "loading"
	}
}

// View is what the gate selects for a path.
type View int

const (
	ViewLoading View = iota
	ViewLogin
	ViewDashboard
)

// Decision is the routing outcome for one admin path. Redirect is empty when View should render.
type Decision struct {
	View     View
	Redirect string
}

// Gate tracks whether the admin is signed in, starting in StateLoading until the session
// accessor answers or a change notification arrives.
type Gate struct {
	provider Provider

	mu      sync.RWMutex
	state   State
	session *Session
	sub     Subscription
}

// NewGate returns a gate in StateLoading.
func NewGate(provider Provider) *Gate {
	return &Gate{provider: provider, state: StateLoading}
}

// Start subscribes to auth changes and resolves the current session. A notification that
// arrives first wins over the accessor result.
func (g *Gate) Start(ctx context.Context) error {
	if g.provider == nil {
		g.apply(nil, false)
		return eris.New("session provider is required")
	}

	sub := g.provider.OnAuthStateChange(func(_ Event, session *Session) {
		g.apply(session, true)
	})

	g.mu.Lock()
	g.sub = sub
	g.mu.Unlock()

	session, err := g.provider.Session(ctx)
	if err != nil {
		g.apply(nil, false)
		return eris.Wrap(err, "resolving admin session")
	}

	g.apply(session, false)
	return nil
}

func (g *Gate) apply(session *Session, fromNotification bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !fromNotification && g.state != StateLoading {
		return
	}

	g.session = session
	if session != nil {
		g.state = StateAuthenticated
	} else {
		g.state = StateUnauthenticated
	}
}

// State returns the current gate state.
func (g *Gate) State() State {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.state
}

// Session returns the session backing StateAuthenticated, or nil.
func (g *Gate) Session() *Session {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.session
}

// Route applies the admin routing policy to path.
func (g *Gate) Route(path string) Decision {
	state := g.State()
	if state == StateLoading {
		return Decision{View: ViewLoading}
	}

	authenticated := state == StateAuthenticated
	switch normalizePath(path) {
	case LoginPath:
		if authenticated {
			return Decision{View: ViewDashboard, Redirect: DashboardPath}
		}
		return Decision{View: ViewLogin}
	case DashboardPath:
		if !authenticated {
			return Decision{View: ViewLogin, Redirect: LoginPath}
		}
		return Decision{View: ViewDashboard}
	default:
		if authenticated {
			return Decision{View: ViewDashboard, Redirect: DashboardPath}
		}
		return Decision{View: ViewLogin, Redirect: LoginPath}
	}
}

// Close releases the change-notification subscription.
func (g *Gate) Close() {
	g.mu.Lock()
	sub := g.sub
	g.sub = nil
	g.mu.Unlock()

	if sub != nil {
		sub.Unsubscribe()
	}
}

func normalizePath(path string) string {
	trimmed := strings.TrimSpace(path)
	if len(trimmed) > 1 {
		trimmed = strings.TrimRight(trimmed, "/")
	}
	return trimmed
}
