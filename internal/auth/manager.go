package auth

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"
)

// Provider is the session view one browser has of the data service: the current session
// plus a change-notification subscription.
type Provider interface {
	Session(ctx context.Context) (*Session, error)
	OnAuthStateChange(listener Listener) Subscription
	SignInWithPassword(ctx context.Context, email, password string) (*Session, error)
	SignOut(ctx context.Context) error
}

// Manager issues a Provider per browser session id, persisting sessions in a SessionStore.
type Manager struct {
	store    SessionStore
	auth     Authenticator
	notifier *Notifier
	logger   *logrus.Logger
	now      func() time.Time
}

// NewManager wires a Manager over store and authenticator.
func NewManager(store SessionStore, authenticator Authenticator, logger *logrus.Logger) (*Manager, error) {
	if store == nil {
		return nil, eris.New("session store is required")
	}
	if authenticator == nil {
		return nil, eris.New("authenticator is required")
	}

	return &Manager{
		store:    store,
		auth:     authenticator,
		notifier: NewNotifier(),
		logger:   logger,
		now:      time.Now,
	}, nil
}

// NewSessionID returns a fresh opaque browser session identifier.
func NewSessionID() string {
	return uuid.NewString()
}

// Provider returns the session provider bound to the browser session id.
func (m *Manager) Provider(id string) Provider {
	return &sessionProvider{manager: m, id: strings.TrimSpace(id)}
}

// Subscribe registers a listener for every browser session. Used for auditing.
func (m *Manager) Subscribe(listener Listener) Subscription {
	return m.notifier.Subscribe(allScopes, listener)
}

const allScopes = "*"

func (m *Manager) notify(id string, event Event, session *Session) {
	m.notifier.Notify(id, event, session)
	m.notifier.Notify(allScopes, event, session)
}

type sessionProvider struct {
	manager *Manager
	id      string
}

var _ Provider = (*sessionProvider)(nil)

func (p *sessionProvider) Session(ctx context.Context) (*Session, error) {
	if p.id == "" {
		return nil, nil
	}

	m := p.manager
	session, err := m.store.Get(ctx, p.id)
	if err != nil {
		return nil, eris.Wrap(err, "loading session")
	}
	if session == nil {
		return nil, nil
	}
	if !session.Expired(m.now()) {
		return p.verify(ctx, session)
	}

	if session.RefreshToken == "" {
		return nil, p.drop(ctx)
	}

	refreshed, err := m.auth.Refresh(ctx, session.RefreshToken)
	if err != nil || refreshed == nil {
		if err != nil {
			m.logWarn(err, "refreshing session failed")
		}
		return nil, p.drop(ctx)
	}

	if err := m.store.Put(ctx, p.id, refreshed); err != nil {
		return nil, eris.Wrap(err, "storing refreshed session")
	}
	m.notify(p.id, EventTokenRefreshed, refreshed)

	return refreshed, nil
}

func (p *sessionProvider) OnAuthStateChange(listener Listener) Subscription {
	return p.manager.notifier.Subscribe(p.id, listener)
}

func (p *sessionProvider) SignInWithPassword(ctx context.Context, email, password string) (*Session, error) {
	if p.id == "" {
		return nil, eris.New("session id is required")
	}

	m := p.manager
	session, err := m.auth.SignInWithPassword(ctx, strings.TrimSpace(email), password)
	if err != nil {
		return nil, eris.Wrap(err, "signing in")
	}
	if session == nil {
		return nil, eris.Wrap(ErrNoSession, "signing in")
	}

	if err := m.store.Put(ctx, p.id, session); err != nil {
		return nil, eris.Wrap(err, "storing session")
	}
	m.notify(p.id, EventSignedIn, session)

	return session, nil
}

// SignOut revokes the remote session and always clears the local one.
func (p *sessionProvider) SignOut(ctx context.Context) error {
	if p.id == "" {
		return nil
	}

	m := p.manager
	session, err := m.store.Get(ctx, p.id)
	if err != nil {
		return eris.Wrap(err, "loading session")
	}

	var remoteErr error
	if session != nil {
		remoteErr = m.auth.SignOut(ctx, session)
	}

	if err := p.drop(ctx); err != nil {
		return err
	}
	if remoteErr != nil {
		return eris.Wrap(remoteErr, "revoking remote session")
	}
	return nil
}

// verify drops the session when the authenticator no longer accepts its access token.
func (p *sessionProvider) verify(ctx context.Context, session *Session) (*Session, error) {
	verifier, ok := p.manager.auth.(UserVerifier)
	if !ok {
		return session, nil
	}

	user, err := verifier.User(ctx, session.AccessToken)
	if err != nil || user == nil {
		p.manager.logWarn(err, "access token rejected")
		return nil, p.drop(ctx)
	}

	verified := *session
	verified.User = *user
	return &verified, nil
}

func (p *sessionProvider) drop(ctx context.Context) error {
	if err := p.manager.store.Delete(ctx, p.id); err != nil {
		return eris.Wrap(err, "deleting session")
	}
	p.manager.notify(p.id, EventSignedOut, nil)
	return nil
}

func (m *Manager) logWarn(err error, message string) {
	if m.logger == nil || err == nil {
		return
	}
	m.logger.WithField("error", err.Error()).Warn(message)
}
