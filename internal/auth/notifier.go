package auth

import "sync"

// Event names an auth state change.
type Event string

const (
	EventSignedIn       Event = "SIGNED_IN"
	EventSignedOut      Event = "SIGNED_OUT"
	EventTokenRefreshed Event = "TOKEN_REFRESHED"
)

// Listener receives auth state changes. session is nil after sign-out.
type Listener func(event Event, session *Session)

// Subscription releases a registered listener.
type Subscription interface {
	Unsubscribe()
}

// Notifier fans out auth events to listeners registered under a scope.
type Notifier struct {
	mu        sync.Mutex
	nextID    int
	listeners map[string]map[int]Listener
}

// NewNotifier constructs an empty Notifier.
func NewNotifier() *Notifier {
	return &Notifier{listeners: make(map[string]map[int]Listener)}
}

// Subscribe registers listener for events published under scope.
func (n *Notifier) Subscribe(scope string, listener Listener) Subscription {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.nextID++
	id := n.nextID
	if n.listeners[scope] == nil {
		n.listeners[scope] = make(map[int]Listener)
	}
	n.listeners[scope][id] = listener

	return &subscription{release: func() { n.remove(scope, id) }}
}

// Notify delivers event to every listener of scope.
func (n *Notifier) Notify(scope string, event Event, session *Session) {
	n.mu.Lock()
	targets := make([]Listener, 0, len(n.listeners[scope]))
	for _, listener := range n.listeners[scope] {
		targets = append(targets, listener)
	}
	n.mu.Unlock()

	for _, listener := range targets {
		listener(event, session)
	}
}

// Count returns the number of listeners registered under scope.
func (n *Notifier) Count(scope string) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.listeners[scope])
}

func (n *Notifier) remove(scope string, id int) {
	n.mu.Lock()
	defer n.mu.Unlock()

	delete(n.listeners[scope], id)
	if len(n.listeners[scope]) == 0 {
		delete(n.listeners, scope)
	}
}

type subscription struct {
	once    sync.Once
	release func()
}

func (s *subscription) Unsubscribe() {
	s.once.Do(s.release)
}
