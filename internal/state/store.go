package state

import (
	"sync"
	"time"
)

// Action is a named intent applied to the container by the reducer. The set of
// implementations is closed; external packages cannot define actions.
type Action interface {
	name() string
}

// LoginAction installs a freshly authenticated session.
type LoginAction struct {
	Session Session
}

func (LoginAction) name() string { return "login" }

// LogoutAction resets the container to guest defaults. It always succeeds.
type LogoutAction struct{}

func (LogoutAction) name() string { return "logout" }

// TouchActivityAction refreshes LastActivityAt. Ignored when unauthenticated.
type TouchActivityAction struct {
	At time.Time
}

func (TouchActivityAction) name() string { return "touch_activity" }

// SetPermissionsAction replaces the session's permission set.
type SetPermissionsAction struct {
	Permissions []string
}

func (SetPermissionsAction) name() string { return "set_permissions" }

// HydrateAction installs the session recovered from persistent storage and
// marks the container hydrated. A failed recovery hydrates to guest.
type HydrateAction struct {
	Session Session
}

func (HydrateAction) name() string { return "hydrate" }

// Subscriber observes each state transition. Called synchronously inside
// Dispatch, after the new state is installed.
type Subscriber func(prev, next State)

// Store is the single source of truth for session state. All mutation goes
// through [Store.Dispatch]; reads return deep copies.
type Store struct {
	mu     sync.RWMutex
	state  State
	subs   map[int]Subscriber
	nextID int
}

// NewStore creates a store holding the guest default, not yet hydrated.
func NewStore() *Store {
	return &Store{
		state: State{Session: Guest()},
		subs:  map[int]Subscriber{},
	}
}

// Dispatch applies the action through the reducer and notifies subscribers.
// Returns the resulting state.
func (s *Store) Dispatch(action Action) State {
	s.mu.Lock()
	prev := s.state
	next := reduce(prev, action)
	s.state = next
	subs := make([]Subscriber, 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(cloneState(prev), cloneState(next))
	}

	return cloneState(next)
}

// State returns a deep copy of the current state.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneState(s.state)
}

// Subscribe registers fn and returns its unsubscribe function. Both are safe
// to call concurrently; unsubscribe is idempotent.
func (s *Store) Subscribe(fn Subscriber) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// reduce is the pure transition function. It enforces the container invariant:
// an unauthenticated session is always exactly the guest default.
func reduce(st State, action Action) State {
	switch a := action.(type) {
	case LoginAction:
		st.Session = normalize(a.Session.Clone())
	case LogoutAction:
		st.Session = Guest()
	case TouchActivityAction:
		if st.Session.Authenticated {
			st.Session.LastActivityAt = a.At
		}
	case SetPermissionsAction:
		if st.Session.Authenticated {
			st.Session.Permissions = append([]string(nil), a.Permissions...)
		}
	case HydrateAction:
		st.Session = normalize(a.Session.Clone())
		st.Hydrated = true
	}
	return st
}

// normalize collapses any unauthenticated session to guest defaults so that
// authenticated==false implies role==guest and an empty permission set.
func normalize(sess Session) Session {
	if !sess.Authenticated {
		return Guest()
	}
	if sess.Role == "" {
		sess.Role = RoleGuest
	}
	return sess
}

func cloneState(st State) State {
	st.Session = st.Session.Clone()
	return st
}
