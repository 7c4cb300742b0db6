package state

import (
	"testing"
	"time"
)

func authenticatedSession() Session {
	return Session{
		UserID:        "u-1",
		Role:          RoleUser,
		Permissions:   []string{"offers.read"},
		Token:         "tok",
		Phone:         "9000000001",
		InstanceID:    "inst-1",
		Authenticated: true,
	}
}

func TestInitialState(t *testing.T) {
	s := NewStore()
	st := s.State()

	if st.Hydrated {
		t.Fatal("store hydrated before any hydrate action")
	}
	if st.Session.Authenticated || st.Session.Role != RoleGuest {
		t.Fatalf("initial session = %+v", st.Session)
	}
}

func TestLoginThenLogout(t *testing.T) {
	s := NewStore()

	st := s.Dispatch(LoginAction{Session: authenticatedSession()})
	if !st.Session.Authenticated || st.Session.UserID != "u-1" {
		t.Fatalf("post-login session = %+v", st.Session)
	}

	st = s.Dispatch(LogoutAction{})
	if st.Session.Authenticated {
		t.Fatal("still authenticated after logout")
	}
	if st.Session.Role != RoleGuest || len(st.Session.Permissions) != 0 {
		t.Fatalf("logout did not reset to guest: %+v", st.Session)
	}
	if st.Session.Token != "" || st.Session.UserID != "" {
		t.Fatalf("logout leaked identity fields: %+v", st.Session)
	}
}

func TestUnauthenticatedImpliesGuest(t *testing.T) {
	s := NewStore()

	// A session claiming a role and permissions but not authenticated must be
	// collapsed to the guest default by the reducer.
	sess := authenticatedSession()
	sess.Authenticated = false
	st := s.Dispatch(LoginAction{Session: sess})

	if st.Session.Role != RoleGuest {
		t.Fatalf("role = %v, want guest", st.Session.Role)
	}
	if len(st.Session.Permissions) != 0 {
		t.Fatalf("permissions = %v, want empty", st.Session.Permissions)
	}
}

func TestTouchActivity(t *testing.T) {
	s := NewStore()
	at := time.Date(2026, 1, 15, 9, 30, 0, 0, time.UTC)

	// Ignored while unauthenticated.
	st := s.Dispatch(TouchActivityAction{At: at})
	if !st.Session.LastActivityAt.IsZero() {
		t.Fatal("activity recorded for guest")
	}

	s.Dispatch(LoginAction{Session: authenticatedSession()})
	st = s.Dispatch(TouchActivityAction{At: at})
	if !st.Session.LastActivityAt.Equal(at) {
		t.Fatalf("LastActivityAt = %v, want %v", st.Session.LastActivityAt, at)
	}
}

func TestSetPermissions(t *testing.T) {
	s := NewStore()
	s.Dispatch(LoginAction{Session: authenticatedSession()})

	st := s.Dispatch(SetPermissionsAction{Permissions: []string{"leads.read", "leads.write"}})
	if len(st.Session.Permissions) != 2 {
		t.Fatalf("permissions = %v", st.Session.Permissions)
	}

	// Ignored for guests.
	s.Dispatch(LogoutAction{})
	st = s.Dispatch(SetPermissionsAction{Permissions: []string{"leads.read"}})
	if len(st.Session.Permissions) != 0 {
		t.Fatalf("guest permissions = %v", st.Session.Permissions)
	}
}

func TestHydrateMarksHydrated(t *testing.T) {
	s := NewStore()

	st := s.Dispatch(HydrateAction{Session: Guest()})
	if !st.Hydrated {
		t.Fatal("hydrate to guest must still mark hydrated")
	}

	st = s.Dispatch(HydrateAction{Session: authenticatedSession()})
	if !st.Hydrated || !st.Session.Authenticated {
		t.Fatalf("post-hydrate state = %+v", st)
	}
}

func TestSubscribers(t *testing.T) {
	s := NewStore()

	var calls int
	var lastNext State
	unsubscribe := s.Subscribe(func(_, next State) {
		calls++
		lastNext = next
	})

	s.Dispatch(LoginAction{Session: authenticatedSession()})
	if calls != 1 || !lastNext.Session.Authenticated {
		t.Fatalf("calls = %d, next = %+v", calls, lastNext)
	}

	unsubscribe()
	unsubscribe() // idempotent
	s.Dispatch(LogoutAction{})
	if calls != 1 {
		t.Fatalf("subscriber called after unsubscribe: %d", calls)
	}
}

func TestReadsAreCopies(t *testing.T) {
	s := NewStore()
	s.Dispatch(LoginAction{Session: authenticatedSession()})

	st := s.State()
	st.Session.Permissions[0] = "mutated"

	if s.State().Session.Permissions[0] != "offers.read" {
		t.Fatal("caller mutation reached the store")
	}
}
