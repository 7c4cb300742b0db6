package state

import (
	"encoding/json"
	"time"
)

// Role is the coarse identity class carried by a session.
type Role string

const (
	// RoleGuest is the unauthenticated default.
	RoleGuest Role = "guest"
	// RoleUser is a regular end-user account.
	RoleUser Role = "user"
	// RoleModerator is a moderation account.
	RoleModerator Role = "moderator"
	// RoleAdmin is an administrative account. Admins pass every permission
	// check.
	RoleAdmin Role = "admin"
)

// ParseRole maps a persisted role string to a [Role]. Unknown or empty values
// degrade to [RoleGuest] so a corrupt store can never mint privileges.
func ParseRole(s string) Role {
	switch Role(s) {
	case RoleUser, RoleModerator, RoleAdmin:
		return Role(s)
	default:
		return RoleGuest
	}
}

// Session is the client-held record of the currently authenticated identity
// and its remaining validity window.
type Session struct {
	UserID      string
	Role        Role
	Permissions []string

	// Token is the opaque bearer token issued by the remote API.
	Token string
	Phone string

	// Profile is the raw user profile JSON as persisted. nil when absent or
	// when the persisted value was malformed.
	Profile json.RawMessage

	// InstanceID identifies one login of this session; a new ID is assigned on
	// every successful login so expiry callbacks can be deduplicated across
	// re-logins.
	InstanceID string

	IssuedAt       time.Time
	LastActivityAt time.Time

	Authenticated bool
}

// Guest returns the unauthenticated default session.
func Guest() Session {
	return Session{Role: RoleGuest}
}

// Clone returns a deep copy so callers can never alias the store's slices.
func (s Session) Clone() Session {
	out := s
	if s.Permissions != nil {
		out.Permissions = append([]string(nil), s.Permissions...)
	}
	if s.Profile != nil {
		out.Profile = append(json.RawMessage(nil), s.Profile...)
	}
	return out
}

// State is the full container value. Hydrated reports whether persisted state
// has been loaded at least once; guards hold requests until it is true.
type State struct {
	Session  Session
	Hydrated bool
}
