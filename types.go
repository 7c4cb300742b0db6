package sessiongate

import (
	"context"
	"encoding/json"
	"io"

	internalaudit "github.com/campaignwala/sessiongate/internal/audit"
	"github.com/campaignwala/sessiongate/internal/state"
)

// Role is the coarse identity class carried by a session.
type Role = state.Role

const (
	// RoleGuest is the unauthenticated default.
	RoleGuest = state.RoleGuest
	// RoleUser is a regular end-user account.
	RoleUser = state.RoleUser
	// RoleModerator is a moderation account.
	RoleModerator = state.RoleModerator
	// RoleAdmin is an administrative account; admins pass every permission
	// check.
	RoleAdmin = state.RoleAdmin
)

// ParseRole maps a persisted role string to a [Role], degrading unknown values
// to [RoleGuest].
func ParseRole(s string) Role {
	return state.ParseRole(s)
}

// Session is the client-held record of the authenticated identity. Values
// returned from Manager selectors are deep copies; mutating them has no
// effect on the store.
type Session = state.Session

// Credentials identify a user to the remote API. The platform authenticates
// by phone number.
type Credentials struct {
	Phone    string
	Password string
}

// LoginPayload is what the remote API returns on a successful login, as
// surfaced by an [AuthClient].
type LoginPayload struct {
	UserID      string
	Role        Role
	Permissions []string
	Token       string
	Phone       string
	Profile     json.RawMessage
}

// LoginResult is returned by [Manager.Login].
type LoginResult struct {
	Session Session
}

// AuthClient is the remote API collaborator. The session layer treats it as a
// black box: it never inspects transport details, only the mapped sentinel
// errors ([ErrInvalidCredentials], [ErrNetworkFailure], [ErrUnauthorized]).
type AuthClient interface {
	Login(ctx context.Context, creds Credentials) (LoginPayload, error)
	Logout(ctx context.Context, token string) error
	RefreshToken(ctx context.Context, token string) (string, error)
}

// AuditEvent is a structured audit record emitted by the manager.
type AuditEvent = internalaudit.Event

// AuditSink receives [AuditEvent] values from the manager's audit dispatcher.
type AuditSink = internalaudit.Sink

// NoOpSink is an [AuditSink] that silently discards all events.
type NoOpSink = internalaudit.NoOpSink

// ChannelSink is a buffered channel-based [AuditSink].
type ChannelSink = internalaudit.ChannelSink

// JSONWriterSink is an [AuditSink] that writes JSON-encoded events to an
// [io.Writer].
type JSONWriterSink = internalaudit.JSONWriterSink

// NewChannelSink creates a [ChannelSink] with the given buffer capacity.
func NewChannelSink(buffer int) *ChannelSink {
	return internalaudit.NewChannelSink(buffer)
}

// NewJSONWriterSink creates a [JSONWriterSink] that writes to w.
func NewJSONWriterSink(w io.Writer) *JSONWriterSink {
	return internalaudit.NewJSONWriterSink(w)
}
