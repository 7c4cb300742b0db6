package sessiongate

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/campaignwala/sessiongate/internal/state"
)

// Login authenticates against the remote API and, on success, installs and
// persists the new session and starts the expiry watcher.
//
// [ErrInvalidCredentials] and [ErrNetworkFailure] leave session state exactly
// as it was before the attempt.
func (m *Manager) Login(ctx context.Context, creds Credentials) (*LoginResult, error) {
	if !m.ready() {
		return nil, ErrManagerNotReady
	}

	start := time.Now()

	payload, err := m.client.Login(ctx, creds)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidCredentials):
			m.metricInc(MetricLoginFailure)
		default:
			m.metricInc(MetricLoginNetworkError)
		}
		m.emit(ctx, AuditEvent{
			EventType: EventLoginFailed,
			Error:     err.Error(),
			Metadata:  map[string]string{"ip": clientIPFromContext(ctx)},
		})
		return nil, err
	}

	now := time.Now()
	// Unknown role values degrade to guest.
	role := ParseRole(string(payload.Role))

	perms := payload.Permissions
	if len(perms) == 0 {
		perms, _ = m.grants.ForRole(string(role))
	}

	sess := Session{
		UserID:         payload.UserID,
		Role:           role,
		Permissions:    perms,
		Token:          payload.Token,
		Phone:          payload.Phone,
		Profile:        payload.Profile,
		InstanceID:     uuid.NewString(),
		IssuedAt:       now,
		LastActivityAt: now,
		Authenticated:  true,
	}

	next := m.state.Dispatch(state.LoginAction{Session: sess})
	m.evaluator.SetPermissions(string(role), perms)

	if err := m.persist(ctx, next.Session); err != nil {
		// The session is usable in-process even when the durable copy failed;
		// a reload will simply land on the login screen.
		log.Printf("sessiongate: persisting session failed: %v", err)
	}

	m.watcher.Start()

	m.metricInc(MetricLoginSuccess)
	m.metrics.Observe(MetricLoginLatency, time.Since(start))
	m.emit(ctx, AuditEvent{
		EventType: EventLogin,
		UserID:    sess.UserID,
		Role:      string(sess.Role),
		SessionID: sess.InstanceID,
		Success:   true,
		Metadata:  map[string]string{"ip": clientIPFromContext(ctx)},
	})

	return &LoginResult{Session: next.Session}, nil
}

// Logout clears local session state unconditionally, then notifies the remote
// API. A remote failure is audited and logged but never surfaced: the local
// logout has already happened. Always returns nil.
func (m *Manager) Logout(ctx context.Context) error {
	prev := m.Snapshot()

	m.clearLocal(ctx)

	if prev.Authenticated {
		m.metricInc(MetricLogout)
		m.emit(ctx, AuditEvent{
			EventType: EventLogout,
			UserID:    prev.UserID,
			Role:      string(prev.Role),
			SessionID: prev.InstanceID,
			Success:   true,
			Metadata:  map[string]string{"ip": clientIPFromContext(ctx)},
		})

		if err := m.client.Logout(ctx, prev.Token); err != nil {
			m.metricInc(MetricLogoutRemoteFailure)
			m.emit(ctx, AuditEvent{
				EventType: EventLogoutRemoteFailed,
				UserID:    prev.UserID,
				SessionID: prev.InstanceID,
				Error:     err.Error(),
			})
			log.Printf("sessiongate: remote logout failed: %v", err)
		}
	}

	return nil
}

// RefreshToken exchanges the current token for a fresh one and updates the
// persisted copy. A 401 response is resolved as a forced logout.
func (m *Manager) RefreshToken(ctx context.Context) error {
	if !m.ready() {
		return ErrManagerNotReady
	}

	sess := m.Snapshot()
	if !sess.Authenticated {
		return ErrNotAuthenticated
	}

	fresh, err := m.client.RefreshToken(ctx, sess.Token)
	if err != nil {
		m.metricInc(MetricTokenRefreshFailure)
		if errors.Is(err, ErrUnauthorized) {
			m.HandleUnauthorized(ctx)
		}
		return err
	}

	sess.Token = fresh
	next := m.state.Dispatch(state.LoginAction{Session: sess})
	if err := m.persist(ctx, next.Session); err != nil {
		log.Printf("sessiongate: persisting refreshed token failed: %v", err)
	}

	m.metricInc(MetricTokenRefreshSuccess)
	return nil
}

// HandleUnauthorized is the hook for 401 responses observed by any downstream
// call: it clears persisted state, resets to guest, and returns the root path
// the caller should redirect to.
func (m *Manager) HandleUnauthorized(ctx context.Context) string {
	prev := m.Snapshot()

	m.clearLocal(ctx)
	m.metricInc(MetricUnauthorizedDetected)

	if prev.Authenticated {
		m.metricInc(MetricForcedLogout)
		m.emit(ctx, AuditEvent{
			EventType: EventUnauthorized,
			UserID:    prev.UserID,
			Role:      string(prev.Role),
			SessionID: prev.InstanceID,
		})
	}

	return m.config.Routes.Root
}

// clearLocal stops the watcher, resets the container to guest, clears the
// evaluator, and deletes the persisted keys. Storage failures are logged
// only; the in-process logout is unconditional.
func (m *Manager) clearLocal(ctx context.Context) {
	m.watcher.Stop()
	m.state.Dispatch(state.LogoutAction{})
	m.evaluator.SetPermissions(string(RoleGuest), nil)

	if err := m.clearPersisted(ctx); err != nil {
		log.Printf("sessiongate: clearing persisted session failed: %v", err)
	}
}

// forceLogout resolves an internally detected session end (soft expiry).
// Fire-and-forget: it cannot fail observably beyond the redirect the guards
// will issue for the now-guest session.
func (m *Manager) forceLogout(ctx context.Context, eventType string) {
	prev := m.Snapshot()
	if !prev.Authenticated {
		return
	}

	m.clearLocal(ctx)

	m.metricInc(MetricForcedLogout)
	m.emit(ctx, AuditEvent{
		EventType: eventType,
		UserID:    prev.UserID,
		Role:      string(prev.Role),
		SessionID: prev.InstanceID,
	})
}
