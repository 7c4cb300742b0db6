package sessiongate

import (
	"context"
	"time"

	"github.com/campaignwala/sessiongate/internal/state"
)

// TouchActivity records a tracked user-interaction event. Throttled: at most
// one event per configured throttle window reaches the state container, so
// continuous streams (mouse moves, scrolling) cannot flood it. No-op when
// unauthenticated.
func (m *Manager) TouchActivity() {
	if !m.IsAuthenticated() {
		return
	}

	if !m.watcher.Touch() {
		m.metricInc(MetricActivityThrottled)
		return
	}

	m.state.Dispatch(state.TouchActivityAction{At: time.Now()})
	m.metricInc(MetricActivityRecorded)
}

// ExtendSession resets the expiry window unconditionally, returning a session
// in the warning phase to the active phase. Intended for an explicit "stay
// signed in" action.
func (m *Manager) ExtendSession() {
	if !m.IsAuthenticated() {
		return
	}

	m.watcher.Extend()
	m.state.Dispatch(state.TouchActivityAction{At: time.Now()})
}

// onSessionWarning runs inside the watcher's poll goroutine.
func (m *Manager) onSessionWarning() {
	sess := m.Snapshot()

	m.metricInc(MetricSessionWarning)
	m.emit(context.Background(), AuditEvent{
		EventType: EventSessionWarning,
		UserID:    sess.UserID,
		Role:      string(sess.Role),
		SessionID: sess.InstanceID,
		Success:   true,
	})
}

// onSessionExpired runs inside the watcher's poll goroutine. The forced
// logout happens on a fresh goroutine because it stops the watcher, which
// waits for the poll goroutine to exit.
func (m *Manager) onSessionExpired() {
	m.metricInc(MetricSessionExpired)
	go m.forceLogout(context.Background(), EventSessionExpired)
}
