package sessiongate

import (
	"context"
	"sync"
	"time"

	"github.com/campaignwala/sessiongate/expiry"
	internalaudit "github.com/campaignwala/sessiongate/internal/audit"
	"github.com/campaignwala/sessiongate/internal/state"
	"github.com/campaignwala/sessiongate/nav"
	"github.com/campaignwala/sessiongate/permission"
	"github.com/campaignwala/sessiongate/storage"
	"github.com/campaignwala/sessiongate/token"
)

// Manager is the process-wide session manager: the single writer of session
// state and the owner of the expiry watcher. Construct through
// [Builder.Build], then call [Manager.Init] once the process is ready to
// rehydrate persisted state.
type Manager struct {
	config    Config
	storage   storage.Store
	client    AuthClient
	state     *state.Store
	evaluator *permission.Evaluator
	grants    *permission.Grants
	resolver  *nav.Resolver
	watcher   *expiry.Watcher
	inspector *token.Inspector
	audit     *internalaudit.Dispatcher
	metrics   *Metrics

	mu          sync.Mutex
	initialized bool
}

// Init rehydrates persisted state and arms the expiry watcher when a session
// was recovered. Idempotent: redundant calls are no-ops. Safe to call again
// after [Manager.Destroy].
func (m *Manager) Init(ctx context.Context) error {
	m.mu.Lock()
	if m.initialized {
		m.mu.Unlock()
		return nil
	}
	m.initialized = true
	m.mu.Unlock()

	if err := m.rehydrate(ctx); err != nil {
		m.mu.Lock()
		m.initialized = false
		m.mu.Unlock()
		return err
	}

	return nil
}

// Destroy stops the expiry watcher and releases timers so a subsequent Init
// starts clean. Idempotent. Session state and persisted keys are untouched;
// only the runtime machinery is torn down.
func (m *Manager) Destroy() {
	m.mu.Lock()
	if !m.initialized {
		m.mu.Unlock()
		return
	}
	m.initialized = false
	m.mu.Unlock()

	m.watcher.Stop()
}

// Close destroys the manager and shuts down the audit dispatcher, draining
// buffered events.
func (m *Manager) Close() {
	if m == nil {
		return
	}
	m.Destroy()
	m.audit.Close()
}

func (m *Manager) ready() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.initialized
}

// Snapshot returns a deep copy of the current session.
func (m *Manager) Snapshot() Session {
	return m.state.State().Session
}

// Hydrated reports whether persisted state has been loaded. Guards defer
// decisions until this is true so protected content never flashes during
// startup.
func (m *Manager) Hydrated() bool {
	return m.state.State().Hydrated
}

// IsAuthenticated reports whether a session is active.
func (m *Manager) IsAuthenticated() bool {
	return m.state.State().Session.Authenticated
}

// Role returns the current session role; RoleGuest when unauthenticated.
func (m *Manager) Role() Role {
	return m.state.State().Session.Role
}

// Permissions returns a copy of the current permission set.
func (m *Manager) Permissions() []string {
	return m.state.State().Session.Permissions
}

// RemainingSession returns the time left before soft expiry; zero when no
// session is active.
func (m *Manager) RemainingSession() time.Duration {
	return m.watcher.Remaining()
}

// SessionPhase returns the expiry watcher phase.
func (m *Manager) SessionPhase() expiry.Phase {
	return m.watcher.Phase()
}

// HasPermission answers a single permission check through the memoizing
// evaluator.
func (m *Manager) HasPermission(perm string) bool {
	return m.evaluator.HasPermission(perm)
}

// HasAll reports whether every listed permission is held; vacuously true for
// an empty list.
func (m *Manager) HasAll(perms []string) bool {
	return m.evaluator.HasAll(perms)
}

// HasAny reports whether at least one listed permission is held; vacuously
// true for an empty list.
func (m *Manager) HasAny(perms []string) bool {
	return m.evaluator.HasAny(perms)
}

// InvalidatePermissionCache discards memoized permission results. Exposed for
// out-of-band permission updates, e.g. after an admin edits another user's
// grants.
func (m *Manager) InvalidatePermissionCache() {
	m.evaluator.InvalidateCache()
}

// SetPermissions replaces the session's permission set. The evaluator cache
// is cleared synchronously, so no stale positive can be observed afterwards.
func (m *Manager) SetPermissions(ctx context.Context, perms []string) {
	sess := m.Snapshot()
	if !sess.Authenticated {
		return
	}

	m.state.Dispatch(state.SetPermissionsAction{Permissions: perms})
	m.evaluator.SetPermissions(string(sess.Role), perms)

	m.emit(ctx, AuditEvent{
		EventType: EventPermissionsChanged,
		UserID:    sess.UserID,
		Role:      string(sess.Role),
		SessionID: sess.InstanceID,
		Success:   true,
	})
}

// Menu returns the current session's permission-filtered navigation tree.
func (m *Manager) Menu() []nav.Node {
	return m.resolver.FilteredMenu(string(m.Role()), m.evaluator)
}

// Breadcrumbs returns the breadcrumb trail for a navigation key, or nil for
// an unknown key.
func (m *Manager) Breadcrumbs(key string) []nav.Crumb {
	return m.resolver.Breadcrumbs(string(m.Role()), key)
}

// CurrentMenuItem returns the filtered menu node for activeKey, or nil when
// the key is absent, e.g. stale after a permission change removed the node.
func (m *Manager) CurrentMenuItem(activeKey string) *nav.Node {
	return m.resolver.CurrentItem(string(m.Role()), activeKey, m.evaluator)
}

// DashboardFor returns the configured default dashboard path for a role.
func (m *Manager) DashboardFor(role Role) string {
	return m.config.Routes.DashboardFor(role)
}

// MetricsSnapshot returns a point-in-time copy of all metrics.
func (m *Manager) MetricsSnapshot() MetricsSnapshot {
	return m.metrics.Snapshot()
}

// AuditDropped returns the number of audit events lost to backpressure.
func (m *Manager) AuditDropped() uint64 {
	return m.audit.Dropped()
}

func (m *Manager) emit(ctx context.Context, event AuditEvent) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	m.audit.Emit(ctx, event)
}

func (m *Manager) metricInc(id MetricID) {
	m.metrics.Inc(id)
}
