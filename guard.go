package sessiongate

import "context"

// GuardAction is the outcome class of a route-guard decision.
type GuardAction uint8

const (
	// GuardRender allows the request through.
	GuardRender GuardAction = iota
	// GuardRedirect sends the caller to Decision.Location.
	GuardRedirect
	// GuardPending defers the decision: persisted state is still being
	// loaded, and neither protected content nor a false redirect may be
	// served during that window.
	GuardPending
)

// GuardDecision is a pure function result over (session, requirements,
// current path). It carries no state of its own.
type GuardDecision struct {
	Action GuardAction
	// Location is the redirect target when Action is GuardRedirect.
	Location string
	// From is the attempted path carried as redirect context; empty when the
	// target does not need it.
	From string
}

// ProtectedSpec configures a role-gated guard.
type ProtectedSpec struct {
	AllowedRoles []Role
	RequireAuth  bool
	// RedirectTo receives unauthenticated callers. Defaults to the root path.
	RedirectTo string
}

// PublicSpec configures an inverse guard: restricted public routes (the login
// screen) bounce authenticated users to their own dashboard.
type PublicSpec struct {
	Restricted bool
}

// PrivateSpec configures a permission-gated guard.
type PrivateSpec struct {
	RequiredPermissions []string
	// RedirectTo receives callers missing a permission. Defaults to the
	// unauthorized path.
	RedirectTo string
}

// RoleSpec configures an exact-role guard. Misrouted authenticated users are
// bounced to their own role's dashboard, not merely blocked.
type RoleSpec struct {
	Role Role
}

// DecideProtected evaluates a Protected guard for currentPath.
func (m *Manager) DecideProtected(spec ProtectedSpec, currentPath string) GuardDecision {
	if !m.Hydrated() {
		return m.pending()
	}

	sess := m.Snapshot()

	if spec.RequireAuth && !sess.Authenticated {
		to := spec.RedirectTo
		if to == "" {
			to = m.config.Routes.Root
		}
		return m.redirect(to, currentPath, sess)
	}

	if len(spec.AllowedRoles) > 0 && !roleIn(sess.Role, spec.AllowedRoles) {
		return m.redirect(m.DashboardFor(sess.Role), "", sess)
	}

	return m.render()
}

// DecidePublic evaluates a Public guard for currentPath.
func (m *Manager) DecidePublic(spec PublicSpec, currentPath string) GuardDecision {
	if !m.Hydrated() {
		return m.pending()
	}

	sess := m.Snapshot()

	if spec.Restricted && sess.Authenticated {
		return m.redirect(m.DashboardFor(sess.Role), "", sess)
	}

	return m.render()
}

// DecidePrivate evaluates a Private guard for currentPath.
func (m *Manager) DecidePrivate(spec PrivateSpec, currentPath string) GuardDecision {
	if !m.Hydrated() {
		return m.pending()
	}

	sess := m.Snapshot()

	if !sess.Authenticated {
		return m.redirect(m.config.Routes.Root, currentPath, sess)
	}

	if !m.HasAll(spec.RequiredPermissions) {
		to := spec.RedirectTo
		if to == "" {
			to = m.config.Routes.Unauthorized
		}
		return m.redirect(to, "", sess)
	}

	return m.render()
}

// DecideRoleBased evaluates a RoleBased guard for currentPath.
func (m *Manager) DecideRoleBased(spec RoleSpec, currentPath string) GuardDecision {
	if !m.Hydrated() {
		return m.pending()
	}

	sess := m.Snapshot()

	if !sess.Authenticated {
		return m.redirect(m.config.Routes.Root, currentPath, sess)
	}

	if sess.Role != spec.Role {
		return m.redirect(m.DashboardFor(sess.Role), "", sess)
	}

	return m.render()
}

func (m *Manager) render() GuardDecision {
	m.metricInc(MetricGuardAllowed)
	return GuardDecision{Action: GuardRender}
}

func (m *Manager) pending() GuardDecision {
	m.metricInc(MetricGuardPending)
	return GuardDecision{Action: GuardPending}
}

func (m *Manager) redirect(to, from string, sess Session) GuardDecision {
	m.metricInc(MetricGuardRedirect)
	m.emit(context.Background(), AuditEvent{
		EventType: EventGuardRedirect,
		UserID:    sess.UserID,
		Role:      string(sess.Role),
		SessionID: sess.InstanceID,
		Path:      from,
		Metadata:  map[string]string{"to": to},
	})
	return GuardDecision{Action: GuardRedirect, Location: to, From: from}
}

func roleIn(role Role, roles []Role) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
