package sessiongate

import (
	"errors"

	"github.com/campaignwala/sessiongate/expiry"
	internalaudit "github.com/campaignwala/sessiongate/internal/audit"
	"github.com/campaignwala/sessiongate/internal/state"
	"github.com/campaignwala/sessiongate/nav"
	"github.com/campaignwala/sessiongate/permission"
	"github.com/campaignwala/sessiongate/storage"
	"github.com/campaignwala/sessiongate/token"
)

// Builder assembles a [Manager]. Instances are single-use: Build may be
// called once.
type Builder struct {
	config Config
	store  storage.Store
	client AuthClient
	sink   AuditSink

	roles map[Role][]string
	menus map[Role][]nav.Node

	built bool
}

// New creates a Builder carrying the default configuration.
func New() *Builder {
	return &Builder{
		config: defaultConfig(),
		menus:  map[Role][]nav.Node{},
	}
}

// WithConfig replaces the whole configuration.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cloneConfig(cfg)
	return b
}

// WithStorage sets the persistent key-value backend. Required.
func (b *Builder) WithStorage(store storage.Store) *Builder {
	b.store = store
	return b
}

// WithAuthClient sets the remote API collaborator. Required.
func (b *Builder) WithAuthClient(client AuthClient) *Builder {
	b.client = client
	return b
}

// WithAuditSink sets the audit destination. Defaults to a no-op sink.
func (b *Builder) WithAuditSink(sink AuditSink) *Builder {
	b.sink = sink
	return b
}

// WithRoles replaces the role-to-default-permissions table. When not called,
// the platform defaults apply (admin holds the wildcard grant).
func (b *Builder) WithRoles(roles map[Role][]string) *Builder {
	b.roles = roles
	return b
}

// WithMenu installs the static navigation tree for a role.
func (b *Builder) WithMenu(role Role, tree []nav.Node) *Builder {
	b.menus[role] = tree
	return b
}

// WithMetricsEnabled toggles in-process metrics.
func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

// WithLatencyHistograms toggles the login latency histogram.
func (b *Builder) WithLatencyHistograms(enabled bool) *Builder {
	b.config.Metrics.EnableLatencyHistograms = enabled
	return b
}

// defaultRoleGrants is the platform's stock access table.
func defaultRoleGrants() map[Role][]string {
	return map[Role][]string{
		RoleAdmin: {permission.Wildcard},
		RoleModerator: {
			"offers.read", "categories.read",
			"leads.read", "leads.review",
			"kyc.review", "notifications.read",
		},
		RoleUser: {
			"offers.read", "leads.read", "leads.write",
			"wallet.read", "wallet.withdraw", "notifications.read",
		},
		RoleGuest: nil,
	}
}

// Build validates the configuration and assembles the Manager. The Manager is
// inert until [Manager.Init] is called.
func (b *Builder) Build() (*Manager, error) {
	if b.built {
		return nil, ErrBuilderUsed
	}
	b.built = true

	cfg := cloneConfig(b.config)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if b.store == nil {
		return nil, errors.New("storage backend required")
	}
	if b.client == nil {
		return nil, errors.New("auth client required")
	}

	roles := b.roles
	if roles == nil {
		roles = defaultRoleGrants()
	}
	grants := permission.NewGrants()
	for role, perms := range roles {
		if err := grants.RegisterRole(string(role), perms); err != nil {
			return nil, err
		}
	}
	grants.Freeze()

	resolver := nav.NewResolver()
	for role, tree := range b.menus {
		if err := resolver.RegisterMenu(string(role), tree); err != nil {
			return nil, err
		}
	}
	resolver.Freeze()

	metrics := NewMetrics(cfg.Metrics)

	m := &Manager{
		config:    cfg,
		storage:   b.store,
		client:    b.client,
		state:     state.NewStore(),
		grants:    grants,
		resolver:  resolver,
		inspector: token.NewInspector(cfg.Token.HMACKey, cfg.Token.Leeway),
		metrics:   metrics,
		audit: internalaudit.NewDispatcher(internalaudit.Config{
			Enabled:    cfg.Audit.Enabled,
			BufferSize: cfg.Audit.BufferSize,
			DropIfFull: cfg.Audit.DropIfFull,
		}, b.sink),
	}

	m.evaluator = permission.NewEvaluator(permission.Hooks{
		OnCacheHit:   func() { metrics.Inc(MetricPermissionCacheHit) },
		OnCacheMiss:  func() { metrics.Inc(MetricPermissionCacheMiss) },
		OnInvalidate: func() { metrics.Inc(MetricPermissionCacheInvalidated) },
	})

	m.watcher = expiry.NewWatcher(expiry.Config{
		Timeout:          cfg.Session.Timeout,
		WarningWindow:    cfg.Session.WarningWindow,
		PollInterval:     cfg.Session.PollInterval,
		ActivityThrottle: cfg.Session.ActivityThrottle,
	}, expiry.Callbacks{
		OnWarning: m.onSessionWarning,
		OnExpire:  m.onSessionExpired,
	})

	return m, nil
}
