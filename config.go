package sessiongate

import (
	"errors"
	"time"
)

// Config collects all tuning for the session layer. Instances are intended to
// be configured during initialization and then treated as immutable.
type Config struct {
	Session SessionConfig
	Storage StorageConfig
	Routes  RouteConfig
	Token   TokenConfig
	Audit   AuditConfig
	Metrics MetricsConfig
}

// SessionConfig controls the soft expiry window.
type SessionConfig struct {
	// Timeout is the full inactivity window before forced logout.
	Timeout time.Duration
	// WarningWindow is how long before Timeout the warning phase begins.
	WarningWindow time.Duration
	// PollInterval is the expiry check tick.
	PollInterval time.Duration
	// ActivityThrottle bounds how often tracked activity refreshes the window.
	ActivityThrottle time.Duration
}

// StorageConfig controls the persisted key-value backend.
type StorageConfig struct {
	// RedisPrefix namespaces keys when the Redis backend is used.
	RedisPrefix string
}

// RouteConfig holds the redirect targets guards send users to.
type RouteConfig struct {
	// Dashboards maps each role to its default dashboard path.
	Dashboards map[Role]string
	// Unauthorized is the fallback for roles with no dashboard.
	Unauthorized string
	// Root is the login screen; unauthenticated users land here.
	Root string
}

// DashboardFor returns the role's default dashboard, the guest root for
// guests, or the unauthorized fallback for unknown roles.
func (rc RouteConfig) DashboardFor(role Role) string {
	if role == RoleGuest {
		return rc.Root
	}
	if path, ok := rc.Dashboards[role]; ok && path != "" {
		return path
	}
	return rc.Unauthorized
}

// TokenConfig controls local token inspection on rehydrate.
type TokenConfig struct {
	// HMACKey enables signature verification of persisted tokens. Nil means
	// claims are read unverified (the server remains the authority).
	HMACKey []byte
	// Leeway softens the local expiry comparison against clock skew.
	Leeway time.Duration
}

// AuditConfig controls the async audit dispatcher.
type AuditConfig struct {
	Enabled    bool
	BufferSize int
	DropIfFull bool
}

// MetricsConfig controls in-process metrics.
type MetricsConfig struct {
	Enabled                 bool
	EnableLatencyHistograms bool
}

func defaultConfig() Config {
	return Config{
		Session: SessionConfig{
			Timeout:          30 * time.Minute,
			WarningWindow:    5 * time.Minute,
			PollInterval:     30 * time.Second,
			ActivityThrottle: time.Second,
		},
		Storage: StorageConfig{
			RedisPrefix: "cw",
		},
		Routes: RouteConfig{
			Dashboards: map[Role]string{
				RoleAdmin:     "/admin",
				RoleUser:      "/user",
				RoleModerator: "/moderator",
			},
			Unauthorized: "/unauthorized",
			Root:         "/",
		},
		Token: TokenConfig{
			Leeway: 30 * time.Second,
		},
		Audit: AuditConfig{
			Enabled:    true,
			BufferSize: 256,
			DropIfFull: true,
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
	}
}

func cloneConfig(cfg Config) Config {
	out := cfg
	out.Token.HMACKey = append([]byte(nil), cfg.Token.HMACKey...)
	if cfg.Routes.Dashboards != nil {
		out.Routes.Dashboards = make(map[Role]string, len(cfg.Routes.Dashboards))
		for role, path := range cfg.Routes.Dashboards {
			out.Routes.Dashboards[role] = path
		}
	}
	return out
}

// Validate reports the first configuration problem found.
func (c *Config) Validate() error {
	if c.Session.Timeout <= 0 {
		return errors.New("session timeout must be positive")
	}
	if c.Session.WarningWindow <= 0 || c.Session.WarningWindow >= c.Session.Timeout {
		return errors.New("warning window must be positive and shorter than the timeout")
	}
	if c.Session.PollInterval <= 0 {
		return errors.New("poll interval must be positive")
	}
	if c.Session.ActivityThrottle <= 0 || c.Session.ActivityThrottle > 30*time.Second {
		return errors.New("activity throttle must be within (0, 30s]")
	}
	if c.Routes.Root == "" {
		return errors.New("root route required")
	}
	if c.Routes.Unauthorized == "" {
		return errors.New("unauthorized route required")
	}
	if c.Audit.Enabled && c.Audit.BufferSize < 0 {
		return errors.New("audit buffer size cannot be negative")
	}
	return nil
}
