package sessiongate

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// fileConfig is the YAML shape of an on-disk configuration. Durations are
// strings in time.ParseDuration syntax; absent fields keep their defaults.
type fileConfig struct {
	Session struct {
		Timeout          string `yaml:"timeout"`
		WarningWindow    string `yaml:"warning_window"`
		PollInterval     string `yaml:"poll_interval"`
		ActivityThrottle string `yaml:"activity_throttle"`
	} `yaml:"session"`
	Storage struct {
		RedisPrefix string `yaml:"redis_prefix"`
	} `yaml:"storage"`
	Routes struct {
		Dashboards   map[string]string `yaml:"dashboards"`
		Unauthorized string            `yaml:"unauthorized"`
		Root         string            `yaml:"root"`
	} `yaml:"routes"`
	Token struct {
		HMACKey string `yaml:"hmac_key"`
		Leeway  string `yaml:"leeway"`
	} `yaml:"token"`
	Audit struct {
		Enabled    *bool `yaml:"enabled"`
		BufferSize int   `yaml:"buffer_size"`
		DropIfFull *bool `yaml:"drop_if_full"`
	} `yaml:"audit"`
	Metrics struct {
		Enabled           *bool `yaml:"enabled"`
		LatencyHistograms bool  `yaml:"latency_histograms"`
	} `yaml:"metrics"`
}

// LoadConfig reads a YAML configuration file and overlays it onto the
// defaults. The result still goes through [Config.Validate] in Build.
func LoadConfig(path string) (Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}

	if err := overlayDuration(&cfg.Session.Timeout, fc.Session.Timeout); err != nil {
		return cfg, fmt.Errorf("session.timeout: %w", err)
	}
	if err := overlayDuration(&cfg.Session.WarningWindow, fc.Session.WarningWindow); err != nil {
		return cfg, fmt.Errorf("session.warning_window: %w", err)
	}
	if err := overlayDuration(&cfg.Session.PollInterval, fc.Session.PollInterval); err != nil {
		return cfg, fmt.Errorf("session.poll_interval: %w", err)
	}
	if err := overlayDuration(&cfg.Session.ActivityThrottle, fc.Session.ActivityThrottle); err != nil {
		return cfg, fmt.Errorf("session.activity_throttle: %w", err)
	}
	if err := overlayDuration(&cfg.Token.Leeway, fc.Token.Leeway); err != nil {
		return cfg, fmt.Errorf("token.leeway: %w", err)
	}

	if fc.Storage.RedisPrefix != "" {
		cfg.Storage.RedisPrefix = fc.Storage.RedisPrefix
	}
	if fc.Routes.Unauthorized != "" {
		cfg.Routes.Unauthorized = fc.Routes.Unauthorized
	}
	if fc.Routes.Root != "" {
		cfg.Routes.Root = fc.Routes.Root
	}
	for role, path := range fc.Routes.Dashboards {
		cfg.Routes.Dashboards[ParseRole(role)] = path
	}
	if fc.Token.HMACKey != "" {
		cfg.Token.HMACKey = []byte(fc.Token.HMACKey)
	}
	if fc.Audit.Enabled != nil {
		cfg.Audit.Enabled = *fc.Audit.Enabled
	}
	if fc.Audit.BufferSize > 0 {
		cfg.Audit.BufferSize = fc.Audit.BufferSize
	}
	if fc.Audit.DropIfFull != nil {
		cfg.Audit.DropIfFull = *fc.Audit.DropIfFull
	}
	if fc.Metrics.Enabled != nil {
		cfg.Metrics.Enabled = *fc.Metrics.Enabled
	}
	cfg.Metrics.EnableLatencyHistograms = fc.Metrics.LatencyHistograms

	return cfg, nil
}

func overlayDuration(dst *time.Duration, raw string) error {
	if raw == "" {
		return nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return err
	}
	*dst = d
	return nil
}
