package config

import (
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the overall application configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	Engine     EngineConfig     `yaml:"engine"`
	Refresh    RefreshConfig    `yaml:"refresh"`
	Notifier   NotifierConfig   `yaml:"notifier"`
	Push       PushConfig       `yaml:"push"`
	WorkerPool WorkerPoolConfig `yaml:"worker_pool"`
}

// ServerConfig holds the server-related configuration.
type ServerConfig struct {
	Port            int     `yaml:"port"`
	RequestIPHeader string  `yaml:"request_ip_header"`
	RateLimitPerSec float64 `yaml:"rate_limit_per_sec"`
	CacheTTLSeconds int     `yaml:"cache_ttl_seconds"`
}

// DatabaseConfig holds the database connection configuration.
type DatabaseConfig struct {
	DSN                    string `yaml:"dsn"`
	MaxOpenConns           int    `yaml:"max_open_conns"`
	MaxIdleConns           int    `yaml:"max_idle_conns"`
	ConnMaxLifetimeMinutes int    `yaml:"conn_max_lifetime_minutes"`
}

// EngineConfig holds the availability engine tunables.
type EngineConfig struct {
	// Timezone is the campus local timezone; every computation and every
	// serialized time is expressed in it.
	Timezone string `yaml:"timezone"`
	// MinGapMinutes is the shortest free gap reported as available.
	MinGapMinutes int `yaml:"min_gap_minutes"`
	// OpeningSoonMinutes flags closed buildings opening within this horizon.
	OpeningSoonMinutes int `yaml:"opening_soon_minutes"`
	// SourceTimeoutSeconds bounds each occupancy source lookup.
	SourceTimeoutSeconds int           `yaml:"source_timeout_seconds"`
	SourceTimeout        time.Duration `yaml:"-"`
}

// RefreshConfig holds the daily cache refresh configuration.
type RefreshConfig struct {
	Enabled bool `yaml:"enabled"`
	// HourLocal is the local hour of day at which the daily refresh runs.
	HourLocal int `yaml:"hour_local"`
}

// NotifierConfig holds the availability-notification sweep configuration.
type NotifierConfig struct {
	Enabled         bool          `yaml:"enabled"`
	IntervalSeconds int           `yaml:"interval_seconds"`
	Interval        time.Duration `yaml:"-"`
}

// PushConfig holds the VAPID keys for web push notifications.
type PushConfig struct {
	PublicKey  string `yaml:"vapid_public_key"`
	PrivateKey string `yaml:"vapid_private_key"`
	Subject    string `yaml:"subject"`
	TTL        int    `yaml:"ttl"`
}

// WorkerPoolConfig sizes the refresh and notification worker pools.
type WorkerPoolConfig struct {
	Size int `yaml:"size"`
}

// Load reads the configuration from the given path.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg Config
	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, err
	}

	if cfg.Engine.Timezone == "" {
		cfg.Engine.Timezone = "America/New_York"
	}
	if cfg.Engine.MinGapMinutes <= 0 {
		cfg.Engine.MinGapMinutes = 30
	}
	if cfg.Engine.OpeningSoonMinutes <= 0 {
		cfg.Engine.OpeningSoonMinutes = 60
	}
	if cfg.Engine.SourceTimeoutSeconds <= 0 {
		cfg.Engine.SourceTimeoutSeconds = 5
	}
	cfg.Engine.SourceTimeout = time.Duration(cfg.Engine.SourceTimeoutSeconds) * time.Second

	if cfg.Refresh.HourLocal < 0 || cfg.Refresh.HourLocal > 23 {
		log.Printf("refresh.hour_local %d is out of range; defaulting to 4", cfg.Refresh.HourLocal)
		cfg.Refresh.HourLocal = 4
	}

	if cfg.Notifier.IntervalSeconds <= 0 {
		cfg.Notifier.IntervalSeconds = 60
	}
	cfg.Notifier.Interval = time.Duration(cfg.Notifier.IntervalSeconds) * time.Second

	if cfg.Push.TTL <= 0 {
		cfg.Push.TTL = 3600
	}

	if cfg.WorkerPool.Size <= 0 {
		log.Printf("worker_pool.size is not set or invalid; defaulting to 4")
		cfg.WorkerPool.Size = 4
	}

	return &cfg, nil
}
