package config

import (
	"time"

	"github.com/gymbeam/geoaudit/internal/audit"
)

// Default configuration values.
const (
	defaultServiceName     = "geoaudit"
	defaultServiceVersion  = "1.0.0"
	defaultServicePort     = 8090
	defaultConcurrency     = 8
	defaultWPBaseURL       = "https://gymbeam.sk"
	defaultWPPerPage       = 50
	defaultWPTimeoutSec    = 30
	defaultWPRatePerSec    = 2
	defaultStoragePath     = "geoaudit.db"
	defaultLogLevel        = "info"
	defaultLogFormat       = "json"
	defaultShutdownTimeout = 10 * time.Second
)

// Config holds all configuration for the audit service.
type Config struct {
	Service   ServiceConfig   `yaml:"service"`
	WordPress WordPressConfig `yaml:"wordpress"`
	Audit     audit.Config    `yaml:"audit"`
	Storage   StorageConfig   `yaml:"storage"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// ServiceConfig holds service-level configuration.
type ServiceConfig struct {
	Name            string        `yaml:"name"`
	Version         string        `yaml:"version"`
	Port            int           `env:"GEOAUDIT_PORT"        yaml:"port"`
	Debug           bool          `env:"APP_DEBUG"            yaml:"debug"`
	Concurrency     int           `env:"GEOAUDIT_CONCURRENCY" yaml:"concurrency"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// WordPressConfig holds content source configuration.
type WordPressConfig struct {
	BaseURL        string        `env:"WP_BASE_URL" yaml:"base_url"`
	PerPage        int           `env:"WP_PER_PAGE" yaml:"per_page"`
	Timeout        time.Duration `yaml:"timeout"`
	RequestsPerSec int           `yaml:"requests_per_sec"`
}

// StorageConfig holds report storage configuration.
type StorageConfig struct {
	Path string `env:"GEOAUDIT_DB_PATH" yaml:"path"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `env:"LOG_LEVEL"  yaml:"level"`
	Format string `env:"LOG_FORMAT" yaml:"format"`
}

// SetDefaults applies default values to unset fields.
func (c *Config) SetDefaults() {
	setServiceDefaults(&c.Service)
	setWordPressDefaults(&c.WordPress)
	c.Audit.SetDefaults()
	setStorageDefaults(&c.Storage)
	setLoggingDefaults(&c.Logging)
}

func setServiceDefaults(s *ServiceConfig) {
	if s.Name == "" {
		s.Name = defaultServiceName
	}
	if s.Version == "" {
		s.Version = defaultServiceVersion
	}
	if s.Port == 0 {
		s.Port = defaultServicePort
	}
	if s.Concurrency == 0 {
		s.Concurrency = defaultConcurrency
	}
	if s.ShutdownTimeout == 0 {
		s.ShutdownTimeout = defaultShutdownTimeout
	}
}

func setWordPressDefaults(w *WordPressConfig) {
	if w.BaseURL == "" {
		w.BaseURL = defaultWPBaseURL
	}
	if w.PerPage == 0 {
		w.PerPage = defaultWPPerPage
	}
	if w.Timeout == 0 {
		w.Timeout = defaultWPTimeoutSec * time.Second
	}
	if w.RequestsPerSec == 0 {
		w.RequestsPerSec = defaultWPRatePerSec
	}
}

func setStorageDefaults(s *StorageConfig) {
	if s.Path == "" {
		s.Path = defaultStoragePath
	}
}

func setLoggingDefaults(l *LoggingConfig) {
	if l.Level == "" {
		l.Level = defaultLogLevel
	}
	if l.Format == "" {
		l.Format = defaultLogFormat
	}
}
