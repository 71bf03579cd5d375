package postgres

import (
	"fmt"
	"net/url"

	"github.com/ekaya-inc/metaseed/pkg/config"
)

// Config contains PostgreSQL-specific connection options.
type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	Schema   string
	SSLMode  string // "disable", "require", "verify-ca", "verify-full"

	ConnectionTimeout int // seconds
}

// DefaultPort returns the default PostgreSQL port.
func DefaultPort() int {
	return 5432
}

// DefaultSSLMode returns the default SSL mode.
func DefaultSSLMode() string {
	return "require"
}

// FromDatasourceConfig maps the run configuration onto PostgreSQL options.
func FromDatasourceConfig(ds *config.DatasourceConfig) *Config {
	cfg := &Config{
		Host:              ds.Host,
		Port:              ds.Port,
		User:              ds.User,
		Password:          ds.Password,
		Database:          ds.Database,
		Schema:            ds.Schema,
		SSLMode:           ds.SSLMode,
		ConnectionTimeout: ds.ConnectionTimeout,
	}
	if cfg.Port == 0 {
		cfg.Port = DefaultPort()
	}
	if cfg.SSLMode == "" {
		cfg.SSLMode = DefaultSSLMode()
	}
	return cfg
}

// buildConnectionString builds a PostgreSQL URL with proper escaping.
// IMPORTANT: All user-provided fields must be URL-escaped to handle special characters
// in passwords (e.g., @, /, #, ?) that would otherwise break URL parsing.
func buildConnectionString(cfg *Config) string {
	sslMode := cfg.SSLMode
	if sslMode == "" {
		sslMode = DefaultSSLMode()
	}

	connStr := fmt.Sprintf(
		"postgresql://%s:%s@%s:%d/%s?sslmode=%s",
		url.QueryEscape(cfg.User),
		url.QueryEscape(cfg.Password),
		cfg.Host,
		cfg.Port,
		url.QueryEscape(cfg.Database),
		url.QueryEscape(sslMode),
	)
	if cfg.ConnectionTimeout > 0 {
		connStr += fmt.Sprintf("&connect_timeout=%d", cfg.ConnectionTimeout)
	}
	return connStr
}
