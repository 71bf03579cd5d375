package mssql

import (
	"fmt"
	"net/url"

	"github.com/ekaya-inc/metaseed/pkg/config"
)

// Authentication methods.
const (
	AuthSQL              = "sql"
	AuthServicePrincipal = "service_principal"
)

// Config contains SQL Server-specific connection options.
type Config struct {
	Host     string
	Port     int
	Database string
	Schema   string

	// AuthMethod determines which authentication to use
	// Options: "sql", "service_principal"
	AuthMethod string

	// SQL Authentication fields
	Username string
	Password string

	// Service Principal (Azure AD) fields
	TenantID     string
	ClientID     string
	ClientSecret string

	// Connection options
	Encrypt                bool
	TrustServerCertificate bool
	ConnectionTimeout      int
}

// DefaultPort returns the default SQL Server port.
func DefaultPort() int {
	return 1433
}

// DefaultConnectionTimeout returns the default connection timeout in seconds.
func DefaultConnectionTimeout() int {
	return 30
}

// FromDatasourceConfig maps the run configuration onto SQL Server options.
func FromDatasourceConfig(ds *config.DatasourceConfig) *Config {
	cfg := &Config{
		Host:                   ds.Host,
		Port:                   ds.Port,
		Database:               ds.Database,
		Schema:                 ds.Schema,
		AuthMethod:             ds.AuthMethod,
		Username:               ds.User,
		Password:               ds.Password,
		TenantID:               ds.TenantID,
		ClientID:               ds.ClientID,
		ClientSecret:           ds.ClientSecret,
		Encrypt:                ds.Encrypt,
		TrustServerCertificate: ds.TrustServerCertificate,
		ConnectionTimeout:      ds.ConnectionTimeout,
	}
	if cfg.Port == 0 {
		cfg.Port = DefaultPort()
	}
	if cfg.AuthMethod == "" {
		cfg.AuthMethod = AuthSQL
	}
	if cfg.ConnectionTimeout == 0 {
		cfg.ConnectionTimeout = DefaultConnectionTimeout()
	}
	return cfg
}

// Validate checks if the config has all required fields for the selected auth method.
func (c *Config) Validate() error {
	if c.Host == "" {
		return fmt.Errorf("host is required")
	}
	if c.Database == "" {
		return fmt.Errorf("database is required")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}

	switch c.AuthMethod {
	case AuthSQL:
		if c.Username == "" {
			return fmt.Errorf("username is required for SQL authentication")
		}
	case AuthServicePrincipal:
		if c.TenantID == "" {
			return fmt.Errorf("tenant_id is required for service principal")
		}
		if c.ClientID == "" {
			return fmt.Errorf("client_id is required for service principal")
		}
		if c.ClientSecret == "" {
			return fmt.Errorf("client_secret is required for service principal")
		}
	default:
		return fmt.Errorf("invalid auth method: %s (must be sql or service_principal)", c.AuthMethod)
	}

	return nil
}

// connectionString returns the driver name and DSN for the auth method.
// SQL logins use the "sqlserver" driver; service principals need the
// "azuresql" driver registered by the azuread package.
func (c *Config) connectionString() (driver, dsn string, err error) {
	query := url.Values{}
	query.Add("database", c.Database)

	if c.Encrypt {
		query.Add("encrypt", "true")
	} else {
		query.Add("encrypt", "false")
	}
	if c.TrustServerCertificate {
		query.Add("TrustServerCertificate", "true")
	}
	if c.ConnectionTimeout > 0 {
		query.Add("connection timeout", fmt.Sprintf("%d", c.ConnectionTimeout))
	}

	switch c.AuthMethod {
	case AuthSQL:
		dsn = fmt.Sprintf("sqlserver://%s:%s@%s:%d?%s",
			url.QueryEscape(c.Username),
			url.QueryEscape(c.Password),
			c.Host,
			c.Port,
			query.Encode(),
		)
		return "sqlserver", dsn, nil

	case AuthServicePrincipal:
		query.Add("fedauth", "ActiveDirectoryServicePrincipal")
		query.Add("user id", c.ClientID+"@"+c.TenantID)
		query.Add("password", c.ClientSecret)
		dsn = fmt.Sprintf("sqlserver://%s:%d?%s", c.Host, c.Port, query.Encode())
		return "azuresql", dsn, nil

	default:
		return "", "", fmt.Errorf("unsupported auth method: %s", c.AuthMethod)
	}
}
