package mysql

import (
	"fmt"
	"net"
	"strconv"
	"time"

	driver "github.com/go-sql-driver/mysql"

	"github.com/ekaya-inc/metaseed/pkg/config"
)

// Config contains MySQL-specific connection options.
type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string

	// Schema overrides Database as the scope for unqualified table names.
	Schema string

	ConnectionTimeout int // seconds
}

// DefaultPort returns the default MySQL port.
func DefaultPort() int {
	return 3306
}

// FromDatasourceConfig maps the run configuration onto MySQL options.
func FromDatasourceConfig(ds *config.DatasourceConfig) *Config {
	cfg := &Config{
		Host:              ds.Host,
		Port:              ds.Port,
		User:              ds.User,
		Password:          ds.Password,
		Database:          ds.Database,
		Schema:            ds.Schema,
		ConnectionTimeout: ds.ConnectionTimeout,
	}
	if cfg.Port == 0 {
		cfg.Port = DefaultPort()
	}
	return cfg
}

// DefaultSchema is the schema unqualified tables are looked up in. In MySQL
// a schema is a database, so without an override it is the connected one.
func (c *Config) DefaultSchema() string {
	if c.Schema != "" {
		return c.Schema
	}
	return c.Database
}

// dsn formats a go-sql-driver DSN. The driver's own formatter handles
// escaping of credentials and parameters.
func (c *Config) dsn() (string, error) {
	if c.Host == "" {
		return "", fmt.Errorf("host is required")
	}
	if c.Database == "" {
		return "", fmt.Errorf("database is required")
	}

	dc := driver.NewConfig()
	dc.User = c.User
	dc.Passwd = c.Password
	dc.Net = "tcp"
	dc.Addr = net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
	dc.DBName = c.Database
	dc.ParseTime = true
	if c.ConnectionTimeout > 0 {
		dc.Timeout = time.Duration(c.ConnectionTimeout) * time.Second
	}
	return dc.FormatDSN(), nil
}
