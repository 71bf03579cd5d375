package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/ekaya-inc/metaseed/pkg/apperrors"
	sqlcheck "github.com/ekaya-inc/metaseed/pkg/sql"
)

// DefaultConfigPath is read when METASEED_CONFIG is not set.
const DefaultConfigPath = "config.yaml"

// Datasource types.
const (
	DatasourceMSSQL    = "mssql"
	DatasourcePostgres = "postgres"
	DatasourceMySQL    = "mysql"
)

// LLM providers.
const (
	ProviderAzure     = "azure"
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

// Config holds all configuration for a metaseed run.
// Configuration can come from a YAML file or environment variables.
// Environment variables always override YAML values.
// Secrets (passwords, keys) must only come from environment variables.
type Config struct {
	Env      string `yaml:"env" env:"ENVIRONMENT" env-default:"local"`
	LogLevel string `yaml:"log_level" env:"LOG_LEVEL" env-default:"info"`
	Version  string `yaml:"-"` // Set at load time, not from config

	// Tables is the closed set of tables to catalog, optionally schema-qualified.
	// Join and relationship inference never reaches outside this list.
	Tables []string `yaml:"tables" env:"TARGET_TABLES" env-separator:","`

	// OutputDir receives the three artifacts. Existing files are overwritten.
	OutputDir string `yaml:"output_dir" env:"OUTPUT_DIR" env-default:"."`

	// ExampleLimit caps sampled non-null values per column. 0 disables sampling.
	ExampleLimit int `yaml:"example_limit" env:"EXAMPLE_LIMIT" env-default:"2"`

	ShowProgress bool `yaml:"progress" env:"SHOW_PROGRESS" env-default:"false"`

	Datasource DatasourceConfig `yaml:"datasource"`
	LLM        LLMConfig        `yaml:"llm"`
}

// DatasourceConfig describes the relational store being introspected.
type DatasourceConfig struct {
	Type     string `yaml:"type" env:"DB_TYPE" env-default:"mssql"`
	Host     string `yaml:"host" env:"DB_HOST"`
	Port     int    `yaml:"port" env:"DB_PORT"` // 0 means the dialect default
	Database string `yaml:"database" env:"DB_NAME"`
	// Schema restricts catalog lookups for unqualified table names.
	Schema   string `yaml:"schema" env:"DB_SCHEMA"`
	User     string `yaml:"user" env:"DB_USER"`
	Password string `yaml:"-" env:"DB_PASSWORD"` // Secret - not in YAML

	// SQL Server authentication: "sql" or "service_principal".
	AuthMethod   string `yaml:"auth_method" env:"DB_AUTH_METHOD" env-default:"sql"`
	TenantID     string `yaml:"tenant_id" env:"AZURE_TENANT_ID"`
	ClientID     string `yaml:"client_id" env:"AZURE_CLIENT_ID"`
	ClientSecret string `yaml:"-" env:"AZURE_CLIENT_SECRET"` // Secret - not in YAML

	Encrypt                bool `yaml:"encrypt" env:"DB_ENCRYPT" env-default:"true"`
	TrustServerCertificate bool `yaml:"trust_server_certificate" env:"DB_TRUST_SERVER_CERTIFICATE" env-default:"false"`
	ConnectionTimeout      int  `yaml:"connection_timeout" env:"DB_CONNECTION_TIMEOUT" env-default:"30"`

	// SSLMode applies to postgres only.
	SSLMode string `yaml:"ssl_mode" env:"DB_SSL_MODE" env-default:"require"`
}

// LLMConfig describes the text-generation endpoint used for column descriptions.
// Endpoint, key, version and model also accept the AZURE_OPENAI_* variable names.
type LLMConfig struct {
	Provider    string        `yaml:"provider" env:"LLM_PROVIDER" env-default:"azure"`
	Endpoint    string        `yaml:"endpoint" env:"LLM_ENDPOINT"`
	APIKey      string        `yaml:"-" env:"LLM_API_KEY"` // Secret - not in YAML
	APIVersion  string        `yaml:"api_version" env:"LLM_API_VERSION"`
	Model       string        `yaml:"model" env:"LLM_MODEL"`
	Temperature float64       `yaml:"temperature" env:"LLM_TEMPERATURE" env-default:"0.2"`
	MaxTokens   int           `yaml:"max_tokens" env:"LLM_MAX_TOKENS" env-default:"60"`
	Timeout     time.Duration `yaml:"timeout" env:"LLM_TIMEOUT" env-default:"60s"`
}

const (
	defaultAzureAPIVersion = "2023-12-01-preview"
	defaultModel           = "gpt-4o-mini"
)

// azureEnvAliases maps the Azure OpenAI variable names onto LLM fields.
// They are consulted only when the LLM_* equivalent is empty.
var azureEnvAliases = []struct {
	name  string
	field func(*LLMConfig) *string
}{
	{"AZURE_OPENAI_ENDPOINT", func(c *LLMConfig) *string { return &c.Endpoint }},
	{"AZURE_OPENAI_API_KEY", func(c *LLMConfig) *string { return &c.APIKey }},
	{"AZURE_OPENAI_API_VERSION", func(c *LLMConfig) *string { return &c.APIVersion }},
	{"AZURE_OPENAI_MODEL", func(c *LLMConfig) *string { return &c.Model }},
}

// Load reads configuration from the YAML file named by METASEED_CONFIG
// (default config.yaml, optional) with environment variable overrides.
// The version parameter is injected at build time and set on the returned Config.
func Load(version string) (*Config, error) {
	cfg := &Config{
		Version: version,
	}

	path := os.Getenv("METASEED_CONFIG")
	if path == "" {
		path = DefaultConfigPath
	}

	if _, statErr := os.Stat(path); statErr == nil {
		if err := cleanenv.ReadConfig(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
	} else if errors.Is(statErr, os.ErrNotExist) {
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return nil, fmt.Errorf("failed to read environment: %w", err)
		}
	} else {
		return nil, fmt.Errorf("failed to stat %s: %w", path, statErr)
	}

	cfg.applyAliases()
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cfg.Datasource.Host = ResolveHostForDocker(cfg.Datasource.Host)

	return cfg, nil
}

func (c *Config) applyAliases() {
	for _, alias := range azureEnvAliases {
		target := alias.field(&c.LLM)
		if *target != "" {
			continue
		}
		if v := os.Getenv(alias.name); v != "" {
			*target = v
		}
	}
}

// applyDefaults fills values whose default depends on other fields and
// normalizes the table list.
func (c *Config) applyDefaults() {
	tables := make([]string, 0, len(c.Tables))
	for _, t := range c.Tables {
		if t = strings.TrimSpace(t); t != "" {
			tables = append(tables, t)
		}
	}
	c.Tables = tables

	c.Datasource.Type = strings.ToLower(strings.TrimSpace(c.Datasource.Type))
	if c.Datasource.Port == 0 {
		c.Datasource.Port = DefaultPort(c.Datasource.Type)
	}

	c.LLM.Provider = strings.ToLower(strings.TrimSpace(c.LLM.Provider))
	if c.LLM.Model == "" {
		c.LLM.Model = defaultModel
	}
	if c.LLM.APIVersion == "" && c.LLM.Provider == ProviderAzure {
		c.LLM.APIVersion = defaultAzureAPIVersion
	}
}

// Validate checks the settings a run cannot proceed without. LLM credentials
// are not required here: a missing key only degrades descriptions
// to their fallback text.
func (c *Config) Validate() error {
	if len(c.Tables) == 0 {
		return fmt.Errorf("TARGET_TABLES: %w", apperrors.ErrNoTables)
	}

	seen := make(map[string]bool, len(c.Tables))
	for _, t := range c.Tables {
		if err := sqlcheck.CheckIdentifier(t); err != nil {
			return fmt.Errorf("invalid table %q: %w", t, err)
		}
		if seen[t] {
			return fmt.Errorf("table %q listed more than once", t)
		}
		seen[t] = true
	}

	if c.ExampleLimit < 0 {
		return fmt.Errorf("example_limit must not be negative, got %d", c.ExampleLimit)
	}

	if err := c.Datasource.Validate(); err != nil {
		return fmt.Errorf("invalid datasource configuration: %w", err)
	}

	switch c.LLM.Provider {
	case ProviderAzure, ProviderOpenAI, ProviderAnthropic:
	default:
		return fmt.Errorf("%w: %q (must be azure, openai, or anthropic)", apperrors.ErrUnknownProvider, c.LLM.Provider)
	}
	if c.LLM.MaxTokens <= 0 {
		return fmt.Errorf("llm max_tokens must be positive, got %d", c.LLM.MaxTokens)
	}
	if c.LLM.Timeout < 0 {
		return fmt.Errorf("llm timeout must not be negative, got %s", c.LLM.Timeout)
	}

	return nil
}

// Validate checks the datasource has what its dialect needs to connect.
func (d *DatasourceConfig) Validate() error {
	switch d.Type {
	case DatasourceMSSQL, DatasourcePostgres, DatasourceMySQL:
	default:
		return fmt.Errorf("%w: %q", apperrors.ErrUnknownDialect, d.Type)
	}
	if d.Host == "" {
		return fmt.Errorf("host is required")
	}
	if d.Database == "" {
		return fmt.Errorf("database is required")
	}
	if d.Port <= 0 || d.Port > 65535 {
		return fmt.Errorf("invalid port: %d", d.Port)
	}

	if d.Type == DatasourceMSSQL && d.AuthMethod == "service_principal" {
		if d.TenantID == "" || d.ClientID == "" || d.ClientSecret == "" {
			return fmt.Errorf("tenant_id, client_id and AZURE_CLIENT_SECRET are required for service principal authentication")
		}
		return nil
	}

	if d.User == "" {
		return fmt.Errorf("user is required")
	}
	return nil
}

// DefaultPort returns the well-known port for a datasource type.
func DefaultPort(dsType string) int {
	switch dsType {
	case DatasourcePostgres:
		return 5432
	case DatasourceMySQL:
		return 3306
	default:
		return 1433
	}
}
