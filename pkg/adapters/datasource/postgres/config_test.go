package postgres

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ekaya-inc/metaseed/pkg/config"
)

func TestFromDatasourceConfig_Defaults(t *testing.T) {
	cfg := FromDatasourceConfig(&config.DatasourceConfig{
		Host:     "db",
		Database: "sales",
		User:     "reader",
		Schema:   "public",
	})

	assert.Equal(t, 5432, cfg.Port)
	assert.Equal(t, "require", cfg.SSLMode)
	assert.Equal(t, "public", cfg.Schema)
}

func TestBuildConnectionString_EscapesSpecialCharacters(t *testing.T) {
	cfg := &Config{
		Host:              "db.example.com",
		Port:              5433,
		User:              "user@corp",
		Password:          "p@ss/w#rd?&",
		Database:          "sales db",
		SSLMode:           "disable",
		ConnectionTimeout: 10,
	}

	connStr := buildConnectionString(cfg)

	u, err := url.Parse(connStr)
	require.NoError(t, err)
	assert.Equal(t, "postgresql", u.Scheme)
	assert.Equal(t, "db.example.com:5433", u.Host)
	assert.Equal(t, "user@corp", u.User.Username())
	password, _ := u.User.Password()
	assert.Equal(t, "p@ss/w#rd?&", password)
	assert.Equal(t, "disable", u.Query().Get("sslmode"))
	assert.Equal(t, "10", u.Query().Get("connect_timeout"))
}

func TestBuildConnectionString_DefaultSSLMode(t *testing.T) {
	connStr := buildConnectionString(&Config{Host: "h", Port: 5432, User: "u", Database: "d"})
	assert.Contains(t, connStr, "sslmode=require")
	assert.NotContains(t, connStr, "connect_timeout")
}

func TestDialect_QuotesIdentifiers(t *testing.T) {
	assert.Equal(t, `"Orders"`, Dialect.QuoteIdent("Orders"))
	assert.Equal(t, `"odd""name"`, Dialect.QuoteIdent(`odd"name`))
	assert.Equal(t, `"amount"::text`, Dialect.ExampleExpr(`"amount"`, "numeric"))
	assert.Equal(t, `"payload"::text`, Dialect.ExampleExpr(`"payload"`, "bytea"))
}
