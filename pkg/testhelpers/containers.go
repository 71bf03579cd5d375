package testhelpers

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// PostgresImage is the stock image the catalog fixture is loaded into.
const PostgresImage = "postgres:16-alpine"

// Fixture credentials. The container is throwaway and bound to a random port.
const (
	TestDatabase = "catalog_test"
	TestUser     = "metaseed"
	TestPassword = "test_password"
)

// FixtureSchema is a small sales schema: orders reference customers,
// order_items reference orders, and shipments reference an order in
// another schema so cross-schema lookups can be tested.
const FixtureSchema = `
CREATE TABLE customers (
	customer_id INTEGER PRIMARY KEY,
	name        TEXT NOT NULL,
	region      TEXT
);

CREATE TABLE orders (
	order_id    INTEGER PRIMARY KEY,
	customer_id INTEGER NOT NULL REFERENCES customers (customer_id),
	amount      NUMERIC(10, 2),
	placed_at   DATE
);

CREATE TABLE order_items (
	order_id   INTEGER NOT NULL REFERENCES orders (order_id),
	line_no    INTEGER NOT NULL,
	sku        VARCHAR(32),
	PRIMARY KEY (order_id, line_no)
);

CREATE SCHEMA logistics;
CREATE TABLE logistics.shipments (
	shipment_id INTEGER PRIMARY KEY,
	order_id    INTEGER REFERENCES public.orders (order_id),
	carrier     TEXT
);

INSERT INTO customers VALUES (1, 'Acme', 'north'), (2, 'Globex', NULL), (3, 'Initech', 'south');
INSERT INTO orders VALUES (10, 1, 99.50, '2024-01-02'), (11, 2, NULL, '2024-01-03'), (12, 1, 12.00, NULL);
INSERT INTO order_items VALUES (10, 1, 'SKU-1'), (10, 2, NULL), (11, 1, 'SKU-2');
INSERT INTO logistics.shipments VALUES (100, 10, 'UPS');
`

// TestDB holds a shared test database container and connection pool.
type TestDB struct {
	Container testcontainers.Container
	Pool      *pgxpool.Pool
	ConnStr   string
	Host      string
	Port      int
}

var (
	sharedTestDB     *TestDB
	sharedTestDBOnce sync.Once
	sharedTestDBErr  error
)

// GetTestDB returns a shared PostgreSQL container loaded with FixtureSchema.
// The container is created once and reused across all tests in the run.
func GetTestDB(t *testing.T) *TestDB {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping integration test in short mode (requires Docker)")
	}

	sharedTestDBOnce.Do(func() {
		sharedTestDB, sharedTestDBErr = setupTestDB()
	})

	if sharedTestDBErr != nil {
		t.Fatalf("Failed to setup test database: %v", sharedTestDBErr)
	}

	return sharedTestDB
}

func setupTestDB() (*TestDB, error) {
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        PostgresImage,
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_DB":       TestDatabase,
			"POSTGRES_USER":     TestUser,
			"POSTGRES_PASSWORD": TestPassword,
		},
		// The entrypoint restarts postgres once after init, so the ready
		// line appears twice.
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start test container: %w", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get container host: %w", err)
	}

	mapped, err := container.MappedPort(ctx, "5432")
	if err != nil {
		return nil, fmt.Errorf("failed to get container port: %w", err)
	}
	port, err := strconv.Atoi(mapped.Port())
	if err != nil {
		return nil, fmt.Errorf("invalid mapped port %q: %w", mapped.Port(), err)
	}

	connStr := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		TestUser, TestPassword, host, port, TestDatabase)

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	// Verify connection with retry
	for i := 0; i < 10; i++ {
		if err = pool.Ping(ctx); err == nil {
			break
		}
		time.Sleep(500 * time.Millisecond)
	}
	if err != nil {
		return nil, fmt.Errorf("database never became reachable: %w", err)
	}

	if _, err := pool.Exec(ctx, FixtureSchema); err != nil {
		return nil, fmt.Errorf("failed to load fixture schema: %w", err)
	}

	return &TestDB{
		Container: container,
		Pool:      pool,
		ConnStr:   connStr,
		Host:      host,
		Port:      port,
	}, nil
}
