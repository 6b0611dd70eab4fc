// Package testutil starts throwaway databases for integration tests.
package testutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SkipIfNoIntegration skips container-backed tests under -short or SKIP_INTEGRATION=true.
func SkipIfNoIntegration(t *testing.T) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	if os.Getenv("SKIP_INTEGRATION") == "true" {
		t.Skip("SKIP_INTEGRATION=true, skipping integration test")
	}
}

// SetupTestDB создает тестовую БД с помощью testcontainers и применяет схему.
func SetupTestDB(t *testing.T) (*pgxpool.Pool, func()) {
	t.Helper()

	// Находим путь к миграциям
	_, filename, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(filename)))
	initScript := filepath.Join(projectRoot, "migrations", "001_create_users_and_tasks.up.sql")

	connStr, terminate := startPostgres(t, postgres.WithInitScripts(initScript))
	ctx := context.Background()

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		terminate()
		t.Fatalf("Failed to connect to database: %v", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		terminate()
		t.Fatalf("Failed to ping database: %v", err)
	}

	cleanup := func() {
		pool.Close()
		terminate()
	}

	return pool, cleanup
}

// StartPostgres поднимает пустой Postgres без схемы и возвращает DSN.
// Нужен там, где схему накатывают сами миграции.
func StartPostgres(t *testing.T) (string, func()) {
	t.Helper()
	return startPostgres(t)
}

func startPostgres(t *testing.T, opts ...testcontainers.ContainerCustomizer) (string, func()) {
	t.Helper()
	SkipIfNoIntegration(t)
	ctx := context.Background()

	opts = append([]testcontainers.ContainerCustomizer{
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	}, opts...)

	pgContainer, err := postgres.Run(ctx, "postgres:15-alpine", opts...)
	if err != nil {
		t.Fatalf("Failed to start postgres container: %v", err)
	}

	terminate := func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Errorf("Failed to terminate container: %v", err)
		}
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		terminate()
		t.Fatalf("Failed to get connection string: %v", err)
	}

	return connStr, terminate
}

// TruncateTables очищает все таблицы
func TruncateTables(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	_, err := pool.Exec(context.Background(), "TRUNCATE tasks, users CASCADE")
	if err != nil {
		t.Fatalf("Failed to truncate tables: %v", err)
	}
}

// SeedTasks создает тестовые задачи для тенанта
func SeedTasks(t *testing.T, pool *pgxpool.Pool, tenantID string, count int) []string {
	t.Helper()
	ctx := context.Background()

	priorities := []string{"low", "medium", "high"}
	ids := make([]string, 0, count)
	for i := 0; i < count; i++ {
		var id string
		err := pool.QueryRow(ctx, `
			INSERT INTO tasks (title, description, due_date, priority, tenant_id)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id::text
		`, fmt.Sprintf("Task %d", i+1), "seeded task", time.Now().AddDate(0, 0, i), priorities[i%3], tenantID).Scan(&id)
		if err != nil {
			t.Fatalf("Failed to seed task: %v", err)
		}
		ids = append(ids, id)
	}

	return ids
}

// SetupTestMongo starts a MongoDB container and returns a database handle.
func SetupTestMongo(t *testing.T) (*mongo.Database, func()) {
	t.Helper()
	uri, terminate := StartMongo(t)
	ctx := context.Background()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		terminate()
		t.Fatalf("Failed to connect to mongodb: %v", err)
	}

	cleanup := func() {
		_ = client.Disconnect(ctx)
		terminate()
	}

	return client.Database("testdb"), cleanup
}

// StartMongo starts a MongoDB container and returns its connection URI.
func StartMongo(t *testing.T) (string, func()) {
	t.Helper()
	SkipIfNoIntegration(t)
	ctx := context.Background()

	container, err := mongodb.Run(ctx, "mongo:7")
	if err != nil {
		t.Fatalf("Failed to start mongodb container: %v", err)
	}

	terminate := func() {
		if err := container.Terminate(ctx); err != nil {
			t.Errorf("Failed to terminate container: %v", err)
		}
	}

	uri, err := container.ConnectionString(ctx)
	if err != nil {
		terminate()
		t.Fatalf("Failed to get connection string: %v", err)
	}

	return uri, terminate
}
