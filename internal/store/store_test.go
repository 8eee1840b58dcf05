// store_test.go provides a shared test database helper for all store
// integration tests. Tests are skipped if PostgreSQL is not available.
package store

import (
	"database/sql"
	"os"
	"testing"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"inkwell/internal/database"
	"inkwell/internal/models"
)

// testDSN returns the PostgreSQL connection string for testing.
// Uses environment variables with defaults matching docker-compose.yml.
func testDSN() string {
	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "inkwell")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "inkwell")
	return "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test database and runs migrations.
// If the database is unavailable, the test is skipped. A cleanup
// function is registered to close the connection when the test finishes.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := testDSN()
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Skipf("skipping integration test: cannot open DB: %v", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping integration test: DB not reachable: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// testUser creates a throwaway user and registers cleanup for it.
func testUser(t *testing.T, db *sql.DB, role models.Role) *models.User {
	t.Helper()
	suffix := uuid.NewString()[:8]
	u, err := NewUserStore(db).Create("tester-"+suffix, "tester-"+suffix+"@example.com", "password", role)
	if err != nil {
		t.Fatalf("create test user: %v", err)
	}
	t.Cleanup(func() {
		db.Exec("DELETE FROM comments WHERE user_id = $1", u.ID)
		db.Exec("DELETE FROM users WHERE id = $1", u.ID)
	})
	return u
}

// testCategory creates a throwaway category and registers cleanup for it.
func testCategory(t *testing.T, db *sql.DB) *models.Category {
	t.Helper()
	name := "Test Category " + uuid.NewString()[:8]
	c, err := NewCategoryStore(db).Create(name, "integration test category")
	if err != nil {
		t.Fatalf("create test category: %v", err)
	}
	t.Cleanup(func() {
		db.Exec("DELETE FROM categories WHERE id = $1", c.ID)
	})
	return c
}

// testPost creates a published post owned by the given author.
func testPost(t *testing.T, db *sql.DB, author *models.User, category *models.Category, title string) *models.Post {
	t.Helper()
	p, err := NewPostStore(db).Create(author.ID, NewPost{
		Title:      title,
		Content:    "integration test body",
		CategoryID: category.ID,
	})
	if err != nil {
		t.Fatalf("create test post %q: %v", title, err)
	}
	t.Cleanup(func() {
		db.Exec("DELETE FROM comments WHERE post_id = $1", p.ID)
		db.Exec("DELETE FROM posts WHERE id = $1", p.ID)
	})
	return p
}
