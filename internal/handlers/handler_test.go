// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure for handler
// integration tests. Tests are skipped when PostgreSQL is unavailable.
package handlers

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"inkwell/internal/auth"
	"inkwell/internal/database"
	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/store"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test PostgreSQL and runs migrations.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "inkwell")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "inkwell")
	dsn := "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Skipf("skipping: cannot open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping: DB not reachable: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("migrate: %v", err)
	}
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// testEnv holds all dependencies for handler integration tests.
type testEnv struct {
	DB         *sql.DB
	Tokens     *auth.Tokens
	Users      *store.UserStore
	Categories *store.CategoryStore
	Posts      *store.PostStore
	Auth       *Auth
	CategoryH  *Categories
	PostH      *Posts
}

// newTestEnv creates a complete test environment with all handler
// dependencies. The listing cache is left nil so tests exercise the
// database path.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testDB(t)
	tokens := auth.NewTokens("test-secret")

	users := store.NewUserStore(db)
	categories := store.NewCategoryStore(db)
	posts := store.NewPostStore(db)

	return &testEnv{
		DB:         db,
		Tokens:     tokens,
		Users:      users,
		Categories: categories,
		Posts:      posts,
		Auth:       NewAuth(users, tokens),
		CategoryH:  NewCategories(categories),
		PostH:      NewPosts(posts, nil, nil),
	}
}

// createUser inserts a throwaway user with cleanup.
func (env *testEnv) createUser(t *testing.T, role models.Role) *models.User {
	t.Helper()
	suffix := uuid.NewString()[:8]
	u, err := env.Users.Create("api-"+suffix, "api-"+suffix+"@example.com", "password", role)
	if err != nil {
		t.Fatalf("create test user: %v", err)
	}
	t.Cleanup(func() {
		env.DB.Exec("DELETE FROM comments WHERE user_id = $1", u.ID)
		env.DB.Exec("DELETE FROM users WHERE id = $1", u.ID)
	})
	return u
}

// createCategory inserts a throwaway category with cleanup.
func (env *testEnv) createCategory(t *testing.T) *models.Category {
	t.Helper()
	c, err := env.Categories.Create("API Category "+uuid.NewString()[:8], "handler test category")
	if err != nil {
		t.Fatalf("create test category: %v", err)
	}
	t.Cleanup(func() {
		env.DB.Exec("DELETE FROM categories WHERE id = $1", c.ID)
	})
	return c
}

// createPost inserts a throwaway post with cleanup.
func (env *testEnv) createPost(t *testing.T, author *models.User, category *models.Category, title string) *models.Post {
	t.Helper()
	p, err := env.Posts.Create(author.ID, store.NewPost{
		Title:      title,
		Content:    "handler test body",
		CategoryID: category.ID,
	})
	if err != nil {
		t.Fatalf("create test post: %v", err)
	}
	t.Cleanup(func() {
		env.DB.Exec("DELETE FROM comments WHERE post_id = $1", p.ID)
		env.DB.Exec("DELETE FROM posts WHERE id = $1", p.ID)
	})
	return p
}

// ctxWithPrincipal attaches an authenticated principal to a context using
// the middleware key.
func ctxWithPrincipal(ctx context.Context, u *models.User) context.Context {
	return context.WithValue(ctx, middleware.PrincipalKey, &auth.Principal{ID: u.ID, Role: u.Role})
}

// withChiURLParam adds a chi URL parameter to a request.
func withChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// decodeEnvelope parses a recorded response body into a generic envelope.
func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return out
}
