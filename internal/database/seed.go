package database

import (
	"database/sql"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"inkwell/internal/slug"
)

// sampleCategories are the starter categories inserted on first boot so a
// fresh instance has something to file posts under.
var sampleCategories = []struct {
	Name        string
	Description string
}{
	{"Technology", "Posts about technology and programming"},
	{"Web Development", "Frontend and backend development"},
	{"JavaScript", "Everything about JavaScript"},
	{"React", "React.js and related technologies"},
	{"Node.js", "Server-side JavaScript"},
	{"Databases", "Database and data management"},
	{"Tutorials", "Step-by-step guides"},
	{"Career", "Career advice and programming jobs"},
}

// Seed populates the database with initial development data: a default
// admin user and the sample categories. It is a no-op when data already
// exists, so it is safe to run on every startup.
func Seed(db *sql.DB) error {
	if err := seedAdmin(db); err != nil {
		return err
	}
	return seedCategories(db)
}

func seedAdmin(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return fmt.Errorf("seed check users: %w", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed bcrypt: %w", err)
	}

	_, err = db.Exec(`
		INSERT INTO users (username, email, password_hash, role)
		VALUES ($1, $2, $3, $4)
	`, "admin", "admin@inkwell.local", string(hash), "admin")
	if err != nil {
		return fmt.Errorf("seed insert admin: %w", err)
	}

	slog.Info("database seeded with default admin user",
		"username", "admin",
		"password", "admin",
	)
	return nil
}

func seedCategories(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM categories").Scan(&count); err != nil {
		return fmt.Errorf("seed check categories: %w", err)
	}
	if count > 0 {
		slog.Info("categories already present, skipping seed", "count", count)
		return nil
	}

	for _, c := range sampleCategories {
		_, err := db.Exec(`
			INSERT INTO categories (name, slug, description)
			VALUES ($1, $2, $3)
		`, c.Name, slug.Make(c.Name), c.Description)
		if err != nil {
			return fmt.Errorf("seed insert category %q: %w", c.Name, err)
		}
	}

	slog.Info("sample categories created", "count", len(sampleCategories))
	return nil
}
