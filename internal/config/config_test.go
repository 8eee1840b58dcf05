package config

import "testing"

// clearEnv blanks every variable Load reads so tests see pure defaults.
// envOrDefault treats empty the same as unset.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"APP_HOST", "APP_PORT", "APP_ENV",
		"POSTGRES_HOST", "POSTGRES_PORT", "POSTGRES_USER", "POSTGRES_PASSWORD", "POSTGRES_DB",
		"VALKEY_HOST", "VALKEY_PORT", "VALKEY_PASSWORD",
		"JWT_SECRET",
		"S3_ENDPOINT", "S3_REGION", "S3_ACCESS_KEY", "S3_SECRET_KEY", "S3_BUCKET", "S3_PUBLIC_URL",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	check := func(field, got, want string) {
		t.Helper()
		if got != want {
			t.Errorf("%s = %q, want %q", field, got, want)
		}
	}

	check("Host", cfg.Host, "0.0.0.0")
	check("Port", cfg.Port, "8080")
	check("Env", cfg.Env, "development")
	check("DBHost", cfg.DBHost, "localhost")
	check("DBPort", cfg.DBPort, "5432")
	check("DBUser", cfg.DBUser, "inkwell")
	check("DBPassword", cfg.DBPassword, "changeme")
	check("DBName", cfg.DBName, "inkwell")
	check("ValkeyHost", cfg.ValkeyHost, "localhost")
	check("ValkeyPort", cfg.ValkeyPort, "6379")
	check("JWTSecret", cfg.JWTSecret, "dev-secret")
	check("S3Region", cfg.S3Region, "us-east-1")
	check("S3Bucket", cfg.S3Bucket, "inkwell-media")

	if !cfg.IsDev() {
		t.Error("default env should be development")
	}
}

func TestLoad_ProductionGuards(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_ENV", "production")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for default POSTGRES_PASSWORD in production")
	}

	t.Setenv("POSTGRES_PASSWORD", "s3cure")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for default JWT_SECRET in production")
	}

	t.Setenv("JWT_SECRET", "prod-signing-key")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load with production secrets: %v", err)
	}
	if cfg.IsDev() {
		t.Error("production config reported as development")
	}
}

func TestDSNAndAddr(t *testing.T) {
	clearEnv(t)
	t.Setenv("POSTGRES_USER", "blog")
	t.Setenv("POSTGRES_PASSWORD", "pw")
	t.Setenv("POSTGRES_HOST", "db.internal")
	t.Setenv("POSTGRES_PORT", "5433")
	t.Setenv("POSTGRES_DB", "blogdb")
	t.Setenv("APP_HOST", "127.0.0.1")
	t.Setenv("APP_PORT", "9090")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	wantDSN := "postgres://blog:pw@db.internal:5433/blogdb?sslmode=disable"
	if got := cfg.DSN(); got != wantDSN {
		t.Errorf("DSN: got %q, want %q", got, wantDSN)
	}
	if got := cfg.Addr(); got != "127.0.0.1:9090" {
		t.Errorf("Addr: got %q, want %q", got, "127.0.0.1:9090")
	}
}
