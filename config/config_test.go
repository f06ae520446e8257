package config

import (
	"reflect"
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("JWT_SECRET", "secret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Port != "8080" || cfg.DBPort != 5432 || cfg.DBName != "roster" || !cfg.IsDevelopment() {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if want := []string{"http://localhost:3000"}; !reflect.DeepEqual(cfg.CORSOrigins, want) {
		t.Fatalf("cors origins = %v, want %v", cfg.CORSOrigins, want)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("APP_ENV", "production")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("CORS_ORIGINS", "https://a.example,https://b.example")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.IsDevelopment() {
		t.Fatal("expected production config")
	}
	if len(cfg.CORSOrigins) != 2 {
		t.Fatalf("cors origins = %v", cfg.CORSOrigins)
	}
	dsn := cfg.DSN()
	for _, part := range []string{"host=db.internal", "port=6543", "dbname=roster", "TimeZone=UTC"} {
		if !strings.Contains(dsn, part) {
			t.Fatalf("dsn %q missing %q", dsn, part)
		}
	}
}

func TestLoadRequiresSecret(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("JWT_SECRET", "")

	if _, err := Load(); err == nil || !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("Load() error = %v, want parse env failure", err)
	}
}

func TestLoadInvalidPort(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("DB_PORT", "not-a-port")

	if _, err := Load(); err == nil {
		t.Fatal("expected error")
	}
}
