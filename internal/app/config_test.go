package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	cfg, err := LoadConfig(t.TempDir())
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Addr() != ":8080" || cfg.DBDriver != "postgres" || !cfg.MetricsEnabled || cfg.OtelEnabled {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.CourseCacheTTL() != 10*time.Minute {
		t.Fatalf("unexpected cache ttl: %v", cfg.CourseCacheTTL())
	}
	if got := cfg.Postgres(); got.MaxOpenConns != 25 || got.Name != "coursebridge" {
		t.Fatalf("unexpected postgres config: %+v", got)
	}
}

func TestLoadConfigEnvOverridesFile(t *testing.T) {
	t.Chdir(t.TempDir())
	dir := t.TempDir()
	body := "PORT=9090\nDB_DRIVER=sqlite\nREDIS_ADDR=cache:6379\n"
	if err := os.WriteFile(filepath.Join(dir, "app.env"), []byte(body), 0o600); err != nil {
		t.Fatalf("write app.env: %v", err)
	}
	t.Setenv("PORT", "7070")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example.com, ,https://b.example.com")

	cfg, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Addr() != ":7070" {
		t.Fatalf("env should win over app.env, got %q", cfg.Port)
	}
	if cfg.DBDriver != "sqlite" || cfg.RedisAddr != "cache:6379" {
		t.Fatalf("app.env not applied: %+v", cfg)
	}
	origins := cfg.CORSOrigins()
	if len(origins) != 2 || origins[1] != "https://b.example.com" {
		t.Fatalf("unexpected origins: %v", origins)
	}
}

func TestLoadConfigRejectsUnknownDriver(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("DB_DRIVER", "mysql")
	if _, err := LoadConfig(""); err == nil {
		t.Fatalf("expected unsupported driver error")
	}
}
