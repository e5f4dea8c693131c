package core

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, name := range []string{"PORT", "LOG_DIR", "DATABASE_URL", "POSTGRES_URL", "REDIS_URL", "TOKEN_SECRET", "TOKEN_TTL_SECONDS", "CACHE_TTL_SECONDS", "ALLOWED_ORIGINS"} {
		t.Setenv(name, "")
	}

	cfg := Load()
	if cfg.Port != "8080" {
		t.Fatalf("unexpected default port: %s", cfg.Port)
	}
	if cfg.TokenTTL != time.Hour {
		t.Fatalf("unexpected default token ttl: %v", cfg.TokenTTL)
	}
	if cfg.CacheTTL != 600*time.Second {
		t.Fatalf("unexpected default cache ttl: %v", cfg.CacheTTL)
	}
	if cfg.TokenSecret != "" {
		t.Fatal("token secret must have no default")
	}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected Validate to fail without a token secret")
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("TOKEN_SECRET", "s3cret")
	t.Setenv("TOKEN_TTL_SECONDS", "120")
	t.Setenv("CACHE_TTL_SECONDS", "30")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg := Load()
	if cfg.Port != "9090" {
		t.Fatalf("unexpected port: %s", cfg.Port)
	}
	if cfg.TokenTTL != 2*time.Minute {
		t.Fatalf("unexpected token ttl: %v", cfg.TokenTTL)
	}
	if cfg.CacheTTL != 30*time.Second {
		t.Fatalf("unexpected cache ttl: %v", cfg.CacheTTL)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "https://b.example" {
		t.Fatalf("unexpected origins: %v", cfg.AllowedOrigins)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate error: %v", err)
	}
}

func TestApplyFileOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
port: "3001"
token_secret: from-file
cache_ttl_seconds: 45
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg := Config{Port: "8080", LogDir: "/tmp/logs", TokenTTL: time.Hour, CacheTTL: 600 * time.Second}
	if err := ApplyFile(&cfg, path); err != nil {
		t.Fatalf("ApplyFile error: %v", err)
	}

	if cfg.Port != "3001" {
		t.Fatalf("port not overridden: %s", cfg.Port)
	}
	if cfg.TokenSecret != "from-file" {
		t.Fatalf("token secret not overridden: %s", cfg.TokenSecret)
	}
	if cfg.CacheTTL != 45*time.Second {
		t.Fatalf("cache ttl not overridden: %v", cfg.CacheTTL)
	}
	// Fields absent from the file keep their prior values.
	if cfg.LogDir != "/tmp/logs" || cfg.TokenTTL != time.Hour {
		t.Fatalf("unset fields were clobbered: %+v", cfg)
	}
}

func TestApplyFileErrors(t *testing.T) {
	cfg := Load()
	if err := ApplyFile(&cfg, filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte(":\tnot yaml"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if err := ApplyFile(&cfg, path); err == nil {
		t.Fatal("expected error for invalid yaml")
	}
}
