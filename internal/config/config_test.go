package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := LoadFrom(t.TempDir())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DBDriver != DriverMongo || cfg.MongoDatabase != "court_chat_db" {
		t.Fatalf("unexpected db defaults: %+v", cfg)
	}
	if cfg.AITimeout != 90*time.Second {
		t.Fatalf("expected 90s timeout, got %s", cfg.AITimeout)
	}
	if cfg.SessionTTL != 24*time.Hour || cfg.WorkerConcurrency != 2 {
		t.Fatalf("unexpected defaults: ttl=%s workers=%d", cfg.SessionTTL, cfg.WorkerConcurrency)
	}
	if cfg.DefaultLanguage != "en" || cfg.StorageType != StorageLocal {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func writeSecrets(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "secrets.toml"), []byte(body), 0o600); err != nil {
		t.Fatalf("write secrets: %v", err)
	}
	return dir
}

func TestLoadFrom_SecretsFile(t *testing.T) {
	dir := writeSecrets(t, `
GEMINI_API_KEY = "file-key"
AI_TIMEOUT_SECONDS = 30

[mongo]
uri = "mongodb://db.internal:27017"
`)
	cfg, err := LoadFrom(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.GeminiAPIKey != "file-key" {
		t.Fatalf("expected key from file, got %q", cfg.GeminiAPIKey)
	}
	if cfg.AITimeout != 30*time.Second {
		t.Fatalf("expected 30s, got %s", cfg.AITimeout)
	}
	if cfg.MongoURI != "mongodb://db.internal:27017" {
		t.Fatalf("expected [mongo] uri, got %q", cfg.MongoURI)
	}
}

func TestLoadFrom_EnvOverridesFile(t *testing.T) {
	dir := writeSecrets(t, `GEMINI_API_KEY = "file-key"
[mongo]
uri = "mongodb://file:27017"
`)
	t.Setenv("GEMINI_API_KEY", "env-key")
	t.Setenv("MONGO_URI", "mongodb://env:27017")
	t.Setenv("WORKER_CONCURRENCY", "500")

	cfg, err := LoadFrom(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.GeminiAPIKey != "env-key" || cfg.MongoURI != "mongodb://env:27017" {
		t.Fatalf("env must win: %+v", cfg)
	}
	if cfg.WorkerConcurrency != 50 {
		t.Fatalf("expected concurrency clamped to 50, got %d", cfg.WorkerConcurrency)
	}
}

func TestLoadFrom_Invalid(t *testing.T) {
	t.Setenv("DB_DRIVER", "oracle")
	if _, err := LoadFrom(t.TempDir()); err == nil {
		t.Fatalf("expected error for unsupported driver")
	}
}

func TestLoadFrom_MinIORequiresEndpoint(t *testing.T) {
	t.Setenv("STORAGE_TYPE", "minio")
	if _, err := LoadFrom(t.TempDir()); err == nil {
		t.Fatalf("expected error without MINIO_ENDPOINT")
	}
}
