package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testKey = "0123456789abcdef0123456789abcdef"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_KEY", testKey)

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.env"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "8080" || cfg.LogLevel != "info" {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if cfg.JWT.ExpirationMinutes != 60 || cfg.JWT.Key != testKey {
		t.Fatalf("unexpected jwt config %+v", cfg.JWT)
	}
	if _, ok := os.LookupEnv("JWT_KEY"); ok {
		t.Fatal("expected JWT_KEY to be removed from the environment")
	}
	if cfg.Images.Backend != "local" || cfg.Mail.Backend != "smtp" {
		t.Fatalf("unexpected backends %s %s", cfg.Images.Backend, cfg.Mail.Backend)
	}
	if cfg.Postgres.Port != 5432 || !cfg.Postgres.AutoMigrate {
		t.Fatalf("unexpected postgres config %+v", cfg.Postgres)
	}
}

func TestLoadReadsDotEnvWithoutOverriding(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "test.env")
	content := strings.Join([]string{
		"JWT_KEY=" + testKey,
		"PORT=9090",
		"LOG_LEVEL=debug",
		"ALLOWED_ORIGINS=https://a.example.com,https://b.example.com",
		"IMAGE_DIR=/srv/images",
	}, "\n")
	if err := os.WriteFile(file, []byte(content), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	t.Setenv("PORT", "7070")
	// godotenv sets variables in the real environment; restore them afterwards.
	for _, k := range []string{"JWT_KEY", "LOG_LEVEL", "ALLOWED_ORIGINS", "IMAGE_DIR"} {
		t.Setenv(k, "")
		_ = os.Unsetenv(k)
	}

	cfg, err := Load(file)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "7070" {
		t.Fatalf("existing env must win, got %s", cfg.Port)
	}
	if cfg.LogLevel != "debug" || cfg.Images.Dir != "/srv/images" {
		t.Fatalf("expected values from file, got %+v", cfg)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "https://b.example.com" {
		t.Fatalf("unexpected origins %v", cfg.AllowedOrigins)
	}
}

func TestLoadRejectsShortKey(t *testing.T) {
	t.Setenv("JWT_KEY", "short")
	if _, err := Load(filepath.Join(t.TempDir(), "absent.env")); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestValidateCollectsErrors(t *testing.T) {
	cfg := Config{}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected errors for empty config")
	}
	for _, want := range []string{"MAX_BODY_BYTES", "jwt key", "image backend", "mail backend"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("expected %q in %v", want, err)
		}
	}
}

func TestFirestoreMailRequiresProject(t *testing.T) {
	t.Setenv("JWT_KEY", testKey)
	t.Setenv("MAIL_BACKEND", "firestore")
	t.Setenv("FIREBASE_PROJECT_ID", "")
	t.Setenv("GOOGLE_CLOUD_PROJECT", "")
	if _, err := Load(filepath.Join(t.TempDir(), "absent.env")); err == nil {
		t.Fatal("expected project requirement")
	}

	// JWT_KEY is unset after parsing.
	t.Setenv("JWT_KEY", testKey)
	t.Setenv("GOOGLE_CLOUD_PROJECT", "demo")
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.env"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.FirebaseProject() != "demo" {
		t.Fatalf("expected fallback project, got %q", cfg.FirebaseProject())
	}
}
