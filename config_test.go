package learnhub

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

var configKeys = []string{
	"PORT", "APP_MODE", "VERBOSE",
	"OPENAI_API_KEY", "OPENAI_BASE_URL", "OPENAI_MODEL",
	"GOOGLE_SEARCH_API_KEY", "GOOGLE_SEARCH_ENGINE_ID", "YOUTUBE_API_KEY",
	"REQUEST_TIMEOUT", "QUIZ_SESSION_TTL", "STORE_DRIVER", "SQLITE_DSN",
	"SESSION_SECRET", "LLM_LOG_DIR", "CORS_ORIGINS",
}

func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, k := range configKeys {
		t.Setenv(k, "")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearConfigEnv(t)

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Port != "8180" || cfg.Mode != "dev" || cfg.StoreDriver != "memory" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.RequestTimeout != 60*time.Second || cfg.SessionTTL != 2*time.Hour {
		t.Fatalf("unexpected durations: timeout=%s ttl=%s", cfg.RequestTimeout, cfg.SessionTTL)
	}
	if cfg.SQLiteDSN != DefaultSQLiteDSN {
		t.Fatalf("unexpected dsn: got=%q", cfg.SQLiteDSN)
	}
	if len(cfg.CORSOrigins) != 2 {
		t.Fatalf("unexpected CORS origins: %v", cfg.CORSOrigins)
	}
}

func TestLoadConfig_ReadsEnvFileAndEnvironment(t *testing.T) {
	clearConfigEnv(t)
	for _, k := range configKeys {
		os.Unsetenv(k)
	}

	path := filepath.Join(t.TempDir(), ".env")
	content := "OPENAI_API_KEY=sk-test\nREQUEST_TIMEOUT=90\nQUIZ_SESSION_TTL=15m\nCORS_ORIGINS=https://a.example, https://b.example\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	t.Setenv("PORT", "9000")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.OpenAIAPIKey != "sk-test" || cfg.Port != "9000" {
		t.Fatalf("unexpected values: key=%q port=%q", cfg.OpenAIAPIKey, cfg.Port)
	}
	if cfg.RequestTimeout != 90*time.Second || cfg.SessionTTL != 15*time.Minute {
		t.Fatalf("unexpected durations: timeout=%s ttl=%s", cfg.RequestTimeout, cfg.SessionTTL)
	}
	if strings.Join(cfg.CORSOrigins, "|") != "https://a.example|https://b.example" {
		t.Fatalf("unexpected CORS origins: %v", cfg.CORSOrigins)
	}
}

func TestConfigValidate(t *testing.T) {
	cfg := Config{RequestTimeout: time.Second}
	err := cfg.Validate(true)
	if err == nil {
		t.Fatalf("expected missing keys to fail")
	}
	for _, name := range []string{"OPENAI_API_KEY", "GOOGLE_SEARCH_API_KEY", "GOOGLE_SEARCH_ENGINE_ID", "YOUTUBE_API_KEY"} {
		if !strings.Contains(err.Error(), name) {
			t.Fatalf("expected %s in error: %v", name, err)
		}
	}

	cfg.OpenAIAPIKey = "sk-test"
	if err := cfg.Validate(false); err != nil {
		t.Fatalf("search keys are optional without search: %v", err)
	}
}
