package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/riskibarqy/finalpoint-client/internal/platform/logging"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"APP_ENV", "FINALPOINT_API_URL", "FINALPOINT_PUBLIC_URL", "FINALPOINT_HTTP_TIMEOUT",
		"FINALPOINT_SESSION_FILE", "FINALPOINT_SEASON_YEAR", "FINALPOINT_ACTIVITY_LIMIT",
		"FINALPOINT_CACHE_TTL", "FINALPOINT_OVERVIEW_WORKERS", "FINALPOINT_PANEL_CACHE",
		"FINALPOINT_CIRCUIT_ENABLED", "FINALPOINT_CIRCUIT_FAILURE_COUNT",
		"FINALPOINT_CIRCUIT_OPEN_TIMEOUT", "FINALPOINT_CIRCUIT_HALF_OPEN_MAX_REQ",
		"UPTRACE_ENABLED", "UPTRACE_DSN", "OTEL_EXPORTER_OTLP_HEADERS", "APP_LOG_LEVEL", "NO_COLOR",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_DevDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.AppEnv != EnvDev {
		t.Fatalf("unexpected AppEnv %q", cfg.AppEnv)
	}
	if cfg.APIBaseURL != "http://localhost:6075/api" {
		t.Fatalf("unexpected APIBaseURL %q", cfg.APIBaseURL)
	}
	if cfg.HTTPTimeout != 10*time.Second {
		t.Fatalf("unexpected HTTPTimeout %s", cfg.HTTPTimeout)
	}
	if cfg.SeasonYear != 2025 || cfg.ActivityLimit != 10 || cfg.OverviewWorkers != 4 {
		t.Fatalf("unexpected numeric defaults: %+v", cfg)
	}
	if cfg.PanelCache != PanelCachePerToggle {
		t.Fatalf("unexpected PanelCache %q", cfg.PanelCache)
	}
	if !cfg.CircuitEnabled || cfg.CircuitFailureCount != 5 {
		t.Fatalf("unexpected circuit defaults: %+v", cfg)
	}
	if cfg.LogLevel != logging.LevelWarn {
		t.Fatalf("unexpected LogLevel %v", cfg.LogLevel)
	}
	if cfg.SessionFile == "" || !cfg.ColorEnabled {
		t.Fatalf("expected session file and colour defaults, got %+v", cfg)
	}
}

func TestLoad_AppEnvValidation(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_ProdRequiresAPIURL(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_ENV", EnvProd)
	if _, err := Load(); err == nil {
		t.Fatalf("expected error when FINALPOINT_API_URL is unset in prod")
	}

	t.Setenv("FINALPOINT_API_URL", "https://api.finalpoint.app/api/")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.APIBaseURL != "https://api.finalpoint.app/api" {
		t.Fatalf("trailing slash must be trimmed, got %q", cfg.APIBaseURL)
	}
	if cfg.PublicBaseURL != "" {
		t.Fatalf("prod has no default public url, got %q", cfg.PublicBaseURL)
	}
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	cases := map[string]string{
		"FINALPOINT_API_URL":               "ftp://example.com",
		"FINALPOINT_HTTP_TIMEOUT":          "0s",
		"FINALPOINT_SEASON_YEAR":           "abc",
		"FINALPOINT_ACTIVITY_LIMIT":        "0",
		"FINALPOINT_CACHE_TTL":             "-1m",
		"FINALPOINT_OVERVIEW_WORKERS":      "0",
		"FINALPOINT_PANEL_CACHE":           "forever",
		"FINALPOINT_CIRCUIT_ENABLED":       "maybe",
		"FINALPOINT_CIRCUIT_FAILURE_COUNT": "0",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(key, value)
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%q", key, value)
			}
		})
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	clearEnv(t)
	t.Setenv("UPTRACE_ENABLED", "true")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}

	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", `uptrace-dsn="https://token@api.uptrace.dev?grpc=4317"`)
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.UptraceDSN != "https://token@api.uptrace.dev?grpc=4317" {
		t.Fatalf("unexpected UptraceDSN %q", cfg.UptraceDSN)
	}
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("FINALPOINT_PANEL_CACHE", "First-Load")
	t.Setenv("FINALPOINT_SESSION_FILE", "/tmp/fp-session.json")
	t.Setenv("APP_LOG_LEVEL", "debug")
	t.Setenv("NO_COLOR", "1")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.PanelCache != PanelCacheFirstLoad {
		t.Fatalf("unexpected PanelCache %q", cfg.PanelCache)
	}
	if cfg.SessionFile != "/tmp/fp-session.json" {
		t.Fatalf("unexpected SessionFile %q", cfg.SessionFile)
	}
	if cfg.LogLevel != logging.LevelDebug {
		t.Fatalf("unexpected LogLevel %v", cfg.LogLevel)
	}
	if cfg.ColorEnabled {
		t.Fatalf("NO_COLOR must disable colour")
	}
}

func TestLoadDotEnv_DoesNotOverrideAndSkipsMissing(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	content := "FINALPOINT_SEASON_YEAR=2026\nFINALPOINT_ACTIVITY_LIMIT=25\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	t.Setenv("FINALPOINT_ACTIVITY_LIMIT", "5")
	// godotenv only fills variables that are absent, not ones set empty.
	if err := os.Unsetenv("FINALPOINT_SEASON_YEAR"); err != nil {
		t.Fatalf("unset: %v", err)
	}

	if err := LoadDotEnv(filepath.Join(dir, "missing.env"), path); err != nil {
		t.Fatalf("load dotenv: %v", err)
	}
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.SeasonYear != 2026 {
		t.Fatalf("expected season from .env, got %d", cfg.SeasonYear)
	}
	if cfg.ActivityLimit != 5 {
		t.Fatalf("existing env must win over .env, got %d", cfg.ActivityLimit)
	}
}
