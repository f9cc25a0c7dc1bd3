package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/riskibarqy/finalpoint-client/internal/platform/logging"
)

const (
	defaultDevAPIURL    = "http://localhost:6075/api"
	defaultDevPublicURL = "http://localhost:3000"
)

// Panel cache policies, mirrored by usecase.CachePolicy.
const (
	PanelCachePerToggle = "per-toggle"
	PanelCacheFirstLoad = "first-load"
)

// Config stores runtime configuration for the client.
type Config struct {
	AppEnv                string
	ServiceName           string
	ServiceVersion        string
	APIBaseURL            string
	PublicBaseURL         string
	HTTPTimeout           time.Duration
	SessionFile           string
	SeasonYear            int
	ActivityLimit         int
	CacheTTL              time.Duration
	OverviewWorkers       int
	PanelCache            string
	CircuitEnabled        bool
	CircuitFailureCount   int
	CircuitOpenTimeout    time.Duration
	CircuitHalfOpenMaxReq int
	UptraceEnabled        bool
	UptraceDSN            string
	LogLevel              logging.Level
	ColorEnabled          bool
}

// LoadDotEnv reads .env style files into the process environment without
// overriding variables that are already set. Missing files are skipped.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, path := range paths {
		err := godotenv.Load(path)
		if err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("load %s: %w", path, err)
		}
	}
	return nil
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	apiDefault := ""
	publicDefault := ""
	if appEnv == EnvDev {
		apiDefault = defaultDevAPIURL
		publicDefault = defaultDevPublicURL
	}
	apiBaseURL := strings.TrimRight(strings.TrimSpace(getEnv("FINALPOINT_API_URL", apiDefault)), "/")
	if apiBaseURL == "" {
		return Config{}, fmt.Errorf("FINALPOINT_API_URL is required when APP_ENV=%s", appEnv)
	}
	if err := validateHTTPURL("FINALPOINT_API_URL", apiBaseURL); err != nil {
		return Config{}, err
	}
	publicBaseURL := strings.TrimRight(strings.TrimSpace(getEnv("FINALPOINT_PUBLIC_URL", publicDefault)), "/")
	if publicBaseURL != "" {
		if err := validateHTTPURL("FINALPOINT_PUBLIC_URL", publicBaseURL); err != nil {
			return Config{}, err
		}
	}

	httpTimeout, err := time.ParseDuration(getEnv("FINALPOINT_HTTP_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse FINALPOINT_HTTP_TIMEOUT: %w", err)
	}
	if httpTimeout <= 0 {
		return Config{}, fmt.Errorf("FINALPOINT_HTTP_TIMEOUT must be > 0")
	}

	sessionFile := strings.TrimSpace(getEnv("FINALPOINT_SESSION_FILE", defaultSessionFile()))

	seasonYear, err := getEnvAsInt("FINALPOINT_SEASON_YEAR", 2025)
	if err != nil {
		return Config{}, fmt.Errorf("parse FINALPOINT_SEASON_YEAR: %w", err)
	}
	if seasonYear < 1950 {
		return Config{}, fmt.Errorf("FINALPOINT_SEASON_YEAR must be >= 1950")
	}

	activityLimit, err := getEnvAsInt("FINALPOINT_ACTIVITY_LIMIT", 10)
	if err != nil {
		return Config{}, fmt.Errorf("parse FINALPOINT_ACTIVITY_LIMIT: %w", err)
	}
	if activityLimit < 1 {
		return Config{}, fmt.Errorf("FINALPOINT_ACTIVITY_LIMIT must be > 0")
	}

	cacheTTL, err := time.ParseDuration(getEnv("FINALPOINT_CACHE_TTL", "10m"))
	if err != nil {
		return Config{}, fmt.Errorf("parse FINALPOINT_CACHE_TTL: %w", err)
	}
	if cacheTTL < 0 {
		return Config{}, fmt.Errorf("FINALPOINT_CACHE_TTL must be >= 0")
	}

	overviewWorkers, err := getEnvAsInt("FINALPOINT_OVERVIEW_WORKERS", 4)
	if err != nil {
		return Config{}, fmt.Errorf("parse FINALPOINT_OVERVIEW_WORKERS: %w", err)
	}
	if overviewWorkers < 1 {
		return Config{}, fmt.Errorf("FINALPOINT_OVERVIEW_WORKERS must be > 0")
	}

	panelCache, err := parsePanelCache(getEnv("FINALPOINT_PANEL_CACHE", PanelCachePerToggle))
	if err != nil {
		return Config{}, err
	}

	circuitEnabled, err := strconv.ParseBool(getEnv("FINALPOINT_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse FINALPOINT_CIRCUIT_ENABLED: %w", err)
	}
	circuitFailureCount, err := getEnvAsInt("FINALPOINT_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse FINALPOINT_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if circuitFailureCount < 1 {
		return Config{}, fmt.Errorf("FINALPOINT_CIRCUIT_FAILURE_COUNT must be > 0")
	}
	circuitOpenTimeout, err := time.ParseDuration(getEnv("FINALPOINT_CIRCUIT_OPEN_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse FINALPOINT_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	if circuitOpenTimeout <= 0 {
		return Config{}, fmt.Errorf("FINALPOINT_CIRCUIT_OPEN_TIMEOUT must be > 0")
	}
	circuitHalfOpenMaxReq, err := getEnvAsInt("FINALPOINT_CIRCUIT_HALF_OPEN_MAX_REQ", 1)
	if err != nil {
		return Config{}, fmt.Errorf("parse FINALPOINT_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if circuitHalfOpenMaxReq < 1 {
		return Config{}, fmt.Errorf("FINALPOINT_CIRCUIT_HALF_OPEN_MAX_REQ must be > 0")
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceDSN == "" {
		uptraceDSN = parseUptraceDSNFromOTLPHeaders(getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}

	colorEnabled := strings.TrimSpace(os.Getenv("NO_COLOR")) == ""

	return Config{
		AppEnv:                appEnv,
		ServiceName:           getEnv("APP_SERVICE_NAME", "finalpoint-client"),
		ServiceVersion:        getEnv("APP_SERVICE_VERSION", "dev"),
		APIBaseURL:            apiBaseURL,
		PublicBaseURL:         publicBaseURL,
		HTTPTimeout:           httpTimeout,
		SessionFile:           sessionFile,
		SeasonYear:            seasonYear,
		ActivityLimit:         activityLimit,
		CacheTTL:              cacheTTL,
		OverviewWorkers:       overviewWorkers,
		PanelCache:            panelCache,
		CircuitEnabled:        circuitEnabled,
		CircuitFailureCount:   circuitFailureCount,
		CircuitOpenTimeout:    circuitOpenTimeout,
		CircuitHalfOpenMaxReq: circuitHalfOpenMaxReq,
		UptraceEnabled:        uptraceEnabled,
		UptraceDSN:            uptraceDSN,
		LogLevel:              parseLogLevel(getEnv("APP_LOG_LEVEL", "warn")),
		ColorEnabled:          colorEnabled,
	}, nil
}

func defaultSessionFile() string {
	dir, err := os.UserConfigDir()
	if err != nil || strings.TrimSpace(dir) == "" {
		return ".finalpoint-session.json"
	}
	return filepath.Join(dir, "finalpoint", "session.json")
}

func validateHTTPURL(key, raw string) error {
	parsed, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("parse %s: %w", key, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("%s must use http or https, got %q", key, raw)
	}
	if parsed.Host == "" {
		return fmt.Errorf("%s host is required", key)
	}
	return nil
}

func parsePanelCache(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case PanelCachePerToggle, PanelCacheFirstLoad:
		return value, nil
	default:
		return "", fmt.Errorf("invalid FINALPOINT_PANEL_CACHE %q: valid values are %s, %s", v, PanelCachePerToggle, PanelCacheFirstLoad)
	}
}

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "info":
		return logging.LevelInfo
	case "error":
		return logging.LevelError
	default:
		return logging.LevelWarn
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func parseUptraceDSNFromOTLPHeaders(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	items := strings.Split(raw, ",")
	for _, item := range items {
		parts := strings.SplitN(strings.TrimSpace(item), "=", 2)
		if len(parts) != 2 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(parts[0]), "uptrace-dsn") {
			value := strings.TrimSpace(parts[1])
			return strings.Trim(value, "\"'")
		}
	}

	return ""
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
