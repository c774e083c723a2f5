package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/futables/internal/platform/logging"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv                         string
	ServiceName                    string
	ServiceVersion                 string
	HTTPAddr                       string
	ReadTimeout                    time.Duration
	WriteTimeout                   time.Duration
	CORSAllowedOrigins             []string
	LogLevel                       logging.Level
	APISportsBaseURL               string
	APISportsHost                  string
	APISportsKey                   string
	APISportsTimeout               time.Duration
	APISportsCircuitEnabled        bool
	APISportsCircuitFailureCount   int
	APISportsCircuitOpenTimeout    time.Duration
	APISportsCircuitHalfOpenMaxReq int
	CacheEnabled                   bool
	CacheLeaguesTTL                time.Duration
	CacheStandingsTTL              time.Duration
	CacheFixturesTTL               time.Duration
	CacheTeamStatsTTL              time.Duration
	DefaultSeason                  int
	DashboardFixtureLimit          int
	WarmupLeagueIDs                []int
	WarmupWorkers                  int
	UptraceEnabled                 bool
	UptraceDSN                     string
	PprofEnabled                   bool
	PprofAddr                      string
	PyroscopeEnabled               bool
	PyroscopeServerAddress         string
	PyroscopeAppName               string
	PyroscopeAuthToken             string
	PyroscopeUploadRate            time.Duration
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	readTimeout, err := getEnvAsPositiveDuration("APP_READ_TIMEOUT", "10s")
	if err != nil {
		return Config{}, err
	}
	writeTimeout, err := getEnvAsPositiveDuration("APP_WRITE_TIMEOUT", "15s")
	if err != nil {
		return Config{}, err
	}

	apiSportsKey := strings.TrimSpace(getEnv("APISPORTS_KEY", ""))
	if apiSportsKey == "" {
		return Config{}, fmt.Errorf("APISPORTS_KEY is required")
	}
	apiSportsTimeout, err := getEnvAsPositiveDuration("APISPORTS_TIMEOUT", "20s")
	if err != nil {
		return Config{}, err
	}
	apiSportsCircuitEnabled, err := strconv.ParseBool(getEnv("APISPORTS_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APISPORTS_CIRCUIT_ENABLED: %w", err)
	}
	apiSportsCircuitFailureCount, err := getEnvAsInt("APISPORTS_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse APISPORTS_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if apiSportsCircuitFailureCount < 1 {
		return Config{}, fmt.Errorf("APISPORTS_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	apiSportsCircuitOpenTimeout, err := getEnvAsPositiveDuration("APISPORTS_CIRCUIT_OPEN_TIMEOUT", "15s")
	if err != nil {
		return Config{}, err
	}
	apiSportsCircuitHalfOpenMaxReq, err := getEnvAsInt("APISPORTS_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse APISPORTS_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if apiSportsCircuitHalfOpenMaxReq < 1 {
		return Config{}, fmt.Errorf("APISPORTS_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}

	cacheEnabled, err := strconv.ParseBool(getEnv("CACHE_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_ENABLED: %w", err)
	}
	// League metadata changes far less often than live tables and scores.
	cacheLeaguesTTL, err := getEnvAsPositiveDuration("CACHE_LEAGUES_TTL", "1h")
	if err != nil {
		return Config{}, err
	}
	cacheStandingsTTL, err := getEnvAsPositiveDuration("CACHE_STANDINGS_TTL", "10m")
	if err != nil {
		return Config{}, err
	}
	cacheFixturesTTL, err := getEnvAsPositiveDuration("CACHE_FIXTURES_TTL", "10m")
	if err != nil {
		return Config{}, err
	}
	cacheTeamStatsTTL, err := getEnvAsPositiveDuration("CACHE_TEAM_STATS_TTL", "10m")
	if err != nil {
		return Config{}, err
	}

	defaultSeason, err := getEnvAsInt("DASHBOARD_DEFAULT_SEASON", 2023)
	if err != nil {
		return Config{}, fmt.Errorf("parse DASHBOARD_DEFAULT_SEASON: %w", err)
	}
	if defaultSeason < 1900 {
		return Config{}, fmt.Errorf("DASHBOARD_DEFAULT_SEASON must be a four digit year")
	}
	fixtureLimit, err := getEnvAsInt("DASHBOARD_FIXTURE_LIMIT", 15)
	if err != nil {
		return Config{}, fmt.Errorf("parse DASHBOARD_FIXTURE_LIMIT: %w", err)
	}
	if fixtureLimit < 1 || fixtureLimit > 99 {
		return Config{}, fmt.Errorf("DASHBOARD_FIXTURE_LIMIT must be between 1 and 99")
	}

	warmupLeagueIDs, err := parseIDList(getEnv("WARMUP_LEAGUE_IDS", ""))
	if err != nil {
		return Config{}, fmt.Errorf("parse WARMUP_LEAGUE_IDS: %w", err)
	}
	warmupWorkers, err := getEnvAsInt("WARMUP_WORKERS", 4)
	if err != nil {
		return Config{}, fmt.Errorf("parse WARMUP_WORKERS: %w", err)
	}
	if warmupWorkers < 1 {
		return Config{}, fmt.Errorf("WARMUP_WORKERS must be >= 1")
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}

	pprofEnabled, err := strconv.ParseBool(getEnv("PPROF_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PPROF_ENABLED: %w", err)
	}

	pyroscopeEnabled, err := strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	pyroscopeServerAddress := strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if pyroscopeEnabled && pyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	pyroscopeUploadRate, err := getEnvAsPositiveDuration("PYROSCOPE_UPLOAD_RATE", "15s")
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		AppEnv:                         appEnv,
		ServiceName:                    getEnv("APP_SERVICE_NAME", "futables-api"),
		ServiceVersion:                 getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:                       strings.TrimSpace(getEnv("APP_HTTP_ADDR", ":8080")),
		ReadTimeout:                    readTimeout,
		WriteTimeout:                   writeTimeout,
		CORSAllowedOrigins:             splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		LogLevel:                       parseLogLevel(getEnv("APP_LOG_LEVEL", "info")),
		APISportsBaseURL:               strings.TrimSpace(getEnv("APISPORTS_BASE_URL", "https://v3.football.api-sports.io")),
		APISportsHost:                  strings.TrimSpace(getEnv("APISPORTS_HOST", "")),
		APISportsKey:                   apiSportsKey,
		APISportsTimeout:               apiSportsTimeout,
		APISportsCircuitEnabled:        apiSportsCircuitEnabled,
		APISportsCircuitFailureCount:   apiSportsCircuitFailureCount,
		APISportsCircuitOpenTimeout:    apiSportsCircuitOpenTimeout,
		APISportsCircuitHalfOpenMaxReq: apiSportsCircuitHalfOpenMaxReq,
		CacheEnabled:                   cacheEnabled,
		CacheLeaguesTTL:                cacheLeaguesTTL,
		CacheStandingsTTL:              cacheStandingsTTL,
		CacheFixturesTTL:               cacheFixturesTTL,
		CacheTeamStatsTTL:              cacheTeamStatsTTL,
		DefaultSeason:                  defaultSeason,
		DashboardFixtureLimit:          fixtureLimit,
		WarmupLeagueIDs:                warmupLeagueIDs,
		WarmupWorkers:                  warmupWorkers,
		UptraceEnabled:                 uptraceEnabled,
		UptraceDSN:                     uptraceDSN,
		PprofEnabled:                   pprofEnabled,
		PprofAddr:                      strings.TrimSpace(getEnv("PPROF_ADDR", ":6060")),
		PyroscopeEnabled:               pyroscopeEnabled,
		PyroscopeServerAddress:         pyroscopeServerAddress,
		PyroscopeAuthToken:             strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeUploadRate:            pyroscopeUploadRate,
	}
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))

	if cfg.HTTPAddr == "" {
		return Config{}, fmt.Errorf("APP_HTTP_ADDR cannot be empty")
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		return Config{}, fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}

	return cfg, nil
}

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
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

	return strconv.Atoi(value)
}

func getEnvAsPositiveDuration(key, fallback string) (time.Duration, error) {
	value, err := time.ParseDuration(getEnv(key, fallback))
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	if value <= 0 {
		return 0, fmt.Errorf("%s must be > 0", key)
	}
	return value, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}

func parseIDList(raw string) ([]int, error) {
	items := splitCSV(raw)
	out := make([]int, 0, len(items))
	seen := make(map[int]struct{}, len(items))
	for _, item := range items {
		id, err := strconv.Atoi(item)
		if err != nil {
			return nil, fmt.Errorf("invalid league id %q: %w", item, err)
		}
		if id <= 0 {
			return nil, fmt.Errorf("league id must be > 0, got %d", id)
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out, nil
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
