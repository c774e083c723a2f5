package app

import (
	"fmt"
	"net/http"

	"github.com/riskibarqy/futables/external/apisports"
	"github.com/riskibarqy/futables/internal/config"
	"github.com/riskibarqy/futables/internal/domain/football"
	"github.com/riskibarqy/futables/internal/infrastructure/provider"
	"github.com/riskibarqy/futables/internal/interfaces/httpapi"
	"github.com/riskibarqy/futables/internal/platform/logging"
	"github.com/riskibarqy/futables/internal/platform/resilience"
	"github.com/riskibarqy/futables/internal/usecase"
)

// App holds the wired HTTP server and the services main needs after startup.
type App struct {
	Server    *http.Server
	Dashboard *usecase.DashboardService
}

func New(cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}

	client := apisports.NewClient(apisports.ClientConfig{
		BaseURL: cfg.APISportsBaseURL,
		Host:    cfg.APISportsHost,
		APIKey:  cfg.APISportsKey,
		Timeout: cfg.APISportsTimeout,
	})

	var source football.Provider = client
	if cfg.APISportsCircuitEnabled {
		breaker := resilience.NewCircuitBreaker("api-sports", resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: cfg.APISportsCircuitFailureCount,
			OpenTimeout:      cfg.APISportsCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.APISportsCircuitHalfOpenMaxReq,
			OnStateChange: func(name string, from, to resilience.CircuitState) {
				logger.Warn("circuit breaker state changed", "breaker", name, "from", from, "to", to)
			},
		})
		source = provider.NewGuarded(source, breaker, logger.With("component", "provider"))
	}

	// Cache sits outside the breaker so fresh entries are still served while it is open.
	var resetter usecase.CacheResetter
	if cfg.CacheEnabled {
		cached := provider.NewCached(source, provider.CacheConfig{
			LeaguesTTL:   cfg.CacheLeaguesTTL,
			StandingsTTL: cfg.CacheStandingsTTL,
			FixturesTTL:  cfg.CacheFixturesTTL,
			TeamStatsTTL: cfg.CacheTeamStatsTTL,
		})
		source = cached
		resetter = cached
	}

	dashboardSvc := usecase.NewDashboardService(source, resetter, usecase.DashboardConfig{
		DefaultSeason: cfg.DefaultSeason,
		FixtureLimit:  cfg.DashboardFixtureLimit,
		WarmupWorkers: cfg.WarmupWorkers,
	}, logger.With("component", "dashboard"))

	handler := httpapi.NewHandler(dashboardSvc, logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return &App{Server: server, Dashboard: dashboardSvc}, nil
}
