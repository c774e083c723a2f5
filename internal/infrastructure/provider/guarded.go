package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/riskibarqy/futables/external/apisports"
	"github.com/riskibarqy/futables/internal/domain/football"
	"github.com/riskibarqy/futables/internal/platform/logging"
	"github.com/riskibarqy/futables/internal/platform/resilience"
)

// Guarded puts a circuit breaker in front of a football.Provider.
type Guarded struct {
	next    football.Provider
	breaker *resilience.CircuitBreaker
	logger  *logging.Logger
}

var _ football.Provider = (*Guarded)(nil)

func NewGuarded(next football.Provider, breaker *resilience.CircuitBreaker, logger *logging.Logger) *Guarded {
	if logger == nil {
		logger = logging.Default()
	}
	return &Guarded{next: next, breaker: breaker, logger: logger}
}

func (g *Guarded) ListLeagues(ctx context.Context) (items []football.LeagueEntry, found bool, err error) {
	err = g.run(ctx, "list_leagues", func() error {
		items, found, err = g.next.ListLeagues(ctx)
		return err
	})
	return items, found, err
}

func (g *Guarded) GetStandings(ctx context.Context, leagueID, season int) (item football.StandingsResult, found bool, err error) {
	err = g.run(ctx, "get_standings", func() error {
		item, found, err = g.next.GetStandings(ctx, leagueID, season)
		return err
	})
	return item, found, err
}

func (g *Guarded) GetFixtures(ctx context.Context, leagueID, season, limit int) (items []football.Fixture, found bool, err error) {
	err = g.run(ctx, "get_fixtures", func() error {
		items, found, err = g.next.GetFixtures(ctx, leagueID, season, limit)
		return err
	})
	return items, found, err
}

func (g *Guarded) GetTeamStatistics(ctx context.Context, leagueID, teamID, season int) (item football.TeamStatistics, found bool, err error) {
	err = g.run(ctx, "get_team_statistics", func() error {
		item, found, err = g.next.GetTeamStatistics(ctx, leagueID, teamID, season)
		return err
	})
	return item, found, err
}

func (g *Guarded) run(ctx context.Context, op string, fn func() error) error {
	if g.breaker == nil {
		return fn()
	}
	err := g.breaker.Execute(fn, isProviderFailure)
	if errors.Is(err, resilience.ErrCircuitOpen) {
		g.logger.WarnContext(ctx, "provider call rejected",
			"operation", op,
			"breaker", g.breaker.Name(),
			"state", string(g.breaker.State()),
		)
		return fmt.Errorf("%w: %s: %w", football.ErrUnavailable, g.breaker.Name(), err)
	}
	return err
}

// isProviderFailure reports whether err says the provider itself is
// unhealthy. Caller cancellation and bad payloads do not trip the breaker.
func isProviderFailure(err error) bool {
	if errors.Is(err, context.Canceled) {
		return false
	}
	if errors.Is(err, apisports.ErrTransport) {
		return true
	}
	if code, ok := apisports.StatusCode(err); ok {
		return code >= http.StatusInternalServerError || code == http.StatusTooManyRequests
	}
	return false
}
