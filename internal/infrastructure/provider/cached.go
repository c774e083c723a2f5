package provider

import (
	"context"
	"time"

	"github.com/riskibarqy/futables/internal/domain/football"
	"github.com/riskibarqy/futables/internal/platform/cache"
)

// CacheConfig holds the freshness window per operation.
type CacheConfig struct {
	LeaguesTTL   time.Duration
	StandingsTTL time.Duration
	FixturesTTL  time.Duration
	TeamStatsTTL time.Duration
	// Clock defaults to time.Now.
	Clock func() time.Time
}

func DefaultCacheConfig() CacheConfig {
	return CacheConfig{
		LeaguesTTL:   time.Hour,
		StandingsTTL: 10 * time.Minute,
		FixturesTTL:  10 * time.Minute,
		TeamStatsTTL: 10 * time.Minute,
	}
}

type standingsArgs struct {
	leagueID int
	season   int
}

type fixturesArgs struct {
	leagueID int
	season   int
	limit    int
}

type teamStatsArgs struct {
	leagueID int
	teamID   int
	season   int
}

// lookup keeps the found flag next to the value so absence is cached too.
type lookup[T any] struct {
	value T
	found bool
}

// Cached memoizes a football.Provider. Successful outcomes, including
// "no data", are reused until their TTL passes; errors always go upstream
// again on the next call.
type Cached struct {
	stores []*cache.Store
	// leagueScoped holds the stores whose keys start with "<op>:<leagueID>:".
	leagueScoped map[string]*cache.Store

	leagues   func(context.Context, struct{}) (lookup[[]football.LeagueEntry], error)
	standings func(context.Context, standingsArgs) (lookup[football.StandingsResult], error)
	fixtures  func(context.Context, fixturesArgs) (lookup[[]football.Fixture], error)
	teamStats func(context.Context, teamStatsArgs) (lookup[football.TeamStatistics], error)
}

var _ football.Provider = (*Cached)(nil)

func NewCached(next football.Provider, cfg CacheConfig) *Cached {
	defaults := DefaultCacheConfig()
	if cfg.LeaguesTTL <= 0 {
		cfg.LeaguesTTL = defaults.LeaguesTTL
	}
	if cfg.StandingsTTL <= 0 {
		cfg.StandingsTTL = defaults.StandingsTTL
	}
	if cfg.FixturesTTL <= 0 {
		cfg.FixturesTTL = defaults.FixturesTTL
	}
	if cfg.TeamStatsTTL <= 0 {
		cfg.TeamStatsTTL = defaults.TeamStatsTTL
	}

	clock := cache.WithClock(cfg.Clock)
	leaguesStore := cache.NewStore(cfg.LeaguesTTL, clock)
	standingsStore := cache.NewStore(cfg.StandingsTTL, clock)
	fixturesStore := cache.NewStore(cfg.FixturesTTL, clock)
	teamStatsStore := cache.NewStore(cfg.TeamStatsTTL, clock)

	return &Cached{
		stores: []*cache.Store{leaguesStore, standingsStore, fixturesStore, teamStatsStore},
		leagueScoped: map[string]*cache.Store{
			"standings":       standingsStore,
			"fixtures":        fixturesStore,
			"team_statistics": teamStatsStore,
		},
		leagues: cache.Memoize(leaguesStore,
			func(struct{}) string { return cache.Key("leagues") },
			func(ctx context.Context, _ struct{}) (lookup[[]football.LeagueEntry], error) {
				items, found, err := next.ListLeagues(ctx)
				return lookup[[]football.LeagueEntry]{value: items, found: found}, err
			}),
		standings: cache.Memoize(standingsStore,
			func(a standingsArgs) string { return cache.Key("standings", a.leagueID, a.season) },
			func(ctx context.Context, a standingsArgs) (lookup[football.StandingsResult], error) {
				item, found, err := next.GetStandings(ctx, a.leagueID, a.season)
				return lookup[football.StandingsResult]{value: item, found: found}, err
			}),
		fixtures: cache.Memoize(fixturesStore,
			func(a fixturesArgs) string { return cache.Key("fixtures", a.leagueID, a.season, a.limit) },
			func(ctx context.Context, a fixturesArgs) (lookup[[]football.Fixture], error) {
				items, found, err := next.GetFixtures(ctx, a.leagueID, a.season, a.limit)
				return lookup[[]football.Fixture]{value: items, found: found}, err
			}),
		teamStats: cache.Memoize(teamStatsStore,
			func(a teamStatsArgs) string { return cache.Key("team_statistics", a.leagueID, a.teamID, a.season) },
			func(ctx context.Context, a teamStatsArgs) (lookup[football.TeamStatistics], error) {
				item, found, err := next.GetTeamStatistics(ctx, a.leagueID, a.teamID, a.season)
				return lookup[football.TeamStatistics]{value: item, found: found}, err
			}),
	}
}

func (c *Cached) ListLeagues(ctx context.Context) ([]football.LeagueEntry, bool, error) {
	got, err := c.leagues(ctx, struct{}{})
	if err != nil {
		return nil, false, err
	}
	return append([]football.LeagueEntry(nil), got.value...), got.found, nil
}

// GetStandings keys on the resolved season so 0 and the default season
// share one entry.
func (c *Cached) GetStandings(ctx context.Context, leagueID, season int) (football.StandingsResult, bool, error) {
	got, err := c.standings(ctx, standingsArgs{leagueID: leagueID, season: football.ResolveSeason(season)})
	if err != nil {
		return football.StandingsResult{}, false, err
	}
	return got.value, got.found, nil
}

func (c *Cached) GetFixtures(ctx context.Context, leagueID, season, limit int) ([]football.Fixture, bool, error) {
	got, err := c.fixtures(ctx, fixturesArgs{
		leagueID: leagueID,
		season:   football.ResolveSeason(season),
		limit:    football.ResolveFixtureLimit(limit),
	})
	if err != nil {
		return nil, false, err
	}
	return append([]football.Fixture(nil), got.value...), got.found, nil
}

func (c *Cached) GetTeamStatistics(ctx context.Context, leagueID, teamID, season int) (football.TeamStatistics, bool, error) {
	got, err := c.teamStats(ctx, teamStatsArgs{leagueID: leagueID, teamID: teamID, season: football.ResolveSeason(season)})
	if err != nil {
		return football.TeamStatistics{}, false, err
	}
	return got.value, got.found, nil
}

// Clear drops every memoized entry and returns how many were removed.
func (c *Cached) Clear() int {
	removed := 0
	for _, store := range c.stores {
		removed += store.Clear()
	}
	return removed
}

// ClearLeague drops the standings, fixtures and team statistics memoized
// for one league. The league catalogue is kept.
func (c *Cached) ClearLeague(ctx context.Context, leagueID int) int {
	removed := 0
	for op, store := range c.leagueScoped {
		removed += store.DeletePrefix(ctx, cache.Key(op, leagueID)+":")
	}
	return removed
}

// Len reports the number of live entries across all operations.
func (c *Cached) Len() int {
	total := 0
	for _, store := range c.stores {
		total += store.Len()
	}
	return total
}
