package usecase

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/futables/internal/domain/football"
	"github.com/riskibarqy/futables/internal/platform/logging"
	"github.com/sourcegraph/conc/pool"
)

const (
	DefaultDashboardFixtureLimit = 15
	MaxFixtureLimit              = 99
	minSeason                    = 1900
)

// CacheResetter drops memoized provider data.
type CacheResetter interface {
	Clear() int
	ClearLeague(ctx context.Context, leagueID int) int
	Len() int
}

type DashboardConfig struct {
	DefaultSeason int
	FixtureLimit  int
	WarmupWorkers int
}

type LeagueOption struct {
	ID      int                 `json:"id"`
	Name    string              `json:"name"`
	Label   string              `json:"label"`
	Type    football.LeagueType `json:"type"`
	Country string              `json:"country"`
	Logo    string              `json:"logo"`
	Seasons []int               `json:"seasons"`
}

type StandingsGroup struct {
	Name string                   `json:"name"`
	Rows []football.StandingEntry `json:"rows"`
}

type StandingsTable struct {
	LeagueID   int              `json:"leagueId"`
	LeagueName string           `json:"leagueName"`
	Country    string           `json:"country"`
	Logo       string           `json:"logo"`
	Season     int              `json:"season"`
	Grouped    bool             `json:"grouped"`
	Groups     []StandingsGroup `json:"groups"`
}

type FixtureScore struct {
	Home int `json:"home"`
	Away int `json:"away"`
}

// FixtureView is one row of the recent results list. Score is only set
// for a finished match with both goal counts known.
type FixtureView struct {
	ID          int              `json:"id"`
	Date        time.Time        `json:"date"`
	Round       string           `json:"round"`
	Home        football.TeamRef `json:"home"`
	Away        football.TeamRef `json:"away"`
	Status      string           `json:"status"`
	StatusLabel string           `json:"statusLabel"`
	Elapsed     *int             `json:"elapsed,omitempty"`
	Score       *FixtureScore    `json:"score,omitempty"`
}

type FixtureList struct {
	LeagueID int           `json:"leagueId"`
	Season   int           `json:"season"`
	Fixtures []FixtureView `json:"fixtures"`
}

// Overview combines a league table and its recent results. Either half is
// nil when the provider has no data for it.
type Overview struct {
	LeagueID  int             `json:"leagueId"`
	Season    int             `json:"season"`
	Standings *StandingsTable `json:"standings"`
	Fixtures  *FixtureList    `json:"fixtures"`
}

type WarmupResult struct {
	Leagues    int   `json:"leagues"`
	Succeeded  int   `json:"succeeded"`
	Empty      int   `json:"empty"`
	Failed     int   `json:"failed"`
	DurationMs int64 `json:"durationMs"`
}

type DashboardService struct {
	provider football.Provider
	resetter CacheResetter
	cfg      DashboardConfig
	logger   *logging.Logger
}

func NewDashboardService(provider football.Provider, resetter CacheResetter, cfg DashboardConfig, logger *logging.Logger) *DashboardService {
	if cfg.DefaultSeason <= 0 {
		cfg.DefaultSeason = football.DefaultSeason
	}
	if cfg.FixtureLimit <= 0 || cfg.FixtureLimit > MaxFixtureLimit {
		cfg.FixtureLimit = DefaultDashboardFixtureLimit
	}
	if cfg.WarmupWorkers <= 0 {
		cfg.WarmupWorkers = 4
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &DashboardService{
		provider: provider,
		resetter: resetter,
		cfg:      cfg,
		logger:   logger,
	}
}

// ListLeagueOptions returns selectable leagues of the given type sorted by
// label. An empty kind selects LeagueTypeLeague.
func (s *DashboardService) ListLeagueOptions(ctx context.Context, kind football.LeagueType) ([]LeagueOption, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DashboardService.ListLeagueOptions")
	defer span.End()

	if kind == "" {
		kind = football.LeagueTypeLeague
	}
	if kind != football.LeagueTypeLeague && kind != football.LeagueTypeCup {
		return nil, fmt.Errorf("%w: unknown league type %q", ErrInvalidInput, kind)
	}

	entries, found, err := s.provider.ListLeagues(ctx)
	if err != nil {
		return nil, wrapProviderError("list leagues", err)
	}
	if !found {
		return []LeagueOption{}, fmt.Errorf("%w: no leagues available", ErrNotFound)
	}

	out := make([]LeagueOption, 0, len(entries))
	for _, entry := range entries {
		if entry.League.Type != kind {
			continue
		}
		seasons := make([]int, 0, len(entry.Seasons))
		for _, season := range entry.Seasons {
			seasons = append(seasons, season.Year)
		}
		sort.Sort(sort.Reverse(sort.IntSlice(seasons)))

		out = append(out, LeagueOption{
			ID:      entry.League.ID,
			Name:    entry.League.Name,
			Label:   leagueLabel(entry.League),
			Type:    entry.League.Type,
			Country: entry.Country.Name,
			Logo:    entry.League.Logo,
			Seasons: seasons,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Label != out[j].Label {
			return out[i].Label < out[j].Label
		}
		return out[i].ID < out[j].ID
	})

	return out, nil
}

func (s *DashboardService) GetStandings(ctx context.Context, leagueID, season int) (StandingsTable, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DashboardService.GetStandings")
	defer span.End()

	season, err := s.validateLeagueSeason(leagueID, season)
	if err != nil {
		return StandingsTable{}, err
	}

	table, found, err := s.standings(ctx, leagueID, season)
	if err != nil {
		return StandingsTable{}, err
	}
	if !found {
		return StandingsTable{}, fmt.Errorf(
			"%w: no standings data available for this league (ID: %d) and season (%d)",
			ErrNotFound, leagueID, season,
		)
	}
	return table, nil
}

func (s *DashboardService) GetRecentFixtures(ctx context.Context, leagueID, season, last int) (FixtureList, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DashboardService.GetRecentFixtures")
	defer span.End()

	season, err := s.validateLeagueSeason(leagueID, season)
	if err != nil {
		return FixtureList{}, err
	}
	last, err = s.resolveLast(last)
	if err != nil {
		return FixtureList{}, err
	}

	list, found, err := s.fixtures(ctx, leagueID, season, last)
	if err != nil {
		return FixtureList{}, err
	}
	if !found {
		return FixtureList{}, fmt.Errorf(
			"%w: no recent fixtures available for this league (ID: %d) and season (%d)",
			ErrNotFound, leagueID, season,
		)
	}
	return list, nil
}

func (s *DashboardService) GetTeamStatistics(ctx context.Context, leagueID, teamID, season int) (football.TeamStatistics, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DashboardService.GetTeamStatistics")
	defer span.End()

	season, err := s.validateLeagueSeason(leagueID, season)
	if err != nil {
		return football.TeamStatistics{}, err
	}
	if teamID <= 0 {
		return football.TeamStatistics{}, fmt.Errorf("%w: team id must be > 0", ErrInvalidInput)
	}

	stats, found, err := s.provider.GetTeamStatistics(ctx, leagueID, teamID, season)
	if err != nil {
		return football.TeamStatistics{}, wrapProviderError("get team statistics", err)
	}
	if !found {
		return football.TeamStatistics{}, fmt.Errorf(
			"%w: no statistics available for team (ID: %d) in league (ID: %d) and season (%d)",
			ErrNotFound, teamID, leagueID, season,
		)
	}
	return stats, nil
}

// GetOverview loads standings and recent fixtures concurrently. Missing data
// on one side leaves that field nil; any provider error fails the whole call.
func (s *DashboardService) GetOverview(ctx context.Context, leagueID, season, last int) (Overview, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DashboardService.GetOverview")
	defer span.End()

	season, err := s.validateLeagueSeason(leagueID, season)
	if err != nil {
		return Overview{}, err
	}
	last, err = s.resolveLast(last)
	if err != nil {
		return Overview{}, err
	}

	out := Overview{LeagueID: leagueID, Season: season}
	p := pool.New().WithContext(ctx)
	p.Go(func(ctx context.Context) error {
		table, found, err := s.standings(ctx, leagueID, season)
		if err != nil {
			return err
		}
		if found {
			out.Standings = &table
		}
		return nil
	})
	p.Go(func(ctx context.Context) error {
		list, found, err := s.fixtures(ctx, leagueID, season, last)
		if err != nil {
			return err
		}
		if found {
			out.Fixtures = &list
		}
		return nil
	})
	if err := p.Wait(); err != nil {
		return Overview{}, err
	}

	if out.Standings == nil && out.Fixtures == nil {
		return Overview{}, fmt.Errorf(
			"%w: no data available for this league (ID: %d) and season (%d)",
			ErrNotFound, leagueID, season,
		)
	}
	return out, nil
}

// Refresh forgets every memoized provider response and returns how many
// entries were dropped.
func (s *DashboardService) Refresh(ctx context.Context) int {
	_, span := startUsecaseSpan(ctx, "usecase.DashboardService.Refresh")
	defer span.End()

	if s.resetter == nil {
		return 0
	}
	removed := s.resetter.Clear()
	s.logger.InfoContext(ctx, "dashboard cache cleared", "entries", removed)
	return removed
}

// RefreshLeague forgets the memoized standings, fixtures and team statistics
// of one league.
func (s *DashboardService) RefreshLeague(ctx context.Context, leagueID int) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DashboardService.RefreshLeague")
	defer span.End()

	if leagueID <= 0 {
		return 0, fmt.Errorf("%w: leagueID must be a positive integer", ErrInvalidInput)
	}
	if s.resetter == nil {
		return 0, nil
	}
	removed := s.resetter.ClearLeague(ctx, leagueID)
	s.logger.InfoContext(ctx, "league cache cleared", "league_id", leagueID, "entries", removed)
	return removed, nil
}

// Warmup prefetches standings and fixtures for each league so the first
// dashboard views are served from cache. Per-league failures are logged and
// counted.
func (s *DashboardService) Warmup(ctx context.Context, leagueIDs []int, season int) (WarmupResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DashboardService.Warmup")
	defer span.End()

	if season <= 0 {
		season = s.cfg.DefaultSeason
	}
	result := WarmupResult{Leagues: len(leagueIDs)}
	if len(leagueIDs) == 0 {
		return result, nil
	}

	start := time.Now()
	var succeeded, empty, failed atomic.Int32

	workerPool, err := ants.NewPool(min(s.cfg.WarmupWorkers, len(leagueIDs)))
	if err != nil {
		return WarmupResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer workerPool.Release()

	var workers sync.WaitGroup
	for _, leagueID := range leagueIDs {
		workers.Add(1)
		if err := workerPool.Submit(func() {
			defer workers.Done()

			_, standingsFound, err := s.standings(ctx, leagueID, season)
			if err == nil {
				_, _, err = s.fixtures(ctx, leagueID, season, s.cfg.FixtureLimit)
			}
			switch {
			case err != nil:
				failed.Add(1)
				s.logger.WarnContext(ctx, "warmup league failed",
					"league_id", leagueID,
					"season", season,
					"error", err,
				)
			case !standingsFound:
				empty.Add(1)
			default:
				succeeded.Add(1)
			}
		}); err != nil {
			workers.Done()
			return WarmupResult{}, fmt.Errorf("submit warmup task: %w", err)
		}
	}
	workers.Wait()

	result.Succeeded = int(succeeded.Load())
	result.Empty = int(empty.Load())
	result.Failed = int(failed.Load())
	result.DurationMs = time.Since(start).Milliseconds()

	fields := []any{
		"leagues", result.Leagues,
		"succeeded", result.Succeeded,
		"empty", result.Empty,
		"failed", result.Failed,
		"duration_ms", result.DurationMs,
	}
	if s.resetter != nil {
		fields = append(fields, "cached_entries", s.resetter.Len())
	}
	s.logger.InfoContext(ctx, "dashboard warmup finished", fields...)
	return result, nil
}

func (s *DashboardService) standings(ctx context.Context, leagueID, season int) (StandingsTable, bool, error) {
	result, found, err := s.provider.GetStandings(ctx, leagueID, season)
	if err != nil {
		return StandingsTable{}, false, wrapProviderError("get standings", err)
	}
	if !found {
		return StandingsTable{}, false, nil
	}
	return buildStandingsTable(result), true, nil
}

func (s *DashboardService) fixtures(ctx context.Context, leagueID, season, last int) (FixtureList, bool, error) {
	items, found, err := s.provider.GetFixtures(ctx, leagueID, season, last)
	if err != nil {
		return FixtureList{}, false, wrapProviderError("get fixtures", err)
	}
	if !found {
		return FixtureList{}, false, nil
	}
	views := make([]FixtureView, 0, len(items))
	for _, item := range items {
		views = append(views, newFixtureView(item))
	}
	return FixtureList{LeagueID: leagueID, Season: season, Fixtures: views}, true, nil
}

func newFixtureView(f football.Fixture) FixtureView {
	view := FixtureView{
		ID:          f.Fixture.ID,
		Date:        f.Fixture.Date,
		Round:       f.League.Round,
		Home:        f.Teams.Home,
		Away:        f.Teams.Away,
		Status:      f.Fixture.Status.Short,
		StatusLabel: fixtureStatusLabel(f),
		Elapsed:     f.Fixture.Status.Elapsed,
	}
	if home, away, ok := f.Scoreline(); ok {
		view.Score = &FixtureScore{Home: home, Away: away}
	}
	return view
}

func fixtureStatusLabel(f football.Fixture) string {
	if f.Finished() {
		return football.StatusFullTime
	}
	if f.Fixture.Status.Long != "" {
		return f.Fixture.Status.Long
	}
	return f.Fixture.Status.Short
}

func (s *DashboardService) validateLeagueSeason(leagueID, season int) (int, error) {
	if leagueID <= 0 {
		return 0, fmt.Errorf("%w: league id must be > 0", ErrInvalidInput)
	}
	if season == 0 {
		return s.cfg.DefaultSeason, nil
	}
	if season < minSeason {
		return 0, fmt.Errorf("%w: season must be a four digit year, got %d", ErrInvalidInput, season)
	}
	return season, nil
}

func (s *DashboardService) resolveLast(last int) (int, error) {
	if last == 0 {
		return s.cfg.FixtureLimit, nil
	}
	if last < 0 || last > MaxFixtureLimit {
		return 0, fmt.Errorf("%w: last must be between 1 and %d", ErrInvalidInput, MaxFixtureLimit)
	}
	return last, nil
}

func buildStandingsTable(result football.StandingsResult) StandingsTable {
	league := result.League
	table := StandingsTable{
		LeagueID:   league.ID,
		LeagueName: league.Name,
		Country:    league.Country,
		Logo:       league.Logo,
		Season:     league.Season,
		Grouped:    league.Standings.IsGrouped(),
	}

	groups := league.Standings.Groups()
	table.Groups = make([]StandingsGroup, 0, len(groups))
	for i, rows := range groups {
		name := league.Name
		if table.Grouped {
			name = "Group " + strconv.Itoa(i+1)
		}
		table.Groups = append(table.Groups, StandingsGroup{Name: name, Rows: rows})
	}
	return table
}

func leagueLabel(l football.League) string {
	return l.Name + " (" + strconv.Itoa(l.ID) + ")"
}
