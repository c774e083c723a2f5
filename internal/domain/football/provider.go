package football

import "context"

// Provider describes the read operations the dashboard needs from the
// upstream sports-data API. found is false when the provider reports zero
// results; that is a valid outcome, not an error.
type Provider interface {
	ListLeagues(ctx context.Context) (leagues []LeagueEntry, found bool, err error)
	GetStandings(ctx context.Context, leagueID, season int) (result StandingsResult, found bool, err error)
	GetFixtures(ctx context.Context, leagueID, season, limit int) (fixtures []Fixture, found bool, err error)
	GetTeamStatistics(ctx context.Context, leagueID, teamID, season int) (stats TeamStatistics, found bool, err error)
}

// ResolveSeason applies the default season to unset values.
func ResolveSeason(season int) int {
	if season <= 0 {
		return DefaultSeason
	}
	return season
}

func ResolveFixtureLimit(limit int) int {
	if limit <= 0 {
		return DefaultFixtureLimit
	}
	return limit
}
