package football

import "time"

const (
	// DefaultSeason is used when a caller leaves the season unset.
	DefaultSeason = 2023
	// DefaultFixtureLimit is the number of recent fixtures fetched when no limit is given.
	DefaultFixtureLimit = 10

	StatusFullTime = "FT"
)

// LeagueType distinguishes round-robin leagues from knockout cups.
type LeagueType string

const (
	LeagueTypeLeague LeagueType = "League"
	LeagueTypeCup    LeagueType = "Cup"
)

// League is a competition known to the upstream provider.
type League struct {
	ID   int        `json:"id"`
	Name string     `json:"name"`
	Type LeagueType `json:"type"`
	Logo string     `json:"logo"`
}

type Country struct {
	Name string  `json:"name"`
	Code *string `json:"code"`
	Flag *string `json:"flag"`
}

type Season struct {
	Year    int    `json:"year"`
	Start   string `json:"start"`
	End     string `json:"end"`
	Current bool   `json:"current"`
}

// LeagueEntry is one item of the /leagues payload.
type LeagueEntry struct {
	League  League   `json:"league"`
	Country Country  `json:"country"`
	Seasons []Season `json:"seasons"`
}

type TeamRef struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Logo   string `json:"logo"`
	Winner *bool  `json:"winner,omitempty"`
}

type GoalTally struct {
	For     int `json:"for"`
	Against int `json:"against"`
}

type RecordLine struct {
	Played int       `json:"played"`
	Win    int       `json:"win"`
	Draw   int       `json:"draw"`
	Lose   int       `json:"lose"`
	Goals  GoalTally `json:"goals"`
}

// StandingEntry is one team row of a league table.
type StandingEntry struct {
	Rank        int        `json:"rank"`
	Team        TeamRef    `json:"team"`
	Points      int        `json:"points"`
	GoalsDiff   int        `json:"goalsDiff"`
	Group       string     `json:"group,omitempty"`
	Form        string     `json:"form,omitempty"`
	Status      string     `json:"status,omitempty"`
	Description *string    `json:"description,omitempty"`
	All         RecordLine `json:"all"`
	Home        RecordLine `json:"home"`
	Away        RecordLine `json:"away"`
	Update      string     `json:"update,omitempty"`
}

type StandingsLeague struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Country   string    `json:"country"`
	Logo      string    `json:"logo"`
	Flag      *string   `json:"flag"`
	Season    int       `json:"season"`
	Standings Standings `json:"standings"`
}

// StandingsResult carries league metadata together with its table.
type StandingsResult struct {
	League StandingsLeague `json:"league"`
}

type FixtureStatus struct {
	Long    string `json:"long"`
	Short   string `json:"short"`
	Elapsed *int   `json:"elapsed"`
}

type FixtureInfo struct {
	ID        int           `json:"id"`
	Referee   *string       `json:"referee"`
	Timezone  string        `json:"timezone"`
	Date      time.Time     `json:"date"`
	Timestamp int64         `json:"timestamp"`
	Status    FixtureStatus `json:"status"`
}

type FixtureLeague struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Season int    `json:"season"`
	Round  string `json:"round"`
}

type FixtureTeams struct {
	Home TeamRef `json:"home"`
	Away TeamRef `json:"away"`
}

type FixtureGoals struct {
	Home *int `json:"home"`
	Away *int `json:"away"`
}

// Fixture is a single match as reported by the provider.
type Fixture struct {
	Fixture FixtureInfo   `json:"fixture"`
	League  FixtureLeague `json:"league"`
	Teams   FixtureTeams  `json:"teams"`
	Goals   FixtureGoals  `json:"goals"`
}

func (f Fixture) Finished() bool {
	return f.Fixture.Status.Short == StatusFullTime
}

// Scoreline reports the final score. Goals of unfinished matches are not
// meaningful, so ok is false unless the match is full time.
func (f Fixture) Scoreline() (home, away int, ok bool) {
	if !f.Finished() || f.Goals.Home == nil || f.Goals.Away == nil {
		return 0, 0, false
	}
	return *f.Goals.Home, *f.Goals.Away, true
}

type HomeAwayTotal struct {
	Home  *int `json:"home"`
	Away  *int `json:"away"`
	Total *int `json:"total"`
}

type HomeAwayAverage struct {
	Home  string `json:"home"`
	Away  string `json:"away"`
	Total string `json:"total"`
}

type GoalSplit struct {
	Total   HomeAwayTotal   `json:"total"`
	Average HomeAwayAverage `json:"average"`
}

type TeamFixtureCounts struct {
	Played HomeAwayTotal `json:"played"`
	Wins   HomeAwayTotal `json:"wins"`
	Draws  HomeAwayTotal `json:"draws"`
	Loses  HomeAwayTotal `json:"loses"`
}

type TeamGoals struct {
	For     GoalSplit `json:"for"`
	Against GoalSplit `json:"against"`
}

type Streak struct {
	Wins  int `json:"wins"`
	Draws int `json:"draws"`
	Loses int `json:"loses"`
}

type Biggest struct {
	Streak Streak `json:"streak"`
}

type StatisticsLeague struct {
	ID      int     `json:"id"`
	Name    string  `json:"name"`
	Country string  `json:"country"`
	Logo    string  `json:"logo"`
	Flag    *string `json:"flag"`
	Season  int     `json:"season"`
}

// TeamStatistics aggregates one team's record within a league season.
type TeamStatistics struct {
	League        StatisticsLeague  `json:"league"`
	Team          TeamRef           `json:"team"`
	Form          string            `json:"form"`
	Fixtures      TeamFixtureCounts `json:"fixtures"`
	Goals         TeamGoals         `json:"goals"`
	Biggest       Biggest           `json:"biggest"`
	CleanSheet    HomeAwayTotal     `json:"clean_sheet"`
	FailedToScore HomeAwayTotal     `json:"failed_to_score"`
}
