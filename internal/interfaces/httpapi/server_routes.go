package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerFootballRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/leagues", handler.ListLeagues)
	mux.HandleFunc("GET /v1/leagues/{leagueID}/standings", handler.GetStandings)
	mux.HandleFunc("GET /v1/leagues/{leagueID}/fixtures", handler.ListRecentFixtures)
	mux.HandleFunc("GET /v1/leagues/{leagueID}/teams/{teamID}/statistics", handler.GetTeamStatistics)
	mux.HandleFunc("GET /v1/leagues/{leagueID}/overview", handler.GetOverview)
}

func registerCacheRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /v1/cache/refresh", handler.RefreshCache)
	mux.HandleFunc("POST /v1/leagues/{leagueID}/cache/refresh", handler.RefreshLeagueCache)
}
