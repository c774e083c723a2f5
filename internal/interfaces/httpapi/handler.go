package httpapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/futables/internal/domain/football"
	"github.com/riskibarqy/futables/internal/platform/logging"
	"github.com/riskibarqy/futables/internal/usecase"
)

type Handler struct {
	dashboardService *usecase.DashboardService
	logger           *logging.Logger
	validator        *validator.Validate
}

func NewHandler(dashboardService *usecase.DashboardService, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		dashboardService: dashboardService,
		logger:           logger,
		validator:        validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) ListLeagues(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListLeagues")
	defer span.End()

	params := leagueListParams{Type: r.URL.Query().Get("type")}
	if err := h.validate(ctx, params); err != nil {
		writeError(ctx, w, err)
		return
	}

	items, err := h.dashboardService.ListLeagueOptions(ctx, football.LeagueType(params.Type))
	if err != nil {
		h.logFailure(ctx, "list leagues failed", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, listDTO[usecase.LeagueOption]{Items: items, TotalItems: len(items)})
}

func (h *Handler) GetStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetStandings")
	defer span.End()

	params, err := parseSeasonParams(r)
	if err == nil {
		err = h.validate(ctx, params)
	}
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	table, err := h.dashboardService.GetStandings(ctx, params.LeagueID, params.Season)
	if err != nil {
		h.logFailure(ctx, "get standings failed", err, "league_id", params.LeagueID, "season", params.Season)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, table)
}

func (h *Handler) ListRecentFixtures(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListRecentFixtures")
	defer span.End()

	params, err := parseFixtureParams(r)
	if err == nil {
		err = h.validate(ctx, params)
	}
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	list, err := h.dashboardService.GetRecentFixtures(ctx, params.LeagueID, params.Season, params.Last)
	if err != nil {
		h.logFailure(ctx, "list recent fixtures failed", err, "league_id", params.LeagueID, "season", params.Season)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, list)
}

func (h *Handler) GetTeamStatistics(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeamStatistics")
	defer span.End()

	params, err := parseTeamParams(r)
	if err == nil {
		err = h.validate(ctx, params)
	}
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	stats, err := h.dashboardService.GetTeamStatistics(ctx, params.LeagueID, params.TeamID, params.Season)
	if err != nil {
		h.logFailure(ctx, "get team statistics failed", err,
			"league_id", params.LeagueID,
			"team_id", params.TeamID,
			"season", params.Season,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, stats)
}

func (h *Handler) GetOverview(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetOverview")
	defer span.End()

	params, err := parseFixtureParams(r)
	if err == nil {
		err = h.validate(ctx, params)
	}
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	overview, err := h.dashboardService.GetOverview(ctx, params.LeagueID, params.Season, params.Last)
	if err != nil {
		h.logFailure(ctx, "get overview failed", err, "league_id", params.LeagueID, "season", params.Season)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, overview)
}

func (h *Handler) RefreshCache(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RefreshCache")
	defer span.End()

	removed := h.dashboardService.Refresh(ctx)
	writeSuccess(ctx, w, http.StatusOK, refreshDTO{Cleared: removed})
}

func (h *Handler) RefreshLeagueCache(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RefreshLeagueCache")
	defer span.End()

	params, err := parseLeagueParams(r)
	if err == nil {
		err = h.validate(ctx, params)
	}
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	removed, err := h.dashboardService.RefreshLeague(ctx, params.LeagueID)
	if err != nil {
		h.logFailure(ctx, "refresh league cache failed", err, "league_id", params.LeagueID)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, refreshDTO{Cleared: removed})
}
