package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/futables/internal/usecase"
)

type leagueListParams struct {
	Type string `validate:"omitempty,oneof=League Cup"`
}

type leagueParams struct {
	LeagueID int `validate:"required,gt=0"`
}

type seasonParams struct {
	LeagueID int `validate:"required,gt=0"`
	Season   int `validate:"omitempty,gte=1900,lte=2100"`
}

type fixtureParams struct {
	LeagueID int `validate:"required,gt=0"`
	Season   int `validate:"omitempty,gte=1900,lte=2100"`
	Last     int `validate:"omitempty,gte=1,lte=99"`
}

type teamParams struct {
	LeagueID int `validate:"required,gt=0"`
	TeamID   int `validate:"required,gt=0"`
	Season   int `validate:"omitempty,gte=1900,lte=2100"`
}

func parseLeagueParams(r *http.Request) (leagueParams, error) {
	leagueID, err := pathInt(r, "leagueID")
	if err != nil {
		return leagueParams{}, err
	}
	return leagueParams{LeagueID: leagueID}, nil
}

func parseSeasonParams(r *http.Request) (seasonParams, error) {
	leagueID, err := pathInt(r, "leagueID")
	if err != nil {
		return seasonParams{}, err
	}
	season, err := queryInt(r, "season")
	if err != nil {
		return seasonParams{}, err
	}
	return seasonParams{LeagueID: leagueID, Season: season}, nil
}

func parseFixtureParams(r *http.Request) (fixtureParams, error) {
	base, err := parseSeasonParams(r)
	if err != nil {
		return fixtureParams{}, err
	}
	last, err := queryInt(r, "last")
	if err != nil {
		return fixtureParams{}, err
	}
	return fixtureParams{LeagueID: base.LeagueID, Season: base.Season, Last: last}, nil
}

func parseTeamParams(r *http.Request) (teamParams, error) {
	base, err := parseSeasonParams(r)
	if err != nil {
		return teamParams{}, err
	}
	teamID, err := pathInt(r, "teamID")
	if err != nil {
		return teamParams{}, err
	}
	return teamParams{LeagueID: base.LeagueID, TeamID: teamID, Season: base.Season}, nil
}

func pathInt(r *http.Request, name string) (int, error) {
	raw := strings.TrimSpace(r.PathValue(name))
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer, got %q", usecase.ErrInvalidInput, name, raw)
	}
	return value, nil
}

// queryInt returns 0 when the parameter is absent.
func queryInt(r *http.Request, name string) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return 0, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer, got %q", usecase.ErrInvalidInput, name, raw)
	}
	return value, nil
}

func (h *Handler) validate(ctx context.Context, params any) error {
	err := h.validator.StructCtx(ctx, params)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return fmt.Errorf("%w: %s failed %s validation", usecase.ErrInvalidInput, lowerFirst(fe.Field()), fe.Tag())
	}
	return fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err)
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
