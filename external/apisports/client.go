package apisports

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/futables/internal/domain/football"
	"github.com/valyala/bytebufferpool"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	DefaultBaseURL = "https://v3.football.api-sports.io"

	headerAPIKey = "x-rapidapi-key"
	headerHost   = "x-rapidapi-host"
	maxBodyBytes = 6 << 20

	defaultTimeout = 20 * time.Second
)

type ClientConfig struct {
	HTTPClient *http.Client
	BaseURL    string
	// Host is sent as the host identifier header. Defaults to the BaseURL host.
	Host    string
	APIKey  string
	Timeout time.Duration
}

// Client is the API-Sports football v3 access layer. It does not retry,
// log, or fall back; callers decide what to do with each outcome.
type Client struct {
	httpClient *http.Client
	baseURL    string
	host       string
	apiKey     string
}

var _ football.Provider = (*Client)(nil)

func NewClient(cfg ClientConfig) *Client {
	var httpClient *http.Client
	if cfg.HTTPClient != nil {
		// Shallow copy so the caller's client keeps its own timeout.
		clone := *cfg.HTTPClient
		httpClient = &clone
	} else {
		httpClient = &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)}
	}
	if cfg.Timeout > 0 {
		httpClient.Timeout = cfg.Timeout
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = defaultTimeout
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	host := strings.TrimSpace(cfg.Host)
	if host == "" {
		if parsed, err := url.Parse(baseURL); err == nil {
			host = parsed.Host
		}
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		host:       host,
		apiKey:     strings.TrimSpace(cfg.APIKey),
	}
}

func (c *Client) ListLeagues(ctx context.Context) ([]football.LeagueEntry, bool, error) {
	var out []football.LeagueEntry
	found, err := c.doJSON(ctx, "/leagues", nil, &out)
	if err != nil || !found {
		return nil, false, err
	}
	return out, true, nil
}

func (c *Client) GetStandings(ctx context.Context, leagueID, season int) (football.StandingsResult, bool, error) {
	query := url.Values{}
	query.Set("league", strconv.Itoa(leagueID))
	query.Set("season", strconv.Itoa(football.ResolveSeason(season)))

	var out []football.StandingsResult
	found, err := c.doJSON(ctx, "/standings", query, &out)
	if err != nil || !found {
		return football.StandingsResult{}, false, err
	}
	return out[0], true, nil
}

func (c *Client) GetFixtures(ctx context.Context, leagueID, season, limit int) ([]football.Fixture, bool, error) {
	query := url.Values{}
	query.Set("league", strconv.Itoa(leagueID))
	query.Set("season", strconv.Itoa(football.ResolveSeason(season)))
	query.Set("last", strconv.Itoa(football.ResolveFixtureLimit(limit)))

	var out []football.Fixture
	found, err := c.doJSON(ctx, "/fixtures", query, &out)
	if err != nil || !found {
		return nil, false, err
	}
	return out, true, nil
}

func (c *Client) GetTeamStatistics(ctx context.Context, leagueID, teamID, season int) (football.TeamStatistics, bool, error) {
	query := url.Values{}
	query.Set("league", strconv.Itoa(leagueID))
	query.Set("team", strconv.Itoa(teamID))
	query.Set("season", strconv.Itoa(football.ResolveSeason(season)))

	var out football.TeamStatistics
	found, err := c.doJSON(ctx, "/teams/statistics", query, &out)
	if err != nil || !found {
		return football.TeamStatistics{}, false, err
	}
	return out, true, nil
}

type envelope struct {
	Results  *int            `json:"results"`
	Errors   json.RawMessage `json:"errors"`
	Response json.RawMessage `json:"response"`
}

// doJSON fetches path and decodes the envelope's response into target.
// found is false when the provider reports zero results.
func (c *Client) doJSON(ctx context.Context, path string, query url.Values, target any) (bool, error) {
	raw, err := c.fetch(ctx, path, query)
	if err != nil {
		return false, err
	}

	var env envelope
	if err := sonic.Unmarshal(raw, &env); err != nil {
		return false, malformedError(err, "decode envelope path=%s", path)
	}
	if hasProviderErrors(env.Errors) {
		return false, upstreamError(http.StatusOK, c.redact(abbreviateBody(env.Errors)))
	}
	if env.Results == nil {
		return false, malformedError(nil, "envelope has no results field path=%s", path)
	}
	// Zero results is absence whatever response holds, including nothing.
	if *env.Results == 0 {
		return false, nil
	}
	if isAbsentJSON(env.Response) {
		return false, malformedError(nil, "envelope has no response field path=%s", path)
	}
	if isEmptyArray(env.Response) {
		return false, malformedError(nil, "envelope reports results=%d with an empty response path=%s", *env.Results, path)
	}

	if err := sonic.Unmarshal(env.Response, target); err != nil {
		return false, malformedError(err, "decode response payload path=%s", path)
	}
	return true, nil
}

func (c *Client) fetch(ctx context.Context, path string, query url.Values) ([]byte, error) {
	fullURL := c.baseURL + path
	if encoded := query.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, crerr.Wrap(err, "build request")
	}
	req.Header.Set("accept", "application/json")
	req.Header.Set(headerAPIKey, c.apiKey)
	req.Header.Set(headerHost, c.host)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, transportError(err, "send request path=%s", path)
	}
	defer resp.Body.Close()

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	if _, err := buf.ReadFrom(io.LimitReader(resp.Body, maxBodyBytes)); err != nil {
		return nil, transportError(err, "read response body path=%s", path)
	}
	raw := append([]byte(nil), buf.B...)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, upstreamError(resp.StatusCode, c.redact(abbreviateBody(raw)))
	}
	return raw, nil
}

func (c *Client) redact(value string) string {
	if c.apiKey == "" {
		return value
	}
	return strings.ReplaceAll(value, c.apiKey, "REDACTED")
}

// hasProviderErrors reports whether the envelope's errors field is a
// non-empty array or object. API-Sports reports bad keys and bad
// parameters this way with HTTP 200.
func hasProviderErrors(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	if isAbsentJSON(trimmed) {
		return false
	}
	switch trimmed[0] {
	case '[':
		var items []any
		if err := sonic.Unmarshal(trimmed, &items); err != nil {
			return true
		}
		return len(items) > 0
	case '{':
		var fields map[string]any
		if err := sonic.Unmarshal(trimmed, &fields); err != nil {
			return true
		}
		return len(fields) > 0
	default:
		return false
	}
}

func isAbsentJSON(raw []byte) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

func isEmptyArray(raw []byte) bool {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) < 2 || trimmed[0] != '[' {
		return false
	}
	return len(bytes.TrimSpace(trimmed[1:len(trimmed)-1])) == 0
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) > 512 {
		return text[:512] + "..."
	}
	return text
}
