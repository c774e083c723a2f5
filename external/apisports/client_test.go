package apisports

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/riskibarqy/futables/internal/domain/football"
)

type recordedRequest struct {
	path   string
	query  map[string]string
	key    string
	host   string
	accept string
}

type fakeProvider struct {
	mu       sync.Mutex
	requests []recordedRequest
	status   int
	body     func(path string) string
}

func (f *fakeProvider) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	query := make(map[string]string)
	for key := range r.URL.Query() {
		query[key] = r.URL.Query().Get(key)
	}

	f.mu.Lock()
	f.requests = append(f.requests, recordedRequest{
		path:   r.URL.Path,
		query:  query,
		key:    r.Header.Get("x-rapidapi-key"),
		host:   r.Header.Get("x-rapidapi-host"),
		accept: r.Header.Get("accept"),
	})
	f.mu.Unlock()

	status := f.status
	if status == 0 {
		status = http.StatusOK
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(f.body(r.URL.Path)))
}

func (f *fakeProvider) lastRequest(t *testing.T) recordedRequest {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.requests) == 0 {
		t.Fatalf("provider received no request")
	}
	return f.requests[len(f.requests)-1]
}

func newTestClient(t *testing.T, fake *fakeProvider) *Client {
	t.Helper()
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	return NewClient(ClientConfig{
		HTTPClient: srv.Client(),
		BaseURL:    srv.URL,
		Host:       "v3.football.api-sports.io",
		APIKey:     "secret-key",
	})
}

func staticBody(body string) func(string) string {
	return func(string) string { return body }
}

// operation runs one access-layer call and reports its found flag and payload size.
type operation struct {
	name string
	call func(ctx context.Context, c *Client) (found bool, size int, err error)
}

func allOperations() []operation {
	return []operation{
		{
			name: "ListLeagues",
			call: func(ctx context.Context, c *Client) (bool, int, error) {
				out, found, err := c.ListLeagues(ctx)
				return found, len(out), err
			},
		},
		{
			name: "GetStandings",
			call: func(ctx context.Context, c *Client) (bool, int, error) {
				out, found, err := c.GetStandings(ctx, 39, 2023)
				return found, out.League.Standings.Len(), err
			},
		},
		{
			name: "GetFixtures",
			call: func(ctx context.Context, c *Client) (bool, int, error) {
				out, found, err := c.GetFixtures(ctx, 39, 2023, 10)
				return found, len(out), err
			},
		},
		{
			name: "GetTeamStatistics",
			call: func(ctx context.Context, c *Client) (bool, int, error) {
				out, found, err := c.GetTeamStatistics(ctx, 39, 42, 2023)
				size := 0
				if out.Team.ID != 0 {
					size = 1
				}
				return found, size, err
			},
		},
	}
}

func TestClient_ZeroResultsIsAbsentForEveryOperation(t *testing.T) {
	t.Parallel()

	bodies := []string{
		`{"results":0,"errors":[],"response":[]}`,
		`{"results":0,"errors":[],"response":[{"league":{"id":1}}]}`,
		`{"results":0,"response":{"team":{"id":42}}}`,
		`{"results":0,"response":null}`,
		`{"results":0}`,
	}

	for _, op := range allOperations() {
		for idx, body := range bodies {
			op, body := op, body
			t.Run(fmt.Sprintf("%s/%d", op.name, idx), func(t *testing.T) {
				t.Parallel()

				client := newTestClient(t, &fakeProvider{body: staticBody(body)})
				found, size, err := op.call(context.Background(), client)
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				if found {
					t.Fatalf("expected absence for zero results")
				}
				if size != 0 {
					t.Fatalf("expected empty value with absence, got size=%d", size)
				}
			})
		}
	}
}

func TestClient_InvalidJSONIsMalformedForEveryOperation(t *testing.T) {
	t.Parallel()

	for _, op := range allOperations() {
		op := op
		t.Run(op.name, func(t *testing.T) {
			t.Parallel()

			client := newTestClient(t, &fakeProvider{body: staticBody(`<html>bad gateway</html>`)})
			_, _, err := op.call(context.Background(), client)
			if !errors.Is(err, ErrMalformedResponse) {
				t.Fatalf("expected ErrMalformedResponse, got %v", err)
			}
			if errors.Is(err, ErrUpstream) || errors.Is(err, ErrTransport) {
				t.Fatalf("malformed response must not be reported as another failure: %v", err)
			}
		})
	}
}

func TestClient_MissingEnvelopeFieldsAreMalformed(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"no results":    `{"response":[]}`,
		"no response":   `{"results":3}`,
		"null response": `{"results":3,"response":null}`,
		"wrong shape":   `{"results":1,"response":"not-a-list"}`,
	}

	for name, body := range cases {
		body := body
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			client := newTestClient(t, &fakeProvider{body: staticBody(body)})
			_, _, err := client.ListLeagues(context.Background())
			if !errors.Is(err, ErrMalformedResponse) {
				t.Fatalf("expected ErrMalformedResponse, got %v", err)
			}
		})
	}
}

func TestClient_NonSuccessStatusIsUpstreamError(t *testing.T) {
	t.Parallel()

	fake := &fakeProvider{
		status: http.StatusInternalServerError,
		body:   staticBody(`{"message":"boom for key secret-key"}`),
	}
	client := newTestClient(t, fake)

	_, _, err := client.GetFixtures(context.Background(), 39, 2023, 5)
	if !errors.Is(err, ErrUpstream) {
		t.Fatalf("expected ErrUpstream, got %v", err)
	}
	code, ok := StatusCode(err)
	if !ok || code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d ok=%v", code, ok)
	}
	if strings.Contains(err.Error(), "secret-key") {
		t.Fatalf("api key leaked into error: %v", err)
	}
}

func TestClient_ProviderErrorsFieldIsUpstreamError(t *testing.T) {
	t.Parallel()

	body := `{"results":0,"errors":{"token":"Error/Missing application key."},"response":[]}`
	client := newTestClient(t, &fakeProvider{body: staticBody(body)})

	_, found, err := client.ListLeagues(context.Background())
	if !errors.Is(err, ErrUpstream) {
		t.Fatalf("expected ErrUpstream, got %v", err)
	}
	if found {
		t.Fatalf("failed request must not report found")
	}
}

func TestClient_UnreachableHostIsTransportFailure(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.NotFoundHandler())
	baseURL := srv.URL
	srv.Close()

	client := NewClient(ClientConfig{BaseURL: baseURL, APIKey: "secret-key"})
	_, _, err := client.ListLeagues(context.Background())
	if !errors.Is(err, ErrTransport) {
		t.Fatalf("expected ErrTransport, got %v", err)
	}
}

func TestClient_SendsAuthHeadersAndQuery(t *testing.T) {
	t.Parallel()

	fake := &fakeProvider{body: staticBody(`{"results":0,"response":[]}`)}
	client := newTestClient(t, fake)

	if _, _, err := client.GetTeamStatistics(context.Background(), 140, 541, 2022); err != nil {
		t.Fatalf("get team statistics: %v", err)
	}

	req := fake.lastRequest(t)
	if req.path != "/teams/statistics" {
		t.Fatalf("unexpected path %q", req.path)
	}
	if req.key != "secret-key" {
		t.Fatalf("unexpected api key header %q", req.key)
	}
	if req.host != "v3.football.api-sports.io" {
		t.Fatalf("unexpected host header %q", req.host)
	}
	if req.accept != "application/json" {
		t.Fatalf("unexpected accept header %q", req.accept)
	}
	want := map[string]string{"league": "140", "team": "541", "season": "2022"}
	for key, value := range want {
		if req.query[key] != value {
			t.Fatalf("query %s=%q, want %q", key, req.query[key], value)
		}
	}
}

func TestClient_AppliesSeasonAndLimitDefaults(t *testing.T) {
	t.Parallel()

	fake := &fakeProvider{body: staticBody(`{"results":0,"response":[]}`)}
	client := newTestClient(t, fake)

	if _, _, err := client.GetFixtures(context.Background(), 39, 0, 0); err != nil {
		t.Fatalf("get fixtures: %v", err)
	}
	req := fake.lastRequest(t)
	if req.path != "/fixtures" {
		t.Fatalf("unexpected path %q", req.path)
	}
	if req.query["season"] != "2023" {
		t.Fatalf("expected default season 2023, got %q", req.query["season"])
	}
	if req.query["last"] != "10" {
		t.Fatalf("expected default last 10, got %q", req.query["last"])
	}
}

func TestClient_HostHeaderDefaultsToBaseURLHost(t *testing.T) {
	t.Parallel()

	client := NewClient(ClientConfig{BaseURL: "https://v3.football.api-sports.io/", APIKey: "k"})
	if client.host != "v3.football.api-sports.io" {
		t.Fatalf("unexpected default host %q", client.host)
	}
	if client.baseURL != "https://v3.football.api-sports.io" {
		t.Fatalf("unexpected base url %q", client.baseURL)
	}
}

func TestClient_ListLeaguesReturnsPayloadUnmodified(t *testing.T) {
	t.Parallel()

	body := `{"get":"leagues","parameters":[],"errors":[],"results":2,"paging":{"current":1,"total":1},"response":[
		{"league":{"id":39,"name":"Premier League","type":"League","logo":"https://media.api-sports.io/football/leagues/39.png"},"country":{"name":"England","code":"GB","flag":"https://media.api-sports.io/flags/gb.svg"},"seasons":[{"year":2023,"start":"2023-08-11","end":"2024-05-19","current":true}]},
		{"league":{"id":45,"name":"FA Cup","type":"Cup","logo":"https://media.api-sports.io/football/leagues/45.png"},"country":{"name":"England","code":"GB","flag":null},"seasons":[]}
	]}`
	client := newTestClient(t, &fakeProvider{body: staticBody(body)})

	leagues, found, err := client.ListLeagues(context.Background())
	if err != nil {
		t.Fatalf("list leagues: %v", err)
	}
	if !found {
		t.Fatalf("expected leagues to be found")
	}
	if len(leagues) != 2 {
		t.Fatalf("expected 2 leagues, got=%d", len(leagues))
	}
	if leagues[0].League.Type != football.LeagueTypeLeague || leagues[1].League.Type != football.LeagueTypeCup {
		t.Fatalf("unexpected league types: %q %q", leagues[0].League.Type, leagues[1].League.Type)
	}
	if !leagues[0].Seasons[0].Current || leagues[0].Seasons[0].Year != 2023 {
		t.Fatalf("unexpected season: %+v", leagues[0].Seasons[0])
	}
	if leagues[1].Country.Flag != nil {
		t.Fatalf("expected null flag to stay nil")
	}
}

func TestClient_ListLeaguesEmptyEnvelopeIsAbsent(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, &fakeProvider{body: staticBody(`{"results":0,"response":[]}`)})
	leagues, found, err := client.ListLeagues(context.Background())
	if err != nil {
		t.Fatalf("list leagues: %v", err)
	}
	if found || leagues != nil {
		t.Fatalf("expected absence, got found=%v leagues=%v", found, leagues)
	}
}

func TestClient_GetStandingsPremierLeagueExample(t *testing.T) {
	t.Parallel()

	body := `{"results":1,"response":[{"league":{"name":"Premier League","standings":[[{"rank":1,"team":{"name":"Arsenal"},"points":89,"goalsDiff":50,"all":{"played":38,"win":28,"draw":5,"lose":5,"goals":{"for":88,"against":38}}}]]}}]}`
	fake := &fakeProvider{body: staticBody(body)}
	client := newTestClient(t, fake)

	result, found, err := client.GetStandings(context.Background(), 39, 2023)
	if err != nil {
		t.Fatalf("get standings: %v", err)
	}
	if !found {
		t.Fatalf("expected standings to be found")
	}
	if result.League.Name != "Premier League" {
		t.Fatalf("unexpected league name %q", result.League.Name)
	}
	groups := result.League.Standings.Groups()
	if len(groups) != 1 || len(groups[0]) != 1 {
		t.Fatalf("expected one group with one entry, got %+v", groups)
	}
	row := groups[0][0]
	if row.Team.Name != "Arsenal" || row.Rank != 1 || row.Points != 89 {
		t.Fatalf("unexpected row: %+v", row)
	}
	if row.GoalsDiff != 50 || row.All.Played != 38 || row.All.Goals.For != 88 || row.All.Goals.Against != 38 {
		t.Fatalf("unexpected row totals: %+v", row)
	}

	req := fake.lastRequest(t)
	if req.path != "/standings" || req.query["league"] != "39" || req.query["season"] != "2023" {
		t.Fatalf("unexpected request: %+v", req)
	}
}

func TestClient_GetStandingsDetectsTableShape(t *testing.T) {
	t.Parallel()

	flat := `{"results":1,"response":[{"league":{"id":71,"name":"Serie A","standings":[{"rank":1,"team":{"name":"Palmeiras"},"points":70},{"rank":2,"team":{"name":"Gremio"},"points":68}]}}]}`
	grouped := `{"results":1,"response":[{"league":{"id":2,"name":"UEFA Champions League","standings":[[{"rank":1,"team":{"name":"Bayern"}}],[{"rank":1,"team":{"name":"Arsenal"}}],[{"rank":1,"team":{"name":"Real Madrid"}}]]}}]}`

	t.Run("flat", func(t *testing.T) {
		t.Parallel()

		client := newTestClient(t, &fakeProvider{body: staticBody(flat)})
		result, found, err := client.GetStandings(context.Background(), 71, 2023)
		if err != nil || !found {
			t.Fatalf("get standings: found=%v err=%v", found, err)
		}
		if result.League.Standings.IsGrouped() {
			t.Fatalf("expected single-group standings")
		}
		if got := len(result.League.Standings.Flat()); got != 2 {
			t.Fatalf("expected 2 rows, got=%d", got)
		}
	})

	t.Run("grouped", func(t *testing.T) {
		t.Parallel()

		client := newTestClient(t, &fakeProvider{body: staticBody(grouped)})
		result, found, err := client.GetStandings(context.Background(), 2, 2023)
		if err != nil || !found {
			t.Fatalf("get standings: found=%v err=%v", found, err)
		}
		if !result.League.Standings.IsGrouped() {
			t.Fatalf("expected multi-group standings")
		}
		groups := result.League.Standings.Groups()
		names := []string{groups[0][0].Team.Name, groups[1][0].Team.Name, groups[2][0].Team.Name}
		if strings.Join(names, ",") != "Bayern,Arsenal,Real Madrid" {
			t.Fatalf("group order not preserved: %v", names)
		}
	})
}

func TestClient_GetFixturesPreservesFifteenRecords(t *testing.T) {
	t.Parallel()

	items := make([]string, 0, 15)
	for i := 0; i < 15; i++ {
		status, goals := "FT", fmt.Sprintf(`{"home":%d,"away":%d}`, i%4, i%3)
		if i == 14 {
			status, goals = "NS", `{"home":null,"away":null}`
		}
		items = append(items, fmt.Sprintf(
			`{"fixture":{"id":%d,"date":"2024-05-19T15:00:00+00:00","status":{"long":"Match Finished","short":%q}},"teams":{"home":{"name":"Home %d","logo":"h.png"},"away":{"name":"Away %d","logo":"a.png"}},"goals":%s}`,
			1000+i, status, i, i, goals,
		))
	}
	body := fmt.Sprintf(`{"results":15,"response":[%s]}`, strings.Join(items, ","))

	fake := &fakeProvider{body: staticBody(body)}
	client := newTestClient(t, fake)

	fixtures, found, err := client.GetFixtures(context.Background(), 39, 2023, 15)
	if err != nil {
		t.Fatalf("get fixtures: %v", err)
	}
	if !found {
		t.Fatalf("expected fixtures to be found")
	}
	if len(fixtures) != 15 {
		t.Fatalf("expected 15 fixtures, got=%d", len(fixtures))
	}
	if got := fake.lastRequest(t).query["last"]; got != "15" {
		t.Fatalf("expected last=15, got %q", got)
	}

	for i, fixture := range fixtures {
		if fixture.Teams.Home.Name != fmt.Sprintf("Home %d", i) || fixture.Teams.Away.Name != fmt.Sprintf("Away %d", i) {
			t.Fatalf("fixture %d team names not preserved: %+v", i, fixture.Teams)
		}
		if i == 14 {
			if fixture.Fixture.Status.Short != "NS" || fixture.Goals.Home != nil || fixture.Goals.Away != nil {
				t.Fatalf("unplayed fixture mangled: %+v", fixture)
			}
			continue
		}
		if fixture.Fixture.Status.Short != "FT" {
			t.Fatalf("fixture %d status not preserved: %q", i, fixture.Fixture.Status.Short)
		}
		if fixture.Goals.Home == nil || *fixture.Goals.Home != i%4 || fixture.Goals.Away == nil || *fixture.Goals.Away != i%3 {
			t.Fatalf("fixture %d goals not preserved: %+v", i, fixture.Goals)
		}
	}
	if fixtures[0].Fixture.Date.IsZero() {
		t.Fatalf("fixture date not decoded")
	}
}

func TestClient_GetTeamStatisticsDecodesObjectPayload(t *testing.T) {
	t.Parallel()

	body := `{"results":11,"response":{"league":{"id":39,"name":"Premier League","season":2023},"team":{"id":42,"name":"Arsenal","logo":"a.png"},"form":"WWDLW","fixtures":{"played":{"home":19,"away":19,"total":38},"wins":{"home":15,"away":13,"total":28},"draws":{"home":2,"away":3,"total":5},"loses":{"home":2,"away":3,"total":5}},"goals":{"for":{"total":{"home":48,"away":40,"total":88},"average":{"home":"2.5","away":"2.1","total":"2.3"}},"against":{"total":{"home":16,"away":22,"total":38},"average":{"home":"0.8","away":"1.2","total":"1.0"}}},"biggest":{"streak":{"wins":8,"draws":1,"loses":1}},"clean_sheet":{"home":10,"away":8,"total":18},"failed_to_score":{"home":1,"away":3,"total":4}}}`
	client := newTestClient(t, &fakeProvider{body: staticBody(body)})

	stats, found, err := client.GetTeamStatistics(context.Background(), 39, 42, 2023)
	if err != nil || !found {
		t.Fatalf("get team statistics: found=%v err=%v", found, err)
	}
	if stats.Team.Name != "Arsenal" || stats.Form != "WWDLW" {
		t.Fatalf("unexpected team stats header: %+v", stats.Team)
	}
	if stats.Fixtures.Wins.Total == nil || *stats.Fixtures.Wins.Total != 28 {
		t.Fatalf("unexpected wins: %+v", stats.Fixtures.Wins)
	}
	if stats.Goals.For.Average.Total != "2.3" {
		t.Fatalf("unexpected goals average: %q", stats.Goals.For.Average.Total)
	}
	if stats.Biggest.Streak.Wins != 8 || stats.CleanSheet.Total == nil || *stats.CleanSheet.Total != 18 {
		t.Fatalf("unexpected streak or clean sheets: %+v %+v", stats.Biggest, stats.CleanSheet)
	}
}

func TestClient_EmptyResponseWithResultsIsMalformedForEveryOperation(t *testing.T) {
	t.Parallel()

	for _, op := range allOperations() {
		op := op
		t.Run(op.name, func(t *testing.T) {
			t.Parallel()

			client := newTestClient(t, &fakeProvider{body: staticBody(`{"results":2,"errors":[],"response":[ ]}`)})
			found, size, err := op.call(context.Background(), client)
			if !errors.Is(err, ErrMalformedResponse) {
				t.Fatalf("expected ErrMalformedResponse, got %v", err)
			}
			if found || size != 0 {
				t.Fatalf("expected no payload with a malformed reply, got found=%v size=%d", found, size)
			}
		})
	}
}

func TestNewClient_DoesNotMutateCallerHTTPClient(t *testing.T) {
	t.Parallel()

	shared := &http.Client{Timeout: 3 * time.Second}
	client := NewClient(ClientConfig{HTTPClient: shared, Timeout: 7 * time.Second})

	if shared.Timeout != 3*time.Second {
		t.Fatalf("caller client timeout changed to %s", shared.Timeout)
	}
	if client.httpClient == shared {
		t.Fatalf("expected a private copy of the caller client")
	}
	if client.httpClient.Timeout != 7*time.Second {
		t.Fatalf("expected configured timeout 7s, got %s", client.httpClient.Timeout)
	}

	untimed := NewClient(ClientConfig{HTTPClient: &http.Client{}})
	if untimed.httpClient.Timeout != defaultTimeout {
		t.Fatalf("expected default timeout %s, got %s", defaultTimeout, untimed.httpClient.Timeout)
	}
}
