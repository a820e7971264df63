package goalserve

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/goalserve-heatmap/internal/domain/match"
	"github.com/riskibarqy/goalserve-heatmap/internal/platform/resilience"
	"github.com/riskibarqy/goalserve-heatmap/internal/usecase"
	"github.com/stretchr/testify/require"
)

const testAPIKey = "secret-key-123"

// newFeedServer serves the given bodies keyed by feed path (without the api key prefix).
func newFeedServer(t *testing.T, bodies map[string]string) (*httptest.Server, *atomic.Int32) {
	t.Helper()

	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.URL.Query().Get("json") != "1" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		prefix := "/" + testAPIKey + "/"
		if !strings.HasPrefix(r.URL.Path, prefix) {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		body, ok := bodies[strings.TrimPrefix(r.URL.Path, prefix)]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte("feed not found"))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func newTestClient(srv *httptest.Server, breaker resilience.CircuitBreakerConfig) *Client {
	return NewClient(ClientConfig{
		HTTPClient:     srv.Client(),
		BaseURL:        srv.URL,
		APIKey:         testAPIKey,
		Timeout:        2 * time.Second,
		LiveTimeout:    time.Second,
		CircuitBreaker: breaker,
	})
}

func TestClient_FetchRoster(t *testing.T) {
	t.Parallel()

	srv, _ := newFeedServer(t, map[string]string{
		"soccerleague/1204": `{"league":{"@name":"Premier League","team":[
			{"@id":"9002","squad":{"player":[{"@id":"10","@name":"Bukayo Saka"},{"@id":"11"},{"@id":"12","@name":""},{"@id":"13","@name":"  "},{"@name":"No Id"}]}},
			{"@id":"9003","squad":{"player":{"@id":"20","@name":"Morgan Gibbs-White"}}},
			{"@id":"9004","squad":null}
		]}}`,
	})
	client := newTestClient(srv, resilience.CircuitBreakerConfig{})

	got, err := client.FetchRoster(context.Background(), "1204")
	require.NoError(t, err)
	require.Equal(t, "Premier League", got.LeagueName)
	require.Equal(t, map[string]string{
		"10": "Bukayo Saka",
		"11": "Player ID 11",
		"12": "Player ID 12",
		"13": "Player ID 13",
		"20": "Morgan Gibbs-White",
	}, got.Players)
}

func TestClient_FetchRoster_MissingLeagueIsDecodeFailure(t *testing.T) {
	t.Parallel()

	srv, _ := newFeedServer(t, map[string]string{"soccerleague/1204": `{"status":"error"}`})
	client := newTestClient(srv, resilience.CircuitBreakerConfig{})

	_, err := client.FetchRoster(context.Background(), "1204")
	require.Error(t, err)
	require.Equal(t, usecase.KindDecodeFailure, usecase.KindOf(err))
}

func TestClient_FetchFixtures_CurrentAndHistory(t *testing.T) {
	t.Parallel()

	srv, _ := newFeedServer(t, map[string]string{
		"soccerfixtures/leagueid/1204": `{"results":{"tournament":{"@league":"Premier League","week":[
			{"@number":"1","match":[
				{"@id":"3838001","@date":"12.08.2023","@time":"12:30","@status":"FT",
				 "localteam":{"@name":"Arsenal","@score":"9","@ft_score":"2"},
				 "visitorteam":{"@name":"Nottingham","@score":"1"}},
				{"@date":"12.08.2023","localteam":{"@name":"No Id"}}
			]},
			{"@number":"2","match":{"@id":"3838010","localteam":{"@name":"Fulham"}}}
		]}}}`,
		"soccerhistory/leagueid/1204-2022-2023": `{"results":{"tournament":{"@league":"Premier League","match":[
			{"@id":"1","@date":"05.08.2022","@status":"FT","localteam":{"@name":"Crystal Palace","@score":"0"},"visitorteam":{"@name":"Arsenal","@score":"2"}}
		]}}}`,
	})
	client := newTestClient(srv, resilience.CircuitBreakerConfig{})

	current, err := client.FetchFixtures(context.Background(), "1204", "")
	require.NoError(t, err)
	require.Equal(t, "Premier League", current.LeagueName)
	require.Len(t, current.Fixtures, 2)

	first := current.Fixtures[0]
	require.Equal(t, "3838001", first.MatchID)
	require.Equal(t, "2", first.LocalteamScore)
	require.Equal(t, "1", first.VisitorteamScore)
	require.Equal(t, "12.08.2023 - Arsenal 2 vs 1 Nottingham (FT)", first.Display)

	second := current.Fixtures[1]
	require.Equal(t, "N/A", second.Date)
	require.Equal(t, "N/A", second.Time)
	require.Equal(t, "N/A", second.Status)
	require.Equal(t, "N/A", second.VisitorteamName)
	require.Equal(t, "", second.LocalteamScore)

	history, err := client.FetchFixtures(context.Background(), "1204", "2022-2023")
	require.NoError(t, err)
	require.Len(t, history.Fixtures, 1)
	require.Equal(t, "05.08.2022 - Crystal Palace 0 vs 2 Arsenal (FT)", history.Fixtures[0].Display)
}

func TestClient_FetchFixtures_EmptyTournament(t *testing.T) {
	t.Parallel()

	srv, _ := newFeedServer(t, map[string]string{"soccerfixtures/leagueid/1204": `{"results":{}}`})
	client := newTestClient(srv, resilience.CircuitBreakerConfig{})

	got, err := client.FetchFixtures(context.Background(), "1204", "")
	require.NoError(t, err)
	require.Equal(t, "Unknown League", got.LeagueName)
	require.NotNil(t, got.Fixtures)
	require.Empty(t, got.Fixtures)
}

const liveFeedBody = `{"scores":{"@updated":"19.10.2026 14:05:11","category":[
	{"@name":"England: Premier League","@id":"1204","@file_group":"england","@iscup":"False","matches":{"match":[
		{"@id":"61","@static_id":"3838001","@fix_id":"99","@status":"67","@timer":"67","@formatted_date":"19.10.2026","@time":"13:00",
		 "localteam":{"@name":"Arsenal","@id":"9002","@goals":"2"},
		 "visitorteam":{"@name":"Nottingham","@id":"9003","@goals":"?"},
		 "ht":{"@score":"[1-0]"},
		 "live_stats":{"@value":"ICorner=home:5,away:3|IPosession=home:55,away:45|IYellowcard=home:,away:}"},
		 "events":{"event":[
			{"@type":"goal","@minute":"12","@team":"localteam","@player":"Bukayo Saka","@playerId":"10","@result":"[1-0]","@assist":"Odegaard","@assistid":"12"},
			{"@type":"yellowcard","@minute":"40","@team":"visitorteam","@player":"Morgan Gibbs-White","@playerId":"20"}
		 ]}},
		{"@id":"62","visitorteam":{"@name":"Fulham"}}
	]}},
	{"@name":"FA Cup","@id":"1198","@iscup":"True","matches":{"match":{"@id":"70",
		"localteam":{"@name":"Luton","@goals":""},"visitorteam":{"@name":"Leeds","@goals":null}}}}
]}}`

func TestClient_FetchMatchFeed(t *testing.T) {
	t.Parallel()

	srv, _ := newFeedServer(t, map[string]string{"soccernew/live": liveFeedBody})
	client := newTestClient(srv, resilience.CircuitBreakerConfig{})

	got, err := client.FetchMatchFeed(context.Background(), match.FeedLive)
	require.NoError(t, err)
	require.Equal(t, "19.10.2026 14:05:11", got.Updated)
	require.Len(t, got.Matches, 2)

	first := got.Matches[0]
	require.Equal(t, "61", first.MatchID)
	require.Equal(t, "3838001", first.StaticID)
	require.Equal(t, "19.10.2026", first.Date)
	require.Equal(t, match.League{Name: "England: Premier League", ID: "1204", FileGroup: "england"}, first.League)
	require.Equal(t, 2, first.HomeTeam.Goals)
	require.Equal(t, 0, first.AwayTeam.Goals)
	require.Equal(t, "[1-0]", first.HalftimeScore)
	require.Equal(t, 5, first.Stats.Corners.Pair.Home)
	require.Equal(t, 45, first.Stats.Possession.Pair.Away)
	require.Equal(t, 0, first.Stats.YellowCards.Pair.Home)
	require.Len(t, first.Events, 2)
	require.Equal(t, match.SideHome, first.Events[0].Team)
	require.Equal(t, "12", first.Events[0].AssistID)
	require.Equal(t, match.SideAway, first.Events[1].Team)

	cup := got.Matches[1]
	require.True(t, cup.League.IsCup)
	require.Equal(t, 0, cup.HomeTeam.Goals)
	require.Equal(t, 0, cup.AwayTeam.Goals)
	require.NotNil(t, cup.Events)
}

func TestClient_FetchMatchFeed_Idempotent(t *testing.T) {
	t.Parallel()

	srv, _ := newFeedServer(t, map[string]string{"soccernew/live": liveFeedBody})
	client := newTestClient(srv, resilience.CircuitBreakerConfig{})

	first, err := client.FetchMatchFeed(context.Background(), match.FeedLive)
	require.NoError(t, err)
	second, err := client.FetchMatchFeed(context.Background(), match.FeedLive)
	require.NoError(t, err)

	firstJSON, err := sonic.Marshal(first)
	require.NoError(t, err)
	secondJSON, err := sonic.Marshal(second)
	require.NoError(t, err)
	require.Equal(t, string(firstJSON), string(secondJSON))
}

func TestClient_FetchFixtures_Idempotent(t *testing.T) {
	t.Parallel()

	srv, _ := newFeedServer(t, map[string]string{
		"soccerfixtures/leagueid/1204": `{"results":{"tournament":{"@league":"Premier League","week":[
			{"match":[{"@id":"2","@date":"19.08.2023","localteam":{"@name":"B"}},{"@id":"1","@date":"12.08.2023","visitorteam":{"@name":"D","@score":"1"}}]},
			{"match":{"@id":"3"}}
		]}}}`,
	})
	client := newTestClient(srv, resilience.CircuitBreakerConfig{})

	first, err := client.FetchFixtures(context.Background(), "1204", "")
	require.NoError(t, err)
	second, err := client.FetchFixtures(context.Background(), "1204", "")
	require.NoError(t, err)

	firstJSON, err := sonic.Marshal(first)
	require.NoError(t, err)
	secondJSON, err := sonic.Marshal(second)
	require.NoError(t, err)
	require.Equal(t, string(firstJSON), string(secondJSON))
}

func TestClient_FetchMatchFeed_InvalidJSON(t *testing.T) {
	t.Parallel()

	srv, _ := newFeedServer(t, map[string]string{"soccernew/home": `<scores/>`})
	client := newTestClient(srv, resilience.CircuitBreakerConfig{})

	_, err := client.FetchMatchFeed(context.Background(), match.FeedToday)
	require.Error(t, err)
	require.Equal(t, usecase.KindDecodeFailure, usecase.KindOf(err))
}

func TestClient_FetchMatchHeatmap(t *testing.T) {
	t.Parallel()

	srv, _ := newFeedServer(t, map[string]string{
		"commentaries/1204_heatmap.xml": `{"commentaries":{"tournament":{"match":[
			{"@id":"1"},
			{"@id":"3838001","@status":"FT","@score":"2 - 1","heatmaps":{
				"localteam":{"player":{"@id":"10","@heatmap":"x=10;y=20|x=10;y=20"}},
				"visitorteam":{"player":[{"@id":"20","@heatmap":"x=50;y=40"},{"@id":"21","@heatmap":""}]}
			}}
		]}}}`,
	})
	client := newTestClient(srv, resilience.CircuitBreakerConfig{})

	got, found, err := client.FetchMatchHeatmap(context.Background(), "1204", "3838001")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "FT", got.Status)
	require.Equal(t, "2 - 1", got.Score)
	require.Empty(t, got.Minute)
	require.Len(t, got.HomePlayers, 1)
	require.Equal(t, "x=10;y=20|x=10;y=20", got.HomePlayers[0].Raw)
	require.Len(t, got.AwayPlayers, 2)

	_, found, err = client.FetchMatchHeatmap(context.Background(), "1204", "404")
	require.NoError(t, err)
	require.False(t, found)
}

func TestClient_UpstreamFailureOpensBreakerAndRedactsKey(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream exploded"))
	}))
	t.Cleanup(srv.Close)

	client := newTestClient(srv, resilience.CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: 2,
		OpenTimeout:      time.Minute,
		HalfOpenMaxReq:   1,
	})

	for i := 0; i < 2; i++ {
		_, err := client.FetchRoster(context.Background(), "1204")
		require.Error(t, err)
		require.Equal(t, usecase.KindUpstreamUnavailable, usecase.KindOf(err))
		require.NotContains(t, err.Error(), testAPIKey)
	}
	require.Equal(t, resilience.CircuitStateOpen, client.Breaker().State)

	_, err := client.FetchRoster(context.Background(), "1204")
	require.Error(t, err)
	require.Equal(t, usecase.KindUpstreamUnavailable, usecase.KindOf(err))
	require.Equal(t, int32(2), hits.Load())
}

func TestClient_ClientErrorDoesNotTripBreaker(t *testing.T) {
	t.Parallel()

	srv, _ := newFeedServer(t, map[string]string{})
	client := newTestClient(srv, resilience.CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: 1,
		OpenTimeout:      time.Minute,
	})

	_, err := client.FetchRoster(context.Background(), "1")
	require.Error(t, err)
	require.Equal(t, usecase.KindUpstreamUnavailable, usecase.KindOf(err))
	require.Equal(t, resilience.CircuitStateClosed, client.Breaker().State)
}

func TestSanitizeSensitiveText(t *testing.T) {
	t.Parallel()

	got := sanitizeSensitiveText(`Get "https://www.goalserve.com/getfeed/secret-key-123/soccernew/live?json=1": timeout`, testAPIKey)
	require.Equal(t, `Get "https://www.goalserve.com/getfeed/REDACTED/soccernew/live?json=1": timeout`, got)
}

func TestFeedPath(t *testing.T) {
	t.Parallel()

	require.Equal(t, "soccerhistory/leagueid/1204-2022-2023", feedPath("soccerhistory", "leagueid", "1204-2022-2023"))
	require.Equal(t, "commentaries/1204_heatmap.xml", feedPath("commentaries", "1204_heatmap.xml"))
	require.Equal(t, "soccerleague/a%2Fb", feedPath("soccerleague", "a/b"))
}
