package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/goalserve-heatmap/internal/domain/fixture"
	"github.com/riskibarqy/goalserve-heatmap/internal/domain/roster"
	fixturemock "github.com/riskibarqy/goalserve-heatmap/internal/mocks/domain/fixture"
	rostermock "github.com/riskibarqy/goalserve-heatmap/internal/mocks/domain/roster"
	"github.com/riskibarqy/goalserve-heatmap/internal/platform/cache"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRosterService_Get_CachesSuccessUsingMockery(t *testing.T) {
	t.Parallel()

	source := rostermock.NewSource(t)
	service := NewRosterService(source, nil)

	expected := roster.Roster{LeagueName: "Premier League", Players: map[string]string{"10": "Bukayo Saka"}}
	source.On("FetchRoster", mock.Anything, "1204").Return(expected, nil).Once()

	for i := 0; i < 3; i++ {
		got, err := service.Get(context.Background(), "1204")
		require.NoError(t, err)
		require.Equal(t, expected, got)
	}
	require.Equal(t, 1, service.Cached())
}

func TestRosterService_Get_DoesNotCacheErrors(t *testing.T) {
	t.Parallel()

	source := rostermock.NewSource(t)
	service := NewRosterService(source, nil)

	upstream := crerr.Mark(errors.New("timeout"), ErrUpstreamUnavailable)
	source.On("FetchRoster", mock.Anything, "1204").Return(roster.Roster{}, upstream).Once()
	source.On("FetchRoster", mock.Anything, "1204").Return(roster.Roster{LeagueName: "Premier League"}, nil).Once()

	_, err := service.Get(context.Background(), "1204")
	require.Error(t, err)
	require.Equal(t, KindUpstreamUnavailable, KindOf(err))

	got, err := service.Get(context.Background(), "1204")
	require.NoError(t, err)
	require.Equal(t, "Premier League", got.LeagueName)
}

func TestRosterService_Get_RequiresLeague(t *testing.T) {
	t.Parallel()

	service := NewRosterService(rostermock.NewSource(t), nil)

	_, err := service.Get(context.Background(), "  ")
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestFixtureService_Get_SortsAndCachesPerSeason(t *testing.T) {
	t.Parallel()

	source := fixturemock.NewSource(t)
	service := NewFixtureService(source, nil)

	current := fixture.List{LeagueName: "Premier League", Fixtures: []fixture.Fixture{
		{MatchID: "2", Date: "19.08.2023"},
		{MatchID: "1", Date: "12.08.2023"},
		{MatchID: "0", Date: fixture.NotAvailable},
	}}
	history := fixture.List{LeagueName: "Premier League", Fixtures: []fixture.Fixture{{MatchID: "9", Date: "01.05.2022"}}}

	source.On("FetchFixtures", mock.Anything, "1204", "").Return(current, nil).Once()
	source.On("FetchFixtures", mock.Anything, "1204", "2021-2022").Return(history, nil).Once()

	got, err := service.Get(context.Background(), "1204", "")
	require.NoError(t, err)
	require.Equal(t, []string{"0", "1", "2"}, fixtureIDs(got))

	again, err := service.Get(context.Background(), "1204", "")
	require.NoError(t, err)
	require.Equal(t, got, again)

	past, err := service.Get(context.Background(), "1204", "2021-2022")
	require.NoError(t, err)
	require.Equal(t, []string{"9"}, fixtureIDs(past))

	// the source's own slice keeps feed order
	require.Equal(t, "2", current.Fixtures[0].MatchID)
}

func TestFixtureService_Get_CurrentSeasonExpires(t *testing.T) {
	t.Parallel()

	source := fixturemock.NewSource(t)
	store := cache.NewStore[fixture.List](func(key string) time.Duration {
		if IsHistoryKey(key) {
			return 0
		}
		return time.Nanosecond
	})
	service := NewFixtureService(source, store)

	source.On("FetchFixtures", mock.Anything, "1204", "").Return(fixture.List{LeagueName: "v1"}, nil).Once()
	source.On("FetchFixtures", mock.Anything, "1204", "").Return(fixture.List{LeagueName: "v2"}, nil).Once()

	first, err := service.Get(context.Background(), "1204", "")
	require.NoError(t, err)
	require.Equal(t, "v1", first.LeagueName)

	time.Sleep(2 * time.Millisecond)

	second, err := service.Get(context.Background(), "1204", "")
	require.NoError(t, err)
	require.Equal(t, "v2", second.LeagueName)
}

func TestFixtureCacheKey(t *testing.T) {
	t.Parallel()

	require.Equal(t, "1204", FixtureCacheKey("1204", ""))
	require.Equal(t, "1204|2023-2024", FixtureCacheKey("1204", "2023-2024"))
	require.False(t, IsHistoryKey("1204"))
	require.True(t, IsHistoryKey("1204|2023-2024"))
}

func fixtureIDs(list fixture.List) []string {
	out := make([]string, 0, len(list.Fixtures))
	for _, item := range list.Fixtures {
		out = append(out, item.MatchID)
	}
	return out
}
