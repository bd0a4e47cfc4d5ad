package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/railtrack/railtrack/pkg/ctdf"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisViewCache(t *testing.T) (*RedisViewCache, *miniredis.Miniredis) {
	t.Helper()

	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewRedisViewCache(client, DefaultExpiration), server
}

func testView() ctdf.EnrichedTripView {
	return ctdf.EnrichedTripView{
		TripSummary: ctdf.TripSummary{
			ID:              "t1",
			TrainNumber:     "12951",
			TrainName:       "Mumbai Rajdhani",
			IsLive:          true,
			DelayMinutes:    12,
			ProgressPercent: 65,
			CurrentStation:  "KOTA",
			NextStation:     "RTM",
		},
		RunningState: ctdf.RunningStateRunning,
	}
}

func testStores(t *testing.T) map[string]ViewStore {
	redisCache, _ := newRedisViewCache(t)

	return map[string]ViewStore{
		"redis":  redisCache,
		"memory": NewMemoryViewStore(),
	}
}

func TestTripViewRoundTrip(t *testing.T) {
	for name, store := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			missing, err := store.GetTripView(ctx, "t1")
			require.NoError(t, err)
			assert.Nil(t, missing)

			require.NoError(t, store.SetTripView(ctx, testView()))

			view, err := store.GetTripView(ctx, "t1")
			require.NoError(t, err)
			require.NotNil(t, view)
			assert.Equal(t, testView(), *view)
		})
	}
}

func TestPNRStatusRoundTrip(t *testing.T) {
	for name, store := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			status := ctdf.PNRStatus{
				PNR:         "1234567890",
				TrainNumber: "12951",
				Passengers:  []ctdf.Passenger{{Number: 1, BookingStatus: "WL/12", CurrentStatus: "CNF/B2/45"}},
			}
			require.NoError(t, store.SetPNRStatus(ctx, "1234567890", status))

			cached, err := store.GetPNRStatus(ctx, "1234567890")
			require.NoError(t, err)
			require.NotNil(t, cached)
			assert.Equal(t, status, *cached)

			missing, err := store.GetPNRStatus(ctx, "0987654321")
			require.NoError(t, err)
			assert.Nil(t, missing)
		})
	}
}

func TestPNRStatusKeyedByRequestedPNR(t *testing.T) {
	for name, store := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			require.NoError(t, store.SetPNRStatus(ctx, "1234567890", ctdf.PNRStatus{TrainNumber: "12951"}))

			cached, err := store.GetPNRStatus(ctx, "1234567890")
			require.NoError(t, err)
			require.NotNil(t, cached)
			assert.Equal(t, "12951", cached.TrainNumber)

			empty, err := store.GetPNRStatus(ctx, "")
			require.NoError(t, err)
			assert.Nil(t, empty)
		})
	}
}

func TestRedisViewCacheKeysAndExpiry(t *testing.T) {
	viewCache, server := newRedisViewCache(t)
	ctx := context.Background()

	require.NoError(t, viewCache.SetTripView(ctx, testView()))

	assert.True(t, server.Exists("trip_view:t1"))
	assert.Equal(t, DefaultExpiration, server.TTL("trip_view:t1"))

	server.FastForward(DefaultExpiration + time.Second)

	view, err := viewCache.GetTripView(ctx, "t1")
	require.NoError(t, err)
	assert.Nil(t, view)
}
