package database

import (
	"context"
	"testing"
	"time"

	"github.com/railtrack/railtrack/pkg/ctdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestPushTarget(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("found", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "railtrack.user_push_notification_target", mtest.FirstBatch, bson.D{
			{Key: "userid", Value: "u1"},
			{Key: "pushnotificationtoken", Value: "fcm-token"},
		}))

		target, err := NewRepository(mt.DB).PushTarget(context.Background(), "u1")
		require.NoError(mt, err)
		require.NotNil(mt, target)
		assert.Equal(mt, "fcm-token", target.PushNotificationToken)
	})

	mt.Run("missing", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "railtrack.user_push_notification_target", mtest.FirstBatch))

		target, err := NewRepository(mt.DB).PushTarget(context.Background(), "u2")
		require.NoError(mt, err)
		assert.Nil(mt, target)
	})
}

func TestUpsertPushTarget(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("upsert", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		err := NewRepository(mt.DB).UpsertPushTarget(context.Background(), ctdf.UserPushNotificationTarget{
			UserID:                "u1",
			PushNotificationToken: "fcm-token",
			ModificationDateTime:  time.Now(),
		})
		assert.NoError(mt, err)
	})
}

func TestOfflineTrips(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("save and load", func(mt *mtest.T) {
		repository := NewRepository(mt.DB)

		require.NoError(mt, repository.SaveOfflineTrips(context.Background(), nil))

		mt.AddMockResponses(mtest.CreateSuccessResponse())
		require.NoError(mt, repository.SaveOfflineTrips(context.Background(), []ctdf.Trip{
			{ID: "t1", UserID: "u1", TrainNumber: "12951"},
		}))

		mt.AddMockResponses(mtest.CreateCursorResponse(0, "railtrack.trips_offline", mtest.FirstBatch,
			bson.D{{Key: "id", Value: "t1"}, {Key: "userid", Value: "u1"}, {Key: "trainnumber", Value: "12951"}},
			bson.D{{Key: "id", Value: "t2"}, {Key: "userid", Value: "u1"}, {Key: "trainnumber", Value: "12002"}},
		))

		trips, err := repository.OfflineTrips(context.Background(), "u1")
		require.NoError(mt, err)
		require.Len(mt, trips, 2)
		assert.Equal(mt, "12002", trips[1].TrainNumber)
	})
}

func TestArchiveTripView(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("insert", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		view := ctdf.EnrichedTripView{TripSummary: ctdf.TripSummary{ID: "t1", DelayMinutes: 5}}
		assert.NoError(mt, NewRepository(mt.DB).ArchiveTripView(context.Background(), view, time.Now()))
	})
}
