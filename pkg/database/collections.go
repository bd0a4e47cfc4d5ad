package database

import (
	"context"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	OfflineTripsCollection               = "trips_offline"
	UserPushNotificationTargetCollection = "user_push_notification_target"
	TripViewsCollection                  = "trip_views"

	tripViewRetentionSeconds = 7 * 24 * 3600
)

func createIndexes() {
	createIndex(OfflineTripsCollection, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "userid", Value: 1}, {Key: "journeydate", Value: 1}},
		},
	})

	createIndex(UserPushNotificationTargetCollection, []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "userid", Value: 1}},
		},
	})

	createIndex(TripViewsCollection, []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "tripid", Value: 1}, {Key: "creationdatetime", Value: -1}},
		},
		{
			Keys:    bson.D{{Key: "creationdatetime", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(tripViewRetentionSeconds),
		},
	})
}

func createIndex(collectionName string, indexes []mongo.IndexModel) {
	_, err := GetCollection(collectionName).Indexes().CreateMany(context.Background(), indexes, options.CreateIndexes())
	if err != nil {
		log.Error().Err(err).Str("collection", collectionName).Msg("Creating Index")
	}
}
