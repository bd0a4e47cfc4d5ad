package database

import (
	"context"
	"errors"
	"time"

	"github.com/railtrack/railtrack/pkg/ctdf"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ArchivedTripView is a snapshot of an enriched view as it was at
// CreationDateTime.
type ArchivedTripView struct {
	TripID           string
	CreationDateTime time.Time

	View ctdf.EnrichedTripView
}

type Repository struct {
	database *mongo.Database
}

func NewRepository(database *mongo.Database) *Repository {
	return &Repository{database: database}
}

// DefaultRepository uses the connection opened by Connect.
func DefaultRepository() *Repository {
	return NewRepository(MongoGlobalInstance.Database)
}

// SaveOfflineTrips replaces the stored copy of every trip by ID.
func (r *Repository) SaveOfflineTrips(ctx context.Context, trips []ctdf.Trip) error {
	if len(trips) == 0 {
		return nil
	}

	var operations []mongo.WriteModel
	for _, trip := range trips {
		operations = append(operations, mongo.NewReplaceOneModel().
			SetFilter(bson.M{"id": trip.ID}).
			SetReplacement(trip).
			SetUpsert(true))
	}

	_, err := r.database.Collection(OfflineTripsCollection).BulkWrite(ctx, operations, options.BulkWrite().SetOrdered(false))
	return err
}

func (r *Repository) OfflineTrips(ctx context.Context, userID string) ([]ctdf.Trip, error) {
	opts := options.Find().SetSort(bson.D{{Key: "journeydate", Value: 1}})

	cursor, err := r.database.Collection(OfflineTripsCollection).Find(ctx, bson.M{"userid": userID}, opts)
	if err != nil {
		return nil, err
	}

	var trips []ctdf.Trip
	if err := cursor.All(ctx, &trips); err != nil {
		return nil, err
	}

	return trips, nil
}

func (r *Repository) UpsertPushTarget(ctx context.Context, target ctdf.UserPushNotificationTarget) error {
	_, err := r.database.Collection(UserPushNotificationTargetCollection).ReplaceOne(ctx,
		bson.M{"userid": target.UserID},
		target,
		options.Replace().SetUpsert(true),
	)
	return err
}

// PushTarget returns nil with a nil error when the user has no registered device.
func (r *Repository) PushTarget(ctx context.Context, userID string) (*ctdf.UserPushNotificationTarget, error) {
	var target ctdf.UserPushNotificationTarget

	err := r.database.Collection(UserPushNotificationTargetCollection).FindOne(ctx, bson.M{"userid": userID}).Decode(&target)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &target, nil
}

func (r *Repository) ArchiveTripView(ctx context.Context, view ctdf.EnrichedTripView, at time.Time) error {
	_, err := r.database.Collection(TripViewsCollection).InsertOne(ctx, ArchivedTripView{
		TripID:           view.ID,
		CreationDateTime: at,
		View:             view,
	})
	return err
}
