package store

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/RayenCMillahual/AsistenciaGeolocalizada/internal/model"
)

type LocationStore struct {
	locations *mongo.Collection
}

func NewLocationStore(db *MongoDB) *LocationStore {
	return &LocationStore{locations: db.Collection("locations")}
}

// ListLocations returns every configured geofence.
func (s *LocationStore) ListLocations(ctx context.Context) ([]model.ValidLocation, error) {
	cursor, err := s.locations.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("find locations: %w", err)
	}
	var results []model.ValidLocation
	if err := cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("decode locations: %w", err)
	}
	return results, nil
}

// UpsertLocation creates or replaces a geofence, assigning an ID when
// the caller did not provide one.
func (s *LocationStore) UpsertLocation(ctx context.Context, loc *model.ValidLocation) error {
	if loc.ID == "" {
		loc.ID = uuid.NewString()
	}
	_, err := s.locations.ReplaceOne(ctx, bson.M{"_id": loc.ID}, loc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("upsert location: %w", err)
	}
	return nil
}

// SeedDefaultLocation inserts the given geofence when the collection is
// empty, so a fresh deployment always has at least one valid location.
func (s *LocationStore) SeedDefaultLocation(ctx context.Context, def model.ValidLocation) error {
	count, err := s.locations.CountDocuments(ctx, bson.M{})
	if err != nil {
		return fmt.Errorf("count locations: %w", err)
	}
	if count > 0 {
		return nil
	}
	log.Printf("Seeding default location: %s", def.Name)
	return s.UpsertLocation(ctx, &def)
}
