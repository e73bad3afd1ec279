package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/RayenCMillahual/AsistenciaGeolocalizada/internal/model"
)

type AttendanceStore struct {
	attendance *mongo.Collection
}

func NewAttendanceStore(ctx context.Context, db *MongoDB) (*AttendanceStore, error) {
	attendance := db.Collection("attendances")

	if _, err := attendance.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			// One entrada and one salida per user per day, enforced by
			// the store rather than client state.
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "type", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "date", Value: -1}}},
		{Keys: bson.D{{Key: "date", Value: 1}}},
	}); err != nil {
		return nil, fmt.Errorf("create attendance indexes: %w", err)
	}

	return &AttendanceStore{attendance: attendance}, nil
}

// CreateAttendance inserts a new record and sets the assigned ID on the
// struct. Records missing user or type are rejected; a same user/type/date
// record reports ErrDuplicate.
func (s *AttendanceStore) CreateAttendance(ctx context.Context, record *model.AttendanceRecord) error {
	if record.UserID == "" || !record.Type.Valid() {
		return ErrInvalidRecord
	}
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}
	if _, err := s.attendance.InsertOne(ctx, record); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: %s %s on %s", ErrDuplicate, record.UserID, record.Type, record.Date)
		}
		return fmt.Errorf("insert attendance: %w", err)
	}
	return nil
}

// ListAttendances returns all records for a user, most recent first.
func (s *AttendanceStore) ListAttendances(ctx context.Context, userID string) ([]*model.AttendanceRecord, error) {
	cursor, err := s.attendance.Find(ctx, bson.M{"user_id": userID},
		options.Find().SetSort(bson.D{{Key: "date", Value: -1}, {Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("find attendances: %w", err)
	}
	var results []*model.AttendanceRecord
	if err := cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("decode attendances: %w", err)
	}
	return results, nil
}
