// Package memory holds in-memory store implementations with the same
// invariants as the MongoDB ones. They back tests and dev environments
// that run without a database.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/RayenCMillahual/AsistenciaGeolocalizada/internal/model"
	"github.com/RayenCMillahual/AsistenciaGeolocalizada/internal/store"
)

type AttendanceStore struct {
	mu      sync.Mutex
	records []*model.AttendanceRecord
}

func NewAttendanceStore() *AttendanceStore {
	return &AttendanceStore{}
}

func (s *AttendanceStore) CreateAttendance(_ context.Context, record *model.AttendanceRecord) error {
	if record.UserID == "" || !record.Type.Valid() {
		return store.ErrInvalidRecord
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range s.records {
		if r.UserID == record.UserID && r.Type == record.Type && r.Date == record.Date {
			return fmt.Errorf("%w: %s %s on %s", store.ErrDuplicate, record.UserID, record.Type, record.Date)
		}
	}

	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}
	stored := *record
	s.records = append(s.records, &stored)
	return nil
}

func (s *AttendanceStore) ListAttendances(_ context.Context, userID string) ([]*model.AttendanceRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*model.AttendanceRecord
	for _, r := range s.records {
		if r.UserID == userID {
			c := *r
			out = append(out, &c)
		}
	}
	// Most recent first, matching the MongoDB sort.
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date > out[j].Date
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

type LocationStore struct {
	mu        sync.Mutex
	locations []model.ValidLocation
}

func NewLocationStore() *LocationStore {
	return &LocationStore{}
}

func (s *LocationStore) ListLocations(_ context.Context) ([]model.ValidLocation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.ValidLocation, len(s.locations))
	copy(out, s.locations)
	return out, nil
}

func (s *LocationStore) UpsertLocation(_ context.Context, loc *model.ValidLocation) error {
	if loc.ID == "" {
		loc.ID = uuid.NewString()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.locations {
		if existing.ID == loc.ID {
			s.locations[i] = *loc
			return nil
		}
	}
	s.locations = append(s.locations, *loc)
	return nil
}

func (s *LocationStore) SeedDefaultLocation(_ context.Context, def model.ValidLocation) error {
	if def.ID == "" {
		def.ID = uuid.NewString()
	}

	// The emptiness check and the insert must share one critical
	// section, or two concurrent seeds would both observe empty.
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.locations) > 0 {
		return nil
	}
	s.locations = append(s.locations, def)
	return nil
}
