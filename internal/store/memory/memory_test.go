package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/RayenCMillahual/AsistenciaGeolocalizada/internal/model"
	"github.com/RayenCMillahual/AsistenciaGeolocalizada/internal/store"
)

func TestCreateAttendanceAssignsID(t *testing.T) {
	s := NewAttendanceStore()
	rec := &model.AttendanceRecord{UserID: "u1", Type: model.TypeEntrada, Date: "2024-03-01", Time: "08:00"}

	if err := s.CreateAttendance(context.Background(), rec); err != nil {
		t.Fatalf("CreateAttendance: %v", err)
	}
	if rec.ID == "" {
		t.Fatal("store must assign an id on creation")
	}
	if rec.CreatedAt.IsZero() {
		t.Fatal("store must stamp created_at")
	}
}

func TestCreateAttendanceRejectsMissingFields(t *testing.T) {
	s := NewAttendanceStore()

	err := s.CreateAttendance(context.Background(), &model.AttendanceRecord{Type: model.TypeEntrada, Date: "2024-03-01"})
	if !errors.Is(err, store.ErrInvalidRecord) {
		t.Fatalf("missing user id: err = %v, want ErrInvalidRecord", err)
	}

	err = s.CreateAttendance(context.Background(), &model.AttendanceRecord{UserID: "u1", Type: "almuerzo", Date: "2024-03-01"})
	if !errors.Is(err, store.ErrInvalidRecord) {
		t.Fatalf("unknown type: err = %v, want ErrInvalidRecord", err)
	}
}

func TestCreateAttendanceEnforcesDailyUniqueness(t *testing.T) {
	s := NewAttendanceStore()
	ctx := context.Background()

	first := &model.AttendanceRecord{UserID: "u1", Type: model.TypeEntrada, Date: "2024-03-01"}
	if err := s.CreateAttendance(ctx, first); err != nil {
		t.Fatalf("first entrada: %v", err)
	}

	dup := &model.AttendanceRecord{UserID: "u1", Type: model.TypeEntrada, Date: "2024-03-01"}
	if err := s.CreateAttendance(ctx, dup); !errors.Is(err, store.ErrDuplicate) {
		t.Fatalf("duplicate entrada: err = %v, want ErrDuplicate", err)
	}

	// Same day salida, other users and other days are all fine.
	others := []*model.AttendanceRecord{
		{UserID: "u1", Type: model.TypeSalida, Date: "2024-03-01"},
		{UserID: "u2", Type: model.TypeEntrada, Date: "2024-03-01"},
		{UserID: "u1", Type: model.TypeEntrada, Date: "2024-03-02"},
	}
	for _, rec := range others {
		if err := s.CreateAttendance(ctx, rec); err != nil {
			t.Fatalf("CreateAttendance(%s %s %s): %v", rec.UserID, rec.Type, rec.Date, err)
		}
	}
}

func TestListAttendancesMostRecentFirst(t *testing.T) {
	s := NewAttendanceStore()
	ctx := context.Background()
	base := time.Date(2024, 3, 1, 8, 0, 0, 0, time.Local)

	records := []*model.AttendanceRecord{
		{UserID: "u1", Type: model.TypeEntrada, Date: "2024-03-01", CreatedAt: base},
		{UserID: "u1", Type: model.TypeSalida, Date: "2024-03-01", CreatedAt: base.Add(9 * time.Hour)},
		{UserID: "u1", Type: model.TypeEntrada, Date: "2024-03-02", CreatedAt: base.Add(24 * time.Hour)},
		{UserID: "u2", Type: model.TypeEntrada, Date: "2024-03-02", CreatedAt: base.Add(24 * time.Hour)},
	}
	for _, rec := range records {
		if err := s.CreateAttendance(ctx, rec); err != nil {
			t.Fatalf("CreateAttendance: %v", err)
		}
	}

	got, err := s.ListAttendances(ctx, "u1")
	if err != nil {
		t.Fatalf("ListAttendances: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d records, want 3", len(got))
	}
	if got[0].Date != "2024-03-02" {
		t.Fatalf("first record date = %s, want 2024-03-02", got[0].Date)
	}
	if got[1].Type != model.TypeSalida || got[2].Type != model.TypeEntrada {
		t.Fatalf("same-day order wrong: %s then %s", got[1].Type, got[2].Type)
	}
}

func TestLocationStoreSeedOnlyWhenEmpty(t *testing.T) {
	s := NewLocationStore()
	ctx := context.Background()
	def := model.ValidLocation{Name: "Campus", Latitude: -34.603722, Longitude: -58.381592, AllowedRadius: 500}

	if err := s.SeedDefaultLocation(ctx, def); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := s.SeedDefaultLocation(ctx, def); err != nil {
		t.Fatalf("second seed: %v", err)
	}

	locations, err := s.ListLocations(ctx)
	if err != nil {
		t.Fatalf("ListLocations: %v", err)
	}
	if len(locations) != 1 {
		t.Fatalf("got %d locations, want 1", len(locations))
	}
	if locations[0].ID == "" {
		t.Fatal("seeded location must get an id")
	}
}

func TestLocationStoreSeedConcurrently(t *testing.T) {
	s := NewLocationStore()
	ctx := context.Background()
	def := model.ValidLocation{Name: "Campus", Latitude: -34.603722, Longitude: -58.381592, AllowedRadius: 500}

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := s.SeedDefaultLocation(ctx, def); err != nil {
				t.Errorf("seed: %v", err)
			}
		}()
	}
	wg.Wait()

	locations, err := s.ListLocations(ctx)
	if err != nil {
		t.Fatalf("ListLocations: %v", err)
	}
	if len(locations) != 1 {
		t.Fatalf("got %d locations, want 1", len(locations))
	}
}

func TestLocationStoreUpsertReplacesByID(t *testing.T) {
	s := NewLocationStore()
	ctx := context.Background()

	loc := model.ValidLocation{Name: "Anexo", Latitude: 1, Longitude: 2, AllowedRadius: 100}
	if err := s.UpsertLocation(ctx, &loc); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	loc.AllowedRadius = 250
	if err := s.UpsertLocation(ctx, &loc); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	locations, _ := s.ListLocations(ctx)
	if len(locations) != 1 || locations[0].AllowedRadius != 250 {
		t.Fatalf("got %+v, want one location with radius 250", locations)
	}
}
