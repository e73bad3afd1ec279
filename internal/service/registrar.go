package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"github.com/RayenCMillahual/AsistenciaGeolocalizada/internal/device"
	"github.com/RayenCMillahual/AsistenciaGeolocalizada/internal/geo"
	"github.com/RayenCMillahual/AsistenciaGeolocalizada/internal/identity"
	"github.com/RayenCMillahual/AsistenciaGeolocalizada/internal/model"
	"github.com/RayenCMillahual/AsistenciaGeolocalizada/internal/store"
)

// AttendanceWriter is the slice of the store the registrar needs.
type AttendanceWriter interface {
	CreateAttendance(ctx context.Context, record *model.AttendanceRecord) error
}

// LocationResolver yields a usable coordinate, never failing.
type LocationResolver interface {
	Resolve(ctx context.Context) device.ResolvedPosition
}

// GeofenceChecker validates a coordinate, never failing.
type GeofenceChecker interface {
	Check(ctx context.Context, lat, lon float64) geo.Validation
}

// PhotoCapturer yields an encoded photo or "", never failing.
type PhotoCapturer interface {
	Capture(ctx context.Context) string
}

// Registrar orchestrates one check-in or check-out: preconditions first,
// then location, geofence validation and photo strictly in that order,
// then the store write and a tracker refresh.
type Registrar struct {
	store    AttendanceWriter
	location LocationResolver
	geofence GeofenceChecker
	camera   PhotoCapturer
	tracker  *Tracker
	ident    identity.Provider
	now      func() time.Time
	inFlight atomic.Bool
}

func NewRegistrar(
	st AttendanceWriter,
	location LocationResolver,
	geofence GeofenceChecker,
	camera PhotoCapturer,
	tracker *Tracker,
	ident identity.Provider,
) *Registrar {
	return &Registrar{
		store:    st,
		location: location,
		geofence: geofence,
		camera:   camera,
		tracker:  tracker,
		ident:    ident,
		now:      time.Now,
	}
}

// Register performs one attendance registration and returns the
// persisted record. Device and geofence trouble degrade the record
// instead of failing it; only a rejected store write is a hard error.
func (r *Registrar) Register(ctx context.Context, typ model.AttendanceType) (*model.AttendanceRecord, error) {
	if !typ.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, typ)
	}
	if !r.inFlight.CompareAndSwap(false, true) {
		return nil, ErrRegistrationInFlight
	}
	defer r.inFlight.Store(false)

	userID := r.ident.CurrentUserID()
	if userID == "" {
		return nil, ErrNotAuthenticated
	}

	day := r.tracker.Today()
	if typ == model.TypeSalida && day.Entrada == nil {
		return nil, ErrOutOfOrder
	}
	if (typ == model.TypeEntrada && day.Entrada != nil) ||
		(typ == model.TypeSalida && day.Salida != nil) {
		return nil, ErrAlreadyRegistered
	}

	pos := r.location.Resolve(ctx)
	validation := r.geofence.Check(ctx, pos.Latitude, pos.Longitude)
	photo := r.camera.Capture(ctx)

	now := r.now()
	record := &model.AttendanceRecord{
		UserID:         userID,
		Type:           typ,
		Date:           now.Format(time.DateOnly),
		Time:           now.Format("15:04"),
		Location:       pos.Coordinates,
		PhotoURL:       photo,
		LocationValid:  validation.IsValid,
		LocationSource: pos.Source,
		CreatedAt:      now,
	}

	if err := r.store.CreateAttendance(ctx, record); err != nil {
		// Another session won the race; the unique index is authoritative.
		if errors.Is(err, store.ErrDuplicate) {
			return nil, ErrAlreadyRegistered
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	// The record is already persisted; a failed refresh only stales the
	// projections until the next reload.
	if err := r.tracker.Reload(ctx); err != nil {
		log.Printf("registrar: reload after %s: %v", typ, err)
	}

	return record, nil
}
