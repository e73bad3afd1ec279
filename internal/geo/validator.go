package geo

import (
	"context"
	"fmt"
	"log"
	"math"

	"github.com/RayenCMillahual/AsistenciaGeolocalizada/internal/model"
)

// Validation is the outcome of checking a coordinate against the
// configured geofences.
type Validation struct {
	IsValid  bool
	Distance float64              // meters to the nearest geofence, 2 decimals
	Nearest  *model.ValidLocation // nil when no geofences are configured
}

// Validate finds the geofence nearest to the given point and reports
// whether the point falls inside its allowed radius. With no geofences
// configured it is permissive: attendance is never blocked just because
// the location set is missing. Ties keep the first fence in input order.
func Validate(lat, lon float64, fences []model.ValidLocation) Validation {
	if len(fences) == 0 {
		return Validation{IsValid: true}
	}

	nearest := fences[0]
	minDistance := DistanceMeters(lat, lon, nearest.Latitude, nearest.Longitude)
	for _, f := range fences[1:] {
		d := DistanceMeters(lat, lon, f.Latitude, f.Longitude)
		if d < minDistance {
			minDistance = d
			nearest = f
		}
	}

	return Validation{
		IsValid:  minDistance <= nearest.AllowedRadius,
		Distance: math.Round(minDistance*100) / 100,
		Nearest:  &nearest,
	}
}

// LocationLister supplies the configured geofences.
type LocationLister interface {
	ListLocations(ctx context.Context) ([]model.ValidLocation, error)
}

// Checker validates coordinates against geofences loaded from a store.
type Checker struct {
	locations LocationLister
}

func NewChecker(locations LocationLister) *Checker {
	return &Checker{locations: locations}
}

// Check loads the geofence set and validates the point against it. It
// never returns an error: a failed load degrades to the permissive
// default so connectivity trouble cannot block registration.
func (c *Checker) Check(ctx context.Context, lat, lon float64) Validation {
	fences, err := c.locations.ListLocations(ctx)
	if err != nil {
		log.Printf("geo: listing locations failed, allowing by default: %v", err)
		return Validation{IsValid: true}
	}
	return Validate(lat, lon, fences)
}

// Describe renders a human-readable summary of where the point stands
// relative to the nearest geofence.
func (c *Checker) Describe(ctx context.Context, lat, lon float64) string {
	v := c.Check(ctx, lat, lon)
	if v.Nearest == nil {
		return fmt.Sprintf("Ubicación desconocida (%.6f, %.6f)", lat, lon)
	}
	status := "Fuera"
	if v.IsValid {
		status = "Dentro"
	}
	return fmt.Sprintf("%s de %s (%.2fm)", status, v.Nearest.Name, v.Distance)
}
