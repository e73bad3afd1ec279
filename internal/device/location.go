package device

import (
	"context"
	"log"
	"time"

	"github.com/RayenCMillahual/AsistenciaGeolocalizada/internal/model"
)

// Position is a single coordinate fix from a location provider.
type Position struct {
	Latitude  float64
	Longitude float64
	Accuracy  float64 // meters, 0 when unknown
}

// PositionOptions bound one provider attempt.
type PositionOptions struct {
	Timeout      time.Duration
	HighAccuracy bool
	MaxAge       time.Duration // accept a cached fix up to this old; 0 means fresh only
}

// LocationProvider is a single-shot source of the device's position.
type LocationProvider interface {
	CurrentPosition(ctx context.Context, opts PositionOptions) (Position, error)
}

// ResolvedPosition is the resolver outcome: a coordinate that is always
// usable, tagged with the strategy that produced it.
type ResolvedPosition struct {
	model.Coordinates
	Source model.LocationSource
}

type locationStrategy struct {
	name     string
	source   model.LocationSource
	opts     PositionOptions
	provider LocationProvider
}

// LocationResolver obtains one current position, trying a high-accuracy
// provider, then a standard provider that may serve a cached fix, and
// finally a hard-coded default coordinate. It never fails.
type LocationResolver struct {
	strategies []locationStrategy
	fallback   model.Coordinates
}

func NewLocationResolver(primary, secondary LocationProvider, fallback model.Coordinates) *LocationResolver {
	var strategies []locationStrategy
	if primary != nil {
		strategies = append(strategies, locationStrategy{
			name:     "gps",
			source:   model.SourceGPS,
			opts:     PositionOptions{Timeout: 15 * time.Second, HighAccuracy: true},
			provider: primary,
		})
	}
	if secondary != nil {
		strategies = append(strategies, locationStrategy{
			name:     "network",
			source:   model.SourceNetwork,
			opts:     PositionOptions{Timeout: 10 * time.Second, MaxAge: 5 * time.Minute},
			provider: secondary,
		})
	}
	return &LocationResolver{strategies: strategies, fallback: fallback}
}

// Resolve tries each strategy in order and returns the first fix. When
// every provider fails it falls back to the default coordinate, logged so
// downstream consumers can tell a real fix from the fallback.
func (r *LocationResolver) Resolve(ctx context.Context) ResolvedPosition {
	for _, s := range r.strategies {
		attempt, cancel := context.WithTimeout(ctx, s.opts.Timeout)
		pos, err := s.provider.CurrentPosition(attempt, s.opts)
		cancel()
		if err != nil {
			log.Printf("device: %s location failed: %v", s.name, err)
			continue
		}
		return ResolvedPosition{
			Coordinates: model.Coordinates{Latitude: pos.Latitude, Longitude: pos.Longitude},
			Source:      s.source,
		}
	}

	log.Printf("device: all location strategies failed, using default coordinate (%.6f, %.6f)",
		r.fallback.Latitude, r.fallback.Longitude)
	return ResolvedPosition{Coordinates: r.fallback, Source: model.SourceDefault}
}
