package handler

import (
	"context"
	"time"

	"github.com/RayenCMillahual/AsistenciaGeolocalizada/internal/device"
)

// PositionPayload is a coordinate fix captured by the client device and
// shipped inside the registration request.
type PositionPayload struct {
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	Accuracy     float64 `json:"accuracy,omitempty"`
	HighAccuracy bool    `json:"high_accuracy,omitempty"`
	AgeSeconds   float64 `json:"age_seconds,omitempty"`
}

// payloadLocation adapts a submitted fix to the LocationProvider
// contract so the resolver's fallback chain treats client data the same
// way it would treat live hardware.
type payloadLocation struct {
	pos *PositionPayload
}

func (p payloadLocation) CurrentPosition(_ context.Context, opts device.PositionOptions) (device.Position, error) {
	if p.pos == nil {
		return device.Position{}, device.ErrUnavailable
	}
	if opts.HighAccuracy && !p.pos.HighAccuracy {
		return device.Position{}, device.ErrUnavailable
	}
	if age := time.Duration(p.pos.AgeSeconds * float64(time.Second)); age > opts.MaxAge {
		return device.Position{}, device.ErrTimeout
	}
	return device.Position{
		Latitude:  p.pos.Latitude,
		Longitude: p.pos.Longitude,
		Accuracy:  p.pos.Accuracy,
	}, nil
}

// payloadCamera serves the photo the client captured, if any.
type payloadCamera struct {
	photo string
}

func (p payloadCamera) CapturePhoto(context.Context, device.PhotoOptions) (string, error) {
	if p.photo == "" {
		return "", device.ErrUnavailable
	}
	return p.photo, nil
}
