package device

import (
	"context"
	"log"
	"time"
)

// PhotoOptions bound one capture attempt. Quality is a JPEG percentage;
// the dimensions cap payload size.
type PhotoOptions struct {
	Quality   int
	MaxWidth  int
	MaxHeight int
}

// CameraProvider captures a single photo and returns it as an encoded
// image payload (data URL).
type CameraProvider interface {
	CapturePhoto(ctx context.Context, opts PhotoOptions) (string, error)
}

type photoStrategy struct {
	name     string
	provider CameraProvider
}

// PhotoCapturer obtains one photo, trying the native camera and then a
// media-stream snapshot. A record without a photo is degraded but valid,
// so exhaustion yields an empty payload, never an error.
type PhotoCapturer struct {
	strategies []photoStrategy
	opts       PhotoOptions
	timeout    time.Duration
}

func NewPhotoCapturer(primary, secondary CameraProvider) *PhotoCapturer {
	var strategies []photoStrategy
	if primary != nil {
		strategies = append(strategies, photoStrategy{name: "camera", provider: primary})
	}
	if secondary != nil {
		strategies = append(strategies, photoStrategy{name: "stream", provider: secondary})
	}
	return &PhotoCapturer{
		strategies: strategies,
		opts:       PhotoOptions{Quality: 80, MaxWidth: 800, MaxHeight: 600},
		timeout:    10 * time.Second,
	}
}

// Capture returns the first successful photo, or "" when every strategy
// fails or times out.
func (c *PhotoCapturer) Capture(ctx context.Context) string {
	for _, s := range c.strategies {
		attempt, cancel := context.WithTimeout(ctx, c.timeout)
		photo, err := s.provider.CapturePhoto(attempt, c.opts)
		cancel()
		if err != nil {
			log.Printf("device: %s capture failed: %v", s.name, err)
			continue
		}
		if photo != "" {
			return photo
		}
	}

	log.Print("device: all photo strategies failed, continuing without photo")
	return ""
}
