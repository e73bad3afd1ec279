package device

import (
	"context"
	"time"
)

// MediaSource grants access to a live video stream. Opening the source
// acquires the camera exclusively until the stream is stopped.
type MediaSource interface {
	Open(ctx context.Context) (MediaStream, error)
}

// MediaStream is an acquired camera stream. Stop must be safe to call on
// every exit path, including after a failed WaitReady.
type MediaStream interface {
	// WaitReady blocks until the stream has delivered its metadata and
	// frames are available.
	WaitReady(ctx context.Context) error
	// Snapshot encodes the current frame as a JPEG data URL.
	Snapshot(quality int) (string, error)
	Stop()
}

// StreamCapturer is the secondary photo strategy: it snapshots one frame
// from a live media stream. The stream is released on success, failure
// and timeout alike.
type StreamCapturer struct {
	source MediaSource
	warmup time.Duration // settle time between metadata and snapshot
}

func NewStreamCapturer(source MediaSource) *StreamCapturer {
	return &StreamCapturer{source: source, warmup: 500 * time.Millisecond}
}

func (c *StreamCapturer) CapturePhoto(ctx context.Context, opts PhotoOptions) (string, error) {
	if c.source == nil {
		return "", ErrUnsupported
	}

	stream, err := c.source.Open(ctx)
	if err != nil {
		return "", err
	}
	defer stream.Stop()

	if err := stream.WaitReady(ctx); err != nil {
		return "", err
	}

	// Let the exposure settle before grabbing a frame.
	select {
	case <-ctx.Done():
		return "", ErrTimeout
	case <-time.After(c.warmup):
	}

	return stream.Snapshot(opts.Quality)
}
