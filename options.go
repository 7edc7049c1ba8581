package webm

import (
	"fmt"

	"github.com/pion/logging"

	"github.com/deepteams/webm/internal/container"
)

// Options configures a Codec.
type Options struct {
	// Quality is the encoder quality factor (0-100, default 100).
	Quality float32

	// MaxPayloadSize caps the VP8 payload accepted by Load. Zero means
	// the largest payload a RIFF container can describe.
	MaxPayloadSize uint32

	// LoggerFactory supplies the codec's logger. Nil uses the default pion
	// factory, configured through the PION_LOG_* environment variables.
	LoggerFactory logging.LoggerFactory
}

// DefaultOptions returns options with quality 100 and no payload limit
// beyond the container's own.
func DefaultOptions() *Options {
	return &Options{
		Quality:        100,
		MaxPayloadSize: container.MaxChunkPayload,
	}
}

// validateOptions returns an error describing the first invalid parameter
// found, or nil if the configuration is valid.
func validateOptions(opts *Options) error {
	if opts.Quality < 0 || opts.Quality > 100 {
		return fmt.Errorf("webm: invalid Quality %.2f (must be 0-100)", opts.Quality)
	}
	if opts.MaxPayloadSize > container.MaxChunkPayload {
		return fmt.Errorf("webm: invalid MaxPayloadSize %d (must be <= %d)", opts.MaxPayloadSize, container.MaxChunkPayload)
	}
	return nil
}

func (opts *Options) maxPayload() uint32 {
	if opts.MaxPayloadSize == 0 {
		return container.MaxChunkPayload
	}
	return opts.MaxPayloadSize
}
