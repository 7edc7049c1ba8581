package webm

import (
	"errors"

	"github.com/deepteams/webm/internal/container"
)

// Errors returned by the package. Callers should match them with errors.Is;
// most are wrapped with detail about the failing field or chunk.
var (
	// ErrFormat reports container bytes that do not follow the exact
	// RIFF, WEBP, "VP8 " nesting.
	ErrFormat = container.ErrFormat
	// ErrTooLarge reports a declared chunk length above the configured limit.
	ErrTooLarge = container.ErrTooLarge
	// ErrHeader reports a payload whose dimensions cannot be determined.
	ErrHeader = container.ErrHeader

	ErrInvalidImage = errors.New("webm: invalid image")
	ErrPixelFormat  = errors.New("webm: unsupported pixel format")
	ErrEncode       = errors.New("webm: error during image encoding")
	ErrNoCodec      = errors.New("webm: no decoder or encoder configured")
)
