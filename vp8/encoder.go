package vp8

import (
	"bytes"
	"fmt"
	"image"

	"github.com/gen2brain/webp"

	"github.com/deepteams/webm"
	"github.com/deepteams/webm/internal/container"
	"github.com/deepteams/webm/internal/pool"
)

// DefaultMethod is the encoding effort used by NewEncoder (0-6).
const DefaultMethod = 4

// Encoder produces lossy VP8 payloads. The simple container has no room
// for an alpha chunk, so alpha is discarded and every pixel is encoded as
// opaque.
type Encoder struct {
	// Method controls encoding effort (0-6). Higher values produce
	// smaller payloads at the cost of longer encoding times.
	Method int
}

var _ webm.Encoder = (*Encoder)(nil)

// NewEncoder returns an Encoder using DefaultMethod.
func NewEncoder() *Encoder { return &Encoder{Method: DefaultMethod} }

// Encode implements webm.Encoder.
func (e *Encoder) Encode(b *webm.Bitmap, quality float32) ([]byte, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}
	if quality < 0 || quality > 100 {
		return nil, fmt.Errorf("vp8: invalid quality %.2f (must be 0-100)", quality)
	}
	if e.Method < 0 || e.Method > 6 {
		return nil, fmt.Errorf("vp8: invalid method %d (must be 0-6)", e.Method)
	}

	pix := pool.Get(4 * b.Width * b.Height)
	defer pool.Put(pix)
	m := &image.NRGBA{Pix: pix, Stride: 4 * b.Width, Rect: image.Rect(0, 0, b.Width, b.Height)}
	b.CopyToNRGBA(m)
	makeOpaque(m)

	var buf bytes.Buffer
	opts := webp.Options{Quality: int(quality + 0.5), Method: e.Method}
	if err := webp.Encode(&buf, m, opts); err != nil {
		return nil, fmt.Errorf("vp8: encoding %dx%d image: %w", b.Width, b.Height, err)
	}

	// The encoder writes a whole file; keep only the VP8 bitstream.
	payload, err := container.Read(&buf)
	if err != nil {
		return nil, fmt.Errorf("vp8: unwrapping encoder output: %w", err)
	}
	return payload, nil
}

func makeOpaque(m *image.NRGBA) {
	for i := 3; i < len(m.Pix); i += 4 {
		m.Pix[i] = 0xff
	}
}
