package webm

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/deepteams/webm/internal/container"
)

// HeaderInspector reports the dimensions encoded in a compressed payload.
type HeaderInspector interface {
	HeaderInfo(payload []byte) (width, height int, err error)
}

// HeaderInspectorFunc adapts an ordinary function to HeaderInspector.
type HeaderInspectorFunc func(payload []byte) (width, height int, err error)

// HeaderInfo calls f(payload).
func (f HeaderInspectorFunc) HeaderInfo(payload []byte) (width, height int, err error) {
	return f(payload)
}

// VP8Header parses the 10-byte VP8 key-frame header. It is used whenever a
// nil HeaderInspector is passed.
var VP8Header HeaderInspector = HeaderInspectorFunc(container.ParseVP8Header)

// Container is one compressed VP8 payload together with the dimensions
// its header reports.
type Container struct {
	Payload []byte
	Width   int
	Height  int
}

// NewContainer inspects payload with hi (VP8Header if nil) and returns a
// container that owns payload.
func NewContainer(payload []byte, hi HeaderInspector) (*Container, error) {
	w, h, err := inspect(hi, payload)
	if err != nil {
		return nil, err
	}
	return &Container{Payload: payload, Width: w, Height: h}, nil
}

func inspect(hi HeaderInspector, payload []byte) (int, int, error) {
	if hi == nil {
		hi = VP8Header
	}
	w, h, err := hi.HeaderInfo(payload)
	if err != nil {
		if !errors.Is(err, ErrHeader) {
			err = fmt.Errorf("%w: %w", ErrHeader, err)
		}
		return 0, 0, err
	}
	return w, h, nil
}

// ReadContainer reads a RIFF{"WEBP" "VP8 "{payload}} stream from r and
// inspects the payload with hi (VP8Header if nil).
//
// Any tag or length that deviates from the single-image layout yields an
// error wrapping ErrFormat; no chunk is skipped. Errors from r itself are
// returned unchanged.
func ReadContainer(r io.Reader, hi HeaderInspector) (*Container, error) {
	return readContainer(r, hi, container.MaxChunkPayload)
}

func readContainer(r io.Reader, hi HeaderInspector, maxPayload uint32) (*Container, error) {
	payload, err := container.ReadLimit(r, maxPayload)
	if err != nil {
		return nil, err
	}
	return NewContainer(payload, hi)
}

// UnmarshalContainer is like ReadContainer but reads from data.
func UnmarshalContainer(data []byte, hi HeaderInspector) (*Container, error) {
	return ReadContainer(bytes.NewReader(data), hi)
}

// WriteContainer frames payload as RIFF{"WEBP" "VP8 "{payload}} and writes
// it to w. Errors from w are returned unchanged.
func WriteContainer(w io.Writer, payload []byte) error {
	return container.Write(w, payload)
}

// MarshalContainer returns payload framed as a complete WebP file.
func MarshalContainer(payload []byte) ([]byte, error) {
	return container.Marshal(payload)
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (c *Container) MarshalBinary() ([]byte, error) {
	return container.Marshal(c.Payload)
}

// WriteTo implements io.WriterTo.
func (c *Container) WriteTo(w io.Writer) (int64, error) {
	buf, err := container.Marshal(c.Payload)
	if err != nil {
		return 0, err
	}
	n, err := w.Write(buf)
	return int64(n), err
}
