package vp8

import (
	"bytes"
	"fmt"
	"image"

	xvp8 "golang.org/x/image/vp8"

	"github.com/deepteams/webm"
)

// Decoder decodes VP8 key frames. The zero value is ready to use and a
// Decoder may be shared between goroutines.
type Decoder struct{}

var _ webm.Decoder = (*Decoder)(nil)

// NewDecoder returns a Decoder.
func NewDecoder() *Decoder { return &Decoder{} }

// HeaderInfo implements webm.HeaderInspector.
func (d *Decoder) HeaderInfo(payload []byte) (width, height int, err error) {
	return HeaderInfo(payload)
}

// Decode implements webm.Decoder. Interleaved formats are produced by
// running the decoded planes through webm.ConvertImage.
func (d *Decoder) Decode(payload []byte, format webm.PixelFormat) (webm.Image, error) {
	if !format.Valid() {
		return nil, fmt.Errorf("%w: %v", webm.ErrPixelFormat, format)
	}
	img, err := d.DecodeYUV(payload)
	if err != nil {
		return nil, err
	}
	if format == webm.YUV {
		return img, nil
	}
	b, err := webm.ConvertImage(img, format)
	if err != nil {
		return nil, err
	}
	return b, nil
}

// DecodeYUV decodes payload into planar form.
func (d *Decoder) DecodeYUV(payload []byte) (*webm.YUVImage, error) {
	if _, _, err := HeaderInfo(payload); err != nil {
		return nil, err
	}

	dec := xvp8.NewDecoder()
	dec.Init(bytes.NewReader(payload), len(payload))
	fh, err := dec.DecodeFrameHeader()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", webm.ErrHeader, err)
	}
	if !fh.KeyFrame {
		return nil, fmt.Errorf("%w: not a key frame", webm.ErrHeader)
	}
	m, err := dec.DecodeFrame()
	if err != nil {
		return nil, fmt.Errorf("vp8: decoding frame: %w", err)
	}
	return fromYCbCr(m)
}

// fromYCbCr copies a 4:2:0 picture into the webm planar layout, where each
// luma row has its own chroma row: row y repeats source chroma row y/2.
func fromYCbCr(m *image.YCbCr) (*webm.YUVImage, error) {
	if m.SubsampleRatio != image.YCbCrSubsampleRatio420 {
		return nil, fmt.Errorf("vp8: unexpected subsample ratio %v", m.SubsampleRatio)
	}

	r := m.Rect
	w, h := r.Dx(), r.Dy()
	uvw := (w + 1) / 2

	y := make([]byte, w*h)
	u := make([]byte, uvw*h)
	v := make([]byte, uvw*h)
	for row := 0; row < h; row++ {
		yi := m.YOffset(r.Min.X, r.Min.Y+row)
		ci := m.COffset(r.Min.X, r.Min.Y+row)
		copy(y[row*w:(row+1)*w], m.Y[yi:yi+w])
		copy(u[row*uvw:(row+1)*uvw], m.Cb[ci:ci+uvw])
		copy(v[row*uvw:(row+1)*uvw], m.Cr[ci:ci+uvw])
	}
	return webm.NewYUVImage(w, h, y, u, v, w, uvw)
}
