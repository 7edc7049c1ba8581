package webm

import (
	"fmt"

	"github.com/deepteams/webm/internal/dsp"
)

// ConvertPixel converts one YUV sample triple to RGB using the VP8
// reference fixed-point tables.
func ConvertPixel(y, u, v uint8) (r, g, b uint8) {
	return dsp.YUVToR(y, v), dsp.YUVToG(y, u, v), dsp.YUVToB(y, u)
}

// ConvertPixelTo writes one converted pixel to dst in the channel order of
// format. Alpha, when present, is always 255.
func ConvertPixelTo(dst []byte, format PixelFormat, y, u, v uint8) error {
	if !format.Interleaved() {
		return fmt.Errorf("%w: %v", ErrPixelFormat, format)
	}
	if n := format.BytesPerPixel(); len(dst) < n {
		return fmt.Errorf("webm: destination has %d bytes, need %d", len(dst), n)
	}
	switch format {
	case RGB:
		dsp.YUVToRGB(y, u, v, dst)
	case RGBA:
		dsp.YUVToRGBA(y, u, v, dst)
	case BGR:
		dsp.YUVToBGR(y, u, v, dst)
	case BGRA:
		dsp.YUVToBGRA(y, u, v, dst)
	}
	return nil
}

// rowFunc returns the row converter for an interleaved format.
func rowFunc(format PixelFormat) dsp.RowFunc {
	switch format {
	case RGB:
		return dsp.YUVToRGBRow
	case RGBA:
		return dsp.YUVToRGBARow
	case BGR:
		return dsp.YUVToBGRRow
	case BGRA:
		return dsp.YUVToBGRARow
	}
	return nil
}

// ConvertImage converts a planar image to a tightly packed bitmap in the
// requested interleaved format. The chroma sample for pixel (x, y) is read
// from index y*UVStride + x/2 of each chroma plane.
func ConvertImage(img *YUVImage, format PixelFormat) (*Bitmap, error) {
	if err := img.Validate(); err != nil {
		return nil, err
	}
	convert := rowFunc(format)
	if convert == nil {
		return nil, fmt.Errorf("%w: %w: cannot convert YUV to %v", ErrInvalidImage, ErrPixelFormat, format)
	}

	bpp := format.BytesPerPixel()
	out := &Bitmap{
		PixFormat: format,
		Width:     img.Width,
		Height:    img.Height,
		Stride:    img.Width * bpp,
		Pix:       make([]byte, img.Width*img.Height*bpp),
	}
	for y := 0; y < img.Height; y++ {
		convert(
			img.Y[y*img.Stride:],
			img.U[y*img.UVStride:],
			img.V[y*img.UVStride:],
			out.Pix[y*out.Stride:],
			img.Width,
		)
	}
	return out, nil
}
