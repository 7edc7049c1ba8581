package webm

import (
	"fmt"
	"image"
)

// PixelFormat identifies the memory layout of decoded pixels.
type PixelFormat int

const (
	RGB  PixelFormat = iota // interleaved R, G, B
	RGBA                    // interleaved R, G, B, A
	BGR                     // interleaved B, G, R
	BGRA                    // interleaved B, G, R, A
	YUV                     // planar Y, U, V with 4:2:0 chroma
)

// String returns a human-readable format name.
func (f PixelFormat) String() string {
	switch f {
	case RGB:
		return "RGB"
	case RGBA:
		return "RGBA"
	case BGR:
		return "BGR"
	case BGRA:
		return "BGRA"
	case YUV:
		return "YUV"
	default:
		return fmt.Sprintf("PixelFormat(%d)", int(f))
	}
}

// Valid reports whether f is one of the recognized formats.
func (f PixelFormat) Valid() bool { return f >= RGB && f <= YUV }

// Interleaved reports whether f stores all channels of a pixel together.
func (f PixelFormat) Interleaved() bool { return f >= RGB && f <= BGRA }

// HasAlpha reports whether f carries an alpha channel.
func (f PixelFormat) HasAlpha() bool { return f == RGBA || f == BGRA }

// BytesPerPixel returns the size of one interleaved pixel, or 0 for
// planar and unknown formats.
func (f PixelFormat) BytesPerPixel() int {
	switch f {
	case RGB, BGR:
		return 3
	case RGBA, BGRA:
		return 4
	default:
		return 0
	}
}

// Image is a decoded picture. The only implementations are *Bitmap and
// *YUVImage.
type Image interface {
	// Format returns the pixel layout of the image.
	Format() PixelFormat
	// Size returns the image dimensions in pixels.
	Size() (width, height int)
	// Validate reports whether the image's buffers are consistent with
	// its dimensions. The error wraps ErrInvalidImage.
	Validate() error

	isImage()
}

// Bitmap is an interleaved image in one of RGB, RGBA, BGR or BGRA.
type Bitmap struct {
	PixFormat PixelFormat
	Width     int
	Height    int
	// Stride is the distance in bytes between vertically adjacent pixels.
	Stride int
	Pix    []byte
}

// NewBitmap wraps pix as a tightly packed interleaved image.
func NewBitmap(format PixelFormat, width, height int, pix []byte) (*Bitmap, error) {
	b := &Bitmap{
		PixFormat: format,
		Width:     width,
		Height:    height,
		Stride:    width * format.BytesPerPixel(),
		Pix:       pix,
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *Bitmap) isImage() {}

// Format implements Image.
func (b *Bitmap) Format() PixelFormat { return b.PixFormat }

// Size implements Image.
func (b *Bitmap) Size() (width, height int) { return b.Width, b.Height }

// Validate implements Image.
func (b *Bitmap) Validate() error {
	if b == nil || b.Pix == nil {
		return fmt.Errorf("%w: missing pixel buffer", ErrInvalidImage)
	}
	if !b.PixFormat.Interleaved() {
		return fmt.Errorf("%w: %v is not an interleaved format", ErrInvalidImage, b.PixFormat)
	}
	if b.Width < 0 || b.Height < 0 {
		return fmt.Errorf("%w: negative dimensions %dx%d", ErrInvalidImage, b.Width, b.Height)
	}
	if row := b.Width * b.PixFormat.BytesPerPixel(); b.Stride < row {
		return fmt.Errorf("%w: stride %d < row size %d", ErrInvalidImage, b.Stride, row)
	}
	if need := b.Stride * b.Height; len(b.Pix) < need {
		return fmt.Errorf("%w: pixel buffer has %d bytes, need %d", ErrInvalidImage, len(b.Pix), need)
	}
	return nil
}

// ToNRGBA copies the bitmap into a new *image.NRGBA. Formats without
// alpha become fully opaque.
func (b *Bitmap) ToNRGBA() *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, b.Width, b.Height))
	b.CopyToNRGBA(dst)
	return dst
}

// CopyToNRGBA writes every pixel of b into dst, which must be at least as
// large as b. Formats without alpha become fully opaque.
func (b *Bitmap) CopyToNRGBA(dst *image.NRGBA) {
	bpp := b.PixFormat.BytesPerPixel()
	swap := b.PixFormat == BGR || b.PixFormat == BGRA
	for y := 0; y < b.Height; y++ {
		src := b.Pix[y*b.Stride:]
		out := dst.Pix[dst.PixOffset(dst.Rect.Min.X, dst.Rect.Min.Y+y):]
		for x := 0; x < b.Width; x++ {
			s := src[x*bpp : x*bpp+bpp]
			d := out[x*4 : x*4+4]
			if swap {
				d[0], d[1], d[2] = s[2], s[1], s[0]
			} else {
				d[0], d[1], d[2] = s[0], s[1], s[2]
			}
			d[3] = 0xff
			if bpp == 4 {
				d[3] = s[3]
			}
		}
	}
}

// YUVImage is a planar image. U and V hold one sample per horizontal
// pair of luma samples and have one row per luma row, so the chroma for
// pixel (x, y) lives at y*UVStride + x/2.
type YUVImage struct {
	Width    int
	Height   int
	Y        []byte
	U        []byte
	V        []byte
	Stride   int // bytes per luma row
	UVStride int // bytes per chroma row
}

// NewYUVImage wraps the three planes as a planar image.
func NewYUVImage(width, height int, y, u, v []byte, stride, uvStride int) (*YUVImage, error) {
	img := &YUVImage{
		Width:    width,
		Height:   height,
		Y:        y,
		U:        u,
		V:        v,
		Stride:   stride,
		UVStride: uvStride,
	}
	if err := img.Validate(); err != nil {
		return nil, err
	}
	return img, nil
}

func (img *YUVImage) isImage() {}

// Format implements Image.
func (img *YUVImage) Format() PixelFormat { return YUV }

// Size implements Image.
func (img *YUVImage) Size() (width, height int) { return img.Width, img.Height }

// Validate implements Image.
func (img *YUVImage) Validate() error {
	if img == nil || img.Y == nil {
		return fmt.Errorf("%w: missing luma plane", ErrInvalidImage)
	}
	if img.U == nil || img.V == nil {
		return fmt.Errorf("%w: missing chroma plane", ErrInvalidImage)
	}
	if img.Width < 0 || img.Height < 0 {
		return fmt.Errorf("%w: negative dimensions %dx%d", ErrInvalidImage, img.Width, img.Height)
	}
	if img.Stride < img.Width {
		return fmt.Errorf("%w: stride %d < width %d", ErrInvalidImage, img.Stride, img.Width)
	}
	if half := (img.Width + 1) / 2; img.UVStride < half {
		return fmt.Errorf("%w: uv stride %d < %d", ErrInvalidImage, img.UVStride, half)
	}
	if need := img.Stride * img.Height; len(img.Y) != need {
		return fmt.Errorf("%w: luma plane has %d bytes, want %d", ErrInvalidImage, len(img.Y), need)
	}
	need := img.UVStride * img.Height
	if len(img.U) != need || len(img.V) != need {
		return fmt.Errorf("%w: chroma planes have %d/%d bytes, want %d", ErrInvalidImage, len(img.U), len(img.V), need)
	}
	return nil
}
