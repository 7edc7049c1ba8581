package webm

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/pion/logging"

	ilogging "github.com/deepteams/webm/internal/logging"
)

// Decoder turns a compressed payload into pixels. Implementations wrap an
// external VP8 decoder; see package vp8.
type Decoder interface {
	HeaderInspector

	// Decode decodes payload into format. A YUV request returns a
	// *YUVImage, any other format a *Bitmap.
	Decode(payload []byte, format PixelFormat) (Image, error)
}

// Encoder compresses an interleaved bitmap into a raw VP8 payload.
type Encoder interface {
	Encode(b *Bitmap, quality float32) ([]byte, error)
}

// Codec loads and saves WebP files through an injected Decoder and
// Encoder. A Codec holds no mutable state and is safe for concurrent use
// if its collaborators are.
type Codec struct {
	dec  Decoder
	enc  Encoder
	opts Options
	log  logging.LeveledLogger
}

// NewCodec returns a codec using dec and enc. Either may be nil if the
// corresponding direction is never used. If opts is nil, DefaultOptions()
// is used.
func NewCodec(dec Decoder, enc Encoder, opts *Options) (*Codec, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	if err := validateOptions(opts); err != nil {
		return nil, err
	}
	return &Codec{
		dec:  dec,
		enc:  enc,
		opts: *opts,
		log:  ilogging.NewLoggerFrom(opts.LoggerFactory, "webm"),
	}, nil
}

// Info reads a container from r and returns the payload dimensions without
// decoding pixels.
func (c *Codec) Info(r io.Reader) (width, height int, err error) {
	ct, err := readContainer(r, c.inspector(), c.opts.maxPayload())
	if err != nil {
		return 0, 0, err
	}
	return ct.Width, ct.Height, nil
}

func (c *Codec) inspector() HeaderInspector {
	if c.dec == nil {
		return nil
	}
	return c.dec
}

// Load reads a container from r and decodes its payload into format.
func (c *Codec) Load(r io.Reader, format PixelFormat) (Image, error) {
	if c.dec == nil {
		return nil, fmt.Errorf("%w: decoder", ErrNoCodec)
	}
	ct, err := readContainer(r, c.dec, c.opts.maxPayload())
	if err != nil {
		return nil, err
	}
	c.log.Debugf("read container: %d byte payload, %dx%d", len(ct.Payload), ct.Width, ct.Height)
	return c.Decode(ct, format)
}

// LoadFile is like Load but reads the named file.
func (c *Codec) LoadFile(path string, format PixelFormat) (Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return c.Load(f, format)
}

// Decode decodes ct's payload into format and checks the result against
// the dimensions recorded in ct.
func (c *Codec) Decode(ct *Container, format PixelFormat) (Image, error) {
	if c.dec == nil {
		return nil, fmt.Errorf("%w: decoder", ErrNoCodec)
	}
	if ct == nil {
		return nil, fmt.Errorf("%w: no container", ErrFormat)
	}
	if !format.Valid() {
		return nil, fmt.Errorf("%w: %v", ErrPixelFormat, format)
	}

	img, err := c.dec.Decode(ct.Payload, format)
	if err != nil {
		return nil, fmt.Errorf("webm: decoding %v: %w", format, err)
	}
	if img == nil {
		return nil, fmt.Errorf("%w: decoder returned no image", ErrInvalidImage)
	}
	if err := img.Validate(); err != nil {
		return nil, err
	}
	if got := img.Format(); got != format {
		return nil, fmt.Errorf("%w: decoder returned %v, want %v", ErrInvalidImage, got, format)
	}
	if w, h := img.Size(); w != ct.Width || h != ct.Height {
		return nil, fmt.Errorf("%w: decoded %dx%d, header says %dx%d", ErrInvalidImage, w, h, ct.Width, ct.Height)
	}

	c.log.Tracef("decoded %dx%d %v image", ct.Width, ct.Height, format)
	return img, nil
}

// Encode compresses img and returns the payload with its dimensions. YUV
// images are converted to RGB before they reach the encoder.
func (c *Codec) Encode(img Image) (*Container, error) {
	if c.enc == nil {
		return nil, fmt.Errorf("%w: encoder", ErrNoCodec)
	}
	b, err := c.toBitmap(img)
	if err != nil {
		return nil, err
	}

	payload, err := c.enc.Encode(b, c.opts.Quality)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncode, err)
	}
	if len(payload) == 0 {
		return nil, fmt.Errorf("%w: empty payload", ErrEncode)
	}

	c.log.Debugf("encoded %dx%d %v image at quality %.0f: %d bytes", b.Width, b.Height, b.PixFormat, c.opts.Quality, len(payload))
	return &Container{Payload: payload, Width: b.Width, Height: b.Height}, nil
}

func (c *Codec) toBitmap(img Image) (*Bitmap, error) {
	switch img := img.(type) {
	case *Bitmap:
		if err := img.Validate(); err != nil {
			return nil, err
		}
		return img, nil
	case *YUVImage:
		return ConvertImage(img, RGB)
	default:
		return nil, fmt.Errorf("%w: no image", ErrInvalidImage)
	}
}

// Save encodes img and writes it to w as a WebP file.
func (c *Codec) Save(w io.Writer, img Image) error {
	ct, err := c.Encode(img)
	if err != nil {
		return err
	}
	_, err = ct.WriteTo(w)
	return err
}

// SaveFile is like Save but creates or truncates the named file. The file
// is only created once encoding has succeeded and is removed again if
// writing fails.
func (c *Codec) SaveFile(path string, img Image) (err error) {
	ct, err := c.Encode(img)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			err = errors.Join(err, os.Remove(path))
		}
	}()

	_, err = ct.WriteTo(f)
	return err
}
