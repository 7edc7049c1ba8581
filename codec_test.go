package webm

import (
	"bytes"
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pion/logging"
)

// fakeVP8 stands in for a real VP8 codec. Its payload is a 4-byte header
// (width and height as little-endian uint16) followed by one luma value
// that fills the whole picture; chroma is always neutral.
type fakeVP8 struct {
	quality  float32
	encoded  *Bitmap
	fail     error
	override Image
}

func fakePayload(w, h int, luma byte) []byte {
	p := make([]byte, 5)
	binary.LittleEndian.PutUint16(p[0:2], uint16(w))
	binary.LittleEndian.PutUint16(p[2:4], uint16(h))
	p[4] = luma
	return p
}

func (f *fakeVP8) HeaderInfo(p []byte) (int, int, error) {
	if len(p) < 5 {
		return 0, 0, errors.New("short fake header")
	}
	return int(binary.LittleEndian.Uint16(p[0:2])), int(binary.LittleEndian.Uint16(p[2:4])), nil
}

func (f *fakeVP8) Decode(p []byte, format PixelFormat) (Image, error) {
	if f.fail != nil {
		return nil, f.fail
	}
	if f.override != nil {
		return f.override, nil
	}
	w, h, err := f.HeaderInfo(p)
	if err != nil {
		return nil, err
	}
	img := newTestYUV(w, h)
	for i := range img.Y {
		img.Y[i] = p[4]
	}
	for i := range img.U {
		img.U[i], img.V[i] = 128, 128
	}
	if format == YUV {
		return img, nil
	}
	return ConvertImage(img, format)
}

func (f *fakeVP8) Encode(b *Bitmap, quality float32) ([]byte, error) {
	if f.fail != nil {
		return nil, f.fail
	}
	f.quality = quality
	f.encoded = b
	var luma byte
	if len(b.Pix) > 1 {
		luma = b.Pix[1] // green carries luma for gray input
	}
	return fakePayload(b.Width, b.Height, luma), nil
}

func newFakeCodec(t *testing.T, f *fakeVP8, opts *Options) *Codec {
	t.Helper()
	c, err := NewCodec(f, f, opts)
	if err != nil {
		t.Fatalf("NewCodec: %v", err)
	}
	return c
}

func TestCodec_LoadFormats(t *testing.T) {
	data, err := MarshalContainer(fakePayload(6, 3, 128))
	if err != nil {
		t.Fatal(err)
	}
	c := newFakeCodec(t, &fakeVP8{}, nil)

	for _, f := range []PixelFormat{RGB, RGBA, BGR, BGRA, YUV} {
		img, err := c.Load(bytes.NewReader(data), f)
		if err != nil {
			t.Fatalf("%v: unexpected error: %v", f, err)
		}
		if img.Format() != f {
			t.Fatalf("format = %v, want %v", img.Format(), f)
		}
		if w, h := img.Size(); w != 6 || h != 3 {
			t.Fatalf("%v: size = %dx%d, want 6x3", f, w, h)
		}
		if b, ok := img.(*Bitmap); ok && b.Pix[0] != 130 {
			t.Fatalf("%v: first channel = %d, want 130", f, b.Pix[0])
		}
	}
}

func TestCodec_SaveLoadRoundTrip(t *testing.T) {
	fake := &fakeVP8{}
	c := newFakeCodec(t, fake, &Options{Quality: 80})

	src := newTestYUV(5, 4)
	for i := range src.Y {
		src.Y[i] = 128
	}
	for i := range src.U {
		src.U[i], src.V[i] = 128, 128
	}

	var buf bytes.Buffer
	if err := c.Save(&buf, src); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if fake.quality != 80 {
		t.Fatalf("quality = %v, want 80", fake.quality)
	}
	if fake.encoded.Format() != RGB {
		t.Fatalf("encoder got %v, want RGB", fake.encoded.Format())
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("RIFF")) {
		t.Fatalf("output does not start with RIFF: % x", buf.Bytes()[:4])
	}

	w, h, err := c.Info(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("Info: %v", err)
	}
	if w != 5 || h != 4 {
		t.Fatalf("Info = %dx%d, want 5x4", w, h)
	}

	img, err := c.Load(&buf, YUV)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	yuv := img.(*YUVImage)
	if yuv.Y[0] != 130 {
		t.Fatalf("luma = %d, want 130", yuv.Y[0])
	}
}

func TestCodec_SaveFileLoadFile(t *testing.T) {
	c := newFakeCodec(t, &fakeVP8{}, nil)
	path := filepath.Join(t.TempDir(), "gray.webp")

	src, err := NewBitmap(BGRA, 2, 2, bytes.Repeat([]byte{90, 90, 90, 255}, 4))
	if err != nil {
		t.Fatal(err)
	}
	if err := c.SaveFile(path, src); err != nil {
		t.Fatalf("SaveFile: %v", err)
	}
	img, err := c.LoadFile(path, RGBA)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if w, h := img.Size(); w != 2 || h != 2 {
		t.Fatalf("size = %dx%d, want 2x2", w, h)
	}

	if _, err := c.LoadFile(filepath.Join(t.TempDir(), "missing.webp"), RGB); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("missing file: expected os.ErrNotExist, got %v", err)
	}
}

func TestCodec_SaveFileEncodeFailure(t *testing.T) {
	c := newFakeCodec(t, &fakeVP8{fail: errors.New("boom")}, nil)
	path := filepath.Join(t.TempDir(), "never.webp")
	src, _ := NewBitmap(RGB, 1, 1, []byte{1, 2, 3})
	if err := c.SaveFile(path, src); !errors.Is(err, ErrEncode) {
		t.Fatalf("expected ErrEncode, got %v", err)
	}
	if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("file should not exist, stat err = %v", err)
	}
}

type emptyEncoder struct{}

func (emptyEncoder) Encode(*Bitmap, float32) ([]byte, error) { return nil, nil }

func TestCodec_EncodeErrors(t *testing.T) {
	c, err := NewCodec(nil, emptyEncoder{}, nil)
	if err != nil {
		t.Fatal(err)
	}
	src, _ := NewBitmap(RGB, 1, 1, []byte{1, 2, 3})
	if _, err := c.Encode(src); !errors.Is(err, ErrEncode) {
		t.Fatalf("empty payload: expected ErrEncode, got %v", err)
	}
	if _, err := c.Encode(nil); !errors.Is(err, ErrInvalidImage) {
		t.Fatalf("nil image: expected ErrInvalidImage, got %v", err)
	}
	bad := &YUVImage{Width: 2, Height: 2, Y: make([]byte, 4), Stride: 2, UVStride: 1}
	if _, err := c.Encode(bad); !errors.Is(err, ErrInvalidImage) {
		t.Fatalf("invalid YUV: expected ErrInvalidImage, got %v", err)
	}
	if _, err := c.Load(bytes.NewReader(nil), RGB); !errors.Is(err, ErrNoCodec) {
		t.Fatalf("no decoder: expected ErrNoCodec, got %v", err)
	}

	c2 := newFakeCodec(t, &fakeVP8{}, nil)
	c2.enc = nil
	if err := c2.Save(&bytes.Buffer{}, src); !errors.Is(err, ErrNoCodec) {
		t.Fatalf("no encoder: expected ErrNoCodec, got %v", err)
	}
}

func TestCodec_DecodeChecks(t *testing.T) {
	ct := &Container{Payload: fakePayload(4, 4, 50), Width: 4, Height: 4}

	wrongSize := newTestYUV(2, 2)
	c := newFakeCodec(t, &fakeVP8{override: wrongSize}, nil)
	if _, err := c.Decode(ct, YUV); !errors.Is(err, ErrInvalidImage) {
		t.Fatalf("size mismatch: expected ErrInvalidImage, got %v", err)
	}

	c = newFakeCodec(t, &fakeVP8{override: newTestYUV(4, 4)}, nil)
	if _, err := c.Decode(ct, RGB); !errors.Is(err, ErrInvalidImage) {
		t.Fatalf("format mismatch: expected ErrInvalidImage, got %v", err)
	}

	c = newFakeCodec(t, &fakeVP8{}, nil)
	if _, err := c.Decode(ct, PixelFormat(42)); !errors.Is(err, ErrPixelFormat) {
		t.Fatalf("bad format: expected ErrPixelFormat, got %v", err)
	}

	cause := errors.New("corrupt partition")
	c = newFakeCodec(t, &fakeVP8{fail: cause}, nil)
	if _, err := c.Decode(ct, RGB); !errors.Is(err, cause) {
		t.Fatalf("decoder failure: expected cause, got %v", err)
	}
}

func TestCodec_LoadLimit(t *testing.T) {
	data, err := MarshalContainer(append(fakePayload(1, 1, 0), make([]byte, 100)...))
	if err != nil {
		t.Fatal(err)
	}
	c := newFakeCodec(t, &fakeVP8{}, &Options{Quality: 50, MaxPayloadSize: 32})
	if _, err := c.Load(bytes.NewReader(data), RGB); !errors.Is(err, ErrTooLarge) {
		t.Fatalf("expected ErrTooLarge, got %v", err)
	}
}

func TestNewCodec_InvalidOptions(t *testing.T) {
	for _, opts := range []*Options{
		{Quality: -1},
		{Quality: 100.5},
	} {
		if _, err := NewCodec(nil, nil, opts); err == nil {
			t.Errorf("NewCodec(%+v): expected error", *opts)
		}
	}
}

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()
	if opts.Quality != 100 {
		t.Fatalf("Quality = %v, want 100", opts.Quality)
	}
	if err := validateOptions(opts); err != nil {
		t.Fatalf("default options invalid: %v", err)
	}
}

func TestCodec_Logging(t *testing.T) {
	var out strings.Builder
	factory := logging.NewDefaultLoggerFactory()
	factory.DefaultLogLevel = logging.LogLevelDebug
	factory.Writer = &out

	c := newFakeCodec(t, &fakeVP8{}, &Options{Quality: 75, LoggerFactory: factory})
	src, _ := NewBitmap(RGB, 1, 1, []byte{1, 2, 3})
	if err := c.Save(&bytes.Buffer{}, src); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "encoded 1x1 RGB image at quality 75") {
		t.Fatalf("missing debug log, got %q", out.String())
	}
}
