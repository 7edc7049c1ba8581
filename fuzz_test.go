package webm

import (
	"bytes"
	"errors"
	"io"
	"testing"
)

// addContainerSeeds adds well-formed and hand-broken containers to the
// fuzz corpus.
func addContainerSeeds(f *testing.F) {
	f.Helper()
	for _, payload := range [][]byte{
		vp8Payload(1, 1, 0),
		vp8Payload(16, 16, 5),
		vp8Payload(33, 17, 1),
		{},
	} {
		data, err := MarshalContainer(payload)
		if err != nil {
			continue
		}
		f.Add(data)
		f.Add(data[:len(data)-1])
		if len(data) > 16 {
			bad := bytes.Clone(data)
			bad[12] = 'X'
			f.Add(bad)
		}
	}
	f.Add([]byte("RIFF"))
	f.Add([]byte("RIFF\xff\xff\xff\xffWEBPVP8 "))
}

func FuzzReadContainer(f *testing.F) {
	addContainerSeeds(f)
	f.Fuzz(func(t *testing.T, data []byte) {
		ct, err := ReadContainer(bytes.NewReader(data), nil)
		if err != nil {
			if ct != nil {
				t.Fatal("non-nil container returned with error")
			}
			if !errors.Is(err, ErrFormat) && !errors.Is(err, ErrHeader) &&
				!errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
				t.Fatalf("unexpected error kind: %v", err)
			}
			return
		}

		// Anything accepted must survive a write/read cycle unchanged.
		out, err := MarshalContainer(ct.Payload)
		if err != nil {
			t.Fatalf("MarshalContainer: %v", err)
		}
		again, err := UnmarshalContainer(out, nil)
		if err != nil {
			t.Fatalf("re-read failed: %v", err)
		}
		if !bytes.Equal(again.Payload, ct.Payload) || again.Width != ct.Width || again.Height != ct.Height {
			t.Fatal("payload changed across write/read cycle")
		}
	})
}

func FuzzConvertImage(f *testing.F) {
	f.Add(4, 2, []byte{81, 81, 145, 145, 41, 41, 128, 128, 90, 54, 240, 128, 240, 34, 110, 128})
	f.Add(1, 1, []byte{0, 0, 0})
	f.Fuzz(func(t *testing.T, w, h int, data []byte) {
		if w < 0 || h < 0 || w > 64 || h > 64 {
			return
		}
		uvw := (w + 1) / 2
		need := w*h + 2*uvw*h
		if len(data) == 0 || len(data) < need {
			return
		}
		img, err := NewYUVImage(w, h, data[:w*h], data[w*h:w*h+uvw*h], data[w*h+uvw*h:need], w, uvw)
		if err != nil {
			t.Fatalf("NewYUVImage: %v", err)
		}
		for _, format := range []PixelFormat{RGB, RGBA, BGR, BGRA} {
			bmp, err := ConvertImage(img, format)
			if err != nil {
				t.Fatalf("ConvertImage(%v): %v", format, err)
			}
			if len(bmp.Pix) != w*h*format.BytesPerPixel() {
				t.Fatalf("%v: %d bytes, want %d", format, len(bmp.Pix), w*h*format.BytesPerPixel())
			}
		}
	})
}
