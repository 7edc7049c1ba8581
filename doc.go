// Package webm reads and writes simple lossy WebP files and converts
// decoded VP8 pictures from planar YUV to interleaved RGB.
//
// The package does not implement VP8 compression itself. A WebP file
// is handled in three independent pieces:
//   - Container framing: ReadContainer and WriteContainer move a raw VP8
//     payload in and out of its RIFF{"WEBP" "VP8 "{...}} wrapping.
//   - Color conversion: ConvertPixel and ConvertImage turn 4:2:0 YUV
//     samples into RGB, RGBA, BGR or BGRA using the fixed-point tables of
//     the VP8 reference decoder, so results are bit-exact.
//   - Codec: a Codec combines the two with an injected Decoder and Encoder
//     (see package vp8 for implementations) to load and save images.
//
// Basic usage for reading a file's payload:
//
//	c, err := webm.ReadContainer(f, nil)
//	fmt.Println(c.Width, c.Height, len(c.Payload))
//
// Basic usage for decoding and encoding:
//
//	codec, err := webm.NewCodec(vp8.NewDecoder(), vp8.NewEncoder(), nil)
//	img, err := codec.Load(r, webm.RGBA)
//	err = codec.Save(w, img)
package webm
