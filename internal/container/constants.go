// Package container implements the RIFF framing used by simple (lossy,
// single image) WebP files: FourCC constants, chunk headers, the strict
// RIFF/WEBP/VP8 reader and writer, and VP8 key-frame header inspection.
package container

import "encoding/binary"

// FourCC creates a FourCC value from four bytes (little-endian).
func FourCC(a, b, c, d byte) uint32 {
	return uint32(a) | uint32(b)<<8 | uint32(c)<<16 | uint32(d)<<24
}

// Container FourCC values.
var (
	FourCCRIFF = FourCC('R', 'I', 'F', 'F')
	FourCCWEBP = FourCC('W', 'E', 'B', 'P')
	FourCCVP8  = FourCC('V', 'P', '8', ' ')
)

// VP8 key-frame header constants.
const (
	VP8Signature       = 0x9d012a // start code following the 3-byte frame tag
	VP8FrameHeaderSize = 10       // frame tag + start code + width + height
	VP8MaxDimension    = 1<<14 - 1
)

// Container structure sizes.
const (
	TagSize         = 4  // Size of a chunk tag (e.g. "VP8 ")
	ChunkHeaderSize = 8  // Size of a chunk header
	RIFFHeaderSize  = 12 // Size of the RIFF header ("RIFFnnnnWEBP")
)

// MaxChunkPayload is the largest payload whose enclosing RIFF length still
// fits in 32 bits.
const MaxChunkPayload = ^uint32(0) - RIFFHeaderSize - 1

// ReadLE32 reads a little-endian uint32 from data.
func ReadLE32(data []byte) uint32 {
	return binary.LittleEndian.Uint32(data)
}

// PutLE32 writes a little-endian uint32 to data.
func PutLE32(data []byte, v uint32) {
	binary.LittleEndian.PutUint32(data, v)
}
