package container

import (
	"encoding/binary"
	"fmt"
)

// ParseVP8Header extracts width and height from a VP8 lossy bitstream header.
// Minimal parsing: 10-byte frame header containing the VP8 signature.
func ParseVP8Header(data []byte) (width, height int, err error) {
	if len(data) < VP8FrameHeaderSize {
		return 0, 0, fmt.Errorf("%w: %d bytes, need %d", ErrHeader, len(data), VP8FrameHeaderSize)
	}

	// First 3 bytes: frame tag (keyframe info, version, show, partition size).
	frameTag := uint32(data[0]) | uint32(data[1])<<8 | uint32(data[2])<<16
	isKeyframe := (frameTag & 1) == 0
	if !isKeyframe {
		return 0, 0, fmt.Errorf("%w: non-keyframe", ErrHeader)
	}

	// Bytes 3-5: VP8 signature (0x9D 0x01 0x2A), read as big-endian.
	sig := uint32(data[3])<<16 | uint32(data[4])<<8 | uint32(data[5])
	if sig != VP8Signature {
		return 0, 0, fmt.Errorf("%w: signature 0x%06x", ErrHeader, sig)
	}

	// Bytes 6-9: width (14 bits + 2 bits scale) and height (14 bits + 2 bits scale).
	width = int(binary.LittleEndian.Uint16(data[6:8])) & VP8MaxDimension
	height = int(binary.LittleEndian.Uint16(data[8:10])) & VP8MaxDimension
	if width == 0 || height == 0 {
		return 0, 0, fmt.Errorf("%w: zero dimension %dx%d", ErrHeader, width, height)
	}

	return width, height, nil
}

// PutVP8Header writes a 10-byte key-frame header for a width x height frame
// whose first partition is part0Size bytes long. It is the inverse of
// ParseVP8Header and is used to build synthetic payloads.
func PutVP8Header(dst []byte, width, height int, part0Size uint32) {
	// Frame tag: keyframe (bit0=0), version 0, show_frame (bit4), partition size.
	tag := uint32(1<<4) | part0Size<<5
	dst[0] = byte(tag)
	dst[1] = byte(tag >> 8)
	dst[2] = byte(tag >> 16)
	dst[3] = byte(VP8Signature >> 16 & 0xff)
	dst[4] = byte(VP8Signature >> 8 & 0xff)
	dst[5] = byte(VP8Signature & 0xff)
	binary.LittleEndian.PutUint16(dst[6:8], uint16(width&VP8MaxDimension))
	binary.LittleEndian.PutUint16(dst[8:10], uint16(height&VP8MaxDimension))
}
