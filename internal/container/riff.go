package container

import (
	"errors"
	"fmt"
	"io"
)

// Common errors.
var (
	ErrFormat   = errors.New("webm: invalid container format")
	ErrHeader   = errors.New("webm: invalid VP8 header")
	ErrTooLarge = errors.New("webm: chunk too large")
)

// errTruncated reports a chunk whose declared length runs past the bytes
// that actually follow it.
func errTruncated(what string) error {
	return fmt.Errorf("%w: %s: %w", ErrFormat, what, io.ErrUnexpectedEOF)
}

// errTag reports a chunk tag that does not match the expected nesting.
func errTag(want, got uint32) error {
	return fmt.Errorf("%w: expected %q tag, got %q", ErrFormat, FourCCString(want), FourCCString(got))
}

// ReadChunkHeader reads a chunk's FourCC tag and payload size from data.
func ReadChunkHeader(data []byte) (fourcc uint32, payloadSize uint32, err error) {
	if len(data) < ChunkHeaderSize {
		return 0, 0, errTruncated("chunk header")
	}
	fourcc = ReadLE32(data[0:4])
	payloadSize = ReadLE32(data[4:8])
	if payloadSize > MaxChunkPayload {
		return 0, 0, fmt.Errorf("%w: %w", ErrFormat, ErrTooLarge)
	}
	return fourcc, payloadSize, nil
}

// PaddedSize returns the payload size padded to an even number of bytes,
// as required by the RIFF format.
func PaddedSize(size uint32) uint32 {
	return size + (size & 1)
}

// FourCCString returns a human-readable string for a FourCC value.
func FourCCString(fourcc uint32) string {
	b := [4]byte{
		byte(fourcc),
		byte(fourcc >> 8),
		byte(fourcc >> 16),
		byte(fourcc >> 24),
	}
	return string(b[:])
}

// Read parses a RIFF{WEBP{VP8 }} stream from r and returns a copy of the
// VP8 payload. Payloads larger than MaxChunkPayload are rejected.
func Read(r io.Reader) ([]byte, error) {
	return ReadLimit(r, MaxChunkPayload)
}

// ReadLimit is like Read but rejects any RIFF body whose declared length
// exceeds maxPayload plus the fixed WEBP and VP8 headers.
//
// Errors reading the leading "RIFF" tag are returned unchanged, so an
// empty stream yields io.EOF. Every tag mismatch, inconsistent length or
// trailing byte inside the RIFF body yields an error wrapping ErrFormat.
func ReadLimit(r io.Reader, maxPayload uint32) ([]byte, error) {
	var hdr [ChunkHeaderSize]byte
	if _, err := io.ReadFull(r, hdr[:TagSize]); err != nil {
		return nil, err
	}
	if tag := ReadLE32(hdr[0:4]); tag != FourCCRIFF {
		return nil, errTag(FourCCRIFF, tag)
	}
	if _, err := io.ReadFull(r, hdr[TagSize:]); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return nil, errTruncated("RIFF header")
		}
		return nil, err
	}

	riffSize := ReadLE32(hdr[4:8])
	limit := uint64(maxPayload) + TagSize + ChunkHeaderSize + 1
	if uint64(riffSize) > limit {
		return nil, fmt.Errorf("%w: %w: RIFF size %d", ErrFormat, ErrTooLarge, riffSize)
	}

	// The declared size is never trusted for allocation.
	body, err := io.ReadAll(io.LimitReader(r, int64(riffSize)))
	if err != nil {
		return nil, err
	}
	if uint32(len(body)) < riffSize {
		return nil, errTruncated("RIFF body")
	}
	if riffSize&1 != 0 {
		if err := skipPad(r); err != nil {
			return nil, err
		}
	}

	return parseBody(body)
}

// skipPad consumes the pad byte that follows an odd-length chunk. A stream
// that ends right before the pad byte is accepted.
func skipPad(r io.Reader) error {
	var pad [1]byte
	_, err := io.ReadFull(r, pad[:])
	if err == io.EOF {
		return nil
	}
	return err
}

// parseBody validates the WEBP form type and the single VP8 chunk that
// make up the RIFF body and returns the VP8 payload.
func parseBody(body []byte) ([]byte, error) {
	if len(body) < TagSize {
		return nil, errTruncated("WEBP tag")
	}
	if tag := ReadLE32(body[0:4]); tag != FourCCWEBP {
		return nil, errTag(FourCCWEBP, tag)
	}
	buf := body[TagSize:]

	if len(buf) >= TagSize {
		if tag := ReadLE32(buf[0:4]); tag != FourCCVP8 {
			return nil, errTag(FourCCVP8, tag)
		}
	}
	_, size, err := ReadChunkHeader(buf)
	if err != nil {
		return nil, err
	}
	if uint64(ChunkHeaderSize)+uint64(size) > uint64(len(buf)) {
		return nil, errTruncated("VP8 chunk")
	}

	end := ChunkHeaderSize + int(size)
	rest := buf[end:]
	if size&1 != 0 && len(rest) > 0 {
		rest = rest[1:]
	}
	if len(rest) != 0 {
		return nil, fmt.Errorf("%w: %d trailing bytes after VP8 chunk", ErrFormat, len(rest))
	}

	return copyBytes(buf[ChunkHeaderSize:end]), nil
}

// Marshal wraps payload in a RIFF{WEBP{VP8 }} container.
func Marshal(payload []byte) ([]byte, error) {
	if uint64(len(payload)) > uint64(MaxChunkPayload) {
		return nil, fmt.Errorf("%w: payload of %d bytes", ErrTooLarge, len(payload))
	}
	payloadSize := uint32(len(payload))

	// RIFF size = 4 ("WEBP") + 8 (chunk header) + padded payload.
	riffSize := TagSize + ChunkHeaderSize + PaddedSize(payloadSize)

	buf := make([]byte, ChunkHeaderSize+int(riffSize)+int(riffSize&1))

	// RIFF header.
	PutLE32(buf[0:4], FourCCRIFF)
	PutLE32(buf[4:8], riffSize)
	PutLE32(buf[8:12], FourCCWEBP)

	// Chunk header.
	PutLE32(buf[12:16], FourCCVP8)
	PutLE32(buf[16:20], payloadSize)

	// Chunk payload; pad bytes are already zero.
	copy(buf[20:], payload)

	return buf, nil
}

// Write wraps payload in a RIFF{WEBP{VP8 }} container and writes it to w
// with a single Write call. Errors from w are returned unchanged.
func Write(w io.Writer, payload []byte) error {
	buf, err := Marshal(payload)
	if err != nil {
		return err
	}
	_, err = w.Write(buf)
	return err
}

// copyBytes returns a copy of the slice to avoid retaining the original buffer.
func copyBytes(b []byte) []byte {
	c := make([]byte, len(b))
	copy(c, b)
	return c
}
