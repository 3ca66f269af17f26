// Package wire frames encoded terms over a byte stream.
//
// A stream is zero or more frames; each frame is a 4-byte big-endian
// unsigned length followed by exactly that many payload bytes. End of
// stream is signaled only by input exhaustion at a frame boundary; there
// is no terminator frame. A stream ending inside a length prefix or
// inside a payload is malformed and unrecoverable, since the next frame
// boundary is only knowable when the current frame is intact.
package wire

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// lengthPrefixSize is the size of the frame length prefix in bytes.
const lengthPrefixSize = 4

// MaxPayloadSize caps the declared frame length (16 MiB) so a corrupted
// prefix cannot force an absurd allocation.
const MaxPayloadSize = 16 << 20

// Framing error stages.
const (
	// StageLengthPrefix means the stream ended inside a length prefix.
	StageLengthPrefix = "incomplete length prefix"

	// StagePayload means the stream ended inside a frame payload.
	StagePayload = "incomplete term data"

	// StageOversize means the declared length exceeds MaxPayloadSize.
	StageOversize = "payload exceeds maximum size"
)

// FramingError reports a stream truncated mid-frame, or a frame whose
// declared length is unusable. Fatal to the run; truncated frames cannot
// be resynchronized.
type FramingError struct {
	Stage    string // one of the Stage constants
	Expected int    // bytes needed
	Got      int    // bytes actually read
}

func (e *FramingError) Error() string {
	return fmt.Sprintf("wire: %s: expected %d, got %d", e.Stage, e.Expected, e.Got)
}

// IsFramingError reports whether err is (or wraps) a FramingError.
func IsFramingError(err error) bool {
	var fe *FramingError
	return errors.As(err, &fe)
}

// WriteFrame writes one length-prefixed frame to w.
func WriteFrame(w io.Writer, payload []byte) error {
	var hdr [lengthPrefixSize]byte
	binary.BigEndian.PutUint32(hdr[:], uint32(len(payload)))
	if _, err := w.Write(hdr[:]); err != nil {
		return fmt.Errorf("wire: write frame header: %w", err)
	}
	if len(payload) > 0 {
		if _, err := w.Write(payload); err != nil {
			return fmt.Errorf("wire: write frame payload: %w", err)
		}
	}
	return nil
}

// ReadFrame reads one frame from r and returns its payload.
//
// Returns io.EOF when the stream is exhausted exactly at a frame
// boundary; that is the normal termination signal, not an error. Any
// other short read yields a FramingError with the expected and actual
// byte counts.
func ReadFrame(r io.Reader) ([]byte, error) {
	var hdr [lengthPrefixSize]byte
	n, err := io.ReadFull(r, hdr[:])
	if err == io.EOF {
		return nil, io.EOF
	}
	if err != nil {
		return nil, &FramingError{Stage: StageLengthPrefix, Expected: lengthPrefixSize, Got: n}
	}

	length := binary.BigEndian.Uint32(hdr[:])
	if length > MaxPayloadSize {
		return nil, &FramingError{Stage: StageOversize, Expected: MaxPayloadSize, Got: int(length)}
	}

	payload := make([]byte, length)
	if length > 0 {
		n, err = io.ReadFull(r, payload)
		if err != nil {
			return nil, &FramingError{Stage: StagePayload, Expected: int(length), Got: n}
		}
	}
	return payload, nil
}
