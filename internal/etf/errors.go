package etf

import (
	"errors"
	"fmt"
)

// DecodeError reports payload bytes that are not a valid encoded term.
// A decode failure is fatal to the enclosing stream read: frame
// boundaries downstream of a corrupt term cannot be trusted.
type DecodeError struct {
	// Message describes what was malformed.
	Message string

	// Offset is the byte position within the payload where decoding failed.
	Offset int

	// Tag is the term tag being decoded when the failure occurred, if any.
	Tag byte
}

func (e *DecodeError) Error() string {
	if e.Tag != 0 {
		return fmt.Sprintf("etf: decode failed at offset %d (tag %d): %s", e.Offset, e.Tag, e.Message)
	}
	return fmt.Sprintf("etf: decode failed at offset %d: %s", e.Offset, e.Message)
}

// IsDecodeError reports whether err is (or wraps) a DecodeError.
func IsDecodeError(err error) bool {
	var de *DecodeError
	return errors.As(err, &de)
}

// EncodeError reports a term the codec cannot represent.
type EncodeError struct {
	Message string

	// Term is the offending value.
	Term Term
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("etf: cannot encode %T: %s", e.Term, e.Message)
}

// IsEncodeError reports whether err is (or wraps) an EncodeError.
func IsEncodeError(err error) bool {
	var ee *EncodeError
	return errors.As(err, &ee)
}
