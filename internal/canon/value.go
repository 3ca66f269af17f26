// Package canon projects decoded terms onto a JSON-safe canonical form
// used for display and cross-implementation comparison. Canonical values
// are never re-encoded to ETF.
//
// The projection must keep apart term categories that would collapse in
// plain JSON: atoms are wrapped as {"__atom__": name}, tuples as
// {"__tuple__": [...]}. Binaries that are valid UTF-8 render as text,
// anything else as a list of byte values; a binary that merely happens to
// be valid UTF-8 is therefore indistinguishable from a text term. That
// lossy edge is deliberate, matching the projection used on the other
// side of the round trip.
package canon

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Value is the sealed interface over canonical JSON-safe values.
// Only Null, Bool, Int, Float, String, Array, and Object implement it.
type Value interface {
	value() // sealed
}

// Null is the canonical form of the nil term.
type Null struct{}

func (Null) value() {}

// Bool is a canonical boolean.
type Bool bool

func (Bool) value() {}

// Int is a canonical integer, always int64.
type Int int64

func (Int) value() {}

// Float is a canonical double-precision float.
type Float float64

func (Float) value() {}

// String is canonical text.
type String string

func (String) value() {}

// Array is an ordered sequence of canonical values.
type Array []Value

func (Array) value() {}

// Field is one key/value entry of an Object.
type Field struct {
	Key   string
	Value Value
}

// Object is a JSON object whose fields keep insertion order, so a
// canonicalized map renders its entries in wire order and output stays
// byte-identical across runs.
type Object []Field

func (Object) value() {}

// MarshalValue serializes a canonical value to JSON text. Object fields
// are emitted in insertion order; strings use standard JSON escaping
// with HTML escaping disabled.
func MarshalValue(v Value) ([]byte, error) {
	var buf bytes.Buffer
	if err := marshalValue(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func marshalValue(buf *bytes.Buffer, v Value) error {
	switch val := v.(type) {
	case Null:
		buf.WriteString("null")
		return nil
	case Bool:
		if val {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
		return nil
	case Int:
		b, err := json.Marshal(int64(val))
		if err != nil {
			return err
		}
		buf.Write(b)
		return nil
	case Float:
		b, err := json.Marshal(float64(val))
		if err != nil {
			return err
		}
		buf.Write(b)
		return nil
	case String:
		return marshalString(buf, string(val))
	case Array:
		buf.WriteByte('[')
		for i, e := range val {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := marshalValue(buf, e); err != nil {
				return fmt.Errorf("array[%d]: %w", i, err)
			}
		}
		buf.WriteByte(']')
		return nil
	case Object:
		buf.WriteByte('{')
		for i, f := range val {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := marshalString(buf, f.Key); err != nil {
				return fmt.Errorf("key %q: %w", f.Key, err)
			}
			buf.WriteByte(':')
			if err := marshalValue(buf, f.Value); err != nil {
				return fmt.Errorf("value for key %q: %w", f.Key, err)
			}
		}
		buf.WriteByte('}')
		return nil
	default:
		return fmt.Errorf("unknown canonical value type: %T", v)
	}
}

// marshalString writes a JSON string without HTML escaping, so < > & and
// non-ASCII text pass through with content intact.
func marshalString(buf *bytes.Buffer, s string) error {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	b := tmp.Bytes()
	// json.Encoder appends a newline.
	if n := len(b); n > 0 && b[n-1] == '\n' {
		b = b[:n-1]
	}
	buf.Write(b)
	return nil
}
