package canon

import (
	"unicode/utf8"

	"github.com/roach88/etfcheck/internal/etf"
)

// Well-known wrapper keys distinguishing term categories that plain JSON
// would conflate.
const (
	AtomKey  = "__atom__"
	TupleKey = "__tuple__"
)

// Canonicalize maps a decoded term onto its canonical JSON-safe form.
// The mapping is total over the sealed term union:
//
//	nil          -> null
//	booleans     -> true/false
//	integers     -> numbers
//	floats       -> numbers
//	binaries     -> text if valid UTF-8, else an array of byte values
//	atoms        -> {"__atom__": name}
//	lists        -> arrays
//	tuples       -> {"__tuple__": [...]}
//	maps         -> objects in wire order, keys stringified (see KeyString)
func Canonicalize(t etf.Term) Value {
	switch v := t.(type) {
	case etf.Nil:
		return Null{}
	case etf.Bool:
		return Bool(v)
	case etf.Int:
		return Int(v)
	case etf.Float:
		return Float(v)
	case etf.Binary:
		if utf8.Valid(v) {
			return String(v)
		}
		a := make(Array, len(v))
		for i, b := range v {
			a[i] = Int(b)
		}
		return a
	case etf.Atom:
		return Object{{Key: AtomKey, Value: String(v)}}
	case etf.List:
		a := make(Array, len(v))
		for i, e := range v {
			a[i] = Canonicalize(e)
		}
		return a
	case etf.Tuple:
		a := make(Array, len(v))
		for i, e := range v {
			a[i] = Canonicalize(e)
		}
		return Object{{Key: TupleKey, Value: a}}
	case etf.Map:
		o := make(Object, 0, len(v))
		for _, p := range v {
			o = append(o, Field{
				Key:   KeyString(Canonicalize(p.Key)),
				Value: Canonicalize(p.Value),
			})
		}
		return o
	default:
		// Unreachable: Term is sealed.
		return Null{}
	}
}

// KeyString stringifies a canonical value for use as a JSON object key.
// Text keys pass through unchanged; every other canonical form uses its
// compact JSON serialization, so both sides of a comparison derive the
// same key for the same term.
func KeyString(v Value) string {
	if s, ok := v.(String); ok {
		return string(s)
	}
	b, err := MarshalValue(v)
	if err != nil {
		// MarshalValue only fails on values outside the sealed union.
		return ""
	}
	return string(b)
}
