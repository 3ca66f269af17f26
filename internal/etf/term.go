// Package etf implements the subset of Erlang's External Term Format
// needed to exchange conformance fixtures with other ETF implementations.
//
// Terms form a sealed union: only Nil, Bool, Int, Float, Binary, Atom,
// List, Tuple, and Map implement Term. Canonicalization and encoding can
// therefore switch exhaustively over the variants instead of probing
// runtime types.
//
// The codec follows erlpack's value mapping: Nil and Bool travel as the
// atoms nil/true/false, text travels as UTF-8 binaries, and the empty
// list is NIL_EXT. Distribution-only constructs (pids, ports, references,
// funs, the atom cache, compressed terms) are rejected on decode.
package etf

// Term is the sealed interface over the ETF value universe.
type Term interface {
	term() // sealed
}

// Nil is the absent value, carried on the wire as the atom nil.
type Nil struct{}

func (Nil) term() {}

// Bool is a boolean, carried on the wire as the atom true or false.
type Bool bool

func (Bool) term() {}

// Int is a signed integer. The codec covers the int64 range
// (SMALL_INTEGER_EXT, INTEGER_EXT, and SMALL_BIG_EXT within int64).
type Int int64

func (Int) term() {}

// Float is a double-precision float (NEW_FLOAT_EXT).
type Float float64

func (Float) term() {}

// Binary is an opaque byte sequence. UTF-8 text is carried as Binary;
// the distinction is resolved only at canonicalization time.
type Binary []byte

func (Binary) term() {}

// Atom is an interned symbolic constant, distinct from text binaries.
type Atom string

func (Atom) term() {}

// List is an ordered, possibly empty, possibly heterogeneous sequence.
type List []Term

func (List) term() {}

// Tuple is an ordered fixed-arity sequence, distinct from List.
type Tuple []Term

func (Tuple) term() {}

// Pair is one key/value entry of a Map.
type Pair struct {
	Key   Term
	Value Term
}

// Map is an ordered sequence of key/value pairs. ETF map keys are
// arbitrary terms, which rules out a Go map; a slice also preserves the
// wire order of entries, which the canonical projection relies on.
type Map []Pair

func (Map) term() {}
