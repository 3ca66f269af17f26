// Package fixture holds the deterministic term catalogue and the
// producer that emits it as a framed stream.
//
// The catalogue covers every term category the codec carries, plus the
// integer boundary values where the wire representation changes
// (8-bit, 16-bit, and signed 32-bit edges). Order is load-bearing: the
// reader reports terms by 1-based position, so readers on the other side
// of the round trip must see entries exactly in catalogue order.
package fixture

import (
	"fmt"
	"io"

	"github.com/roach88/etfcheck/internal/etf"
	"github.com/roach88/etfcheck/internal/wire"
)

// Entry is one named catalogue term. Names are stable identifiers used
// by tests and the catalogue manifest, never emitted on the wire.
type Entry struct {
	Name string
	Term etf.Term
}

// Catalogue returns the fixed ordered fixture set.
func Catalogue() []Entry {
	return []Entry{
		{"nil", etf.Nil{}},
		{"bool_true", etf.Bool(true)},
		{"bool_false", etf.Bool(false)},
		{"int_zero", etf.Int(0)},
		{"int_small", etf.Int(42)},
		{"int_negative", etf.Int(-100)},
		{"int_u8_max", etf.Int(255)},
		{"int_u8_max_plus_one", etf.Int(256)},
		{"int_u16_max", etf.Int(65535)},
		{"int_i32_max", etf.Int(2147483647)},
		{"int_i32_min", etf.Int(-2147483648)},
		{"float", etf.Float(1.23456)},
		{"string_ascii", etf.Binary("hello")},
		{"string_unicode", etf.Binary("unicode: éèê")},
		{"list_empty", etf.List{}},
		{"list_ints", etf.List{etf.Int(1), etf.Int(2), etf.Int(3)}},
		{"list_strings", etf.List{etf.Binary("a"), etf.Binary("b"), etf.Binary("c")}},
		{"map_flat", etf.Map{
			{Key: etf.Binary("key"), Value: etf.Binary("value")},
		}},
		{"map_nested", etf.Map{
			{Key: etf.Binary("nested"), Value: etf.Map{
				{Key: etf.Binary("deep"), Value: etf.Map{
					{Key: etf.Binary("value"), Value: etf.Int(42)},
				}},
			}},
		}},
		{"list_nested", etf.List{
			etf.Int(1),
			etf.List{
				etf.Int(2),
				etf.List{etf.Int(3)},
			},
		}},
		{"map_mixed", etf.Map{
			{Key: etf.Binary("list"), Value: etf.List{etf.Int(1), etf.Int(2), etf.Int(3)}},
			{Key: etf.Binary("num"), Value: etf.Int(42)},
			{Key: etf.Binary("str"), Value: etf.Binary("test")},
		}},
		{"atom_ok", etf.Atom("ok")},
		{"atom_error", etf.Atom("error")},
	}
}

// WriteAll encodes every catalogue entry in order and writes the framed
// stream to w. An encode failure for any entry aborts the whole run: a
// conformance fixture set must never silently shrink.
//
// Callers supplying buffered or file-backed sinks own flushing/closing;
// WriteAll itself performs no buffering.
func WriteAll(w io.Writer) error {
	for i, e := range Catalogue() {
		payload, err := etf.Encode(e.Term)
		if err != nil {
			return fmt.Errorf("fixture: encode entry %d (%s): %w", i+1, e.Name, err)
		}
		if err := wire.WriteFrame(w, payload); err != nil {
			return fmt.Errorf("fixture: write entry %d (%s): %w", i+1, e.Name, err)
		}
	}
	return nil
}
