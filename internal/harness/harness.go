// Package harness consumes framed term streams and renders the
// conformance report, plus an in-process round trip for self-checking
// the producer and reader against each other.
package harness

import (
	"bytes"
	"fmt"
	"io"

	"github.com/roach88/etfcheck/internal/canon"
	"github.com/roach88/etfcheck/internal/etf"
	"github.com/roach88/etfcheck/internal/fixture"
	"github.com/roach88/etfcheck/internal/wire"
)

// Result is the ordered outcome of one stream read.
type Result struct {
	// Values holds the canonical form of each decoded term, in stream
	// order. Index i corresponds to report line "Term i+1".
	Values []canon.Value
}

// ReadStream consumes r frame by frame until clean end of stream,
// decoding and canonicalizing each term.
//
// Reading is fail-fast: a framing or decode error aborts immediately.
// The partial Result is returned alongside the error so callers can see
// how far the stream got; no report should be rendered from it.
func ReadStream(r io.Reader) (*Result, error) {
	res := &Result{}
	for {
		payload, err := wire.ReadFrame(r)
		if err == io.EOF {
			return res, nil
		}
		if err != nil {
			return res, err
		}
		term, err := etf.Decode(payload)
		if err != nil {
			return res, fmt.Errorf("term %d: %w", len(res.Values)+1, err)
		}
		res.Values = append(res.Values, canon.Canonicalize(term))
	}
}

// Report writes the text report: one "Term <i>: <json>" line per value
// in stream order, a blank line, then the total count.
func (res *Result) Report(w io.Writer) error {
	for i, v := range res.Values {
		b, err := canon.MarshalValue(v)
		if err != nil {
			return fmt.Errorf("harness: render term %d: %w", i+1, err)
		}
		if _, err := fmt.Fprintf(w, "Term %d: %s\n", i+1, b); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "\nDecoded %d terms successfully\n", len(res.Values))
	return err
}

// RoundTrip emits the full catalogue into a buffer and reads it back,
// verifying that every term survives encode/frame/decode with an
// identical canonical form and that stream order matches catalogue
// order. Returns the reader-side Result for reporting.
func RoundTrip() (*Result, error) {
	entries := fixture.Catalogue()

	var buf bytes.Buffer
	if err := fixture.WriteAll(&buf); err != nil {
		return nil, err
	}

	res, err := ReadStream(&buf)
	if err != nil {
		return res, err
	}
	if len(res.Values) != len(entries) {
		return res, fmt.Errorf("harness: decoded %d terms, catalogue has %d", len(res.Values), len(entries))
	}

	for i, e := range entries {
		want, err := canon.MarshalValue(canon.Canonicalize(e.Term))
		if err != nil {
			return res, fmt.Errorf("harness: render catalogue entry %s: %w", e.Name, err)
		}
		got, err := canon.MarshalValue(res.Values[i])
		if err != nil {
			return res, fmt.Errorf("harness: render term %d: %w", i+1, err)
		}
		if !bytes.Equal(want, got) {
			return res, fmt.Errorf("harness: term %d (%s) diverged after round trip: want %s, got %s", i+1, e.Name, want, got)
		}
	}
	return res, nil
}
