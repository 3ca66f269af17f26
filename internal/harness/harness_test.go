package harness

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/etfcheck/internal/canon"
	"github.com/roach88/etfcheck/internal/etf"
	"github.com/roach88/etfcheck/internal/fixture"
	"github.com/roach88/etfcheck/internal/wire"
)

func TestRoundTripCatalogue(t *testing.T) {
	res, err := RoundTrip()
	require.NoError(t, err)
	assert.Len(t, res.Values, len(fixture.Catalogue()))
}

func TestCatalogueReportGolden(t *testing.T) {
	res, err := RoundTrip()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, res.Report(&buf))

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "catalogue_report", buf.Bytes())
}

func TestReadStreamPreservesCatalogueOrder(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, fixture.WriteAll(&buf))

	res, err := ReadStream(&buf)
	require.NoError(t, err)

	entries := fixture.Catalogue()
	require.Len(t, res.Values, len(entries))
	for i, e := range entries {
		want, err := canon.MarshalValue(canon.Canonicalize(e.Term))
		require.NoError(t, err)
		got, err := canon.MarshalValue(res.Values[i])
		require.NoError(t, err)
		assert.Equal(t, string(want), string(got), "index %d (%s)", i+1, e.Name)
	}
}

func TestReadStreamCleanEOF(t *testing.T) {
	res, err := ReadStream(bytes.NewReader(nil))
	require.NoError(t, err)
	assert.Empty(t, res.Values)
}

func TestReadStreamFramingErrorMidStream(t *testing.T) {
	var buf bytes.Buffer
	payload, err := etf.Encode(etf.Int(1))
	require.NoError(t, err)
	require.NoError(t, wire.WriteFrame(&buf, payload))
	// Second frame declares 5 payload bytes but supplies 3.
	buf.Write([]byte{0, 0, 0, 5, 1, 2, 3})

	res, err := ReadStream(&buf)
	require.Error(t, err)
	assert.True(t, wire.IsFramingError(err))
	var fe *wire.FramingError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, 5, fe.Expected)
	assert.Equal(t, 3, fe.Got)
	// The first, intact term was already collected.
	assert.Len(t, res.Values, 1)
}

func TestReadStreamDecodeErrorAborts(t *testing.T) {
	var buf bytes.Buffer
	// Well-framed garbage, then a perfectly good frame behind it.
	require.NoError(t, wire.WriteFrame(&buf, []byte{0xde, 0xad, 0xbe, 0xef}))
	payload, err := etf.Encode(etf.Atom("ok"))
	require.NoError(t, err)
	require.NoError(t, wire.WriteFrame(&buf, payload))

	res, err := ReadStream(&buf)
	require.Error(t, err)
	assert.True(t, etf.IsDecodeError(err))
	assert.Contains(t, err.Error(), "term 1")
	// Fail-fast: nothing past the corrupt frame is consumed.
	assert.Empty(t, res.Values)
}

func TestIntegerBoundaryFidelity(t *testing.T) {
	for _, v := range []int64{2147483647, -2147483648} {
		t.Run(fmt.Sprintf("%d", v), func(t *testing.T) {
			var buf bytes.Buffer
			payload, err := etf.Encode(etf.Int(v))
			require.NoError(t, err)
			require.NoError(t, wire.WriteFrame(&buf, payload))

			res, err := ReadStream(&buf)
			require.NoError(t, err)
			require.Len(t, res.Values, 1)
			assert.Equal(t, canon.Int(v), res.Values[0])
		})
	}
}

func TestNonASCIITextFidelity(t *testing.T) {
	const text = "unicode: éèê"
	var buf bytes.Buffer
	payload, err := etf.Encode(etf.Binary(text))
	require.NoError(t, err)
	require.NoError(t, wire.WriteFrame(&buf, payload))

	res, err := ReadStream(&buf)
	require.NoError(t, err)
	require.Len(t, res.Values, 1)
	assert.Equal(t, canon.String(text), res.Values[0])
}

func TestReportFormat(t *testing.T) {
	res := &Result{Values: []canon.Value{
		canon.String("hello"),
		canon.Object{{Key: canon.AtomKey, Value: canon.String("ok")}},
	}}

	var buf bytes.Buffer
	require.NoError(t, res.Report(&buf))
	assert.Equal(t,
		"Term 1: \"hello\"\nTerm 2: {\"__atom__\":\"ok\"}\n\nDecoded 2 terms successfully\n",
		buf.String())
}

func TestReportEmptyStream(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&Result{}).Report(&buf))
	assert.Equal(t, "\nDecoded 0 terms successfully\n", buf.String())
}
