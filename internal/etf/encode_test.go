package etf

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeIntegers(t *testing.T) {
	tests := []struct {
		name     string
		input    Int
		expected []byte
	}{
		{"zero", Int(0), []byte{131, 97, 0}},
		{"small", Int(42), []byte{131, 97, 42}},
		{"u8 max", Int(255), []byte{131, 97, 255}},
		{"u8 max plus one", Int(256), []byte{131, 98, 0, 0, 1, 0}},
		{"u16 max", Int(65535), []byte{131, 98, 0, 0, 255, 255}},
		{"negative", Int(-100), []byte{131, 98, 255, 255, 255, 156}},
		{"i32 max", Int(2147483647), []byte{131, 98, 127, 255, 255, 255}},
		{"i32 min", Int(-2147483648), []byte{131, 98, 128, 0, 0, 0}},
		{"above i32", Int(4294967296), []byte{131, 110, 5, 0, 0, 0, 0, 0, 1}},
		{"below i32", Int(-4294967296), []byte{131, 110, 5, 1, 0, 0, 0, 0, 1}},
		{"i64 min", Int(-9223372036854775808), []byte{131, 110, 8, 1, 0, 0, 0, 0, 0, 0, 0, 128}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Encode(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestEncodeAtomsAndReserved(t *testing.T) {
	tests := []struct {
		name     string
		input    Term
		expected []byte
	}{
		{"atom ok", Atom("ok"), []byte{131, 119, 2, 'o', 'k'}},
		{"nil", Nil{}, []byte{131, 119, 3, 'n', 'i', 'l'}},
		{"true", Bool(true), []byte{131, 119, 4, 't', 'r', 'u', 'e'}},
		{"false", Bool(false), []byte{131, 119, 5, 'f', 'a', 'l', 's', 'e'}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Encode(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestEncodeLongAtomUsesAtomUTF8(t *testing.T) {
	name := strings.Repeat("a", 300)
	got, err := Encode(Atom(name))
	require.NoError(t, err)
	require.Equal(t, byte(131), got[0])
	assert.Equal(t, byte(118), got[1]) // ATOM_UTF8_EXT
	assert.Equal(t, []byte{1, 44}, got[2:4])
	assert.Len(t, got, 4+300)
}

func TestEncodeOversizedAtomFails(t *testing.T) {
	_, err := Encode(Atom(strings.Repeat("a", 70000)))
	require.Error(t, err)
	assert.True(t, IsEncodeError(err))
}

func TestEncodeFloat(t *testing.T) {
	got, err := Encode(Float(1.5))
	require.NoError(t, err)
	assert.Equal(t, []byte{131, 70, 0x3f, 0xf8, 0, 0, 0, 0, 0, 0}, got)
}

func TestEncodeBinary(t *testing.T) {
	got, err := Encode(Binary("hello"))
	require.NoError(t, err)
	assert.Equal(t, []byte{131, 109, 0, 0, 0, 5, 'h', 'e', 'l', 'l', 'o'}, got)
}

func TestEncodeLists(t *testing.T) {
	t.Run("empty list is NIL_EXT", func(t *testing.T) {
		got, err := Encode(List{})
		require.NoError(t, err)
		assert.Equal(t, []byte{131, 106}, got)
	})

	t.Run("proper list carries NIL_EXT tail", func(t *testing.T) {
		got, err := Encode(List{Int(1), Int(2), Int(3)})
		require.NoError(t, err)
		assert.Equal(t, []byte{131, 108, 0, 0, 0, 3, 97, 1, 97, 2, 97, 3, 106}, got)
	})
}

func TestEncodeTuple(t *testing.T) {
	got, err := Encode(Tuple{Int(1), Atom("a")})
	require.NoError(t, err)
	assert.Equal(t, []byte{131, 104, 2, 97, 1, 119, 1, 'a'}, got)
}

func TestEncodeMapPreservesPairOrder(t *testing.T) {
	got, err := Encode(Map{
		{Key: Binary("b"), Value: Int(2)},
		{Key: Binary("a"), Value: Int(1)},
	})
	require.NoError(t, err)
	assert.Equal(t, []byte{
		131, 116, 0, 0, 0, 2,
		109, 0, 0, 0, 1, 'b', 97, 2,
		109, 0, 0, 0, 1, 'a', 97, 1,
	}, got)
}
