package wire

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteReadFrame(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteFrame(&buf, []byte{1, 2, 3}))
	assert.Equal(t, []byte{0, 0, 0, 3, 1, 2, 3}, buf.Bytes())

	payload, err := ReadFrame(&buf)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, payload)

	_, err = ReadFrame(&buf)
	assert.Equal(t, io.EOF, err)
}

func TestReadFrameEmptyPayload(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteFrame(&buf, nil))
	assert.Equal(t, []byte{0, 0, 0, 0}, buf.Bytes())

	payload, err := ReadFrame(&buf)
	require.NoError(t, err)
	assert.Empty(t, payload)
}

func TestReadFrameSequence(t *testing.T) {
	var buf bytes.Buffer
	frames := [][]byte{{1}, {2, 2}, {3, 3, 3}}
	for _, f := range frames {
		require.NoError(t, WriteFrame(&buf, f))
	}

	for _, want := range frames {
		payload, err := ReadFrame(&buf)
		require.NoError(t, err)
		assert.Equal(t, want, payload)
	}
	_, err := ReadFrame(&buf)
	assert.Equal(t, io.EOF, err)
}

func TestReadFrameCleanEOF(t *testing.T) {
	_, err := ReadFrame(bytes.NewReader(nil))
	assert.Equal(t, io.EOF, err)
}

func TestReadFrameIncompleteLengthPrefix(t *testing.T) {
	_, err := ReadFrame(bytes.NewReader([]byte{0, 0}))
	require.Error(t, err)
	var fe *FramingError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, StageLengthPrefix, fe.Stage)
	assert.Equal(t, 4, fe.Expected)
	assert.Equal(t, 2, fe.Got)
}

func TestReadFrameIncompleteTermData(t *testing.T) {
	// Declares 5 payload bytes, supplies 3.
	_, err := ReadFrame(bytes.NewReader([]byte{0, 0, 0, 5, 1, 2, 3}))
	require.Error(t, err)
	var fe *FramingError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, StagePayload, fe.Stage)
	assert.Equal(t, 5, fe.Expected)
	assert.Equal(t, 3, fe.Got)
}

func TestReadFrameOversizedLength(t *testing.T) {
	_, err := ReadFrame(bytes.NewReader([]byte{0xff, 0xff, 0xff, 0xff}))
	require.Error(t, err)
	var fe *FramingError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, StageOversize, fe.Stage)
}

func TestIsFramingError(t *testing.T) {
	assert.True(t, IsFramingError(&FramingError{Stage: StagePayload}))
	assert.False(t, IsFramingError(io.EOF))
	assert.False(t, IsFramingError(nil))
}
