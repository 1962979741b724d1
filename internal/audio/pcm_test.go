package audio

import (
	"encoding/base64"
	"encoding/binary"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func s16le(samples ...int16) []byte {
	out := make([]byte, len(samples)*2)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(out[i*2:], uint16(s))
	}
	return out
}

func TestDecode_Normalization(t *testing.T) {
	raw := s16le(0, 16384, -16384, 32767, -32768, 1)
	buf, err := Decode(Encode(raw))
	require.NoError(t, err)

	assert.Equal(t, SampleRate, buf.SampleRate)
	assert.Equal(t, Channels, buf.Channels)
	require.Len(t, buf.Samples, 6)

	assert.Equal(t, float32(0), buf.Samples[0])
	assert.Equal(t, float32(0.5), buf.Samples[1])
	assert.Equal(t, float32(-0.5), buf.Samples[2])
	assert.InDelta(t, 0.99997, buf.Samples[3], 1e-5)
	assert.Equal(t, float32(-1.0), buf.Samples[4])
	assert.Equal(t, float32(1.0/32768.0), buf.Samples[5])
}

func TestDecode_SampleCountAndRange(t *testing.T) {
	raw := make([]byte, 2*4800)
	for i := range raw {
		raw[i] = byte(i * 31)
	}

	buf, err := Decode(Encode(raw))
	require.NoError(t, err)
	assert.Len(t, buf.Samples, len(raw)/2)

	for i, s := range buf.Samples {
		if s < -1.0 || s >= 1.0 {
			t.Fatalf("sample %d out of range: %v", i, s)
		}
	}
	assert.Equal(t, 200*time.Millisecond, buf.Duration())
}

func TestDecode_Paddings(t *testing.T) {
	raw := s16le(100, -100, 7) // 6 bytes
	want, err := Decode(base64.StdEncoding.EncodeToString(raw))
	require.NoError(t, err)

	raw4 := s16le(100, -100) // 4 bytes, padded form ends in "="
	padded := base64.StdEncoding.EncodeToString(raw4)
	unpadded := base64.RawStdEncoding.EncodeToString(raw4)
	require.NotEqual(t, padded, unpadded)

	a, err := Decode(padded)
	require.NoError(t, err)
	b, err := Decode(unpadded)
	require.NoError(t, err)
	assert.Equal(t, a.Samples, b.Samples)

	withSpaces, err := Decode(" " + base64.StdEncoding.EncodeToString(raw)[:4] + "\n" + base64.StdEncoding.EncodeToString(raw)[4:] + "\n")
	require.NoError(t, err)
	assert.Equal(t, want.Samples, withSpaces.Samples)
}

func TestDecode_OddLength(t *testing.T) {
	_, err := Decode(base64.StdEncoding.EncodeToString([]byte{1, 2, 3}))

	var decErr *DecodeError
	require.True(t, errors.As(err, &decErr))
	assert.ErrorIs(t, err, ErrOddLength)
	assert.Equal(t, 3, decErr.Bytes)
}

func TestDecode_Malformed(t *testing.T) {
	for _, in := range []string{"not base64!!", "@@@@", "A"} {
		_, err := Decode(in)
		var decErr *DecodeError
		assert.True(t, errors.As(err, &decErr), "input %q", in)
	}
}

func TestDecode_Empty(t *testing.T) {
	buf, err := Decode("")
	require.NoError(t, err)
	assert.Empty(t, buf.Samples)
	assert.Equal(t, time.Duration(0), buf.Duration())
}

func TestBuffer_Float32LE(t *testing.T) {
	buf := &Buffer{Samples: []float32{0.5, -1}, SampleRate: SampleRate, Channels: Channels}
	out := buf.Float32LE()
	require.Len(t, out, 8)

	assert.Equal(t, float32(0.5), math.Float32frombits(binary.LittleEndian.Uint32(out[0:])))
	assert.Equal(t, float32(-1), math.Float32frombits(binary.LittleEndian.Uint32(out[4:])))
}
