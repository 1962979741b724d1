package audio

import (
	"encoding/base64"
	"encoding/binary"
	"math"
	"strings"
	"time"
	"unicode"
)

// Fixed format of the speech service output: signed 16-bit little-endian mono at 24 kHz
const (
	SampleRate     = 24000
	Channels       = 1
	BytesPerSample = 2
)

// Buffer holds decoded samples normalized to [-1.0, 1.0)
type Buffer struct {
	Samples    []float32
	SampleRate int
	Channels   int
}

// Duration returns the playback length of the buffer
func (b *Buffer) Duration() time.Duration {
	if b.SampleRate == 0 || b.Channels == 0 {
		return 0
	}
	frames := len(b.Samples) / b.Channels
	return time.Duration(frames) * time.Second / time.Duration(b.SampleRate)
}

// Float32LE encodes the samples as little-endian IEEE 754 floats for output pipelines
func (b *Buffer) Float32LE() []byte {
	out := make([]byte, len(b.Samples)*4)
	for i, s := range b.Samples {
		binary.LittleEndian.PutUint32(out[i*4:], math.Float32bits(s))
	}
	return out
}

// Decode turns base64-encoded raw PCM into a playable buffer.
// Padded and unpadded base64 are accepted; embedded whitespace is ignored.
func Decode(base64Pcm string) (*Buffer, error) {
	raw, err := decodeBase64(base64Pcm)
	if err != nil {
		return nil, &DecodeError{Err: err}
	}
	if len(raw)%BytesPerSample != 0 {
		return nil, &DecodeError{Err: ErrOddLength, Bytes: len(raw)}
	}

	return &Buffer{
		Samples:    Normalize(raw),
		SampleRate: SampleRate,
		Channels:   Channels,
	}, nil
}

// Normalize converts s16le bytes into floats by dividing each sample by 32768.
// len(raw) must be even.
func Normalize(raw []byte) []float32 {
	n := len(raw) / BytesPerSample
	samples := make([]float32, n)
	for i := 0; i < n; i++ {
		v := int16(binary.LittleEndian.Uint16(raw[i*2:]))
		samples[i] = float32(v) / 32768.0
	}
	return samples
}

// Encode packs s16le bytes as standard padded base64, the inverse of the transport step of Decode
func Encode(raw []byte) string {
	return base64.StdEncoding.EncodeToString(raw)
}

func decodeBase64(s string) ([]byte, error) {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)

	if strings.HasSuffix(cleaned, "=") || len(cleaned)%4 == 0 {
		return base64.StdEncoding.DecodeString(cleaned)
	}
	return base64.RawStdEncoding.DecodeString(cleaned)
}
