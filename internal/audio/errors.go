package audio

import (
	"errors"
	"fmt"
)

var (
	// ErrOddLength is reported when the decoded payload is not a whole number of samples
	ErrOddLength = errors.New("pcm payload has odd byte length")
	// ErrEmptyAudio is reported when a playback request carries no samples
	ErrEmptyAudio = errors.New("pcm payload is empty")
	// ErrNoPlayer is reported when no audio output program can be found
	ErrNoPlayer = errors.New("no audio player found; install paplay, aplay, ffplay or sox")
)

// DecodeError is returned when a speech payload cannot be turned into samples
type DecodeError struct {
	Err   error
	Bytes int
}

func (e *DecodeError) Error() string {
	if errors.Is(e.Err, ErrOddLength) {
		return fmt.Sprintf("audio decode failed: %v (%d bytes)", e.Err, e.Bytes)
	}
	return fmt.Sprintf("audio decode failed: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// DeviceError is returned when the output device cannot be opened
type DeviceError struct {
	Player string
	Err    error
}

func (e *DeviceError) Error() string {
	if e.Player == "" {
		return fmt.Sprintf("audio device unavailable: %v", e.Err)
	}
	return fmt.Sprintf("audio device unavailable (%s): %v", e.Player, e.Err)
}

func (e *DeviceError) Unwrap() error {
	return e.Err
}
