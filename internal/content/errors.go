package content

import (
	"errors"
	"fmt"
)

// Operation names used in ServiceError
const (
	OpDefinition = "definition"
	OpImage      = "image"
	OpStory      = "story"
	OpSpeech     = "speech"
)

var (
	// ErrEmptyResponse means the service answered without usable content
	ErrEmptyResponse = errors.New("empty response")
	// ErrMalformedResponse means the response did not match the requested structure
	ErrMalformedResponse = errors.New("malformed response")
	// ErrNoImage means the image response carried no inline image part
	ErrNoImage = errors.New("no image data in response")
	// ErrNoAudio means the speech response carried no audio payload
	ErrNoAudio = errors.New("no audio data in response")
	// ErrUnsupported means the provider does not offer the requested capability
	ErrUnsupported = errors.New("operation not supported by provider")
	// ErrUnavailable means calls are being short-circuited after repeated failures
	ErrUnavailable = errors.New("content service temporarily unavailable")
)

// ServiceError wraps any failure of a generative request
type ServiceError struct {
	Op       string
	Provider string
	Err      error
}

func (e *ServiceError) Error() string {
	if e.Provider != "" {
		return fmt.Sprintf("%s request to %s failed: %v", e.Op, e.Provider, e.Err)
	}
	return fmt.Sprintf("%s request failed: %v", e.Op, e.Err)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}
