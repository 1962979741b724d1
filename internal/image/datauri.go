package image

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

// DefaultMIMEType is assumed when the image service does not report one
const DefaultMIMEType = "image/png"

// ErrNotDataURI is returned when a string is not a base64 data URI
var ErrNotDataURI = errors.New("not a base64 data URI")

// Image is decoded image content
type Image struct {
	MIMEType string
	Data     []byte
}

// DataURI builds a "data:<mime>;base64,<payload>" string
func DataURI(mimeType string, data []byte) string {
	if mimeType == "" {
		mimeType = DefaultMIMEType
	}
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// IsDataURI reports whether s is an inline data URI
func IsDataURI(s string) bool {
	return strings.HasPrefix(s, "data:")
}

// ParseDataURI decodes a base64 data URI
func ParseDataURI(s string) (*Image, error) {
	if !IsDataURI(s) {
		return nil, ErrNotDataURI
	}

	header, payload, ok := strings.Cut(strings.TrimPrefix(s, "data:"), ",")
	if !ok {
		return nil, fmt.Errorf("%w: missing payload", ErrNotDataURI)
	}

	mimeType, isBase64 := strings.CutSuffix(header, ";base64")
	if !isBase64 {
		return nil, ErrNotDataURI
	}
	if mimeType == "" {
		mimeType = DefaultMIMEType
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to decode data URI: %w", err)
	}

	return &Image{MIMEType: mimeType, Data: data}, nil
}

// ExtensionFor returns a file extension (with dot) for an image MIME type
func ExtensionFor(mimeType string) string {
	switch strings.ToLower(strings.TrimSpace(strings.Split(mimeType, ";")[0])) {
	case "image/jpeg", "image/jpg":
		return ".jpg"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	case "image/svg+xml":
		return ".svg"
	default:
		return ".png"
	}
}
