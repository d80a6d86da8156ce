// Package avatar stores bounded-size user avatars behind a backend-agnostic
// interface. The inline backend encodes the image into a data URL kept on
// the user row; a filesystem or object-store backend can replace it without
// touching the handlers.
package avatar

import (
	"encoding/base64" // Inline encoding
	"errors"          // Sentinel errors
)

// ErrPayloadTooLarge means the stored representation exceeds the backend cap
var ErrPayloadTooLarge = errors.New("payload too large")

// ErrUnsupportedType means the MIME type is outside the allow-list
var ErrUnsupportedType = errors.New("unsupported image type")

// allowedTypes is the accepted image MIME allow-list
var allowedTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
}

// AllowedType reports whether mimeType is an accepted image type
func AllowedType(mimeType string) bool {
	return allowedTypes[mimeType]
}

// BlobStore turns raw image bytes into a URL the avatar field can hold
type BlobStore interface {
	Store(data []byte, mimeType string) (string, error)
}

// InlineStore encodes images as base64 data URLs. MaxEncodedBytes caps the
// encoded size so oversized blobs never reach the user row.
type InlineStore struct {
	MaxEncodedBytes int // Cap on the base64 representation
}

// Store encodes the image and returns a data URL
func (s InlineStore) Store(data []byte, mimeType string) (string, error) {
	if !AllowedType(mimeType) {
		return "", ErrUnsupportedType
	}
	encoded := base64.StdEncoding.EncodeToString(data)
	if s.MaxEncodedBytes > 0 && len(encoded) > s.MaxEncodedBytes {
		return "", ErrPayloadTooLarge
	}
	return "data:" + mimeType + ";base64," + encoded, nil
}
