package video

import "errors"

var (
	// ErrNotFound is returned when a video cannot be found
	ErrNotFound = errors.New("video not found")

	// ErrResourceNotFound is returned when no stored resource exists for a video media type
	ErrResourceNotFound = errors.New("media resource not found")

	// ErrInvalidMedia is returned when a media descriptor is missing a required field
	ErrInvalidMedia = errors.New("invalid media")
)
