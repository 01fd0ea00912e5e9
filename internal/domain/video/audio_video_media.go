package video

import (
	"fmt"

	"github.com/narwhalmedia/catalog/internal/domain/identifier"
)

// AudioVideoMedia describes a stored video or trailer binary and its encoding progress.
type AudioVideoMedia struct {
	id              string
	name            string
	checksum        string
	rawLocation     string
	encodedLocation string
	status          MediaStatus
}

// NewAudioVideoMedia creates a fresh upload, pending encode
func NewAudioVideoMedia(name, checksum, rawLocation string) (AudioVideoMedia, error) {
	return AudioVideoMediaWith(identifier.Generate(), name, checksum, rawLocation, "", MediaStatusPending)
}

// AudioVideoMediaWith rehydrates a media descriptor from storage.
// encodedLocation may be empty while the media has not been encoded.
func AudioVideoMediaWith(id, name, checksum, rawLocation, encodedLocation string, status MediaStatus) (AudioVideoMedia, error) {
	if err := requireFields(map[string]string{"id": id, "name": name, "checksum": checksum, "rawLocation": rawLocation}); err != nil {
		return AudioVideoMedia{}, err
	}
	if _, ok := MediaStatusOf(string(status)); !ok {
		return AudioVideoMedia{}, fmt.Errorf("%w: unknown status %q", ErrInvalidMedia, status)
	}
	return AudioVideoMedia{
		id:              id,
		name:            name,
		checksum:        checksum,
		rawLocation:     rawLocation,
		encodedLocation: encodedLocation,
		status:          status,
	}, nil
}

func (m AudioVideoMedia) ID() string { return m.id }
func (m AudioVideoMedia) Name() string { return m.name }
func (m AudioVideoMedia) Checksum() string { return m.checksum }
func (m AudioVideoMedia) RawLocation() string { return m.rawLocation }
func (m AudioVideoMedia) EncodedLocation() string { return m.encodedLocation }
func (m AudioVideoMedia) Status() MediaStatus { return m.status }

// Processing returns a copy marked as being encoded
func (m AudioVideoMedia) Processing() AudioVideoMedia {
	m.status = MediaStatusProcessing
	return m
}

// Completed returns a copy marked as encoded at encodedPath
func (m AudioVideoMedia) Completed(encodedPath string) AudioVideoMedia {
	m.status = MediaStatusCompleted
	m.encodedLocation = encodedPath
	return m
}

// IsPendingEncode reports whether the encoder has not picked the media up yet
func (m AudioVideoMedia) IsPendingEncode() bool {
	return m.status == MediaStatusPending
}

// Equal compares two media by checksum and raw location only
func (m AudioVideoMedia) Equal(other AudioVideoMedia) bool {
	return m.checksum == other.checksum && m.rawLocation == other.rawLocation
}

// IsZero reports whether m was never constructed
func (m AudioVideoMedia) IsZero() bool {
	return m.id == ""
}
