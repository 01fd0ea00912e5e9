package video

import (
	"fmt"

	"github.com/narwhalmedia/catalog/internal/domain/identifier"
)

// ImageMedia describes a stored image (banner, thumbnail, thumbnail half).
type ImageMedia struct {
	id       string
	name     string
	checksum string
	location string
}

// NewImageMedia creates an image descriptor with a generated id
func NewImageMedia(name, checksum, location string) (ImageMedia, error) {
	return ImageMediaWith(identifier.Generate(), name, checksum, location)
}

// ImageMediaWith rehydrates an image descriptor
func ImageMediaWith(id, name, checksum, location string) (ImageMedia, error) {
	if err := requireFields(map[string]string{"id": id, "name": name, "checksum": checksum, "location": location}); err != nil {
		return ImageMedia{}, err
	}
	return ImageMedia{id: id, name: name, checksum: checksum, location: location}, nil
}

func (m ImageMedia) ID() string { return m.id }
func (m ImageMedia) Name() string { return m.name }
func (m ImageMedia) Checksum() string { return m.checksum }
func (m ImageMedia) Location() string { return m.location }

// Equal compares two images by checksum and location only
func (m ImageMedia) Equal(other ImageMedia) bool {
	return m.checksum == other.checksum && m.location == other.location
}

// IsZero reports whether m was never constructed
func (m ImageMedia) IsZero() bool {
	return m.id == ""
}

func requireFields(fields map[string]string) error {
	for _, name := range []string{"id", "name", "checksum", "location", "rawLocation"} {
		if v, ok := fields[name]; ok && v == "" {
			return fmt.Errorf("%w: %s is required", ErrInvalidMedia, name)
		}
	}
	return nil
}
