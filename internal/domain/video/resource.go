package video

import (
	"crypto/sha256"
	"encoding/hex"
)

// Resource is an uploaded binary waiting to be stored.
type Resource struct {
	Checksum    string
	Content     []byte
	ContentType string
	Name        string
}

// NewResource builds a resource and computes its checksum from content
func NewResource(content []byte, contentType, name string) Resource {
	sum := sha256.Sum256(content)
	return Resource{
		Checksum:    hex.EncodeToString(sum[:]),
		Content:     content,
		ContentType: contentType,
		Name:        name,
	}
}

// VideoResource is a resource tagged with the slot it belongs to
type VideoResource struct {
	Resource
	Type MediaType
}

// NewVideoResource tags r with mediaType
func NewVideoResource(r Resource, mediaType MediaType) VideoResource {
	return VideoResource{Resource: r, Type: mediaType}
}
