package video

import "context"

// Gateway persists video aggregates
type Gateway interface {
	Create(ctx context.Context, v *Video) (*Video, error)
	Update(ctx context.Context, v *Video) (*Video, error)
	// FindByID returns ErrNotFound when no video has id
	FindByID(ctx context.Context, id ID) (*Video, error)
	DeleteByID(ctx context.Context, id ID) error
	FindAll(ctx context.Context, q Query) (Pagination, error)
}

// MediaResourceGateway stores the binaries attached to videos
type MediaResourceGateway interface {
	StoreAudioVideo(ctx context.Context, id ID, r VideoResource) (AudioVideoMedia, error)
	StoreImage(ctx context.Context, id ID, r VideoResource) (ImageMedia, error)
	// ClearResources deletes everything stored for the video
	ClearResources(ctx context.Context, id ID) error
	// GetResource returns ErrResourceNotFound when nothing is stored for the slot
	GetResource(ctx context.Context, id ID, t MediaType) (Resource, error)
}

// Query is a listing request
type Query struct {
	Page      int
	PerPage   int
	Terms     string
	Sort      string
	Direction string
}

// Pagination is one page of videos
type Pagination struct {
	CurrentPage int
	PerPage     int
	Total       int64
	Items       []*Video
}
