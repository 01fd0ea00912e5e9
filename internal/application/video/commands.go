package video

import (
	"github.com/narwhalmedia/catalog/internal/domain/castmember"
	"github.com/narwhalmedia/catalog/internal/domain/category"
	"github.com/narwhalmedia/catalog/internal/domain/genre"
	"github.com/narwhalmedia/catalog/internal/domain/identifier"
	"github.com/narwhalmedia/catalog/internal/domain/video"
)

// VideoFields holds the fields shared by the create and update commands
type VideoFields struct {
	Title       *string
	Description *string
	LaunchedAt  *int // launch year
	Duration    float64
	Opened      bool
	Published   bool
	Rating      string // display label, e.g. "10"
	Categories  []string
	Genres      []string
	CastMembers []string

	Video         *video.Resource
	Trailer       *video.Resource
	Banner        *video.Resource
	Thumbnail     *video.Resource
	ThumbnailHalf *video.Resource
}

// CreateVideoCommand represents a command to create a new video
type CreateVideoCommand struct {
	VideoFields
}

// UpdateVideoCommand represents a command to update an existing video
type UpdateVideoCommand struct {
	ID string
	VideoFields
}

// UploadMediaCommand attaches one resource to a video slot
type UploadMediaCommand struct {
	VideoID  string
	Resource video.VideoResource
}

// UpdateMediaStatusCommand carries a status reported by the encoder.
// Folder and Filename are only used for COMPLETED.
type UpdateMediaStatusCommand struct {
	Status     video.MediaStatus
	VideoID    string
	ResourceID string
	Folder     string
	Filename   string
}

// CreateVideoOutput is returned by CreateVideo
type CreateVideoOutput struct {
	ID string
}

// UpdateVideoOutput is returned by UpdateVideo
type UpdateVideoOutput struct {
	ID string
}

// UploadMediaOutput is returned by UploadMedia
type UploadMediaOutput struct {
	VideoID   string
	MediaType video.MediaType
}

// ListVideosQuery is a listing request
type ListVideosQuery struct {
	Page      int
	PerPage   int
	Terms     string
	Sort      string
	Direction string
}

// metadata normalizes the command into aggregate metadata.
// An unknown rating label resolves to an absent rating.
func (f VideoFields) metadata() video.Metadata {
	m := video.Metadata{
		Title:       f.Title,
		Description: f.Description,
		LaunchedAt:  f.LaunchedAt,
		Duration:    f.Duration,
		Opened:      f.Opened,
		Published:   f.Published,
		Categories:  identifier.Map[category.ID](f.Categories),
		Genres:      identifier.Map[genre.ID](f.Genres),
		CastMembers: identifier.Map[castmember.ID](f.CastMembers),
	}
	if r, ok := video.RatingOf(f.Rating); ok {
		m.Rating = &r
	}
	return m
}

// resources lists the supplied resources tagged with their slot
func (f VideoFields) resources() []video.VideoResource {
	slots := []struct {
		t video.MediaType
		r *video.Resource
	}{
		{video.MediaTypeVideo, f.Video},
		{video.MediaTypeTrailer, f.Trailer},
		{video.MediaTypeBanner, f.Banner},
		{video.MediaTypeThumbnail, f.Thumbnail},
		{video.MediaTypeThumbnailHalf, f.ThumbnailHalf},
	}
	out := make([]video.VideoResource, 0, len(slots))
	for _, s := range slots {
		if s.r != nil {
			out = append(out, video.NewVideoResource(*s.r, s.t))
		}
	}
	return out
}
