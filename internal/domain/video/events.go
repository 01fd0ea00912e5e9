package video

import "github.com/narwhalmedia/catalog/internal/domain/events"

const (
	// AggregateType is the event aggregate type for videos
	AggregateType = "video"

	// EventTypeMediaCreated is emitted when a raw audio/video upload awaits encoding
	EventTypeMediaCreated = "video.media_created"
)

// VideoMediaCreated asks the encoder to process a freshly stored binary.
type VideoMediaCreated struct {
	events.BaseEvent
	VideoID     string    `json:"resource_id"`
	MediaID     string    `json:"media_id"`
	MediaType   MediaType `json:"media_type"`
	RawLocation string    `json:"file_path"`
}

// NewVideoMediaCreated creates the event for media m stored in slot t
func NewVideoMediaCreated(videoID ID, m AudioVideoMedia, t MediaType) *VideoMediaCreated {
	return &VideoMediaCreated{
		BaseEvent:   events.NewBaseEvent(string(videoID), AggregateType, EventTypeMediaCreated, 1),
		VideoID:     string(videoID),
		MediaID:     m.ID(),
		MediaType:   t,
		RawLocation: m.RawLocation(),
	}
}
