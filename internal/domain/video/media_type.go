package video

import "strings"

// MediaType names one of the five media slots of a video
type MediaType string

const (
	MediaTypeVideo         MediaType = "VIDEO"
	MediaTypeTrailer       MediaType = "TRAILER"
	MediaTypeBanner        MediaType = "BANNER"
	MediaTypeThumbnail     MediaType = "THUMBNAIL"
	MediaTypeThumbnailHalf MediaType = "THUMBNAIL_HALF"
)

// MediaTypes lists every media type
func MediaTypes() []MediaType {
	return []MediaType{MediaTypeVideo, MediaTypeTrailer, MediaTypeBanner, MediaTypeThumbnail, MediaTypeThumbnailHalf}
}

// MediaTypeOf looks a media type up by name, ignoring case
func MediaTypeOf(name string) (MediaType, bool) {
	for _, t := range MediaTypes() {
		if strings.EqualFold(string(t), name) {
			return t, true
		}
	}
	return "", false
}

// IsAudioVideo reports whether the slot holds an audio/video binary rather than an image
func (t MediaType) IsAudioVideo() bool {
	return t == MediaTypeVideo || t == MediaTypeTrailer
}

func (t MediaType) String() string {
	return string(t)
}
