package video

import "strings"

// MediaStatus is the encoding state of an audio/video media
type MediaStatus string

const (
	MediaStatusPending    MediaStatus = "PENDING"
	MediaStatusProcessing MediaStatus = "PROCESSING"
	MediaStatusCompleted  MediaStatus = "COMPLETED"
)

// MediaStatusOf looks a status up by name, ignoring case
func MediaStatusOf(name string) (MediaStatus, bool) {
	for _, s := range []MediaStatus{MediaStatusPending, MediaStatusProcessing, MediaStatusCompleted} {
		if strings.EqualFold(string(s), name) {
			return s, true
		}
	}
	return "", false
}

func (s MediaStatus) String() string {
	return string(s)
}
