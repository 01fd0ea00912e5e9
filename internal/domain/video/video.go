package video

import (
	"fmt"
	"time"

	"github.com/narwhalmedia/catalog/internal/domain/castmember"
	"github.com/narwhalmedia/catalog/internal/domain/category"
	"github.com/narwhalmedia/catalog/internal/domain/events"
	"github.com/narwhalmedia/catalog/internal/domain/genre"
	"github.com/narwhalmedia/catalog/internal/domain/identifier"
	"github.com/narwhalmedia/catalog/internal/domain/validation"
)

// ID identifies a video
type ID string

// NewID generates a fresh video id
func NewID() ID {
	return ID(identifier.Generate())
}

// Metadata carries the scalar fields and reference sets of a video.
// Nil pointers mean the value was not supplied.
type Metadata struct {
	Title       *string
	Description *string
	LaunchedAt  *int
	Duration    float64
	Rating      *Rating
	Opened      bool
	Published   bool
	Categories  []category.ID
	Genres      []genre.ID
	CastMembers []castmember.ID
}

// Snapshot is the full state of a video, used to rehydrate it from storage.
type Snapshot struct {
	ID ID
	Metadata
	CreatedAt     time.Time
	UpdatedAt     time.Time
	Banner        *ImageMedia
	Thumbnail     *ImageMedia
	ThumbnailHalf *ImageMedia
	Trailer       *AudioVideoMedia
	Video         *AudioVideoMedia
}

// Video is the catalog aggregate root
type Video struct {
	id          ID
	title       *string
	description *string
	launchedAt  *int
	duration    float64
	rating      *Rating
	opened      bool
	published   bool
	createdAt   time.Time
	updatedAt   time.Time

	banner        *ImageMedia
	thumbnail     *ImageMedia
	thumbnailHalf *ImageMedia
	trailer       *AudioVideoMedia
	video         *AudioVideoMedia

	categories  []category.ID
	genres      []genre.ID
	castMembers []castmember.ID

	events []events.Event
}

// NewVideo creates a video with a generated id and no media.
// It never fails; call Validate before persisting.
func NewVideo(m Metadata) *Video {
	now := time.Now().UTC()
	v := &Video{
		id:        NewID(),
		createdAt: now,
		updatedAt: now,
	}
	v.apply(m)
	return v
}

// With rehydrates a video from a snapshot
func With(s Snapshot) *Video {
	v := &Video{
		id:            s.ID,
		createdAt:     s.CreatedAt,
		updatedAt:     s.UpdatedAt,
		banner:        copyPtr(s.Banner),
		thumbnail:     copyPtr(s.Thumbnail),
		thumbnailHalf: copyPtr(s.ThumbnailHalf),
		trailer:       copyPtr(s.Trailer),
		video:         copyPtr(s.Video),
	}
	v.apply(s.Metadata)
	return v
}

func (v *Video) apply(m Metadata) {
	v.title = copyPtr(m.Title)
	v.description = copyPtr(m.Description)
	v.launchedAt = copyPtr(m.LaunchedAt)
	v.duration = m.Duration
	v.rating = copyPtr(m.Rating)
	v.opened = m.Opened
	v.published = m.Published
	v.categories = identifier.Unique(m.Categories)
	v.genres = identifier.Unique(m.Genres)
	v.castMembers = identifier.Unique(m.CastMembers)
}

// Update replaces all scalar metadata and reference sets
func (v *Video) Update(m Metadata) *Video {
	v.apply(m)
	v.touch()
	return v
}

// Validate appends every rule violation of the video to n
func (v *Video) Validate(n *validation.Notification) {
	Validator{}.Validate(v, n)
}

// touch moves updatedAt strictly forward even when the clock has not advanced
func (v *Video) touch() {
	now := time.Now().UTC()
	if !now.After(v.updatedAt) {
		now = v.updatedAt.Add(time.Nanosecond)
	}
	v.updatedAt = now
}

func (v *Video) ID() ID { return v.id }

// Title returns the title or "" when absent
func (v *Video) Title() string {
	if v.title == nil {
		return ""
	}
	return *v.title
}

// Description returns the description or "" when absent
func (v *Video) Description() string {
	if v.description == nil {
		return ""
	}
	return *v.description
}

// LaunchedAt returns the launch year
func (v *Video) LaunchedAt() (int, bool) {
	if v.launchedAt == nil {
		return 0, false
	}
	return *v.launchedAt, true
}

// Rating returns the rating
func (v *Video) Rating() (Rating, bool) {
	if v.rating == nil {
		return "", false
	}
	return *v.rating, true
}

func (v *Video) Duration() float64 { return v.duration }
func (v *Video) Opened() bool { return v.opened }
func (v *Video) Published() bool { return v.published }
func (v *Video) CreatedAt() time.Time { return v.createdAt }
func (v *Video) UpdatedAt() time.Time { return v.updatedAt }

// Categories returns a copy of the category ids
func (v *Video) Categories() []category.ID {
	return append(make([]category.ID, 0, len(v.categories)), v.categories...)
}

// Genres returns a copy of the genre ids
func (v *Video) Genres() []genre.ID {
	return append(make([]genre.ID, 0, len(v.genres)), v.genres...)
}

// CastMembers returns a copy of the cast member ids
func (v *Video) CastMembers() []castmember.ID {
	return append(make([]castmember.ID, 0, len(v.castMembers)), v.castMembers...)
}

func (v *Video) Banner() (ImageMedia, bool) { return deref(v.banner) }
func (v *Video) Thumbnail() (ImageMedia, bool) { return deref(v.thumbnail) }
func (v *Video) ThumbnailHalf() (ImageMedia, bool) { return deref(v.thumbnailHalf) }
func (v *Video) Trailer() (AudioVideoMedia, bool) { return deref(v.trailer) }

// VideoMedia returns the main video binary descriptor
func (v *Video) VideoMedia() (AudioVideoMedia, bool) { return deref(v.video) }

// AddBannerMedia attaches the banner image
func (v *Video) AddBannerMedia(m ImageMedia) error {
	return v.setImage(&v.banner, m)
}

// AddThumbnailMedia attaches the thumbnail image
func (v *Video) AddThumbnailMedia(m ImageMedia) error {
	return v.setImage(&v.thumbnail, m)
}

// AddThumbnailHalfMedia attaches the half-size thumbnail image
func (v *Video) AddThumbnailHalfMedia(m ImageMedia) error {
	return v.setImage(&v.thumbnailHalf, m)
}

// AddTrailerMedia attaches the trailer
func (v *Video) AddTrailerMedia(m AudioVideoMedia) error {
	if err := v.setAudioVideo(&v.trailer, m); err != nil {
		return err
	}
	v.recordMediaCreated(m, MediaTypeTrailer)
	return nil
}

// AddVideoMedia attaches the main video binary
func (v *Video) AddVideoMedia(m AudioVideoMedia) error {
	if err := v.setAudioVideo(&v.video, m); err != nil {
		return err
	}
	v.recordMediaCreated(m, MediaTypeVideo)
	return nil
}

// AddImageMedia attaches an image to the slot named by t
func (v *Video) AddImageMedia(t MediaType, m ImageMedia) error {
	switch t {
	case MediaTypeBanner:
		return v.AddBannerMedia(m)
	case MediaTypeThumbnail:
		return v.AddThumbnailMedia(m)
	case MediaTypeThumbnailHalf:
		return v.AddThumbnailHalfMedia(m)
	}
	return fmt.Errorf("%w: %s is not an image slot", ErrInvalidMedia, t)
}

// AddAudioVideoMedia attaches an audio/video binary to the slot named by t
func (v *Video) AddAudioVideoMedia(t MediaType, m AudioVideoMedia) error {
	switch t {
	case MediaTypeVideo:
		return v.AddVideoMedia(m)
	case MediaTypeTrailer:
		return v.AddTrailerMedia(m)
	}
	return fmt.Errorf("%w: %s is not an audio/video slot", ErrInvalidMedia, t)
}

func (v *Video) RemoveBannerMedia() {
	v.banner = nil
	v.touch()
}

func (v *Video) RemoveThumbnailMedia() {
	v.thumbnail = nil
	v.touch()
}

func (v *Video) RemoveThumbnailHalfMedia() {
	v.thumbnailHalf = nil
	v.touch()
}

func (v *Video) RemoveTrailerMedia() {
	v.trailer = nil
	v.touch()
}

func (v *Video) RemoveVideoMedia() {
	v.video = nil
	v.touch()
}

// Processing marks the audio/video media in slot t as being encoded.
// It returns false when the slot is empty or holds an image.
func (v *Video) Processing(t MediaType) bool {
	return v.transition(t, func(m AudioVideoMedia) AudioVideoMedia { return m.Processing() })
}

// Completed marks the audio/video media in slot t as encoded at encodedPath
func (v *Video) Completed(t MediaType, encodedPath string) bool {
	return v.transition(t, func(m AudioVideoMedia) AudioVideoMedia { return m.Completed(encodedPath) })
}

func (v *Video) transition(t MediaType, fn func(AudioVideoMedia) AudioVideoMedia) bool {
	var slot **AudioVideoMedia
	switch t {
	case MediaTypeVideo:
		slot = &v.video
	case MediaTypeTrailer:
		slot = &v.trailer
	default:
		return false
	}
	if *slot == nil {
		return false
	}
	updated := fn(**slot)
	*slot = &updated
	v.touch()
	return true
}

// Snapshot exports the full state of the video
func (v *Video) Snapshot() Snapshot {
	return Snapshot{
		ID: v.id,
		Metadata: Metadata{
			Title:       copyPtr(v.title),
			Description: copyPtr(v.description),
			LaunchedAt:  copyPtr(v.launchedAt),
			Duration:    v.duration,
			Rating:      copyPtr(v.rating),
			Opened:      v.opened,
			Published:   v.published,
			Categories:  v.Categories(),
			Genres:      v.Genres(),
			CastMembers: v.CastMembers(),
		},
		CreatedAt:     v.createdAt,
		UpdatedAt:     v.updatedAt,
		Banner:        copyPtr(v.banner),
		Thumbnail:     copyPtr(v.thumbnail),
		ThumbnailHalf: copyPtr(v.thumbnailHalf),
		Trailer:       copyPtr(v.trailer),
		Video:         copyPtr(v.video),
	}
}

// PullEvents returns and clears the events recorded since the last pull
func (v *Video) PullEvents() []events.Event {
	out := v.events
	v.events = nil
	return out
}

func (v *Video) recordMediaCreated(m AudioVideoMedia, t MediaType) {
	if !m.IsPendingEncode() {
		return
	}
	v.events = append(v.events, NewVideoMediaCreated(v.id, m, t))
}

func (v *Video) setImage(slot **ImageMedia, m ImageMedia) error {
	if m.IsZero() {
		return fmt.Errorf("%w: image media is absent", ErrInvalidMedia)
	}
	*slot = &m
	v.touch()
	return nil
}

func (v *Video) setAudioVideo(slot **AudioVideoMedia, m AudioVideoMedia) error {
	if m.IsZero() {
		return fmt.Errorf("%w: audio/video media is absent", ErrInvalidMedia)
	}
	*slot = &m
	v.touch()
	return nil
}

func copyPtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	c := *p
	return &c
}

func deref[T any](p *T) (T, bool) {
	if p == nil {
		var zero T
		return zero, false
	}
	return *p, true
}
