package gorm

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/narwhalmedia/catalog/internal/domain/castmember"
	"github.com/narwhalmedia/catalog/internal/domain/category"
	"github.com/narwhalmedia/catalog/internal/domain/genre"
	"github.com/narwhalmedia/catalog/internal/domain/identifier"
	"github.com/narwhalmedia/catalog/internal/domain/video"
)

// VideoModel represents a video in the database.
// Timestamps are owned by the aggregate, so GORM must not touch them.
type VideoModel struct {
	ID                   string    `gorm:"primaryKey;size:32"`
	Title                *string   `gorm:"size:255"`
	Description          *string   `gorm:"size:4000"`
	YearLaunched         *int
	Duration             float64   `gorm:"not null"`
	Rating               *string   `gorm:"size:16"`
	Opened               bool      `gorm:"not null"`
	Published            bool      `gorm:"not null"`
	VideoMediaID         *string   `gorm:"size:32"`
	TrailerMediaID       *string   `gorm:"size:32"`
	BannerMediaID        *string   `gorm:"size:32"`
	ThumbnailMediaID     *string   `gorm:"size:32"`
	ThumbnailHalfMediaID *string   `gorm:"size:32"`
	CreatedAt            time.Time `gorm:"not null;autoCreateTime:false"`
	UpdatedAt            time.Time `gorm:"not null;autoUpdateTime:false"`
}

func (VideoModel) TableName() string { return "videos" }

// AudioVideoMediaModel represents a video or trailer binary
type AudioVideoMediaModel struct {
	ID              string `gorm:"primaryKey;size:32"`
	Name            string `gorm:"not null;size:255"`
	Checksum        string `gorm:"not null;size:255"`
	RawLocation     string `gorm:"not null;size:1024"`
	EncodedLocation string `gorm:"not null;size:1024"`
	Status          string `gorm:"not null;size:16"`
}

func (AudioVideoMediaModel) TableName() string { return "videos_video_media" }

// ImageMediaModel represents an image binary
type ImageMediaModel struct {
	ID       string `gorm:"primaryKey;size:32"`
	Name     string `gorm:"not null;size:255"`
	Checksum string `gorm:"not null;size:255"`
	Location string `gorm:"not null;size:1024"`
}

func (ImageMediaModel) TableName() string { return "videos_image_media" }

// VideoCategoryModel links a video to a category
type VideoCategoryModel struct {
	VideoID    string `gorm:"primaryKey;size:32"`
	CategoryID string `gorm:"primaryKey;size:32;index"`
	Position   int    `gorm:"not null"`
}

func (VideoCategoryModel) TableName() string { return "videos_categories" }

// VideoGenreModel links a video to a genre
type VideoGenreModel struct {
	VideoID  string `gorm:"primaryKey;size:32"`
	GenreID  string `gorm:"primaryKey;size:32;index"`
	Position int    `gorm:"not null"`
}

func (VideoGenreModel) TableName() string { return "videos_genres" }

// VideoCastMemberModel links a video to a cast member
type VideoCastMemberModel struct {
	VideoID      string `gorm:"primaryKey;size:32"`
	CastMemberID string `gorm:"primaryKey;size:32;index"`
	Position     int    `gorm:"not null"`
}

func (VideoCastMemberModel) TableName() string { return "videos_cast_members" }

// CategoryModel represents a category in the database
type CategoryModel struct {
	ID          string `gorm:"primaryKey;size:32"`
	Name        string `gorm:"not null;size:255"`
	Description *string
	Active      bool `gorm:"not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

func (CategoryModel) TableName() string { return "categories" }

// GenreModel represents a genre in the database
type GenreModel struct {
	ID        string `gorm:"primaryKey;size:32"`
	Name      string `gorm:"not null;size:255"`
	Active    bool   `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (GenreModel) TableName() string { return "genres" }

// CastMemberModel represents a cast member in the database
type CastMemberModel struct {
	ID        string `gorm:"primaryKey;size:32"`
	Name      string `gorm:"not null;size:255"`
	Type      string `gorm:"not null;size:32"` // ACTOR or DIRECTOR
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (CastMemberModel) TableName() string { return "cast_members" }

// videoRecord groups every row that makes up one video
type videoRecord struct {
	video       VideoModel
	audioVideo  []AudioVideoMediaModel
	images      []ImageMediaModel
	categories  []VideoCategoryModel
	genres      []VideoGenreModel
	castMembers []VideoCastMemberModel
}

// fromDomain converts a domain video into its rows
func fromDomain(v *video.Video) videoRecord {
	s := v.Snapshot()
	rec := videoRecord{
		video: VideoModel{
			ID:           string(s.ID),
			Title:        s.Title,
			Description:  s.Description,
			YearLaunched: s.LaunchedAt,
			Duration:     s.Duration,
			Opened:       s.Opened,
			Published:    s.Published,
			CreatedAt:    s.CreatedAt,
			UpdatedAt:    s.UpdatedAt,
		},
	}
	if s.Rating != nil {
		r := string(*s.Rating)
		rec.video.Rating = &r
	}

	for _, slot := range []struct {
		m  *video.AudioVideoMedia
		id **string
	}{
		{s.Video, &rec.video.VideoMediaID},
		{s.Trailer, &rec.video.TrailerMediaID},
	} {
		if slot.m == nil {
			continue
		}
		id := slot.m.ID()
		*slot.id = &id
		rec.audioVideo = append(rec.audioVideo, AudioVideoMediaModel{
			ID:              id,
			Name:            slot.m.Name(),
			Checksum:        slot.m.Checksum(),
			RawLocation:     slot.m.RawLocation(),
			EncodedLocation: slot.m.EncodedLocation(),
			Status:          string(slot.m.Status()),
		})
	}

	for _, slot := range []struct {
		m  *video.ImageMedia
		id **string
	}{
		{s.Banner, &rec.video.BannerMediaID},
		{s.Thumbnail, &rec.video.ThumbnailMediaID},
		{s.ThumbnailHalf, &rec.video.ThumbnailHalfMediaID},
	} {
		if slot.m == nil {
			continue
		}
		id := slot.m.ID()
		*slot.id = &id
		rec.images = append(rec.images, ImageMediaModel{
			ID:       id,
			Name:     slot.m.Name(),
			Checksum: slot.m.Checksum(),
			Location: slot.m.Location(),
		})
	}

	for i, id := range s.Categories {
		rec.categories = append(rec.categories, VideoCategoryModel{VideoID: string(s.ID), CategoryID: string(id), Position: i})
	}
	for i, id := range s.Genres {
		rec.genres = append(rec.genres, VideoGenreModel{VideoID: string(s.ID), GenreID: string(id), Position: i})
	}
	for i, id := range s.CastMembers {
		rec.castMembers = append(rec.castMembers, VideoCastMemberModel{VideoID: string(s.ID), CastMemberID: string(id), Position: i})
	}

	return rec
}

// toDomain rebuilds the aggregate from its rows
func (rec videoRecord) toDomain() (*video.Video, error) {
	m := rec.video
	s := video.Snapshot{
		ID: video.ID(m.ID),
		Metadata: video.Metadata{
			Title:       m.Title,
			Description: m.Description,
			LaunchedAt:  m.YearLaunched,
			Duration:    m.Duration,
			Opened:      m.Opened,
			Published:   m.Published,
			Categories:  make([]category.ID, 0, len(rec.categories)),
			Genres:      make([]genre.ID, 0, len(rec.genres)),
			CastMembers: make([]castmember.ID, 0, len(rec.castMembers)),
		},
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
	if m.Rating != nil {
		r, ok := video.ParseRating(*m.Rating)
		if !ok {
			return nil, fmt.Errorf("video %s has unknown rating %q", m.ID, *m.Rating)
		}
		s.Rating = &r
	}

	audioVideo := make(map[string]AudioVideoMediaModel, len(rec.audioVideo))
	for _, a := range rec.audioVideo {
		audioVideo[a.ID] = a
	}
	var err error
	if s.Video, err = audioVideoFor(m.VideoMediaID, audioVideo); err != nil {
		return nil, err
	}
	if s.Trailer, err = audioVideoFor(m.TrailerMediaID, audioVideo); err != nil {
		return nil, err
	}

	images := make(map[string]ImageMediaModel, len(rec.images))
	for _, img := range rec.images {
		images[img.ID] = img
	}
	if s.Banner, err = imageFor(m.BannerMediaID, images); err != nil {
		return nil, err
	}
	if s.Thumbnail, err = imageFor(m.ThumbnailMediaID, images); err != nil {
		return nil, err
	}
	if s.ThumbnailHalf, err = imageFor(m.ThumbnailHalfMediaID, images); err != nil {
		return nil, err
	}

	for _, c := range rec.categories {
		s.Categories = append(s.Categories, category.ID(c.CategoryID))
	}
	for _, g := range rec.genres {
		s.Genres = append(s.Genres, genre.ID(g.GenreID))
	}
	for _, c := range rec.castMembers {
		s.CastMembers = append(s.CastMembers, castmember.ID(c.CastMemberID))
	}

	return video.With(s), nil
}

func audioVideoFor(id *string, rows map[string]AudioVideoMediaModel) (*video.AudioVideoMedia, error) {
	if id == nil {
		return nil, nil
	}
	row, ok := rows[*id]
	if !ok {
		return nil, fmt.Errorf("audio/video media %s is missing", *id)
	}
	m, err := video.AudioVideoMediaWith(row.ID, row.Name, row.Checksum, row.RawLocation, row.EncodedLocation, video.MediaStatus(row.Status))
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func imageFor(id *string, rows map[string]ImageMediaModel) (*video.ImageMedia, error) {
	if id == nil {
		return nil, nil
	}
	row, ok := rows[*id]
	if !ok {
		return nil, fmt.Errorf("image media %s is missing", *id)
	}
	m, err := video.ImageMediaWith(row.ID, row.Name, row.Checksum, row.Location)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// mediaIDs returns the media ids referenced by m
func (m VideoModel) mediaIDs() (audioVideo, images []string) {
	for _, id := range []*string{m.VideoMediaID, m.TrailerMediaID} {
		if id != nil {
			audioVideo = append(audioVideo, *id)
		}
	}
	for _, id := range []*string{m.BannerMediaID, m.ThumbnailMediaID, m.ThumbnailHalfMediaID} {
		if id != nil {
			images = append(images, *id)
		}
	}
	return identifier.Unique(audioVideo), identifier.Unique(images)
}
