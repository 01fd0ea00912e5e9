package gorm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/narwhalmedia/catalog/internal/domain/video"
	pkgerrors "github.com/narwhalmedia/catalog/pkg/errors"
)

const defaultPerPage = 10

var videoSortColumns = map[string]string{
	"title":       "title",
	"name":        "title",
	"duration":    "duration",
	"launchedAt":  "year_launched",
	"launched_at": "year_launched",
	"createdAt":   "created_at",
	"created_at":  "created_at",
}

// VideoGateway implements video.Gateway
type VideoGateway struct {
	db *gorm.DB
}

// NewVideoGateway creates a new GORM video gateway
func NewVideoGateway(db *gorm.DB) *VideoGateway {
	return &VideoGateway{db: db}
}

// Create inserts the video, its media rows and reference links in one transaction
func (g *VideoGateway) Create(ctx context.Context, v *video.Video) (*video.Video, error) {
	rec := fromDomain(v)

	err := g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := saveMedia(tx, rec); err != nil {
			return err
		}
		if err := tx.Create(&rec.video).Error; err != nil {
			if pkgerrors.IsDuplicateError(err) {
				return pkgerrors.Conflict(fmt.Sprintf("video %s already exists", rec.video.ID))
			}
			return fmt.Errorf("inserting video: %w", err)
		}
		return saveReferences(tx, rec)
	})
	if err != nil {
		return nil, err
	}
	return v, nil
}

// Update overwrites the stored video. Media no longer referenced is deleted.
func (g *VideoGateway) Update(ctx context.Context, v *video.Video) (*video.Video, error) {
	rec := fromDomain(v)

	err := g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var previous VideoModel
		if err := tx.First(&previous, "id = ?", rec.video.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return video.ErrNotFound
			}
			return err
		}

		if err := saveMedia(tx, rec); err != nil {
			return err
		}
		if err := tx.Save(&rec.video).Error; err != nil {
			return fmt.Errorf("saving video: %w", err)
		}
		if err := deleteReferences(tx, rec.video.ID); err != nil {
			return err
		}
		if err := saveReferences(tx, rec); err != nil {
			return err
		}
		return deleteOrphanedMedia(tx, previous, rec.video)
	})
	if err != nil {
		return nil, err
	}
	return v, nil
}

// FindByID retrieves a video by its ID
func (g *VideoGateway) FindByID(ctx context.Context, id video.ID) (*video.Video, error) {
	db := g.db.WithContext(ctx)

	var model VideoModel
	if err := db.First(&model, "id = ?", string(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, video.ErrNotFound
		}
		return nil, err
	}

	return load(db, model)
}

// DeleteByID removes a video with its media rows and links. Deleting an unknown id is a no-op.
func (g *VideoGateway) DeleteByID(ctx context.Context, id video.ID) error {
	return g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var model VideoModel
		if err := tx.First(&model, "id = ?", string(id)).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}

		if err := deleteReferences(tx, model.ID); err != nil {
			return err
		}
		if err := deleteOrphanedMedia(tx, model, VideoModel{}); err != nil {
			return err
		}
		return tx.Delete(&VideoModel{}, "id = ?", model.ID).Error
	})
}

// FindAll returns one page of videos whose title contains the query terms
func (g *VideoGateway) FindAll(ctx context.Context, q video.Query) (video.Pagination, error) {
	page := q.Page
	if page < 1 {
		page = 1
	}
	perPage := q.PerPage
	if perPage < 1 {
		perPage = defaultPerPage
	}

	db := g.db.WithContext(ctx)
	base := func() *gorm.DB {
		query := db.Model(&VideoModel{})
		if terms := strings.TrimSpace(q.Terms); terms != "" {
			query = query.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(terms)+"%")
		}
		return query
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		return video.Pagination{}, fmt.Errorf("counting videos: %w", err)
	}

	column, ok := videoSortColumns[q.Sort]
	if !ok {
		column = "title"
	}
	order := clause.OrderByColumn{
		Column: clause.Column{Name: column},
		Desc:   strings.EqualFold(q.Direction, "desc"),
	}

	var models []VideoModel
	if err := base().Order(order).Offset((page - 1) * perPage).Limit(perPage).Find(&models).Error; err != nil {
		return video.Pagination{}, fmt.Errorf("listing videos: %w", err)
	}

	items := make([]*video.Video, 0, len(models))
	for _, m := range models {
		v, err := load(db, m)
		if err != nil {
			return video.Pagination{}, err
		}
		items = append(items, v)
	}

	return video.Pagination{
		CurrentPage: page,
		PerPage:     perPage,
		Total:       total,
		Items:       items,
	}, nil
}

func load(db *gorm.DB, model VideoModel) (*video.Video, error) {
	rec := videoRecord{video: model}

	audioVideoIDs, imageIDs := model.mediaIDs()
	if len(audioVideoIDs) > 0 {
		if err := db.Where("id IN ?", audioVideoIDs).Find(&rec.audioVideo).Error; err != nil {
			return nil, fmt.Errorf("loading audio/video media: %w", err)
		}
	}
	if len(imageIDs) > 0 {
		if err := db.Where("id IN ?", imageIDs).Find(&rec.images).Error; err != nil {
			return nil, fmt.Errorf("loading image media: %w", err)
		}
	}
	if err := db.Where("video_id = ?", model.ID).Order("position").Find(&rec.categories).Error; err != nil {
		return nil, fmt.Errorf("loading categories: %w", err)
	}
	if err := db.Where("video_id = ?", model.ID).Order("position").Find(&rec.genres).Error; err != nil {
		return nil, fmt.Errorf("loading genres: %w", err)
	}
	if err := db.Where("video_id = ?", model.ID).Order("position").Find(&rec.castMembers).Error; err != nil {
		return nil, fmt.Errorf("loading cast members: %w", err)
	}

	return rec.toDomain()
}

func saveMedia(tx *gorm.DB, rec videoRecord) error {
	upsert := clause.OnConflict{UpdateAll: true}
	if len(rec.audioVideo) > 0 {
		if err := tx.Clauses(upsert).Create(&rec.audioVideo).Error; err != nil {
			return fmt.Errorf("saving audio/video media: %w", err)
		}
	}
	if len(rec.images) > 0 {
		if err := tx.Clauses(upsert).Create(&rec.images).Error; err != nil {
			return fmt.Errorf("saving image media: %w", err)
		}
	}
	return nil
}

func saveReferences(tx *gorm.DB, rec videoRecord) error {
	if len(rec.categories) > 0 {
		if err := tx.Create(&rec.categories).Error; err != nil {
			return fmt.Errorf("linking categories: %w", err)
		}
	}
	if len(rec.genres) > 0 {
		if err := tx.Create(&rec.genres).Error; err != nil {
			return fmt.Errorf("linking genres: %w", err)
		}
	}
	if len(rec.castMembers) > 0 {
		if err := tx.Create(&rec.castMembers).Error; err != nil {
			return fmt.Errorf("linking cast members: %w", err)
		}
	}
	return nil
}

func deleteReferences(tx *gorm.DB, videoID string) error {
	for _, model := range []interface{}{&VideoCategoryModel{}, &VideoGenreModel{}, &VideoCastMemberModel{}} {
		if err := tx.Where("video_id = ?", videoID).Delete(model).Error; err != nil {
			return fmt.Errorf("unlinking references: %w", err)
		}
	}
	return nil
}

// deleteOrphanedMedia removes media rows referenced by previous but not by current
func deleteOrphanedMedia(tx *gorm.DB, previous, current VideoModel) error {
	prevAudioVideo, prevImages := previous.mediaIDs()
	curAudioVideo, curImages := current.mediaIDs()

	if orphans := difference(prevAudioVideo, curAudioVideo); len(orphans) > 0 {
		if err := tx.Delete(&AudioVideoMediaModel{}, "id IN ?", orphans).Error; err != nil {
			return fmt.Errorf("deleting audio/video media: %w", err)
		}
	}
	if orphans := difference(prevImages, curImages); len(orphans) > 0 {
		if err := tx.Delete(&ImageMediaModel{}, "id IN ?", orphans).Error; err != nil {
			return fmt.Errorf("deleting image media: %w", err)
		}
	}
	return nil
}

func difference(a, b []string) []string {
	keep := make(map[string]struct{}, len(b))
	for _, id := range b {
		keep[id] = struct{}{}
	}
	var out []string
	for _, id := range a {
		if _, ok := keep[id]; !ok {
			out = append(out, id)
		}
	}
	return out
}
