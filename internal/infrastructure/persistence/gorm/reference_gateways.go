package gorm

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/narwhalmedia/catalog/internal/domain/castmember"
	"github.com/narwhalmedia/catalog/internal/domain/category"
	"github.com/narwhalmedia/catalog/internal/domain/genre"
	"github.com/narwhalmedia/catalog/internal/domain/identifier"
)

// CategoryGateway implements category.Gateway
type CategoryGateway struct {
	db *gorm.DB
}

func NewCategoryGateway(db *gorm.DB) *CategoryGateway {
	return &CategoryGateway{db: db}
}

// ExistsByIDs returns the ids of the stored categories among ids
func (g *CategoryGateway) ExistsByIDs(ctx context.Context, ids []category.ID) ([]category.ID, error) {
	return existsByIDs(ctx, g.db, &CategoryModel{}, ids)
}

// GenreGateway implements genre.Gateway
type GenreGateway struct {
	db *gorm.DB
}

func NewGenreGateway(db *gorm.DB) *GenreGateway {
	return &GenreGateway{db: db}
}

func (g *GenreGateway) ExistsByIDs(ctx context.Context, ids []genre.ID) ([]genre.ID, error) {
	return existsByIDs(ctx, g.db, &GenreModel{}, ids)
}

// CastMemberGateway implements castmember.Gateway
type CastMemberGateway struct {
	db *gorm.DB
}

func NewCastMemberGateway(db *gorm.DB) *CastMemberGateway {
	return &CastMemberGateway{db: db}
}

func (g *CastMemberGateway) ExistsByIDs(ctx context.Context, ids []castmember.ID) ([]castmember.ID, error) {
	return existsByIDs(ctx, g.db, &CastMemberModel{}, ids)
}

// existsByIDs plucks the ids of model rows matching ids. Soft-deleted rows do not count.
func existsByIDs[T ~string](ctx context.Context, db *gorm.DB, model interface{}, ids []T) ([]T, error) {
	if len(ids) == 0 {
		return []T{}, nil
	}

	var found []string
	err := db.WithContext(ctx).
		Model(model).
		Where("id IN ?", identifier.Strings(ids)).
		Pluck("id", &found).Error
	if err != nil {
		return nil, fmt.Errorf("checking ids: %w", err)
	}

	return identifier.Map[T](found), nil
}
