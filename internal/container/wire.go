//go:build wireinject
// +build wireinject

package container

import (
	"context"

	"github.com/google/wire"
	"go.uber.org/zap"

	videoapp "github.com/narwhalmedia/catalog/internal/application/video"
	"github.com/narwhalmedia/catalog/internal/config"
	"github.com/narwhalmedia/catalog/internal/domain/castmember"
	"github.com/narwhalmedia/catalog/internal/domain/category"
	"github.com/narwhalmedia/catalog/internal/domain/genre"
	"github.com/narwhalmedia/catalog/internal/domain/video"
	"github.com/narwhalmedia/catalog/internal/infrastructure/events/encoder"
	gormrepo "github.com/narwhalmedia/catalog/internal/infrastructure/persistence/gorm"
	"github.com/narwhalmedia/catalog/internal/infrastructure/storage"
)

// InitializeCatalog creates the catalog service with all dependencies
func InitializeCatalog(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*CatalogContainer, func(), error) {
	wire.Build(
		// Database
		gormrepo.NewDB,

		// Gateways
		gormrepo.NewVideoGateway,
		wire.Bind(new(video.Gateway), new(*gormrepo.VideoGateway)),
		gormrepo.NewCategoryGateway,
		wire.Bind(new(category.Gateway), new(*gormrepo.CategoryGateway)),
		gormrepo.NewGenreGateway,
		wire.Bind(new(genre.Gateway), new(*gormrepo.GenreGateway)),
		gormrepo.NewCastMemberGateway,
		wire.Bind(new(castmember.Gateway), new(*gormrepo.CastMemberGateway)),

		// Media storage
		provideBlobStorage,
		storage.NewMediaResourceGateway,
		wire.Bind(new(video.MediaResourceGateway), new(*storage.MediaResourceGateway)),

		// Messaging
		provideTransport,
		providePublisher,

		// Application
		provideAppLogger,
		videoapp.NewService,

		// Encoder results
		encoder.NewHandler,
		wire.Bind(new(encoder.MediaStatusUpdater), new(*videoapp.Service)),
		provideEncoderListener,

		// Container
		wire.Struct(new(CatalogContainer), "*"),
	)

	return nil, nil, nil
}
