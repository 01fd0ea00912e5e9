package storage

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/narwhalmedia/catalog/internal/domain/video"
)

// MediaResourceGateway implements video.MediaResourceGateway on top of a BlobStorage.
// Every video owns the keys below "videoId-{id}/".
type MediaResourceGateway struct {
	storage BlobStorage
	logger  *zap.Logger
}

// NewMediaResourceGateway creates a new media resource gateway
func NewMediaResourceGateway(storage BlobStorage, logger *zap.Logger) *MediaResourceGateway {
	return &MediaResourceGateway{
		storage: storage,
		logger:  logger.Named("media-resources"),
	}
}

func (g *MediaResourceGateway) StoreAudioVideo(ctx context.Context, id video.ID, r video.VideoResource) (video.AudioVideoMedia, error) {
	key, err := g.store(ctx, id, r)
	if err != nil {
		return video.AudioVideoMedia{}, err
	}
	return video.NewAudioVideoMedia(r.Name, r.Checksum, key)
}

func (g *MediaResourceGateway) StoreImage(ctx context.Context, id video.ID, r video.VideoResource) (video.ImageMedia, error) {
	key, err := g.store(ctx, id, r)
	if err != nil {
		return video.ImageMedia{}, err
	}
	return video.NewImageMedia(r.Name, r.Checksum, key)
}

// ClearResources deletes every object stored for the video
func (g *MediaResourceGateway) ClearResources(ctx context.Context, id video.ID) error {
	keys, err := g.storage.List(ctx, folder(id))
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	if err := g.storage.DeleteAll(ctx, keys); err != nil {
		return err
	}

	g.logger.Info("cleared video resources", zap.String("video_id", string(id)), zap.Int("count", len(keys)))
	return nil
}

func (g *MediaResourceGateway) GetResource(ctx context.Context, id video.ID, t video.MediaType) (video.Resource, error) {
	obj, err := g.storage.Get(ctx, Key(id, t))
	if err != nil {
		if errors.Is(err, ErrKeyNotFound) {
			return video.Resource{}, video.ErrResourceNotFound
		}
		return video.Resource{}, err
	}

	return video.Resource{
		Checksum:    obj.Checksum,
		Content:     obj.Content,
		ContentType: obj.ContentType,
		Name:        obj.Name,
	}, nil
}

func (g *MediaResourceGateway) store(ctx context.Context, id video.ID, r video.VideoResource) (string, error) {
	key := Key(id, r.Type)
	obj := Object{
		Name:        r.Name,
		ContentType: r.ContentType,
		Checksum:    r.Checksum,
		Content:     r.Content,
	}
	if err := g.storage.Store(ctx, key, obj); err != nil {
		return "", fmt.Errorf("storing %s of video %s: %w", r.Type, id, err)
	}
	return key, nil
}

// Key is the storage key of one media slot of a video
func Key(id video.ID, t video.MediaType) string {
	return fmt.Sprintf("%stype-%s", folder(id), t)
}

func folder(id video.ID) string {
	return fmt.Sprintf("videoId-%s/", id)
}
