// Package video orchestrates the video use cases: it validates references,
// stores media and persists the aggregate.
package video

import (
	"context"
	"errors"
	"fmt"

	"github.com/narwhalmedia/catalog/internal/domain/castmember"
	"github.com/narwhalmedia/catalog/internal/domain/category"
	"github.com/narwhalmedia/catalog/internal/domain/events"
	"github.com/narwhalmedia/catalog/internal/domain/genre"
	"github.com/narwhalmedia/catalog/internal/domain/video"
	pkgerrors "github.com/narwhalmedia/catalog/pkg/errors"
	"github.com/narwhalmedia/catalog/pkg/interfaces"
)

// Service handles use case orchestration for videos
type Service struct {
	videos      video.Gateway
	resources   video.MediaResourceGateway
	categories  category.Gateway
	genres      genre.Gateway
	castMembers castmember.Gateway
	publisher   events.EventPublisher
	logger      interfaces.Logger
}

// NewService creates a new video application service
func NewService(
	videos video.Gateway,
	resources video.MediaResourceGateway,
	categories category.Gateway,
	genres genre.Gateway,
	castMembers castmember.Gateway,
	publisher events.EventPublisher,
	logger interfaces.Logger,
) *Service {
	return &Service{
		videos:      videos,
		resources:   resources,
		categories:  categories,
		genres:      genres,
		castMembers: castMembers,
		publisher:   publisher,
		logger:      logger,
	}
}

// GetVideo loads a video by id
func (s *Service) GetVideo(ctx context.Context, id string) (*video.Video, error) {
	return s.load(ctx, video.ID(id))
}

// DeleteVideo removes the video and everything stored for it
func (s *Service) DeleteVideo(ctx context.Context, id string) error {
	videoID := video.ID(id)
	if err := s.videos.DeleteByID(ctx, videoID); err != nil {
		s.logger.Error("Failed to delete video", interfaces.String("video_id", id), interfaces.Error(err))
		return pkgerrors.Internal(fmt.Sprintf("An error has occurred on deleting a video with ID: %s", id), err)
	}
	if err := s.resources.ClearResources(ctx, videoID); err != nil {
		s.logger.Error("Failed to clear video resources", interfaces.String("video_id", id), interfaces.Error(err))
		return pkgerrors.Internal(fmt.Sprintf("An error has occurred on deleting a video with ID: %s", id), err)
	}
	return nil
}

// ListVideos returns one page of videos
func (s *Service) ListVideos(ctx context.Context, q ListVideosQuery) (video.Pagination, error) {
	page, err := s.videos.FindAll(ctx, video.Query(q))
	if err != nil {
		return video.Pagination{}, pkgerrors.Internal("An error has occurred on listing videos", err)
	}
	return page, nil
}

func (s *Service) load(ctx context.Context, id video.ID) (*video.Video, error) {
	v, err := s.videos.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, video.ErrNotFound) {
			return nil, pkgerrors.NotFound(fmt.Sprintf("Video with ID %s was not found", id))
		}
		return nil, pkgerrors.Internal(fmt.Sprintf("An error has occurred on loading a video with ID: %s", id), err)
	}
	return v, nil
}

// publishEvents sends the events recorded on v. Failures are logged, not returned.
func (s *Service) publishEvents(ctx context.Context, v *video.Video) {
	for _, event := range v.PullEvents() {
		if err := s.publisher.PublishEvent(ctx, event); err != nil {
			s.logger.Warn("Failed to publish video event",
				interfaces.String("video_id", string(v.ID())),
				interfaces.String("event_type", event.EventType()),
				interfaces.Error(err),
			)
		}
	}
}
