package video

import (
	"context"
	"fmt"
	"time"

	"github.com/narwhalmedia/catalog/internal/domain/validation"
	"github.com/narwhalmedia/catalog/internal/domain/video"
	pkgerrors "github.com/narwhalmedia/catalog/pkg/errors"
	"github.com/narwhalmedia/catalog/pkg/interfaces"
)

// CreateVideo validates the command, stores its media and persists a new video.
// Anything stored for the video is cleared again if a later step fails.
func (s *Service) CreateVideo(ctx context.Context, cmd CreateVideoCommand) (CreateVideoOutput, error) {
	metadata := cmd.metadata()
	v := video.NewVideo(metadata)

	n := validation.NewNotification()
	if err := s.validateReferences(ctx, metadata, n); err != nil {
		s.logger.Error("Failed to validate video references", interfaces.Error(err))
		return CreateVideoOutput{}, pkgerrors.Internal("An error has occurred on validating video references", err)
	}
	v.Validate(n)
	if n.HasErrors() {
		return CreateVideoOutput{}, pkgerrors.Validation("Could not create Aggregate Video", n.Messages())
	}

	created, err := s.create(ctx, v, cmd.resources())
	if err != nil {
		return CreateVideoOutput{}, err
	}

	s.publishEvents(ctx, v)
	s.logger.Info("Video created", interfaces.String("video_id", string(created.ID())))

	return CreateVideoOutput{ID: string(created.ID())}, nil
}

// clearTimeout bounds the cleanup of a failed create
const clearTimeout = 30 * time.Second

func (s *Service) create(ctx context.Context, v *video.Video, resources []video.VideoResource) (*video.Video, error) {
	if err := s.attach(ctx, v, resources); err != nil {
		return nil, s.compensate(ctx, v.ID(), err)
	}
	created, err := s.videos.Create(ctx, v)
	if err != nil {
		return nil, s.compensate(ctx, v.ID(), err)
	}
	return created, nil
}

// compensate clears whatever was stored for id and wraps cause as an internal error.
// Cleanup outlives the caller's context so a cancelled request still clears its media.
func (s *Service) compensate(ctx context.Context, id video.ID, cause error) error {
	s.logger.Error("Failed to create video",
		interfaces.String("video_id", string(id)),
		interfaces.Error(cause),
	)
	cctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), clearTimeout)
	defer cancel()
	if err := s.resources.ClearResources(cctx, id); err != nil {
		s.logger.Error("Failed to clear resources of failed video",
			interfaces.String("video_id", string(id)),
			interfaces.Error(err),
		)
	}
	return pkgerrors.Internal(fmt.Sprintf("An error has occurred on creating a video with ID: %s", id), cause)
}

// attach stores every resource and puts the returned media in its slot
func (s *Service) attach(ctx context.Context, v *video.Video, resources []video.VideoResource) error {
	for _, r := range resources {
		if err := s.store(ctx, v, r); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) store(ctx context.Context, v *video.Video, r video.VideoResource) error {
	if r.Type.IsAudioVideo() {
		m, err := s.resources.StoreAudioVideo(ctx, v.ID(), r)
		if err != nil {
			return fmt.Errorf("storing %s: %w", r.Type, err)
		}
		return v.AddAudioVideoMedia(r.Type, m)
	}

	m, err := s.resources.StoreImage(ctx, v.ID(), r)
	if err != nil {
		return fmt.Errorf("storing %s: %w", r.Type, err)
	}
	return v.AddImageMedia(r.Type, m)
}
