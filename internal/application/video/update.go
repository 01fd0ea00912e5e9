package video

import (
	"context"
	"fmt"

	"github.com/narwhalmedia/catalog/internal/domain/validation"
	"github.com/narwhalmedia/catalog/internal/domain/video"
	pkgerrors "github.com/narwhalmedia/catalog/pkg/errors"
	"github.com/narwhalmedia/catalog/pkg/interfaces"
)

// UpdateVideo replaces the metadata of an existing video and stores any new media.
// Slots without a new resource keep their current media. Media stored before a
// failure is not cleared.
func (s *Service) UpdateVideo(ctx context.Context, cmd UpdateVideoCommand) (UpdateVideoOutput, error) {
	v, err := s.load(ctx, video.ID(cmd.ID))
	if err != nil {
		return UpdateVideoOutput{}, err
	}

	metadata := cmd.metadata()
	n := validation.NewNotification()
	if err := s.validateReferences(ctx, metadata, n); err != nil {
		s.logger.Error("Failed to validate video references", interfaces.String("video_id", cmd.ID), interfaces.Error(err))
		return UpdateVideoOutput{}, pkgerrors.Internal("An error has occurred on validating video references", err)
	}
	v.Update(metadata)
	v.Validate(n)
	if n.HasErrors() {
		return UpdateVideoOutput{}, pkgerrors.Validation("Could not update Aggregate Video", n.Messages())
	}

	updated, err := s.update(ctx, v, cmd.resources())
	if err != nil {
		s.logger.Error("Failed to update video", interfaces.String("video_id", cmd.ID), interfaces.Error(err))
		return UpdateVideoOutput{}, pkgerrors.Internal(fmt.Sprintf("An error has occurred on updating a video with ID: %s", v.ID()), err)
	}

	s.publishEvents(ctx, v)

	return UpdateVideoOutput{ID: string(updated.ID())}, nil
}

func (s *Service) update(ctx context.Context, v *video.Video, resources []video.VideoResource) (*video.Video, error) {
	if err := s.attach(ctx, v, resources); err != nil {
		return nil, err
	}
	return s.videos.Update(ctx, v)
}
