package video

import (
	"context"
	"errors"
	"fmt"

	"github.com/narwhalmedia/catalog/internal/domain/video"
	pkgerrors "github.com/narwhalmedia/catalog/pkg/errors"
	"github.com/narwhalmedia/catalog/pkg/interfaces"
)

// UploadMedia stores one resource and attaches it to its slot on the video
func (s *Service) UploadMedia(ctx context.Context, cmd UploadMediaCommand) (UploadMediaOutput, error) {
	if _, ok := video.MediaTypeOf(string(cmd.Resource.Type)); !ok {
		return UploadMediaOutput{}, pkgerrors.BadRequest(fmt.Sprintf("Invalid media type %q", cmd.Resource.Type))
	}

	v, err := s.load(ctx, video.ID(cmd.VideoID))
	if err != nil {
		return UploadMediaOutput{}, err
	}

	if err := s.store(ctx, v, cmd.Resource); err != nil {
		s.logger.Error("Failed to store media",
			interfaces.String("video_id", cmd.VideoID),
			interfaces.String("media_type", string(cmd.Resource.Type)),
			interfaces.Error(err),
		)
		return UploadMediaOutput{}, pkgerrors.Internal(fmt.Sprintf("An error has occurred on uploading media to a video with ID: %s", v.ID()), err)
	}
	if _, err := s.videos.Update(ctx, v); err != nil {
		s.logger.Error("Failed to persist uploaded media", interfaces.String("video_id", cmd.VideoID), interfaces.Error(err))
		return UploadMediaOutput{}, pkgerrors.Internal(fmt.Sprintf("An error has occurred on uploading media to a video with ID: %s", v.ID()), err)
	}

	s.publishEvents(ctx, v)

	return UploadMediaOutput{VideoID: string(v.ID()), MediaType: cmd.Resource.Type}, nil
}

// UpdateMediaStatus applies a status reported by the encoder to the VIDEO or
// TRAILER slot whose media id matches. A non-matching id leaves the slots alone
// and the video is persisted unchanged.
func (s *Service) UpdateMediaStatus(ctx context.Context, cmd UpdateMediaStatusCommand) error {
	v, err := s.load(ctx, video.ID(cmd.VideoID))
	if err != nil {
		return err
	}

	if m, ok := v.VideoMedia(); ok && m.ID() == cmd.ResourceID {
		applyStatus(v, video.MediaTypeVideo, cmd)
	} else if m, ok := v.Trailer(); ok && m.ID() == cmd.ResourceID {
		applyStatus(v, video.MediaTypeTrailer, cmd)
	} else {
		s.logger.Debug("No media matches encoder status",
			interfaces.String("video_id", cmd.VideoID),
			interfaces.String("resource_id", cmd.ResourceID),
		)
	}

	if _, err := s.videos.Update(ctx, v); err != nil {
		s.logger.Error("Failed to persist media status", interfaces.String("video_id", cmd.VideoID), interfaces.Error(err))
		return pkgerrors.Internal(fmt.Sprintf("An error has occurred on updating a video with ID: %s", v.ID()), err)
	}
	return nil
}

func applyStatus(v *video.Video, t video.MediaType, cmd UpdateMediaStatusCommand) {
	switch cmd.Status {
	case video.MediaStatusProcessing:
		v.Processing(t)
	case video.MediaStatusCompleted:
		v.Completed(t, cmd.Folder+"/"+cmd.Filename)
	}
}

// GetMedia returns the stored resource of one slot
func (s *Service) GetMedia(ctx context.Context, videoID, mediaType string) (video.Resource, error) {
	t, ok := video.MediaTypeOf(mediaType)
	if !ok {
		return video.Resource{}, pkgerrors.BadRequest(fmt.Sprintf("Invalid media type %q", mediaType))
	}

	r, err := s.resources.GetResource(ctx, video.ID(videoID), t)
	if err != nil {
		if errors.Is(err, video.ErrResourceNotFound) {
			return video.Resource{}, pkgerrors.NotFound(fmt.Sprintf("Resource %s not found for video %s", t, videoID))
		}
		return video.Resource{}, pkgerrors.Internal(fmt.Sprintf("An error has occurred on loading media of a video with ID: %s", videoID), err)
	}
	return r, nil
}
