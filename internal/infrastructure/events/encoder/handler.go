// Package encoder turns encoder results into media status updates.
package encoder

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	videoapp "github.com/narwhalmedia/catalog/internal/application/video"
	"github.com/narwhalmedia/catalog/internal/domain/video"
	apperrors "github.com/narwhalmedia/catalog/pkg/errors"
)

// Result statuses sent by the encoder
const (
	StatusCompleted  = "COMPLETED"
	StatusProcessing = "PROCESSING"
	StatusError      = "ERROR"
)

// MediaStatusUpdater applies a reported status to a video
type MediaStatusUpdater interface {
	UpdateMediaStatus(ctx context.Context, cmd videoapp.UpdateMediaStatusCommand) error
}

// Result is the message the encoder publishes once it picked up or finished a job.
// Failed jobs carry Error and echo the original request in Message.
type Result struct {
	ID           string          `json:"id"`
	Status       string          `json:"status"`
	OutputBucket string          `json:"output_bucket"`
	Video        *ResultVideo    `json:"video,omitempty"`
	Error        string          `json:"error,omitempty"`
	Message      json.RawMessage `json:"message,omitempty"`
}

// ResultVideo locates the encoded output
type ResultVideo struct {
	EncodedVideoFolder string `json:"encoded_video_folder"`
	ResourceID         string `json:"resource_id"`
	FilePath           string `json:"file_path"`
}

// Handler decodes encoder results and forwards them to the catalog
type Handler struct {
	updater MediaStatusUpdater
	logger  *zap.Logger
}

// NewHandler creates a new encoder result handler
func NewHandler(updater MediaStatusUpdater, logger *zap.Logger) *Handler {
	return &Handler{
		updater: updater,
		logger:  logger.Named("encoder-results"),
	}
}

// Handle processes one raw encoder result.
// A returned error means the message should be redelivered.
func (h *Handler) Handle(ctx context.Context, data []byte) error {
	var result Result
	if err := json.Unmarshal(data, &result); err != nil {
		return fmt.Errorf("failed to decode encoder result: %w", err)
	}

	switch result.Status {
	case StatusError:
		h.logger.Error("encoder reported a failure",
			zap.String("video_id", result.ID),
			zap.String("error", result.Error),
			zap.ByteString("request", result.Message),
		)
		return nil
	case StatusCompleted, StatusProcessing:
	default:
		return fmt.Errorf("unknown encoder status %q", result.Status)
	}

	if result.Video == nil {
		return fmt.Errorf("encoder result for video %s has no video section", result.ID)
	}

	cmd := videoapp.UpdateMediaStatusCommand{
		Status:     video.MediaStatusProcessing,
		VideoID:    result.ID,
		ResourceID: result.Video.ResourceID,
	}
	if result.Status == StatusCompleted {
		cmd.Status = video.MediaStatusCompleted
		cmd.Folder = result.Video.EncodedVideoFolder
		cmd.Filename = result.Video.FilePath
	}

	if err := h.updater.UpdateMediaStatus(ctx, cmd); err != nil {
		if apperrors.IsNotFound(err) {
			h.logger.Warn("dropping encoder result for unknown video", zap.String("video_id", result.ID))
			return nil
		}
		return err
	}

	h.logger.Info("media status updated",
		zap.String("video_id", cmd.VideoID),
		zap.String("resource_id", cmd.ResourceID),
		zap.String("status", string(cmd.Status)),
	)
	return nil
}
