package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/playerbase/player-api/internal/model"
	"github.com/playerbase/player-api/internal/queue"
	"github.com/playerbase/player-api/internal/repository"
)

// PresignInput carries POST /v1/uploads/presign.
type PresignInput struct {
	Kind        string `json:"kind"`
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
}

// PresignResult is the issued upload slot.
type PresignResult struct {
	UploadURL string `json:"upload_url"`
	Key       string `json:"key"`
	PublicURL string `json:"public_url"`
	ExpiresIn int    `json:"expires_in"`
}

// UploadCallbackInput is what the moderation pipeline reports back for one
// processed media item.
type UploadCallbackInput struct {
	MediaID     string   `json:"media_id"`
	Status      string   `json:"status"`
	Width       *int     `json:"width,omitempty"`
	Height      *int     `json:"height,omitempty"`
	DurationSec *int     `json:"duration_sec,omitempty"`
	NSFWScore   *float64 `json:"nsfw_score,omitempty"`
}

// FilesService issues presigned upload URLs for gallery media and avatars,
// and applies moderation verdicts reported by the upload pipeline.
type FilesService struct {
	presigner Presigner
	media     repository.MediaStore
	events    EventPublisher
	log       zerolog.Logger
}

func NewFilesService(presigner Presigner, media repository.MediaStore,
	events EventPublisher, log zerolog.Logger) *FilesService {
	return &FilesService{
		presigner: presigner,
		media:     media,
		events:    events,
		log:       log.With().Str("component", "files").Logger(),
	}
}

const presignTTL = time.Hour

// Presign validates the upload against the kind's allowed content types and
// returns a one-hour PUT URL. Avatars take images only; gallery media also
// accepts video.
func (s *FilesService) Presign(ctx context.Context, in PresignInput) (PresignResult, error) {
	if in.FileName == "" {
		return PresignResult{}, fmt.Errorf("%w: file_name is required", ErrBadRequest)
	}
	switch in.Kind {
	case "media":
		if !allowedImageTypes[in.ContentType] && !allowedVideoTypes[in.ContentType] {
			return PresignResult{}, fmt.Errorf("%w: unsupported content type %q", ErrBadRequest, in.ContentType)
		}
	case "avatar":
		if !allowedImageTypes[in.ContentType] {
			return PresignResult{}, fmt.Errorf("%w: unsupported content type %q", ErrBadRequest, in.ContentType)
		}
	default:
		return PresignResult{}, fmt.Errorf("%w: unknown upload kind %q", ErrBadRequest, in.Kind)
	}

	key := ObjectKey(in.Kind, in.FileName)
	url, err := s.presigner.PresignPut(ctx, key, in.ContentType, presignTTL)
	if err != nil {
		return PresignResult{}, err
	}
	return PresignResult{
		UploadURL: url,
		Key:       key,
		PublicURL: s.presigner.PublicURL(key),
		ExpiresIn: int(presignTTL.Seconds()),
	}, nil
}

var moderationStatuses = map[string]bool{
	model.MediaStatusApproved: true,
	model.MediaStatusRejected: true,
	model.MediaStatusPending:  true,
}

// Callback records a moderation verdict with the extracted metadata and
// publishes a media.moderated event.
func (s *FilesService) Callback(ctx context.Context, in UploadCallbackInput) (MediaView, error) {
	if !moderationStatuses[in.Status] {
		return MediaView{}, fmt.Errorf("%w: unknown status %q", ErrBadRequest, in.Status)
	}
	if _, err := s.media.GetByID(ctx, in.MediaID); err != nil {
		return MediaView{}, translateLookup(err)
	}

	m, err := s.media.ApplyModeration(ctx, in.MediaID, repository.ModerationResult{
		Status:      in.Status,
		Width:       in.Width,
		Height:      in.Height,
		DurationSec: in.DurationSec,
		NSFWScore:   in.NSFWScore,
	})
	if err != nil {
		return MediaView{}, err
	}

	if s.events != nil {
		if err := s.events.Publish(ctx, queue.EventMediaModerated, queue.MediaModeratedEvent{
			MediaID:   m.ID,
			ProfileID: m.ProfileID,
			Status:    m.Status,
		}); err != nil {
			s.log.Warn().Err(err).Str("media_id", m.ID).Msg("publish media.moderated")
		}
	}
	return NewMediaView(m), nil
}
