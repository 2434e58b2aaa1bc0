package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/rs/zerolog"

	"github.com/playerbase/player-api/internal/model"
	"github.com/playerbase/player-api/internal/repository"
	"github.com/playerbase/player-api/internal/utils"
)

// Presigner issues time-limited upload URLs against object storage and maps
// stored keys to their public URLs.
type Presigner interface {
	PresignPut(ctx context.Context, key, contentType string, expires time.Duration) (string, error)
	PublicURL(key string) string
}

// UpdateProfileInput carries the PATCH /v1/me payload. Nil fields are left
// untouched.
type UpdateProfileInput struct {
	DisplayName     *string `json:"display_name,omitempty"`
	Bio             *string `json:"bio,omitempty"`
	AvatarURL       *string `json:"avatar_url,omitempty"`
	State           *string `json:"state,omitempty"`
	City            *string `json:"city,omitempty"`
	CitySlug        *string `json:"city_slug,omitempty"`
	ContactEmail    *string `json:"contact_email,omitempty"`
	Whatsapp        *string `json:"whatsapp,omitempty"`
	Twitch          *string `json:"twitch,omitempty"`
	Youtube         *string `json:"youtube,omitempty"`
	Instagram       *string `json:"instagram,omitempty"`
	FeaturedMediaID *string `json:"featured_media_id,omitempty"`
}

// CreateMediaInput carries POST /v1/me/media.
type CreateMediaInput struct {
	Type        string   `json:"type"`
	Source      string   `json:"source"`
	URL         string   `json:"url"`
	PosterURL   *string  `json:"poster_url,omitempty"`
	BlurDataURL *string  `json:"blur_data_url,omitempty"`
	Width       *int     `json:"width,omitempty"`
	Height      *int     `json:"height,omitempty"`
	DurationSec *int     `json:"duration_sec,omitempty"`
	FocalPointX *float64 `json:"focal_point_x,omitempty"`
	FocalPointY *float64 `json:"focal_point_y,omitempty"`
	Title       *string  `json:"title,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// UpdateMediaInput carries PATCH /v1/me/media/:media_id.
type UpdateMediaInput struct {
	Title       *string  `json:"title,omitempty"`
	FocalPointX *float64 `json:"focal_point_x,omitempty"`
	FocalPointY *float64 `json:"focal_point_y,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// AvatarUpload is the response to an avatar presign request.
type AvatarUpload struct {
	UploadURL string `json:"upload_url"`
	Key       string `json:"key"`
	PublicURL string `json:"public_url"`
}

// MediaPage is a page of the caller's own media.
type MediaPage struct {
	Items []MediaView    `json:"data"`
	Meta  utils.PageMeta `json:"meta"`
}

// ProfileService owns the authenticated user's profile and gallery.
type ProfileService struct {
	profiles  repository.ProfileStore
	media     repository.MediaStore
	presigner Presigner
	log       zerolog.Logger
}

func NewProfileService(profiles repository.ProfileStore, media repository.MediaStore,
	presigner Presigner, log zerolog.Logger) *ProfileService {
	return &ProfileService{
		profiles:  profiles,
		media:     media,
		presigner: presigner,
		log:       log.With().Str("component", "profile").Logger(),
	}
}

// Get returns the caller's profile.
func (s *ProfileService) Get(ctx context.Context, userID string) (ProfileView, error) {
	p, err := s.ownProfile(ctx, userID)
	if err != nil {
		return ProfileView{}, err
	}
	return NewProfileView(p), nil
}

// Update patches the caller's profile with the provided fields.
func (s *ProfileService) Update(ctx context.Context, userID string, in UpdateProfileInput) (ProfileView, error) {
	p, err := s.ownProfile(ctx, userID)
	if err != nil {
		return ProfileView{}, err
	}

	fields := map[string]any{}
	setStr := func(col string, v *string) {
		if v != nil {
			fields[col] = *v
		}
	}
	setStr("display_name", in.DisplayName)
	setStr("bio", in.Bio)
	setStr("avatar_url", in.AvatarURL)
	setStr("state", in.State)
	setStr("city", in.City)
	setStr("city_slug", in.CitySlug)
	setStr("contact_email", in.ContactEmail)
	setStr("whatsapp", in.Whatsapp)
	setStr("twitch", in.Twitch)
	setStr("youtube", in.Youtube)
	setStr("instagram", in.Instagram)
	setStr("featured_media_id", in.FeaturedMediaID)

	updated, err := s.profiles.Update(ctx, p.ID, fields)
	if err != nil {
		return ProfileView{}, err
	}
	return NewProfileView(updated), nil
}

// Media lists the caller's gallery with optional type/status filters.
func (s *ProfileService) Media(ctx context.Context, userID string, f repository.MediaFilters) (MediaPage, error) {
	p, err := s.ownProfile(ctx, userID)
	if err != nil {
		return MediaPage{}, err
	}
	return s.pageMedia(ctx, p.ID, f)
}

// CreateMedia adds an item to the caller's gallery in pending status.
func (s *ProfileService) CreateMedia(ctx context.Context, userID string, in CreateMediaInput) (MediaView, error) {
	p, err := s.ownProfile(ctx, userID)
	if err != nil {
		return MediaView{}, err
	}
	source := in.Source
	if source == "" {
		source = model.MediaSourceUpload
	}
	m, err := s.media.Create(ctx, model.Media{
		ProfileID:   p.ID,
		Type:        in.Type,
		Source:      source,
		URL:         in.URL,
		PosterURL:   in.PosterURL,
		BlurDataURL: in.BlurDataURL,
		Width:       in.Width,
		Height:      in.Height,
		DurationSec: in.DurationSec,
		FocalPointX: in.FocalPointX,
		FocalPointY: in.FocalPointY,
		Title:       in.Title,
		TagsCache:   in.Tags,
	})
	if err != nil {
		return MediaView{}, err
	}
	return NewMediaView(m), nil
}

// UpdateMedia patches one of the caller's media items.
func (s *ProfileService) UpdateMedia(ctx context.Context, userID, mediaID string, in UpdateMediaInput) (MediaView, error) {
	p, err := s.ownProfile(ctx, userID)
	if err != nil {
		return MediaView{}, err
	}
	fields := map[string]any{}
	if in.Title != nil {
		fields["title"] = *in.Title
	}
	if in.FocalPointX != nil {
		fields["focal_point_x"] = *in.FocalPointX
	}
	if in.FocalPointY != nil {
		fields["focal_point_y"] = *in.FocalPointY
	}
	if in.Tags != nil {
		fields["tags_cache"] = in.Tags
	}
	m, err := s.media.Update(ctx, mediaID, p.ID, fields)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return MediaView{}, ErrNotFound
		}
		return MediaView{}, err
	}
	return NewMediaView(m), nil
}

// DeleteMedia soft-deletes one of the caller's media items.
func (s *ProfileService) DeleteMedia(ctx context.Context, userID, mediaID string) error {
	p, err := s.ownProfile(ctx, userID)
	if err != nil {
		return err
	}
	n, err := s.media.SoftDelete(ctx, mediaID, p.ID)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// PresignAvatar returns a time-limited PUT URL for a new avatar image.
func (s *ProfileService) PresignAvatar(ctx context.Context, userID, fileName, contentType string) (AvatarUpload, error) {
	if _, err := s.ownProfile(ctx, userID); err != nil {
		return AvatarUpload{}, err
	}
	if !allowedImageTypes[contentType] {
		return AvatarUpload{}, fmt.Errorf("%w: unsupported content type %q", ErrBadRequest, contentType)
	}
	key := ObjectKey("avatar", fileName)
	url, err := s.presigner.PresignPut(ctx, key, contentType, time.Hour)
	if err != nil {
		return AvatarUpload{}, err
	}
	return AvatarUpload{UploadURL: url, Key: key, PublicURL: s.presigner.PublicURL(key)}, nil
}

// ConfirmAvatar points the profile at the uploaded object.
func (s *ProfileService) ConfirmAvatar(ctx context.Context, userID, key string) (ProfileView, error) {
	p, err := s.ownProfile(ctx, userID)
	if err != nil {
		return ProfileView{}, err
	}
	updated, err := s.profiles.Update(ctx, p.ID, map[string]any{"avatar_url": s.presigner.PublicURL(key)})
	if err != nil {
		return ProfileView{}, err
	}
	return NewProfileView(updated), nil
}

func (s *ProfileService) ownProfile(ctx context.Context, userID string) (model.Profile, error) {
	p, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Profile{}, ErrNotFound
		}
		return model.Profile{}, err
	}
	return p, nil
}

func (s *ProfileService) pageMedia(ctx context.Context, profileID string, f repository.MediaFilters) (MediaPage, error) {
	limit := f.Limit
	if limit <= 0 || limit > utils.MaxPageLimit {
		limit = utils.DefaultPageLimit
	}
	f.Limit = limit + 1
	rows, err := s.media.ListByProfile(ctx, profileID, f)
	if err != nil {
		return MediaPage{}, err
	}
	hasNext := len(rows) > limit
	if hasNext {
		rows = rows[:limit]
	}
	items := make([]MediaView, 0, len(rows))
	for _, m := range rows {
		items = append(items, NewMediaView(m))
	}
	next := ""
	if hasNext && len(rows) > 0 {
		next = rows[len(rows)-1].ID
	}
	return MediaPage{
		Items: items,
		Meta:  utils.BuildPageMeta(len(items), limit, f.Cursor, next, hasNext),
	}, nil
}

// ObjectKey builds a collision-resistant storage key for an upload.
func ObjectKey(prefix, fileName string) string {
	return fmt.Sprintf("%s/%d-%06x-%s", prefix, time.Now().UnixMilli(), rand.Intn(1<<24), fileName)
}

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

var allowedVideoTypes = map[string]bool{
	"video/mp4":  true,
	"video/webm": true,
}
