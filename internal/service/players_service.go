package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/rs/zerolog"

	"github.com/playerbase/player-api/internal/model"
	"github.com/playerbase/player-api/internal/repository"
	"github.com/playerbase/player-api/internal/utils"
)

// PlayersPage is one page of public profile listings.
type PlayersPage struct {
	Items []ProfileView  `json:"data"`
	Meta  utils.PageMeta `json:"meta"`
}

// PlayersService serves the public browsing surface: directory search,
// trending, and per-player public pages.
type PlayersService struct {
	profiles repository.ProfileStore
	media    repository.MediaStore
	log      zerolog.Logger
}

func NewPlayersService(profiles repository.ProfileStore, media repository.MediaStore, log zerolog.Logger) *PlayersService {
	return &PlayersService{
		profiles: profiles,
		media:    media,
		log:      log.With().Str("component", "players").Logger(),
	}
}

// List searches active profiles by free text, location and tags.
func (s *PlayersService) List(ctx context.Context, q repository.ProfileSearchQuery) (PlayersPage, error) {
	q.Status = model.UserStatusActive
	limit := q.Limit
	if limit <= 0 || limit > utils.MaxPageLimit {
		limit = utils.DefaultPageLimit
	}
	q.Limit = limit + 1
	rows, err := s.profiles.Search(ctx, q)
	if err != nil {
		return PlayersPage{}, err
	}
	return s.page(ctx, rows, limit, q.Cursor)
}

// Trending returns the newest active profiles, first page of the directory
// ordering.
func (s *PlayersService) Trending(ctx context.Context, limit int) (PlayersPage, error) {
	return s.List(ctx, repository.ProfileSearchQuery{Limit: limit})
}

// ByUsername returns one public profile. Suspended owners read as absent.
func (s *PlayersService) ByUsername(ctx context.Context, username string) (ProfileView, error) {
	p, err := s.publicProfile(ctx, username)
	if err != nil {
		return ProfileView{}, err
	}
	return s.withTags(ctx, NewProfileView(p)), nil
}

// MediaByUsername returns one player's approved gallery.
func (s *PlayersService) MediaByUsername(ctx context.Context, username string, f repository.MediaFilters) (MediaPage, error) {
	p, err := s.publicProfile(ctx, username)
	if err != nil {
		return MediaPage{}, err
	}
	f.Status = model.MediaStatusApproved
	limit := f.Limit
	if limit <= 0 || limit > utils.MaxPageLimit {
		limit = utils.DefaultPageLimit
	}
	f.Limit = limit + 1
	rows, err := s.media.ListByProfile(ctx, p.ID, f)
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

func (s *PlayersService) publicProfile(ctx context.Context, username string) (model.Profile, error) {
	p, err := s.profiles.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Profile{}, ErrNotFound
		}
		return model.Profile{}, err
	}
	if p.Status != model.UserStatusActive {
		return model.Profile{}, ErrNotFound
	}
	return p, nil
}

func (s *PlayersService) page(ctx context.Context, rows []model.Profile, limit int, cursor string) (PlayersPage, error) {
	hasNext := len(rows) > limit
	if hasNext {
		rows = rows[:limit]
	}
	items := make([]ProfileView, 0, len(rows))
	for _, p := range rows {
		items = append(items, s.withTags(ctx, NewProfileView(p)))
	}
	next := ""
	if hasNext && len(rows) > 0 {
		next = rows[len(rows)-1].ID
	}
	return PlayersPage{
		Items: items,
		Meta:  utils.BuildPageMeta(len(items), limit, cursor, next, hasNext),
	}, nil
}

func (s *PlayersService) withTags(ctx context.Context, v ProfileView) ProfileView {
	slugs, err := s.profiles.TagSlugs(ctx, v.ID)
	if err != nil {
		s.log.Warn().Err(err).Str("profile_id", v.ID).Msg("load profile tags")
		return v
	}
	v.Tags = slugs
	return v
}
