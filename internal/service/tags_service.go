package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"

	"github.com/rs/zerolog"

	"github.com/playerbase/player-api/internal/repository"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9-]+$`)

// TagView is the JSON shape of a tag with its usage count.
type TagView struct {
	ID           string `json:"id"`
	Slug         string `json:"slug"`
	Label        string `json:"label"`
	PlayersCount int    `json:"players_count"`
}

// TagsService serves the public tag directory.
type TagsService struct {
	tags    repository.TagStore
	players *PlayersService
	log     zerolog.Logger
}

func NewTagsService(tags repository.TagStore, players *PlayersService, log zerolog.Logger) *TagsService {
	return &TagsService{
		tags:    tags,
		players: players,
		log:     log.With().Str("component", "tags").Logger(),
	}
}

// List returns every active tag with its active-player count.
func (s *TagsService) List(ctx context.Context) ([]TagView, error) {
	rows, err := s.tags.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]TagView, 0, len(rows))
	for _, t := range rows {
		out = append(out, TagView{ID: t.ID, Slug: t.Slug, Label: t.Label, PlayersCount: t.PlayersCount})
	}
	return out, nil
}

// PlayersByTag lists active players carrying the tag. A malformed,
// unknown or retired slug all read as 404 so deactivation is not
// observable from outside.
func (s *TagsService) PlayersByTag(ctx context.Context, slug string, limit int, cursor string) (PlayersPage, error) {
	if err := ValidateSlug(slug); err != nil {
		return PlayersPage{}, ErrNotFound
	}
	tag, err := s.tags.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return PlayersPage{}, ErrNotFound
		}
		return PlayersPage{}, err
	}
	if !tag.Live() {
		return PlayersPage{}, ErrNotFound
	}
	return s.players.List(ctx, repository.ProfileSearchQuery{
		Tags:   []string{slug},
		Limit:  limit,
		Cursor: cursor,
	})
}

// ValidateSlug enforces the canonical slug shape: lowercase ascii letters,
// digits and hyphens, at most 255 bytes.
func ValidateSlug(slug string) error {
	if slug == "" || len(slug) > 255 || !slugPattern.MatchString(slug) {
		return fmt.Errorf("%w: invalid slug", ErrBadRequest)
	}
	return nil
}
