package repository

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/playerbase/player-api/internal/model"
)

// TagStore exposes curated tag lookups for the public browse endpoints.
type TagStore interface {
	ListActive(ctx context.Context) ([]model.TagWithCount, error)
	GetBySlug(ctx context.Context, slug string) (model.Tag, error)
}

type TagRepo struct{ DB *sql.DB }

func NewTagRepo(db *sql.DB) *TagRepo { return &TagRepo{DB: db} }

// ListActive returns all live tags ordered by label, each with the number
// of active players carrying it.
func (r *TagRepo) ListActive(ctx context.Context) ([]model.TagWithCount, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT t.id, t.slug, t.label, t.aliases, t.status,
		   (SELECT COUNT(*) FROM player_tags pt
		      JOIN profiles p ON p.id = pt.profile_id
		    WHERE pt.tag_id = t.id AND pt.status='active' AND pt.deleted_at IS NULL
		      AND p.status='active' AND p.deleted_at IS NULL) AS players_count
		 FROM tags t
		 WHERE t.status='active' AND t.deleted_at IS NULL
		 ORDER BY t.label ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.TagWithCount
	for rows.Next() {
		var t model.TagWithCount
		var aliases []byte
		if err := rows.Scan(&t.ID, &t.Slug, &t.Label, &aliases, &t.Status, &t.PlayersCount); err != nil {
			return nil, err
		}
		if len(aliases) > 0 {
			_ = json.Unmarshal(aliases, &t.Aliases)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// GetBySlug fetches a tag regardless of status; callers decide whether an
// inactive tag counts as missing.
func (r *TagRepo) GetBySlug(ctx context.Context, slug string) (model.Tag, error) {
	var t model.Tag
	var aliases []byte
	var deleted sql.NullTime
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, slug, label, aliases, status, deleted_at FROM tags WHERE slug=? LIMIT 1",
		slug).Scan(&t.ID, &t.Slug, &t.Label, &aliases, &t.Status, &deleted)
	if err != nil {
		return model.Tag{}, err
	}
	if len(aliases) > 0 {
		_ = json.Unmarshal(aliases, &t.Aliases)
	}
	if deleted.Valid {
		d := deleted.Time
		t.DeletedAt = &d
	}
	return t, nil
}
