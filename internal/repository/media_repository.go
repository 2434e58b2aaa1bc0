package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/playerbase/player-api/internal/model"
)

// MediaFilters narrows media listings. Zero values mean "no filter".
type MediaFilters struct {
	Type   string
	Status string
	Limit  int
	Cursor string
}

// ModerationResult is what the upload pipeline reports back for one item.
type ModerationResult struct {
	Status      string
	Width       *int
	Height      *int
	DurationSec *int
	NSFWScore   *float64
}

// MediaStore is the surface services need from the media table. Deletes are
// soft; ownership is enforced by requiring the profile id on every mutation.
type MediaStore interface {
	Create(ctx context.Context, m model.Media) (model.Media, error)
	GetByID(ctx context.Context, id string) (model.Media, error)
	ListByProfile(ctx context.Context, profileID string, f MediaFilters) ([]model.Media, error)
	Update(ctx context.Context, id, profileID string, fields map[string]any) (model.Media, error)
	SoftDelete(ctx context.Context, id, profileID string) (int64, error)
	ApplyModeration(ctx context.Context, id string, res ModerationResult) (model.Media, error)
}

type MediaRepo struct{ DB *sql.DB }

func NewMediaRepo(db *sql.DB) *MediaRepo { return &MediaRepo{DB: db} }

const mediaColumns = `id,profile_id,type,source,url,poster_url,blur_data_url,width,height,
	duration_sec,focal_point_x,focal_point_y,title,tags_cache,nsfw_score,status,created_at,updated_at`

// Create inserts a media row in pending status unless one was set.
func (r *MediaRepo) Create(ctx context.Context, m model.Media) (model.Media, error) {
	now := time.Now().UTC()
	m.ID = uuid.NewString()
	m.CreatedAt = now
	m.UpdatedAt = now
	if m.Status == "" {
		m.Status = model.MediaStatusPending
	}
	tags, err := json.Marshal(m.TagsCache)
	if err != nil {
		return model.Media{}, err
	}
	_, err = r.DB.ExecContext(ctx,
		`INSERT INTO media (id, profile_id, type, source, url, poster_url, blur_data_url, width, height,
		   duration_sec, focal_point_x, focal_point_y, title, tags_cache, status, created_at, updated_at)
		 VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		m.ID, m.ProfileID, m.Type, m.Source, m.URL, m.PosterURL, m.BlurDataURL, m.Width, m.Height,
		m.DurationSec, m.FocalPointX, m.FocalPointY, m.Title, tags, m.Status, m.CreatedAt, m.UpdatedAt)
	if err != nil {
		return model.Media{}, err
	}
	return m, nil
}

func (r *MediaRepo) GetByID(ctx context.Context, id string) (model.Media, error) {
	return scanMedia(r.DB.QueryRowContext(ctx,
		"SELECT "+mediaColumns+" FROM media WHERE id=? AND deleted_at IS NULL LIMIT 1", id))
}

// ListByProfile pages through a profile's media, newest first.
func (r *MediaRepo) ListByProfile(ctx context.Context, profileID string, f MediaFilters) ([]model.Media, error) {
	where := []string{"profile_id=?", "deleted_at IS NULL"}
	args := []any{profileID}
	if f.Type != "" {
		where = append(where, "type=?")
		args = append(args, f.Type)
	}
	if f.Status != "" {
		where = append(where, "status=?")
		args = append(args, f.Status)
	}
	if f.Cursor != "" {
		where = append(where, "(created_at, id) < (SELECT created_at, id FROM media WHERE id=?)")
		args = append(args, f.Cursor)
	}
	limit := f.Limit
	if limit <= 0 {
		limit = 21
	}
	args = append(args, limit)

	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+mediaColumns+" FROM media WHERE "+strings.Join(where, " AND ")+
			" ORDER BY created_at DESC, id DESC LIMIT ?", args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Media
	for rows.Next() {
		m, err := scanMedia(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// mediaUpdatable whitelists the columns PATCH may touch.
var mediaUpdatable = map[string]bool{
	"title": true, "focal_point_x": true, "focal_point_y": true, "tags_cache": true,
}

// Update patches a media row owned by profileID. sql.ErrNoRows when the row
// does not exist or belongs to someone else.
func (r *MediaRepo) Update(ctx context.Context, id, profileID string, fields map[string]any) (model.Media, error) {
	sets := make([]string, 0, len(fields)+1)
	args := make([]any, 0, len(fields)+3)
	for col, v := range fields {
		if !mediaUpdatable[col] {
			continue
		}
		if col == "tags_cache" {
			b, err := json.Marshal(v)
			if err != nil {
				return model.Media{}, err
			}
			v = b
		}
		sets = append(sets, col+"=?")
		args = append(args, v)
	}
	if len(sets) == 0 {
		return r.ownedByID(ctx, id, profileID)
	}
	sets = append(sets, "updated_at=?")
	args = append(args, time.Now().UTC(), id, profileID)
	res, err := r.DB.ExecContext(ctx,
		"UPDATE media SET "+strings.Join(sets, ", ")+" WHERE id=? AND profile_id=? AND deleted_at IS NULL",
		args...)
	if err != nil {
		return model.Media{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return model.Media{}, sql.ErrNoRows
	}
	return r.GetByID(ctx, id)
}

// SoftDelete stamps deleted_at, returning the number of rows touched.
func (r *MediaRepo) SoftDelete(ctx context.Context, id, profileID string) (int64, error) {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE media SET deleted_at=? WHERE id=? AND profile_id=? AND deleted_at IS NULL",
		time.Now().UTC(), id, profileID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// ApplyModeration records the moderation verdict and extracted metadata.
func (r *MediaRepo) ApplyModeration(ctx context.Context, id string, res ModerationResult) (model.Media, error) {
	_, err := r.DB.ExecContext(ctx,
		`UPDATE media SET status=?, width=COALESCE(?, width), height=COALESCE(?, height),
		   duration_sec=COALESCE(?, duration_sec), nsfw_score=COALESCE(?, nsfw_score), updated_at=?
		 WHERE id=? AND deleted_at IS NULL`,
		res.Status, res.Width, res.Height, res.DurationSec, res.NSFWScore, time.Now().UTC(), id)
	if err != nil {
		return model.Media{}, err
	}
	return r.GetByID(ctx, id)
}

func (r *MediaRepo) ownedByID(ctx context.Context, id, profileID string) (model.Media, error) {
	m, err := r.GetByID(ctx, id)
	if err != nil {
		return model.Media{}, err
	}
	if m.ProfileID != profileID {
		return model.Media{}, sql.ErrNoRows
	}
	return m, nil
}

func scanMedia(row rowScanner) (model.Media, error) {
	var m model.Media
	var poster, blur, title sql.NullString
	var width, height, duration sql.NullInt64
	var fx, fy, nsfw sql.NullFloat64
	var tags []byte
	err := row.Scan(&m.ID, &m.ProfileID, &m.Type, &m.Source, &m.URL, &poster, &blur,
		&width, &height, &duration, &fx, &fy, &title, &tags, &nsfw,
		&m.Status, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return model.Media{}, err
	}
	m.PosterURL = nullStr(poster)
	m.BlurDataURL = nullStr(blur)
	m.Title = nullStr(title)
	m.Width = nullInt(width)
	m.Height = nullInt(height)
	m.DurationSec = nullInt(duration)
	m.FocalPointX = nullFloat(fx)
	m.FocalPointY = nullFloat(fy)
	m.NSFWScore = nullFloat(nsfw)
	if len(tags) > 0 {
		_ = json.Unmarshal(tags, &m.TagsCache)
	}
	return m, nil
}

func nullInt(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int64)
	return &n
}

func nullFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
