package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/playerbase/player-api/internal/model"
)

// ProfileSearchQuery defines filters & keyset pagination for browsing
// profiles. Limit is the page size; callers typically ask for limit+1 rows
// to detect a following page. Cursor is the id of the last row of the
// previous page.
type ProfileSearchQuery struct {
	Q      string
	State  string
	City   string
	Tags   []string
	Status string
	Limit  int
	Cursor string
}

// ProfileStore is the surface services need from the profiles table.
type ProfileStore interface {
	GetByUserID(ctx context.Context, userID string) (model.Profile, error)
	GetByUsername(ctx context.Context, username string) (model.Profile, error)
	GetByID(ctx context.Context, id string) (model.Profile, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	Update(ctx context.Context, id string, fields map[string]any) (model.Profile, error)
	Search(ctx context.Context, q ProfileSearchQuery) ([]model.Profile, error)
	DistinctStates(ctx context.Context) ([]string, error)
	CitiesByState(ctx context.Context, state string) ([]CityRow, error)
	TagSlugs(ctx context.Context, profileID string) ([]string, error)
}

// CityRow pairs a city name with its slug for location browsing.
type CityRow struct {
	Name string  `json:"name"`
	Slug *string `json:"slug,omitempty"`
}

type ProfileRepo struct{ DB *sql.DB }

func NewProfileRepo(db *sql.DB) *ProfileRepo { return &ProfileRepo{DB: db} }

const profileColumns = `id,user_id,username,display_name,state,city,city_slug,bio,avatar_url,
	contact_email,whatsapp,twitch,youtube,instagram,featured_media_id,status,created_at,updated_at`

func (r *ProfileRepo) GetByUserID(ctx context.Context, userID string) (model.Profile, error) {
	return scanProfile(r.DB.QueryRowContext(ctx,
		"SELECT "+profileColumns+" FROM profiles WHERE user_id=? AND deleted_at IS NULL LIMIT 1", userID))
}

func (r *ProfileRepo) GetByUsername(ctx context.Context, username string) (model.Profile, error) {
	return scanProfile(r.DB.QueryRowContext(ctx,
		"SELECT "+profileColumns+" FROM profiles WHERE username=? AND deleted_at IS NULL LIMIT 1", username))
}

func (r *ProfileRepo) GetByID(ctx context.Context, id string) (model.Profile, error) {
	return scanProfile(r.DB.QueryRowContext(ctx,
		"SELECT "+profileColumns+" FROM profiles WHERE id=? AND deleted_at IS NULL LIMIT 1", id))
}

// UsernameExists reports whether a live profile already owns the username.
func (r *ProfileRepo) UsernameExists(ctx context.Context, username string) (bool, error) {
	var one int
	err := r.DB.QueryRowContext(ctx,
		"SELECT 1 FROM profiles WHERE username=? AND deleted_at IS NULL LIMIT 1", username).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// updatableColumns whitelists the profile columns PATCH /v1/me may touch.
var updatableColumns = map[string]bool{
	"display_name": true, "bio": true, "avatar_url": true, "state": true,
	"city": true, "city_slug": true, "contact_email": true, "whatsapp": true,
	"twitch": true, "youtube": true, "instagram": true, "featured_media_id": true,
}

// Update applies the given column/value pairs and returns the fresh row.
// Unknown columns are ignored rather than interpolated.
func (r *ProfileRepo) Update(ctx context.Context, id string, fields map[string]any) (model.Profile, error) {
	sets := make([]string, 0, len(fields)+1)
	args := make([]any, 0, len(fields)+2)
	for col, v := range fields {
		if !updatableColumns[col] {
			continue
		}
		sets = append(sets, col+"=?")
		args = append(args, v)
	}
	if len(sets) > 0 {
		sets = append(sets, "updated_at=?")
		args = append(args, time.Now().UTC())
		args = append(args, id)
		_, err := r.DB.ExecContext(ctx,
			"UPDATE profiles SET "+strings.Join(sets, ", ")+" WHERE id=? AND deleted_at IS NULL", args...)
		if err != nil {
			return model.Profile{}, err
		}
	}
	return r.GetByID(ctx, id)
}

// Search runs the filtered browse query with keyset pagination ordered by
// created_at DESC, id DESC. Tag filters match any of the given slugs.
func (r *ProfileRepo) Search(ctx context.Context, q ProfileSearchQuery) ([]model.Profile, error) {
	where := []string{"p.deleted_at IS NULL"}
	args := []any{}

	if q.Status != "" {
		where = append(where, "p.status=?")
		args = append(args, q.Status)
	}
	if q.Q != "" {
		where = append(where, "(LOWER(p.username) LIKE ? OR LOWER(p.display_name) LIKE ?)")
		like := "%" + strings.ToLower(q.Q) + "%"
		args = append(args, like, like)
	}
	if q.State != "" {
		where = append(where, "p.state=?")
		args = append(args, q.State)
	}
	if q.City != "" {
		where = append(where, "LOWER(p.city) LIKE ?")
		args = append(args, "%"+strings.ToLower(q.City)+"%")
	}
	if len(q.Tags) > 0 {
		placeholders := strings.TrimSuffix(strings.Repeat("?,", len(q.Tags)), ",")
		where = append(where, `EXISTS (
			SELECT 1 FROM player_tags pt
			JOIN tags t ON t.id = pt.tag_id
			WHERE pt.profile_id = p.id AND pt.deleted_at IS NULL AND pt.status='active'
			  AND t.slug IN (`+placeholders+`))`)
		for _, s := range q.Tags {
			args = append(args, s)
		}
	}
	if q.Cursor != "" {
		// Keyset: everything strictly after the cursor row in the sort order.
		where = append(where, `(p.created_at, p.id) < (SELECT created_at, id FROM profiles WHERE id=?)`)
		args = append(args, q.Cursor)
	}

	limit := q.Limit
	if limit <= 0 {
		limit = 21
	}
	args = append(args, limit)

	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+profileColumns+
			" FROM profiles p WHERE "+strings.Join(where, " AND ")+
			" ORDER BY p.created_at DESC, p.id DESC LIMIT ?", args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Profile
	for rows.Next() {
		p, err := scanProfileRows(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// DistinctStates lists every state that has at least one active profile.
func (r *ProfileRepo) DistinctStates(ctx context.Context) ([]string, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT DISTINCT state FROM profiles WHERE status='active' AND deleted_at IS NULL ORDER BY state ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// CitiesByState lists the distinct cities of a state with their slugs.
func (r *ProfileRepo) CitiesByState(ctx context.Context, state string) ([]CityRow, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT DISTINCT city, city_slug FROM profiles
		 WHERE state=? AND status='active' AND deleted_at IS NULL ORDER BY city ASC`, state)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []CityRow
	for rows.Next() {
		var c CityRow
		var slug sql.NullString
		if err := rows.Scan(&c.Name, &slug); err != nil {
			return nil, err
		}
		if slug.Valid {
			c.Slug = &slug.String
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// TagSlugs returns the active tag slugs attached to a profile.
func (r *ProfileRepo) TagSlugs(ctx context.Context, profileID string) ([]string, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT t.slug FROM player_tags pt
		 JOIN tags t ON t.id = pt.tag_id
		 WHERE pt.profile_id=? AND pt.status='active' AND pt.deleted_at IS NULL
		 ORDER BY t.slug ASC`, profileID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

type rowScanner interface{ Scan(dest ...any) error }

func scanProfile(row *sql.Row) (model.Profile, error) { return scanProfileRows(row) }

func scanProfileRows(row rowScanner) (model.Profile, error) {
	var p model.Profile
	var citySlug, bio, avatar, contactEmail, whatsapp, twitch, youtube, instagram, featured sql.NullString
	err := row.Scan(&p.ID, &p.UserID, &p.Username, &p.DisplayName, &p.State, &p.City,
		&citySlug, &bio, &avatar, &contactEmail, &whatsapp, &twitch, &youtube,
		&instagram, &featured, &p.Status, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return model.Profile{}, err
	}
	p.CitySlug = nullStr(citySlug)
	p.Bio = nullStr(bio)
	p.AvatarURL = nullStr(avatar)
	p.ContactEmail = nullStr(contactEmail)
	p.Whatsapp = nullStr(whatsapp)
	p.Twitch = nullStr(twitch)
	p.Youtube = nullStr(youtube)
	p.Instagram = nullStr(instagram)
	p.FeaturedMediaID = nullStr(featured)
	return p, nil
}

func nullStr(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}
