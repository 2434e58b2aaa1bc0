package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/playerbase/player-api/internal/model"
)

// UserStore is the surface the services need from the users table.
// Not-found lookups return sql.ErrNoRows.
type UserStore interface {
	CreateWithProfile(ctx context.Context, user model.User, profile model.Profile) (model.User, model.Profile, error)
	GetByEmail(ctx context.Context, email string) (model.User, error)
	GetByID(ctx context.Context, id string) (model.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
}

type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

const userColumns = "id,email,password_hash,role,status,created_at,updated_at,deleted_at"

// CreateWithProfile inserts the user and its profile in one transaction so
// signup either creates both rows or neither. Duplicate keys surface as
// ErrEmailExists / ErrUsernameExists.
func (r *UserRepo) CreateWithProfile(ctx context.Context, user model.User, profile model.Profile) (model.User, model.Profile, error) {
	now := time.Now().UTC()
	user.ID = uuid.NewString()
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	user.CreatedAt = now
	user.UpdatedAt = now
	profile.ID = uuid.NewString()
	profile.UserID = user.ID
	profile.CreatedAt = now
	profile.UpdatedAt = now

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return model.User{}, model.Profile{}, err
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO users (id, email, password_hash, role, status, created_at, updated_at) VALUES (?,?,?,?,?,?,?)",
		user.ID, user.Email, user.PasswordHash, user.Role, user.Status, user.CreatedAt, user.UpdatedAt)
	if err != nil {
		if isDuplicate(err) {
			return model.User{}, model.Profile{}, ErrEmailExists
		}
		return model.User{}, model.Profile{}, err
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO profiles (id, user_id, username, display_name, state, city, city_slug, status, created_at, updated_at)
		 VALUES (?,?,?,?,?,?,?,?,?,?)`,
		profile.ID, profile.UserID, profile.Username, profile.DisplayName,
		profile.State, profile.City, profile.CitySlug, profile.Status,
		profile.CreatedAt, profile.UpdatedAt)
	if err != nil {
		if isDuplicate(err) {
			return model.User{}, model.Profile{}, ErrUsernameExists
		}
		return model.User{}, model.Profile{}, err
	}

	if err := tx.Commit(); err != nil {
		return model.User{}, model.Profile{}, err
	}
	return user, profile, nil
}

// GetByEmail fetches a user by normalized email, skipping soft-deleted rows.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	return r.scanOne(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE email=? AND deleted_at IS NULL LIMIT 1", email))
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id string) (model.User, error) {
	return r.scanOne(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id=? AND deleted_at IS NULL LIMIT 1", id))
}

// EmailExists reports whether a live user already owns the email.
func (r *UserRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var one int
	err := r.DB.QueryRowContext(ctx,
		"SELECT 1 FROM users WHERE email=? AND deleted_at IS NULL LIMIT 1", email).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *UserRepo) scanOne(row *sql.Row) (model.User, error) {
	var u model.User
	var deleted sql.NullTime
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.Status, &u.CreatedAt, &u.UpdatedAt, &deleted)
	if err != nil {
		return model.User{}, err
	}
	if deleted.Valid {
		t := deleted.Time
		u.DeletedAt = &t
	}
	return u, nil
}
