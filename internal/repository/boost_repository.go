package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/playerbase/player-api/internal/model"
)

// BoostStore persists paid boosts and links them to payment-provider ids.
type BoostStore interface {
	Create(ctx context.Context, b model.Boost) (model.Boost, error)
	SetExternalID(ctx context.Context, id, externalID string) error
	ListByPlayer(ctx context.Context, playerID string) ([]model.Boost, error)
	GetByExternalID(ctx context.Context, externalID string) (model.Boost, error)
	SetStatus(ctx context.Context, id, status string) error
}

type BoostRepo struct{ DB *sql.DB }

func NewBoostRepo(db *sql.DB) *BoostRepo { return &BoostRepo{DB: db} }

func (r *BoostRepo) Create(ctx context.Context, b model.Boost) (model.Boost, error) {
	b.ID = uuid.NewString()
	b.CreatedAt = time.Now().UTC()
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO boosts (id, player_id, status, starts_at, ends_at, provider, amount_cents, currency, created_at)
		 VALUES (?,?,?,?,?,?,?,?,?)`,
		b.ID, b.PlayerID, b.Status, b.StartsAt, b.EndsAt, b.Provider, b.AmountCents, b.Currency, b.CreatedAt)
	if err != nil {
		return model.Boost{}, err
	}
	return b, nil
}

func (r *BoostRepo) SetExternalID(ctx context.Context, id, externalID string) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE boosts SET external_id=? WHERE id=?", externalID, id)
	return err
}

func (r *BoostRepo) ListByPlayer(ctx context.Context, playerID string) ([]model.Boost, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, player_id, status, starts_at, ends_at, provider, external_id, amount_cents, currency, created_at
		 FROM boosts WHERE player_id=? AND deleted_at IS NULL ORDER BY created_at DESC`, playerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Boost
	for rows.Next() {
		b, err := scanBoost(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *BoostRepo) GetByExternalID(ctx context.Context, externalID string) (model.Boost, error) {
	return scanBoost(r.DB.QueryRowContext(ctx,
		`SELECT id, player_id, status, starts_at, ends_at, provider, external_id, amount_cents, currency, created_at
		 FROM boosts WHERE external_id=? AND deleted_at IS NULL LIMIT 1`, externalID))
}

func (r *BoostRepo) SetStatus(ctx context.Context, id, status string) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE boosts SET status=? WHERE id=?", status, id)
	return err
}

func scanBoost(row rowScanner) (model.Boost, error) {
	var b model.Boost
	var external sql.NullString
	err := row.Scan(&b.ID, &b.PlayerID, &b.Status, &b.StartsAt, &b.EndsAt, &b.Provider,
		&external, &b.AmountCents, &b.Currency, &b.CreatedAt)
	if err != nil {
		return model.Boost{}, err
	}
	b.ExternalID = nullStr(external)
	return b, nil
}
