package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/playerbase/player-api/internal/model"
)

// ContactStore persists contact events fired from public profiles.
type ContactStore interface {
	Create(ctx context.Context, ev model.ContactEvent) (model.ContactEvent, error)
}

type ContactRepo struct{ DB *sql.DB }

func NewContactRepo(db *sql.DB) *ContactRepo { return &ContactRepo{DB: db} }

func (r *ContactRepo) Create(ctx context.Context, ev model.ContactEvent) (model.ContactEvent, error) {
	ev.ID = uuid.NewString()
	ev.CreatedAt = time.Now().UTC()
	if ev.Status == "" {
		ev.Status = "active"
	}
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO contact_events (id, player_id, channel, requester_ip, user_agent, message, status, created_at)
		 VALUES (?,?,?,?,?,?,?,?)`,
		ev.ID, ev.PlayerID, ev.Channel, ev.RequesterIP, ev.UserAgent, ev.Message, ev.Status, ev.CreatedAt)
	if err != nil {
		return model.ContactEvent{}, err
	}
	return ev, nil
}
