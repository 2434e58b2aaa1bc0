package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/playerbase/player-api/internal/model"
)

// ReportStore persists abuse reports and lets moderators review them.
type ReportStore interface {
	Create(ctx context.Context, rep model.Report) (model.Report, error)
	ListOpen(ctx context.Context, limit int) ([]model.Report, error)
	TargetExists(ctx context.Context, targetType, targetID string) (bool, error)
}

type ReportRepo struct{ DB *sql.DB }

func NewReportRepo(db *sql.DB) *ReportRepo { return &ReportRepo{DB: db} }

func (r *ReportRepo) Create(ctx context.Context, rep model.Report) (model.Report, error) {
	rep.ID = uuid.NewString()
	rep.CreatedAt = time.Now().UTC()
	if rep.Status == "" {
		rep.Status = "open"
	}
	if rep.Severity == "" {
		rep.Severity = "low"
	}
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO reports (id, reporter_user_id, target_type, target_id, reason, details, status, severity, created_at)
		 VALUES (?,?,?,?,?,?,?,?,?)`,
		rep.ID, rep.ReporterUserID, rep.TargetType, rep.TargetID, rep.Reason, rep.Details,
		rep.Status, rep.Severity, rep.CreatedAt)
	if err != nil {
		return model.Report{}, err
	}
	return rep, nil
}

// ListOpen returns the oldest open reports first so the moderation queue is
// drained in arrival order.
func (r *ReportRepo) ListOpen(ctx context.Context, limit int) ([]model.Report, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, reporter_user_id, target_type, target_id, reason, details, status, severity, created_at
		 FROM reports WHERE status='open' ORDER BY created_at ASC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Report
	for rows.Next() {
		var rep model.Report
		var reporter, details sql.NullString
		if err := rows.Scan(&rep.ID, &reporter, &rep.TargetType, &rep.TargetID, &rep.Reason,
			&details, &rep.Status, &rep.Severity, &rep.CreatedAt); err != nil {
			return nil, err
		}
		rep.ReporterUserID = nullStr(reporter)
		rep.Details = nullStr(details)
		out = append(out, rep)
	}
	return out, rows.Err()
}

// TargetExists checks that the reported entity is present before a report
// is accepted.
func (r *ReportRepo) TargetExists(ctx context.Context, targetType, targetID string) (bool, error) {
	var table string
	switch targetType {
	case model.ReportTargetMedia:
		table = "media"
	case model.ReportTargetProfile:
		table = "profiles"
	default:
		table = "users"
	}
	var one int
	err := r.DB.QueryRowContext(ctx,
		"SELECT 1 FROM "+table+" WHERE id=? LIMIT 1", targetID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
