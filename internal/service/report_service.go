package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/playerbase/player-api/internal/model"
	"github.com/playerbase/player-api/internal/queue"
	"github.com/playerbase/player-api/internal/repository"
)

// ReportInput carries POST /v1/reports. ReporterUserID is filled from the
// session when the caller is authenticated and stays nil otherwise.
type ReportInput struct {
	TargetType     string  `json:"target_type"`
	TargetID       string  `json:"target_id"`
	Reason         string  `json:"reason"`
	Details        *string `json:"details,omitempty"`
	ReporterUserID *string `json:"-"`
}

// ReportView is the JSON shape of a report.
type ReportView struct {
	ID         string  `json:"id"`
	TargetType string  `json:"target_type"`
	TargetID   string  `json:"target_id"`
	Reason     string  `json:"reason"`
	Details    *string `json:"details,omitempty"`
	Status     string  `json:"status"`
	Severity   string  `json:"severity"`
	CreatedAt  string  `json:"created_at"`
}

var reportTargets = map[string]bool{
	model.ReportTargetProfile: true,
	model.ReportTargetMedia:   true,
	model.ReportTargetUser:    true,
}

// ReportService accepts abuse reports and feeds the moderation queue.
type ReportService struct {
	reports repository.ReportStore
	events  EventPublisher
	log     zerolog.Logger
}

func NewReportService(reports repository.ReportStore, events EventPublisher, log zerolog.Logger) *ReportService {
	return &ReportService{
		reports: reports,
		events:  events,
		log:     log.With().Str("component", "reports").Logger(),
	}
}

// Create files a report against an existing target and publishes a
// report.created event.
func (s *ReportService) Create(ctx context.Context, in ReportInput) (ReportView, error) {
	if !reportTargets[in.TargetType] {
		return ReportView{}, fmt.Errorf("%w: unknown target type %q", ErrBadRequest, in.TargetType)
	}
	if in.Reason == "" {
		return ReportView{}, fmt.Errorf("%w: reason is required", ErrBadRequest)
	}

	ok, err := s.reports.TargetExists(ctx, in.TargetType, in.TargetID)
	if err != nil {
		return ReportView{}, err
	}
	if !ok {
		return ReportView{}, ErrNotFound
	}

	rep, err := s.reports.Create(ctx, model.Report{
		ReporterUserID: in.ReporterUserID,
		TargetType:     in.TargetType,
		TargetID:       in.TargetID,
		Reason:         in.Reason,
		Details:        in.Details,
	})
	if err != nil {
		return ReportView{}, err
	}

	if s.events != nil {
		if err := s.events.Publish(ctx, queue.EventReportCreated, queue.ReportCreatedEvent{
			ReportID:   rep.ID,
			TargetType: rep.TargetType,
			TargetID:   rep.TargetID,
			Reason:     rep.Reason,
			Severity:   rep.Severity,
			CreatedAt:  rep.CreatedAt.Format(time.RFC3339),
		}); err != nil {
			s.log.Warn().Err(err).Str("report_id", rep.ID).Msg("publish report.created")
		}
	}

	return newReportView(rep), nil
}

// ListOpen returns the moderation queue, oldest first. Handlers gate this
// behind the moderator and admin roles.
func (s *ReportService) ListOpen(ctx context.Context, limit int) ([]ReportView, error) {
	rows, err := s.reports.ListOpen(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := make([]ReportView, 0, len(rows))
	for _, rep := range rows {
		out = append(out, newReportView(rep))
	}
	return out, nil
}

func newReportView(rep model.Report) ReportView {
	return ReportView{
		ID:         rep.ID,
		TargetType: rep.TargetType,
		TargetID:   rep.TargetID,
		Reason:     rep.Reason,
		Details:    rep.Details,
		Status:     rep.Status,
		Severity:   rep.Severity,
		CreatedAt:  rep.CreatedAt.Format(time.RFC3339),
	}
}
