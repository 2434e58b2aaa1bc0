package model

import "time"

// Report target types.
const (
	ReportTargetProfile = "profile"
	ReportTargetMedia   = "media"
	ReportTargetUser    = "user"
)

// Report is an abuse report filed against a profile, a media item or a
// user. ReporterUserID is nil for anonymous reports.
type Report struct {
	ID             string    // reports.id
	ReporterUserID *string   // reports.reporter_user_id (nullable)
	TargetType     string    // reports.target_type
	TargetID       string    // reports.target_id
	Reason         string    // reports.reason
	Details        *string   // reports.details
	Status         string    // reports.status (open, resolved, dismissed)
	Severity       string    // reports.severity
	CreatedAt      time.Time // reports.created_at
}
