package model

import "time"

// Media type and source values.
const (
	MediaTypeImage = "image"
	MediaTypeVideo = "video"

	MediaSourceUpload   = "upload"
	MediaSourceExternal = "external"
)

// Media moderation status values. Uploads start pending and move to
// approved or rejected via the moderation callback.
const (
	MediaStatusPending  = "pending"
	MediaStatusApproved = "approved"
	MediaStatusRejected = "rejected"
)

// Media represents an item in a player's gallery. TagsCache holds a
// denormalized copy of the tag slugs as a JSON array column.
type Media struct {
	ID          string     // media.id
	ProfileID   string     // media.profile_id
	Type        string     // media.type
	Source      string     // media.source
	URL         string     // media.url
	PosterURL   *string    // media.poster_url (videos)
	BlurDataURL *string    // media.blur_data_url (images)
	Width       *int       // media.width
	Height      *int       // media.height
	DurationSec *int       // media.duration_sec (videos)
	FocalPointX *float64   // media.focal_point_x (0-100)
	FocalPointY *float64   // media.focal_point_y (0-100)
	Title       *string    // media.title
	TagsCache   []string   // media.tags_cache (JSON)
	NSFWScore   *float64   // media.nsfw_score
	Status      string     // media.status
	CreatedAt   time.Time  // media.created_at
	UpdatedAt   time.Time  // media.updated_at
	DeletedAt   *time.Time // media.deleted_at (nullable)
}
