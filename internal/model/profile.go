package model

import "time"

// Profile is the public face of a user, one-to-one with User via UserID.
// Optional columns are pointers so that unset values serialize as omitted
// fields, never as null.
type Profile struct {
	ID              string     // profiles.id
	UserID          string     // profiles.user_id
	Username        string     // profiles.username (unique)
	DisplayName     string     // profiles.display_name
	State           string     // profiles.state (two-letter code)
	City            string     // profiles.city
	CitySlug        *string    // profiles.city_slug
	Bio             *string    // profiles.bio
	AvatarURL       *string    // profiles.avatar_url
	ContactEmail    *string    // profiles.contact_email
	Whatsapp        *string    // profiles.whatsapp
	Twitch          *string    // profiles.twitch
	Youtube         *string    // profiles.youtube
	Instagram       *string    // profiles.instagram
	FeaturedMediaID *string    // profiles.featured_media_id
	Status          string     // profiles.status
	CreatedAt       time.Time  // profiles.created_at
	UpdatedAt       time.Time  // profiles.updated_at
	DeletedAt       *time.Time // profiles.deleted_at (nullable)
}
