package model

import "time"

// ContactEvent records a visitor reaching out to a player through one of
// the profile's contact channels. RequesterIP and UserAgent come from the
// HTTP request and may be absent.
type ContactEvent struct {
	ID          string    // contact_events.id
	PlayerID    string    // contact_events.player_id (profile id)
	Channel     string    // contact_events.channel (whatsapp, email, ...)
	RequesterIP *string   // contact_events.requester_ip
	UserAgent   *string   // contact_events.user_agent
	Message     *string   // contact_events.message
	Status      string    // contact_events.status
	CreatedAt   time.Time // contact_events.created_at
}
