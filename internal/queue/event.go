// Package queue defines message payloads exchanged over the message broker.
package queue

// Event types carried on the player.events queue.
const (
	EventContactCreated = "contact.created"
	EventReportCreated  = "report.created"
	EventMediaModerated = "media.moderated"
)

// QueueName is the durable queue every domain event is published to.
const QueueName = "player.events"

// Envelope wraps every published payload with its type so consumers can
// dispatch without sniffing bodies.
type Envelope struct {
	Type      string `json:"type"`
	EmittedAt string `json:"emitted_at"`
	Payload   any    `json:"payload"`
}

// ContactCreatedEvent is published when a visitor reaches out to a player.
// It carries enough for downstream consumers to notify or rate-limit
// without querying the primary database.
type ContactCreatedEvent struct {
	ContactID string `json:"contact_id"`
	PlayerID  string `json:"player_id"`
	Channel   string `json:"channel"`
	CreatedAt string `json:"created_at"`
}

// ReportCreatedEvent is published when an abuse report is filed.
type ReportCreatedEvent struct {
	ReportID   string `json:"report_id"`
	TargetType string `json:"target_type"`
	TargetID   string `json:"target_id"`
	Reason     string `json:"reason"`
	Severity   string `json:"severity"`
	CreatedAt  string `json:"created_at"`
}

// MediaModeratedEvent is published when the moderation pipeline settles a
// media item.
type MediaModeratedEvent struct {
	MediaID   string `json:"media_id"`
	ProfileID string `json:"profile_id"`
	Status    string `json:"status"`
}
