package model

import "time"

// Boost status values. A boost is created scheduled and becomes active when
// the payment provider confirms the charge.
const (
	BoostStatusScheduled = "scheduled"
	BoostStatusActive    = "active"
	BoostStatusExpired   = "expired"
	BoostStatusCanceled  = "canceled"
)

// Boost is a paid visibility bump for a profile. ExternalID stores the
// payment provider's id for the charge and links webhook notifications
// back to the boost.
type Boost struct {
	ID          string     // boosts.id
	PlayerID    string     // boosts.player_id (profile id)
	Status      string     // boosts.status
	StartsAt    time.Time  // boosts.starts_at
	EndsAt      time.Time  // boosts.ends_at
	Provider    string     // boosts.provider
	ExternalID  *string    // boosts.external_id (payment id)
	AmountCents int        // boosts.amount_cents
	Currency    string     // boosts.currency
	CreatedAt   time.Time  // boosts.created_at
	DeletedAt   *time.Time // boosts.deleted_at (nullable)
}
