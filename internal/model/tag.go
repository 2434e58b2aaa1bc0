package model

import "time"

// Tag is a curated label players attach to their profiles. Aliases is a
// JSON array of alternative spellings used by search.
type Tag struct {
	ID        string     // tags.id
	Slug      string     // tags.slug (unique)
	Label     string     // tags.label
	Aliases   []string   // tags.aliases (JSON)
	Status    string     // tags.status
	CreatedAt time.Time  // tags.created_at
	DeletedAt *time.Time // tags.deleted_at (nullable)
}

// TagStatusActive marks a tag as publicly browsable.
const TagStatusActive = "active"

// Live reports whether the tag is still served on public surfaces. A
// deactivated or soft-deleted tag reads as missing.
func (t Tag) Live() bool {
	return t.Status == TagStatusActive && t.DeletedAt == nil
}

// TagWithCount pairs a tag with the number of active players carrying it.
type TagWithCount struct {
	Tag
	PlayersCount int
}

// PlayerTag joins a profile to a tag.
type PlayerTag struct {
	ProfileID string     // player_tags.profile_id
	TagID     string     // player_tags.tag_id
	Status    string     // player_tags.status
	CreatedAt time.Time  // player_tags.created_at
	DeletedAt *time.Time // player_tags.deleted_at (nullable)
}
