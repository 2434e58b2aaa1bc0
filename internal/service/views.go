package service

import (
	"time"

	"github.com/playerbase/player-api/internal/model"
)

// TokenPair is what clients receive after signup, login and refresh.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
}

// ProfileView is the JSON shape of a profile. Optional fields are pointers
// with omitempty so absent values are omitted rather than null.
type ProfileView struct {
	ID              string   `json:"id"`
	Username        string   `json:"username"`
	DisplayName     string   `json:"display_name"`
	State           string   `json:"state"`
	City            string   `json:"city"`
	CitySlug        *string  `json:"city_slug,omitempty"`
	Bio             *string  `json:"bio,omitempty"`
	AvatarURL       *string  `json:"avatar_url,omitempty"`
	ContactEmail    *string  `json:"contact_email,omitempty"`
	Whatsapp        *string  `json:"whatsapp,omitempty"`
	Twitch          *string  `json:"twitch,omitempty"`
	Youtube         *string  `json:"youtube,omitempty"`
	Instagram       *string  `json:"instagram,omitempty"`
	FeaturedMediaID *string  `json:"featured_media_id,omitempty"`
	Tags            []string `json:"tags,omitempty"`
	Status          string   `json:"status"`
	CreatedAt       string   `json:"created_at"`
	UpdatedAt       string   `json:"updated_at"`
}

// UserView is the JSON shape of a user, optionally with its profile.
type UserView struct {
	ID      string       `json:"id"`
	Email   string       `json:"email"`
	Role    string       `json:"role"`
	Status  string       `json:"status"`
	Profile *ProfileView `json:"profile,omitempty"`
}

// AuthResult is returned by signup, login and refresh.
type AuthResult struct {
	User   UserView  `json:"user"`
	Tokens TokenPair `json:"tokens"`
}

// MediaView is the JSON shape of a media item.
type MediaView struct {
	ID          string   `json:"id"`
	Type        string   `json:"type"`
	Source      string   `json:"source"`
	URL         string   `json:"url"`
	PosterURL   *string  `json:"poster_url,omitempty"`
	BlurDataURL *string  `json:"blur_data_url,omitempty"`
	Width       *int     `json:"width,omitempty"`
	Height      *int     `json:"height,omitempty"`
	DurationSec *int     `json:"duration_sec,omitempty"`
	FocalPointX *float64 `json:"focal_point_x,omitempty"`
	FocalPointY *float64 `json:"focal_point_y,omitempty"`
	Title       *string  `json:"title,omitempty"`
	Tags        []string `json:"tags"`
	Status      string   `json:"status"`
	CreatedAt   string   `json:"created_at"`
	UpdatedAt   string   `json:"updated_at"`
}

// NewProfileView converts a model row into its response shape.
func NewProfileView(p model.Profile) ProfileView {
	return ProfileView{
		ID:              p.ID,
		Username:        p.Username,
		DisplayName:     p.DisplayName,
		State:           p.State,
		City:            p.City,
		CitySlug:        p.CitySlug,
		Bio:             p.Bio,
		AvatarURL:       p.AvatarURL,
		ContactEmail:    p.ContactEmail,
		Whatsapp:        p.Whatsapp,
		Twitch:          p.Twitch,
		Youtube:         p.Youtube,
		Instagram:       p.Instagram,
		FeaturedMediaID: p.FeaturedMediaID,
		Status:          p.Status,
		CreatedAt:       p.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:       p.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

// NewUserView converts a user plus optional profile into its response shape.
func NewUserView(u model.User, p *model.Profile) UserView {
	v := UserView{ID: u.ID, Email: u.Email, Role: u.Role, Status: u.Status}
	if p != nil {
		pv := NewProfileView(*p)
		v.Profile = &pv
	}
	return v
}

// NewMediaView converts a media row into its response shape.
func NewMediaView(m model.Media) MediaView {
	tags := m.TagsCache
	if tags == nil {
		tags = []string{}
	}
	return MediaView{
		ID:          m.ID,
		Type:        m.Type,
		Source:      m.Source,
		URL:         m.URL,
		PosterURL:   m.PosterURL,
		BlurDataURL: m.BlurDataURL,
		Width:       m.Width,
		Height:      m.Height,
		DurationSec: m.DurationSec,
		FocalPointX: m.FocalPointX,
		FocalPointY: m.FocalPointY,
		Title:       m.Title,
		Tags:        tags,
		Status:      m.Status,
		CreatedAt:   m.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:   m.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
