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

// EventPublisher pushes domain events to the message broker. Implementations
// must tolerate broker outages; callers treat publish failures as non-fatal.
type EventPublisher interface {
	Publish(ctx context.Context, eventType string, payload any) error
}

// ContactInput carries POST /v1/contact. RequesterIP and UserAgent are
// filled by the handler from the request, not the body.
type ContactInput struct {
	Username    string  `json:"username"`
	Channel     string  `json:"channel"`
	Message     *string `json:"message,omitempty"`
	RequesterIP *string `json:"-"`
	UserAgent   *string `json:"-"`
}

var contactChannels = map[string]bool{
	"whatsapp": true, "email": true, "twitch": true,
	"youtube": true, "instagram": true,
}

// ContactView is the JSON shape of a recorded contact event.
type ContactView struct {
	ID        string `json:"id"`
	PlayerID  string `json:"player_id"`
	Channel   string `json:"channel"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
}

// ContactService records visitors reaching out to players.
type ContactService struct {
	contacts repository.ContactStore
	profiles repository.ProfileStore
	events   EventPublisher
	log      zerolog.Logger
}

func NewContactService(contacts repository.ContactStore, profiles repository.ProfileStore,
	events EventPublisher, log zerolog.Logger) *ContactService {
	return &ContactService{
		contacts: contacts,
		profiles: profiles,
		events:   events,
		log:      log.With().Str("component", "contact").Logger(),
	}
}

// Create records a contact event against an active player and publishes a
// contact.created event. Broker failures are logged, never surfaced.
func (s *ContactService) Create(ctx context.Context, in ContactInput) (ContactView, error) {
	if !contactChannels[in.Channel] {
		return ContactView{}, fmt.Errorf("%w: unknown channel %q", ErrBadRequest, in.Channel)
	}

	p, err := s.profiles.GetByUsername(ctx, in.Username)
	if err != nil {
		return ContactView{}, translateLookup(err)
	}
	if p.Status != model.UserStatusActive {
		return ContactView{}, ErrNotFound
	}

	ev, err := s.contacts.Create(ctx, model.ContactEvent{
		PlayerID:    p.ID,
		Channel:     in.Channel,
		Message:     in.Message,
		RequesterIP: in.RequesterIP,
		UserAgent:   in.UserAgent,
	})
	if err != nil {
		return ContactView{}, err
	}

	if s.events != nil {
		if err := s.events.Publish(ctx, queue.EventContactCreated, queue.ContactCreatedEvent{
			ContactID: ev.ID,
			PlayerID:  ev.PlayerID,
			Channel:   ev.Channel,
			CreatedAt: ev.CreatedAt.Format(time.RFC3339),
		}); err != nil {
			s.log.Warn().Err(err).Str("contact_id", ev.ID).Msg("publish contact.created")
		}
	}

	return ContactView{
		ID:        ev.ID,
		PlayerID:  ev.PlayerID,
		Channel:   ev.Channel,
		Status:    ev.Status,
		CreatedAt: ev.CreatedAt.Format(time.RFC3339),
	}, nil
}
