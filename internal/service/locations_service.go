package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/playerbase/player-api/internal/repository"
)

// LocationsService serves the public location drill-down: states, their
// cities, and the players in a given place.
type LocationsService struct {
	profiles repository.ProfileStore
	players  *PlayersService
	log      zerolog.Logger
}

func NewLocationsService(profiles repository.ProfileStore, players *PlayersService, log zerolog.Logger) *LocationsService {
	return &LocationsService{
		profiles: profiles,
		players:  players,
		log:      log.With().Str("component", "locations").Logger(),
	}
}

// States lists every state with at least one active player.
func (s *LocationsService) States(ctx context.Context) ([]string, error) {
	states, err := s.profiles.DistinctStates(ctx)
	if err != nil {
		return nil, err
	}
	if states == nil {
		states = []string{}
	}
	return states, nil
}

// Cities lists the cities of one state. State codes are two uppercase
// letters; anything else is rejected before touching storage.
func (s *LocationsService) Cities(ctx context.Context, state string) ([]repository.CityRow, error) {
	code, err := normalizeState(state)
	if err != nil {
		return nil, err
	}
	cities, err := s.profiles.CitiesByState(ctx, code)
	if err != nil {
		return nil, err
	}
	if cities == nil {
		cities = []repository.CityRow{}
	}
	return cities, nil
}

// Players lists the active players of a state, optionally narrowed to one
// city.
func (s *LocationsService) Players(ctx context.Context, state, city string, limit int, cursor string) (PlayersPage, error) {
	code, err := normalizeState(state)
	if err != nil {
		return PlayersPage{}, err
	}
	return s.players.List(ctx, repository.ProfileSearchQuery{
		State:  code,
		City:   city,
		Limit:  limit,
		Cursor: cursor,
	})
}

func normalizeState(state string) (string, error) {
	code := strings.ToUpper(strings.TrimSpace(state))
	if len(code) != 2 || code[0] < 'A' || code[0] > 'Z' || code[1] < 'A' || code[1] > 'Z' {
		return "", fmt.Errorf("%w: invalid state code", ErrBadRequest)
	}
	return code, nil
}
