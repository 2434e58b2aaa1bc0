package service

import (
	"context"
	"database/sql"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/playerbase/player-api/internal/model"
	"github.com/playerbase/player-api/internal/repository"
)

// In-memory stores backing the service tests. They implement the same
// repository interfaces the MySQL repos do, including the conditional
// invalidate semantics the rotation guard depends on.

type fakeUserStore struct {
	mu       sync.Mutex
	users    map[string]model.User // by id
	profiles *fakeProfileStore     // signup writes both rows
}

func newFakeUserStore(profiles *fakeProfileStore) *fakeUserStore {
	return &fakeUserStore{users: map[string]model.User{}, profiles: profiles}
}

func (f *fakeUserStore) CreateWithProfile(_ context.Context, user model.User, profile model.Profile) (model.User, model.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == user.Email {
			return model.User{}, model.Profile{}, repository.ErrEmailExists
		}
	}
	user.ID = uuid.NewString()
	user.CreatedAt = time.Now().UTC()
	f.users[user.ID] = user
	profile.UserID = user.ID
	profile.CreatedAt = user.CreatedAt
	profile.UpdatedAt = user.CreatedAt
	profile = f.profiles.put(profile)
	return user, profile, nil
}

func (f *fakeUserStore) GetByEmail(_ context.Context, email string) (model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return model.User{}, sql.ErrNoRows
}

func (f *fakeUserStore) GetByID(_ context.Context, id string) (model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return model.User{}, sql.ErrNoRows
	}
	return u, nil
}

func (f *fakeUserStore) EmailExists(_ context.Context, email string) (bool, error) {
	_, err := f.GetByEmail(context.Background(), email)
	if err == sql.ErrNoRows {
		return false, nil
	}
	return err == nil, err
}

func (f *fakeUserStore) suspend(id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u := f.users[id]
	u.Status = model.UserStatusSuspended
	f.users[id] = u
}

type fakeProfileStore struct {
	mu       sync.Mutex
	profiles map[string]model.Profile // by id
	tags     map[string][]string      // profile id -> slugs
}

func newFakeProfileStore() *fakeProfileStore {
	return &fakeProfileStore{profiles: map[string]model.Profile{}, tags: map[string][]string{}}
}

func (f *fakeProfileStore) put(p model.Profile) model.Profile {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Status == "" {
		p.Status = model.UserStatusActive
	}
	f.profiles[p.ID] = p
	return p
}

func (f *fakeProfileStore) GetByUserID(_ context.Context, userID string) (model.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.profiles {
		if p.UserID == userID {
			return p, nil
		}
	}
	return model.Profile{}, sql.ErrNoRows
}

func (f *fakeProfileStore) GetByUsername(_ context.Context, username string) (model.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.profiles {
		if p.Username == username {
			return p, nil
		}
	}
	return model.Profile{}, sql.ErrNoRows
}

func (f *fakeProfileStore) GetByID(_ context.Context, id string) (model.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.profiles[id]
	if !ok {
		return model.Profile{}, sql.ErrNoRows
	}
	return p, nil
}

func (f *fakeProfileStore) UsernameExists(_ context.Context, username string) (bool, error) {
	_, err := f.GetByUsername(context.Background(), username)
	if err == sql.ErrNoRows {
		return false, nil
	}
	return err == nil, err
}

func (f *fakeProfileStore) Update(_ context.Context, id string, fields map[string]any) (model.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.profiles[id]
	if !ok {
		return model.Profile{}, sql.ErrNoRows
	}
	for col, v := range fields {
		s, _ := v.(string)
		switch col {
		case "display_name":
			p.DisplayName = s
		case "bio":
			p.Bio = &s
		case "avatar_url":
			p.AvatarURL = &s
		case "state":
			p.State = s
		case "city":
			p.City = s
		case "city_slug":
			p.CitySlug = &s
		case "contact_email":
			p.ContactEmail = &s
		case "whatsapp":
			p.Whatsapp = &s
		case "twitch":
			p.Twitch = &s
		case "youtube":
			p.Youtube = &s
		case "instagram":
			p.Instagram = &s
		case "featured_media_id":
			p.FeaturedMediaID = &s
		}
	}
	p.UpdatedAt = time.Now().UTC()
	f.profiles[id] = p
	return p, nil
}

func (f *fakeProfileStore) Search(_ context.Context, q repository.ProfileSearchQuery) ([]model.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Profile
	for _, p := range f.profiles {
		if q.Status != "" && p.Status != q.Status {
			continue
		}
		if q.State != "" && p.State != q.State {
			continue
		}
		if q.City != "" && !strings.EqualFold(p.City, q.City) {
			continue
		}
		if q.Q != "" && !strings.Contains(strings.ToLower(p.Username), strings.ToLower(q.Q)) &&
			!strings.Contains(strings.ToLower(p.DisplayName), strings.ToLower(q.Q)) {
			continue
		}
		if len(q.Tags) > 0 && !f.hasAnyTag(p.ID, q.Tags) {
			continue
		}
		out = append(out, p)
		if q.Limit > 0 && len(out) >= q.Limit {
			break
		}
	}
	return out, nil
}

func (f *fakeProfileStore) hasAnyTag(profileID string, slugs []string) bool {
	for _, want := range slugs {
		for _, have := range f.tags[profileID] {
			if have == want {
				return true
			}
		}
	}
	return false
}

func (f *fakeProfileStore) DistinctStates(context.Context) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	seen := map[string]bool{}
	var out []string
	for _, p := range f.profiles {
		if p.Status == model.UserStatusActive && !seen[p.State] {
			seen[p.State] = true
			out = append(out, p.State)
		}
	}
	return out, nil
}

func (f *fakeProfileStore) CitiesByState(_ context.Context, state string) ([]repository.CityRow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	seen := map[string]bool{}
	var out []repository.CityRow
	for _, p := range f.profiles {
		if p.State == state && !seen[p.City] {
			seen[p.City] = true
			out = append(out, repository.CityRow{Name: p.City, Slug: p.CitySlug})
		}
	}
	return out, nil
}

func (f *fakeProfileStore) TagSlugs(_ context.Context, profileID string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.tags[profileID], nil
}

type fakeSessionStore struct {
	mu       sync.Mutex
	sessions map[string]model.Session
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: map[string]model.Session{}}
}

func (f *fakeSessionStore) Create(_ context.Context, userID string) (model.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	now := time.Now().UTC()
	s := model.Session{
		ID:           uuid.NewString(),
		UserID:       userID,
		SessionToken: uuid.NewString(),
		Status:       model.SessionStatusActive,
		ExpiresAt:    now.Add(7 * 24 * time.Hour),
		CreatedAt:    now,
	}
	f.sessions[s.ID] = s
	return s, nil
}

func (f *fakeSessionStore) GetByID(_ context.Context, id string) (model.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.sessions[id]
	if !ok {
		return model.Session{}, sql.ErrNoRows
	}
	return s, nil
}

// Invalidate mirrors the SQL repo: only an active session flips, and the
// number of flipped rows is reported.
func (f *fakeSessionStore) Invalidate(_ context.Context, id string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.sessions[id]
	if !ok || s.Status != model.SessionStatusActive {
		return 0, nil
	}
	s.Status = model.SessionStatusInactive
	f.sessions[id] = s
	return 1, nil
}

func (f *fakeSessionStore) InvalidateAllForUser(_ context.Context, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, s := range f.sessions {
		if s.UserID == userID {
			s.Status = model.SessionStatusInactive
			f.sessions[id] = s
		}
	}
	return nil
}

type fakeMediaStore struct {
	mu    sync.Mutex
	items map[string]model.Media
}

func newFakeMediaStore() *fakeMediaStore {
	return &fakeMediaStore{items: map[string]model.Media{}}
}

func (f *fakeMediaStore) Create(_ context.Context, m model.Media) (model.Media, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	m.ID = uuid.NewString()
	if m.Status == "" {
		m.Status = model.MediaStatusPending
	}
	now := time.Now().UTC()
	m.CreatedAt = now
	m.UpdatedAt = now
	f.items[m.ID] = m
	return m, nil
}

func (f *fakeMediaStore) GetByID(_ context.Context, id string) (model.Media, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.items[id]
	if !ok || m.DeletedAt != nil {
		return model.Media{}, sql.ErrNoRows
	}
	return m, nil
}

func (f *fakeMediaStore) ListByProfile(_ context.Context, profileID string, flt repository.MediaFilters) ([]model.Media, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Media
	for _, m := range f.items {
		if m.ProfileID != profileID || m.DeletedAt != nil {
			continue
		}
		if flt.Type != "" && m.Type != flt.Type {
			continue
		}
		if flt.Status != "" && m.Status != flt.Status {
			continue
		}
		out = append(out, m)
		if flt.Limit > 0 && len(out) >= flt.Limit {
			break
		}
	}
	return out, nil
}

func (f *fakeMediaStore) Update(_ context.Context, id, profileID string, fields map[string]any) (model.Media, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.items[id]
	if !ok || m.ProfileID != profileID || m.DeletedAt != nil {
		return model.Media{}, sql.ErrNoRows
	}
	for col, v := range fields {
		switch col {
		case "title":
			s := v.(string)
			m.Title = &s
		case "focal_point_x":
			x := v.(float64)
			m.FocalPointX = &x
		case "focal_point_y":
			y := v.(float64)
			m.FocalPointY = &y
		case "tags_cache":
			m.TagsCache = v.([]string)
		}
	}
	m.UpdatedAt = time.Now().UTC()
	f.items[id] = m
	return m, nil
}

func (f *fakeMediaStore) SoftDelete(_ context.Context, id, profileID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.items[id]
	if !ok || m.ProfileID != profileID || m.DeletedAt != nil {
		return 0, nil
	}
	now := time.Now().UTC()
	m.DeletedAt = &now
	f.items[id] = m
	return 1, nil
}

func (f *fakeMediaStore) ApplyModeration(_ context.Context, id string, res repository.ModerationResult) (model.Media, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.items[id]
	if !ok || m.DeletedAt != nil {
		return model.Media{}, sql.ErrNoRows
	}
	m.Status = res.Status
	if res.Width != nil {
		m.Width = res.Width
	}
	if res.Height != nil {
		m.Height = res.Height
	}
	if res.DurationSec != nil {
		m.DurationSec = res.DurationSec
	}
	if res.NSFWScore != nil {
		m.NSFWScore = res.NSFWScore
	}
	f.items[id] = m
	return m, nil
}

// fakePresigner hands back deterministic URLs.
type fakePresigner struct{}

func (fakePresigner) PresignPut(_ context.Context, key, _ string, _ time.Duration) (string, error) {
	return "https://upload.test/" + key, nil
}

func (fakePresigner) PublicURL(key string) string {
	return "https://cdn.test/" + key
}

// fakePublisher records published events.
type fakePublisher struct {
	mu     sync.Mutex
	events []string
}

func (f *fakePublisher) Publish(_ context.Context, eventType string, _ any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, eventType)
	return nil
}

func (f *fakePublisher) types() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.events...)
}
