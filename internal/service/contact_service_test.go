package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/playerbase/player-api/internal/model"
	"github.com/playerbase/player-api/internal/queue"
	"github.com/playerbase/player-api/internal/repository"
)

type fakeContactStore struct {
	mu     sync.Mutex
	events []model.ContactEvent
}

func (f *fakeContactStore) Create(_ context.Context, ev model.ContactEvent) (model.ContactEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ev.ID = uuid.NewString()
	ev.Status = "active"
	ev.CreatedAt = time.Now().UTC()
	f.events = append(f.events, ev)
	return ev, nil
}

func TestContactCreate(t *testing.T) {
	profiles := newFakeProfileStore()
	profiles.put(model.Profile{Username: "p1", DisplayName: "P1", State: "SP", City: "Sao Paulo"})

	contacts := &fakeContactStore{}
	events := &fakePublisher{}
	svc := NewContactService(contacts, profiles, events, zerolog.Nop())
	ctx := context.Background()

	ip := "203.0.113.9"
	v, err := svc.Create(ctx, ContactInput{Username: "p1", Channel: "whatsapp", RequesterIP: &ip})
	require.NoError(t, err)
	require.Equal(t, "whatsapp", v.Channel)
	require.Contains(t, events.types(), queue.EventContactCreated)
	require.Len(t, contacts.events, 1)
	require.Equal(t, &ip, contacts.events[0].RequesterIP)
}

func TestContactRejectsUnknownChannel(t *testing.T) {
	svc := NewContactService(&fakeContactStore{}, newFakeProfileStore(), nil, zerolog.Nop())
	_, err := svc.Create(context.Background(), ContactInput{Username: "p1", Channel: "carrier-pigeon"})
	require.ErrorIs(t, err, ErrBadRequest)
}

func TestContactHiddenPlayersAreNotFound(t *testing.T) {
	profiles := newFakeProfileStore()
	profiles.put(model.Profile{Username: "ghost", Status: "suspended", State: "SP", City: "Sao Paulo"})

	svc := NewContactService(&fakeContactStore{}, profiles, nil, zerolog.Nop())
	ctx := context.Background()

	_, err := svc.Create(ctx, ContactInput{Username: "ghost", Channel: "email"})
	require.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Create(ctx, ContactInput{Username: "nobody", Channel: "email"})
	require.ErrorIs(t, err, ErrNotFound)
}

type fakeReportStore struct {
	mu      sync.Mutex
	reports []model.Report
	targets map[string]bool // "type/id"
}

func (f *fakeReportStore) Create(_ context.Context, rep model.Report) (model.Report, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rep.ID = uuid.NewString()
	if rep.Status == "" {
		rep.Status = "open"
	}
	if rep.Severity == "" {
		rep.Severity = "low"
	}
	rep.CreatedAt = time.Now().UTC()
	f.reports = append(f.reports, rep)
	return rep, nil
}

func (f *fakeReportStore) ListOpen(_ context.Context, limit int) ([]model.Report, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Report
	for _, r := range f.reports {
		if r.Status == "open" {
			out = append(out, r)
			if limit > 0 && len(out) >= limit {
				break
			}
		}
	}
	return out, nil
}

func (f *fakeReportStore) TargetExists(_ context.Context, targetType, targetID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.targets[targetType+"/"+targetID], nil
}

func TestReportCreate(t *testing.T) {
	store := &fakeReportStore{targets: map[string]bool{"profile/abc": true}}
	events := &fakePublisher{}
	svc := NewReportService(store, events, zerolog.Nop())
	ctx := context.Background()

	reporter := "user-1"
	v, err := svc.Create(ctx, ReportInput{
		TargetType: model.ReportTargetProfile, TargetID: "abc",
		Reason: "spam", ReporterUserID: &reporter,
	})
	require.NoError(t, err)
	require.Equal(t, "open", v.Status)
	require.Contains(t, events.types(), queue.EventReportCreated)
	require.Equal(t, &reporter, store.reports[0].ReporterUserID)
}

func TestReportValidation(t *testing.T) {
	store := &fakeReportStore{targets: map[string]bool{"profile/abc": true}}
	svc := NewReportService(store, nil, zerolog.Nop())
	ctx := context.Background()

	_, err := svc.Create(ctx, ReportInput{TargetType: "comment", TargetID: "abc", Reason: "spam"})
	require.ErrorIs(t, err, ErrBadRequest)

	_, err = svc.Create(ctx, ReportInput{TargetType: model.ReportTargetProfile, TargetID: "abc"})
	require.ErrorIs(t, err, ErrBadRequest)

	_, err = svc.Create(ctx, ReportInput{TargetType: model.ReportTargetMedia, TargetID: "missing", Reason: "spam"})
	require.ErrorIs(t, err, ErrNotFound)
}

var (
	_ repository.ContactStore = (*fakeContactStore)(nil)
	_ repository.ReportStore  = (*fakeReportStore)(nil)
)
