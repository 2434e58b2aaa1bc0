package service

import (
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/playerbase/player-api/internal/model"
	"github.com/playerbase/player-api/internal/repository"
)

type profileFixture struct {
	profiles *fakeProfileStore
	media    *fakeMediaStore
	svc      *ProfileService
	userID   string
}

func newProfileFixture(t *testing.T) *profileFixture {
	t.Helper()
	profiles := newFakeProfileStore()
	users := newFakeUserStore(profiles)
	user, _, err := users.CreateWithProfile(context.Background(),
		model.User{Email: "p1@example.com", Role: model.RolePlayer, Status: model.UserStatusActive},
		model.Profile{Username: "p1", DisplayName: "P1", State: "SP", City: "Sao Paulo"})
	require.NoError(t, err)

	media := newFakeMediaStore()
	svc := NewProfileService(profiles, media, fakePresigner{}, zerolog.Nop())
	return &profileFixture{profiles: profiles, media: media, svc: svc, userID: user.ID}
}

func TestProfileUpdatePatchesOnlyGivenFields(t *testing.T) {
	f := newProfileFixture(t)
	ctx := context.Background()

	bio := "plays support"
	v, err := f.svc.Update(ctx, f.userID, UpdateProfileInput{Bio: &bio})
	require.NoError(t, err)
	require.NotNil(t, v.Bio)
	require.Equal(t, "plays support", *v.Bio)
	require.Equal(t, "P1", v.DisplayName) // untouched

	name := "Player Uno"
	v, err = f.svc.Update(ctx, f.userID, UpdateProfileInput{DisplayName: &name})
	require.NoError(t, err)
	require.Equal(t, "Player Uno", v.DisplayName)
	require.NotNil(t, v.Bio) // earlier patch survives
}

func TestMediaLifecycle(t *testing.T) {
	f := newProfileFixture(t)
	ctx := context.Background()

	m, err := f.svc.CreateMedia(ctx, f.userID, CreateMediaInput{
		Type: model.MediaTypeImage, URL: "https://cdn.test/pic.jpg", Tags: []string{"fps"},
	})
	require.NoError(t, err)
	require.Equal(t, model.MediaStatusPending, m.Status)
	require.Equal(t, model.MediaSourceUpload, m.Source)

	title := "scrim highlight"
	m, err = f.svc.UpdateMedia(ctx, f.userID, m.ID, UpdateMediaInput{Title: &title})
	require.NoError(t, err)
	require.Equal(t, &title, m.Title)

	require.NoError(t, f.svc.DeleteMedia(ctx, f.userID, m.ID))
	// Soft-deleted media is gone from listings and repeat deletes are 404s.
	page, err := f.svc.Media(ctx, f.userID, repository.MediaFilters{})
	require.NoError(t, err)
	require.Empty(t, page.Items)
	require.ErrorIs(t, f.svc.DeleteMedia(ctx, f.userID, m.ID), ErrNotFound)
}

func TestMediaOwnershipEnforced(t *testing.T) {
	f := newProfileFixture(t)
	ctx := context.Background()

	users := newFakeUserStore(f.profiles)
	other, _, err := users.CreateWithProfile(ctx,
		model.User{Email: "p2@example.com", Role: model.RolePlayer, Status: model.UserStatusActive},
		model.Profile{Username: "p2", State: "RJ", City: "Rio"})
	require.NoError(t, err)

	m, err := f.svc.CreateMedia(ctx, f.userID, CreateMediaInput{Type: model.MediaTypeImage, URL: "u"})
	require.NoError(t, err)

	title := "mine now"
	_, err = f.svc.UpdateMedia(ctx, other.ID, m.ID, UpdateMediaInput{Title: &title})
	require.ErrorIs(t, err, ErrNotFound)
	require.ErrorIs(t, f.svc.DeleteMedia(ctx, other.ID, m.ID), ErrNotFound)
}

func TestMediaPagination(t *testing.T) {
	f := newProfileFixture(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := f.svc.CreateMedia(ctx, f.userID, CreateMediaInput{Type: model.MediaTypeImage, URL: "u"})
		require.NoError(t, err)
	}

	page, err := f.svc.Media(ctx, f.userID, repository.MediaFilters{Limit: 2})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	require.Equal(t, 2, page.Meta.Limit)
	require.Equal(t, 2, page.Meta.InPage)
	require.True(t, page.Meta.HasNextPage)
	require.False(t, page.Meta.HasPreviousPage)
	require.NotEmpty(t, page.Meta.NextCursor)
}

func TestAvatarPresignAndConfirm(t *testing.T) {
	f := newProfileFixture(t)
	ctx := context.Background()

	up, err := f.svc.PresignAvatar(ctx, f.userID, "face.png", "image/png")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(up.Key, "avatar/"))
	require.Equal(t, "https://upload.test/"+up.Key, up.UploadURL)

	_, err = f.svc.PresignAvatar(ctx, f.userID, "clip.mp4", "video/mp4")
	require.ErrorIs(t, err, ErrBadRequest)

	v, err := f.svc.ConfirmAvatar(ctx, f.userID, up.Key)
	require.NoError(t, err)
	require.NotNil(t, v.AvatarURL)
	require.Equal(t, "https://cdn.test/"+up.Key, *v.AvatarURL)
}

func TestPublicPlayersHideSuspendedAndUnapproved(t *testing.T) {
	f := newProfileFixture(t)
	ctx := context.Background()

	f.profiles.put(model.Profile{Username: "ghost", Status: "suspended", State: "SP", City: "Sao Paulo"})

	players := NewPlayersService(f.profiles, f.media, zerolog.Nop())

	_, err := players.ByUsername(ctx, "ghost")
	require.ErrorIs(t, err, ErrNotFound)

	v, err := players.ByUsername(ctx, "p1")
	require.NoError(t, err)
	require.Equal(t, "p1", v.Username)

	// Pending media never shows on the public gallery.
	_, err = f.svc.CreateMedia(ctx, f.userID, CreateMediaInput{Type: model.MediaTypeImage, URL: "u"})
	require.NoError(t, err)
	page, err := players.MediaByUsername(ctx, "p1", repository.MediaFilters{})
	require.NoError(t, err)
	require.Empty(t, page.Items)
}
