package service

import (
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/playerbase/player-api/internal/model"
	"github.com/playerbase/player-api/internal/queue"
)

func newFilesFixture() (*FilesService, *fakeMediaStore, *fakePublisher) {
	media := newFakeMediaStore()
	events := &fakePublisher{}
	return NewFilesService(fakePresigner{}, media, events, zerolog.Nop()), media, events
}

func TestPresignContentTypes(t *testing.T) {
	svc, _, _ := newFilesFixture()
	ctx := context.Background()

	cases := []struct {
		kind, contentType string
		ok                bool
	}{
		{"media", "image/jpeg", true},
		{"media", "image/png", true},
		{"media", "image/webp", true},
		{"media", "video/mp4", true},
		{"media", "video/webm", true},
		{"media", "application/pdf", false},
		{"avatar", "image/png", true},
		{"avatar", "video/mp4", false},
		{"banner", "image/png", false},
	}
	for _, tc := range cases {
		_, err := svc.Presign(ctx, PresignInput{Kind: tc.kind, FileName: "f.bin", ContentType: tc.contentType})
		if tc.ok {
			require.NoError(t, err, "%s %s", tc.kind, tc.contentType)
		} else {
			require.ErrorIs(t, err, ErrBadRequest, "%s %s", tc.kind, tc.contentType)
		}
	}
}

func TestPresignKeyShape(t *testing.T) {
	svc, _, _ := newFilesFixture()

	res, err := svc.Presign(context.Background(), PresignInput{
		Kind: "media", FileName: "clip.mp4", ContentType: "video/mp4",
	})
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(res.Key, "media/"))
	require.True(t, strings.HasSuffix(res.Key, "-clip.mp4"))
	require.Equal(t, "https://upload.test/"+res.Key, res.UploadURL)
	require.Equal(t, "https://cdn.test/"+res.Key, res.PublicURL)
	require.Equal(t, 3600, res.ExpiresIn)
}

func TestModerationCallback(t *testing.T) {
	svc, media, events := newFilesFixture()
	ctx := context.Background()

	m, err := media.Create(ctx, model.Media{ProfileID: "prof-1", Type: model.MediaTypeImage, URL: "https://cdn.test/x"})
	require.NoError(t, err)
	require.Equal(t, model.MediaStatusPending, m.Status)

	w, h := 800, 600
	v, err := svc.Callback(ctx, UploadCallbackInput{
		MediaID: m.ID, Status: model.MediaStatusApproved, Width: &w, Height: &h,
	})
	require.NoError(t, err)
	require.Equal(t, model.MediaStatusApproved, v.Status)
	require.Equal(t, &w, v.Width)
	require.Contains(t, events.types(), queue.EventMediaModerated)
}

func TestModerationCallbackKeepsOmittedFields(t *testing.T) {
	svc, media, _ := newFilesFixture()
	ctx := context.Background()

	m, err := media.Create(ctx, model.Media{ProfileID: "prof-1", Type: model.MediaTypeImage, URL: "u"})
	require.NoError(t, err)

	score := 0.12
	_, err = svc.Callback(ctx, UploadCallbackInput{
		MediaID: m.ID, Status: model.MediaStatusPending, NSFWScore: &score,
	})
	require.NoError(t, err)

	// A later verdict that omits the score must not wipe the recorded one.
	v, err := svc.Callback(ctx, UploadCallbackInput{MediaID: m.ID, Status: model.MediaStatusApproved})
	require.NoError(t, err)
	require.Equal(t, model.MediaStatusApproved, v.Status)

	stored, err := media.GetByID(ctx, m.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.NSFWScore)
	require.Equal(t, score, *stored.NSFWScore)
}

func TestModerationCallbackBadInput(t *testing.T) {
	svc, media, _ := newFilesFixture()
	ctx := context.Background()

	m, err := media.Create(ctx, model.Media{ProfileID: "prof-1", Type: model.MediaTypeImage, URL: "u"})
	require.NoError(t, err)

	_, err = svc.Callback(ctx, UploadCallbackInput{MediaID: m.ID, Status: "published"})
	require.ErrorIs(t, err, ErrBadRequest)

	_, err = svc.Callback(ctx, UploadCallbackInput{MediaID: "missing", Status: model.MediaStatusApproved})
	require.ErrorIs(t, err, ErrNotFound)
}
