package domain_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/voicesketch/voicesketch-server/internal/domain"
	"github.com/voicesketch/voicesketch-server/internal/ports"
)

func TestCompose_HappyPath(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	transcoder := &fakeTranscoder{}
	svc := domain.NewVideoService(store, transcoder)

	url, err := svc.Compose(context.Background(), "images/generated_1.png", "voices/recorded_1.webm")
	require.NoError(t, err)

	require.Len(t, store.uploads, 1)
	var videoKey string
	for k, ct := range store.uploads {
		videoKey = k
		require.Equal(t, "video/mp4", ct)
	}
	require.True(t, strings.HasPrefix(videoKey, "videos/video_"))
	require.True(t, strings.HasSuffix(videoKey, ".mp4"))

	require.Equal(t, "https://signed.example/"+videoKey, url)
	require.Equal(t, 10*time.Minute, store.signed[videoKey])

	requireAllRemoved(t, store.locals, transcoder.locals)
}

func TestCompose_MissingInputFailsAndCleansUp(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	store.failKey = "images/gone.png"
	transcoder := &fakeTranscoder{}
	svc := domain.NewVideoService(store, transcoder)

	_, err := svc.Compose(context.Background(), "images/gone.png", "voices/recorded_1.webm")

	var stErr *ports.StoreError
	require.True(t, errors.As(err, &stErr))
	require.Empty(t, store.uploads)

	requireAllRemoved(t, store.locals, transcoder.locals)
}

func TestCompose_EncoderFailureCleansUp(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	transcoder := &fakeTranscoder{err: &ports.TranscodeError{Err: errors.New("exit status 1"), Stderr: "invalid data"}}
	svc := domain.NewVideoService(store, transcoder)

	_, err := svc.Compose(context.Background(), "images/a.png", "voices/a.webm")

	var tErr *ports.TranscodeError
	require.True(t, errors.As(err, &tErr))
	require.Contains(t, err.Error(), "invalid data")
	require.Empty(t, store.uploads)

	requireAllRemoved(t, store.locals, transcoder.locals)
}
