package domain

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/voicesketch/voicesketch-server/internal/ports"
	"github.com/voicesketch/voicesketch-server/internal/scratch"
)

type videoService struct {
	store      ports.ObjectStore
	transcoder ports.Transcoder
}

func NewVideoService(store ports.ObjectStore, transcoder ports.Transcoder) ports.VideoService {
	return &videoService{
		store:      store,
		transcoder: transcoder,
	}
}

// Compose muxes a stored illustration and voice clip into an mp4,
// uploads it to a fresh key and returns a 10-minute signed URL.
func (s *videoService) Compose(ctx context.Context, imagePath, audioPath string) (string, error) {
	sc := scratch.New()
	defer sc.ReleaseAll()

	localImage := sc.Acquire(filepath.Base(imagePath))
	localAudio := sc.Acquire(filepath.Base(audioPath))

	// the two inputs are independent, fetch them in parallel;
	// wait for both so cleanup never races a writer
	log.Printf("[video] downloading %s and %s", imagePath, audioPath)
	errc := make(chan error, 2)
	go func() { errc <- s.store.Download(ctx, imagePath, localImage) }()
	go func() { errc <- s.store.Download(ctx, audioPath, localAudio) }()

	var firstErr error
	for i := 0; i < 2; i++ {
		if err := <-errc; err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if firstErr != nil {
		return "", firstErr
	}

	localVideo := sc.Acquire("video.mp4")
	if err := s.transcoder.ComposeVideo(ctx, localImage, localAudio, localVideo); err != nil {
		return "", err
	}

	videoKey := fmt.Sprintf("videos/video_%d.mp4", time.Now().UnixMilli())
	if err := s.store.Upload(ctx, localVideo, videoKey, "video/mp4"); err != nil {
		return "", err
	}
	log.Printf("[video] uploaded %s", videoKey)

	return s.store.SignURL(ctx, videoKey, signTTL)
}
