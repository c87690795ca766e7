package domain

import (
	"context"
	"encoding/base64"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/voicesketch/voicesketch-server/internal/media"
	"github.com/voicesketch/voicesketch-server/internal/ports"
	"github.com/voicesketch/voicesketch-server/internal/prompt"
	"github.com/voicesketch/voicesketch-server/internal/scratch"
)

// Signed URLs hand the browser short-lived read access; they are minted
// fresh on every request, never cached.
const signTTL = 10 * time.Minute

type illustrationService struct {
	store       ports.ObjectStore
	transcoder  ports.Transcoder
	transcriber ports.Transcriber
	images      ports.ImageGenerator
	prompts     *prompt.Synthesizer
}

func NewIllustrationService(
	store ports.ObjectStore,
	transcoder ports.Transcoder,
	transcriber ports.Transcriber,
	images ports.ImageGenerator,
	prompts *prompt.Synthesizer,
) ports.IllustrationService {
	return &illustrationService{
		store:       store,
		transcoder:  transcoder,
		transcriber: transcriber,
		images:      images,
		prompts:     prompts,
	}
}

// Transcribe runs the recognition sub-pipeline:
// download -> normalize -> recognize.
func (s *illustrationService) Transcribe(ctx context.Context, audioPath string) (string, error) {
	sc := scratch.New()
	defer sc.ReleaseAll()

	audioB64, err := s.normalizedAudio(ctx, sc, audioPath)
	if err != nil {
		return "", err
	}

	return s.transcriber.Transcribe(ctx, audioB64)
}

// FromVoice runs the full pipeline for one recorded clip. Any step's
// failure short-circuits the rest; scratch files are released either way.
func (s *illustrationService) FromVoice(ctx context.Context, audioPath string) (*ports.IllustrationResult, error) {
	sc := scratch.New()
	defer sc.ReleaseAll()

	audioB64, err := s.normalizedAudio(ctx, sc, audioPath)
	if err != nil {
		return nil, err
	}

	text, err := s.transcriber.Transcribe(ctx, audioB64)
	if err != nil {
		return nil, err
	}
	log.Printf("[illustration] transcript: %q", text)

	imagePrompt := s.prompts.BuildPrompt(text)

	img, err := s.images.GenerateImage(ctx, imagePrompt)
	if err != nil {
		return nil, err
	}
	log.Printf("[illustration] image generated, %s", humanize.Bytes(uint64(len(img))))

	localImage := sc.Acquire("generated.png")
	if err := os.WriteFile(localImage, img, 0644); err != nil {
		return nil, fmt.Errorf("write image: %w", err)
	}

	// unix millis keeps every invocation on its own key, no overwrites
	imageKey := fmt.Sprintf("images/generated_%d.png", time.Now().UnixMilli())
	if err := s.store.Upload(ctx, localImage, imageKey, "image/png"); err != nil {
		return nil, err
	}
	log.Printf("[illustration] uploaded %s", imageKey)

	imageURL, err := s.store.SignURL(ctx, imageKey, signTTL)
	if err != nil {
		return nil, err
	}
	audioURL, err := s.store.SignURL(ctx, audioPath, signTTL)
	if err != nil {
		return nil, err
	}

	return &ports.IllustrationResult{
		ImageURL:  imageURL,
		AudioURL:  audioURL,
		ImagePath: imageKey,
		AudioPath: audioPath,
	}, nil
}

// normalizedAudio downloads the clip, re-encodes it for the recognizer
// and returns it base64-encoded. Scratch paths go into sc so the caller's
// deferred ReleaseAll covers them.
func (s *illustrationService) normalizedAudio(ctx context.Context, sc *scratch.Dir, audioPath string) (string, error) {
	local := sc.Acquire(filepath.Base(audioPath))

	log.Printf("[illustration] downloading %s", audioPath)
	if err := s.store.Download(ctx, audioPath, local); err != nil {
		return "", err
	}

	if dur, err := media.AudioDuration(local); err == nil {
		log.Printf("[illustration] clip duration %.1fs", dur)
	}

	normalized := sc.Acquire("converted.webm")
	if err := s.transcoder.NormalizeAudio(ctx, local, normalized); err != nil {
		return "", err
	}

	raw, err := os.ReadFile(normalized)
	if err != nil {
		return "", fmt.Errorf("read normalized audio: %w", err)
	}
	log.Printf("[illustration] normalized audio %s", humanize.Bytes(uint64(len(raw))))

	return base64.StdEncoding.EncodeToString(raw), nil
}
