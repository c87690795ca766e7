package ports

import "context"

// IllustrationResult is what the voice-to-illustration pipeline hands back
// to the client: signed URLs for playback plus the raw object keys, which
// the client feeds into the video pipeline later.
type IllustrationResult struct {
	ImageURL  string
	AudioURL  string
	ImagePath string
	AudioPath string
}

type IllustrationService interface {
	// Transcribe runs the download → normalize → recognize sub-pipeline.
	Transcribe(ctx context.Context, audioPath string) (string, error)

	// FromVoice runs the full pipeline: transcribe, synthesize a prompt,
	// generate an illustration, store it, sign URLs.
	FromVoice(ctx context.Context, audioPath string) (*IllustrationResult, error)
}

type VideoService interface {
	// Compose muxes a stored illustration and voice clip into an mp4 and
	// returns a time-limited download URL.
	Compose(ctx context.Context, imagePath, audioPath string) (string, error)
}
