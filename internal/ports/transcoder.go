package ports

import "context"

// Transcoder wraps the external encoder. Both calls block until the
// encoder exits, so the output file is fully written on return.
type Transcoder interface {
	// NormalizeAudio re-encodes arbitrary input audio to opus/48kHz/48kbit
	// in a webm container, the shape the recognizer expects.
	NormalizeAudio(ctx context.Context, inputPath, outputPath string) error

	// ComposeVideo loops the still image for the duration of the audio
	// track and muxes them into an mp4.
	ComposeVideo(ctx context.Context, imagePath, audioPath, outputPath string) error
}
