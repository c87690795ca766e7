package ports

import "context"

// Transcriber runs a long-running speech recognition job over
// base64-encoded normalized audio and returns the joined transcript.
type Transcriber interface {
	Transcribe(ctx context.Context, audioB64 string) (string, error)
}

// ImageGenerator turns a prompt into PNG bytes.
type ImageGenerator interface {
	GenerateImage(ctx context.Context, prompt string) ([]byte, error)
}
