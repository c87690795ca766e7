package media

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"strings"

	"github.com/voicesketch/voicesketch-server/internal/ports"
)

// FFmpegTranscoder shells out to ffmpeg. The command is run to completion
// before returning, so callers never race a half-written output file.
type FFmpegTranscoder struct {
	bin string
}

func NewFFmpegTranscoder() *FFmpegTranscoder {
	bin := os.Getenv("FFMPEG_PATH")
	if bin == "" {
		bin = "ffmpeg"
	}
	return &FFmpegTranscoder{bin: bin}
}

// NormalizeAudio re-encodes whatever the client recorded into the fixed
// target the recognizer is configured for: opus, 48 kHz, 48 kbit/s, webm.
func (t *FFmpegTranscoder) NormalizeAudio(ctx context.Context, inputPath, outputPath string) error {
	return t.run(ctx,
		"-y",
		"-i", inputPath,
		"-c:a", "libopus",
		"-b:a", "48k",
		"-ar", "48000",
		"-f", "webm",
		outputPath,
	)
}

// ComposeVideo loops the still image as an infinite video source and cuts
// at the end of the audio track (-shortest). yuv420p keeps the mp4
// playable in browsers and on phones.
func (t *FFmpegTranscoder) ComposeVideo(ctx context.Context, imagePath, audioPath, outputPath string) error {
	return t.run(ctx,
		"-y",
		"-loop", "1",
		"-i", imagePath,
		"-i", audioPath,
		"-c:v", "libx264",
		"-c:a", "aac",
		"-pix_fmt", "yuv420p",
		"-shortest",
		outputPath,
	)
}

func (t *FFmpegTranscoder) run(ctx context.Context, args ...string) error {
	cmd := exec.CommandContext(ctx, t.bin, args...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return &ports.TranscodeError{
			Stderr: strings.TrimSpace(stderr.String()),
			Err:    err,
		}
	}
	return nil
}
