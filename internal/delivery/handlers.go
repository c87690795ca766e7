package delivery

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/voicesketch/voicesketch-server/internal/ports"
)

// Hard ceiling on one pipeline run; past it the request fails as a
// timeout instead of hanging on a stuck external call.
const pipelineTimeout = 300 * time.Second

type PipelineHandler struct {
	illustrations ports.IllustrationService
	videos        ports.VideoService
	log           *logger.ZapLogger
}

func NewPipelineHandler(
	illustrations ports.IllustrationService,
	videos ports.VideoService,
	log *logger.ZapLogger,
) *PipelineHandler {
	return &PipelineHandler{
		illustrations: illustrations,
		videos:        videos,
		log:           log,
	}
}

func (h *PipelineHandler) Transcribe(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FilePath string `json:"file_path"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.FilePath == "" {
		h.fail(w, "transcription failed", &ports.InputValidationError{Field: "file_path"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), pipelineTimeout)
	defer cancel()

	text, err := h.illustrations.Transcribe(ctx, req.FilePath)
	if err != nil {
		h.fail(w, "transcription failed", err)
		return
	}

	_ = json.NewEncoder(w).Encode(map[string]any{"text": text})
}

func (h *PipelineHandler) CreateIllustration(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FilePath string `json:"file_path"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.FilePath == "" {
		h.fail(w, "illustration failed", &ports.InputValidationError{Field: "file_path"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), pipelineTimeout)
	defer cancel()

	res, err := h.illustrations.FromVoice(ctx, req.FilePath)
	if err != nil {
		h.fail(w, "illustration failed", err)
		return
	}

	_ = json.NewEncoder(w).Encode(map[string]any{
		"image_url":  res.ImageURL,
		"audio_url":  res.AudioURL,
		"image_path": res.ImagePath,
		"audio_path": res.AudioPath,
	})
}

func (h *PipelineHandler) CreateVideo(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ImagePath string `json:"image_path"`
		AudioPath string `json:"audio_path"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.ImagePath == "" {
		h.fail(w, "video creation failed", &ports.InputValidationError{Field: "image_path"})
		return
	}
	if req.AudioPath == "" {
		h.fail(w, "video creation failed", &ports.InputValidationError{Field: "audio_path"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), pipelineTimeout)
	defer cancel()

	url, err := h.videos.Compose(ctx, req.ImagePath, req.AudioPath)
	if err != nil {
		h.fail(w, "video creation failed", err)
		return
	}

	_ = json.NewEncoder(w).Encode(map[string]any{"video_url": url})
}

// fail maps the pipeline error kinds onto statuses and answers with the
// public message plus cause text. Internals stay in the log.
func (h *PipelineHandler) fail(w http.ResponseWriter, msg string, err error) {
	h.log.Log(logger.LogEntry{
		Level:   "error",
		Message: msg,
		Service: "voicesketch",
		Error:   err,
	})

	http.Error(w, msg+": "+err.Error(), statusFor(err))
}

func statusFor(err error) int {
	var (
		validationErr *ports.InputValidationError
		genErr        *ports.GenerationError
	)
	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.As(err, &genErr) && genErr.PolicyViolation:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadGateway
	}
}
