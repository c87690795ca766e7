package delivery

import (
	"time"

	"github.com/Vovarama1992/go-utils/httputil"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
)

func RegisterRoutes(r chi.Router, h *PipelineHandler) {
	r.Route("/", func(pr chi.Router) {
		pr.Use(
			httputil.RecoverMiddleware,
			// each call fans out to paid APIs, keep abusers off
			httprate.LimitByIP(30, 1*time.Minute),
		)

		pr.Post("/speech/transcriptions", h.Transcribe)
		pr.Post("/illustrations", h.CreateIllustration)
		pr.Post("/videos", h.CreateVideo)
	})
}
