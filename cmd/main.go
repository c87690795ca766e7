package main

import (
	"log"
	"math/rand"
	"net/http"
	"os"
	"time"

	"github.com/Vovarama1992/go-utils/httputil"
	"github.com/Vovarama1992/go-utils/logger"

	"github.com/voicesketch/voicesketch-server/internal/ai"
	"github.com/voicesketch/voicesketch-server/internal/delivery"
	"github.com/voicesketch/voicesketch-server/internal/domain"
	"github.com/voicesketch/voicesketch-server/internal/infra"
	"github.com/voicesketch/voicesketch-server/internal/media"
	"github.com/voicesketch/voicesketch-server/internal/prompt"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {

	// =========================================================================
	// ENV / LOGGER
	// =========================================================================

	_ = godotenv.Load()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	baseLogger, _ := zap.NewProduction()
	defer baseLogger.Sync()
	zl := logger.NewZapLogger(baseLogger.Sugar())

	// =========================================================================
	// INFRASTRUCTURE
	// =========================================================================

	store, err := infra.NewS3Client()
	if err != nil {
		log.Fatalf("failed to init s3: %v", err)
	}

	transcoder := media.NewFFmpegTranscoder()

	// =========================================================================
	// CLIENTS (STT / IMAGE)
	// =========================================================================

	speechClient := ai.NewGoogleSpeechClient()
	openAIClient := ai.NewOpenAIClient()

	// =========================================================================
	// DOMAIN SERVICES
	// =========================================================================

	prompts := prompt.NewSynthesizer(rand.New(rand.NewSource(time.Now().UnixNano())))

	illustrationService := domain.NewIllustrationService(
		store,
		transcoder,
		speechClient,
		openAIClient,
		prompts,
	)
	videoService := domain.NewVideoService(store, transcoder)

	// =========================================================================
	// HTTP ROUTER
	// =========================================================================

	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	pipelineHandler := delivery.NewPipelineHandler(illustrationService, videoService, zl)
	delivery.RegisterRoutes(r, pipelineHandler)

	r.With(httputil.RecoverMiddleware).Get("/ping", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(200)
		w.Write([]byte("pong"))
	})

	// =========================================================================
	// START SERVER
	// =========================================================================

	addr := ":" + port
	zl.Log(logger.LogEntry{
		Level:   "info",
		Message: "listening at " + addr,
		Service: "voicesketch",
	})

	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
