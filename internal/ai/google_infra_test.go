package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/voicesketch/voicesketch-server/internal/ports"
)

func testSpeechClient(srv *httptest.Server) *GoogleSpeechClient {
	return &GoogleSpeechClient{
		apiKey:    "test-key",
		baseURL:   srv.URL,
		httpCli:   srv.Client(),
		pollEvery: time.Millisecond,
	}
}

func TestTranscribe_JoinsSegmentsInOrder(t *testing.T) {
	t.Parallel()

	var polls atomic.Int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost:
			require.Equal(t, "test-key", r.URL.Query().Get("key"))

			var req map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			cfg := req["config"].(map[string]any)
			require.Equal(t, "WEBM_OPUS", cfg["encoding"])
			require.Equal(t, "ja-JP", cfg["languageCode"])
			require.Equal(t, "latest_long", cfg["model"])
			require.Equal(t, true, cfg["enableAutomaticPunctuation"])

			json.NewEncoder(w).Encode(map[string]any{"name": "op-1"})

		default:
			// first poll pending, second done
			if polls.Add(1) == 1 {
				json.NewEncoder(w).Encode(map[string]any{"name": "op-1", "done": false})
				return
			}
			json.NewEncoder(w).Encode(map[string]any{
				"name": "op-1",
				"done": true,
				"response": map[string]any{
					"results": []map[string]any{
						{"alternatives": []map[string]any{
							{"transcript": "うさぎが"},
							{"transcript": "兎が"},
						}},
						{"alternatives": []map[string]any{
							{"transcript": "はねた"},
						}},
					},
				},
			})
		}
	}))
	defer srv.Close()

	got, err := testSpeechClient(srv).Transcribe(context.Background(), "YXVkaW8=")
	require.NoError(t, err)
	require.Equal(t, "うさぎが\nはねた", got)
}

func TestTranscribe_NoSpeechIsNotAnError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			json.NewEncoder(w).Encode(map[string]any{"name": "op-2"})
			return
		}
		json.NewEncoder(w).Encode(map[string]any{"name": "op-2", "done": true, "response": map[string]any{}})
	}))
	defer srv.Close()

	got, err := testSpeechClient(srv).Transcribe(context.Background(), "YXVkaW8=")
	require.NoError(t, err)
	require.Equal(t, PlaceholderTranscript, got)
}

func TestTranscribe_OperationError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			json.NewEncoder(w).Encode(map[string]any{"name": "op-3"})
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"name":  "op-3",
			"done":  true,
			"error": map[string]any{"code": 3, "message": "audio too long"},
		})
	}))
	defer srv.Close()

	_, err := testSpeechClient(srv).Transcribe(context.Background(), "YXVkaW8=")

	var trErr *ports.TranscriptionError
	require.True(t, errors.As(err, &trErr))
	require.Contains(t, err.Error(), "audio too long")
}

func TestTranscribe_RemoteRejection(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error": {"message": "quota exceeded"}}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := testSpeechClient(srv).Transcribe(context.Background(), "YXVkaW8=")

	var trErr *ports.TranscriptionError
	require.True(t, errors.As(err, &trErr))
}

func TestTranscribe_ContextCancelledWhilePolling(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			json.NewEncoder(w).Encode(map[string]any{"name": "op-4"})
			return
		}
		json.NewEncoder(w).Encode(map[string]any{"name": "op-4", "done": false})
	}))
	defer srv.Close()

	c := testSpeechClient(srv)
	c.pollEvery = 50 * time.Millisecond

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := c.Transcribe(ctx, "YXVkaW8=")
	require.Error(t, err)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}
