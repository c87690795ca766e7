package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/voicesketch/voicesketch-server/internal/ports"
)

// PlaceholderTranscript is returned when recognition succeeds but hears
// nothing. Absence of speech is a valid outcome, not a failure.
const PlaceholderTranscript = "（音声が聞き取れませんでした）"

// GoogleSpeechClient drives the long-running recognize operation of the
// Cloud Speech REST API: submit the audio, then poll the operation until
// it reports done.
type GoogleSpeechClient struct {
	apiKey    string
	baseURL   string
	httpCli   *http.Client
	pollEvery time.Duration
}

func NewGoogleSpeechClient() *GoogleSpeechClient {
	key := os.Getenv("GOOGLE_SPEECH_API_KEY")
	if key == "" {
		panic("GOOGLE_SPEECH_API_KEY not set")
	}

	base := os.Getenv("GOOGLE_SPEECH_API_URL")
	if base == "" {
		base = "https://speech.googleapis.com/v1"
	}

	return &GoogleSpeechClient{
		apiKey:    key,
		baseURL:   strings.TrimSuffix(base, "/"),
		httpCli:   &http.Client{},
		pollEvery: 2 * time.Second,
	}
}

type recognizeOperation struct {
	Name     string `json:"name"`
	Done     bool   `json:"done"`
	Error    *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
	Response *struct {
		Results []struct {
			Alternatives []struct {
				Transcript string `json:"transcript"`
			} `json:"alternatives"`
		} `json:"results"`
	} `json:"response"`
}

// Transcribe submits base64 opus/webm audio and waits for the operation.
// The recognizer config is fixed to match the transcoder's output.
func (c *GoogleSpeechClient) Transcribe(ctx context.Context, audioB64 string) (string, error) {
	payload := map[string]any{
		"config": map[string]any{
			"encoding":                   "WEBM_OPUS",
			"sampleRateHertz":            48000,
			"languageCode":               "ja-JP",
			"model":                      "latest_long",
			"enableAutomaticPunctuation": true,
		},
		"audio": map[string]any{
			"content": audioB64,
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", &ports.TranscriptionError{Err: err}
	}

	var op recognizeOperation
	if err := c.call(ctx, http.MethodPost, "/speech:longrunningrecognize", body, &op); err != nil {
		return "", &ports.TranscriptionError{Err: err}
	}
	if op.Name == "" {
		return "", &ports.TranscriptionError{Err: fmt.Errorf("no operation name in response")}
	}

	for !op.Done {
		select {
		case <-ctx.Done():
			return "", &ports.TranscriptionError{Err: ctx.Err()}
		case <-time.After(c.pollEvery):
		}

		if err := c.call(ctx, http.MethodGet, "/operations/"+op.Name, nil, &op); err != nil {
			return "", &ports.TranscriptionError{Err: err}
		}
	}

	if op.Error != nil {
		return "", &ports.TranscriptionError{
			Err: fmt.Errorf("operation failed: %s (code %d)", op.Error.Message, op.Error.Code),
		}
	}

	var lines []string
	if op.Response != nil {
		for _, res := range op.Response.Results {
			if len(res.Alternatives) == 0 {
				continue
			}
			// alternatives come ranked, first one is best
			lines = append(lines, res.Alternatives[0].Transcript)
		}
	}

	transcript := strings.Join(lines, "\n")
	if transcript == "" {
		return PlaceholderTranscript, nil
	}
	return transcript, nil
}

func (c *GoogleSpeechClient) call(ctx context.Context, method, path string, body []byte, out any) error {
	url := fmt.Sprintf("%s%s?key=%s", c.baseURL, path, c.apiKey)

	var rd io.Reader
	if body != nil {
		rd = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, rd)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpCli.Do(req)
	if err != nil {
		return fmt.Errorf("speech request: %w", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("speech error: %s", raw)
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode speech response: %w", err)
	}
	return nil
}
