package ai

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"os"

	openai "github.com/sashabaranov/go-openai"
	"github.com/voicesketch/voicesketch-server/internal/ports"
)

type OpenAIClient struct {
	client *openai.Client
}

func NewOpenAIClient() *OpenAIClient {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		log.Fatal("OPENAI_API_KEY not set")
	}
	return &OpenAIClient{
		client: openai.NewClient(apiKey),
	}
}

// GenerateImage asks the model for a single square PNG and returns the
// decoded bytes. A content-policy rejection is marked non-retryable so
// the caller does not waste money resubmitting the same prompt.
func (c *OpenAIClient) GenerateImage(ctx context.Context, prompt string) ([]byte, error) {
	resp, err := c.client.CreateImage(ctx, openai.ImageRequest{
		Prompt:         prompt,
		Model:          openai.CreateImageModelDallE3,
		N:              1,
		Size:           openai.CreateImageSize1024x1024,
		ResponseFormat: openai.CreateImageResponseFormatB64JSON,
	})
	if err != nil {
		return nil, &ports.GenerationError{
			PolicyViolation: isPolicyViolation(err),
			Err:             err,
		}
	}

	if len(resp.Data) == 0 {
		return nil, &ports.GenerationError{Err: fmt.Errorf("no image in response")}
	}

	img, err := base64.StdEncoding.DecodeString(resp.Data[0].B64JSON)
	if err != nil {
		return nil, &ports.GenerationError{Err: fmt.Errorf("decode image payload: %w", err)}
	}
	return img, nil
}

func isPolicyViolation(err error) bool {
	var apiErr *openai.APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.Code == "content_policy_violation"
}
