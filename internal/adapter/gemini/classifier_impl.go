package gemini

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/option"

	"github.com/user/book-classifier/internal/entity"
)

// generator is the part of *genai.GenerativeModel the classifier uses.
type generator interface {
	GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

// Classifier implements repository.LevelClassifier with a Gemini vision model.
type Classifier struct {
	client     *genai.Client
	model      generator
	maxRetries int
	backoff    time.Duration
	logger     *zap.Logger
}

// Unconfigured stands in for the classifier when no API key is set. Every call
// fails, so analyses degrade to the fallback verdict.
type Unconfigured struct {
	Reason error
}

func (u Unconfigured) Classify(ctx context.Context, meta *entity.BookMetadata, screenshot string) (entity.AIAnalysis, error) {
	return entity.AIAnalysis{}, u.Reason
}

// NewClassifier creates a Gemini client for modelName.
func NewClassifier(ctx context.Context, apiKey, modelName string, maxRetries int, logger *zap.Logger) (*Classifier, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GOOGLE_API_KEY is not set")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("error creating Gemini client: %w", err)
	}

	model := client.GenerativeModel(modelName)
	model.SetTemperature(0)
	model.ResponseMIMEType = "application/json"

	c := newClassifier(model, maxRetries, logger)
	c.client = client
	return c, nil
}

func newClassifier(model generator, maxRetries int, logger *zap.Logger) *Classifier {
	if maxRetries < 0 {
		maxRetries = 0
	}
	return &Classifier{
		model:      model,
		maxRetries: maxRetries,
		backoff:    time.Second,
		logger:     logger,
	}
}

// Classify asks the model for a reading level. screenshot is a base64 PNG, possibly empty.
func (c *Classifier) Classify(ctx context.Context, meta *entity.BookMetadata, screenshot string) (entity.AIAnalysis, error) {
	parts := []genai.Part{
		genai.Text(systemPrompt),
		genai.Text(metadataBlock(meta)),
	}

	if screenshot != "" {
		img, err := base64.StdEncoding.DecodeString(screenshot)
		if err != nil {
			return entity.AIAnalysis{}, fmt.Errorf("decode screenshot: %w", err)
		}
		parts = append(parts, genai.ImageData("png", img))
	} else {
		parts = append(parts, genai.Text(noScreenshotNotice))
	}

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			c.logger.Warn("retrying classification", zap.Int("attempt", attempt), zap.Error(lastErr))
			select {
			case <-time.After(c.backoff * time.Duration(attempt)):
			case <-ctx.Done():
				return entity.AIAnalysis{}, ctx.Err()
			}
		}

		resp, err := c.model.GenerateContent(ctx, parts...)
		if err != nil {
			lastErr = err
			continue
		}
		return ParseAnalysis(responseText(resp))
	}

	return entity.AIAnalysis{}, fmt.Errorf("generate content: %w", lastErr)
}

// Close releases the underlying client.
func (c *Classifier) Close() error {
	if c.client == nil {
		return nil
	}
	return c.client.Close()
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	return b.String()
}
