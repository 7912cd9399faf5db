package summary

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"google.golang.org/genai"

	"github.com/dvloznov/partner-ledger/internal/logger"
)

// DefaultGeminiModel is used when no model is configured.
const DefaultGeminiModel = "gemini-2.5-flash"

// geminiLocation is the Vertex AI region serving the model.
const geminiLocation = "us-central1"

// GeminiSummarizer writes summaries with Gemini on Vertex AI using
// Application Default Credentials.
type GeminiSummarizer struct {
	client *genai.Client
	model  string
	log    zerolog.Logger
}

// NewGeminiSummarizer creates a Gemini-backed summarizer.
func NewGeminiSummarizer(ctx context.Context, project, model string) (*GeminiSummarizer, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		Project:     project,
		Location:    geminiLocation,
		Backend:     genai.BackendVertexAI,
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		return nil, fmt.Errorf("NewGeminiSummarizer: create genai client: %w", err)
	}
	if model == "" {
		model = DefaultGeminiModel
	}
	return &GeminiSummarizer{client: client, model: model, log: logger.WithComponent("summary-gemini")}, nil
}

// Summarize implements Summarizer.
func (s *GeminiSummarizer) Summarize(ctx context.Context, snap Snapshot) (string, error) {
	prompt := BuildPrompt(snap)
	s.log.Debug().Str("model", s.model).Int("prompt_chars", len(prompt)).Msg("Requesting summary")

	contents := []*genai.Content{
		{
			Role:  "user",
			Parts: []*genai.Part{{Text: prompt}},
		},
	}

	resp, err := s.client.Models.GenerateContent(ctx, s.model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("GeminiSummarizer: generate content: %w", err)
	}

	text := cleanModelText(resp.Text())
	if text == "" {
		return "", fmt.Errorf("GeminiSummarizer: %w", ErrEmptySummary)
	}
	return text, nil
}
