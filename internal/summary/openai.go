package summary

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/sashabaranov/go-openai"

	"github.com/dvloznov/partner-ledger/internal/logger"
)

// OpenAISummarizer writes summaries with the OpenAI chat completions API.
type OpenAISummarizer struct {
	client *openai.Client
	model  string
	log    zerolog.Logger
}

// NewOpenAISummarizer creates an OpenAI-backed summarizer.
func NewOpenAISummarizer(apiKey, model string) *OpenAISummarizer {
	if model == "" {
		model = openai.GPT4oMini
	}
	return &OpenAISummarizer{
		client: openai.NewClient(apiKey),
		model:  model,
		log:    logger.WithComponent("summary-openai"),
	}
}

// Summarize implements Summarizer.
func (s *OpenAISummarizer) Summarize(ctx context.Context, snap Snapshot) (string, error) {
	prompt := BuildPrompt(snap)
	s.log.Debug().Str("model", s.model).Int("prompt_chars", len(prompt)).Msg("Requesting summary")

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		Temperature: 0.2,
	})
	if err != nil {
		return "", fmt.Errorf("OpenAISummarizer: chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("OpenAISummarizer: %w", ErrEmptySummary)
	}

	text := cleanModelText(resp.Choices[0].Message.Content)
	if text == "" {
		return "", fmt.Errorf("OpenAISummarizer: %w", ErrEmptySummary)
	}
	return text, nil
}
