package models

import (
	"fmt"
	"time"

	"github.com/tmc/langchaingo/llms/openai"
)

const (
	// DeepSeekBaseURL is the base URL for the DeepSeek API. The
	// OpenAI-compatible chat completions endpoint is at
	// {baseURL}/chat/completions.
	DeepSeekBaseURL = "https://api.deepseek.com/v1"

	// DeepSeekChat is the default DeepSeek chat model.
	DeepSeekChat = "deepseek-chat"
)

// NewDeepSeek creates a retrying client backed by the DeepSeek API.
//
// The token is a DeepSeek API key. Additional openai.Option values can be
// passed to customise the underlying client (e.g. WithBaseURL to point at a
// compatible proxy, WithHTTPClient for custom transport).
//
// Defaults match the classic calculator demo this library grew out of:
// temperature 0.1, 2000 max output tokens, 30s per-attempt timeout, 3
// attempts with exponential backoff.
//
// Example:
//
//	client, err := models.NewDeepSeek(
//	    models.DeepSeekChat,
//	    os.Getenv("DEEPSEEK_API_KEY"),
//	)
func NewDeepSeek(model, token string, opts ...openai.Option) (*Retry, error) {
	if token == "" {
		return nil, fmt.Errorf(
			"deepseek api key is required: set DEEPSEEK_API_KEY or pass a token",
		)
	}
	if model == "" {
		model = DeepSeekChat
	}

	// Base options point at DeepSeek; caller options come after so they can
	// override.
	baseOpts := []openai.Option{
		openai.WithBaseURL(DeepSeekBaseURL),
		openai.WithToken(token),
		openai.WithModel(model),
	}
	allOpts := append(baseOpts, opts...)

	llm, err := openai.New(allOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create DeepSeek client: %w", err)
	}

	client := NewLangChain(llm).
		WithModelName(model).
		WithTemperature(0.1).
		WithMaxTokens(2000).
		WithTimeout(30 * time.Second)

	return NewRetry(client, DefaultRetryConfig()), nil
}
