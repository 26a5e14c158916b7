// Package summarizer turns stored message rows into bounded LLM digest
// requests and wraps the completion API client.
package summarizer

import (
	"context"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sethvargo/go-retry"
)

// SystemPrompt is the fixed instruction sent with every digest request.
const SystemPrompt = `Ты — аналитик Telegram-чатов. Тебе передают пачку новых сообщений из отслеживаемых чатов. ` +
	`Для каждой пачки составь краткую структурированную сводку на русском языке с разделами: ` +
	`«Новости» — важные события и объявления, «Обсуждения» — основные темы разговоров и высказанные мнения, ` +
	`«Активность» — кто был наиболее активен и в каких чатах. ` +
	`Если сообщение является ответом на другое, этот контекст предоставляется и должен использоваться для понимания хода разговора. ` +
	`Пропускай разделы, для которых нет материала.`

// Completer produces a text completion for a system prompt and user payload.
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userText string) (string, error)
}

// Client calls an OpenAI-compatible chat completion API.
type Client struct {
	client      *openai.Client
	model       string
	maxTokens   int
	temperature float32
	timeout     time.Duration
}

// NewClient creates a Client for the given API key and model. An empty
// baseURL uses the provider's default endpoint.
func NewClient(apiKey, baseURL, model string) *Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}

	return &Client{
		client:      openai.NewClientWithConfig(cfg),
		model:       model,
		maxTokens:   1000,
		temperature: 0.3,
		timeout:     2 * time.Minute,
	}
}

// Complete sends one chat completion request, retrying transient failures
// with fibonacci backoff before giving up.
func (c *Client) Complete(ctx context.Context, systemPrompt, userText string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var content string
	backoff := retry.WithMaxRetries(2, retry.NewFibonacci(time.Second))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model: c.model,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
				{Role: openai.ChatMessageRoleUser, Content: userText},
			},
			Temperature: c.temperature,
			MaxTokens:   c.maxTokens,
		})
		if err != nil {
			return retry.RetryableError(err)
		}
		if len(resp.Choices) == 0 {
			return fmt.Errorf("no completion choices")
		}
		content = resp.Choices[0].Message.Content
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	return content, nil
}
