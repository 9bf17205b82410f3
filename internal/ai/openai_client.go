package ai

import (
	"context"
	"errors"
	"log"

	openai "github.com/sashabaranov/go-openai"
)

const DefaultMaxCompletionTokens = 32000

var ErrEmptyResponse = errors.New("model returned no choices")

type Options struct {
	APIKey              string
	BaseURL             string
	Model               string
	MaxCompletionTokens int
}

type OpenAIClient struct {
	client    *openai.Client
	model     string
	maxTokens int
}

func NewOpenAIClient(opts Options) *OpenAIClient {
	clientConfig := openai.DefaultConfig(opts.APIKey)
	if opts.BaseURL != "" {
		clientConfig.BaseURL = opts.BaseURL
	}

	maxTokens := opts.MaxCompletionTokens
	if maxTokens <= 0 {
		maxTokens = DefaultMaxCompletionTokens
	}

	return &OpenAIClient{
		client:    openai.NewClientWithConfig(clientConfig),
		model:     opts.Model,
		maxTokens: maxTokens,
	}
}

func (c *OpenAIClient) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxCompletionTokens: c.maxTokens,
	})
	if err != nil {
		log.Println("[ai] OpenAI error:", err)
		return "", err
	}

	if len(resp.Choices) == 0 {
		log.Println("[ai] empty choices")
		return "", ErrEmptyResponse
	}

	content := resp.Choices[0].Message.Content
	log.Printf("[ai] %s returned %d bytes (%d completion tokens)", c.model, len(content), resp.Usage.CompletionTokens)
	return content, nil
}
