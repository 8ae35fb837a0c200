package learnhub

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// TextGenerator turns a prompt into generated text
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// OpenAIGenerator generates text through the chat completions API. Any
// OpenAI-compatible endpoint works when BaseURL is set.
type OpenAIGenerator struct {
	client *openai.Client
	model  string
}

// NewOpenAIGenerator creates a generator for the given key, model and optional base URL
func NewOpenAIGenerator(apiKey, model, baseURL string) *OpenAIGenerator {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if model == "" {
		model = openai.GPT4oMini
	}
	return &OpenAIGenerator{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

// Generate sends prompt as a single user message and returns the first choice
func (g *OpenAIGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: g.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: "You are an expert teacher who writes accurate, well organised learning material.",
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
		},
	)
	if err != nil {
		return "", fmt.Errorf("failed to generate text: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from %s", g.model)
	}
	return resp.Choices[0].Message.Content, nil
}

// generate runs one prompt through gen and records the exchange in the transcript
func generate(ctx context.Context, gen TextGenerator, transcript *LLMLogger, module, prompt string) (string, error) {
	transcript.LogLLMRequest(module, prompt)
	text, err := gen.Generate(ctx, prompt)
	if err != nil {
		transcript.LogLLMError(module, err)
		return "", err
	}
	transcript.LogLLMResponse(module, text)
	return text, nil
}
