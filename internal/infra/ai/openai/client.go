package openai

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/sashabaranov/go-openai"

	"github.com/karnakar5511/query-insights/internal/domain/ai"
)

const defaultModel = "gpt-4o-mini"

// Client is the alternative generative provider, selected with
// ai.provider: openai in the config.
type Client struct {
	*openai.Client
	Model string
}

func NewClient(apiKey, model string) *Client {
	if model == "" {
		model = defaultModel
	}
	return &Client{Client: openai.NewClient(apiKey), Model: model}
}

func (c *Client) Generate(ctx context.Context, prompt string) (ai.Generation, error) {
	resp, err := c.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		upstream := &ai.UpstreamError{Provider: "openai", Err: err}
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			upstream.Status = apiErr.HTTPStatusCode
			upstream.Detail = apiErr.Message
			upstream.Err = nil
		}
		return ai.Generation{}, upstream
	}

	raw, _ := json.Marshal(resp)
	if len(resp.Choices) == 0 {
		return ai.Generation{Text: ai.FallbackText, Raw: raw}, nil
	}
	return ai.Generation{Text: resp.Choices[0].Message.Content, Raw: raw}, nil
}
