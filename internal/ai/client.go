// Package ai wraps the OpenAI Responses API behind a small text
// generation client.
package ai

import (
	"context"
	"errors"
	"fmt"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/packages/param"
	"github.com/openai/openai-go/v3/responses"
)

const defaultModel = "gpt-4o-mini"

// Client generates text with a fixed model and system instructions.
type Client struct {
	model        string
	instructions string
	sdk          openai.Client
}

// New builds a Client. The API key is required; model falls back to a
// sensible default when empty.
func New(apiKey, model, instructions string) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New("ai: API key is required")
	}
	if model == "" {
		model = defaultModel
	}
	return &Client{
		model:        model,
		instructions: instructions,
		sdk:          openai.NewClient(option.WithAPIKey(apiKey)),
	}, nil
}

// Generate sends one prompt and returns the model's full text output.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	req := responses.ResponseNewParams{
		Model:        c.model,
		Instructions: param.NewOpt(c.instructions),
		Input: responses.ResponseNewParamsInputUnion{
			OfString: param.NewOpt(prompt),
		},
	}

	res, err := c.sdk.Responses.New(ctx, req)
	if err != nil {
		return "", fmt.Errorf("ai: response request failed: %w", err)
	}

	text := res.OutputText()
	if text == "" {
		return "", errors.New("ai: model returned empty output")
	}
	return text, nil
}
