package inference

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/anthropics/anthropic-sdk-go/packages/param"
)

const defaultAnthropicModel = "claude-sonnet-4-20250514"

// AnthropicClient implements Client on the Anthropic SDK. Structured output
// is requested through the prompt and checked against the contract after
// the fact; artifact URLs are passed as prompt references.
type AnthropicClient struct {
	client *anthropic.Client
	model  string
}

func NewAnthropicClient(cfg Config) (*AnthropicClient, error) {
	if cfg.AnthropicAPIKey == "" {
		return nil, fmt.Errorf("anthropic API key is required")
	}

	client := anthropic.NewClient(
		option.WithAPIKey(cfg.AnthropicAPIKey),
	)

	model := cfg.AnthropicModel
	if model == "" {
		model = defaultAnthropicModel
	}

	return &AnthropicClient{client: &client, model: model}, nil
}

func (c *AnthropicClient) Invoke(ctx context.Context, req Request) (*Result, error) {
	if strings.TrimSpace(req.Prompt) == "" {
		return nil, MalformedResponse(fmt.Errorf("empty prompt"))
	}

	prompt := req.Prompt
	for _, url := range req.Artifacts {
		prompt += "\n\nInput image: " + url
	}
	if req.Schema != nil {
		def, err := json.Marshal(req.Schema.Definition)
		if err != nil {
			return nil, MalformedResponse(fmt.Errorf("marshal contract: %w", err))
		}
		prompt += "\n\nRespond with a single JSON object conforming to this JSON Schema, and nothing else:\n" + string(def)
	}

	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(c.model),
		MaxTokens:   8192,
		Temperature: param.NewOpt(0.7),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	}

	msg, err := c.client.Messages.New(ctx, params)
	if err != nil {
		return nil, mapAnthropicError(err)
	}

	var text string
	for _, block := range msg.Content {
		if block.Type == "text" {
			text = block.Text
			break
		}
	}
	if text == "" {
		return nil, MalformedResponse(fmt.Errorf("no text content in response"))
	}

	var content json.RawMessage
	if req.Schema != nil {
		content = json.RawMessage(stripCodeFences(text))
		if err := validateResponse(req.Schema, content); err != nil {
			return nil, err
		}
	} else {
		content, _ = json.Marshal(text)
	}

	return &Result{
		Content: content,
		Model:   string(msg.Model),
		Usage: Usage{
			InputTokens:  int(msg.Usage.InputTokens),
			OutputTokens: int(msg.Usage.OutputTokens),
		},
	}, nil
}

func (c *AnthropicClient) ModelID() string { return c.model }

// stripCodeFences removes a markdown ```json wrapper the model sometimes
// adds around structured output.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```json") {
		s = strings.TrimSpace(strings.TrimPrefix(s, "```json"))
	} else if strings.HasPrefix(s, "```") {
		s = strings.TrimSpace(strings.TrimPrefix(s, "```"))
	}
	if strings.HasSuffix(s, "```") {
		s = strings.TrimSpace(strings.TrimSuffix(s, "```"))
	}
	return s
}

func mapAnthropicError(err error) error {
	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) {
		if apiErr.StatusCode == http.StatusBadRequest {
			return MalformedResponse(err)
		}
	}
	return ServiceUnavailable(err)
}
