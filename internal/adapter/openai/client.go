// Package openai adapts the OpenAI chat-completions API to the planner's
// typonym-generation and summarization collaborator interfaces.
package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/couchcryptid/sar-mission-planner/internal/observability"
	openai "github.com/sashabaranov/go-openai"
)

const variantPrompt = `Generate alternative location names that are geographically related to %q,
suitable for a weather API that may not recognize very specific places.
Order them from most specific to most general.
Return ONLY a comma-separated list, no explanation.

Example input: Crystal Cove State Park, CA
Example output: Crystal Cove, Newport Beach, CA, Orange County, CA, California`

const summaryPrompt = `You are assisting a Planning Section Chief in a search and rescue operation.
Summarize the following structured planning document for emergency response
personnel: state the incident, the key prioritized search areas with their
rationale, the resource allocation, and current weather. Be concise and
professional.

%s`

// Client implements domain.VariantGenerator and planner.Summarizer.
// Generation parameters (temperature, token cap) are provider configuration
// passed through from the caller, not planning concerns.
type Client struct {
	client      *openai.Client
	model       string
	temperature float32
	maxTokens   int
	logger      *slog.Logger
	metrics     *observability.Metrics
}

// NewClient creates an OpenAI-backed collaborator client. Each completion
// call is bounded by timeout so a stalled endpoint cannot hold a planning
// request open.
func NewClient(apiKey, model string, temperature float32, maxTokens int, timeout time.Duration, logger *slog.Logger, metrics *observability.Metrics) *Client {
	return &Client{
		client:      openai.NewClientWithConfig(newConfig(apiKey, timeout)),
		model:       model,
		temperature: temperature,
		maxTokens:   maxTokens,
		logger:      logger,
		metrics:     metrics,
	}
}

// GenerateVariants asks the model for alternate place names. Failures and
// unusable output surface as errors; the caller degrades to deterministic
// fallback transforms.
func (c *Client) GenerateVariants(ctx context.Context, name string) ([]string, error) {
	content, err := c.complete(ctx, fmt.Sprintf(variantPrompt, name))
	if err != nil {
		c.metrics.TyponymRequests.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("generate variants: %w", err)
	}

	variants := splitVariants(content)
	if len(variants) == 0 {
		c.metrics.TyponymRequests.WithLabelValues("empty").Inc()
		return nil, fmt.Errorf("generate variants: model returned no usable names")
	}

	c.metrics.TyponymRequests.WithLabelValues("success").Inc()
	c.logger.Debug("typonym variants generated", "location", name, "count", len(variants))
	return variants, nil
}

// Summarize renders the structured document as JSON and asks the model for an
// advisory summary.
func (c *Client) Summarize(ctx context.Context, doc any) (string, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal document for summary: %w", err)
	}

	text, err := c.complete(ctx, fmt.Sprintf(summaryPrompt, data))
	if err != nil {
		return "", fmt.Errorf("summarize: %w", err)
	}
	return strings.TrimSpace(text), nil
}

// newConfig builds the SDK config with the per-call timeout on its HTTP
// client, mirroring the bound the weather and mapbox adapters carry.
func newConfig(apiKey string, timeout time.Duration) openai.ClientConfig {
	cfg := openai.DefaultConfig(apiKey)
	cfg.HTTPClient = &http.Client{Timeout: timeout}
	return cfg
}

func (c *Client) complete(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices returned")
	}
	return resp.Choices[0].Message.Content, nil
}

// splitVariants parses the comma-separated model output, tolerating newlines
// and list bullets.
func splitVariants(content string) []string {
	fields := strings.FieldsFunc(content, func(r rune) bool {
		return r == ',' || r == '\n'
	})
	variants := make([]string, 0, len(fields))
	for _, f := range fields {
		v := strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(f), "-*• "))
		if v != "" {
			variants = append(variants, v)
		}
	}
	return variants
}
