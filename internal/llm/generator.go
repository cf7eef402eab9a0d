package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/rs/zerolog/log"
)

// Generator turns a natural-language question into a candidate SQL string via
// a single messages call. No retries; a transport or service failure fails the
// request.
type Generator struct {
	client      *anthropic.Client
	model       string
	maxTokens   int64
	temperature float64
}

// NewGenerator creates a generator backed by Anthropic or a messages-compatible
// provider reachable through baseURL.
func NewGenerator(apiKey, model, baseURL string, maxTokens int64, temperature float64) *Generator {
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	return &Generator{
		client:      anthropic.NewClient(opts...),
		model:       model,
		maxTokens:   maxTokens,
		temperature: temperature,
	}
}

// Model returns the configured model identifier.
func (g *Generator) Model() string {
	return g.model
}

// GenerateSQL sends the built prompt with fixed generation parameters and
// returns the cleaned SQL text. The result is untrusted; callers must run it
// through the keyword gate before execution.
func (g *Generator) GenerateSQL(ctx context.Context, question string) (string, error) {
	params := anthropic.MessageNewParams{
		Model:       anthropic.F(anthropic.Model(g.model)),
		MaxTokens:   anthropic.F(g.maxTokens),
		Temperature: anthropic.F(g.temperature),
		System: anthropic.F([]anthropic.TextBlockParam{
			anthropic.NewTextBlock(systemPrompt),
		}),
		Messages: anthropic.F([]anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(BuildPrompt(question))),
		}),
	}

	resp, err := g.client.Messages.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("LLM call failed: %w", err)
	}

	var text string
	for _, block := range resp.Content {
		if b, ok := block.AsUnion().(anthropic.TextBlock); ok {
			text += b.Text
		}
	}
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("model returned no text (stop_reason %s)", resp.StopReason)
	}

	sql := ExtractSQL(text)
	log.Debug().
		Str("model", g.model).
		Int("completion_len", len(text)).
		Int("sql_len", len(sql)).
		Msg("sql generated")

	return sql, nil
}
