package llm

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"
	"golang.org/x/time/rate"
	"google.golang.org/genai"

	"github.com/atriumhq/atrium/internal/config"
)

// Client is the Genkit-backed Generator implementation.
type Client struct {
	g           *genkit.Genkit
	modelName   string
	temperature float32
	maxTokens   int
	limiter     *rate.Limiter
	logger      *slog.Logger
}

// NewClient builds a Client for the configured provider. The rate limiter
// keeps burst traffic from a busy chat session inside free-tier quotas.
func NewClient(g *genkit.Genkit, cfg *config.Config, logger *slog.Logger) *Client {
	prefix := "googleai/"
	if cfg.Provider == config.ProviderOllama {
		prefix = "ollama/"
	}
	return &Client{
		g:           g,
		modelName:   prefix + cfg.ModelName,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		limiter:     rate.NewLimiter(rate.Limit(2), 4),
		logger:      logger.With("component", "llm"),
	}
}

// Complete generates a reply to prompt, carrying the prior history turns
// and the given system prompt. Failures are wrapped in ErrUnavailable so
// callers can degrade uniformly.
func (c *Client) Complete(ctx context.Context, system, prompt string, history []Message) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	messages := make([]*ai.Message, 0, len(history)+1)
	for _, m := range history {
		part := ai.NewTextPart(m.Content)
		if m.Role == RoleModel {
			messages = append(messages, ai.NewModelMessage(part))
		} else {
			messages = append(messages, ai.NewUserMessage(part))
		}
	}
	messages = append(messages, ai.NewUserMessage(ai.NewTextPart(prompt)))

	resp, err := genkit.Generate(ctx, c.g,
		ai.WithModelName(c.modelName),
		ai.WithSystem(system),
		ai.WithMessages(messages...),
		ai.WithConfig(&genai.GenerateContentConfig{
			Temperature:     genai.Ptr(c.temperature),
			MaxOutputTokens: int32(c.maxTokens),
		}),
	)
	if err != nil {
		c.logger.Warn("generation failed", "model", c.modelName, "error", err)
		return "", fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	text := resp.Text()
	if text == "" {
		return "", ErrEmptyOutput
	}
	return text, nil
}
