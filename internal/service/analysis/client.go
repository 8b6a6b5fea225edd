package analysis

import (
	"context"
	"fmt"
	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"job-traveler/internal/config"
	"job-traveler/internal/service/traveler"
	"job-traveler/internal/storage"
	"strings"
	"time"
)

const (
	defaultModel     = "claude-sonnet-4-20250514"
	defaultMaxTokens = 2000
	defaultTimeout   = 60 * time.Second
)

// Client sends traveler reports to the Anthropic Messages API and returns the
// narrative text untouched.
type Client struct {
	client    anthropic.Client
	model     string
	maxTokens int64
	timeout   time.Duration
	hasKey    bool
}

func NewClient(cfg config.Analysis) *Client {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		// retry policy belongs to the caller
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	c := &Client{
		client:    anthropic.NewClient(opts...),
		model:     cfg.Model,
		maxTokens: cfg.MaxTokens,
		timeout:   cfg.Timeout,
		hasKey:    cfg.APIKey != "",
	}
	if c.model == "" {
		c.model = defaultModel
	}
	if c.maxTokens <= 0 {
		c.maxTokens = defaultMaxTokens
	}
	if c.timeout <= 0 {
		c.timeout = defaultTimeout
	}

	return c
}

func (c *Client) Analyze(ctx context.Context, report *storage.Report) (string, error) {
	const op = "service.analysis.Analyze"

	if !c.hasKey {
		return "", fmt.Errorf("%s: %w: anthropic api key is not configured", op, traveler.ErrUpstream)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: c.maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(BuildPrompt(report))),
		},
	})
	if err != nil {
		return "", fmt.Errorf("%s: %w: %w", op, traveler.ErrUpstream, err)
	}

	var text strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}

	if text.Len() == 0 {
		return "", fmt.Errorf("%s: %w: empty response from model %s", op, traveler.ErrUpstream, c.model)
	}

	return text.String(), nil
}
