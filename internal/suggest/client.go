// Package suggest calls an OpenAI-style chat completion API to produce a
// short suggestion for a task. Generation is best effort: every failure
// class degrades to a fixed fallback string instead of an error, so a
// provider outage can never fail the owning request.
package suggest

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// Reason classifies why a result is degraded.
type Reason string

const (
	ReasonNone              Reason = ""
	ReasonMissingCredential Reason = "missing_credential"
	ReasonProviderError     Reason = "provider_error"
	ReasonUnexpected        Reason = "unexpected"
)

// Fallback texts returned per failure class. Stored and served like any
// other suggestion; each failure class has a distinct string so a UI can
// tell degraded content apart.
const (
	fallbackUnavailable = "Optimize this task for better efficiency. (AI unavailable)"
	fallbackAPIError    = "Could not generate AI suggestion due to an API error."
	fallbackUnexpected  = "An unexpected error occurred while generating the suggestion."
)

const (
	defaultModel  = openai.GPT3Dot5Turbo
	maxTokens     = 50
	temperature   = 0.7
	systemMessage = "You are a helpful assistant providing task suggestions."
)

// Result is the outcome of one generation attempt. Text is always usable;
// Degraded marks fallback content and Reason says which failure produced it.
type Result struct {
	Text     string
	Degraded bool
	Reason   Reason
}

// Client generates task suggestions. The API key is read from keyFile on
// every call so the credential can be rotated without a restart.
type Client struct {
	keyFile string
	model   string
	baseURL string
	logger  *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the provider endpoint, mainly for tests.
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = url
	}
}

// New constructs a suggestion client reading its credential from keyFile.
func New(keyFile, model string, logger *slog.Logger, opts ...Option) *Client {
	if model == "" {
		model = defaultModel
	}
	if logger == nil {
		logger = slog.Default()
	}
	c := &Client{keyFile: keyFile, model: model, logger: logger}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Generate produces one short actionable suggestion for the task. It is a
// total function: any failure is converted into a degraded Result.
func (c *Client) Generate(ctx context.Context, title string, description *string) Result {
	key, ok := c.readKey()
	if !ok {
		return Result{Text: fallbackUnavailable, Degraded: true, Reason: ReasonMissingCredential}
	}

	cfg := openai.DefaultConfig(key)
	if c.baseURL != "" {
		cfg.BaseURL = c.baseURL
	}
	client := openai.NewClientWithConfig(cfg)

	resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemMessage},
			{Role: openai.ChatMessageRoleUser, Content: buildPrompt(title, description)},
		},
		MaxTokens:   maxTokens,
		N:           1,
		Temperature: temperature,
	})
	if err != nil {
		c.logger.Warn("suggestion provider call failed", slog.String("error", err.Error()))
		return Result{Text: fallbackAPIError, Degraded: true, Reason: ReasonProviderError}
	}

	if len(resp.Choices) == 0 {
		c.logger.Warn("suggestion provider returned no choices", slog.String("model", resp.Model))
		return Result{Text: fallbackUnexpected, Degraded: true, Reason: ReasonUnexpected}
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return Result{Text: fallbackUnexpected, Degraded: true, Reason: ReasonUnexpected}
	}
	return Result{Text: text}
}

// readKey loads the credential from the configured file. A missing,
// unreadable, or empty file means the provider is unavailable, never a
// crash.
func (c *Client) readKey() (string, bool) {
	if c.keyFile == "" {
		return "", false
	}
	data, err := os.ReadFile(c.keyFile)
	if err != nil {
		c.logger.Warn("unable to read API key file",
			slog.String("path", c.keyFile), slog.String("error", err.Error()))
		return "", false
	}
	key := strings.TrimSpace(string(data))
	if key == "" {
		c.logger.Warn("API key file is empty", slog.String("path", c.keyFile))
		return "", false
	}
	return key, true
}

func buildPrompt(title string, description *string) string {
	var sb strings.Builder
	sb.WriteString("Provide one short, actionable suggestion (less than 20 words) to improve or clarify the following task:\n")
	fmt.Fprintf(&sb, "Title: %s\n", title)
	if description != nil && *description != "" {
		fmt.Fprintf(&sb, "Description: %s\n", *description)
	}
	sb.WriteString("Suggestion:")
	return sb.String()
}
