package ai

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sashabaranov/go-openai"

	"github.com/calmworks/breathcheck/internal/secrets"
	"github.com/calmworks/breathcheck/pkg/types"
)

// DefaultModel is used when the configuration does not name one.
const DefaultModel = "gpt-5.2"

// keyUser is the keyring account name the API key is stored under.
const keyUser = "default"

// systemPrompt frames every request. The assistant must stay supportive
// and never diagnose.
const systemPrompt = "You are a supportive, professional mental health assistant. " +
	"Avoid diagnosis. Provide actionable, gentle insights."

// Request deadlines. Key validation is a cheap list call; generation and
// streaming get progressively more room.
const (
	validateTimeout = 6 * time.Second
	generateTimeout = 20 * time.Second
	streamTimeout   = 40 * time.Second
)

const temperature = 0.4

// Client is the OpenAI-backed Generator. The API key resolves per call:
// an explicit key from configuration wins, otherwise the system keyring is
// consulted under the app's service name.
type Client struct {
	app    string
	apiKey string
	store  secrets.Store
	model  string
	log    *slog.Logger
}

var _ Generator = (*Client)(nil)

// NewClient builds a Client. apiKey may be empty, in which case the key
// comes from the keyring. An empty model selects DefaultModel.
func NewClient(app, apiKey string, store secrets.Store, model string, logger *slog.Logger) *Client {
	if model == "" {
		model = DefaultModel
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{app: app, apiKey: apiKey, store: store, model: model, log: logger}
}

// Model returns the model name requests are sent with.
func (c *Client) Model() string {
	return c.model
}

func (c *Client) resolveKey() string {
	if c.apiKey != "" {
		return c.apiKey
	}
	key, err := c.store.Get(c.app, keyUser)
	if err != nil {
		return ""
	}
	return key
}

// Configured reports whether an API key is available.
func (c *Client) Configured() bool {
	return c.resolveKey() != ""
}

// SaveKey stores the API key in the keyring under the app's service name.
func (c *Client) SaveKey(key string) error {
	if err := c.store.Set(c.app, keyUser, key); err != nil {
		return fmt.Errorf("storing API key: %w", err)
	}
	return nil
}

// ClearKey removes the stored API key. A missing entry is not an error.
func (c *Client) ClearKey() error {
	err := c.store.Delete(c.app, keyUser)
	if err != nil && !errors.Is(err, types.ErrSecretNotFound) {
		return fmt.Errorf("removing API key: %w", err)
	}
	return nil
}

// ValidateKey checks the key by listing models. The returned message is
// shown to the user verbatim.
func (c *Client) ValidateKey(ctx context.Context) (bool, string) {
	key := c.resolveKey()
	if key == "" {
		return false, "No API key found."
	}

	ctx, cancel := context.WithTimeout(ctx, validateTimeout)
	defer cancel()

	client := openai.NewClient(key)
	if _, err := client.ListModels(ctx); err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			return false, fmt.Sprintf("API check failed: HTTP %d", apiErr.HTTPStatusCode)
		}
		return false, fmt.Sprintf("API check failed: %v", err)
	}
	return true, "API key is valid."
}

// Generate runs one chat completion and returns the trimmed text.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	key := c.resolveKey()
	if key == "" {
		return "", types.ErrNoAPIKey
	}

	ctx, cancel := context.WithTimeout(ctx, generateTimeout)
	defer cancel()

	requestID := uuid.NewString()
	c.log.Info("generating insights", "request_id", requestID, "model", c.model)

	client := openai.NewClient(key)
	resp, err := client.CreateChatCompletion(ctx, c.chatRequest(prompt, false))
	if err != nil {
		c.log.Error("AI request failed", "request_id", requestID, "error", err)
		return "", fmt.Errorf("%w: %v", types.ErrGenerationFailed, err)
	}
	if len(resp.Choices) == 0 {
		c.log.Error("AI request returned no choices", "request_id", requestID)
		return "", fmt.Errorf("%w: empty response", types.ErrGenerationFailed)
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// Stream runs one streaming chat completion, forwarding each token to fn.
func (c *Client) Stream(ctx context.Context, prompt string, fn func(token string) error) error {
	key := c.resolveKey()
	if key == "" {
		return types.ErrNoAPIKey
	}

	ctx, cancel := context.WithTimeout(ctx, streamTimeout)
	defer cancel()

	requestID := uuid.NewString()
	c.log.Info("streaming feedback", "request_id", requestID, "model", c.model)

	client := openai.NewClient(key)
	stream, err := client.CreateChatCompletionStream(ctx, c.chatRequest(prompt, true))
	if err != nil {
		c.log.Error("streaming AI request failed", "request_id", requestID, "error", err)
		return fmt.Errorf("%w: %v", types.ErrGenerationFailed, err)
	}
	defer stream.Close()

	for {
		chunk, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			c.log.Error("streaming AI request failed", "request_id", requestID, "error", err)
			return fmt.Errorf("%w: %v", types.ErrGenerationFailed, err)
		}
		if len(chunk.Choices) == 0 {
			continue
		}
		if token := chunk.Choices[0].Delta.Content; token != "" {
			if err := fn(token); err != nil {
				return err
			}
		}
	}
}

func (c *Client) chatRequest(prompt string, stream bool) openai.ChatCompletionRequest {
	return openai.ChatCompletionRequest{
		Model:       c.model,
		Stream:      stream,
		Temperature: temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	}
}
