package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"health-wheel/config"

	"github.com/sirupsen/logrus"
)

var (
	ErrNotConfigured = errors.New("LLM API key is not configured")
	ErrNoChoices     = errors.New("LLM response contained no choices")
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Completer generates text for a single user message.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// StatusError is a non-2xx answer of the completion endpoint.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("llm: status %d: %s", e.StatusCode, e.Body)
}

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature *float64  `json:"temperature,omitempty"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
}

type ChatResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Index   int     `json:"index"`
		Message Message `json:"message"`
	} `json:"choices"`
}

// ChatClient talks to an OpenAI compatible chat-completion endpoint
// (Mistral by default).
type ChatClient struct {
	endpoint    string
	apiKey      string
	model       string
	temperature *float64
	maxTokens   int
	http        HTTPClient
	log         *logrus.Logger
}

func NewChatClient(cfg config.LLMConfig, httpClient HTTPClient, log *logrus.Logger) *ChatClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &ChatClient{
		endpoint:    chatEndpoint(cfg.BaseURL),
		apiKey:      strings.TrimSpace(cfg.APIKey),
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		http:        httpClient,
		log:         log,
	}
}

// Complete sends prompt as a single-turn conversation and returns the first
// choice's content as is.
func (c *ChatClient) Complete(ctx context.Context, prompt string) (string, error) {
	if c.apiKey == "" {
		return "", ErrNotConfigured
	}

	payload, err := json.Marshal(ChatRequest{
		Model:       c.model,
		Messages:    []Message{{Role: "user", Content: prompt}},
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("llm: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("llm: request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.log.Warnf("LLM API error: status=%d body=%s", resp.StatusCode, strings.TrimSpace(string(b)))
		return "", &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(b))}
	}

	var cc ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&cc); err != nil {
		return "", fmt.Errorf("llm: decode response: %w", err)
	}
	if len(cc.Choices) == 0 {
		return "", ErrNoChoices
	}
	return cc.Choices[0].Message.Content, nil
}

// Ping checks connectivity with a trivial prompt.
func (c *ChatClient) Ping(ctx context.Context) (string, error) {
	return c.Complete(ctx, "Hello")
}

func (c *ChatClient) Model() string {
	return c.model
}

func chatEndpoint(base string) string {
	endpoint := strings.TrimRight(strings.TrimSpace(base), "/")
	if endpoint == "" {
		endpoint = "https://api.mistral.ai/v1"
	}
	if strings.HasSuffix(endpoint, "/chat/completions") {
		return endpoint
	}
	return endpoint + "/chat/completions"
}
