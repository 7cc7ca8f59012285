// Package llm provides the completion-service client used to generate
// and review masterplans. The provider is treated as an opaque
// text-completion service; all provider failures surface as a single
// UpstreamServiceError.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/producthouse/producthouse/internal/domain"
)

// Role identifies the author of a conversation message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one turn of the conversation sent to the completion
// service.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// CompleteRequest holds the parameters for a completion call.
type CompleteRequest struct {
	Messages    []Message
	System      string
	MaxTokens   int      // 0 uses the configured default
	Temperature *float64 // nil uses the configured default
}

// CompleteResponse holds the result of a completion call.
type CompleteResponse struct {
	ID         string
	Content    string
	Model      string
	StopReason string
	LatencyMs  int64
}

// Client provides access to the completion service.
type Client interface {
	// Complete sends a conversation and returns the model's text reply.
	Complete(ctx context.Context, req CompleteRequest) (*CompleteResponse, error)

	// GenerateMasterplan asks the model to produce a Markdown masterplan
	// from a conversation transcript. An empty systemPrompt falls back
	// to the default template's prompt, which enumerates the ten
	// standard sections.
	GenerateMasterplan(ctx context.Context, messages []Message, systemPrompt string) (string, error)
}

// Config holds completion-service settings.
type Config struct {
	Endpoint    string
	APIKey      string
	Model       string
	MaxTokens   int
	Temperature float64
	TimeoutMs   int
	LogCalls    bool
}

// DefaultConfig returns a Config with sensible defaults. The API key
// must come from configuration.
func DefaultConfig() Config {
	return Config{
		Endpoint:    "https://api.anthropic.com",
		Model:       "claude-3-opus-20240229",
		MaxTokens:   4000,
		Temperature: 0.7,
		TimeoutMs:   60000,
	}
}

const apiVersion = "2023-06-01"

// client implements Client against an Anthropic-compatible messages API.
type client struct {
	cfg      Config
	http     *http.Client
	observer Observer
}

// NewClient creates a Client for the configured provider.
func NewClient(cfg Config, observer Observer) Client {
	if observer == nil {
		observer = NoopObserver{}
	}
	return &client{
		cfg:      cfg,
		http:     &http.Client{},
		observer: observer,
	}
}

// messagesRequest is the JSON body sent to POST /v1/messages.
type messagesRequest struct {
	Model       string    `json:"model"`
	MaxTokens   int       `json:"max_tokens"`
	Temperature float64   `json:"temperature"`
	System      string    `json:"system,omitempty"`
	Messages    []Message `json:"messages"`
}

// messagesResponse is the JSON body returned by POST /v1/messages.
type messagesResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	StopReason string `json:"stop_reason"`
	Error      *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

func (c *client) Complete(ctx context.Context, req CompleteRequest) (*CompleteResponse, error) {
	start := time.Now()

	maxTokens := c.cfg.MaxTokens
	if req.MaxTokens > 0 {
		maxTokens = req.MaxTokens
	}
	temp := c.cfg.Temperature
	if req.Temperature != nil {
		temp = *req.Temperature
	}

	// The configured timeout is the only suspension point; there is no
	// automatic retry. A transient failure requires explicit re-action
	// by the user.
	ctx, cancel := context.WithTimeout(ctx, time.Duration(c.cfg.TimeoutMs)*time.Millisecond)
	defer cancel()

	body := messagesRequest{
		Model:       c.cfg.Model,
		MaxTokens:   maxTokens,
		Temperature: temp,
		System:      req.System,
		Messages:    req.Messages,
	}

	resp, err := c.doRequest(ctx, body)
	latency := time.Since(start).Milliseconds()
	if err != nil {
		c.observer.OnCallComplete(CallEvent{
			Model:     c.cfg.Model,
			LatencyMs: latency,
			Success:   false,
			Error:     err.Error(),
		})
		return nil, err
	}

	c.observer.OnCallComplete(CallEvent{
		Model:     resp.Model,
		LatencyMs: latency,
		Success:   true,
	})

	var text bytes.Buffer
	for _, block := range resp.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}

	return &CompleteResponse{
		ID:         resp.ID,
		Content:    text.String(),
		Model:      resp.Model,
		StopReason: resp.StopReason,
		LatencyMs:  latency,
	}, nil
}

func (c *client) GenerateMasterplan(ctx context.Context, messages []Message, systemPrompt string) (string, error) {
	if systemPrompt == "" {
		tpl, err := domain.TemplateByID(domain.DefaultTemplateID)
		if err != nil {
			return "", err
		}
		systemPrompt = tpl.SystemPrompt
	}

	resp, err := c.Complete(ctx, CompleteRequest{
		Messages: messages,
		System:   systemPrompt,
	})
	if err != nil {
		return "", err
	}
	return resp.Content, nil
}

func (c *client) doRequest(ctx context.Context, body messagesRequest) (*messagesResponse, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	url := c.cfg.Endpoint + "/v1/messages"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-api-key", c.cfg.APIKey)
	httpReq.Header.Set("anthropic-version", apiVersion)

	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, &UpstreamServiceError{Message: err.Error()}
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, &UpstreamServiceError{StatusCode: httpResp.StatusCode, Message: err.Error()}
	}

	var resp messagesResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, &UpstreamServiceError{StatusCode: httpResp.StatusCode, Message: fmt.Sprintf("decoding response: %v", err)}
	}

	if httpResp.StatusCode != http.StatusOK {
		msg := string(respBody)
		if resp.Error != nil {
			msg = resp.Error.Message
		}
		return nil, &UpstreamServiceError{StatusCode: httpResp.StatusCode, Message: msg}
	}

	return &resp, nil
}
