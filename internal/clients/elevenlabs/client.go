package elevenlabs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"standup-relay/internal/config"
	"standup-relay/internal/observability"
)

// maxErrorBody caps how much of a failed response body is kept for logs.
const maxErrorBody = 4096

var ErrMissingSignedURL = errors.New("vendor response missing signed_url")

// APIError is returned when the vendor answers with a non-2xx status.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("elevenlabs API error: status %d: %s", e.StatusCode, e.Body)
}

// TranscriptEntry is one turn of a finished conversation. Role and Message
// are pointers so absent and null fields can be told apart from empty ones.
type TranscriptEntry struct {
	Role    *string `json:"role"`
	Message *string `json:"message"`
}

// Conversation is the subset of the conversation details the relay reads.
type Conversation struct {
	ConversationID string            `json:"conversation_id"`
	AgentID        string            `json:"agent_id"`
	Status         string            `json:"status"`
	Transcript     []TranscriptEntry `json:"transcript"`
}

type signedURLResponse struct {
	SignedURL string `json:"signed_url"`
}

// Client talks to the ElevenLabs Conversational AI REST API
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	logger     *observability.Logger
}

// NewClient creates a vendor client from configuration
func NewClient(cfg config.VendorConfig, logger *observability.Logger) *Client {
	return &Client{
		apiKey:  cfg.APIKey,
		baseURL: cfg.BaseURL,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: logger,
	}
}

// GetSignedURL requests a short-lived session URL for the agent.
func (c *Client) GetSignedURL(ctx context.Context, agentID string) (string, error) {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "vendor", Value: "elevenlabs"},
		observability.Field{Key: "agent_id", Value: agentID},
	)

	endpoint := fmt.Sprintf("%s/convai/conversation/get-signed-url?%s",
		c.baseURL, url.Values{"agent_id": {agentID}}.Encode())

	var resp signedURLResponse
	if err := c.get(ctx, endpoint, &resp); err != nil {
		return "", err
	}
	if resp.SignedURL == "" {
		c.logger.Error(ctx, "signed url response was empty", ErrMissingSignedURL)
		return "", ErrMissingSignedURL
	}
	return resp.SignedURL, nil
}

// GetConversation fetches the details and transcript of a conversation.
func (c *Client) GetConversation(ctx context.Context, conversationID string) (Conversation, error) {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "vendor", Value: "elevenlabs"},
		observability.Field{Key: "conversation_id", Value: conversationID},
	)

	endpoint := fmt.Sprintf("%s/convai/conversations/%s", c.baseURL, url.PathEscape(conversationID))

	var conversation Conversation
	if err := c.get(ctx, endpoint, &conversation); err != nil {
		return Conversation{}, err
	}
	return conversation, nil
}

func (c *Client) get(ctx context.Context, endpoint string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		c.logger.Error(ctx, "failed to create elevenlabs request", err)
		return fmt.Errorf("failed to create elevenlabs request: %w", err)
	}
	req.Header.Set("xi-api-key", c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error(ctx, "failed to call elevenlabs API", err)
		return fmt.Errorf("failed to call elevenlabs API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		apiErr := &APIError{StatusCode: resp.StatusCode, Body: string(body)}
		c.logger.Error(ctx, "elevenlabs API returned an error", apiErr)
		return apiErr
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.logger.Error(ctx, "failed to parse elevenlabs response", err)
		return fmt.Errorf("failed to parse elevenlabs response: %w", err)
	}
	return nil
}
