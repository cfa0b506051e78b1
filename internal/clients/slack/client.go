package slack

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"standup-relay/internal/config"
	"standup-relay/internal/observability"

	"github.com/slack-go/slack"
)

var (
	ErrBotNotConfigured     = errors.New("slack bot token not configured")
	ErrWebhookNotConfigured = errors.New("slack webhook url not configured")
	ErrNoDMChannel          = errors.New("could not open direct message channel")
)

// Client wraps the Slack Web API (bot token) and an incoming webhook.
// Either transport may be absent.
type Client struct {
	api        *slack.Client
	webhookURL string
	httpClient *http.Client
	logger     *observability.Logger
}

// NewClient creates a Slack client from configuration
func NewClient(cfg config.ChatConfig, logger *observability.Logger) *Client {
	httpClient := &http.Client{Timeout: cfg.Timeout}

	c := &Client{
		webhookURL: cfg.WebhookURL,
		httpClient: httpClient,
		logger:     logger,
	}
	if cfg.BotToken != "" {
		c.api = slack.New(cfg.BotToken,
			slack.OptionHTTPClient(httpClient),
			slack.OptionAPIURL(cfg.APIURL),
		)
	}
	return c
}

// HasBotToken reports whether Web API calls are possible
func (c *Client) HasBotToken() bool {
	return c.api != nil
}

// HasWebhook reports whether an incoming webhook is configured
func (c *Client) HasWebhook() bool {
	return c.webhookURL != ""
}

// OpenDM opens, or reuses, the direct message channel with a user.
func (c *Client) OpenDM(ctx context.Context, userID string) (string, error) {
	if c.api == nil {
		return "", ErrBotNotConfigured
	}

	channel, _, _, err := c.api.OpenConversationContext(ctx, &slack.OpenConversationParameters{
		Users: []string{userID},
	})
	if err != nil {
		return "", fmt.Errorf("failed to open conversation: %w", err)
	}
	if channel == nil || channel.ID == "" {
		return "", ErrNoDMChannel
	}
	return channel.ID, nil
}

// PostMessage posts plain text to a channel.
func (c *Client) PostMessage(ctx context.Context, channelID, text string) error {
	if c.api == nil {
		return ErrBotNotConfigured
	}

	if _, _, err := c.api.PostMessageContext(ctx, channelID, slack.MsgOptionText(text, false)); err != nil {
		return fmt.Errorf("failed to post message: %w", err)
	}
	return nil
}

// PostWebhook sends text to the configured incoming webhook.
func (c *Client) PostWebhook(ctx context.Context, text string) error {
	if c.webhookURL == "" {
		return ErrWebhookNotConfigured
	}

	if err := slack.PostWebhookCustomHTTPContext(ctx, c.webhookURL, c.httpClient, &slack.WebhookMessage{Text: text}); err != nil {
		return fmt.Errorf("failed to post webhook: %w", err)
	}
	return nil
}

// GetDisplayName returns the user's display name, falling back to the real
// name. An empty string means Slack knows neither.
func (c *Client) GetDisplayName(ctx context.Context, userID string) (string, error) {
	if c.api == nil {
		return "", ErrBotNotConfigured
	}

	user, err := c.api.GetUserInfoContext(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("failed to get user info: %w", err)
	}
	if user.Profile.DisplayName != "" {
		return user.Profile.DisplayName, nil
	}
	if user.Profile.RealName != "" {
		return user.Profile.RealName, nil
	}
	return user.RealName, nil
}
