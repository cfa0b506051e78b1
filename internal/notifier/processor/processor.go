//go:generate go run go.uber.org/mock/mockgen@latest -source=processor.go -destination=mocks_test.go -package=processor

package processor

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"standup-relay/internal/observability"
)

var (
	ErrEmptyMessage  = errors.New("message is required")
	ErrNotConfigured = errors.New("slack webhook not configured")
)

// RecordedMessage is sent to a member once their standup is stored.
const RecordedMessage = "Your standup has been recorded! Your team lead will see the summary shortly."

// ChatClient is the Slack surface the notifier needs
type ChatClient interface {
	HasBotToken() bool
	HasWebhook() bool
	OpenDM(ctx context.Context, userID string) (string, error)
	PostMessage(ctx context.Context, channelID, text string) error
	PostWebhook(ctx context.Context, text string) error
}

// NotifierProcessor delivers chat messages. Delivery is best-effort: every
// failure is logged and none is returned to the caller.
type NotifierProcessor struct {
	chat   ChatClient
	logger *observability.Logger
}

func New(chat ChatClient, logger *observability.Logger) *NotifierProcessor {
	return &NotifierProcessor{chat: chat, logger: logger}
}

// NotifyUser messages a member directly when a bot token is configured and
// otherwise mentions them in the webhook channel.
func (p *NotifierProcessor) NotifyUser(ctx context.Context, userID, text string) {
	ctx = observability.WithFields(ctx, observability.Field{Key: "user_id", Value: userID})

	switch {
	case p.chat.HasBotToken():
		p.SendDM(ctx, userID, text)
	case p.chat.HasWebhook():
		p.PostChannel(ctx, fmt.Sprintf("<@%s> %s", userID, text))
	default:
		p.logger.Warn(ctx, "no slack transport configured, skipping notification")
	}
}

// SendDM opens or reuses the DM channel with a member and posts text. It
// reports whether the message was delivered.
func (p *NotifierProcessor) SendDM(ctx context.Context, userID, text string) bool {
	channelID, err := p.chat.OpenDM(ctx, userID)
	if err != nil {
		p.logger.Error(ctx, "could not open DM", err)
		return false
	}

	ctx = observability.WithFields(ctx, observability.Field{Key: "channel_id", Value: channelID})
	if err := p.chat.PostMessage(ctx, channelID, text); err != nil {
		p.logger.Error(ctx, "failed to deliver DM", err)
		return false
	}
	p.logger.Info(ctx, "DM delivered")
	return true
}

// PostChannel posts text through the incoming webhook.
func (p *NotifierProcessor) PostChannel(ctx context.Context, text string) {
	if err := p.chat.PostWebhook(ctx, text); err != nil {
		p.logger.Error(ctx, "failed to post to slack webhook", err)
		return
	}
	p.logger.Info(ctx, "webhook message delivered")
}

// Relay forwards an arbitrary message verbatim to the webhook channel. Only
// missing input or configuration is reported; delivery stays best-effort.
func (p *NotifierProcessor) Relay(ctx context.Context, message string) error {
	if strings.TrimSpace(message) == "" {
		return ErrEmptyMessage
	}
	if !p.chat.HasWebhook() {
		return ErrNotConfigured
	}

	p.PostChannel(ctx, message)
	return nil
}
