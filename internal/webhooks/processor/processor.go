//go:generate go run go.uber.org/mock/mockgen@latest -source=processor.go -destination=mocks_test.go -package=processor

package processor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"standup-relay/internal/clients/elevenlabs"
	"standup-relay/internal/memory"
	notify "standup-relay/internal/notifier/processor"
	"standup-relay/internal/observability"
	"standup-relay/internal/store"
)

var (
	ErrInvalidPayload        = errors.New("invalid webhook payload")
	ErrMissingConversationID = errors.New("missing conversation_id in webhook payload")
	ErrSessionNotFound       = errors.New("no matching standup session found for today")
	ErrSessionLookup         = errors.New("failed to look up standup session")
	ErrVendor                = errors.New("failed to fetch conversation")
	ErrMarkCompleted         = errors.New("failed to mark standup completed")
)

const unknownRole = "unknown"

// EventPostCallTranscription is the only event type that completes a standup.
// Events without a type are treated as this one.
const EventPostCallTranscription = "post_call_transcription"

// SessionStore is the session backend used for correlation
type SessionStore interface {
	GetLatestPendingSession(ctx context.Context, date string) (store.StandupSession, error)
	MarkSessionCompleted(ctx context.Context, userID, date string) error
}

// ConversationFetcher loads finished conversations from the vendor
type ConversationFetcher interface {
	GetConversation(ctx context.Context, conversationID string) (elevenlabs.Conversation, error)
}

// TranscriptStore keeps the flattened transcript
type TranscriptStore interface {
	StoreTranscript(ctx context.Context, transcript memory.Transcript) error
}

// Notifier tells the member their standup was recorded. It never fails.
type Notifier interface {
	NotifyUser(ctx context.Context, userID, text string)
}

// WebhookProcessor correlates post-call events with standup sessions
type WebhookProcessor struct {
	sessions      SessionStore
	conversations ConversationFetcher
	transcripts   TranscriptStore
	notifier      Notifier
	location      *time.Location
	now           func() time.Time
	logger        *observability.Logger
}

func New(
	sessions SessionStore,
	conversations ConversationFetcher,
	transcripts TranscriptStore,
	notifier Notifier,
	location *time.Location,
	now func() time.Time,
	logger *observability.Logger,
) *WebhookProcessor {
	if location == nil {
		location = time.UTC
	}
	return &WebhookProcessor{
		sessions:      sessions,
		conversations: conversations,
		transcripts:   transcripts,
		notifier:      notifier,
		location:      location,
		now:           now,
		logger:        logger,
	}
}

type clientData struct {
	DynamicVariables map[string]interface{} `json:"dynamic_variables"`
}

type eventData struct {
	ConversationID                   string      `json:"conversation_id"`
	AgentID                          string      `json:"agent_id"`
	UserID                           string      `json:"user_id"`
	ConversationInitiationClientData *clientData `json:"conversation_initiation_client_data"`
}

// Event is a post-call webhook, optionally wrapped as {type, data}.
type Event struct {
	Type           string     `json:"type"`
	EventTimestamp int64      `json:"event_timestamp"`
	ConversationID string     `json:"conversation_id"`
	UserID         string     `json:"user_id"`
	Data           *eventData `json:"data"`
}

// conversationID prefers the envelope's data over the top level.
func (e Event) conversationID() string {
	if e.Data != nil && e.Data.ConversationID != "" {
		return e.Data.ConversationID
	}
	return e.ConversationID
}

// userID returns a user id carried by the event itself, if any.
func (e Event) userID() string {
	if e.Data != nil && e.Data.UserID != "" {
		return e.Data.UserID
	}
	if e.UserID != "" {
		return e.UserID
	}
	if e.Data != nil && e.Data.ConversationInitiationClientData != nil {
		if id, ok := e.Data.ConversationInitiationClientData.DynamicVariables["user_id"].(string); ok {
			return id
		}
	}
	return ""
}

// Result acknowledges a processed event. Ignored is set for event types
// that do not complete a standup.
type Result struct {
	ConversationID string
	UserID         string
	Ignored        bool
}

// HandleConversationEnded stores the transcript of a finished call against
// the member's session for today and marks that session completed.
//
// When the event carries no user id the member is taken from the most
// recent pending session for today. That lookup cannot tell concurrent
// calls apart and will misattribute transcripts if two are in flight.
func (p *WebhookProcessor) HandleConversationEnded(ctx context.Context, payload []byte) (Result, error) {
	var event Event
	if err := json.Unmarshal(payload, &event); err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}

	conversationID := event.conversationID()
	if conversationID == "" {
		return Result{}, ErrMissingConversationID
	}
	today := p.now().In(p.location).Format(store.DateLayout)
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "conversation_id", Value: conversationID},
		observability.Field{Key: "event_type", Value: event.Type},
		observability.Field{Key: "date", Value: today},
	)

	if event.Type != "" && event.Type != EventPostCallTranscription {
		p.logger.Info(ctx, "ignoring webhook event type")
		return Result{ConversationID: conversationID, Ignored: true}, nil
	}

	userID, err := p.resolveUser(ctx, event, today)
	if err != nil {
		return Result{}, err
	}
	ctx = observability.WithFields(ctx, observability.Field{Key: "user_id", Value: userID})

	conversation, err := p.conversations.GetConversation(ctx, conversationID)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrVendor, err)
	}

	text := FlattenTranscript(conversation.Transcript)
	if err := p.transcripts.StoreTranscript(ctx, memory.Transcript{
		UserID:         userID,
		Date:           today,
		ConversationID: conversationID,
		Text:           text,
	}); err != nil {
		p.logger.Error(ctx, "failed to store transcript, continuing", err)
	}

	if err := p.sessions.MarkSessionCompleted(ctx, userID, today); err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrMarkCompleted, err)
	}

	p.notifier.NotifyUser(ctx, userID, notify.RecordedMessage)

	p.logger.Info(ctx, "standup completed", observability.Field{Key: "transcript_entries", Value: len(conversation.Transcript)})
	return Result{ConversationID: conversationID, UserID: userID}, nil
}

func (p *WebhookProcessor) resolveUser(ctx context.Context, event Event, today string) (string, error) {
	if userID := event.userID(); userID != "" {
		return userID, nil
	}

	session, err := p.sessions.GetLatestPendingSession(ctx, today)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", ErrSessionNotFound
		}
		return "", fmt.Errorf("%w: %w", ErrSessionLookup, err)
	}

	p.logger.Warn(ctx, "user resolved from latest pending session; concurrent calls may be misattributed",
		observability.Field{Key: "session_user_id", Value: session.UserID},
	)
	return session.UserID, nil
}

// FlattenTranscript renders entries as "role: message" lines in vendor order.
func FlattenTranscript(entries []elevenlabs.TranscriptEntry) string {
	lines := make([]string, 0, len(entries))
	for _, entry := range entries {
		role := unknownRole
		if entry.Role != nil {
			role = *entry.Role
		}
		message := ""
		if entry.Message != nil {
			message = *entry.Message
		}
		lines = append(lines, role+": "+message)
	}
	return strings.Join(lines, "\n")
}
