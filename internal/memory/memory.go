//go:generate go run go.uber.org/mock/mockgen@latest -source=memory.go -destination=mocks_test.go -package=memory

// Package memory supplies per-member context before a standup call and
// keeps the transcript afterwards.
package memory

import (
	"context"
	"time"

	"standup-relay/internal/store"
)

// ContextProvider returns free-form context text for a member. The text is
// handed to the voice agent as the custom_context dynamic variable.
type ContextProvider interface {
	GetContext(ctx context.Context, userID string) (string, error)
}

// TranscriptStore persists a finished standup transcript.
type TranscriptStore interface {
	StoreTranscript(ctx context.Context, transcript Transcript) error
}

// Transcript is a flattened conversation ready for storage
type Transcript struct {
	UserID         string
	Date           string
	ConversationID string
	Text           string
}

// TranscriptReader is the read side of the session backend used by HistoryProvider
type TranscriptReader interface {
	ListRecentTranscripts(ctx context.Context, userID string, limit int) ([]store.Transcript, error)
}

// TranscriptWriter is the write side of the session backend used by RecordingTranscriptStore
type TranscriptWriter interface {
	CreateTranscript(ctx context.Context, params store.CreateTranscriptParams) (store.Transcript, error)
}

// Clock returns the current time
type Clock func() time.Time
