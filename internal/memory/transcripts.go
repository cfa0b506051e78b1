package memory

import (
	"context"
	"fmt"

	"standup-relay/internal/observability"
	"standup-relay/internal/store"
)

// LogTranscriptStore only records that a transcript arrived.
type LogTranscriptStore struct {
	logger *observability.Logger
}

func NewLogTranscriptStore(logger *observability.Logger) *LogTranscriptStore {
	return &LogTranscriptStore{logger: logger}
}

func (s *LogTranscriptStore) StoreTranscript(ctx context.Context, transcript Transcript) error {
	s.logger.Info(ctx, "transcript received",
		observability.Field{Key: "user_id", Value: transcript.UserID},
		observability.Field{Key: "conversation_id", Value: transcript.ConversationID},
		observability.Field{Key: "transcript_length", Value: len(transcript.Text)},
	)
	return nil
}

// RecordingTranscriptStore writes transcripts to the session backend so
// HistoryProvider can read them back.
type RecordingTranscriptStore struct {
	writer TranscriptWriter
	now    Clock
	logger *observability.Logger
}

func NewRecordingTranscriptStore(writer TranscriptWriter, now Clock, logger *observability.Logger) *RecordingTranscriptStore {
	return &RecordingTranscriptStore{writer: writer, now: now, logger: logger}
}

func (s *RecordingTranscriptStore) StoreTranscript(ctx context.Context, transcript Transcript) error {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "user_id", Value: transcript.UserID},
		observability.Field{Key: "conversation_id", Value: transcript.ConversationID},
	)

	stored, err := s.writer.CreateTranscript(ctx, store.CreateTranscriptParams{
		UserID:         transcript.UserID,
		Date:           transcript.Date,
		ConversationID: transcript.ConversationID,
		Transcript:     transcript.Text,
		CreatedAt:      s.now(),
	})
	if err != nil {
		return fmt.Errorf("failed to record transcript: %w", err)
	}

	s.logger.Info(ctx, "transcript recorded", observability.Field{Key: "transcript_id", Value: stored.ID})
	return nil
}
