package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Transcript is a flattened conversation stored after a standup call.
type Transcript struct {
	ID             string    `db:"id" json:"id"`
	UserID         string    `db:"slack_user_id" json:"slack_user_id"`
	Date           string    `db:"date" json:"date"`
	ConversationID string    `db:"conversation_id" json:"conversation_id"`
	Transcript     string    `db:"transcript" json:"transcript"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}

type CreateTranscriptParams struct {
	UserID         string
	Date           string
	ConversationID string
	Transcript     string
	CreatedAt      time.Time
}

const sqlCreateTranscript = `
INSERT INTO standup_transcripts (id, slack_user_id, date, conversation_id, transcript, created_at)
VALUES (?, ?, ?, ?, ?, ?)`

func (s *Store) CreateTranscript(ctx context.Context, params CreateTranscriptParams) (Transcript, error) {
	transcript := Transcript{
		ID:             uuid.New().String(),
		UserID:         params.UserID,
		Date:           params.Date,
		ConversationID: params.ConversationID,
		Transcript:     params.Transcript,
		CreatedAt:      params.CreatedAt.UTC(),
	}
	_, err := s.db.ExecContext(ctx, s.db.Rebind(sqlCreateTranscript),
		transcript.ID, transcript.UserID, transcript.Date, transcript.ConversationID, transcript.Transcript, transcript.CreatedAt)
	if err != nil {
		s.logger.Error(ctx, "failed to create transcript", err)
		return Transcript{}, fmt.Errorf("failed to create transcript: %w", err)
	}
	return transcript, nil
}

const sqlListRecentTranscripts = `
SELECT id, slack_user_id, date, conversation_id, transcript, created_at
FROM standup_transcripts
WHERE slack_user_id = ?
ORDER BY created_at DESC
LIMIT ?`

// ListRecentTranscripts returns up to limit transcripts for a user, newest first.
func (s *Store) ListRecentTranscripts(ctx context.Context, userID string, limit int) ([]Transcript, error) {
	var transcripts []Transcript
	err := s.db.SelectContext(ctx, &transcripts, s.db.Rebind(sqlListRecentTranscripts), userID, limit)
	if err != nil {
		s.logger.Error(ctx, "failed to list recent transcripts", err)
		return nil, fmt.Errorf("failed to list recent transcripts: %w", err)
	}
	return transcripts, nil
}
