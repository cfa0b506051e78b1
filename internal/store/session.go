package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// SessionStatus is the lifecycle state of a standup session
type SessionStatus string

const (
	SessionStatusPending   SessionStatus = "pending"
	SessionStatusCalled    SessionStatus = "called"
	SessionStatusCompleted SessionStatus = "completed"
)

// DateLayout is the format of StandupSession.Date
const DateLayout = "2006-01-02"

// StandupSession is one day's standup attempt for one user.
type StandupSession struct {
	UserID    string        `db:"slack_user_id" json:"slack_user_id"`
	Date      string        `db:"date" json:"date"`
	Status    SessionStatus `db:"status" json:"status"`
	CreatedAt time.Time     `db:"created_at" json:"created_at"`
}

type UpsertSessionParams struct {
	UserID    string
	Date      string
	Status    SessionStatus
	CreatedAt time.Time
}

const sqlUpsertSession = `
INSERT INTO standup_responses (slack_user_id, date, status, created_at)
VALUES (?, ?, ?, ?)
ON CONFLICT (slack_user_id, date)
DO UPDATE SET status = excluded.status, created_at = excluded.created_at`

// UpsertSession creates today's session for a user, or merges into the
// existing one keeping the latest status and timestamp.
func (s *Store) UpsertSession(ctx context.Context, params UpsertSessionParams) (StandupSession, error) {
	createdAt := params.CreatedAt.UTC()
	_, err := s.db.ExecContext(ctx, s.db.Rebind(sqlUpsertSession),
		params.UserID, params.Date, string(params.Status), createdAt)
	if err != nil {
		s.logger.Error(ctx, "failed to upsert standup session", err)
		return StandupSession{}, fmt.Errorf("failed to upsert standup session: %w", err)
	}
	return StandupSession{
		UserID:    params.UserID,
		Date:      params.Date,
		Status:    params.Status,
		CreatedAt: createdAt,
	}, nil
}

const sqlGetLatestPendingSession = `
SELECT slack_user_id, date, status, created_at
FROM standup_responses
WHERE date = ? AND status = ?
ORDER BY created_at DESC
LIMIT 1`

// GetLatestPendingSession returns the most recently created pending session
// for the given date.
func (s *Store) GetLatestPendingSession(ctx context.Context, date string) (StandupSession, error) {
	var session StandupSession
	err := s.db.GetContext(ctx, &session, s.db.Rebind(sqlGetLatestPendingSession), date, string(SessionStatusPending))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return StandupSession{}, ErrNotFound
		}
		s.logger.Error(ctx, "failed to get latest pending session", err)
		return StandupSession{}, fmt.Errorf("failed to get latest pending session: %w", err)
	}
	return session, nil
}

const sqlMarkSessionCompleted = `
UPDATE standup_responses SET status = ?
WHERE slack_user_id = ? AND date = ?`

// MarkSessionCompleted sets the session for (userID, date) to completed. A
// missing row is not an error; the filter simply matches nothing.
func (s *Store) MarkSessionCompleted(ctx context.Context, userID, date string) error {
	result, err := s.db.ExecContext(ctx, s.db.Rebind(sqlMarkSessionCompleted), string(SessionStatusCompleted), userID, date)
	if err != nil {
		s.logger.Error(ctx, "failed to mark session completed", err)
		return fmt.Errorf("failed to mark session completed: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		s.logger.Error(ctx, "failed to get rows affected", err)
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		s.logger.Warn(ctx, "no session matched completion update")
	}
	return nil
}
