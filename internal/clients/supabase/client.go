package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"standup-relay/internal/config"
	"standup-relay/internal/observability"
	"standup-relay/internal/store"

	"github.com/google/uuid"
)

const (
	sessionsTable    = "standup_responses"
	transcriptsTable = "standup_transcripts"
	maxErrorBody     = 4096
)

// timeLayouts covers what PostgREST emits for timestamp and timestamptz columns.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
}

// APIError is returned when PostgREST answers with a non-2xx status.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("supabase API error: status %d: %s", e.StatusCode, e.Body)
}

// Client stores sessions and transcripts in Supabase through its REST
// interface. It satisfies the same method set as store.Store.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *observability.Logger
}

// NewClient creates a PostgREST client for the configured project
func NewClient(cfg config.StoreConfig, logger *observability.Logger) *Client {
	return &Client{
		baseURL: cfg.SupabaseURL + "/rest/v1",
		apiKey:  cfg.SupabaseKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

type sessionRow struct {
	UserID    string `json:"slack_user_id"`
	Date      string `json:"date"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at,omitempty"`
}

type transcriptRow struct {
	ID             string `json:"id"`
	UserID         string `json:"slack_user_id"`
	Date           string `json:"date"`
	ConversationID string `json:"conversation_id"`
	Transcript     string `json:"transcript"`
	CreatedAt      string `json:"created_at,omitempty"`
}

// UpsertSession merges on (slack_user_id, date).
func (c *Client) UpsertSession(ctx context.Context, params store.UpsertSessionParams) (store.StandupSession, error) {
	createdAt := params.CreatedAt.UTC()
	row := sessionRow{
		UserID:    params.UserID,
		Date:      params.Date,
		Status:    string(params.Status),
		CreatedAt: createdAt.Format(time.RFC3339Nano),
	}

	query := url.Values{"on_conflict": {"slack_user_id,date"}}
	err := c.do(ctx, http.MethodPost, sessionsTable, query, row, "resolution=merge-duplicates,return=minimal", nil)
	if err != nil {
		c.logger.Error(ctx, "failed to upsert standup session", err)
		return store.StandupSession{}, fmt.Errorf("failed to upsert standup session: %w", err)
	}

	return store.StandupSession{
		UserID:    params.UserID,
		Date:      params.Date,
		Status:    params.Status,
		CreatedAt: createdAt,
	}, nil
}

// GetLatestPendingSession returns the newest pending session for date.
func (c *Client) GetLatestPendingSession(ctx context.Context, date string) (store.StandupSession, error) {
	query := url.Values{
		"select": {"slack_user_id,date,status,created_at"},
		"date":   {"eq." + date},
		"status": {"eq." + string(store.SessionStatusPending)},
		"order":  {"created_at.desc"},
		"limit":  {"1"},
	}

	var rows []sessionRow
	if err := c.do(ctx, http.MethodGet, sessionsTable, query, nil, "", &rows); err != nil {
		c.logger.Error(ctx, "failed to get latest pending session", err)
		return store.StandupSession{}, fmt.Errorf("failed to get latest pending session: %w", err)
	}
	if len(rows) == 0 {
		return store.StandupSession{}, store.ErrNotFound
	}

	createdAt, err := parseTime(rows[0].CreatedAt)
	if err != nil {
		c.logger.Error(ctx, "failed to parse session created_at", err)
		return store.StandupSession{}, err
	}
	return store.StandupSession{
		UserID:    rows[0].UserID,
		Date:      rows[0].Date,
		Status:    store.SessionStatus(rows[0].Status),
		CreatedAt: createdAt,
	}, nil
}

// MarkSessionCompleted patches the status of (userID, date).
func (c *Client) MarkSessionCompleted(ctx context.Context, userID, date string) error {
	query := url.Values{
		"slack_user_id": {"eq." + userID},
		"date":          {"eq." + date},
	}
	body := map[string]string{"status": string(store.SessionStatusCompleted)}

	if err := c.do(ctx, http.MethodPatch, sessionsTable, query, body, "return=minimal", nil); err != nil {
		c.logger.Error(ctx, "failed to mark session completed", err)
		return fmt.Errorf("failed to mark session completed: %w", err)
	}
	return nil
}

func (c *Client) CreateTranscript(ctx context.Context, params store.CreateTranscriptParams) (store.Transcript, error) {
	transcript := store.Transcript{
		ID:             uuid.New().String(),
		UserID:         params.UserID,
		Date:           params.Date,
		ConversationID: params.ConversationID,
		Transcript:     params.Transcript,
		CreatedAt:      params.CreatedAt.UTC(),
	}
	row := transcriptRow{
		ID:             transcript.ID,
		UserID:         transcript.UserID,
		Date:           transcript.Date,
		ConversationID: transcript.ConversationID,
		Transcript:     transcript.Transcript,
		CreatedAt:      transcript.CreatedAt.Format(time.RFC3339Nano),
	}

	if err := c.do(ctx, http.MethodPost, transcriptsTable, nil, row, "return=minimal", nil); err != nil {
		c.logger.Error(ctx, "failed to create transcript", err)
		return store.Transcript{}, fmt.Errorf("failed to create transcript: %w", err)
	}
	return transcript, nil
}

// ListRecentTranscripts returns up to limit transcripts for a user, newest first.
func (c *Client) ListRecentTranscripts(ctx context.Context, userID string, limit int) ([]store.Transcript, error) {
	query := url.Values{
		"select":        {"id,slack_user_id,date,conversation_id,transcript,created_at"},
		"slack_user_id": {"eq." + userID},
		"order":         {"created_at.desc"},
		"limit":         {strconv.Itoa(limit)},
	}

	var rows []transcriptRow
	if err := c.do(ctx, http.MethodGet, transcriptsTable, query, nil, "", &rows); err != nil {
		c.logger.Error(ctx, "failed to list recent transcripts", err)
		return nil, fmt.Errorf("failed to list recent transcripts: %w", err)
	}

	transcripts := make([]store.Transcript, 0, len(rows))
	for _, row := range rows {
		createdAt, err := parseTime(row.CreatedAt)
		if err != nil {
			c.logger.Error(ctx, "failed to parse transcript created_at", err)
			return nil, err
		}
		transcripts = append(transcripts, store.Transcript{
			ID:             row.ID,
			UserID:         row.UserID,
			Date:           row.Date,
			ConversationID: row.ConversationID,
			Transcript:     row.Transcript,
			CreatedAt:      createdAt,
		})
	}
	return transcripts, nil
}

func (c *Client) do(ctx context.Context, method, table string, query url.Values, body interface{}, prefer string, out interface{}) error {
	endpoint := c.baseURL + "/" + table
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if prefer != "" {
		req.Header.Set("Prefer", prefer)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call supabase: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &APIError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to parse supabase response: %w", err)
	}
	return nil
}

func parseTime(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	// Postgres may emit a two-digit zone offset such as +00.
	if i := strings.LastIndexAny(value, "+-"); i > 10 && len(value)-i == 3 {
		if t, err := time.Parse("2006-01-02T15:04:05.999999999-07", value); err == nil {
			return t.UTC(), nil
		}
		if t, err := time.Parse("2006-01-02 15:04:05.999999999-07", value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", value)
}
