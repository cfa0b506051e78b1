//go:generate go run go.uber.org/mock/mockgen@latest -source=processor.go -destination=mocks_test.go -package=processor

package processor

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"standup-relay/internal/config"
	"standup-relay/internal/observability"
	"standup-relay/internal/store"
)

var (
	ErrMissingUserID = errors.New("user_id is required")
	ErrNotConfigured = errors.New("call initiation not configured")
	ErrInvalidLink   = errors.New("invalid call link")
	ErrSessionStore  = errors.New("failed to record standup session")
	ErrVendor        = errors.New("failed to get signed url")
)

// SessionStore records the day's session for a member
type SessionStore interface {
	UpsertSession(ctx context.Context, params store.UpsertSessionParams) (store.StandupSession, error)
}

// VendorClient requests signed conversation URLs
type VendorClient interface {
	GetSignedURL(ctx context.Context, agentID string) (string, error)
}

// Directory resolves member display names
type Directory interface {
	HasBotToken() bool
	GetDisplayName(ctx context.Context, userID string) (string, error)
}

// ContextProvider supplies the custom_context dynamic variable
type ContextProvider interface {
	GetContext(ctx context.Context, userID string) (string, error)
}

// LinkVerifier checks the token on a /call link
type LinkVerifier interface {
	Verify(ctx context.Context, token, userID string) error
}

// Settings is the subset of configuration the processor reads
type Settings struct {
	AgentID  string
	CallURL  string
	Mode     string
	Location *time.Location
}

// SettingsFromConfig builds Settings from the application configuration
func SettingsFromConfig(cfg *config.Config) Settings {
	return Settings{
		AgentID:  cfg.Vendor.AgentID,
		CallURL:  cfg.Vendor.CallURL,
		Mode:     cfg.Call.Mode,
		Location: cfg.Location,
	}
}

type VoiceCallProcessor struct {
	sessions  SessionStore
	vendor    VendorClient
	directory Directory
	context   ContextProvider
	links     LinkVerifier
	settings  Settings
	now       func() time.Time
	logger    *observability.Logger
}

func NewVoiceCallProcessor(
	sessions SessionStore,
	vendor VendorClient,
	directory Directory,
	contextProvider ContextProvider,
	links LinkVerifier,
	settings Settings,
	now func() time.Time,
	logger *observability.Logger,
) *VoiceCallProcessor {
	if settings.Location == nil {
		settings.Location = time.UTC
	}
	return &VoiceCallProcessor{
		sessions:  sessions,
		vendor:    vendor,
		directory: directory,
		context:   contextProvider,
		links:     links,
		settings:  settings,
		now:       now,
		logger:    logger,
	}
}

// DynamicVariables personalise the agent for one call
type DynamicVariables struct {
	UserID        string `json:"user_id"`
	UserName      string `json:"user_name"`
	CustomContext string `json:"custom_context"`
}

// CallSession is everything a caller needs to start the conversation.
// RedirectURL is only set in redirect mode; SignedURL in the other modes.
type CallSession struct {
	Mode             string
	AgentID          string
	SignedURL        string
	RedirectURL      string
	DynamicVariables DynamicVariables
}

type PrepareCallParams struct {
	UserID   string
	UserName string
	Token    string
}

// PrepareCall records today's session and returns what the configured call
// mode needs.
func (p *VoiceCallProcessor) PrepareCall(ctx context.Context, params PrepareCallParams) (CallSession, error) {
	return p.prepare(ctx, params, p.settings.Mode)
}

// StartStandup always returns a signed URL for a caller-managed flow. The
// token is checked the same way as on a /call link.
func (p *VoiceCallProcessor) StartStandup(ctx context.Context, userID, token string) (CallSession, error) {
	return p.prepare(ctx, PrepareCallParams{UserID: userID, Token: token}, config.CallModeJSON)
}

func (p *VoiceCallProcessor) prepare(ctx context.Context, params PrepareCallParams, mode string) (CallSession, error) {
	if params.UserID == "" {
		return CallSession{}, ErrMissingUserID
	}
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "user_id", Value: params.UserID},
		observability.Field{Key: "call_mode", Value: mode},
	)

	if err := p.links.Verify(ctx, params.Token, params.UserID); err != nil {
		return CallSession{}, fmt.Errorf("%w: %v", ErrInvalidLink, err)
	}

	if mode == config.CallModeRedirect && p.settings.CallURL == "" {
		return CallSession{}, fmt.Errorf("%w: ELEVENLABS_CALL_URL is empty", ErrNotConfigured)
	}
	if mode != config.CallModeRedirect && p.settings.AgentID == "" {
		return CallSession{}, fmt.Errorf("%w: ELEVENLABS_AGENT_ID is empty", ErrNotConfigured)
	}

	now := p.now()
	session, err := p.sessions.UpsertSession(ctx, store.UpsertSessionParams{
		UserID:    params.UserID,
		Date:      now.In(p.settings.Location).Format(store.DateLayout),
		Status:    store.SessionStatusPending,
		CreatedAt: now,
	})
	if err != nil {
		return CallSession{}, fmt.Errorf("%w: %w", ErrSessionStore, err)
	}
	p.logger.Info(ctx, "standup session recorded", observability.Field{Key: "date", Value: session.Date})

	if mode == config.CallModeRedirect {
		redirectURL, err := buildRedirectURL(p.settings.CallURL, params.UserID)
		if err != nil {
			return CallSession{}, fmt.Errorf("%w: bad ELEVENLABS_CALL_URL: %v", ErrNotConfigured, err)
		}
		return CallSession{Mode: mode, RedirectURL: redirectURL}, nil
	}

	userName := p.resolveUserName(ctx, params.UserID, params.UserName)

	customContext, err := p.context.GetContext(ctx, params.UserID)
	if err != nil {
		p.logger.Error(ctx, "failed to get member context, continuing without it", err)
		customContext = ""
	}

	signedURL, err := p.vendor.GetSignedURL(ctx, p.settings.AgentID)
	if err != nil {
		return CallSession{}, fmt.Errorf("%w: %w", ErrVendor, err)
	}

	p.logger.Info(ctx, "call prepared",
		observability.Field{Key: "user_name", Value: userName},
		observability.Field{Key: "context_length", Value: len(customContext)},
	)

	return CallSession{
		Mode:      mode,
		AgentID:   p.settings.AgentID,
		SignedURL: signedURL,
		DynamicVariables: DynamicVariables{
			UserID:        params.UserID,
			UserName:      userName,
			CustomContext: customContext,
		},
	}, nil
}

// resolveUserName prefers the supplied name, then the chat profile, then
// the raw id.
func (p *VoiceCallProcessor) resolveUserName(ctx context.Context, userID, supplied string) string {
	if supplied != "" {
		return supplied
	}
	if !p.directory.HasBotToken() {
		return userID
	}

	name, err := p.directory.GetDisplayName(ctx, userID)
	if err != nil {
		p.logger.Error(ctx, "failed to look up display name", err)
		return userID
	}
	if name == "" {
		return userID
	}
	return name
}

func buildRedirectURL(callURL, userID string) (string, error) {
	u, err := url.Parse(callURL)
	if err != nil {
		return "", err
	}
	q := u.Query()
	q.Set("user_id", userID)
	u.RawQuery = q.Encode()
	return u.String(), nil
}
