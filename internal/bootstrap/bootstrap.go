package bootstrap

import (
	"context"
	"fmt"
	"time"

	"standup-relay/internal/auth/processor"
	"standup-relay/internal/clients/elevenlabs"
	"standup-relay/internal/clients/slack"
	"standup-relay/internal/clients/supabase"
	"standup-relay/internal/config"
	"standup-relay/internal/jobs/scheduler"
	"standup-relay/internal/jobs/scheduler/jobs"
	"standup-relay/internal/memory"
	"standup-relay/internal/observability"
	"standup-relay/internal/store"

	notifierHandler "standup-relay/internal/notifier/handler"
	notifierProcessor "standup-relay/internal/notifier/processor"
	voiceCallHandler "standup-relay/internal/voicecall/handler"
	voiceCallProcessor "standup-relay/internal/voicecall/processor"
	webhookHandler "standup-relay/internal/webhooks/handler"
	webhookProcessor "standup-relay/internal/webhooks/processor"
)

// SessionBackend is implemented by both the SQL store and the Supabase client
type SessionBackend interface {
	UpsertSession(ctx context.Context, params store.UpsertSessionParams) (store.StandupSession, error)
	GetLatestPendingSession(ctx context.Context, date string) (store.StandupSession, error)
	MarkSessionCompleted(ctx context.Context, userID, date string) error
	CreateTranscript(ctx context.Context, params store.CreateTranscriptParams) (store.Transcript, error)
	ListRecentTranscripts(ctx context.Context, userID string, limit int) ([]store.Transcript, error)
}

// Dependencies holds all initialized application dependencies
type Dependencies struct {
	// Core
	Backend SessionBackend
	Logger  *observability.Logger

	// Clients
	Slack      *slack.Client
	ElevenLabs *elevenlabs.Client

	// Processors
	Notifier   *notifierProcessor.NotifierProcessor
	LinkSigner *processor.LinkSigner

	// Handlers
	VoiceCallHandler voiceCallHandler.Handler
	WebhookHandler   *webhookHandler.Handler
	NotifierHandler  *notifierHandler.Handler

	// Background jobs, nil when reminders are disabled
	Scheduler *scheduler.Scheduler

	sqlStore *store.Store
}

// Initialize sets up all application dependencies
func Initialize(ctx context.Context, cfg *config.Config, logger *observability.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Logger: logger,
	}

	// Initialize session backend
	if err := deps.initBackend(ctx, cfg); err != nil {
		return nil, err
	}

	// Initialize clients
	deps.Slack = slack.NewClient(cfg.Chat, logger)
	deps.ElevenLabs = elevenlabs.NewClient(cfg.Vendor, logger)

	// Initialize notifier processor and handler
	deps.Notifier = notifierProcessor.New(deps.Slack, logger)
	deps.NotifierHandler = notifierHandler.New(deps.Notifier, logger)

	// Initialize call link signer
	deps.LinkSigner = processor.NewLinkSigner(cfg.Call.LinkSecret, cfg.Call.LinkTTL, time.Now, logger)
	if !deps.LinkSigner.Enabled() {
		logger.Warn(ctx, "CALL_LINK_SECRET not set, /call links are accepted unsigned")
	}

	// Initialize memory components
	contextProvider, transcriptStore := newMemory(cfg.Memory, deps.Backend, logger)

	// Initialize voice call processor and handler
	voiceCallProc := voiceCallProcessor.NewVoiceCallProcessor(
		deps.Backend,
		deps.ElevenLabs,
		deps.Slack,
		contextProvider,
		deps.LinkSigner,
		voiceCallProcessor.SettingsFromConfig(cfg),
		time.Now,
		logger,
	)
	deps.VoiceCallHandler = voiceCallHandler.New(voiceCallProc, logger)

	// Initialize webhook processor and handler
	webhookProc := webhookProcessor.New(
		deps.Backend,
		deps.ElevenLabs,
		transcriptStore,
		deps.Notifier,
		cfg.Location,
		time.Now,
		logger,
	)
	deps.WebhookHandler = webhookHandler.New(webhookProc, cfg.Vendor.WebhookSecret, time.Now, logger)
	if cfg.Vendor.WebhookSecret == "" {
		logger.Warn(ctx, "ELEVENLABS_WEBHOOK_SECRET not set, webhook signatures are not verified")
	}

	// Initialize reminder scheduler
	if cfg.Reminder.Enabled {
		s, err := NewReminderScheduler(cfg, deps.LinkSigner, deps.Notifier, logger)
		if err != nil {
			return nil, err
		}
		deps.Scheduler = s
	}

	return deps, nil
}

func (d *Dependencies) initBackend(ctx context.Context, cfg *config.Config) error {
	var driver, dsn string
	switch cfg.Store.Driver {
	case config.StoreDriverSupabase:
		d.Backend = supabase.NewClient(cfg.Store, d.Logger)
		return nil
	case config.StoreDriverPostgres:
		driver, dsn = store.DriverPostgres, cfg.Store.DatabaseURL
	case config.StoreDriverSQLite:
		driver, dsn = store.DriverSQLite, cfg.Store.SQLitePath
	default:
		return fmt.Errorf("unsupported store driver %q: %w", cfg.Store.Driver, config.ErrInvalidOption)
	}

	s, err := store.New(driver, dsn, d.Logger)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := s.Ping(ctx); err != nil {
		_ = s.Close()
		return fmt.Errorf("failed to reach database: %w", err)
	}
	if cfg.Store.AutoMigrate {
		if err := s.Migrate(ctx); err != nil {
			_ = s.Close()
			return err
		}
	}
	d.sqlStore = &s
	d.Backend = &s
	return nil
}

func newMemory(cfg config.MemoryConfig, backend SessionBackend, logger *observability.Logger) (memory.ContextProvider, memory.TranscriptStore) {
	var contextProvider memory.ContextProvider = memory.NewPlaceholderProvider()
	if cfg.ContextProvider == config.ContextProviderHistory {
		contextProvider = memory.NewHistoryProvider(backend, cfg.HistoryDepth, cfg.LeadQuestion, logger)
	}

	var transcriptStore memory.TranscriptStore = memory.NewLogTranscriptStore(logger)
	if cfg.TranscriptStore == config.TranscriptStoreStore {
		transcriptStore = memory.NewRecordingTranscriptStore(backend, time.Now, logger)
	}
	return contextProvider, transcriptStore
}

// NewReminderScheduler builds a scheduler with the daily reminder job registered
func NewReminderScheduler(cfg *config.Config, signer jobs.LinkSigner, messenger jobs.DirectMessenger, logger *observability.Logger) (*scheduler.Scheduler, error) {
	s, err := scheduler.New(cfg.Location, logger)
	if err != nil {
		return nil, err
	}
	job := jobs.NewReminderJob(cfg.Reminder.UserIDs, cfg.Reminder.Cron, cfg.Call.PublicBaseURL, signer, messenger, logger)
	if err := s.Register(job); err != nil {
		return nil, err
	}
	return s, nil
}

// Cleanup closes all resources that need cleanup
func (d *Dependencies) Cleanup() {
	if d.Scheduler != nil {
		if err := d.Scheduler.Shutdown(); err != nil {
			d.Logger.Error(context.Background(), "failed to stop scheduler", err)
		}
	}
	if d.sqlStore != nil {
		if err := d.sqlStore.Close(); err != nil {
			d.Logger.Error(context.Background(), "failed to close database", err)
		}
	}
}
