package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"standup-relay/internal/auth/processor"
	"standup-relay/internal/bootstrap"
	"standup-relay/internal/clients/slack"
	"standup-relay/internal/config"
	"standup-relay/internal/jobs/scheduler/jobs"
	"standup-relay/internal/observability"

	notifierProcessor "standup-relay/internal/notifier/processor"
)

func main() {
	once := flag.Bool("once", false, "send reminders immediately and exit")
	flag.Parse()

	logger := observability.NewLogger()
	defer func() { _ = logger.Sync() }()
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal(ctx, "failed to load configuration", err)
	}
	if cfg.Chat.BotToken == "" {
		logger.Fatal(ctx, "reminders need a bot token", config.ErrEmptyEnvironmentVariable)
	}

	logger.Info(ctx, "Starting standup reminder worker...")

	// Initialize chat client and notifier
	slackClient := slack.NewClient(cfg.Chat, logger)
	notifier := notifierProcessor.New(slackClient, logger)
	signer := processor.NewLinkSigner(cfg.Call.LinkSecret, cfg.Call.LinkTTL, time.Now, logger)

	sched, err := bootstrap.NewReminderScheduler(cfg, signer, notifier, logger)
	if err != nil {
		logger.Fatal(ctx, "failed to create scheduler", err)
	}

	if *once {
		if err := sched.RunNow(ctx, jobs.ReminderJobName); err != nil {
			logger.Fatal(ctx, "reminder run failed", err)
		}
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	sched.Start(ctx)

	if next, err := sched.NextRun(jobs.ReminderJobName); err == nil {
		logger.Info(ctx, "next reminder scheduled", observability.Field{Key: "next_run", Value: next})
	}

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logger.Info(ctx, "Shutting down reminder worker...")
	cancel()
	if err := sched.Shutdown(); err != nil {
		logger.Error(ctx, "failed to stop scheduler", err)
	}
	logger.Info(ctx, "Reminder worker stopped")
}
