//go:generate go run go.uber.org/mock/mockgen@latest -source=reminder_job.go -destination=mocks_test.go -package=jobs

package jobs

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"standup-relay/internal/observability"
)

// ReminderJobName identifies the daily reminder in the scheduler
const ReminderJobName = "standup_reminder"

var ErrNoRemindersDelivered = errors.New("no standup reminders delivered")

// LinkSigner signs call links when enabled
type LinkSigner interface {
	Enabled() bool
	Sign(ctx context.Context, userID string) (string, error)
}

// DirectMessenger delivers a DM and reports whether it arrived
type DirectMessenger interface {
	SendDM(ctx context.Context, userID, text string) bool
}

// ReminderJob DMs each configured member a link to start their standup call
type ReminderJob struct {
	userIDs       []string
	cron          string
	publicBaseURL string
	signer        LinkSigner
	messenger     DirectMessenger
	logger        *observability.Logger
}

func NewReminderJob(userIDs []string, cron, publicBaseURL string, signer LinkSigner, messenger DirectMessenger, logger *observability.Logger) *ReminderJob {
	return &ReminderJob{
		userIDs:       userIDs,
		cron:          cron,
		publicBaseURL: publicBaseURL,
		signer:        signer,
		messenger:     messenger,
		logger:        logger,
	}
}

func (j *ReminderJob) Name() string {
	return ReminderJobName
}

func (j *ReminderJob) Schedule() string {
	return j.cron
}

// Run sends one reminder per member. Individual failures are logged; the run
// fails only when members were configured and none were reached.
func (j *ReminderJob) Run(ctx context.Context) error {
	if len(j.userIDs) == 0 {
		j.logger.Warn(ctx, "no reminder recipients configured")
		return nil
	}

	sent := 0
	for _, userID := range j.userIDs {
		userCtx := observability.WithFields(ctx, observability.Field{Key: "user_id", Value: userID})

		link, err := j.CallLink(userCtx, userID)
		if err != nil {
			j.logger.Error(userCtx, "failed to build call link", err)
			continue
		}

		if j.messenger.SendDM(userCtx, userID, ReminderText(link)) {
			sent++
		}
	}

	j.logger.Info(ctx, "standup reminders sent",
		observability.Field{Key: "sent", Value: sent},
		observability.Field{Key: "recipients", Value: len(j.userIDs)},
	)
	if sent == 0 {
		return ErrNoRemindersDelivered
	}
	return nil
}

// CallLink builds the /call URL for a member, signed when links are enabled.
func (j *ReminderJob) CallLink(ctx context.Context, userID string) (string, error) {
	q := url.Values{"user_id": {userID}}
	if j.signer.Enabled() {
		token, err := j.signer.Sign(ctx, userID)
		if err != nil {
			return "", fmt.Errorf("failed to sign call link: %w", err)
		}
		q.Set("token", token)
	}
	return j.publicBaseURL + "/call?" + q.Encode(), nil
}

func ReminderText(link string) string {
	return fmt.Sprintf("Time for your daily standup! Start your call here: %s", link)
}
