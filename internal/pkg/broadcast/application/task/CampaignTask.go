package task

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	qport "github.com/antonklochkov-droid/g5-meetup-bot/internal/infrastructure/queue/port"
	tport "github.com/antonklochkov-droid/g5-meetup-bot/internal/infrastructure/telegram/port"
	broadcast "github.com/antonklochkov-droid/g5-meetup-bot/internal/pkg/broadcast/application/domain"
	broadcastuc "github.com/antonklochkov-droid/g5-meetup-bot/internal/pkg/broadcast/application/usecase"
	registrationuc "github.com/antonklochkov-droid/g5-meetup-bot/internal/pkg/registration/application/usecase"
	repository "github.com/antonklochkov-droid/g5-meetup-bot/internal/pkg/registration/persistence/repository/port"
)

// CampaignTaskType is the queue task name for running a broadcast campaign.
const CampaignTaskType = "broadcast:run_campaign"

// campaignQueue is the asynq queue campaigns are scheduled on.
const campaignQueue = "broadcast"

// CampaignTaskPayload carries only the campaign name; the worker resolves it
// against the schedule loaded at its own startup, so edits to the campaign
// file take effect without re-enqueueing.
type CampaignTaskPayload struct {
	Name string `json:"name"`
}

// RegisterCampaignTask binds the campaign handler to the worker server.
func RegisterCampaignTask(
	srv qport.Server,
	campaigns []broadcast.Campaign,
	repo repository.RegistrantRepository,
	sender tport.Sender,
	log *zap.Logger,
) {
	byName := make(map[string]broadcast.Campaign, len(campaigns))
	for _, c := range campaigns {
		byName[c.Name] = c
	}

	srv.Register(CampaignTaskType, func(ctx context.Context, t qport.Task) error {
		var p CampaignTaskPayload
		if err := json.Unmarshal(t.Payload, &p); err != nil {
			// malformed payload: do not retry indefinitely
			return err
		}
		c, ok := byName[p.Name]
		if !ok {
			log.Warn("dropping task for unknown campaign", zap.String("campaign", p.Name))
			return nil
		}

		uc := broadcastuc.NewRunCampaignUseCase(repo, sender, log)
		_, err := uc.Execute(ctx, c, campaignKeyboard(c))
		return err
	})
}

// campaignKeyboard resolves a campaign's button flags into reply options.
func campaignKeyboard(c broadcast.Campaign) tport.ReplyOptions {
	var opts tport.ReplyOptions
	switch {
	case c.ConfirmButtons:
		opts.Buttons = registrationuc.ConfirmButtons()
	case c.FeedbackButtons:
		opts.Buttons = registrationuc.FeedbackButtons()
	}
	if c.URLButton != nil {
		opts.Buttons = append(opts.Buttons, tport.Button{Label: c.URLButton.Label, URL: c.URLButton.URL})
	}
	return opts
}

// ScheduleCampaigns enqueues every future campaign at its run time. The
// campaign name keys uniqueness, so re-running the scheduler after a restart
// does not double-book broadcasts that are already queued.
func ScheduleCampaigns(ctx context.Context, client qport.Client, campaigns []broadcast.Campaign, log *zap.Logger) error {
	now := time.Now()
	for _, c := range campaigns {
		if c.RunAt.Before(now) {
			log.Info("skipping past campaign", zap.String("campaign", c.Name), zap.Time("run_at", c.RunAt))
			continue
		}

		b, err := json.Marshal(CampaignTaskPayload{Name: c.Name})
		if err != nil {
			return fmt.Errorf("campaign %q: encode payload: %w", c.Name, err)
		}

		opts := qport.EnqueueOption{
			Queue:     campaignQueue,
			ProcessAt: c.RunAt,
			MaxRetry:  3,
			UniqueTTL: time.Until(c.RunAt) + time.Hour,
		}
		id, err := client.Enqueue(ctx, qport.Task{Type: CampaignTaskType, Payload: b}, opts)
		if errors.Is(err, qport.ErrDuplicateTask) {
			log.Info("campaign already queued", zap.String("campaign", c.Name))
			continue
		}
		if err != nil {
			return fmt.Errorf("campaign %q: enqueue: %w", c.Name, err)
		}
		log.Info("campaign scheduled",
			zap.String("campaign", c.Name),
			zap.Time("run_at", c.RunAt),
			zap.String("task_id", id),
		)
	}
	return nil
}
