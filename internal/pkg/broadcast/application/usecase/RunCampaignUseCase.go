package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	tport "github.com/antonklochkov-droid/g5-meetup-bot/internal/infrastructure/telegram/port"
	broadcast "github.com/antonklochkov-droid/g5-meetup-bot/internal/pkg/broadcast/application/domain"
	repository "github.com/antonklochkov-droid/g5-meetup-bot/internal/pkg/registration/persistence/repository/port"
)

// defaultThrottle spaces out sends to stay under the bot API rate limit.
const defaultThrottle = 50 * time.Millisecond

// ErrPersistence indicates the registrant list could not be read; the run is
// retryable as a whole.
var ErrPersistence = fmt.Errorf("broadcast use case persistence error")

// RunResult summarizes one campaign run.
type RunResult struct {
	Matched int
	Sent    int
	Failed  int
}

// RunCampaignUseCase fans one campaign message out to every matching
// registrant. Per-recipient failures (blocked bot, deleted account) are
// logged and skipped so one bad chat never stalls the broadcast.
type RunCampaignUseCase struct {
	Repo     repository.RegistrantRepository
	Sender   tport.Sender
	Log      *zap.Logger
	Throttle time.Duration
}

func NewRunCampaignUseCase(repo repository.RegistrantRepository, sender tport.Sender, log *zap.Logger) *RunCampaignUseCase {
	return &RunCampaignUseCase{Repo: repo, Sender: sender, Log: log, Throttle: defaultThrottle}
}

// Execute sends the campaign to its recipients. Opts carries the keyboard
// resolved from the campaign's button flags.
func (uc *RunCampaignUseCase) Execute(ctx context.Context, c broadcast.Campaign, opts tport.ReplyOptions) (RunResult, error) {
	runID := uuid.NewString()
	log := uc.Log.With(zap.String("campaign", c.Name), zap.String("run_id", runID))

	registrants, err := uc.Repo.ListAll(ctx)
	if err != nil {
		return RunResult{}, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	var res RunResult
	for _, reg := range registrants {
		if cerr := ctx.Err(); cerr != nil {
			log.Warn("broadcast interrupted",
				zap.Int("sent", res.Sent),
				zap.Int("matched", res.Matched),
			)
			return res, cerr
		}
		if !c.Matches(reg.Confirmed) {
			continue
		}
		res.Matched++

		if err := uc.Sender.Send(ctx, reg.UserID, c.Message, opts); err != nil {
			res.Failed++
			log.Warn("broadcast send failed",
				zap.Int64("user_id", reg.UserID),
				zap.Error(err),
			)
		} else {
			res.Sent++
		}

		if uc.Throttle > 0 {
			select {
			case <-ctx.Done():
			case <-time.After(uc.Throttle):
			}
		}
	}

	log.Info("broadcast finished",
		zap.Int("recipients", len(registrants)),
		zap.Int("matched", res.Matched),
		zap.Int("sent", res.Sent),
		zap.Int("failed", res.Failed),
	)
	return res, nil
}
