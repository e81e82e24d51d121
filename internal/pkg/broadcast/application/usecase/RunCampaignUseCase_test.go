package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	tport "github.com/antonklochkov-droid/g5-meetup-bot/internal/infrastructure/telegram/port"
	broadcast "github.com/antonklochkov-droid/g5-meetup-bot/internal/pkg/broadcast/application/domain"
	registration "github.com/antonklochkov-droid/g5-meetup-bot/internal/pkg/registration/application/domain"
)

type listRepo struct {
	registrants []registration.Registrant
	err         error
}

func (r *listRepo) Upsert(ctx context.Context, reg registration.Registrant) error { return nil }

func (r *listRepo) SetConfirmation(ctx context.Context, userID int64, status registration.ConfirmationStatus) error {
	return nil
}

func (r *listRepo) SetFeedback(ctx context.Context, userID int64, answers [registration.FeedbackCount]string) error {
	return nil
}

func (r *listRepo) ListAll(ctx context.Context) ([]registration.Registrant, error) {
	return r.registrants, r.err
}

type flakySender struct {
	failFor map[int64]error
	sentTo  []int64
}

func (s *flakySender) Send(ctx context.Context, userID int64, text string, opts tport.ReplyOptions) error {
	if err, ok := s.failFor[userID]; ok {
		return err
	}
	s.sentTo = append(s.sentTo, userID)
	return nil
}

func registrantsWithStatus(n int, status registration.ConfirmationStatus) []registration.Registrant {
	out := make([]registration.Registrant, n)
	for i := range out {
		out[i] = registration.Registrant{
			UserID:    int64(i + 1),
			FullName:  fmt.Sprintf("User %d", i+1),
			Confirmed: status,
		}
	}
	return out
}

func TestRunCampaignSkipsFailedRecipients(t *testing.T) {
	repo := &listRepo{registrants: registrantsWithStatus(10, registration.StatusComing)}
	sender := &flakySender{failFor: map[int64]error{4: errors.New("bot was blocked by the user")}}

	uc := NewRunCampaignUseCase(repo, sender, zap.NewNop())
	uc.Throttle = 0

	res, err := uc.Execute(context.Background(), broadcast.Campaign{Name: "reminder", Message: "soon!"}, tport.ReplyOptions{})
	require.NoError(t, err)

	assert.Equal(t, RunResult{Matched: 10, Sent: 9, Failed: 1}, res)
	assert.NotContains(t, sender.sentTo, int64(4))
	assert.Len(t, sender.sentTo, 9)
}

func TestRunCampaignAppliesStatusFilter(t *testing.T) {
	registrants := append(
		registrantsWithStatus(3, registration.StatusComing),
		registration.Registrant{UserID: 100, Confirmed: registration.StatusDeclined},
		registration.Registrant{UserID: 101, Confirmed: registration.StatusUnset},
	)
	repo := &listRepo{registrants: registrants}
	sender := &flakySender{}

	uc := NewRunCampaignUseCase(repo, sender, zap.NewNop())
	uc.Throttle = 0

	campaign := broadcast.Campaign{Name: "coming-only", Message: "see you!", IncludeStatuses: []string{"coming"}}
	res, err := uc.Execute(context.Background(), campaign, tport.ReplyOptions{})
	require.NoError(t, err)

	assert.Equal(t, RunResult{Matched: 3, Sent: 3}, res)
	assert.ElementsMatch(t, []int64{1, 2, 3}, sender.sentTo)
}

func TestRunCampaignListFailure(t *testing.T) {
	repo := &listRepo{err: errors.New("store offline")}
	uc := NewRunCampaignUseCase(repo, &flakySender{}, zap.NewNop())

	_, err := uc.Execute(context.Background(), broadcast.Campaign{Name: "x", Message: "y"}, tport.ReplyOptions{})
	assert.ErrorIs(t, err, ErrPersistence)
}

func TestRunCampaignStopsOnCancel(t *testing.T) {
	repo := &listRepo{registrants: registrantsWithStatus(5, registration.StatusComing)}
	sender := &flakySender{}

	uc := NewRunCampaignUseCase(repo, sender, zap.NewNop())
	uc.Throttle = 0

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := uc.Execute(ctx, broadcast.Campaign{Name: "x", Message: "y"}, tport.ReplyOptions{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, res.Sent)
	assert.Empty(t, sender.sentTo)
}
