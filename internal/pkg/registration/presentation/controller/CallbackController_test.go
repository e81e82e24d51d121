package controller

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	sessadapter "github.com/antonklochkov-droid/g5-meetup-bot/internal/infrastructure/session/adapter"
	tport "github.com/antonklochkov-droid/g5-meetup-bot/internal/infrastructure/telegram/port"
	registration "github.com/antonklochkov-droid/g5-meetup-bot/internal/pkg/registration/application/domain"
	"github.com/antonklochkov-droid/g5-meetup-bot/internal/pkg/registration/application/usecase"
)

// fakeSender records outbound messages.
type fakeSender struct {
	sent []sentMessage
}

type sentMessage struct {
	userID int64
	text   string
	opts   tport.ReplyOptions
}

func (f *fakeSender) Send(ctx context.Context, userID int64, text string, opts tport.ReplyOptions) error {
	f.sent = append(f.sent, sentMessage{userID: userID, text: text, opts: opts})
	return nil
}

// fakeRegistrantRepo is the minimal repository double for controller tests.
type fakeRegistrantRepo struct {
	confirmations map[int64]registration.ConfirmationStatus
	feedback      map[int64][registration.FeedbackCount]string
}

func newFakeRegistrantRepo() *fakeRegistrantRepo {
	return &fakeRegistrantRepo{
		confirmations: make(map[int64]registration.ConfirmationStatus),
		feedback:      make(map[int64][registration.FeedbackCount]string),
	}
}

func (f *fakeRegistrantRepo) Upsert(ctx context.Context, r registration.Registrant) error {
	return nil
}

func (f *fakeRegistrantRepo) SetConfirmation(ctx context.Context, userID int64, status registration.ConfirmationStatus) error {
	f.confirmations[userID] = status
	return nil
}

func (f *fakeRegistrantRepo) SetFeedback(ctx context.Context, userID int64, answers [registration.FeedbackCount]string) error {
	f.feedback[userID] = answers
	return nil
}

func (f *fakeRegistrantRepo) ListAll(ctx context.Context) ([]registration.Registrant, error) {
	return nil, nil
}

func TestCallbackConfirmYes(t *testing.T) {
	sender := &fakeSender{}
	repo := newFakeRegistrantRepo()
	ctl := NewCallbackController(sessadapter.NewMemoryStore(), repo, sender, zap.NewNop())

	err := ctl.Handle()(context.Background(), tport.Event{UserID: 42, Payload: registration.ActionConfirmYes})
	require.NoError(t, err)

	assert.Equal(t, registration.StatusComing, repo.confirmations[42])
	require.Len(t, sender.sent, 1)
	assert.Equal(t, usecase.MsgConfirmedComing, sender.sent[0].text)
}

func TestCallbackStartFeedbackEntersDialog(t *testing.T) {
	sender := &fakeSender{}
	sessions := sessadapter.NewMemoryStore()
	ctl := NewCallbackController(sessions, newFakeRegistrantRepo(), sender, zap.NewNop())

	err := ctl.Handle()(context.Background(), tport.Event{UserID: 42, Payload: registration.ActionStartFeedback})
	require.NoError(t, err)

	st, err := sessions.Get(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, string(registration.DialogFeedback), st.Dialog)
	assert.Equal(t, string(registration.StateFeedbackQ1), st.State)

	require.Len(t, sender.sent, 1)
	assert.Contains(t, sender.sent[0].text, usecase.MsgFeedbackIntro)
}

func TestCallbackDeclineFeedback(t *testing.T) {
	sender := &fakeSender{}
	sessions := sessadapter.NewMemoryStore()
	ctl := NewCallbackController(sessions, newFakeRegistrantRepo(), sender, zap.NewNop())

	err := ctl.Handle()(context.Background(), tport.Event{UserID: 42, Payload: registration.ActionDeclineFeedback})
	require.NoError(t, err)

	require.Len(t, sender.sent, 1)
	assert.Equal(t, usecase.MsgFeedbackDeclined, sender.sent[0].text)

	// Declining never creates dialog state.
	_, err = sessions.Get(context.Background(), 42)
	assert.Error(t, err)
}

func TestCallbackUnknownPayloadIgnored(t *testing.T) {
	sender := &fakeSender{}
	ctl := NewCallbackController(sessadapter.NewMemoryStore(), newFakeRegistrantRepo(), sender, zap.NewNop())

	err := ctl.Handle()(context.Background(), tport.Event{UserID: 42, Payload: "legacy_action"})
	require.NoError(t, err)
	assert.Empty(t, sender.sent)
}
