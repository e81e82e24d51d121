package usecase

import (
	"context"
	"fmt"

	sessport "github.com/antonklochkov-droid/g5-meetup-bot/internal/infrastructure/session/port"
	registration "github.com/antonklochkov-droid/g5-meetup-bot/internal/pkg/registration/application/domain"
)

// StartFeedbackUseCase enters the feedback questionnaire. Reached only via
// the start_feedback button; declining never creates any state.
type StartFeedbackUseCase struct {
	Sessions sessport.Store
}

func NewStartFeedbackUseCase(sessions sessport.Store) *StartFeedbackUseCase {
	return &StartFeedbackUseCase{Sessions: sessions}
}

func (uc *StartFeedbackUseCase) Execute(ctx context.Context, userID int64) (Reply, error) {
	step, _ := registration.Feedback.Step(registration.Feedback.Initial())

	st := sessport.DialogState{
		Dialog:  string(registration.DialogFeedback),
		State:   string(step.State),
		Answers: make(map[string]string),
	}
	if err := uc.Sessions.Set(ctx, userID, st); err != nil {
		return Reply{}, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	reply := promptReply(step)
	reply.Text = MsgFeedbackIntro + "\n\n" + reply.Text
	return reply, nil
}
