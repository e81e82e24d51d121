package usecase

import (
	"context"
	"fmt"

	sessport "github.com/antonklochkov-droid/g5-meetup-bot/internal/infrastructure/session/port"
	registration "github.com/antonklochkov-droid/g5-meetup-bot/internal/pkg/registration/application/domain"
)

// StartRegistrationUseCase resets any in-flight dialog and enters the first
// registration step. The /start command routes here regardless of prior state.
type StartRegistrationUseCase struct {
	Sessions sessport.Store
}

func NewStartRegistrationUseCase(sessions sessport.Store) *StartRegistrationUseCase {
	return &StartRegistrationUseCase{Sessions: sessions}
}

// Execute puts the user at the first registration step and returns the
// greeting with the first prompt.
func (uc *StartRegistrationUseCase) Execute(ctx context.Context, userID int64) (Reply, error) {
	step, _ := registration.Registration.Step(registration.Registration.Initial())

	st := sessport.DialogState{
		Dialog:  string(registration.DialogRegistration),
		State:   string(step.State),
		Answers: make(map[string]string),
	}
	if err := uc.Sessions.Set(ctx, userID, st); err != nil {
		return Reply{}, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	reply := promptReply(step)
	reply.Text = MsgGreeting + "\n\n" + reply.Text
	return reply, nil
}
