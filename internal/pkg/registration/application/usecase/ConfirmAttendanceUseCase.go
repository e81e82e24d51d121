package usecase

import (
	"context"
	"errors"

	"go.uber.org/zap"

	registration "github.com/antonklochkov-droid/g5-meetup-bot/internal/pkg/registration/application/domain"
	repository "github.com/antonklochkov-droid/g5-meetup-bot/internal/pkg/registration/persistence/repository/port"
)

// ConfirmAttendanceUseCase handles the stateless confirm_yes/confirm_no
// triggers: a single-field write of the confirmation status, available at any
// time regardless of conversation state.
type ConfirmAttendanceUseCase struct {
	Repo repository.RegistrantRepository
	Log  *zap.Logger
}

func NewConfirmAttendanceUseCase(repo repository.RegistrantRepository, log *zap.Logger) *ConfirmAttendanceUseCase {
	return &ConfirmAttendanceUseCase{Repo: repo, Log: log}
}

// Execute records the status and returns the acknowledgment. A user without
// a registrant row gets the register-first message and nothing is written.
// Other store failures are logged and the user still sees the normal
// acknowledgment, matching the degrade-gracefully contract.
func (uc *ConfirmAttendanceUseCase) Execute(ctx context.Context, userID int64, status registration.ConfirmationStatus) (Reply, error) {
	ack := MsgConfirmedComing
	if status == registration.StatusDeclined {
		ack = MsgConfirmedDeclined
	}

	err := uc.Repo.SetConfirmation(ctx, userID, status)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return Reply{Text: MsgRegisterFirst}, nil
	case err != nil:
		uc.Log.Error("confirmation write failed",
			zap.Int64("user_id", userID),
			zap.String("status", string(status)),
			zap.Error(err),
		)
	}
	return Reply{Text: ack}, nil
}
