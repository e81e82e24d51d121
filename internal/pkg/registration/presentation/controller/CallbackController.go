package controller

import (
	"context"

	"go.uber.org/zap"

	sessport "github.com/antonklochkov-droid/g5-meetup-bot/internal/infrastructure/session/port"
	tport "github.com/antonklochkov-droid/g5-meetup-bot/internal/infrastructure/telegram/port"
	registration "github.com/antonklochkov-droid/g5-meetup-bot/internal/pkg/registration/application/domain"
	"github.com/antonklochkov-droid/g5-meetup-bot/internal/pkg/registration/application/usecase"
	repository "github.com/antonklochkov-droid/g5-meetup-bot/internal/pkg/registration/persistence/repository/port"
)

// CallbackController dispatches inline button presses by their payload
// action. Unknown payloads, including ones from buttons of older bot
// versions, are dropped without a reply.
type CallbackController struct {
	Confirm       *usecase.ConfirmAttendanceUseCase
	StartFeedback *usecase.StartFeedbackUseCase
	Sender        tport.Sender
	Log           *zap.Logger
}

func NewCallbackController(
	sessions sessport.Store,
	repo repository.RegistrantRepository,
	sender tport.Sender,
	log *zap.Logger,
) *CallbackController {
	return &CallbackController{
		Confirm:       usecase.NewConfirmAttendanceUseCase(repo, log),
		StartFeedback: usecase.NewStartFeedbackUseCase(sessions),
		Sender:        sender,
		Log:           log,
	}
}

// Handle returns the transport handler for callback events.
func (h *CallbackController) Handle() tport.Handler {
	return func(ctx context.Context, ev tport.Event) error {
		ctx, cancel := context.WithTimeout(ctx, handlerTimeout)
		defer cancel()

		var (
			reply usecase.Reply
			err   error
		)
		switch ev.Payload {
		case registration.ActionConfirmYes:
			reply, err = h.Confirm.Execute(ctx, ev.UserID, registration.StatusComing)
		case registration.ActionConfirmNo:
			reply, err = h.Confirm.Execute(ctx, ev.UserID, registration.StatusDeclined)
		case registration.ActionStartFeedback:
			reply, err = h.StartFeedback.Execute(ctx, ev.UserID)
		case registration.ActionDeclineFeedback:
			reply = usecase.Reply{Text: usecase.MsgFeedbackDeclined}
		default:
			h.Log.Debug("ignoring unknown callback payload",
				zap.Int64("user_id", ev.UserID),
				zap.String("payload", ev.Payload),
			)
			return nil
		}
		if err != nil {
			return err
		}
		return h.Sender.Send(ctx, ev.UserID, reply.Text, reply.Opts)
	}
}
