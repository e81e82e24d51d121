package controller

import (
	"context"

	"go.uber.org/zap"

	sessport "github.com/antonklochkov-droid/g5-meetup-bot/internal/infrastructure/session/port"
	tport "github.com/antonklochkov-droid/g5-meetup-bot/internal/infrastructure/telegram/port"
	"github.com/antonklochkov-droid/g5-meetup-bot/internal/pkg/registration/application/usecase"
)

// StartCommandController handles the /start command only (one controller per
// trigger). /start always restarts registration, discarding any in-flight
// dialog.
type StartCommandController struct {
	UC     *usecase.StartRegistrationUseCase
	Sender tport.Sender
	Log    *zap.Logger
}

func NewStartCommandController(sessions sessport.Store, sender tport.Sender, log *zap.Logger) *StartCommandController {
	uc := usecase.NewStartRegistrationUseCase(sessions)
	return &StartCommandController{UC: uc, Sender: sender, Log: log}
}

// Handle returns the transport handler for /start.
func (h *StartCommandController) Handle() tport.Handler {
	return func(ctx context.Context, ev tport.Event) error {
		ctx, cancel := context.WithTimeout(ctx, handlerTimeout)
		defer cancel()

		reply, err := h.UC.Execute(ctx, ev.UserID)
		if err != nil {
			return err
		}
		return h.Sender.Send(ctx, ev.UserID, reply.Text, reply.Opts)
	}
}
