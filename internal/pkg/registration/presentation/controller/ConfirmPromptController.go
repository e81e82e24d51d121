package controller

import (
	"context"

	tport "github.com/antonklochkov-droid/g5-meetup-bot/internal/infrastructure/telegram/port"
	"github.com/antonklochkov-droid/g5-meetup-bot/internal/pkg/registration/application/usecase"
)

// ConfirmPromptController handles /test_confirm: it sends the caller the same
// confirmation prompt the reminder campaign broadcasts, for checking the
// button flow without scheduling anything.
type ConfirmPromptController struct {
	Sender tport.Sender
}

func NewConfirmPromptController(sender tport.Sender) *ConfirmPromptController {
	return &ConfirmPromptController{Sender: sender}
}

func (h *ConfirmPromptController) Handle() tport.Handler {
	return func(ctx context.Context, ev tport.Event) error {
		ctx, cancel := context.WithTimeout(ctx, handlerTimeout)
		defer cancel()

		opts := tport.ReplyOptions{Buttons: usecase.ConfirmButtons()}
		return h.Sender.Send(ctx, ev.UserID, usecase.MsgConfirmPrompt, opts)
	}
}
