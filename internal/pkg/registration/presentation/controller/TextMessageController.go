package controller

import (
	"context"
	"errors"

	"go.uber.org/zap"

	sessport "github.com/antonklochkov-droid/g5-meetup-bot/internal/infrastructure/session/port"
	tport "github.com/antonklochkov-droid/g5-meetup-bot/internal/infrastructure/telegram/port"
	registration "github.com/antonklochkov-droid/g5-meetup-bot/internal/pkg/registration/application/domain"
	"github.com/antonklochkov-droid/g5-meetup-bot/internal/pkg/registration/application/usecase"
	repository "github.com/antonklochkov-droid/g5-meetup-bot/internal/pkg/registration/persistence/repository/port"
)

// TextMessageController routes free-text messages. Inside a dialog the text
// is the next answer; outside one it may still match a literal confirmation
// label typed instead of tapped. Anything else is ignored.
type TextMessageController struct {
	Advance *usecase.AdvanceDialogUseCase
	Confirm *usecase.ConfirmAttendanceUseCase
	Sender  tport.Sender
	Log     *zap.Logger
}

func NewTextMessageController(
	sessions sessport.Store,
	repo repository.RegistrantRepository,
	event usecase.EventInfo,
	sender tport.Sender,
	log *zap.Logger,
) *TextMessageController {
	return &TextMessageController{
		Advance: usecase.NewAdvanceDialogUseCase(sessions, repo, event, log),
		Confirm: usecase.NewConfirmAttendanceUseCase(repo, log),
		Sender:  sender,
		Log:     log,
	}
}

// Handle returns the transport handler for plain messages.
func (h *TextMessageController) Handle() tport.Handler {
	return func(ctx context.Context, ev tport.Event) error {
		ctx, cancel := context.WithTimeout(ctx, handlerTimeout)
		defer cancel()

		replies, err := h.Advance.Execute(ctx, usecase.AdvanceInput{
			UserID:   ev.UserID,
			Username: ev.Username,
			Text:     ev.Text,
		})
		if errors.Is(err, usecase.ErrNoActiveDialog) {
			return h.handleLooseText(ctx, ev)
		}
		if err != nil {
			return err
		}
		return sendReplies(ctx, h.Sender, ev.UserID, replies)
	}
}

// handleLooseText matches confirmation button labels typed as plain text so
// keyboard answers keep working after the inline message scrolled away.
func (h *TextMessageController) handleLooseText(ctx context.Context, ev tport.Event) error {
	var status registration.ConfirmationStatus
	switch ev.Text {
	case usecase.ConfirmYesLabel:
		status = registration.StatusComing
	case usecase.ConfirmNoLabel:
		status = registration.StatusDeclined
	default:
		return nil
	}

	reply, err := h.Confirm.Execute(ctx, ev.UserID, status)
	if err != nil {
		return err
	}
	return h.Sender.Send(ctx, ev.UserID, reply.Text, reply.Opts)
}
