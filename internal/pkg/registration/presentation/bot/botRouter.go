package bot

import (
	"go.uber.org/zap"

	sessport "github.com/antonklochkov-droid/g5-meetup-bot/internal/infrastructure/session/port"
	tport "github.com/antonklochkov-droid/g5-meetup-bot/internal/infrastructure/telegram/port"
	"github.com/antonklochkov-droid/g5-meetup-bot/internal/pkg/registration/application/usecase"
	repository "github.com/antonklochkov-droid/g5-meetup-bot/internal/pkg/registration/persistence/repository/port"
	"github.com/antonklochkov-droid/g5-meetup-bot/internal/pkg/registration/presentation/controller"
)

// RegisterHandlers wires bot triggers to their controllers.
// It constructs per-trigger controllers and binds them directly to the
// listener; registration must happen before the listener runs.
func RegisterHandlers(
	l tport.Listener,
	sender tport.Sender,
	sessions sessport.Store,
	repo repository.RegistrantRepository,
	event usecase.EventInfo,
	log *zap.Logger,
) {
	startCtl := controller.NewStartCommandController(sessions, sender, log)
	textCtl := controller.NewTextMessageController(sessions, repo, event, sender, log)
	callbackCtl := controller.NewCallbackController(sessions, repo, sender, log)
	confirmCtl := controller.NewConfirmPromptController(sender)

	// /start -> begin (or restart) registration
	l.OnCommand("/start", startCtl.Handle())

	// /test_confirm -> preview the confirmation prompt
	l.OnCommand("/test_confirm", confirmCtl.Handle())

	// plain text -> dialog answer or literal confirmation trigger
	l.OnText(textCtl.Handle())

	// inline button presses -> action dispatch
	l.OnCallback(callbackCtl.Handle())
}
