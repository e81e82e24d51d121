package controller

import (
	"context"
	"time"

	tport "github.com/antonklochkov-droid/g5-meetup-bot/internal/infrastructure/telegram/port"
	"github.com/antonklochkov-droid/g5-meetup-bot/internal/pkg/registration/application/usecase"
)

// handlerTimeout bounds one update's worth of work, including the row-store
// round trips behind it.
const handlerTimeout = 10 * time.Second

// sendReplies delivers a use case's outbound messages in order, stopping at
// the first transport failure.
func sendReplies(ctx context.Context, s tport.Sender, userID int64, replies []usecase.Reply) error {
	for _, r := range replies {
		if err := s.Send(ctx, userID, r.Text, r.Opts); err != nil {
			return err
		}
	}
	return nil
}
