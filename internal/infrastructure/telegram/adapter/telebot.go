package adapter

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"

	"github.com/antonklochkov-droid/g5-meetup-bot/internal/infrastructure/telegram/port"
)

const pollTimeout = 10 * time.Second

// Telebot is an adapter that satisfies both the port.Sender and port.Listener
// interfaces using a telebot v3 long-polling bot.
type Telebot struct {
	bot *tele.Bot
	log *zap.Logger

	// runCtx is the context handlers run under; set once in Run before the
	// poller starts delivering updates.
	runCtx context.Context
}

// NewTelebot constructs the adapter and verifies the token by creating the
// underlying bot (telebot performs a getMe call here).
func NewTelebot(token string, log *zap.Logger) (*Telebot, error) {
	if token == "" {
		return nil, fmt.Errorf("telegram: bot token is required")
	}
	b, err := tele.NewBot(tele.Settings{
		Token:  token,
		Poller: &tele.LongPoller{Timeout: pollTimeout},
	})
	if err != nil {
		return nil, fmt.Errorf("telegram: new bot: %w", err)
	}
	return &Telebot{bot: b, log: log, runCtx: context.Background()}, nil
}

// Ensure interface compliance at compile time
var (
	_ port.Sender   = (*Telebot)(nil)
	_ port.Listener = (*Telebot)(nil)
)

func (t *Telebot) Send(ctx context.Context, userID int64, text string, opts port.ReplyOptions) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	to := &tele.User{ID: userID}
	markup := buildMarkup(opts)
	var err error
	if markup != nil {
		_, err = t.bot.Send(to, text, markup)
	} else {
		_, err = t.bot.Send(to, text)
	}
	if err != nil {
		return fmt.Errorf("telegram: send to %d: %w", userID, err)
	}
	return nil
}

func (t *Telebot) OnCommand(name string, h port.Handler) {
	t.bot.Handle("/"+strings.TrimPrefix(name, "/"), func(c tele.Context) error {
		t.dispatch(h, eventFrom(c))
		return nil
	})
}

func (t *Telebot) OnText(h port.Handler) {
	t.bot.Handle(tele.OnText, func(c tele.Context) error {
		t.dispatch(h, eventFrom(c))
		return nil
	})
}

func (t *Telebot) OnCallback(h port.Handler) {
	t.bot.Handle(tele.OnCallback, func(c tele.Context) error {
		ev := eventFrom(c)
		if cb := c.Callback(); cb != nil {
			ev.Payload = normalizePayload(cb.Data)
		}
		t.dispatch(h, ev)
		// Always answer the callback so the client stops the spinner.
		return c.Respond()
	})
}

// Run blocks polling for updates until Stop is called or ctx is canceled.
func (t *Telebot) Run(ctx context.Context) error {
	t.runCtx = ctx
	go func() {
		<-ctx.Done()
		t.bot.Stop()
	}()
	t.bot.Start()
	return nil
}

func (t *Telebot) Stop() {
	t.bot.Stop()
}

// dispatch runs a handler and contains its error: one user's failure must not
// disturb the polling loop or other users' updates.
func (t *Telebot) dispatch(h port.Handler, ev port.Event) {
	if err := h(t.runCtx, ev); err != nil {
		t.log.Warn("handler failed",
			zap.Int64("user_id", ev.UserID),
			zap.Error(err),
		)
	}
}

func eventFrom(c tele.Context) port.Event {
	ev := port.Event{Text: c.Text()}
	if from := c.Sender(); from != nil {
		ev.UserID = from.ID
		ev.Username = from.Username
	}
	return ev
}

// normalizePayload strips telebot's unique-button framing ("\f<unique>|<data>")
// so handlers always see the bare action identifier.
func normalizePayload(data string) string {
	data = strings.TrimPrefix(data, "\f")
	if i := strings.IndexByte(data, '|'); i >= 0 {
		data = data[:i]
	}
	return strings.TrimSpace(data)
}

func buildMarkup(opts port.ReplyOptions) *tele.ReplyMarkup {
	switch {
	case len(opts.Buttons) > 0:
		markup := &tele.ReplyMarkup{}
		rows := make([][]tele.InlineButton, 0, len(opts.Buttons))
		for _, b := range opts.Buttons {
			rows = append(rows, []tele.InlineButton{{
				Text: b.Label,
				URL:  b.URL,
				Data: b.Action,
			}})
		}
		markup.InlineKeyboard = rows
		return markup
	case len(opts.QuickReplies) > 0:
		markup := &tele.ReplyMarkup{ResizeKeyboard: true}
		// Two buttons per row, matching the compact layout users expect.
		var rows [][]tele.ReplyButton
		for i := 0; i < len(opts.QuickReplies); i += 2 {
			row := []tele.ReplyButton{{Text: opts.QuickReplies[i]}}
			if i+1 < len(opts.QuickReplies) {
				row = append(row, tele.ReplyButton{Text: opts.QuickReplies[i+1]})
			}
			rows = append(rows, row)
		}
		markup.ReplyKeyboard = rows
		return markup
	case opts.RemoveKeyboard:
		return &tele.ReplyMarkup{RemoveKeyboard: true}
	default:
		return nil
	}
}
