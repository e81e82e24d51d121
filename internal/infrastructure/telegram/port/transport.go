package port

import "context"

// Event is one inbound chat update, normalized across the three kinds the
// bot handles: commands, free-text messages and button presses. UserID is the
// platform-stable numeric identity; Username is the optional display handle
// without the leading @.
type Event struct {
	UserID   int64
	Username string
	Text     string // message body, or the command itself for command events
	Payload  string // opaque callback action for button presses
}

// Handler processes one inbound event. Errors are logged by the adapter and
// never propagate to other users' updates.
type Handler func(ctx context.Context, ev Event) error

// Button is an inline action attached to an outbound message. Exactly one of
// URL or Action should be set: URL buttons open a link, Action buttons come
// back as a callback Event carrying the action as Payload.
type Button struct {
	Label  string
	URL    string
	Action string
}

// ReplyOptions shape the keyboard sent with a message. QuickReplies are
// suggested one-tap answers (a UX hint, typed text is still accepted);
// RemoveKeyboard hides a previously shown set of quick replies.
type ReplyOptions struct {
	QuickReplies   []string
	RemoveKeyboard bool
	Buttons        []Button
}

// Sender delivers a message to a user. A failed send is the caller's problem
// to log or skip; the transport performs no retries.
type Sender interface {
	Send(ctx context.Context, userID int64, text string, opts ReplyOptions) error
}

// Listener receives inbound updates and routes them to registered handlers.
// Registration must happen before Run. Run blocks until Stop is called.
type Listener interface {
	OnCommand(name string, h Handler)
	OnText(h Handler)
	OnCallback(h Handler)
	Run(ctx context.Context) error
	Stop()
}
