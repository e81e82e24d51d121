package usecase

import (
	"fmt"

	tport "github.com/antonklochkov-droid/g5-meetup-bot/internal/infrastructure/telegram/port"
)

// EventInfo carries the event-specific pieces of outbound messages. Loaded
// from configuration once at startup and injected into use cases.
type EventInfo struct {
	Title        string
	When         string // human-readable date and time
	Venue        string
	MapsURL      string
	GoogleCalURL string
	AppleCalURL  string // optional
}

// CompletionMessage renders the post-registration success text.
func (e EventInfo) CompletionMessage(fullName string) string {
	msg := fmt.Sprintf(
		"%s, thank you for registering! 🎉\n\n"+
			"See you at the G5 Games meetup:\n«%s»\n\n"+
			"📅 %s\n📍 %s",
		fullName, e.Title, e.When, e.Venue,
	)
	if e.MapsURL != "" {
		msg += "\n🗺 " + e.MapsURL
	}
	return msg
}

// CalendarButtons builds the add-to-calendar links. The Apple button appears
// only when a link is configured.
func (e EventInfo) CalendarButtons() []tport.Button {
	var buttons []tport.Button
	if e.GoogleCalURL != "" {
		buttons = append(buttons, tport.Button{Label: "🗓 Google Calendar", URL: e.GoogleCalURL})
	}
	if e.AppleCalURL != "" {
		buttons = append(buttons, tport.Button{Label: "🍎 Apple Calendar", URL: e.AppleCalURL})
	}
	return buttons
}
