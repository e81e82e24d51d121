package usecase

import (
	tport "github.com/antonklochkov-droid/g5-meetup-bot/internal/infrastructure/telegram/port"
	registration "github.com/antonklochkov-droid/g5-meetup-bot/internal/pkg/registration/application/domain"
)

// User-facing texts. The confirm labels double as literal text triggers when
// a user without an active dialog types them instead of tapping the button.
const (
	ConfirmYesLabel = "✅ I'll be there!"
	ConfirmNoLabel  = "❌ My plans changed"

	MsgGreeting = "Hello! 👋\n\n" +
		"You are registering for the G5 Games meetup:\n" +
		"«Product & Marketing in Gamedev»."

	MsgConfirmPrompt = "🔔 Will you be able to make it?"

	MsgConfirmedComing = "Great, we've marked you as coming!\n" +
		"See you at the meetup 👋"

	MsgConfirmedDeclined = "We understand, plans change 🙂\n" +
		"Thanks for letting us know!\n\n" +
		"Follow @g5careers for future meetup announcements."

	MsgRegisterFirst = "Looks like you haven't registered through the bot yet. Tap /start 🙂"

	MsgCalendarPrompt = "Add the event to your calendar:"

	MsgFeedbackIntro = "We'd love to hear how it went!"

	MsgFeedbackThanks = "Thank you! Your feedback helps us make the next meetup better 💛"

	MsgFeedbackDeclined = "No worries! Thanks for coming, and see you next time 👋"
)

// Reply is what a handler asks the transport to show next: one message with
// its keyboard. Controllers translate replies into transport sends.
type Reply struct {
	Text string
	Opts tport.ReplyOptions
}

func removeKeyboard() tport.ReplyOptions {
	return tport.ReplyOptions{RemoveKeyboard: true}
}

func withButtons(buttons []tport.Button) tport.ReplyOptions {
	return tport.ReplyOptions{Buttons: buttons}
}

// promptReply renders a dialog step as a message with its option hints.
func promptReply(step registration.Step) Reply {
	return Reply{
		Text: step.Prompt,
		Opts: tport.ReplyOptions{
			QuickReplies:   step.Options,
			RemoveKeyboard: step.RemoveOptions && len(step.Options) == 0,
		},
	}
}

// ConfirmButtons builds the inline attendance-confirmation keyboard used by
// the confirm prompt and the reminder campaigns.
func ConfirmButtons() []tport.Button {
	return []tport.Button{
		{Label: ConfirmYesLabel, Action: registration.ActionConfirmYes},
		{Label: ConfirmNoLabel, Action: registration.ActionConfirmNo},
	}
}

// FeedbackButtons builds the inline keyboard offered by the feedback
// solicitation campaign.
func FeedbackButtons() []tport.Button {
	return []tport.Button{
		{Label: "📝 Share feedback", Action: registration.ActionStartFeedback},
		{Label: "Maybe later", Action: registration.ActionDeclineFeedback},
	}
}
