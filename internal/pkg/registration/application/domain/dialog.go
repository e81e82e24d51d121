package registration

import (
	"errors"
	"strings"
)

// State identifies a single position inside a dialog. The empty state means
// the user is not in any dialog.
type State string

const (
	StateNone State = ""

	StateRegName           State = "reg:name"
	StateRegEmail          State = "reg:email"
	StateRegPosition       State = "reg:position"
	StateRegCustomPosition State = "reg:custom_position"
	StateRegCompany        State = "reg:company"
	StateRegExperience     State = "reg:experience"
	StateRegJobSearch      State = "reg:job_search"
	StateRegKnewCompany    State = "reg:knew_company"

	StateFeedbackQ1 State = "fb:q1"
	StateFeedbackQ2 State = "fb:q2"
	StateFeedbackQ3 State = "fb:q3"
	StateFeedbackQ4 State = "fb:q4"
	StateFeedbackQ5 State = "fb:q5"

	StateComplete State = "complete"
)

// DialogKind names one of the independent questionnaires.
type DialogKind string

const (
	DialogRegistration DialogKind = "registration"
	DialogFeedback     DialogKind = "feedback"
)

// Callback action identifiers carried in button payloads. Anything else
// arriving on the callback channel is ignored.
const (
	ActionConfirmYes      = "confirm_yes"
	ActionConfirmNo       = "confirm_no"
	ActionStartFeedback   = "start_feedback"
	ActionDeclineFeedback = "decline_feedback"
)

// PositionOther is the sentinel option that branches the position step into
// free-text entry.
const PositionOther = "✏️ Other"

// ErrInvalidEmail re-prompts the email step; its message is shown to the user.
var ErrInvalidEmail = errors.New("Please enter a valid e-mail (it must contain the @ symbol):")

// Step is one question of a dialog. Transitions are data: Next is the default
// successor, Branches overrides it for specific answers. Options are a UX
// hint only; any non-empty text is accepted unless Validate rejects it.
type Step struct {
	State         State
	Field         string
	Prompt        string
	Options       []string
	RemoveOptions bool // hide a previous step's quick replies with this prompt
	Validate      func(answer string) error
	Next          State
	Branches      map[string]State
}

// Dialog is an ordered questionnaire. Steps[0] is the entry point.
type Dialog struct {
	Kind  DialogKind
	Steps []Step
}

// Initial returns the entry state of the dialog.
func (d Dialog) Initial() State {
	return d.Steps[0].State
}

// Step looks up the step owning the given state.
func (d Dialog) Step(s State) (Step, bool) {
	for _, st := range d.Steps {
		if st.State == s {
			return st, true
		}
	}
	return Step{}, false
}

// DialogFor resolves a dialog by kind.
func DialogFor(kind DialogKind) (Dialog, bool) {
	switch kind {
	case DialogRegistration:
		return Registration, true
	case DialogFeedback:
		return Feedback, true
	default:
		return Dialog{}, false
	}
}

func validateEmail(answer string) error {
	if !strings.Contains(answer, "@") {
		return ErrInvalidEmail
	}
	return nil
}

// Registration is the seven-step signup questionnaire. The custom-position
// state is reached only through the "Other" branch and merges back into the
// company step, so a straight walk still counts seven answers.
var Registration = Dialog{
	Kind: DialogRegistration,
	Steps: []Step{
		{
			State:  StateRegName,
			Field:  "full_name",
			Prompt: "(1/7) Please enter your first and last name:",
			Next:   StateRegEmail,
		},
		{
			State:    StateRegEmail,
			Field:    "email",
			Prompt:   "(2/7) Your e-mail:",
			Validate: validateEmail,
			Next:     StateRegPosition,
		},
		{
			State:  StateRegPosition,
			Field:  "position",
			Prompt: "(3/7) Which area are you working in right now?",
			Options: []string{
				"🎮 Game Design",
				"📊 Product / Analytics",
				"🎨 Art / Design",
				"💻 Development",
				"📢 Marketing",
				"🧪 QA",
				"🧠 Management / Lead",
				"📚 HR / Recruitment",
				PositionOther,
			},
			Next:     StateRegCompany,
			Branches: map[string]State{PositionOther: StateRegCustomPosition},
		},
		{
			State:         StateRegCustomPosition,
			Field:         "position",
			Prompt:        "Please type your area manually:",
			RemoveOptions: true,
			Next:          StateRegCompany,
		},
		{
			State:         StateRegCompany,
			Field:         "company",
			Prompt:        "(4/7) What company do you work for?",
			RemoveOptions: true,
			Next:          StateRegExperience,
		},
		{
			State:  StateRegExperience,
			Field:  "experience",
			Prompt: "(5/7) Your experience in game development:",
			Options: []string{
				"no experience",
				"less than 1 year",
				"1-3 years",
				"3-6 years",
				"6+ years",
			},
			Next: StateRegJobSearch,
		},
		{
			State:   StateRegJobSearch,
			Field:   "job_search",
			Prompt:  "(6/7) Are you open to new job opportunities?",
			Options: []string{"Yes", "No"},
			Next:    StateRegKnewCompany,
		},
		{
			State:   StateRegKnewCompany,
			Field:   "knew_company",
			Prompt:  "(7/7) Did you know about G5 Games before this event?",
			Options: []string{"Yes", "No"},
			Next:    StateComplete,
		},
	},
}

// Feedback is the five-question post-event survey, entered only via the
// start_feedback button.
var Feedback = Dialog{
	Kind: DialogFeedback,
	Steps: []Step{
		{
			State:   StateFeedbackQ1,
			Field:   "fb_1",
			Prompt:  "(1/5) How would you rate the meetup overall?",
			Options: []string{"1", "2", "3", "4", "5"},
			Next:    StateFeedbackQ2,
		},
		{
			State:         StateFeedbackQ2,
			Field:         "fb_2",
			Prompt:        "(2/5) Which talk did you enjoy the most?",
			RemoveOptions: true,
			Next:          StateFeedbackQ3,
		},
		{
			State:   StateFeedbackQ3,
			Field:   "fb_3",
			Prompt:  "(3/5) How useful was the content for your day-to-day work?",
			Options: []string{"1", "2", "3", "4", "5"},
			Next:    StateFeedbackQ4,
		},
		{
			State:   StateFeedbackQ4,
			Field:   "fb_4",
			Prompt:  "(4/5) Would you come to our next meetup?",
			Options: []string{"Yes", "No"},
			Next:    StateFeedbackQ5,
		},
		{
			State:         StateFeedbackQ5,
			Field:         "fb_5",
			Prompt:        "(5/5) Anything we should improve next time?",
			RemoveOptions: true,
			Next:          StateComplete,
		},
	},
}
