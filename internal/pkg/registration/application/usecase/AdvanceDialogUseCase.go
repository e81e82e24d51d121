package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	sessport "github.com/antonklochkov-droid/g5-meetup-bot/internal/infrastructure/session/port"
	registration "github.com/antonklochkov-droid/g5-meetup-bot/internal/pkg/registration/application/domain"
	repository "github.com/antonklochkov-droid/g5-meetup-bot/internal/pkg/registration/persistence/repository/port"
)

// AdvanceInput carries one user text message into the dialog engine.
type AdvanceInput struct {
	UserID   int64
	Username string
	Text     string
}

// AdvanceDialogUseCase is the conversation engine: it applies one answer to
// the user's current dialog step and either re-prompts, advances, or commits
// the finished questionnaire to the repository.
type AdvanceDialogUseCase struct {
	Sessions sessport.Store
	Repo     repository.RegistrantRepository
	Event    EventInfo
	Log      *zap.Logger
}

func NewAdvanceDialogUseCase(sessions sessport.Store, repo repository.RegistrantRepository, event EventInfo, log *zap.Logger) *AdvanceDialogUseCase {
	return &AdvanceDialogUseCase{Sessions: sessions, Repo: repo, Event: event, Log: log}
}

// Execute processes one answer. It returns ErrNoActiveDialog when the user is
// not inside a dialog so the dispatcher can fall back to literal triggers.
// One step may produce more than one outbound message (completion plus the
// calendar buttons), hence the slice.
func (uc *AdvanceDialogUseCase) Execute(ctx context.Context, in AdvanceInput) ([]Reply, error) {
	st, err := uc.Sessions.Get(ctx, in.UserID)
	if errors.Is(err, sessport.ErrMiss) {
		return nil, ErrNoActiveDialog
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	dialog, ok := registration.DialogFor(registration.DialogKind(st.Dialog))
	if !ok {
		// Corrupt or legacy state: drop it rather than trap the user.
		_ = uc.Sessions.Clear(ctx, in.UserID)
		return nil, ErrNoActiveDialog
	}
	step, ok := dialog.Step(registration.State(st.State))
	if !ok {
		_ = uc.Sessions.Clear(ctx, in.UserID)
		return nil, ErrNoActiveDialog
	}

	answer := strings.TrimSpace(in.Text)
	if answer == "" {
		return []Reply{promptReply(step)}, nil
	}
	if step.Validate != nil {
		if verr := step.Validate(answer); verr != nil {
			// Re-prompt the same state; no transition, nothing stored.
			return []Reply{{Text: verr.Error()}}, nil
		}
	}

	// A branch sentinel redirects without consuming the answer; the merged-in
	// step collects the same field instead.
	if next, branched := step.Branches[answer]; branched {
		branchStep, ok := dialog.Step(next)
		if !ok {
			return nil, fmt.Errorf("dialog %s: branch to unknown state %q", dialog.Kind, next)
		}
		st.State = string(next)
		if err := uc.Sessions.Set(ctx, in.UserID, st); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
		}
		return []Reply{promptReply(branchStep)}, nil
	}

	st.Answers[step.Field] = answer

	if step.Next == registration.StateComplete {
		defer func() {
			if cerr := uc.Sessions.Clear(ctx, in.UserID); cerr != nil {
				uc.Log.Warn("failed to clear dialog state", zap.Int64("user_id", in.UserID), zap.Error(cerr))
			}
		}()
		switch dialog.Kind {
		case registration.DialogFeedback:
			return uc.completeFeedback(ctx, in, st), nil
		default:
			return uc.completeRegistration(ctx, in, st), nil
		}
	}

	nextStep, ok := dialog.Step(step.Next)
	if !ok {
		return nil, fmt.Errorf("dialog %s: transition to unknown state %q", dialog.Kind, step.Next)
	}
	st.State = string(step.Next)
	if err := uc.Sessions.Set(ctx, in.UserID, st); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return []Reply{promptReply(nextStep)}, nil
}

// completeRegistration commits the full record via upsert-by-key. A failed
// write is logged but the user still sees the success message: best-effort
// UX over strict consistency, an accepted inconsistency risk.
func (uc *AdvanceDialogUseCase) completeRegistration(ctx context.Context, in AdvanceInput, st sessport.DialogState) []Reply {
	reg := registration.Registrant{
		UserID:      in.UserID,
		Username:    handleOf(in.Username),
		FullName:    st.Answers["full_name"],
		Email:       st.Answers["email"],
		Position:    st.Answers["position"],
		Company:     st.Answers["company"],
		Experience:  st.Answers["experience"],
		JobSearch:   st.Answers["job_search"],
		KnewCompany: st.Answers["knew_company"],
		Confirmed:   registration.StatusUnset,
	}

	if err := uc.Repo.Upsert(ctx, reg); err != nil {
		uc.Log.Error("registration commit failed",
			zap.Int64("user_id", in.UserID),
			zap.Error(err),
		)
	}

	replies := []Reply{{
		Text: uc.Event.CompletionMessage(reg.FullName),
		Opts: removeKeyboard(),
	}}
	if buttons := uc.Event.CalendarButtons(); len(buttons) > 0 {
		replies = append(replies, Reply{Text: MsgCalendarPrompt, Opts: withButtons(buttons)})
	}
	return replies
}

// completeFeedback merges the answers into the existing row. A missing row is
// a named, logged outcome; the user still gets the thank-you message.
func (uc *AdvanceDialogUseCase) completeFeedback(ctx context.Context, in AdvanceInput, st sessport.DialogState) []Reply {
	var answers [registration.FeedbackCount]string
	for i, step := range registration.Feedback.Steps {
		answers[i] = st.Answers[step.Field]
	}

	err := uc.Repo.SetFeedback(ctx, in.UserID, answers)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		uc.Log.Warn("feedback write skipped",
			zap.Int64("user_id", in.UserID),
			zap.Error(ErrNotRegistered),
		)
	case err != nil:
		uc.Log.Error("feedback commit failed",
			zap.Int64("user_id", in.UserID),
			zap.Error(err),
		)
	}

	return []Reply{{Text: MsgFeedbackThanks, Opts: removeKeyboard()}}
}

func handleOf(username string) string {
	if username == "" {
		return ""
	}
	return "@" + strings.TrimPrefix(username, "@")
}
