package repository

import (
	"context"
	"errors"

	registration "github.com/antonklochkov-droid/g5-meetup-bot/internal/pkg/registration/application/domain"
)

// ErrNotFound signals that no registrant row exists for the given user id.
// Adapters translate their backend's not-found condition into this error.
var ErrNotFound = errors.New("registrant: not found")

// RegistrantRepository defines persistence operations for registrant records.
// Uniqueness by user id is a find-before-write contract: Upsert updates an
// existing row in place when one exists and appends otherwise.
type RegistrantRepository interface {
	// Upsert writes the full record: update in place when a row for
	// r.UserID exists, append a new row otherwise.
	Upsert(ctx context.Context, r registration.Registrant) error

	// SetConfirmation writes only the confirmation field of an existing
	// record. Returns ErrNotFound when the user has no row.
	SetConfirmation(ctx context.Context, userID int64, status registration.ConfirmationStatus) error

	// SetFeedback writes the five feedback fields of an existing record.
	// Returns ErrNotFound when the user has no row.
	SetFeedback(ctx context.Context, userID int64, answers [registration.FeedbackCount]string) error

	// ListAll returns a snapshot of every registrant. Rows that fail to
	// parse are skipped, not surfaced.
	ListAll(ctx context.Context) ([]registration.Registrant, error)
}
