package adapter

import (
	"context"
	"errors"
	"strconv"

	rowport "github.com/antonklochkov-droid/g5-meetup-bot/internal/infrastructure/rowstore/port"
	registration "github.com/antonklochkov-droid/g5-meetup-bot/internal/pkg/registration/application/domain"
	repository "github.com/antonklochkov-droid/g5-meetup-bot/internal/pkg/registration/persistence/repository/port"
)

// SheetRegistrantRepository implements the registrant repository on top of
// the row-store port, i.e. one worksheet with the fixed column layout from
// the domain package.
type SheetRegistrantRepository struct {
	store rowport.RowStore
}

func NewSheetRegistrantRepository(store rowport.RowStore) *SheetRegistrantRepository {
	return &SheetRegistrantRepository{store: store}
}

// Ensure interface compliance at compile time
var _ repository.RegistrantRepository = (*SheetRegistrantRepository)(nil)

func (r *SheetRegistrantRepository) Upsert(ctx context.Context, reg registration.Registrant) error {
	row, err := r.store.FindRowByKey(ctx, strconv.FormatInt(reg.UserID, 10))
	if errors.Is(err, rowport.ErrNotFound) {
		return r.store.AppendRow(ctx, reg.Row())
	}
	if err != nil {
		return err
	}
	return r.store.UpdateRowRange(ctx, row, reg.Row())
}

func (r *SheetRegistrantRepository) SetConfirmation(ctx context.Context, userID int64, status registration.ConfirmationStatus) error {
	row, err := r.store.FindRowByKey(ctx, strconv.FormatInt(userID, 10))
	if errors.Is(err, rowport.ErrNotFound) {
		return repository.ErrNotFound
	}
	if err != nil {
		return err
	}
	return r.store.UpdateCell(ctx, row, registration.ColConfirmed, string(status))
}

func (r *SheetRegistrantRepository) SetFeedback(ctx context.Context, userID int64, answers [registration.FeedbackCount]string) error {
	row, err := r.store.FindRowByKey(ctx, strconv.FormatInt(userID, 10))
	if errors.Is(err, rowport.ErrNotFound) {
		return repository.ErrNotFound
	}
	if err != nil {
		return err
	}
	for i, answer := range answers {
		if err := r.store.UpdateCell(ctx, row, registration.ColFeedbackFirst+i, answer); err != nil {
			return err
		}
	}
	return nil
}

func (r *SheetRegistrantRepository) ListAll(ctx context.Context) ([]registration.Registrant, error) {
	rows, err := r.store.ReadAllRows(ctx)
	if err != nil {
		return nil, err
	}
	regs := make([]registration.Registrant, 0, len(rows))
	for i, row := range rows {
		if i == 0 {
			continue // header
		}
		reg, err := registration.ParseRow(row)
		if err != nil {
			// Malformed rows (hand-edited sheet, stray notes) are skipped.
			continue
		}
		regs = append(regs, reg)
	}
	return regs, nil
}
