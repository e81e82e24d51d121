package adapter

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	rowport "github.com/antonklochkov-droid/g5-meetup-bot/internal/infrastructure/rowstore/port"
	registration "github.com/antonklochkov-droid/g5-meetup-bot/internal/pkg/registration/application/domain"
	repository "github.com/antonklochkov-droid/g5-meetup-bot/internal/pkg/registration/persistence/repository/port"
)

// fakeRowStore is an in-memory row store with a header row, mimicking the
// worksheet shape. It records which operations were called.
type fakeRowStore struct {
	rows  [][]string
	calls []string
}

func newFakeRowStore() *fakeRowStore {
	header := make([]string, registration.RowWidth)
	header[0] = "user_id"
	return &fakeRowStore{rows: [][]string{header}}
}

var _ rowport.RowStore = (*fakeRowStore)(nil)

func (f *fakeRowStore) FindRowByKey(ctx context.Context, key string) (int, error) {
	f.calls = append(f.calls, "find")
	for i := 1; i < len(f.rows); i++ {
		if len(f.rows[i]) > 0 && strings.TrimSpace(f.rows[i][0]) == key {
			return i + 1, nil
		}
	}
	return 0, rowport.ErrNotFound
}

func (f *fakeRowStore) AppendRow(ctx context.Context, values []string) error {
	f.calls = append(f.calls, "append")
	f.rows = append(f.rows, append([]string(nil), values...))
	return nil
}

func (f *fakeRowStore) UpdateRowRange(ctx context.Context, row int, values []string) error {
	f.calls = append(f.calls, "update_range")
	f.rows[row-1] = append([]string(nil), values...)
	return nil
}

func (f *fakeRowStore) UpdateCell(ctx context.Context, row, col int, value string) error {
	f.calls = append(f.calls, "update_cell")
	f.rows[row-1][col-1] = value
	return nil
}

func (f *fakeRowStore) ReadAllRows(ctx context.Context) ([][]string, error) {
	f.calls = append(f.calls, "read_all")
	return f.rows, nil
}

func sampleRegistrant(id int64) registration.Registrant {
	return registration.Registrant{
		UserID:      id,
		Username:    "@sample",
		FullName:    "Sam Ple",
		Email:       "sam@example.com",
		Position:    "🧪 QA",
		Company:     "Acme",
		Experience:  "1-3 years",
		JobSearch:   "No",
		KnewCompany: "Yes",
	}
}

func TestUpsertAppendsThenUpdatesInPlace(t *testing.T) {
	ctx := context.Background()
	store := newFakeRowStore()
	repo := NewSheetRegistrantRepository(store)

	require.NoError(t, repo.Upsert(ctx, sampleRegistrant(100)))
	require.Len(t, store.rows, 2)
	assert.Equal(t, []string{"find", "append"}, store.calls)

	// Second registration of the same user overwrites row 2, no duplicate.
	store.calls = nil
	updated := sampleRegistrant(100)
	updated.Company = "New Co"
	require.NoError(t, repo.Upsert(ctx, updated))
	require.Len(t, store.rows, 2)
	assert.Equal(t, []string{"find", "update_range"}, store.calls)
	assert.Equal(t, "New Co", store.rows[1][registration.ColCompany-1])
}

func TestSetConfirmationWritesOnlyStatusCell(t *testing.T) {
	ctx := context.Background()
	store := newFakeRowStore()
	repo := NewSheetRegistrantRepository(store)
	require.NoError(t, repo.Upsert(ctx, sampleRegistrant(100)))

	before := append([]string(nil), store.rows[1]...)
	require.NoError(t, repo.SetConfirmation(ctx, 100, registration.StatusComing))

	for col := 1; col <= registration.RowWidth; col++ {
		if col == registration.ColConfirmed {
			assert.Equal(t, "coming", store.rows[1][col-1])
			continue
		}
		assert.Equal(t, before[col-1], store.rows[1][col-1], "column %d changed", col)
	}
}

func TestSetConfirmationUnknownUserWritesNothing(t *testing.T) {
	ctx := context.Background()
	store := newFakeRowStore()
	repo := NewSheetRegistrantRepository(store)

	err := repo.SetConfirmation(ctx, 999, registration.StatusComing)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.NotContains(t, store.calls, "update_cell")
	assert.NotContains(t, store.calls, "append")
}

func TestSetFeedbackWritesFiveCells(t *testing.T) {
	ctx := context.Background()
	store := newFakeRowStore()
	repo := NewSheetRegistrantRepository(store)
	require.NoError(t, repo.Upsert(ctx, sampleRegistrant(100)))

	answers := [registration.FeedbackCount]string{"5", "the keynote", "4", "Yes", "more coffee"}
	require.NoError(t, repo.SetFeedback(ctx, 100, answers))

	for i := 0; i < registration.FeedbackCount; i++ {
		assert.Equal(t, answers[i], store.rows[1][registration.ColFeedbackFirst-1+i])
	}

	err := repo.SetFeedback(ctx, 777, answers)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestListAllSkipsHeaderAndMalformedRows(t *testing.T) {
	ctx := context.Background()
	store := newFakeRowStore()
	repo := NewSheetRegistrantRepository(store)
	require.NoError(t, repo.Upsert(ctx, sampleRegistrant(1)))
	require.NoError(t, repo.Upsert(ctx, sampleRegistrant(2)))
	// A hand-edited junk row in the middle of the sheet.
	store.rows = append(store.rows, []string{"note to self", "do not delete"})

	regs, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, regs, 2)
	assert.Equal(t, int64(1), regs[0].UserID)
	assert.Equal(t, int64(2), regs[1].UserID)
}
