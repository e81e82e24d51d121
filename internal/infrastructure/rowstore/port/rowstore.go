package port

import "context"

// RowStore defines the minimal contract for the shared tabular store that
// acts as the system of record. Rows are addressed by their 1-based index in
// the worksheet; row 1 is the header and is never written by these calls.
//
// Every operation may fail (network, auth expiry, quota). Implementations
// surface failures as errors and perform no retries; batch callers apply
// their own skip-and-continue policy.
type RowStore interface {
	// FindRowByKey scans the key column and returns the 1-based row index of
	// the first row whose key cell equals key by string comparison. Returns
	// ErrNotFound when no row matches.
	FindRowByKey(ctx context.Context, key string) (int, error)

	// AppendRow adds values as a new row after the last non-empty row. No
	// uniqueness check is performed here; callers find before they write.
	AppendRow(ctx context.Context, values []string) error

	// UpdateRowRange overwrites a full fixed-width row in a single call so an
	// interrupted write cannot leave a partially updated row.
	UpdateRowRange(ctx context.Context, row int, values []string) error

	// UpdateCell writes a single cell at (row, col), both 1-based.
	UpdateCell(ctx context.Context, row, col int, value string) error

	// ReadAllRows returns a full snapshot of the worksheet including the
	// header row. No pagination; expected row counts are in the hundreds.
	ReadAllRows(ctx context.Context) ([][]string, error)
}

// ErrNotFound signals a key lookup that matched no row, in a typed way so
// callers can distinguish "no row yet" from transport errors.
var ErrNotFound = errNotFound{}

type errNotFound struct{}

func (e errNotFound) Error() string { return "rowstore: row not found" }
