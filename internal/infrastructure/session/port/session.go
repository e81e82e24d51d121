package port

import "context"

// DialogState is the per-user position inside a multi-step dialog plus the
// answers collected so far. It is deliberately string-typed: the port stays
// free of domain imports and adapters can serialize it without custom codecs.
type DialogState struct {
	Dialog  string            `json:"dialog"`
	State   string            `json:"state"`
	Answers map[string]string `json:"answers"`
}

// Store keeps one DialogState per user. Implementations must be
// concurrency-safe; all mutable state is keyed by user id, nothing else
// serializes concurrent users.
type Store interface {
	// Get returns the state for userID, or ErrMiss when the user is not in
	// any dialog. Transport or backend failures return other errors.
	Get(ctx context.Context, userID int64) (DialogState, error)

	// Set stores (or replaces) the state for userID.
	Set(ctx context.Context, userID int64, s DialogState) error

	// Clear removes the state for userID. Clearing an absent state is a no-op.
	Clear(ctx context.Context, userID int64) error
}

// ErrMiss signals an absent dialog state in a typed way so callers can
// distinguish "no active dialog" from backend failures.
var ErrMiss = errMiss{}

type errMiss struct{}

func (e errMiss) Error() string { return "session: no active dialog" }
