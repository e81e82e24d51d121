package usecase

import (
	"errors"
	"fmt"
)

// ErrPersistence indicates an infrastructure/repository failure inside a use case
var ErrPersistence = fmt.Errorf("registration use case persistence error")

// ErrNoActiveDialog tells the dispatcher the user is not inside any dialog,
// so the text should fall through to literal trigger matching.
var ErrNoActiveDialog = errors.New("registration: no active dialog")

// ErrNotRegistered names the previously silent outcome of a feedback write
// for a user without a registrant row. It is logged, not shown to the user.
var ErrNotRegistered = errors.New("registration: user has no registrant row")
