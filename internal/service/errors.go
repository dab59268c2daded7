package service

import (
	"errors"
	"fmt"

	"tradingdesk/internal/models"
)

// ErrValidation marks caller mistakes (missing fields, illegal transitions).
// Handlers map it to 400.
var ErrValidation = errors.New("validation")

// ErrNotFound marks a missing row (unknown id, uninitialized portfolio or
// config). Handlers map it to 404.
var ErrNotFound = errors.New("not found")

func validationErr(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

func notFoundErr(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

// ActiveDrawdownError rejects a new drawdown event while an equal-or-higher
// level event is still open. It carries the blocking event so the handler can
// return it as context.
type ActiveDrawdownError struct {
	Event *models.DrawdownEvent
}

func (e *ActiveDrawdownError) Error() string {
	return fmt.Sprintf("an active drawdown event of level %d or higher already exists", e.Event.Level)
}
