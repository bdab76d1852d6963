package services

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the catalog and attempt managers. Handlers map
// these to HTTP statuses; nothing is swallowed except the documented
// leniencies (corrupt-snapshot fallback, lenient duration coercion).
var (
	ErrExamNotFound     = errors.New("exam not found")
	ErrQuestionNotFound = errors.New("question not found")
	ErrAttemptNotFound  = errors.New("attempt not found")
	ErrResultNotFound   = errors.New("result not found")

	// ErrAttemptAlreadySubmitted is the conflict returned when a submitted
	// attempt is submitted again. Submission is strictly one-shot.
	ErrAttemptAlreadySubmitted = errors.New("attempt already submitted")

	// ErrTransport wraps remote-backend failures surfaced by pkg/client.
	// Transport details are not leaked past the wrap.
	ErrTransport = errors.New("transport failure")
)

// PermissionError reports an operation on a resource the caller does not own.
type PermissionError struct {
	UserID     int64
	ResourceID int64
	Resource   string
	Action     string
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("user %d may not %s %s %d", e.UserID, e.Action, e.Resource, e.ResourceID)
}

func NewPermissionError(userID, resourceID int64, resource, action string) error {
	return &PermissionError{UserID: userID, ResourceID: resourceID, Resource: resource, Action: action}
}

// IsNotFound reports whether err is any of the not-found sentinels.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrExamNotFound) ||
		errors.Is(err, ErrQuestionNotFound) ||
		errors.Is(err, ErrAttemptNotFound) ||
		errors.Is(err, ErrResultNotFound)
}
