package wfhrequest

import (
	"errors"
	"fmt"
)

// Error kinds surfaced by the lifecycle and read paths. Callers match with errors.Is.
var (
	ErrValidation        = errors.New("invalid request input")
	ErrNotFound          = errors.New("request not found")
	ErrStaffNotFound     = errors.New("staff not found")
	ErrInvalidTransition = errors.New("request not in a state that allows this transition")
	ErrStorage           = errors.New("storage failure")
)

// StorageError tags err as ErrStorage while keeping the driver error in the chain.
func StorageError(err error) error {
	if err == nil || errors.Is(err, ErrStorage) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrStorage, err)
}

// ValidationError builds an ErrValidation with a human-readable detail.
func ValidationError(msg string) error {
	return fmt.Errorf("%w: %s", ErrValidation, msg)
}

// TransitionError reports an illegal move of requestID from one status to another.
func TransitionError(requestID string, from, to Status) error {
	return fmt.Errorf("%w: request %s is %s, cannot become %s", ErrInvalidTransition, requestID, from, to)
}
