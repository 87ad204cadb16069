package services

import (
	"errors"
	"fmt"
)

var (
	ErrInsufficientFunds     = errors.New("insufficient funds")
	ErrUserNotFound          = errors.New("user not found")
	ErrStoreUnavailable      = errors.New("store unavailable")
	ErrUnauthenticated       = errors.New("please sign in to continue")
	ErrForbidden             = errors.New("admin access required")
	ErrEmailInUse            = errors.New("this email is already registered")
	ErrInvalidCredentials    = errors.New("invalid email or password")
	ErrReferralCodeCollision = errors.New("could not assign a unique referral code")
	ErrRequestNotFound       = errors.New("request not found")
	ErrAlreadySettled        = errors.New("request has already been settled")
	ErrProductNotFound       = errors.New("product not found")
	ErrAlreadyReconciled     = errors.New("statement reference has already been reconciled")
)

// ValidationError reports input rejected before any I/O
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

func invalid(field, format string, args ...interface{}) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// AggregationError reports that one of the activity sources failed.
// No partial activity is returned alongside it.
type AggregationError struct {
	Source string
	Err    error
}

func (e *AggregationError) Error() string {
	return fmt.Sprintf("load %s activity: %v", e.Source, e.Err)
}

func (e *AggregationError) Unwrap() error { return e.Err }

// StoreError wraps a document store failure that has no more specific kind.
// It matches ErrStoreUnavailable with errors.Is.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

func (e *StoreError) Is(target error) bool { return target == ErrStoreUnavailable }

// storeErr classifies err from a repository call. Errors that already carry a
// service kind pass through unchanged.
func storeErr(op string, err error) error {
	if err == nil || isDomainError(err) {
		return err
	}
	return &StoreError{Op: op, Err: err}
}

func isDomainError(err error) bool {
	var validation *ValidationError
	var aggregation *AggregationError
	var store *StoreError
	switch {
	case errors.As(err, &validation), errors.As(err, &aggregation), errors.As(err, &store):
		return true
	}
	for _, kind := range []error{
		ErrInsufficientFunds, ErrUserNotFound, ErrUnauthenticated, ErrForbidden, ErrEmailInUse,
		ErrInvalidCredentials, ErrReferralCodeCollision, ErrRequestNotFound, ErrAlreadySettled,
		ErrProductNotFound, ErrAlreadyReconciled,
	} {
		if errors.Is(err, kind) {
			return true
		}
	}
	return false
}

// outcome is the metrics label for an operation result
func outcome(err error) string {
	var validation *ValidationError
	var aggregation *AggregationError
	switch {
	case err == nil:
		return "ok"
	case errors.As(err, &validation):
		return "invalid"
	case errors.Is(err, ErrInsufficientFunds):
		return "insufficient_funds"
	case errors.Is(err, ErrUserNotFound), errors.Is(err, ErrRequestNotFound), errors.Is(err, ErrProductNotFound):
		return "not_found"
	case errors.Is(err, ErrUnauthenticated), errors.Is(err, ErrForbidden), errors.Is(err, ErrInvalidCredentials):
		return "denied"
	case errors.Is(err, ErrAlreadySettled), errors.Is(err, ErrAlreadyReconciled),
		errors.Is(err, ErrEmailInUse), errors.Is(err, ErrReferralCodeCollision):
		return "conflict"
	case errors.As(err, &aggregation), errors.Is(err, ErrStoreUnavailable):
		return "unavailable"
	}
	return "error"
}
