package services

import (
	"errors"
	"fmt"
)

var (
	ErrHearingNotFound = errors.New("hearing not found")
	ErrCaseNotFound    = errors.New("referenced case not found")
	ErrDocketNotFound  = errors.New("no hearings found for docket reference")
)

// ValidationError reports a missing or malformed field on create/edit
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Reason)
}

// InvalidTransitionError reports a status change not legal from the
// hearing's current state
type InvalidTransitionError struct {
	From string
	To   string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid status transition from %s to %s", e.From, e.To)
}

// HasSuccessorsError reports a delete attempted on a hearing that still
// has active report-chain successors
type HasSuccessorsError struct {
	HearingID string
	NbReports int
}

func (e *HasSuccessorsError) Error() string {
	return fmt.Sprintf("hearing %s has %d successor report(s); delete them first or force cascade", e.HearingID, e.NbReports)
}

// AuditWriteError reports a failed history append; the surrounding
// transaction has been rolled back, no partial mutation survives.
type AuditWriteError struct {
	Err error
}

func (e *AuditWriteError) Error() string {
	return fmt.Sprintf("failed to record history entry: %v", e.Err)
}

func (e *AuditWriteError) Unwrap() error {
	return e.Err
}
