package attendance

import (
	"errors"
	"fmt"
)

// RejectError is a validation failure detected before any write. Rejections
// are expected outcomes reported to the user inline; they are never logged
// as system faults and never reach the store.
type RejectError struct {
	// Code identifies the rejection category.
	Code RejectCode

	// Message is a human-readable description.
	Message string

	// Name identifies the affected user, where known.
	Name string
}

// RejectCode categorizes validation rejections.
type RejectCode string

const (
	// RejectNameRequired indicates an empty or whitespace-only name.
	RejectNameRequired RejectCode = "NAME_REQUIRED"

	// RejectNameUnknown indicates a name outside the configured
	// allow-list.
	RejectNameUnknown RejectCode = "NAME_UNKNOWN"

	// RejectReasonRequired indicates a missing reason on an event type
	// that mandates one (지각, 조퇴, 결근).
	RejectReasonRequired RejectCode = "REASON_REQUIRED"

	// RejectAlreadyClockedIn indicates a clock-in-class row already
	// exists for the user today.
	RejectAlreadyClockedIn RejectCode = "ALREADY_CLOCKED_IN"

	// RejectAlreadyClockedOut indicates a clock-out-class row already
	// exists for the user today.
	RejectAlreadyClockedOut RejectCode = "ALREADY_CLOCKED_OUT"

	// RejectOutOfRadius indicates the reported position is outside the
	// allowed site radius. Produced by callers that run the distance
	// gate; carried here so every surface rejects with the same code.
	RejectOutOfRadius RejectCode = "OUT_OF_RADIUS"
)

// Error implements the error interface.
func (e *RejectError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("%s: %s (name=%s)", e.Code, e.Message, e.Name)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsReject returns true if the error is a validation rejection.
// Uses errors.As to handle wrapped errors.
func IsReject(err error) bool {
	var re *RejectError
	return errors.As(err, &re)
}

// RejectCodeOf returns the rejection code of a wrapped RejectError, or ""
// if the error is not a rejection.
func RejectCodeOf(err error) RejectCode {
	var re *RejectError
	if errors.As(err, &re) {
		return re.Code
	}
	return ""
}

// ErrAlreadyRecorded is returned by store backends that enforce the
// one-in/one-out-per-day rule with a conditional append: the row was not
// written because an equivalent same-day row already exists. The Recorder
// maps it to the matching rejection.
var ErrAlreadyRecorded = errors.New("same-day event already recorded")

// ErrStoreUnavailable marks failures talking to the backing store. The
// operation is aborted with no retry and no partial-state assumption.
var ErrStoreUnavailable = errors.New("attendance store unavailable")

// storeUnavailable wraps a transport error with the ErrStoreUnavailable
// sentinel while keeping the diagnostic detail.
func storeUnavailable(err error) error {
	return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
}

// IsStoreUnavailable returns true if the error is a store transport
// failure. Uses errors.Is to handle wrapped errors.
func IsStoreUnavailable(err error) bool {
	return errors.Is(err, ErrStoreUnavailable)
}
