package attendance

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
)

// RecordSource supplies the current record set for status derivation and
// exposes explicit cache invalidation. Implemented by store.Cache.
type RecordSource interface {
	// Records returns all rows of the append-only log, oldest first.
	Records(ctx context.Context) ([][]string, error)

	// Invalidate forces the next Records call to bypass any cache.
	Invalidate()
}

// Appender appends one row to the backing store.
type Appender interface {
	Append(ctx context.Context, cells []string) error
}

// RequestKind is the action the user asked for. The Recorder decides the
// final event type (출근 vs 지각, 퇴근 vs 조퇴) from the site clock.
type RequestKind string

const (
	KindClockIn  RequestKind = "clock_in"
	KindClockOut RequestKind = "clock_out"
	KindAbsent   RequestKind = "absent"
)

// Request is one proposed attendance event. The distance gate runs
// upstream: callers only submit clock-in/out requests whose position
// already passed the site radius check, and carry the formatted distance
// for the stored row. 결근 bypasses the gate and carries neither location
// nor distance.
type Request struct {
	Name     string
	Kind     RequestKind
	Location string // "lat,lon"; ignored for 결근
	Distance string // formatted, e.g. "73.1m"; ignored for 결근
	Reason   string
	Now      time.Time // event time, site-local
}

// Recorder validates a proposed event against derived status and the
// time-of-day policy, then appends exactly one row. Rejections are typed
// values; nothing is written on a rejected attempt.
//
// The check-then-append sequence has no atomic guarantee against other
// writers. The SQLite backend converts the race into a duplicate-day
// conflict (surfaced as ErrAlreadyRecorded and mapped to a rejection
// here); sheet-style backends stay last-write-wins, which status
// derivation tolerates by construction.
type Recorder struct {
	source RecordSource
	sink   Appender
	policy Policy
	logger *slog.Logger

	// NewID generates record IDs. Defaults to UUIDv7; tests override it
	// for deterministic output.
	NewID func() string

	// AllowName is the configured allow-list check. Nil allows every
	// name.
	AllowName func(name string) bool
}

// NewRecorder wires a recorder over a record source and append sink.
func NewRecorder(logger *slog.Logger, source RecordSource, sink Appender, policy Policy) *Recorder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Recorder{
		source: source,
		sink:   sink,
		policy: policy,
		logger: logger,
		NewID:  func() string { return uuid.Must(uuid.NewV7()).String() },
	}
}

// Record validates req and, on success, appends the resulting row and
// invalidates the read cache so the next derivation sees the write.
//
// Failure modes:
//   - *RejectError: a precondition failed; the store was never touched.
//   - ErrStoreUnavailable (wrapped): reading or appending failed; no
//     partial write is assumed.
func (r *Recorder) Record(ctx context.Context, req Request) (Record, error) {
	if name := NormalizeName(req.Name); name != "" && r.AllowName != nil && !r.AllowName(name) {
		return Record{}, &RejectError{Code: RejectNameUnknown, Message: "name not on the allow-list", Name: name}
	}

	rows, err := r.source.Records(ctx)
	if err != nil {
		return Record{}, storeUnavailable(err)
	}

	event, err := Validate(rows, req, r.policy, r.logger)
	if err != nil {
		return Record{}, err
	}

	rec := Record{
		ID:        r.NewID(),
		Timestamp: req.Now,
		Name:      NormalizeName(req.Name),
		Event:     event,
		Reason:    strings.TrimSpace(req.Reason),
	}
	if req.Kind != KindAbsent {
		rec.Location = req.Location
		rec.Distance = req.Distance
	}

	if err := r.sink.Append(ctx, rec.Cells()); err != nil {
		if errors.Is(err, ErrAlreadyRecorded) {
			// Another writer won the race between derivation and
			// append. Report it like the precondition failure it is.
			r.source.Invalidate()
			return Record{}, rejectDuplicate(req.Kind, rec.Name)
		}
		return Record{}, storeUnavailable(err)
	}
	r.source.Invalidate()

	r.logger.Info("attendance recorded",
		"name", rec.Name, "event", string(rec.Event), "at", rec.Timestamp.Format(TimestampLayout))
	return rec, nil
}

// Validate runs every precondition for req against the current record set
// and returns the event type a successful write would store. Pure: no side
// effects, no writes.
func Validate(rows [][]string, req Request, policy Policy, logger *slog.Logger) (EventType, error) {
	name := NormalizeName(req.Name)
	if name == "" {
		return "", &RejectError{Code: RejectNameRequired, Message: "name required"}
	}

	st := DeriveStatus(rows, name, req.Now, logger)

	var event EventType
	switch req.Kind {
	case KindClockIn:
		if st.ClockedIn {
			return "", &RejectError{Code: RejectAlreadyClockedIn, Message: "already clocked in today", Name: name}
		}
		if st.ClockedOut {
			return "", &RejectError{Code: RejectAlreadyClockedOut, Message: "already clocked out today", Name: name}
		}
		event = policy.ClassifyClockIn(req.Now)
	case KindClockOut:
		if st.ClockedOut {
			return "", &RejectError{Code: RejectAlreadyClockedOut, Message: "already clocked out today", Name: name}
		}
		event = policy.ClassifyClockOut(req.Now)
	case KindAbsent:
		event = EventAbsent
	default:
		return "", &RejectError{Code: RejectReasonRequired, Message: "unknown request kind " + string(req.Kind)}
	}

	if event.RequiresReason() && strings.TrimSpace(req.Reason) == "" {
		return "", &RejectError{
			Code:    RejectReasonRequired,
			Message: "reason required for " + string(event),
			Name:    name,
		}
	}
	return event, nil
}

func rejectDuplicate(kind RequestKind, name string) *RejectError {
	if kind == KindClockOut {
		return &RejectError{Code: RejectAlreadyClockedOut, Message: "already clocked out today", Name: name}
	}
	return &RejectError{Code: RejectAlreadyClockedIn, Message: "already clocked in today", Name: name}
}
