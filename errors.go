package queuectl

import (
	"errors"
	"fmt"
)

var (
	// ErrJobLost indicates that the referenced job no longer exists in
	// storage or cannot be found in its expected state.
	//
	// This error may occur if the job was concurrently transitioned or
	// removed by another actor.
	ErrJobLost = errors.New("job lost")

	// ErrLockLost indicates that the caller no longer owns the job's
	// lock lease.
	//
	// This typically happens when the lease expires and the job is
	// claimed by another worker before the current worker reports an
	// outcome.
	ErrLockLost = errors.New("lock lost")

	// ErrCompleteFailed indicates that a job could not be completed due
	// to a state mismatch or concurrent modification. Implementations
	// return this when Complete is called on a job not currently
	// Processing.
	ErrCompleteFailed = errors.New("complete failed")

	// ErrBadStatus indicates that an invalid job status was supplied to
	// Cleaner. Only terminal states (Completed, Dead) are valid targets.
	ErrBadStatus = errors.New("bad job status")

	// ErrConflict indicates that an id already refers to an existing
	// job. A requeue of a job not currently dead is reported by
	// DeadLetter.Requeue returning false, not by this error.
	ErrConflict = errors.New("conflict")

	// ErrNotFound indicates that a lookup by id found no matching row.
	ErrNotFound = errors.New("not found")
)

// Kind classifies a failure by how a caller is expected to react to
// it: surface it to the submitter unchanged, retry it transparently,
// or feed it into the job's retry/dead-letter pipeline.
type Kind uint8

const (
	// KindUnknown is the zero value; errors not produced through this
	// package's constructors classify as KindUnknown.
	KindUnknown Kind = iota

	// KindInput marks a malformed submission: bad id, empty command,
	// priority out of range, unparseable timestamp. Surfaced to the
	// caller; no state change occurs.
	KindInput

	// KindNotFound marks a lookup by id that found nothing. Surfaced;
	// no state change.
	KindNotFound

	// KindConflict marks an insert against an existing id, or a requeue
	// of a job that is not currently dead. Surfaced.
	KindConflict

	// KindTransientStore marks contention or temporary store
	// unavailability. The worker loop retries these with a short sleep;
	// they are never surfaced to submitters.
	KindTransientStore

	// KindCommandFailure marks a non-zero exit or a runner-reported
	// timeout/spawn error. Never a system error — it is data that
	// feeds the retry/dead decision.
	KindCommandFailure

	// KindWorkerFatal marks an unhandled error in the worker loop body.
	// It is logged with context; the worker sleeps briefly and
	// continues. Only signal-driven shutdown terminates the loop.
	KindWorkerFatal
)

func (k Kind) String() string {
	switch k {
	case KindInput:
		return "input"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindTransientStore:
		return "transient_store"
	case KindCommandFailure:
		return "command_failure"
	case KindWorkerFatal:
		return "worker_fatal"
	default:
		return "unknown"
	}
}

// KindError pairs an underlying error with the Kind a caller should
// dispatch on. It is produced at the boundaries (submission surface,
// worker loop) rather than inside the store, which returns the plain
// sentinel errors above.
type KindError struct {
	Kind Kind
	Err  error
}

func (e *KindError) Error() string {
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *KindError) Unwrap() error {
	return e.Err
}

// NewInputError wraps err as a KindInput error.
func NewInputError(err error) error {
	return &KindError{Kind: KindInput, Err: err}
}

// NewNotFoundError wraps err as a KindNotFound error.
func NewNotFoundError(err error) error {
	return &KindError{Kind: KindNotFound, Err: err}
}

// NewConflictError wraps err as a KindConflict error.
func NewConflictError(err error) error {
	return &KindError{Kind: KindConflict, Err: err}
}

// NewTransientStoreError wraps err as a KindTransientStore error.
func NewTransientStoreError(err error) error {
	return &KindError{Kind: KindTransientStore, Err: err}
}

// NewCommandFailureError wraps err as a KindCommandFailure error.
func NewCommandFailureError(err error) error {
	return &KindError{Kind: KindCommandFailure, Err: err}
}

// NewWorkerFatalError wraps err as a KindWorkerFatal error.
func NewWorkerFatalError(err error) error {
	return &KindError{Kind: KindWorkerFatal, Err: err}
}

// KindOf reports the Kind of err, or KindUnknown if err was not
// produced through this package's constructors.
func KindOf(err error) Kind {
	var ke *KindError
	if errors.As(err, &ke) {
		return ke.Kind
	}
	return KindUnknown
}
