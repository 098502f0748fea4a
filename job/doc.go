// Package job defines the stateful representation of a work item within
// the queuectl job queue lifecycle.
//
// A Job couples the user-supplied command with delivery state: its
// current Status, attempt count, retry budget, lock fields and
// scheduling timestamps. These fields are maintained exclusively by the
// store and the worker loop; Job values returned to callers are
// snapshots.
//
// Job values are typically returned by Claim and passed back to the
// store for state transitions (IncrementAttempts, RecordOutput,
// Complete, Retry).
//
// Job is not intended to be constructed manually by user code outside
// the Enqueuer path. Its fields reflect the authoritative state stored
// by the queue backend.
package job
