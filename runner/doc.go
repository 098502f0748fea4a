// Package runner executes a job's command as an opaque subprocess.
//
// It is a deliberately thin external collaborator: the queue kernel
// treats command execution as a black box that returns an exit code,
// captured standard output, and captured standard error, subject to a
// hard timeout. Nothing in this package participates in job state,
// retries, or the dead-letter area.
package runner
