// Package errors provides an API for errors across the application.
package errors

import "fmt"

// RequestError is an error with a corresponding HTTP status code.
type RequestError struct {
	StatusCode int
	Err        error
}

func (e *RequestError) Error() string {
	return e.Err.Error()
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// NotInitializedError indicates that the ledger gateway or the wallet
// session has not been established yet. Recoverable by retrying once
// initialization has completed.
type NotInitializedError struct {
	Err error
}

func (e *NotInitializedError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("not initialized: %s", e.Err)
	}
	return "not initialized"
}

func (e *NotInitializedError) Unwrap() error {
	return e.Err
}

// NetworkError indicates a transport failure while talking to the ledger.
// Transient, safe to retry.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %s", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// RemoteRejectedError indicates that the ledger refused the operation,
// for example a permission check or a precondition failed on-chain.
// Permanent for the given inputs, must not be retried as-is.
type RemoteRejectedError struct {
	Reason string
	Err    error
}

func (e *RemoteRejectedError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("rejected by ledger: %s", e.Reason)
	}
	return "rejected by ledger"
}

func (e *RemoteRejectedError) Unwrap() error {
	return e.Err
}

// UserCancelledError indicates that the initiating caller aborted an
// in-flight write. Not reported as a failure, the caller simply returns
// to the pre-action state.
type UserCancelledError struct{}

func (e *UserCancelledError) Error() string {
	return "operation cancelled"
}

// IllegalTransitionError indicates a KYC transition attempt from a
// state/actor pair that is not legal. The record is left unchanged.
// Should be unreachable with correct role gating, the workflow engine
// still checks for it before issuing any write.
type IllegalTransitionError struct {
	From  string
	To    string
	Actor string
}

func (e *IllegalTransitionError) Error() string {
	return fmt.Sprintf(`illegal transition from "%s" to "%s" by %s`, e.From, e.To, e.Actor)
}

// UnknownRoleError indicates that the ledger reported a role value
// outside the closed role set. Data integrity issue, the session is
// blocked until resolved. Raw holds the reported value verbatim, it may
// exceed any native integer width.
type UnknownRoleError struct {
	Raw string
}

func (e *UnknownRoleError) Error() string {
	return fmt.Sprintf("unknown role value %s reported by ledger", e.Raw)
}

// JobQueueFull indicates that the worker pool could not accept a job.
type JobQueueFull struct {
	Err error
}

func (e *JobQueueFull) Error() string {
	return e.Err.Error()
}
