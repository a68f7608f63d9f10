package repository

import "errors"

var (
	// ErrNotFound indicates that no locker exists for the requested id.
	ErrNotFound = errors.New("locker not found")

	// ErrPreconditionFailed indicates that a conditional write was rejected
	// by the store: Put found the key already present, or Update/Delete
	// found it already gone. Callers map this to conflict or not-found
	// depending on the operation.
	ErrPreconditionFailed = errors.New("store precondition failed")
)
