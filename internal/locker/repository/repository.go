package repository

import (
	"context"

	"github.com/smartlocker/smartlocker/internal/locker"
)

// Store is the conditional-write storage contract the locker service depends
// on. Implementations translate their native precondition-failure signal into
// ErrPreconditionFailed so the service never branches on driver errors.
type Store interface {
	// Get returns the locker for id, or ErrNotFound.
	Get(ctx context.Context, id string) (*locker.Locker, error)
	// Put inserts l and fails with ErrPreconditionFailed when a locker
	// with the same id already exists.
	Put(ctx context.Context, l *locker.Locker) error
	// Update applies patch to the locker's mutable fields and returns the
	// full post-update record. Fails with ErrPreconditionFailed when the
	// locker no longer exists.
	Update(ctx context.Context, id string, patch locker.Patch) (*locker.Locker, error)
	// Delete removes the locker, failing with ErrPreconditionFailed when
	// it no longer exists.
	Delete(ctx context.Context, id string) error
	// Scan returns every locker in the table, unordered. Unpaginated;
	// acceptable at current scale only.
	Scan(ctx context.Context) ([]*locker.Locker, error)
}
