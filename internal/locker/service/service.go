package service

import (
	"context"
	"errors"
	"time"

	"github.com/smartlocker/smartlocker/internal/identity"
	"github.com/smartlocker/smartlocker/internal/locker"
	"github.com/smartlocker/smartlocker/internal/locker/repository"
)

var (
	// ErrNotFound means no locker exists for the id (or it vanished
	// between the guard's read and the conditional write).
	ErrNotFound = errors.New("locker not found")
	// ErrForbidden means the locker exists but the caller does not own it.
	ErrForbidden = errors.New("caller is not the locker owner")
	// ErrConflict means a locker with the same id already exists.
	ErrConflict = errors.New("locker already exists")
)

// CreateInput carries the caller-supplied fields of a new locker. The locker
// id is the device UUID.
type CreateInput struct {
	LockerID string
	Location string
	Size     string
}

// Service defines the locker business operations used by the handler layer.
// Expected failure modes come back as the sentinel errors above; anything
// else is a store failure the boundary turns into a generic 500.
type Service interface {
	Create(ctx context.Context, caller identity.Identity, in CreateInput) (*locker.Locker, error)
	Get(ctx context.Context, caller identity.Identity, id string) (*locker.Locker, error)
	List(ctx context.Context, caller identity.Identity) ([]*locker.Locker, error)
	Update(ctx context.Context, caller identity.Identity, id string, patch locker.Patch) (*locker.Locker, error)
	Delete(ctx context.Context, caller identity.Identity, id string) error
}

// New returns a Service on the given store. The store is injected so tests
// run against the memory implementation.
func New(store repository.Store) Service {
	return &lockerService{store: store, now: time.Now}
}

type lockerService struct {
	store repository.Store
	now   func() time.Time
}

func (s *lockerService) Create(ctx context.Context, caller identity.Identity, in CreateInput) (*locker.Locker, error) {
	l := &locker.Locker{
		LockerID:  in.LockerID,
		OwnerID:   caller.ID,
		UserName:  caller.DisplayName,
		Status:    locker.StatusAvailable,
		Location:  in.Location,
		Size:      in.Size,
		CreatedAt: s.now().UTC().Format(time.RFC3339),
	}
	if err := s.store.Put(ctx, l); err != nil {
		if errors.Is(err, repository.ErrPreconditionFailed) {
			return nil, ErrConflict
		}
		return nil, err
	}
	return l, nil
}

func (s *lockerService) Get(ctx context.Context, caller identity.Identity, id string) (*locker.Locker, error) {
	l, err := s.fetch(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := Authorize(l, caller.ID); err != nil {
		return nil, err
	}
	return l, nil
}

// List returns every locker regardless of owner. Owner filtering by
// caller.ID is a possible follow-up; current behavior is table-wide.
func (s *lockerService) List(ctx context.Context, caller identity.Identity) ([]*locker.Locker, error) {
	return s.store.Scan(ctx)
}

func (s *lockerService) Update(ctx context.Context, caller identity.Identity, id string, patch locker.Patch) (*locker.Locker, error) {
	l, err := s.fetch(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := Authorize(l, caller.ID); err != nil {
		return nil, err
	}
	updated, err := s.store.Update(ctx, id, patch)
	if err != nil {
		// deleted between the guard's read and the conditional write
		if errors.Is(err, repository.ErrPreconditionFailed) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return updated, nil
}

func (s *lockerService) Delete(ctx context.Context, caller identity.Identity, id string) error {
	l, err := s.fetch(ctx, id)
	if err != nil {
		return err
	}
	if err := Authorize(l, caller.ID); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrPreconditionFailed) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// fetch normalizes the store's not-found into a nil record so the guard is
// the single place deciding the outcome.
func (s *lockerService) fetch(ctx context.Context, id string) (*locker.Locker, error) {
	l, err := s.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return l, nil
}
