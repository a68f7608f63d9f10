package service

import "github.com/smartlocker/smartlocker/internal/locker"

// Authorize is the ownership guard shared by the read, update and delete
// operations. It has no side effects: given the fetched record (nil when
// absent) and the caller id it decides not-found, forbidden or authorized.
func Authorize(l *locker.Locker, callerID string) error {
	if l == nil {
		return ErrNotFound
	}
	if l.OwnerID != callerID {
		return ErrForbidden
	}
	return nil
}
