package core

import (
	"time"
)

// Sentinel owner identifiers for the non-tenant lock variants.
// Callers must not pass these as real owner ids - the unlock operations
// compare owners by plain equality.
const (
	MaintenanceOwnerID OwnerIDString = "MAINTENANCE"
	WithdrawalOwnerID  OwnerIDString = "WITHDRAWAL"
)

// Lock is the closed set of states that prevent normal use of an asset.
// The set is sealed; transition sites match exhaustively over the three
// variants plus "no lock".
type Lock interface {
	// LockOwnerID resolves the owner this lock is attributed to.
	// Sentinel variants resolve to their fixed sentinel owner.
	LockOwnerID() OwnerIDString

	sealedLock()
}

// LockMadeFor reports whether the given lock is held by the given owner.
// A nil lock is held by nobody.
func LockMadeFor(lock Lock, ownerID OwnerIDString) bool {
	return lock != nil && lock.LockOwnerID() == ownerID
}

// MaintenanceLock marks an asset that has not been put into service yet.
type MaintenanceLock struct{}

// LockOwnerID returns the fixed maintenance sentinel owner.
func (MaintenanceLock) LockOwnerID() OwnerIDString {
	return MaintenanceOwnerID
}

func (MaintenanceLock) sealedLock() {}

// WithdrawalLock marks an asset permanently removed from service.
type WithdrawalLock struct{}

// LockOwnerID returns the fixed withdrawal sentinel owner.
func (WithdrawalLock) LockOwnerID() OwnerIDString {
	return WithdrawalOwnerID
}

func (WithdrawalLock) sealedLock() {}

// OwnerLock is a time-bounded exclusive hold by a real tenant.
type OwnerLock struct {
	Owner      OwnerIDString
	ValidUntil OccurredAtTS
}

// BuildOwnerLock creates an OwnerLock with a UTC-normalized expiry.
func BuildOwnerLock(owner OwnerIDString, validUntil time.Time) OwnerLock {
	return OwnerLock{
		Owner:      owner,
		ValidUntil: ToOccurredAt(validUntil),
	}
}

// LockOwnerID returns the tenant holding this lock.
func (l OwnerLock) LockOwnerID() OwnerIDString {
	return l.Owner
}

func (OwnerLock) sealedLock() {}
