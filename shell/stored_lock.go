package shell

import (
	"errors"
	"fmt"
	"time"

	"github.com/availsys/asset-availability-go/core"
)

// Flat lock kind discriminators used by the repository engines.
const (
	LockKindMaintenance = "MAINTENANCE"
	LockKindWithdrawal  = "WITHDRAWAL"
	LockKindOwner       = "OWNER"
)

// ErrUnknownLockKind is returned when a persisted lock kind is not part of the closed set.
var ErrUnknownLockKind = errors.New("unknown lock kind")

// StoredLock is the flat representation of a core.Lock used by the repository
// engines. Owner and ValidUntil are only meaningful for LockKindOwner.
type StoredLock struct {
	Kind       string
	Owner      core.OwnerIDString
	ValidUntil time.Time
}

// StoredLockFrom flattens a lock variant for persistence.
// The lock must not be nil; an unlocked asset is persisted as the absence of a
// stored lock, which the engines express as NULL columns.
func StoredLockFrom(lock core.Lock) StoredLock {
	switch l := lock.(type) {
	case core.MaintenanceLock:
		return StoredLock{Kind: LockKindMaintenance}

	case core.WithdrawalLock:
		return StoredLock{Kind: LockKindWithdrawal}

	case core.OwnerLock:
		return StoredLock{Kind: LockKindOwner, Owner: l.Owner, ValidUntil: l.ValidUntil}
	}

	// the Lock set is sealed; a new variant here is a programming error
	panic(fmt.Sprintf("StoredLockFrom: unhandled lock variant %T", lock))
}

// LockFromStored rebuilds the lock variant from its flat representation.
func LockFromStored(stored StoredLock) (core.Lock, error) {
	switch stored.Kind {
	case LockKindMaintenance:
		return core.MaintenanceLock{}, nil

	case LockKindWithdrawal:
		return core.WithdrawalLock{}, nil

	case LockKindOwner:
		return core.BuildOwnerLock(stored.Owner, stored.ValidUntil), nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownLockKind, stored.Kind)
}
