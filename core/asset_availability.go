package core

import (
	"time"
)

// Stable reason codes for rejected transitions. These form a closed taxonomy
// consumed by external serialization (API error bodies, published events).
const (
	ReasonAssetCurrentlyLocked  = "ASSET_CURRENTLY_LOCKED"
	ReasonAssetAlreadyActivated = "ASSET_ALREADY_ACTIVATED"
	ReasonNoLockDefinedForOwner = "NO_LOCK_DEFINED_FOR_OWNER"
	ReasonNoLockOnTheAsset      = "NO_LOCK_ON_THE_ASSET"
)

// IndefiniteLockDuration is the extension applied by LockIndefinitelyFor.
const IndefiniteLockDuration = 365 * 24 * time.Hour

// AssetAvailability is the availability state machine for a single asset.
// It owns exactly one mutable field, the current lock; nil means the asset
// is active and available. Fresh entities start under a MaintenanceLock.
type AssetAvailability struct {
	assetID     AssetIDString
	currentLock Lock
}

// AssetAvailabilityOf creates a fresh entity in the Maintenance state.
func AssetAvailabilityOf(assetID AssetIDString) *AssetAvailability {
	return &AssetAvailability{
		assetID:     assetID,
		currentLock: MaintenanceLock{},
	}
}

// Activate puts a maintained asset into service.
// It succeeds only from the Maintenance state; any other state is rejected
// with ReasonAssetAlreadyActivated. Note that this reason is also returned
// for withdrawn or owner-locked assets - a documented modeling gap that is
// kept until the business rule is clarified.
func (a *AssetAvailability) Activate(now time.Time) OperationResult {
	if _, ok := a.currentLock.(MaintenanceLock); ok {
		a.currentLock = nil
		return SuccessResult(BuildAssetActivated(a.assetID, now))
	}

	return RejectedResult(BuildAssetActivationRejected(a.assetID, ReasonAssetAlreadyActivated, now))
}

// Withdraw permanently removes an asset from service.
// It succeeds from Available or Maintenance; an asset under any other lock
// is rejected with ReasonAssetCurrentlyLocked.
func (a *AssetAvailability) Withdraw(now time.Time) OperationResult {
	switch a.currentLock.(type) {
	case nil, MaintenanceLock:
		a.currentLock = WithdrawalLock{}
		return SuccessResult(BuildAssetWithdrawn(a.assetID, now))
	}

	return RejectedResult(BuildAssetWithdrawalRejected(a.assetID, ReasonAssetCurrentlyLocked, now))
}

// LockFor places a time-bounded exclusive hold for ownerID, valid until
// now plus duration. It succeeds only when the asset is available; there is
// no lock-reclaim path for the same owner (deliberately deferred), so any
// present lock is rejected with ReasonAssetCurrentlyLocked.
func (a *AssetAvailability) LockFor(ownerID OwnerIDString, duration time.Duration, now time.Time) OperationResult {
	if a.currentLock == nil {
		validUntil := ToOccurredAt(now.Add(duration))
		a.currentLock = BuildOwnerLock(ownerID, validUntil)

		return SuccessResult(BuildAssetLocked(a.assetID, ownerID, validUntil, now))
	}

	return RejectedResult(BuildAssetLockRejected(a.assetID, ownerID, ReasonAssetCurrentlyLocked, now))
}

// LockIndefinitelyFor extends an existing hold by the same owner to
// now plus IndefiniteLockDuration. It never originates a lock: without an
// active lock held by exactly this owner the attempt is rejected with
// ReasonNoLockDefinedForOwner.
func (a *AssetAvailability) LockIndefinitelyFor(ownerID OwnerIDString, now time.Time) OperationResult {
	if LockMadeFor(a.currentLock, ownerID) {
		validUntil := ToOccurredAt(now.Add(IndefiniteLockDuration))
		a.currentLock = BuildOwnerLock(ownerID, validUntil)

		return SuccessResult(BuildAssetLocked(a.assetID, ownerID, validUntil, now))
	}

	return RejectedResult(BuildAssetLockRejected(a.assetID, ownerID, ReasonNoLockDefinedForOwner, now))
}

// UnlockFor releases the hold of ownerID, making the asset available at the
// given time. Without an active lock held by this owner the attempt is
// rejected with ReasonNoLockOnTheAsset. The guard is a pure owner equality
// check against the current lock, so passing a sentinel owner id would also
// release a sentinel lock - callers must not do that.
func (a *AssetAvailability) UnlockFor(ownerID OwnerIDString, at time.Time) OperationResult {
	if LockMadeFor(a.currentLock, ownerID) {
		a.currentLock = nil
		return SuccessResult(BuildAssetUnlocked(a.assetID, ownerID, at))
	}

	return RejectedResult(BuildAssetUnlockingRejected(a.assetID, ownerID, ReasonNoLockOnTheAsset, at))
}

// UnlockIfOverdue force-releases whatever lock is present, of any variant.
// It performs no time comparison itself - deciding that a lock is overdue
// is the caller's job. Returns the expiry event and true when a lock was
// cleared; false when the asset was already unlocked.
func (a *AssetAvailability) UnlockIfOverdue(now time.Time) (AssetLockExpired, bool) {
	if a.currentLock != nil {
		a.currentLock = nil
		return BuildAssetLockExpired(a.assetID, now), true
	}

	return AssetLockExpired{}, false
}

// ID returns the asset identifier.
func (a *AssetAvailability) ID() AssetIDString {
	return a.assetID
}

// CurrentLock returns the active lock, if any.
func (a *AssetAvailability) CurrentLock() (Lock, bool) {
	if a.currentLock == nil {
		return nil, false
	}

	return a.currentLock, true
}

// With forcibly sets the current lock (nil means available), bypassing all
// transition rules. Intended for reconstruction from persisted state only,
// never for business transitions.
func (a *AssetAvailability) With(lock Lock) *AssetAvailability {
	a.currentLock = lock
	return a
}
