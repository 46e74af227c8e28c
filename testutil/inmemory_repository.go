package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/availsys/asset-availability-go/core"
	"github.com/availsys/asset-availability-go/shell"
)

type repositoryRecord struct {
	lock    *shell.StoredLock
	version shell.Version
}

// InMemoryAssetRepository implements shell.AssetRepository on a map, with the
// same optimistic-concurrency semantics as the real engines. Errors can be
// queued to simulate conflicts.
type InMemoryAssetRepository struct {
	mu       sync.Mutex
	records  map[core.AssetIDString]repositoryRecord
	saveErrs []error
}

// NewInMemoryAssetRepository creates an empty repository double.
func NewInMemoryAssetRepository() *InMemoryAssetRepository {
	return &InMemoryAssetRepository{
		records: make(map[core.AssetIDString]repositoryRecord),
	}
}

// Seed inserts an asset directly, bypassing version checks (arrange step).
func (r *InMemoryAssetRepository) Seed(asset *core.AssetAvailability, version shell.Version) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.records[asset.ID()] = repositoryRecord{lock: storedLockOf(asset), version: version}
}

// FailNextSaveWith queues an error to be returned by the next Save call
// instead of applying it.
func (r *InMemoryAssetRepository) FailNextSaveWith(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.saveErrs = append(r.saveErrs, err)
}

// Load implements shell.AssetRepository.
func (r *InMemoryAssetRepository) Load(_ context.Context, assetID core.AssetIDString) (*core.AssetAvailability, shell.Version, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	record, ok := r.records[assetID]
	if !ok {
		return nil, 0, shell.ErrAssetNotFound
	}

	var lock core.Lock
	if record.lock != nil {
		rebuilt, err := shell.LockFromStored(*record.lock)
		if err != nil {
			return nil, 0, err
		}
		lock = rebuilt
	}

	return core.AssetAvailabilityOf(assetID).With(lock), record.version, nil
}

// Save implements shell.AssetRepository.
func (r *InMemoryAssetRepository) Save(_ context.Context, asset *core.AssetAvailability, expectedVersion shell.Version) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.saveErrs) > 0 {
		err := r.saveErrs[0]
		r.saveErrs = r.saveErrs[1:]
		return err
	}

	record, exists := r.records[asset.ID()]

	if expectedVersion == 0 {
		if exists {
			return shell.ErrAssetAlreadyRegistered
		}

		r.records[asset.ID()] = repositoryRecord{lock: storedLockOf(asset), version: 1}
		return nil
	}

	if !exists || record.version != expectedVersion {
		return shell.ErrConcurrencyConflict
	}

	r.records[asset.ID()] = repositoryRecord{lock: storedLockOf(asset), version: expectedVersion + 1}

	return nil
}

// FindLockedBefore implements shell.AssetRepository.
func (r *InMemoryAssetRepository) FindLockedBefore(_ context.Context, cutoff time.Time) ([]core.AssetIDString, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var assetIDs []core.AssetIDString

	for assetID, record := range r.records {
		if record.lock != nil && record.lock.Kind == shell.LockKindOwner && record.lock.ValidUntil.Before(cutoff) {
			assetIDs = append(assetIDs, assetID)
		}
	}

	return assetIDs, nil
}

// Version returns the current version of an asset record (assert step).
func (r *InMemoryAssetRepository) Version(assetID core.AssetIDString) shell.Version {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.records[assetID].version
}

func storedLockOf(asset *core.AssetAvailability) *shell.StoredLock {
	lock, hasLock := asset.CurrentLock()
	if !hasLock {
		return nil
	}

	stored := shell.StoredLockFrom(lock)

	return &stored
}
