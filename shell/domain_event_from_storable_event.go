package shell

import (
	"errors"

	jsoniter "github.com/json-iterator/go"

	"github.com/availsys/asset-availability-go/core"
)

var (
	// ErrMappingToDomainEventFailed is returned when domain event conversion fails.
	ErrMappingToDomainEventFailed = errors.New("mapping to domain event failed")

	// ErrMappingToDomainEventUnknownEventType is returned for unrecognized event types.
	ErrMappingToDomainEventUnknownEventType = errors.New("unknown event type")
)

// DomainEventsFrom converts multiple StorableEvents to DomainEvents.
func DomainEventsFrom(storableEvents StorableEvents) (core.DomainEvents, error) {
	domainEvents := make(core.DomainEvents, 0)

	for _, storableEvent := range storableEvents {
		domainEvent, err := DomainEventFrom(storableEvent)
		if err != nil {
			return nil, err
		}

		domainEvents = append(domainEvents, domainEvent)
	}

	return domainEvents, nil
}

// DomainEventFrom converts a StorableEvent to its corresponding DomainEvent.
func DomainEventFrom(storableEvent StorableEvent) (core.DomainEvent, error) {
	switch storableEvent.EventType {
	case core.AssetRegisteredEventType:
		return unmarshalPayload(storableEvent.PayloadJSON, new(core.AssetRegistered))

	case core.AssetActivatedEventType:
		return unmarshalPayload(storableEvent.PayloadJSON, new(core.AssetActivated))

	case core.AssetActivationRejectedEventType:
		return unmarshalPayload(storableEvent.PayloadJSON, new(core.AssetActivationRejected))

	case core.AssetWithdrawnEventType:
		return unmarshalPayload(storableEvent.PayloadJSON, new(core.AssetWithdrawn))

	case core.AssetWithdrawalRejectedEventType:
		return unmarshalPayload(storableEvent.PayloadJSON, new(core.AssetWithdrawalRejected))

	case core.AssetLockedEventType:
		return unmarshalPayload(storableEvent.PayloadJSON, new(core.AssetLocked))

	case core.AssetLockRejectedEventType:
		return unmarshalPayload(storableEvent.PayloadJSON, new(core.AssetLockRejected))

	case core.AssetUnlockedEventType:
		return unmarshalPayload(storableEvent.PayloadJSON, new(core.AssetUnlocked))

	case core.AssetUnlockingRejectedEventType:
		return unmarshalPayload(storableEvent.PayloadJSON, new(core.AssetUnlockingRejected))

	case core.AssetLockExpiredEventType:
		return unmarshalPayload(storableEvent.PayloadJSON, new(core.AssetLockExpired))
	}

	return nil, errors.Join(ErrMappingToDomainEventFailed, ErrMappingToDomainEventUnknownEventType)
}

// unmarshalPayload decodes one event payload into its concrete type.
func unmarshalPayload[E core.DomainEvent](payloadJSON []byte, payload *E) (core.DomainEvent, error) {
	err := jsoniter.ConfigFastest.Unmarshal(payloadJSON, payload)
	if err != nil {
		return nil, errors.Join(ErrMappingToDomainEventFailed, err)
	}

	return *payload, nil
}
