package shell

import (
	"encoding/json"
	"errors"

	"github.com/availsys/asset-availability-go/core"
)

// ErrMappingToStorableEventFailedForDomainEvent is returned when domain event serialization fails
var ErrMappingToStorableEventFailedForDomainEvent = errors.New("mapping to storable event failed for domain event")

// ErrMappingToStorableEventFailedForMetadata is returned when metadata serialization fails
var ErrMappingToStorableEventFailedForMetadata = errors.New("mapping to storable event failed for metadata")

// StorableEventFrom converts a DomainEvent and EventMetadata to a StorableEvent
func StorableEventFrom(event core.DomainEvent, metadata EventMetadata) (StorableEvent, error) {
	payloadJSON, err := json.Marshal(event)
	if err != nil {
		return StorableEvent{}, errors.Join(ErrMappingToStorableEventFailedForDomainEvent, err)
	}

	metadataJSON, err := json.Marshal(metadata)
	if err != nil {
		return StorableEvent{}, errors.Join(ErrMappingToStorableEventFailedForMetadata, err)
	}

	storableEvent, err := BuildStorableEvent(
		event.EventType(),
		event.HasOccurredAt(),
		payloadJSON,
		metadataJSON,
	)

	if err != nil {
		return StorableEvent{}, errors.Join(ErrMappingToStorableEventFailedForDomainEvent, err)
	}

	return storableEvent, nil
}

// StorableEventWithEmptyMetadataFrom converts a DomainEvent to a StorableEvent with empty metadata
func StorableEventWithEmptyMetadataFrom(event core.DomainEvent) (StorableEvent, error) {
	payloadJSON, err := json.Marshal(event)
	if err != nil {
		return StorableEvent{}, errors.Join(ErrMappingToStorableEventFailedForDomainEvent, err)
	}

	storableEvent, err := BuildStorableEventWithEmptyMetadata(
		event.EventType(),
		event.HasOccurredAt(),
		payloadJSON,
	)

	if err != nil {
		return StorableEvent{}, errors.Join(ErrMappingToStorableEventFailedForDomainEvent, err)
	}

	return storableEvent, nil
}
