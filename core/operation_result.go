package core

// OperationResult represents the outcome of a transition attempt on the
// AssetAvailability entity.
//
// IMPORTANT: OperationResult should only be constructed using the provided
// factory methods: SuccessResult(event) or RejectedResult(event).
// Do not construct OperationResult directly to ensure type safety.
type OperationResult struct {
	Outcome string      // "success" or "rejected"
	Event   DomainEvent // the success event or the rejection event
}

const (
	successOutcome  = "success"
	rejectedOutcome = "rejected"
)

// SuccessResult creates an OperationResult for a completed transition with its event.
func SuccessResult(event DomainEvent) OperationResult {
	return OperationResult{
		Outcome: successOutcome,
		Event:   event,
	}
}

// RejectedResult creates an OperationResult for a rejected transition with its rejection event.
func RejectedResult(event DomainEvent) OperationResult {
	return OperationResult{
		Outcome: rejectedOutcome,
		Event:   event,
	}
}

// IsSuccess returns true if the transition was applied.
func (r OperationResult) IsSuccess() bool {
	return r.Outcome == successOutcome
}

// IsRejected returns true if the transition was refused by a business rule.
func (r OperationResult) IsRejected() bool {
	return r.Outcome == rejectedOutcome
}

// RejectionReason returns the reason code when the transition was rejected,
// otherwise the empty string.
func (r OperationResult) RejectionReason() string {
	if !r.IsRejected() {
		return ""
	}

	if rejection, ok := r.Event.(RejectionEvent); ok {
		return rejection.RejectionReason()
	}

	return ""
}

// RejectionEvent is implemented by all rejection events; it exposes the
// stable reason code for external serialization.
type RejectionEvent interface {
	DomainEvent
	RejectionReason() string
}
