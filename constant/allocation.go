package constant

// AllocationStatus is the lifecycle state of a single reservation slice.
type AllocationStatus string

const (
	AllocationStatusReserved AllocationStatus = "RESERVED"
	AllocationStatusConsumed AllocationStatus = "CONSUMED"
	AllocationStatusReleased AllocationStatus = "RELEASED"
)

// allocationTransitions holds the only legal edges. Terminal states have none.
var allocationTransitions = map[AllocationStatus][]AllocationStatus{
	AllocationStatusReserved: {AllocationStatusConsumed, AllocationStatusReleased},
}

func (s AllocationStatus) Valid() bool {
	switch s {
	case AllocationStatusReserved, AllocationStatusConsumed, AllocationStatusReleased:
		return true
	}
	return false
}

func (s AllocationStatus) IsTerminal() bool {
	return s == AllocationStatusConsumed || s == AllocationStatusReleased
}

// CanTransitionTo reports whether s -> to is one of the legal edges.
func (s AllocationStatus) CanTransitionTo(to AllocationStatus) bool {
	for _, next := range allocationTransitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

// AuditEventType names the events sent to the audit collaborator.
type AuditEventType string

const (
	AuditAllocationFailed     AuditEventType = "allocation.failed"
	AuditAllocationTransition AuditEventType = "allocation.transition"
)
