package model

// ItemStatus is the shared status vocabulary for items and matches.
type ItemStatus string

const (
	StatusAvailable ItemStatus = "AVAILABLE" // item registered, not yet paired
	StatusClaimed   ItemStatus = "CLAIMED"   // item claimed by its owner
	StatusReturned  ItemStatus = "RETURNED"  // item handed back
	StatusOpen      ItemStatus = "OPEN"      // match proposed, awaiting a decision
	StatusApprove   ItemStatus = "APPROVE"   // match approved, terminal
	StatusReject    ItemStatus = "REJECT"    // match rejected, terminal
)

var itemStatuses = map[ItemStatus]bool{
	StatusAvailable: true,
	StatusClaimed:   true,
	StatusReturned:  true,
	StatusOpen:      true,
	StatusApprove:   true,
	StatusReject:    true,
}

// ParseItemStatus validates a status literal. Callers must reject anything
// outside the closed enumeration before constructing a decision.
func ParseItemStatus(s string) (ItemStatus, bool) {
	status := ItemStatus(s)
	return status, itemStatuses[status]
}

// IsMatchDecision reports whether the status is a valid terminal decision
// for a match. Only APPROVE and REJECT close an OPEN match.
func (s ItemStatus) IsMatchDecision() bool {
	return s == StatusApprove || s == StatusReject
}
