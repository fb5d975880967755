package client

// Action identifiers offered by BookingActions and PenaltyActions.
const (
	ActionApprove    = "approve"
	ActionReject     = "reject"
	ActionComplete   = "complete"
	ActionAddRating  = "add_rating"
	ActionAddPenalty = "add_penalty"
	ActionResolve    = "resolve"
)

// BookingActions returns the admin actions available for a booking in the
// given status. Pending bookings await review, approved ones can be closed
// out, completed ones can be rated or penalized; terminal statuses offer
// nothing.
func BookingActions(status string) []string {
	switch status {
	case "pending":
		return []string{ActionApprove, ActionReject}
	case "approved":
		return []string{ActionComplete}
	case "completed":
		return []string{ActionAddRating, ActionAddPenalty}
	default:
		return nil
	}
}

// PenaltyActions returns the admin actions for a penalty. Only active
// penalties can be resolved.
func PenaltyActions(status string) []string {
	if status == "active" {
		return []string{ActionResolve}
	}
	return nil
}
