package verification

// Status is the closed set of verification states. The zero value is
// StatusPending, which is also what an absent record reads as: a partner
// who has never been reviewed is awaiting review.
type Status uint8

const (
	// StatusPending means the account is awaiting review.
	StatusPending Status = iota
	// StatusApproved means review passed; the portal is fully usable.
	StatusApproved
	// StatusRejected means review failed; the account may retry.
	StatusRejected

	statusCount
)

// Statuses lists every status in declaration order.
var Statuses = [...]Status{StatusPending, StatusApproved, StatusRejected}

// String returns the wire form of the status, the exact value stored under
// the verificationStatus key.
func (s Status) String() string {
	switch s {
	case StatusApproved:
		return "approved"
	case StatusRejected:
		return "rejected"
	default:
		return "pending"
	}
}

// Valid reports whether s is one of the declared statuses.
func (s Status) Valid() bool {
	return s < statusCount
}

// ParseStatus maps a stored status string to its Status. The mapping is
// total: anything unrecognized, including the empty string for an absent
// record, is StatusPending.
func ParseStatus(value string) Status {
	switch value {
	case "approved":
		return StatusApproved
	case "rejected":
		return StatusRejected
	default:
		return StatusPending
	}
}
