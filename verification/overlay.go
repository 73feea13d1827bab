package verification

// RejectionReasons are the review findings shown on the rejected overlay.
// The list is static copy, not per-account data.
var RejectionReasons = []string{
	"Incomplete personal information",
	"Invalid business details",
	"Mismatch in provided documentation",
}

// Action is a button the overlay offers.
type Action struct {
	Label string
	Path  string
}

// Overlay is the display contract for one verification status. Blocking
// overlays sit over a portal whose content is still mounted underneath;
// blocking is a presentation rule, not an access rule.
type Overlay struct {
	Status   Status
	Blocking bool
	Title    string
	Messages []string
	Reasons  []string
	Actions  []Action
}

// Dismissible reports whether the viewer may close the overlay and use the
// portal. Only the approved overlay is dismissible.
func (o Overlay) Dismissible() bool {
	return !o.Blocking
}

// OverlayFor returns the overlay to render for a status. Every status has
// an overlay; pending and rejected block, approved congratulates and lets
// the viewer through.
func OverlayFor(status Status) Overlay {
	switch status {
	case StatusApproved:
		return Overlay{
			Status:   StatusApproved,
			Blocking: false,
			Title:    "Verification Approved",
			Messages: []string{
				"Your account has been verified.",
				"You now have full access to your dashboard.",
			},
			Actions: []Action{
				{Label: "Continue to Dashboard"},
			},
		}
	case StatusRejected:
		return Overlay{
			Status:   StatusRejected,
			Blocking: true,
			Title:    "Verification Rejected",
			Messages: []string{
				"Your verification request was not approved.",
				"Please review the reasons below and contact support to resolve them.",
			},
			Reasons: RejectionReasons,
			Actions: []Action{
				{Label: "Contact Support", Path: "/contact"},
			},
		}
	default:
		return Overlay{
			Status:   StatusPending,
			Blocking: true,
			Title:    "Verification Pending",
			Messages: []string{
				"Your account is awaiting verification.",
				"You will be notified once the review is complete.",
			},
			Actions: []Action{
				{Label: "Contact Support", Path: "/contact"},
			},
		}
	}
}
