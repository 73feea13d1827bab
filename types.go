package portalauth

import (
	"github.com/kokomatto/portalauth/guard"
	"github.com/kokomatto/portalauth/nav"
	"github.com/kokomatto/portalauth/session"
	"github.com/kokomatto/portalauth/verification"
)

// Aliases so embedders driving everything through the engine need only
// this package for the common value types.

// Session is the authentication flag and role for one browsing context.
type Session = session.Session

// Role is the closed set of portal roles.
type Role = session.Role

const (
	RoleGuest     = session.RoleGuest
	RoleUser      = session.RoleUser
	RoleMerchant  = session.RoleMerchant
	RoleAffiliate = session.RoleAffiliate
	RoleAdmin     = session.RoleAdmin
)

// VerificationStatus is the partner review state.
type VerificationStatus = verification.Status

const (
	VerificationPending  = verification.StatusPending
	VerificationApproved = verification.StatusApproved
	VerificationRejected = verification.StatusRejected
)

// Decision is a route guard outcome.
type Decision = guard.Decision

// Menu is a resolved header menu.
type Menu = nav.Menu
