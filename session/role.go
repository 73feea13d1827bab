package session

// Role is the closed set of portal roles. The zero value is RoleGuest, the
// fail-safe default every unrecognized or absent stored value maps to.
type Role uint8

const (
	// RoleGuest is the unauthenticated default.
	RoleGuest Role = iota
	// RoleUser is the authenticated shopper role.
	RoleUser
	// RoleMerchant is the store-operator role.
	RoleMerchant
	// RoleAffiliate is the referral-partner role.
	RoleAffiliate
	// RoleAdmin is the back-office role.
	RoleAdmin

	roleCount
)

// Roles lists every role in declaration order, guest first.
var Roles = [...]Role{RoleGuest, RoleUser, RoleMerchant, RoleAffiliate, RoleAdmin}

// String returns the wire form of the role, the exact value stored under the
// userRole key.
func (r Role) String() string {
	switch r {
	case RoleUser:
		return "user"
	case RoleMerchant:
		return "merchant"
	case RoleAffiliate:
		return "affiliate"
	case RoleAdmin:
		return "admin"
	default:
		return "guest"
	}
}

// Valid reports whether r is one of the declared roles.
func (r Role) Valid() bool {
	return r < roleCount
}

// ParseRole maps a stored role string to its Role. The mapping is total:
// anything unrecognized — including the empty string for an absent key —
// is RoleGuest. Storage drift must never lock a visitor out, so there is no
// error path here.
func ParseRole(value string) Role {
	switch value {
	case "user":
		return RoleUser
	case "merchant":
		return RoleMerchant
	case "affiliate":
		return RoleAffiliate
	case "admin":
		return RoleAdmin
	default:
		return RoleGuest
	}
}
