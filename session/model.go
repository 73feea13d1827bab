package session

// Session is the authentication state for one browsing context: the
// authenticated flag plus the active role.
//
// Session values are plain data; they are written whole and read whole, and
// the last write observed wins across surfaces.
type Session struct {
	Authenticated bool
	Role          Role
}

// Guest is the reset state: unauthenticated, RoleGuest.
func Guest() Session {
	return Session{}
}

// Normalize returns s with the role/flag invariant enforced: a non-guest
// role implies an authenticated session, and a guest role downgrades the
// flag. The source system never enforced the converse direction, so stored
// pairs can drift; normalizing on read keeps every consumer consistent
// without surfacing an error.
func (s Session) Normalize() Session {
	if s.Role == RoleGuest {
		s.Authenticated = false
		return s
	}
	if !s.Authenticated {
		// Inconsistent pair: a role was written without the flag. Fail safe
		// to guest rather than inventing an authentication.
		return Guest()
	}
	return s
}

// IsGuest reports whether the session is the unauthenticated default.
func (s Session) IsGuest() bool {
	n := s.Normalize()
	return !n.Authenticated
}
