package session

import "errors"

const snapshotVersionV1 = 1

const (
	flagAuthenticated = 1 << 0
)

// Encode packs a session snapshot into the compact form carried by change
// notices: version byte, flags byte, role byte.
func Encode(s Session) []byte {
	var flags byte
	if s.Authenticated {
		flags |= flagAuthenticated
	}
	return []byte{snapshotVersionV1, flags, byte(s.Role)}
}

// Decode unpacks a snapshot. Malformed input returns an error; callers on
// the notification path map it to the guest session rather than surfacing
// it, matching the fail-safe read contract of the stores.
func Decode(data []byte) (Session, error) {
	if len(data) != 3 {
		return Guest(), errors.New("invalid snapshot length")
	}
	if data[0] != snapshotVersionV1 {
		return Guest(), errors.New("invalid snapshot version")
	}

	s := Session{
		Authenticated: data[1]&flagAuthenticated != 0,
		Role:          Role(data[2]),
	}
	if !s.Role.Valid() {
		return Guest(), errors.New("invalid snapshot role")
	}
	return s.Normalize(), nil
}
