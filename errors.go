package portalauth

import "errors"

var (
	// ErrInvalidCredentials is returned by Login when the identifier and
	// secret do not match a configured pair. Session state is unchanged.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUnauthorized is returned by mutations that need an authenticated
	// session.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrEngineNotReady is returned when an Engine method runs before the
	// builder wired its dependencies.
	ErrEngineNotReady = errors.New("engine not ready")
	// ErrEngineClosed is returned after Close.
	ErrEngineClosed = errors.New("engine closed")
	// ErrRoleInvalid is returned by AssignRole for roles outside the closed
	// set, and by configuration validation for unknown role names.
	ErrRoleInvalid = errors.New("invalid role")
	// ErrVerificationNotConfigured is returned by verification operations
	// for a subject the engine has no machine for.
	ErrVerificationNotConfigured = errors.New("verification not configured for subject")
)
