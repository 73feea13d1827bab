package flows

// Deps groups flow dependency sets. The root engine builds this once and
// delegates mutation methods to the matching flow function.
type Deps struct {
	Login  LoginDeps
	Logout LogoutDeps
	Role   RoleDeps
}
