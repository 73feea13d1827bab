package guard

import "github.com/kokomatto/portalauth/session"

// Rule scopes a path prefix to an audience. A rule with RequireAuth and no
// Roles admits any authenticated session; Roles narrows it further. Rules
// match the prefix itself and everything under it.
type Rule struct {
	Prefix      string
	RequireAuth bool
	Roles       []session.Role
}

// homeRoutes is the canonical home per role, where a wrong-role visitor is
// sent instead of the page they asked for.
var homeRoutes = map[session.Role]string{
	session.RoleGuest:     "/",
	session.RoleUser:      "/home",
	session.RoleMerchant:  "/merchants",
	session.RoleAffiliate: "/affiliate/dashboard",
	session.RoleAdmin:     "/admin",
}

// HomePath returns the canonical home route for a role. Unknown roles map
// to the guest home.
func HomePath(role session.Role) string {
	if home, ok := homeRoutes[role]; ok {
		return home
	}
	return "/"
}

// LoginPath is the surface unauthenticated visitors are sent to.
const LoginPath = "/"

// DefaultRules is the storefront route table. Longer prefixes win, so the
// public login and signup pages stay open inside otherwise partner-scoped
// sections. The affiliate portal deliberately admits merchants as well;
// merchants manage their referral program through the same surface.
var DefaultRules = []Rule{
	// Public surfaces.
	{Prefix: "/signup"},
	{Prefix: "/merchant/login"},
	{Prefix: "/merchant/signup"},
	{Prefix: "/affiliate/login"},
	{Prefix: "/affiliate/signup"},

	// Shopper pages.
	{Prefix: "/home", RequireAuth: true, Roles: []session.Role{session.RoleUser}},
	{Prefix: "/categories", RequireAuth: true, Roles: []session.Role{session.RoleUser}},
	{Prefix: "/try-on", RequireAuth: true, Roles: []session.Role{session.RoleUser}},
	{Prefix: "/about", RequireAuth: true, Roles: []session.Role{session.RoleUser}},
	{Prefix: "/contact", RequireAuth: true, Roles: []session.Role{session.RoleUser}},
	{Prefix: "/pricing", RequireAuth: true, Roles: []session.Role{session.RoleUser}},
	{Prefix: "/profile", RequireAuth: true, Roles: []session.Role{session.RoleUser}},
	{Prefix: "/orders", RequireAuth: true, Roles: []session.Role{session.RoleUser}},
	{Prefix: "/wishlist", RequireAuth: true, Roles: []session.Role{session.RoleUser}},

	// Back office.
	{Prefix: "/admin", RequireAuth: true, Roles: []session.Role{session.RoleAdmin}},

	// Merchant portal.
	{Prefix: "/merchants", RequireAuth: true, Roles: []session.Role{session.RoleMerchant}},

	// Shared operator dashboard.
	{Prefix: "/dashboard", RequireAuth: true, Roles: []session.Role{session.RoleAdmin, session.RoleMerchant}},

	// Affiliate portal, shared with merchants.
	{Prefix: "/affiliate", RequireAuth: true, Roles: []session.Role{session.RoleAffiliate, session.RoleMerchant}},
}
