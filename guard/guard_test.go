package guard

import (
	"testing"

	"github.com/kokomatto/portalauth/session"
)

func newTestGuard(t *testing.T) *Guard {
	t.Helper()

	g, err := New(DefaultRules)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return g
}

func authed(role session.Role) session.Session {
	return session.Session{Authenticated: true, Role: role}
}

func TestGuestRedirectedToLoginWithReturnTo(t *testing.T) {
	g := newTestGuard(t)

	paths := []string{
		"/home", "/profile", "/orders", "/wishlist", "/try-on", "/try-on/42",
		"/admin", "/admin/customers",
		"/merchants", "/merchants/products",
		"/dashboard", "/dashboard/analytics",
		"/affiliate", "/affiliate/dashboard", "/affiliate/dashboard/earnings",
	}
	for _, path := range paths {
		d := g.Resolve(path, session.Guest())
		if d.Allow {
			t.Fatalf("guest allowed into %s", path)
		}
		if d.RedirectTo != LoginPath {
			t.Fatalf("guest on %s redirected to %s, want %s", path, d.RedirectTo, LoginPath)
		}
		if d.ReturnTo != path {
			t.Fatalf("guest on %s lost return target: %q", path, d.ReturnTo)
		}
	}
}

func TestWrongRoleRedirectedToOwnHome(t *testing.T) {
	g := newTestGuard(t)

	cases := []struct {
		path string
		role session.Role
		want string
	}{
		{"/admin", session.RoleMerchant, "/merchants"},
		{"/admin/orders", session.RoleUser, "/home"},
		{"/merchants", session.RoleAdmin, "/admin"},
		{"/merchants/billing", session.RoleAffiliate, "/affiliate/dashboard"},
		{"/home", session.RoleAdmin, "/admin"},
		{"/affiliate/dashboard", session.RoleUser, "/home"},
		{"/dashboard", session.RoleAffiliate, "/affiliate/dashboard"},
	}
	for _, tc := range cases {
		d := g.Resolve(tc.path, authed(tc.role))
		if d.Allow {
			t.Fatalf("%v allowed into %s", tc.role, tc.path)
		}
		if d.RedirectTo != tc.want {
			t.Fatalf("%v on %s redirected to %s, want %s", tc.role, tc.path, d.RedirectTo, tc.want)
		}
		if d.ReturnTo != "" {
			t.Fatalf("role redirect must not carry a return target, got %q", d.ReturnTo)
		}
	}
}

func TestMatchingRoleAllowed(t *testing.T) {
	g := newTestGuard(t)

	cases := []struct {
		path string
		role session.Role
	}{
		{"/home", session.RoleUser},
		{"/wishlist", session.RoleUser},
		{"/admin/settings", session.RoleAdmin},
		{"/merchants/analytics", session.RoleMerchant},
		{"/dashboard/products", session.RoleAdmin},
		{"/dashboard/products", session.RoleMerchant},
	}
	for _, tc := range cases {
		if d := g.Resolve(tc.path, authed(tc.role)); !d.Allow {
			t.Fatalf("%v denied on %s: %+v", tc.role, tc.path, d)
		}
	}
}

func TestAffiliatePortalAdmitsMerchants(t *testing.T) {
	g := newTestGuard(t)

	for _, role := range []session.Role{session.RoleAffiliate, session.RoleMerchant} {
		for _, path := range []string{"/affiliate", "/affiliate/dashboard", "/affiliate/links", "/affiliate/dashboard/earnings"} {
			if d := g.Resolve(path, authed(role)); !d.Allow {
				t.Fatalf("%v denied on %s: %+v", role, path, d)
			}
		}
	}
}

func TestPublicPagesInsideScopedSections(t *testing.T) {
	g := newTestGuard(t)

	// Login and signup pages live under partner prefixes but stay open;
	// the longer rule wins.
	for _, path := range []string{"/affiliate/login", "/affiliate/signup", "/merchant/login", "/merchant/signup", "/signup"} {
		if d := g.Resolve(path, session.Guest()); !d.Allow {
			t.Fatalf("guest denied on public page %s: %+v", path, d)
		}
	}
}

func TestUnknownPathsAllowed(t *testing.T) {
	g := newTestGuard(t)

	for _, path := range []string{"/", "/nonsense", "/merchant", "/admins"} {
		if d := g.Resolve(path, session.Guest()); !d.Allow {
			t.Fatalf("unmatched path %s denied: %+v", path, d)
		}
	}
}

func TestHomePathTable(t *testing.T) {
	want := map[session.Role]string{
		session.RoleGuest:     "/",
		session.RoleUser:      "/home",
		session.RoleMerchant:  "/merchants",
		session.RoleAffiliate: "/affiliate/dashboard",
		session.RoleAdmin:     "/admin",
	}
	for role, home := range want {
		if got := HomePath(role); got != home {
			t.Fatalf("HomePath(%v) = %s, want %s", role, got, home)
		}
	}
}

func TestInconsistentSessionTreatedAsGuest(t *testing.T) {
	g := newTestGuard(t)

	// A role without the authenticated flag normalizes to guest before any
	// rule is consulted.
	d := g.Resolve("/admin", session.Session{Authenticated: false, Role: session.RoleAdmin})
	if d.Allow {
		t.Fatal("unauthenticated admin role allowed into /admin")
	}
	if d.RedirectTo != LoginPath {
		t.Fatalf("redirected to %s, want login surface", d.RedirectTo)
	}
}
