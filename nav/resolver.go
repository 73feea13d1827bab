package nav

import (
	"github.com/kokomatto/portalauth/guard"
	"github.com/kokomatto/portalauth/session"
)

// Item is one navigation affordance: a label and the path it leads to.
type Item struct {
	Label string
	Path  string
}

// Menu is everything a header renders for one role. PrimaryAction always
// leads to the role's canonical home; QuickAction is the role's featured
// shortcut and may point deeper into the portal.
type Menu struct {
	Welcome       string
	NavItems      []Item
	DropdownItems []Item
	PrimaryAction Item
	QuickAction   Item
}

var menus = map[session.Role]Menu{
	session.RoleGuest: {
		Welcome: "Virtual Try-On",
		NavItems: []Item{
			{Label: "Sign In", Path: "/"},
			{Label: "Sign Up", Path: "/signup"},
		},
		DropdownItems: []Item{
			{Label: "Merchant Login", Path: "/merchant/login"},
			{Label: "Affiliate Login", Path: "/affiliate/login"},
		},
		PrimaryAction: Item{Label: "SIGN IN", Path: "/"},
		QuickAction:   Item{Label: "SIGN UP", Path: "/signup"},
	},
	session.RoleUser: {
		Welcome: "Virtual Try-On",
		NavItems: []Item{
			{Label: "Home", Path: "/home"},
			{Label: "Try On", Path: "/try-on"},
			{Label: "Categories", Path: "/categories"},
			{Label: "About", Path: "/about"},
		},
		DropdownItems: []Item{
			{Label: "My Profile", Path: "/profile"},
			{Label: "Wishlist", Path: "/wishlist"},
			{Label: "Contact", Path: "/contact"},
			{Label: "Become an Affiliate", Path: "/affiliate/signup"},
		},
		PrimaryAction: Item{Label: "HOME", Path: "/home"},
		QuickAction:   Item{Label: "TRY ON", Path: "/try-on"},
	},
	session.RoleMerchant: {
		Welcome: "Merchant Portal",
		NavItems: []Item{
			{Label: "Dashboard", Path: "/merchants"},
			{Label: "Products", Path: "/merchants/products"},
			{Label: "Analytics", Path: "/merchants/analytics"},
			{Label: "Billing", Path: "/merchants/billing"},
		},
		DropdownItems: []Item{
			{Label: "Account Settings", Path: "/merchants/settings"},
			{Label: "Billing", Path: "/merchants/billing"},
			{Label: "Support", Path: "/merchants/support"},
			{Label: "Contact", Path: "/contact"},
		},
		PrimaryAction: Item{Label: "DASHBOARD", Path: "/merchants"},
		QuickAction:   Item{Label: "PRODUCTS", Path: "/merchants/products"},
	},
	session.RoleAffiliate: {
		Welcome: "Affiliate Portal",
		NavItems: []Item{
			{Label: "Dashboard", Path: "/affiliate/dashboard"},
			{Label: "Links", Path: "/affiliate/links"},
			{Label: "Payments", Path: "/affiliate/payments"},
			{Label: "Marketing", Path: "/affiliate/marketing"},
		},
		DropdownItems: []Item{
			{Label: "Profile", Path: "/affiliate/profile"},
			{Label: "Settings", Path: "/affiliate/settings"},
			{Label: "Support", Path: "/affiliate/support"},
		},
		PrimaryAction: Item{Label: "DASHBOARD", Path: "/affiliate/dashboard"},
		QuickAction:   Item{Label: "EARNINGS", Path: "/affiliate/dashboard/earnings"},
	},
	session.RoleAdmin: {
		Welcome: "Admin Portal",
		NavItems: []Item{
			{Label: "Dashboard", Path: "/admin"},
			{Label: "Customers", Path: "/admin/customers"},
			{Label: "Merchants", Path: "/admin/merchants"},
			{Label: "Affiliates", Path: "/admin/affiliates"},
			{Label: "Categories", Path: "/admin/categories"},
		},
		DropdownItems: []Item{
			{Label: "Products", Path: "/admin/products"},
			{Label: "Categories", Path: "/admin/categories"},
			{Label: "Homepage", Path: "/admin/homepage"},
			{Label: "Popups", Path: "/admin/popups"},
		},
		PrimaryAction: Item{Label: "DASHBOARD", Path: "/admin"},
		QuickAction:   Item{Label: "DASHBOARD", Path: "/admin"},
	},
}

// Resolver maps roles to menus.
type Resolver struct{}

// NewResolver creates a Resolver over the storefront menu tables.
func NewResolver() *Resolver {
	return &Resolver{}
}

// Resolve returns the menu for role. Unknown roles get the guest menu.
// The returned slices are copies; callers may reorder or trim them freely.
func (r *Resolver) Resolve(role session.Role) Menu {
	menu, ok := menus[role]
	if !ok {
		menu = menus[session.RoleGuest]
	}

	menu.NavItems = append([]Item(nil), menu.NavItems...)
	menu.DropdownItems = append([]Item(nil), menu.DropdownItems...)
	return menu
}

// HomePath is a convenience passthrough so header code needs only this
// package for both the menu and its anchor route.
func HomePath(role session.Role) string {
	return guard.HomePath(role)
}
