package guard

import (
	"errors"
	"strings"

	"github.com/kokomatto/portalauth/session"
)

// Decision is the outcome of resolving a navigation attempt. When Allow is
// false, RedirectTo is where to send the visitor instead; ReturnTo carries
// the attempted path when the redirect is to the login surface, so a
// successful login can resume the interrupted navigation.
type Decision struct {
	Allow      bool
	RedirectTo string
	ReturnTo   string
}

// Guard resolves navigation attempts against a fixed rule set.
type Guard struct {
	rules []Rule
}

// New creates a Guard over the given rules. Use DefaultRules for the
// storefront table.
func New(rules []Rule) (*Guard, error) {
	if len(rules) == 0 {
		return nil, errors.New("at least one rule required")
	}
	return &Guard{rules: rules}, nil
}

// Resolve decides whether a session may enter path.
//
//  1. An auth-scoped path with an unauthenticated session redirects to the
//     login surface, remembering the attempted path.
//  2. A role-scoped path with the wrong role redirects to that session
//     role's own home, never to the scoped section's.
//  3. Everything else is allowed. Paths no rule covers are allowed; the
//     router's catch-all, not the guard, owns unknown paths.
func (g *Guard) Resolve(path string, sess session.Session) Decision {
	sess = sess.Normalize()

	rule, ok := g.match(path)
	if !ok {
		return Decision{Allow: true}
	}

	if rule.RequireAuth && !sess.Authenticated {
		return Decision{
			RedirectTo: LoginPath,
			ReturnTo:   path,
		}
	}

	if len(rule.Roles) > 0 && !roleIn(sess.Role, rule.Roles) {
		return Decision{
			RedirectTo: HomePath(sess.Role),
		}
	}

	return Decision{Allow: true}
}

// match returns the longest-prefix rule covering path.
func (g *Guard) match(path string) (Rule, bool) {
	var (
		best    Rule
		bestLen = -1
	)
	for _, rule := range g.rules {
		if !prefixMatch(path, rule.Prefix) {
			continue
		}
		if len(rule.Prefix) > bestLen {
			best = rule
			bestLen = len(rule.Prefix)
		}
	}
	return best, bestLen >= 0
}

func prefixMatch(path, prefix string) bool {
	if prefix == "/" {
		return path == "/"
	}
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}

func roleIn(role session.Role, roles []session.Role) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
