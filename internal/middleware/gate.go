package middleware

import (
	"strings"

	"mangashelf/internal/models"

	"github.com/gofiber/fiber/v2"
)

// Decision is the outcome of the page-level route gate.
type Decision int

const (
	Allow Decision = iota
	RedirectLogin
	RedirectHome
)

// GateRule maps a path prefix to the role it requires. An empty RequireRole
// means any authenticated principal is enough.
type GateRule struct {
	Prefix      string
	RequireRole string
}

// DefaultRules is the gate table for page routes: the admin area needs the
// admin role, the profile area any authenticated principal, everything else
// is public.
var DefaultRules = []GateRule{
	{Prefix: "/admin", RequireRole: models.RoleAdmin},
	{Prefix: "/profile"},
}

// skipPrefixes are surfaces the page gate does not cover. API routes and
// static assets enforce their own access rules at the endpoint.
var skipPrefixes = []string{"/api", "/static", "/images", "/favicon.ico"}

// Decide evaluates the gate table for a path and principal. Rules are checked
// in order; the first matching prefix wins. Unauthenticated requests to a
// gated path redirect to login; authenticated requests lacking the required
// role redirect home.
func Decide(rules []GateRule, path string, principal *models.Principal) Decision {
	for _, skip := range skipPrefixes {
		if strings.HasPrefix(path, skip) {
			return Allow
		}
	}

	for _, rule := range rules {
		if !strings.HasPrefix(path, rule.Prefix) {
			continue
		}
		if principal == nil {
			return RedirectLogin
		}
		if rule.RequireRole != "" && principal.Role != rule.RequireRole {
			return RedirectHome
		}
		return Allow
	}

	return Allow
}

// PageGate applies the gate table to page routes, redirecting before any
// handler runs. It expects the Session middleware to have run first.
func PageGate(rules []GateRule) fiber.Handler {
	return func(c *fiber.Ctx) error {
		switch Decide(rules, c.Path(), PrincipalFromCtx(c)) {
		case RedirectLogin:
			return c.Redirect("/login", fiber.StatusFound)
		case RedirectHome:
			return c.Redirect("/", fiber.StatusFound)
		}
		return c.Next()
	}
}
