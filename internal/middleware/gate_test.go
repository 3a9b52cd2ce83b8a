package middleware_test

import (
	"testing"

	"mangashelf/internal/middleware"
	"mangashelf/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestDecide(t *testing.T) {
	anon := (*models.Principal)(nil)
	user := &models.Principal{ID: "u1", Role: models.RoleUser}
	admin := &models.Principal{ID: "a1", Role: models.RoleAdmin}

	tests := []struct {
		name      string
		path      string
		principal *models.Principal
		want      middleware.Decision
	}{
		{"admin path anonymous", "/admin/x", anon, middleware.RedirectLogin},
		{"admin path wrong role", "/admin/x", user, middleware.RedirectHome},
		{"admin path admin", "/admin/x", admin, middleware.Allow},
		{"admin root anonymous", "/admin", anon, middleware.RedirectLogin},
		{"profile anonymous", "/profile", anon, middleware.RedirectLogin},
		{"profile user", "/profile", user, middleware.Allow},
		{"profile admin", "/profile/settings", admin, middleware.Allow},
		{"public path anonymous", "/stories/one-piece", anon, middleware.Allow},
		{"root anonymous", "/", anon, middleware.Allow},
		{"api routes skip the page gate", "/api/v1/admin/stories", anon, middleware.Allow},
		{"static assets skip the page gate", "/static/app.css", anon, middleware.Allow},
		{"image assets skip the page gate", "/images/cover.jpg", anon, middleware.Allow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := middleware.Decide(middleware.DefaultRules, tt.path, tt.principal)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecide_RuleOrder(t *testing.T) {
	// The first matching prefix wins, so a more specific rule listed first
	// shadows a broader one.
	rules := []middleware.GateRule{
		{Prefix: "/area/admin", RequireRole: models.RoleAdmin},
		{Prefix: "/area"},
	}
	user := &models.Principal{ID: "u1", Role: models.RoleUser}

	assert.Equal(t, middleware.RedirectHome, middleware.Decide(rules, "/area/admin/panel", user))
	assert.Equal(t, middleware.Allow, middleware.Decide(rules, "/area/anything", user))
}
