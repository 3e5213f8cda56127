package guard

import (
	"net/url"
	"slices"
)

const (
	// LoginPath receives visitors that must authenticate first.
	LoginPath = "/login"
	// HomePath receives visitors denied for any other reason.
	HomePath = "/"
)

// Requirement describes who may reach a route.
type Requirement struct {
	// RequireAuth restricts the route to authenticated visitors.
	RequireAuth bool `yaml:"require_auth" json:"require_auth"`
	// AllowedRoles restricts the route to these roles. Empty means any role.
	AllowedRoles []string `yaml:"allowed_roles" json:"allowed_roles,omitempty"`
	// GuestOnly routes (login, signup) send authenticated visitors home.
	GuestOnly bool `yaml:"guest_only" json:"guest_only"`
}

// Decision is the outcome of evaluating a route.
type Decision struct {
	Allowed bool
	// Redirect is the target path when Allowed is false.
	Redirect string
}

func allow() Decision                 { return Decision{Allowed: true} }
func redirectTo(path string) Decision { return Decision{Redirect: path} }

// Evaluate applies the route gate. Authentication is checked before roles.
func Evaluate(s Session, req Requirement) Decision {
	if req.GuestOnly && s.Authenticated {
		return redirectTo(HomePath)
	}

	needsAuth := req.RequireAuth || len(req.AllowedRoles) > 0
	if needsAuth && !s.Authenticated {
		return redirectTo(LoginPath)
	}

	if len(req.AllowedRoles) > 0 && !slices.ContainsFunc(req.AllowedRoles, s.HasRole) {
		return redirectTo(HomePath)
	}

	return allow()
}

// Location returns the redirect target for a request of from. Redirects to
// the login page carry the original path so the visitor can be sent back.
func (d Decision) Location(from string) string {
	if d.Allowed {
		return ""
	}
	if d.Redirect == LoginPath && from != "" && from != LoginPath {
		return d.Redirect + "?" + url.Values{"from": {from}}.Encode()
	}
	return d.Redirect
}
