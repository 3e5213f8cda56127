package guard

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// Role names issued by the backend.
const (
	RoleBasic     = "basic"
	RoleSuperUser = "super_user"
)

// Route binds a path pattern to its access requirement.
type Route struct {
	Path        string `yaml:"path"`
	Requirement `yaml:",inline"`
}

type routeTable struct {
	Routes []Route `yaml:"routes"`
}

// DefaultRoutes returns the storefront page table.
func DefaultRoutes() []Route {
	return []Route{
		{Path: "/"},
		{Path: "/cart"},
		{Path: "/dashboard/{id}"},
		{Path: "/login", Requirement: Requirement{GuestOnly: true}},
		{Path: "/signup", Requirement: Requirement{GuestOnly: true}},
		{Path: "/checkout", Requirement: Requirement{RequireAuth: true}},
		{Path: "/profile", Requirement: Requirement{RequireAuth: true}},
		{Path: "/packs", Requirement: Requirement{RequireAuth: true}},
		{Path: "/dashmanager", Requirement: Requirement{RequireAuth: true, AllowedRoles: []string{RoleSuperUser}}},
	}
}

// LoadRoutes decodes a YAML route table:
//
//	routes:
//	  - path: /
//	  - path: /login
//	    guest_only: true
//	  - path: /dashmanager
//	    require_auth: true
//	    allowed_roles: [super_user]
func LoadRoutes(r io.Reader) ([]Route, error) {
	var table routeTable
	if err := yaml.NewDecoder(r).Decode(&table); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.Join(ErrInvalidRoute, errors.New("empty route table"))
		}
		return nil, errors.Join(ErrInvalidRoute, err)
	}

	seen := make(map[string]bool, len(table.Routes))
	for i, rt := range table.Routes {
		if !strings.HasPrefix(rt.Path, "/") {
			return nil, errors.Join(ErrInvalidRoute, fmt.Errorf("route %d: path %q must start with /", i, rt.Path))
		}
		if rt.GuestOnly && (rt.RequireAuth || len(rt.AllowedRoles) > 0) {
			return nil, errors.Join(ErrInvalidRoute, fmt.Errorf("route %q: guest_only excludes auth requirements", rt.Path))
		}
		if seen[rt.Path] {
			return nil, errors.Join(ErrInvalidRoute, fmt.Errorf("route %q declared twice", rt.Path))
		}
		seen[rt.Path] = true
	}
	return table.Routes, nil
}
