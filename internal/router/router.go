// Package router maps the in-app route paths to typed routes.
package router

import (
	"errors"
	"fmt"
	"strings"
)

type Page int

const (
	PageHome Page = iota
	PageLogin
	PageRegister
	PageDashboard
	PageCreate
	PageCapsule
)

func (p Page) String() string {
	switch p {
	case PageHome:
		return "home"
	case PageLogin:
		return "login"
	case PageRegister:
		return "register"
	case PageDashboard:
		return "dashboard"
	case PageCreate:
		return "create"
	case PageCapsule:
		return "capsule"
	default:
		return fmt.Sprintf("Page(%d)", int(p))
	}
}

var ErrUnknownRoute = errors.New("unknown route")

// Route is a page plus the capsule id for PageCapsule
type Route struct {
	Page Page
	ID   string
}

var (
	Home      = Route{Page: PageHome}
	Login     = Route{Page: PageLogin}
	Register  = Route{Page: PageRegister}
	Dashboard = Route{Page: PageDashboard}
	Create    = Route{Page: PageCreate}
)

var staticRoutes = map[string]Route{
	"/":          Home,
	"/login":     Login,
	"/register":  Register,
	"/dashboard": Dashboard,
	"/create":    Create,
}

// Capsule is the route that views the capsule with the given id
func Capsule(id string) Route {
	return Route{Page: PageCapsule, ID: id}
}

// Parse resolves a path such as "/capsule/abc". A trailing slash is
// ignored.
func Parse(path string) (Route, error) {
	p := strings.TrimSpace(path)
	if p == "" {
		return Route{}, fmt.Errorf("%w: empty path", ErrUnknownRoute)
	}
	if len(p) > 1 {
		p = strings.TrimSuffix(p, "/")
	}
	if r, ok := staticRoutes[p]; ok {
		return r, nil
	}
	if id, ok := strings.CutPrefix(p, "/capsule/"); ok && id != "" && !strings.Contains(id, "/") {
		return Capsule(id), nil
	}
	return Route{}, fmt.Errorf("%w: %s", ErrUnknownRoute, path)
}

// Path is the inverse of Parse
func (r Route) Path() string {
	switch r.Page {
	case PageHome:
		return "/"
	case PageCapsule:
		return "/capsule/" + r.ID
	default:
		return "/" + r.Page.String()
	}
}

func (r Route) String() string {
	return r.Path()
}

// RequiresProfile reports whether the page is only reachable after
// registering or logging in.
func (r Route) RequiresProfile() bool {
	switch r.Page {
	case PageDashboard, PageCreate, PageCapsule:
		return true
	default:
		return false
	}
}

// Start picks the initial route: the requested path if it parses, else the
// dashboard for a known user and the landing page otherwise.
func Start(requested string, hasProfile bool) (Route, error) {
	if strings.TrimSpace(requested) != "" {
		return Parse(requested)
	}
	if hasProfile {
		return Dashboard, nil
	}
	return Home, nil
}
