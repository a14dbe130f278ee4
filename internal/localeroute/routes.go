package localeroute

import platformi18n "github.com/louisbranch/portfolio/internal/platform/i18n"

// Route names.
const (
	RouteHome          = "home"
	RouteProjects      = "projects"
	RouteProjectDetail = "project-detail"
	RouteContact       = "contact"
	RouteAbout         = "about"
)

// Route parameter names.
const (
	ParamLocale = "locale"
	ParamSlug   = "slug"
)

// Route is one locale-scoped navigable route.
type Route struct {
	// Name identifies the route for redispatch and reverse routing.
	Name string
	// Pattern is the full path pattern, always starting with /{locale}.
	Pattern string
	// View is the opaque view key the host renders for this route.
	View string
}

// DefaultRoutes returns the site route table.
func DefaultRoutes() []Route {
	return []Route{
		{Name: RouteHome, Pattern: "/{locale}", View: RouteHome},
		{Name: RouteProjects, Pattern: "/{locale}/projects", View: RouteProjects},
		{Name: RouteContact, Pattern: "/{locale}/contact", View: RouteContact},
		{Name: RouteAbout, Pattern: "/{locale}/about", View: RouteAbout},
		{Name: RouteProjectDetail, Pattern: "/{locale}/projects/{slug}", View: RouteProjectDetail},
	}
}

// Redirect sends a fixed path to a fixed target.
type Redirect struct {
	From string
	To   string
}

// DefaultRedirects maps the unprefixed convenience paths to their
// default-locale counterparts.
func DefaultRedirects() []Redirect {
	prefix := "/" + platformi18n.Default.String()
	return []Redirect{
		{From: "/", To: prefix},
		{From: "/projects", To: prefix + "/projects"},
		{From: "/contact", To: prefix + "/contact"},
		{From: "/about", To: prefix + "/about"},
	}
}
