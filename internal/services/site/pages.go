package site

import (
	"errors"
	"log"
	"net/http"

	"github.com/a-h/templ"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/louisbranch/portfolio/internal/colorscheme"
	"github.com/louisbranch/portfolio/internal/localeroute"
	platformi18n "github.com/louisbranch/portfolio/internal/platform/i18n"
	"github.com/louisbranch/portfolio/internal/services/site/clienthint"
	"github.com/louisbranch/portfolio/internal/services/site/content"
	"github.com/louisbranch/portfolio/internal/services/site/httpx"
	"github.com/louisbranch/portfolio/internal/services/site/routepath"
	"github.com/louisbranch/portfolio/internal/services/site/templates"
	"github.com/louisbranch/portfolio/internal/theme"
)

var navRoutes = []struct {
	name string
	key  string
}{
	{name: localeroute.RouteHome, key: "nav.home"},
	{name: localeroute.RouteProjects, key: "nav.projects"},
	{name: localeroute.RouteAbout, key: "nav.about"},
	{name: localeroute.RouteContact, key: "nav.contact"},
}

// page navigates the request path and renders the settled route, or
// redirects when the path is not canonical.
func (h *handler) page(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracer.Start(r.Context(), "site.page", trace.WithAttributes(attribute.String("url.path", r.URL.Path)))
	defer span.End()

	store, err := h.stores.ForRequest(w, r)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "preference store")
		log.Printf("site: bind preference store: %v", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	router := h.router.WithStore(store)

	nav, err := router.Navigate(ctx, r.URL.Path)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "navigate")
		log.Printf("site: navigate %s: %v", r.URL.Path, err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	loc := nav.Location
	canonical, err := router.Path(loc.Name, loc.Params)
	if err != nil {
		canonical = loc.Path
	}
	span.SetAttributes(attribute.String("site.route", loc.Name), attribute.Int("site.redirect_hops", len(nav.Hops)))
	if nav.Redirected() || canonical != r.URL.EscapedPath() {
		http.Redirect(w, r, httpx.WithQuery(canonical, r), http.StatusFound)
		return
	}

	locale := platformi18n.NormalizeLocale(loc.Locale())
	ambient, ambientKnown := h.ambientFor(w, r)
	var dark bool
	controller := theme.NewController(ctx, store, ambient, theme.SinkFunc(func(d bool) { dark = d }))
	defer controller.Close()
	controller.Ready()

	status := http.StatusOK
	title, body := h.view(loc, locale, router)
	if body == nil {
		status = http.StatusNotFound
		title = platformi18n.Printer(locale).Sprintf("project.not_found")
		body = templates.Text(title, "")
	}

	w.Header().Set("Content-Language", locale.Tag().String())
	pageData := templates.Page{
		Locale:     locale,
		Title:      title,
		Theme:      themeAttribute(controller.Get(), dark, ambientKnown),
		Dark:       dark,
		CSSPath:    routepath.Static("site.css"),
		TogglePath: routepath.ThemeToggle,
		ReturnTo:   httpx.WithQuery(canonical, r),
		Nav:        navLinks(router, loc, locale),
		Languages:  languageLinks(router, loc),
	}
	templ.Handler(templates.Layout(pageData, body), templ.WithStatus(status)).ServeHTTP(w, r)
}

// view resolves a route to its title and body. A nil body means not found.
func (h *handler) view(loc localeroute.Location, locale platformi18n.Locale, router *localeroute.Router) (string, templ.Component) {
	p := platformi18n.Printer(locale)
	switch loc.View {
	case localeroute.RouteProjects:
		title := p.Sprintf("projects.title")
		return title, templates.ProjectList(title, p.Sprintf("projects.empty"), h.projects.List(locale), func(slug string) string {
			return pathOr(router, localeroute.RouteProjectDetail, map[string]string{localeroute.ParamLocale: locale.String(), localeroute.ParamSlug: slug})
		})
	case localeroute.RouteProjectDetail:
		project, err := h.projects.Find(loc.Params[localeroute.ParamSlug], locale)
		if errors.Is(err, content.ErrNotFound) {
			return "", nil
		}
		back := templates.Link{
			Label: p.Sprintf("project.back"),
			Href:  pathOr(router, localeroute.RouteProjects, map[string]string{localeroute.ParamLocale: locale.String()}),
		}
		return project.Title, templates.ProjectDetail(project, back)
	case localeroute.RouteContact:
		title := p.Sprintf("contact.title")
		return title, templates.Text(title, p.Sprintf("contact.body"))
	case localeroute.RouteAbout:
		title := p.Sprintf("about.title")
		return title, templates.Text(title, p.Sprintf("about.body"))
	default:
		title := p.Sprintf("home.title")
		return title, templates.Text(title, p.Sprintf("home.intro"))
	}
}

// ambientFor advertises the color-scheme hint and returns the request's
// ambient source and whether its value is actually known.
func (h *handler) ambientFor(w http.ResponseWriter, r *http.Request) (colorscheme.Source, bool) {
	clienthint.Advertise(w)
	return clienthint.Lookup(r, h.ambient)
}

// themeAttribute returns the data-theme value for the page. Auto with an
// unknown ambient renders no attribute so the stylesheet's
// prefers-color-scheme rule decides.
func themeAttribute(p theme.Preference, dark, ambientKnown bool) string {
	if p == theme.Auto && !ambientKnown {
		return ""
	}
	if dark {
		return theme.Dark.String()
	}
	return theme.Light.String()
}

func navLinks(router *localeroute.Router, loc localeroute.Location, locale platformi18n.Locale) []templates.Link {
	p := platformi18n.Printer(locale)
	links := make([]templates.Link, 0, len(navRoutes))
	for _, item := range navRoutes {
		links = append(links, templates.Link{
			Label:  p.Sprintf(item.key),
			Href:   pathOr(router, item.name, map[string]string{localeroute.ParamLocale: locale.String()}),
			Active: item.name == loc.Name || (item.name == localeroute.RouteProjects && loc.Name == localeroute.RouteProjectDetail),
		})
	}
	return links
}

func languageLinks(router *localeroute.Router, loc localeroute.Location) []templates.Link {
	active := loc.Locale()
	links := make([]templates.Link, 0, len(platformi18n.Supported()))
	for _, locale := range platformi18n.Supported() {
		links = append(links, templates.Link{
			Label:  platformi18n.Printer(locale).Sprintf("core.lang." + locale.String()),
			Href:   router.SwitchLocale(loc, locale),
			Lang:   locale.Tag().String(),
			Active: locale.String() == active,
		})
	}
	return links
}

func pathOr(router *localeroute.Router, name string, params map[string]string) string {
	target, err := router.Path(name, params)
	if err != nil {
		return routepath.Root
	}
	return target
}
