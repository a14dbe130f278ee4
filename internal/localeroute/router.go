// Package localeroute resolves navigation paths to locale-prefixed routes.
//
// Every page lives under a /{locale} prefix. Paths without a supported locale
// are redirected to the default locale, either by a fixed convenience
// redirect, by the catch-all for unmatched paths, or by the navigation guard
// for matched routes carrying an unsupported locale.
package localeroute

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	platformi18n "github.com/louisbranch/portfolio/internal/platform/i18n"
	"github.com/louisbranch/portfolio/internal/prefs"
)

// MaxHops bounds the redirects followed by Navigate.
const MaxHops = 8

var (
	// ErrUnknownRoute is returned when reverse routing an unregistered name.
	ErrUnknownRoute = errors.New("unknown route")
	// ErrMissingParam is returned when a pattern parameter has no value.
	ErrMissingParam = errors.New("missing route parameter")
	// ErrTooManyRedirects is returned when Navigate does not settle.
	ErrTooManyRedirects = errors.New("too many redirects")
)

// Location is a matched navigation target.
type Location struct {
	Name string
	View string
	// Path is decoded; use Router.Path for a URL-escaped form.
	Path   string
	Params map[string]string
}

// Locale returns the raw locale parameter, which may be unsupported.
func (l Location) Locale() string {
	return l.Params[ParamLocale]
}

// Step is the outcome of resolving one path: exactly one of Redirect or
// Location is set.
type Step struct {
	Redirect string
	Location *Location
}

// Decision is the navigation guard outcome.
type Decision struct {
	Allow bool
	// Redirect is the redispatch target when Allow is false.
	Redirect Location
}

// Navigation is the settled result of Navigate.
type Navigation struct {
	Location Location
	// Hops lists every redirect target in the order it was followed.
	Hops []string
}

// Redirected reports whether any redirect was followed.
func (n Navigation) Redirected() bool {
	return len(n.Hops) > 0
}

type record struct {
	pattern  pattern
	route    *Route
	redirect string
}

// Router matches paths against the route table and persists the active
// locale through its store.
type Router struct {
	records []record
	byName  map[string]Route
	store   prefs.Store
}

// New returns a Router over the default route table.
func New(store prefs.Store) *Router {
	return NewWithRoutes(store, DefaultRoutes(), DefaultRedirects())
}

// NewWithRoutes returns a Router over the given tables.
func NewWithRoutes(store prefs.Store, routes []Route, redirects []Redirect) *Router {
	r := &Router{byName: make(map[string]Route, len(routes)), store: store}
	for i := range routes {
		route := routes[i]
		r.records = append(r.records, record{pattern: parsePattern(route.Pattern), route: &route})
		r.byName[route.Name] = route
	}
	for _, redirect := range redirects {
		r.records = append(r.records, record{pattern: parsePattern(redirect.From), redirect: NormalizePath(redirect.To)})
	}
	return r
}

// WithStore returns a Router sharing r's tables but persisting to store.
func (r *Router) WithStore(store prefs.Store) *Router {
	clone := *r
	clone.store = store
	return &clone
}

// Routes returns the registered routes.
func (r *Router) Routes() []Route {
	out := make([]Route, 0, len(r.byName))
	for _, rec := range r.records {
		if rec.route != nil {
			out = append(out, *rec.route)
		}
	}
	return out
}

// Match returns the location of the best matching route. Static segments
// outrank parameters; redirect records are not returned.
func (r *Router) Match(rawPath string) (Location, bool) {
	rec, params, ok := r.best(rawPath)
	if !ok || rec.route == nil {
		return Location{}, false
	}
	return Location{Name: rec.route.Name, View: rec.route.View, Path: NormalizePath(rawPath), Params: params}, true
}

// Resolve performs one resolution step for rawPath.
func (r *Router) Resolve(rawPath string) Step {
	normalized := NormalizePath(rawPath)
	rec, params, ok := r.best(normalized)
	if !ok {
		return Step{Redirect: catchAll(normalized)}
	}
	if rec.route == nil {
		return Step{Redirect: rec.redirect}
	}
	return Step{Location: &Location{Name: rec.route.Name, View: rec.route.View, Path: normalized, Params: params}}
}

// Guard runs before a navigation to loc completes. A supported locale is
// allowed and persisted; anything else is redispatched to the same named route
// (home when unnamed) under the default locale, keeping the other params.
func (r *Router) Guard(ctx context.Context, loc Location) Decision {
	if locale, ok := platformi18n.ParseLocale(loc.Locale()); ok {
		r.persistLocale(ctx, locale)
		return Decision{Allow: true}
	}

	name := loc.Name
	if name == "" {
		name = RouteHome
	}
	params := make(map[string]string, len(loc.Params)+1)
	for key, value := range loc.Params {
		params[key] = value
	}
	params[ParamLocale] = platformi18n.Default.String()

	target, err := r.decodedPath(name, params)
	if err != nil {
		name = RouteHome
		params = map[string]string{ParamLocale: platformi18n.Default.String()}
		target = "/" + platformi18n.Default.String()
	}
	return Decision{Redirect: Location{Name: name, View: r.byName[name].View, Path: target, Params: params}}
}

// Navigate follows redirects and guard redispatches until a route is allowed.
// A redispatch target is guarded as built, so its params never pass through
// path matching again.
func (r *Router) Navigate(ctx context.Context, rawPath string) (Navigation, error) {
	var (
		hops    []string
		pending *Location
	)
	current := NormalizePath(rawPath)
	for len(hops) <= MaxHops {
		var loc Location
		if pending != nil {
			loc, pending = *pending, nil
		} else {
			step := r.Resolve(current)
			if step.Redirect != "" {
				hops = append(hops, step.Redirect)
				current = step.Redirect
				continue
			}
			loc = *step.Location
		}
		decision := r.Guard(ctx, loc)
		if decision.Allow {
			return Navigation{Location: loc, Hops: hops}, nil
		}
		redirect := decision.Redirect
		hops = append(hops, redirect.Path)
		current = redirect.Path
		pending = &redirect
	}
	return Navigation{Hops: hops}, fmt.Errorf("%w: %s", ErrTooManyRedirects, rawPath)
}

// Path builds the URL-escaped path of a named route.
func (r *Router) Path(name string, params map[string]string) (string, error) {
	route, ok := r.byName[name]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownRoute, name)
	}
	return parsePattern(route.Pattern).build(params)
}

func (r *Router) decodedPath(name string, params map[string]string) (string, error) {
	route, ok := r.byName[name]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownRoute, name)
	}
	return parsePattern(route.Pattern).expand(params)
}

// ActiveLocale returns the persisted locale, or the default when none is
// stored or the stored value is not supported.
func (r *Router) ActiveLocale(ctx context.Context) platformi18n.Locale {
	if r.store == nil {
		return platformi18n.Default
	}
	value, ok, err := r.store.Get(ctx, prefs.LocaleKey)
	if err != nil {
		log.Printf("localeroute: read active locale: %v", err)
		return platformi18n.Default
	}
	if !ok {
		return platformi18n.Default
	}
	return platformi18n.NormalizeLocale(value)
}

func (r *Router) persistLocale(ctx context.Context, locale platformi18n.Locale) {
	if r.store == nil {
		return
	}
	if err := r.store.Set(ctx, prefs.LocaleKey, locale.String()); err != nil {
		log.Printf("localeroute: persist active locale %s: %v", locale, err)
	}
}

func (r *Router) best(rawPath string) (record, map[string]string, bool) {
	segments := splitSegments(rawPath)
	var (
		found      bool
		bestRecord record
		bestParams map[string]string
		bestScores []int
	)
	for _, rec := range r.records {
		params, scores, ok := rec.pattern.match(segments)
		if !ok {
			continue
		}
		if !found || outranks(scores, bestScores) {
			found = true
			bestRecord = rec
			bestParams = params
			bestScores = scores
		}
	}
	return bestRecord, bestParams, found
}

// catchAll handles paths that match no record: an unsupported first segment
// keeps the whole original path under the default locale, anything else goes
// to the default-locale home.
func catchAll(normalized string) string {
	prefix := "/" + platformi18n.Default.String()
	first := ""
	if segments := splitSegments(normalized); len(segments) > 0 {
		first = segments[0]
	}
	if first != "" && !platformi18n.IsSupported(first) {
		return prefix + normalized
	}
	return prefix
}

// SwitchLocale returns the path of loc under locale, or the locale home when
// loc cannot be rebuilt.
func (r *Router) SwitchLocale(loc Location, locale platformi18n.Locale) string {
	params := make(map[string]string, len(loc.Params)+1)
	for key, value := range loc.Params {
		params[key] = value
	}
	params[ParamLocale] = locale.String()
	name := strings.TrimSpace(loc.Name)
	if name == "" {
		name = RouteHome
	}
	target, err := r.Path(name, params)
	if err != nil {
		return "/" + locale.String()
	}
	return target
}
