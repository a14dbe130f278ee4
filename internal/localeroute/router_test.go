package localeroute

import (
	"context"
	"errors"
	"reflect"
	"testing"

	platformi18n "github.com/louisbranch/portfolio/internal/platform/i18n"
	"github.com/louisbranch/portfolio/internal/prefs"
)

type brokenStore struct{}

func (brokenStore) Get(context.Context, string) (string, bool, error) {
	return "", false, errors.New("store offline")
}

func (brokenStore) Set(context.Context, string, string) error {
	return errors.New("store offline")
}

func TestNavigateScenarios(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path     string
		wantPath string
		wantName string
		wantHops []string
	}{
		{path: "/", wantPath: "/en", wantName: RouteHome, wantHops: []string{"/en"}},
		{path: "", wantPath: "/en", wantName: RouteHome, wantHops: []string{"/en"}},
		{path: "/projects", wantPath: "/en/projects", wantName: RouteProjects, wantHops: []string{"/en/projects"}},
		{path: "/contact", wantPath: "/en/contact", wantName: RouteContact, wantHops: []string{"/en/contact"}},
		{path: "/about", wantPath: "/en/about", wantName: RouteAbout, wantHops: []string{"/en/about"}},
		{path: "/zh/about", wantPath: "/zh/about", wantName: RouteAbout},
		{path: "/fi/projects/atlas", wantPath: "/fi/projects/atlas", wantName: RouteProjectDetail},
		{path: "/fr", wantPath: "/en", wantName: RouteHome, wantHops: []string{"/en"}},
		{path: "/fr/projects", wantPath: "/en/projects", wantName: RouteProjects, wantHops: []string{"/en/projects"}},
		{path: "/fr/projects/foo", wantPath: "/en/projects/foo", wantName: RouteProjectDetail, wantHops: []string{"/en/projects/foo"}},
		{path: "/projects/foo", wantPath: "/en/projects/foo", wantName: RouteProjectDetail, wantHops: []string{"/en/projects/foo"}},
		{path: "/fr/blog", wantPath: "/en", wantName: RouteHome, wantHops: []string{"/en/fr/blog", "/en"}},
		{path: "/zh/blog", wantPath: "/en", wantName: RouteHome, wantHops: []string{"/en"}},
		{path: "/EN", wantPath: "/en", wantName: RouteHome, wantHops: []string{"/en"}},
		{path: "/Projects", wantPath: "/en/projects", wantName: RouteProjects, wantHops: []string{"/en/projects"}},
		{path: "/en/projects/", wantPath: "/en/projects", wantName: RouteProjects},
		{path: "//zh//contact", wantPath: "/zh/contact", wantName: RouteContact},
	}
	for _, tc := range tests {
		t.Run(tc.path, func(t *testing.T) {
			t.Parallel()

			nav, err := New(prefs.NewMemory(nil)).Navigate(context.Background(), tc.path)
			if err != nil {
				t.Fatalf("Navigate(%q): %v", tc.path, err)
			}
			if nav.Location.Path != tc.wantPath || nav.Location.Name != tc.wantName {
				t.Fatalf("Navigate(%q) = (%q, %q), want (%q, %q)", tc.path, nav.Location.Path, nav.Location.Name, tc.wantPath, tc.wantName)
			}
			if !reflect.DeepEqual(nav.Hops, tc.wantHops) {
				t.Fatalf("Navigate(%q) hops = %v, want %v", tc.path, nav.Hops, tc.wantHops)
			}
			if nav.Redirected() != (len(tc.wantHops) > 0) {
				t.Fatalf("Redirected() = %v", nav.Redirected())
			}
		})
	}
}

func TestNavigateAlwaysLandsOnSupportedLocale(t *testing.T) {
	t.Parallel()

	paths := []string{
		"/", "/x", "/x/y/z", "/en/x", "/zh/projects/a/b", "/fi/", "/de/about",
		"/projects/a/b", "/contact/me", "/%zz", "/en/../fr", "/../..", "/ZH/about",
	}
	router := New(nil)
	for _, p := range paths {
		nav, err := router.Navigate(context.Background(), p)
		if err != nil {
			t.Fatalf("Navigate(%q): %v", p, err)
		}
		if !platformi18n.IsSupported(nav.Location.Locale()) {
			t.Fatalf("Navigate(%q) landed on locale %q", p, nav.Location.Locale())
		}
	}
}

func TestResolveUnmatchedPrefixesOriginalPath(t *testing.T) {
	t.Parallel()

	router := New(nil)
	if step := router.Resolve("/fr/blog/post"); step.Redirect != "/en/fr/blog/post" {
		t.Fatalf("Resolve(/fr/blog/post) redirect = %q, want /en/fr/blog/post", step.Redirect)
	}
	if step := router.Resolve("/en/unknown"); step.Redirect != "/en" {
		t.Fatalf("Resolve(/en/unknown) redirect = %q, want /en", step.Redirect)
	}
	step := router.Resolve("/fr/projects/foo")
	if step.Location == nil || step.Location.Name != RouteProjectDetail || step.Location.Locale() != "fr" {
		t.Fatalf("Resolve(/fr/projects/foo) = %+v, want project-detail with locale fr", step)
	}
}

func TestNavigatePersistsActiveLocale(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := prefs.NewMemory(nil)
	router := New(store)

	if got := router.ActiveLocale(ctx); got != platformi18n.English {
		t.Fatalf("ActiveLocale before navigation = %q, want en", got)
	}
	if _, err := router.Navigate(ctx, "/zh/about"); err != nil {
		t.Fatalf("Navigate: %v", err)
	}
	if value, _, _ := store.Get(ctx, prefs.LocaleKey); value != "zh" {
		t.Fatalf("stored locale = %q, want zh", value)
	}
	if got := router.ActiveLocale(ctx); got != platformi18n.Chinese {
		t.Fatalf("ActiveLocale = %q, want zh", got)
	}

	if _, err := router.Navigate(ctx, "/fr/contact"); err != nil {
		t.Fatalf("Navigate: %v", err)
	}
	if value, _, _ := store.Get(ctx, prefs.LocaleKey); value != "en" {
		t.Fatalf("stored locale after fallback = %q, want en", value)
	}
}

func TestActiveLocaleIgnoresUnsupportedStoredValue(t *testing.T) {
	t.Parallel()

	router := New(prefs.NewMemory(map[string]string{prefs.LocaleKey: "fr"}))
	if got := router.ActiveLocale(context.Background()); got != platformi18n.Default {
		t.Fatalf("ActiveLocale = %q, want %q", got, platformi18n.Default)
	}
	if got := New(brokenStore{}).ActiveLocale(context.Background()); got != platformi18n.Default {
		t.Fatalf("ActiveLocale with broken store = %q, want %q", got, platformi18n.Default)
	}
}

func TestNavigateSurvivesStoreFailure(t *testing.T) {
	t.Parallel()

	nav, err := New(brokenStore{}).Navigate(context.Background(), "/fi")
	if err != nil {
		t.Fatalf("Navigate: %v", err)
	}
	if nav.Location.Path != "/fi" {
		t.Fatalf("path = %q, want /fi", nav.Location.Path)
	}
}

func TestGuard(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	router := New(prefs.NewMemory(nil))

	t.Run("missing locale keeps route name", func(t *testing.T) {
		decision := router.Guard(ctx, Location{Name: RouteContact})
		want := Location{Name: RouteContact, View: RouteContact, Path: "/en/contact", Params: map[string]string{ParamLocale: "en"}}
		if decision.Allow || !reflect.DeepEqual(decision.Redirect, want) {
			t.Fatalf("Guard(contact) = %+v, want redirect %+v", decision, want)
		}
	})

	t.Run("unnamed target goes home", func(t *testing.T) {
		decision := router.Guard(ctx, Location{})
		if decision.Allow || decision.Redirect.Name != RouteHome || decision.Redirect.Path != "/en" {
			t.Fatalf("Guard(unnamed) = %+v, want home redirect", decision)
		}
	})

	t.Run("unsupported locale keeps other params", func(t *testing.T) {
		decision := router.Guard(ctx, Location{
			Name:   RouteProjectDetail,
			Params: map[string]string{ParamLocale: "fr", ParamSlug: "atlas"},
		})
		if decision.Allow || decision.Redirect.Path != "/en/projects/atlas" {
			t.Fatalf("Guard(fr detail) = %+v, want /en/projects/atlas", decision)
		}
	})

	t.Run("unbuildable target falls back home", func(t *testing.T) {
		decision := router.Guard(ctx, Location{Name: RouteProjectDetail, Params: map[string]string{ParamLocale: "fr"}})
		if decision.Allow || decision.Redirect.Path != "/en" {
			t.Fatalf("Guard(detail without slug) = %+v, want /en", decision)
		}
	})

	t.Run("supported locale is allowed", func(t *testing.T) {
		decision := router.Guard(ctx, Location{Name: RouteAbout, Params: map[string]string{ParamLocale: "fi"}})
		if !decision.Allow {
			t.Fatalf("Guard(fi about) = %+v, want allow", decision)
		}
	})
}

func TestRedispatchIsAllowedOnSecondPass(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	router := New(nil)
	for _, loc := range []Location{
		{Name: RouteContact},
		{Name: RouteProjects, Params: map[string]string{ParamLocale: "xx"}},
		{Name: "nope", Params: map[string]string{ParamLocale: "xx"}},
	} {
		first := router.Guard(ctx, loc)
		if first.Allow {
			t.Fatalf("Guard(%+v) allowed", loc)
		}
		if second := router.Guard(ctx, first.Redirect); !second.Allow {
			t.Fatalf("second pass for %+v not allowed: %+v", loc, second)
		}
	}
}

func TestNavigateRedispatchKeepsDecodedParams(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path     string
		wantSlug string
		wantPath string
		wantURL  string
	}{
		{path: "/fr/projects/a b", wantSlug: "a b", wantPath: "/en/projects/a b", wantURL: "/en/projects/a%20b"},
		{path: "/fr/projects/café", wantSlug: "café", wantPath: "/en/projects/café", wantURL: "/en/projects/caf%C3%A9"},
		{path: "/projects/a+b", wantSlug: "a+b", wantPath: "/en/projects/a+b", wantURL: "/en/projects/a+b"},
	}
	router := New(nil)
	for _, tc := range tests {
		nav, err := router.Navigate(context.Background(), tc.path)
		if err != nil {
			t.Fatalf("Navigate(%q): %v", tc.path, err)
		}
		if got := nav.Location.Params[ParamSlug]; got != tc.wantSlug {
			t.Fatalf("Navigate(%q) slug = %q, want %q", tc.path, got, tc.wantSlug)
		}
		if nav.Location.Path != tc.wantPath {
			t.Fatalf("Navigate(%q) path = %q, want %q", tc.path, nav.Location.Path, tc.wantPath)
		}
		got, err := router.Path(nav.Location.Name, nav.Location.Params)
		if err != nil {
			t.Fatalf("Path(): %v", err)
		}
		if got != tc.wantURL {
			t.Fatalf("Path() = %q, want %q", got, tc.wantURL)
		}
	}
}

func TestNavigateDetectsRedirectLoops(t *testing.T) {
	t.Parallel()

	router := NewWithRoutes(nil, nil, []Redirect{{From: "/a", To: "/b"}, {From: "/b", To: "/a"}})
	if _, err := router.Navigate(context.Background(), "/a"); !errors.Is(err, ErrTooManyRedirects) {
		t.Fatalf("Navigate(/a) = %v, want ErrTooManyRedirects", err)
	}
}

func TestPath(t *testing.T) {
	t.Parallel()

	router := New(nil)
	got, err := router.Path(RouteProjectDetail, map[string]string{ParamLocale: "fi", ParamSlug: "a b"})
	if err != nil || got != "/fi/projects/a%20b" {
		t.Fatalf("Path(project-detail) = (%q, %v), want /fi/projects/a%%20b", got, err)
	}
	if _, err := router.Path(RouteProjectDetail, map[string]string{ParamLocale: "fi"}); !errors.Is(err, ErrMissingParam) {
		t.Fatalf("Path without slug = %v, want ErrMissingParam", err)
	}
	if _, err := router.Path("blog", nil); !errors.Is(err, ErrUnknownRoute) {
		t.Fatalf("Path(blog) = %v, want ErrUnknownRoute", err)
	}
}

func TestSwitchLocale(t *testing.T) {
	t.Parallel()

	router := New(nil)
	loc, ok := router.Match("/en/projects/atlas")
	if !ok {
		t.Fatal("expected match")
	}
	if got := router.SwitchLocale(loc, platformi18n.Finnish); got != "/fi/projects/atlas" {
		t.Fatalf("SwitchLocale = %q, want /fi/projects/atlas", got)
	}
	if got := router.SwitchLocale(Location{Name: "gone"}, platformi18n.Chinese); got != "/zh" {
		t.Fatalf("SwitchLocale(unknown) = %q, want /zh", got)
	}
}

func TestMatchPrefersStaticSegments(t *testing.T) {
	t.Parallel()

	router := New(nil)
	if _, ok := router.Match("/projects"); ok {
		t.Fatal("Match(/projects) returned a route, want the redirect record to win")
	}
	loc, ok := router.Match("/zh")
	if !ok || loc.Name != RouteHome || loc.Locale() != "zh" {
		t.Fatalf("Match(/zh) = (%+v, %v)", loc, ok)
	}
}

func TestWithStoreSharesTables(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	base := New(nil)
	store := prefs.NewMemory(nil)
	bound := base.WithStore(store)

	if _, err := bound.Navigate(ctx, "/fi"); err != nil {
		t.Fatalf("Navigate: %v", err)
	}
	if value, _, _ := store.Get(ctx, prefs.LocaleKey); value != "fi" {
		t.Fatalf("stored locale = %q, want fi", value)
	}
	if len(bound.Routes()) != len(base.Routes()) || len(base.Routes()) != 5 {
		t.Fatalf("Routes() = %d/%d, want 5", len(bound.Routes()), len(base.Routes()))
	}
}
