package content

import (
	"errors"
	"testing"
	"testing/fstest"

	platformi18n "github.com/louisbranch/portfolio/internal/platform/i18n"
)

func TestDefaultCatalogLoads(t *testing.T) {
	t.Parallel()

	catalog, err := Default()
	if err != nil {
		t.Fatalf("Default() error = %v", err)
	}
	projects := catalog.List(platformi18n.English)
	if len(projects) == 0 {
		t.Fatalf("expected embedded projects")
	}
	for _, project := range projects {
		if project.Title == "" {
			t.Fatalf("project %q has no title", project.Slug)
		}
	}
}

func TestFindLocalizesWithFallback(t *testing.T) {
	t.Parallel()

	catalog, err := Parse([]byte(`
projects:
  - slug: demo
    title:
      en: Demo
      zh: 演示
    summary:
      en: English summary
`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	view, err := catalog.Find("demo", platformi18n.Chinese)
	if err != nil {
		t.Fatalf("Find() error = %v", err)
	}
	if view.Title != "演示" {
		t.Fatalf("Title = %q, want %q", view.Title, "演示")
	}
	if view.Summary != "English summary" {
		t.Fatalf("Summary = %q, want fallback %q", view.Summary, "English summary")
	}

	view, err = catalog.Find("demo", platformi18n.Finnish)
	if err != nil {
		t.Fatalf("Find() error = %v", err)
	}
	if view.Title != "Demo" {
		t.Fatalf("Title = %q, want %q", view.Title, "Demo")
	}
}

func TestFindUnknownSlug(t *testing.T) {
	t.Parallel()

	catalog, err := Default()
	if err != nil {
		t.Fatalf("Default() error = %v", err)
	}
	if _, err := catalog.Find("nope", platformi18n.English); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Find() error = %v, want ErrNotFound", err)
	}
	var nilCatalog *Catalog
	if _, err := nilCatalog.Find("nope", platformi18n.English); !errors.Is(err, ErrNotFound) {
		t.Fatalf("nil Find() error = %v, want ErrNotFound", err)
	}
}

func TestParseRejectsInvalidProjects(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data string
	}{
		{name: "missing slug", data: "projects:\n  - title: {en: A}\n"},
		{name: "duplicate slug", data: "projects:\n  - slug: a\n    title: {en: A}\n  - slug: a\n    title: {en: B}\n"},
		{name: "missing default title", data: "projects:\n  - slug: a\n    title: {fi: A}\n"},
		{name: "malformed yaml", data: "projects: [\n"},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if _, err := Parse([]byte(tc.data)); err == nil {
				t.Fatalf("expected parse error")
			}
		})
	}
}

func TestLoadFromFS(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{"p.yaml": {Data: []byte("projects:\n  - slug: x\n    title: {en: X}\n")}}
	catalog, err := Load(fsys, "p.yaml")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got := len(catalog.List(platformi18n.English)); got != 1 {
		t.Fatalf("List() len = %d, want 1", got)
	}
	if _, err := Load(fsys, "missing.yaml"); err == nil {
		t.Fatalf("expected missing file error")
	}
}
