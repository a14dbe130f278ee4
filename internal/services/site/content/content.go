// Package content loads the project listings shown on the site.
package content

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	platformi18n "github.com/louisbranch/portfolio/internal/platform/i18n"
	"gopkg.in/yaml.v3"
)

//go:embed projects.yaml
var embedded embed.FS

// ErrNotFound is returned when no project has the requested slug.
var ErrNotFound = errors.New("project not found")

// Text holds one string per locale code.
type Text map[string]string

// In returns the text for locale, falling back to the default locale.
func (t Text) In(locale platformi18n.Locale) string {
	if value := strings.TrimSpace(t[locale.String()]); value != "" {
		return value
	}
	return strings.TrimSpace(t[platformi18n.Default.String()])
}

// Project is one portfolio entry.
type Project struct {
	Slug    string   `yaml:"slug"`
	URL     string   `yaml:"url"`
	Tags    []string `yaml:"tags"`
	Title   Text     `yaml:"title"`
	Summary Text     `yaml:"summary"`
}

// View is a Project resolved for one locale.
type View struct {
	Slug    string
	URL     string
	Tags    []string
	Title   string
	Summary string
}

// Localize resolves p for locale.
func (p Project) Localize(locale platformi18n.Locale) View {
	return View{
		Slug:    p.Slug,
		URL:     p.URL,
		Tags:    append([]string(nil), p.Tags...),
		Title:   p.Title.In(locale),
		Summary: p.Summary.In(locale),
	}
}

// Catalog is an ordered, slug-indexed project list.
type Catalog struct {
	projects []Project
	bySlug   map[string]int
}

type catalogFile struct {
	Projects []Project `yaml:"projects"`
}

// Default loads the embedded project list.
func Default() (*Catalog, error) {
	return Load(embedded, "projects.yaml")
}

// Load parses a project list from fsys.
func Load(fsys fs.FS, name string) (*Catalog, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML project list.
func Parse(data []byte) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse projects: %w", err)
	}
	c := &Catalog{bySlug: make(map[string]int, len(file.Projects))}
	for i, project := range file.Projects {
		project.Slug = strings.TrimSpace(project.Slug)
		if project.Slug == "" {
			return nil, fmt.Errorf("project %d: slug is required", i)
		}
		if _, dup := c.bySlug[project.Slug]; dup {
			return nil, fmt.Errorf("project %q: duplicate slug", project.Slug)
		}
		if project.Title.In(platformi18n.Default) == "" {
			return nil, fmt.Errorf("project %q: %s title is required", project.Slug, platformi18n.Default)
		}
		c.bySlug[project.Slug] = len(c.projects)
		c.projects = append(c.projects, project)
	}
	return c, nil
}

// List returns every project localized for locale, in file order.
func (c *Catalog) List(locale platformi18n.Locale) []View {
	if c == nil {
		return nil
	}
	out := make([]View, 0, len(c.projects))
	for _, project := range c.projects {
		out = append(out, project.Localize(locale))
	}
	return out
}

// Find returns one project localized for locale.
func (c *Catalog) Find(slug string, locale platformi18n.Locale) (View, error) {
	if c != nil {
		if i, ok := c.bySlug[slug]; ok {
			return c.projects[i].Localize(locale), nil
		}
	}
	return View{}, fmt.Errorf("%w: %s", ErrNotFound, slug)
}
