// Package templates renders the site's HTML pages.
package templates

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"
	"golang.org/x/text/message"

	platformi18n "github.com/louisbranch/portfolio/internal/platform/i18n"
	// Registers the site message catalog with x/text.
	_ "github.com/louisbranch/portfolio/internal/platform/i18n/catalog"
	"github.com/louisbranch/portfolio/internal/services/site/content"
)

// Link is a navigation anchor.
type Link struct {
	Label  string
	Href   string
	Lang   string
	Active bool
}

// Page carries everything the shared layout needs.
type Page struct {
	Locale platformi18n.Locale
	Title  string
	// Theme is the data-theme value. Empty leaves the choice to the
	// browser's prefers-color-scheme.
	Theme string
	// Dark is the effective state used for the toggle label.
	Dark       bool
	CSSPath    string
	TogglePath string
	// ReturnTo is the path the theme toggle form returns to.
	ReturnTo  string
	Nav       []Link
	Languages []Link
}

// Printer returns the message printer for the page locale.
func (p Page) Printer() *message.Printer {
	return platformi18n.Printer(p.Locale)
}

// Layout wraps body in the full HTML document.
func Layout(page Page, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		tw := &writer{w: w}
		p := page.Printer()
		tw.printf(`<!doctype html><html lang="%s"`, esc(page.Locale.Tag().String()))
		if page.Theme != "" {
			tw.printf(` data-theme="%s"`, esc(page.Theme))
		}
		tw.write(`><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1">`)
		tw.printf(`<title>%s | %s</title>`, esc(page.Title), esc(p.Sprintf("core.site_name")))
		if page.CSSPath != "" {
			tw.printf(`<link rel="stylesheet" href="%s">`, esc(page.CSSPath))
		}
		tw.write(`</head><body><header class="site-header"><nav class="site-nav">`)
		for _, link := range page.Nav {
			tw.anchor(link, "")
		}
		tw.write(`</nav>`)
		tw.printf(`<nav class="site-languages" aria-label="%s">`, esc(p.Sprintf("core.language")))
		for _, link := range page.Languages {
			tw.anchor(link, link.Lang)
		}
		tw.write(`</nav>`)
		if page.TogglePath != "" {
			label := p.Sprintf("theme.to_dark")
			if page.Dark {
				label = p.Sprintf("theme.to_light")
			}
			tw.printf(`<form class="theme-toggle" method="post" action="%s">`, esc(page.TogglePath))
			tw.printf(`<input type="hidden" name="return_to" value="%s">`, esc(page.ReturnTo))
			tw.printf(`<button type="submit">%s</button></form>`, esc(label))
		}
		tw.write(`</header><main id="main">`)
		if tw.err != nil {
			return tw.err
		}
		if body != nil {
			if err := body.Render(ctx, w); err != nil {
				return err
			}
		}
		tw.write(`</main></body></html>`)
		return tw.err
	})
}

// Text renders a titled paragraph page.
func Text(title, body string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		tw := &writer{w: w}
		tw.printf(`<section class="page"><h1>%s</h1><p>%s</p></section>`, esc(title), esc(body))
		return tw.err
	})
}

// ProjectList renders the project index. href builds each detail link.
func ProjectList(title, empty string, projects []content.View, href func(slug string) string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		tw := &writer{w: w}
		tw.printf(`<section class="projects"><h1>%s</h1>`, esc(title))
		if len(projects) == 0 {
			tw.printf(`<p class="empty">%s</p>`, esc(empty))
		} else {
			tw.write(`<ul>`)
			for _, project := range projects {
				tw.printf(`<li><a href="%s">%s</a>`, esc(href(project.Slug)), esc(project.Title))
				if project.Summary != "" {
					tw.printf(` <span class="summary">%s</span>`, esc(project.Summary))
				}
				tw.write(`</li>`)
			}
			tw.write(`</ul>`)
		}
		tw.write(`</section>`)
		return tw.err
	})
}

// ProjectDetail renders one project.
func ProjectDetail(project content.View, back Link) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		tw := &writer{w: w}
		tw.printf(`<article class="project" data-slug="%s"><h1>%s</h1>`, esc(project.Slug), esc(project.Title))
		if project.Summary != "" {
			tw.printf(`<p>%s</p>`, esc(project.Summary))
		}
		if len(project.Tags) > 0 {
			tw.write(`<ul class="tags">`)
			for _, tag := range project.Tags {
				tw.printf(`<li>%s</li>`, esc(tag))
			}
			tw.write(`</ul>`)
		}
		if project.URL != "" {
			tw.printf(`<p><a href="%s" rel="noopener">%s</a></p>`, esc(project.URL), esc(project.URL))
		}
		tw.printf(`<p><a href="%s">%s</a></p></article>`, esc(back.Href), esc(back.Label))
		return tw.err
	})
}

type writer struct {
	w   io.Writer
	err error
}

func (tw *writer) write(s string) {
	if tw.err != nil {
		return
	}
	_, tw.err = io.WriteString(tw.w, s)
}

func (tw *writer) printf(format string, args ...any) {
	tw.write(fmt.Sprintf(format, args...))
}

func (tw *writer) anchor(link Link, lang string) {
	var attrs strings.Builder
	if lang != "" {
		fmt.Fprintf(&attrs, ` hreflang="%s" lang="%s"`, esc(lang), esc(lang))
	}
	if link.Active {
		attrs.WriteString(` aria-current="page"`)
	}
	tw.printf(`<a href="%s"%s>%s</a>`, esc(link.Href), attrs.String(), esc(link.Label))
}

func esc(s string) string {
	return templ.EscapeString(s)
}
