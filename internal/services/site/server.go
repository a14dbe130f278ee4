// Package site serves the localized portfolio pages and theme endpoints.
package site

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/otel"

	"github.com/louisbranch/portfolio/internal/colorscheme"
	"github.com/louisbranch/portfolio/internal/localeroute"
	"github.com/louisbranch/portfolio/internal/platform/timeouts"
	"github.com/louisbranch/portfolio/internal/services/site/content"
	"github.com/louisbranch/portfolio/internal/services/site/httpx"
	"github.com/louisbranch/portfolio/internal/services/site/routepath"
	sitestatic "github.com/louisbranch/portfolio/internal/services/site/static"
)

var tracer = otel.Tracer("github.com/louisbranch/portfolio/internal/services/site")

// Config defines startup inputs for the site.
type Config struct {
	HTTPAddr string
	// Stores binds preference storage per request. Defaults to cookies.
	Stores PreferenceStores
	// Ambient answers for requests that carry no color-scheme client hint.
	// Nil reads as light.
	Ambient colorscheme.Source
	// Projects defaults to the embedded project list.
	Projects *content.Catalog
	Logger   *log.Logger
}

type handler struct {
	stores   PreferenceStores
	ambient  colorscheme.Source
	router   *localeroute.Router
	projects *content.Catalog
}

// NewHandler builds the root HTTP handler.
func NewHandler(cfg Config) (http.Handler, error) {
	projects := cfg.Projects
	if projects == nil {
		var err error
		projects, err = content.Default()
		if err != nil {
			return nil, fmt.Errorf("load projects: %w", err)
		}
	}
	stores := cfg.Stores
	if stores == nil {
		stores = CookieStores{}
	}
	h := &handler{
		stores:   stores,
		ambient:  cfg.Ambient,
		router:   localeroute.New(nil),
		projects: projects,
	}

	r := chi.NewRouter()
	r.Use(httpx.RequestID, httpx.RequestLogger(cfg.Logger), middleware.Recoverer)
	r.Get(routepath.Health, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle(routepath.StaticPrefix+"*", http.StripPrefix(routepath.StaticPrefix, http.FileServer(http.FS(sitestatic.FS))))
	r.Post(routepath.ThemeToggle, h.toggleThemeForm)
	r.Get(routepath.APITheme, h.getTheme)
	r.Put(routepath.APITheme, h.putTheme)
	r.Post(routepath.APIThemeToggle, h.toggleThemeAPI)
	r.Get("/*", h.page)
	return r, nil
}

// Server hosts the site HTTP surface and lifecycle.
type Server struct {
	httpAddr   string
	httpServer *http.Server
}

// NewServer validates config and constructs a site server.
func NewServer(cfg Config) (*Server, error) {
	httpAddr := strings.TrimSpace(cfg.HTTPAddr)
	if httpAddr == "" {
		return nil, errors.New("http address is required")
	}
	root, err := NewHandler(cfg)
	if err != nil {
		return nil, fmt.Errorf("compose site handler: %w", err)
	}
	return &Server{
		httpAddr: httpAddr,
		httpServer: &http.Server{
			Addr:              httpAddr,
			Handler:           root,
			ReadHeaderTimeout: timeouts.ReadHeader,
		},
	}, nil
}

// ListenAndServe serves HTTP traffic until context cancellation or server stop.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil {
		return errors.New("site server is nil")
	}
	if ctx == nil {
		return errors.New("context is required")
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Printf("site listening on %s", s.httpAddr)
		serveErr <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		err := s.httpServer.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("shutdown site http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve site http: %w", err)
	}
}

// Close closes open server resources.
func (s *Server) Close() {
	if s == nil || s.httpServer == nil {
		return
	}
	_ = s.httpServer.Close()
}
