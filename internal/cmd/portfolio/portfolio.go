// Package portfolio parses portfolio command flags and runs the site.
package portfolio

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/louisbranch/portfolio/internal/colorscheme"
	entrypoint "github.com/louisbranch/portfolio/internal/platform/cmd"
	"github.com/louisbranch/portfolio/internal/platform/otel"
	prefsqlite "github.com/louisbranch/portfolio/internal/prefs/sqlite"
	"github.com/louisbranch/portfolio/internal/services/site"
)

// Preference backends.
const (
	PrefsCookie = "cookie"
	PrefsSQLite = "sqlite"
)

// Ambient sources.
const (
	AmbientClientHint = "client-hint"
	AmbientSystem     = "system"
)

// Config holds the portfolio command configuration.
type Config struct {
	HTTPAddr        string        `env:"PORTFOLIO_HTTP_ADDR" envDefault:"localhost:8080"`
	Prefs           string        `env:"PORTFOLIO_PREFS" envDefault:"cookie"`
	DBPath          string        `env:"PORTFOLIO_DB_PATH" envDefault:"data/portfolio.db"`
	Ambient         string        `env:"PORTFOLIO_AMBIENT" envDefault:"client-hint"`
	AmbientInterval time.Duration `env:"PORTFOLIO_AMBIENT_INTERVAL" envDefault:"30s"`
	CookieSecure    bool          `env:"PORTFOLIO_COOKIE_SECURE"`
	Telemetry       otel.Config
}

// ParseConfig parses environment defaults and flags into a Config. A nil
// environ reads the process environment.
func ParseConfig(fs *flag.FlagSet, args []string, environ map[string]string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg, environ); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
	fs.StringVar(&cfg.Prefs, "prefs", cfg.Prefs, "Preference storage: cookie or sqlite")
	fs.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "SQLite preference database path")
	fs.StringVar(&cfg.Ambient, "ambient", cfg.Ambient, "Ambient color scheme: client-hint or system")
	fs.DurationVar(&cfg.AmbientInterval, "ambient-interval", cfg.AmbientInterval, "System color scheme poll interval")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (cfg *Config) validate() error {
	cfg.Prefs = strings.ToLower(strings.TrimSpace(cfg.Prefs))
	cfg.Ambient = strings.ToLower(strings.TrimSpace(cfg.Ambient))
	switch cfg.Prefs {
	case PrefsCookie:
	case PrefsSQLite:
		if strings.TrimSpace(cfg.DBPath) == "" {
			return errors.New("db path is required for sqlite preferences")
		}
	default:
		return fmt.Errorf("unknown preference storage %q", cfg.Prefs)
	}
	switch cfg.Ambient {
	case AmbientClientHint, AmbientSystem:
	default:
		return fmt.Errorf("unknown ambient source %q", cfg.Ambient)
	}
	return nil
}

// Run starts the site and, for the system ambient source, the OS color-scheme
// watcher. Both stop when ctx ends.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServicePortfolio, cfg.Telemetry, func(ctx context.Context) error {
		siteCfg := site.Config{
			HTTPAddr: cfg.HTTPAddr,
			Stores:   site.CookieStores{Secure: cfg.CookieSecure},
		}

		if cfg.Prefs == PrefsSQLite {
			store, err := prefsqlite.Open(cfg.DBPath)
			if err != nil {
				return fmt.Errorf("open preference store: %w", err)
			}
			defer func() {
				if err := store.Close(); err != nil {
					log.Printf("close preference store: %v", err)
				}
			}()
			siteCfg.Stores = site.VisitorStores{Preferences: store, Secure: cfg.CookieSecure}
		}

		var watcher *colorscheme.Watcher
		if cfg.Ambient == AmbientSystem {
			watcher = colorscheme.NewWatcher(colorscheme.NewSignal(false), cfg.AmbientInterval, colorscheme.SystemDetectors()...)
			siteCfg.Ambient = watcher.Signal()
		}

		server, err := site.NewServer(siteCfg)
		if err != nil {
			return fmt.Errorf("init site server: %w", err)
		}
		defer server.Close()

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			if err := server.ListenAndServe(gctx); err != nil {
				return fmt.Errorf("serve site: %w", err)
			}
			return nil
		})
		if watcher != nil {
			g.Go(func() error {
				return watcher.Run(gctx)
			})
		}
		return g.Wait()
	})
}
