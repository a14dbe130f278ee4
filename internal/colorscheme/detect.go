package colorscheme

import (
	"context"
	"errors"
	"os/exec"
	"runtime"
	"strings"
)

// Detector reads the operating system color-scheme preference.
type Detector interface {
	Name() string
	// Detect returns the preference and whether detection succeeded.
	Detect(ctx context.Context) (prefersDark bool, ok bool)
}

// CommandRunner runs an external command and returns its stdout.
type CommandRunner func(ctx context.Context, name string, args ...string) ([]byte, error)

func execRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// GSettings detects the GNOME desktop preference.
type GSettings struct {
	Run CommandRunner
}

// Name returns the detector name.
func (GSettings) Name() string { return "gsettings" }

// Detect checks color-scheme (GNOME 42+) and falls back to the GTK theme name.
func (g GSettings) Detect(ctx context.Context) (bool, bool) {
	run := g.Run
	if run == nil {
		run = execRunner
	}
	if output, err := run(ctx, "gsettings", "get", "org.gnome.desktop.interface", "color-scheme"); err == nil {
		value := strings.ToLower(string(output))
		switch {
		case strings.Contains(value, "dark"):
			return true, true
		case strings.Contains(value, "light"), strings.Contains(value, "default"):
			return false, true
		}
	}
	output, err := run(ctx, "gsettings", "get", "org.gnome.desktop.interface", "gtk-theme")
	if err != nil {
		return false, false
	}
	return strings.Contains(strings.ToLower(string(output)), "dark"), true
}

// MacDefaults detects the macOS appearance setting.
type MacDefaults struct {
	Run CommandRunner
}

// Name returns the detector name.
func (MacDefaults) Name() string { return "defaults" }

// Detect reads AppleInterfaceStyle. The key is absent in light mode, so a
// failed read still counts as a light answer unless the tool itself is missing.
func (m MacDefaults) Detect(ctx context.Context) (bool, bool) {
	run := m.Run
	if run == nil {
		run = execRunner
	}
	output, err := run(ctx, "defaults", "read", "-g", "AppleInterfaceStyle")
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) || ctx.Err() != nil {
			return false, false
		}
		return false, true
	}
	return strings.EqualFold(strings.TrimSpace(string(output)), "dark"), true
}

// SystemDetectors returns the detectors that apply to the running OS.
func SystemDetectors() []Detector {
	switch runtime.GOOS {
	case "darwin":
		return []Detector{MacDefaults{}}
	case "linux", "freebsd", "openbsd":
		return []Detector{GSettings{}}
	default:
		return nil
	}
}

// Detect returns the first successful answer from detectors in order.
func Detect(ctx context.Context, detectors []Detector) (prefersDark bool, source string, ok bool) {
	for _, detector := range detectors {
		if detector == nil {
			continue
		}
		if dark, ok := detector.Detect(ctx); ok {
			return dark, detector.Name(), true
		}
	}
	return false, "", false
}
