// Package config builds the startup configuration of the desktop shell.
// It is read once at startup: defaults, then config.toml, then environment
// overrides.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

// DirName is the per-user directory holding config, window state and logs.
const DirName = ".osi-simulator"

// DevVersion is the version string of builds without ldflags.
const DevVersion = "0.1.0-dev"

// Env var names used as overrides.
const (
	EnvDebug       = "OSI_DEBUG"
	EnvLogLevel    = "OSI_LOG_LEVEL"
	EnvLogFile     = "OSI_LOG_FILE"
	EnvLogFormat   = "OSI_LOG_FORMAT"
	EnvWindowState = "OSI_WINDOW_STATE"
	EnvWailsDev    = "WAILS_DEV"
)

// Package-level hooks for testing. In production, these use the real implementations.
var (
	getHomeDir = os.UserHomeDir
	getEnvVar  = os.Getenv
	goos       = runtime.GOOS
)

// LogConfig represents the [log] section of config.toml
type LogConfig struct {
	Level  string `toml:"level"`  // "debug", "info", "warn", "error"
	Format string `toml:"format"` // "console" or "json"
	File   string `toml:"file"`   // rotated log file; empty uses <dir>/logs/debug.log
}

// WindowConfig represents the [window] section of config.toml
type WindowConfig struct {
	Width     int  `toml:"width"`
	Height    int  `toml:"height"`
	MinWidth  int  `toml:"min_width"`
	MinHeight int  `toml:"min_height"`
	Persist   bool `toml:"persist_state"`
}

// AppConfig is the configuration object consulted once at startup.
type AppConfig struct {
	Debug  bool         `toml:"debug"`
	Log    LogConfig    `toml:"log"`
	Window WindowConfig `toml:"window"`

	// Desktop is derived from the platform, never read from the file.
	Desktop bool `toml:"-"`
	// Dir is the directory the config was loaded from.
	Dir string `toml:"-"`
}

// Defaults returns the application defaults.
func Defaults() AppConfig {
	return AppConfig{
		Debug: false,
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
		Window: WindowConfig{
			Width:     1024,
			Height:    768,
			MinWidth:  800,
			MinHeight: 600,
			Persist:   true,
		},
		Desktop: IsDesktop(goos),
	}
}

// Dir returns the per-user application directory.
func Dir() string {
	home, err := getHomeDir()
	if err != nil {
		slog.Warn("could not determine home directory, using temp dir", slog.Any("error", err))
		return filepath.Join(os.TempDir(), DirName)
	}
	return filepath.Join(home, DirName)
}

// DefaultPath returns the path to config.toml.
func DefaultPath() string {
	return filepath.Join(Dir(), "config.toml")
}

// IsDesktop reports whether GOOS is a desktop target. Window-state
// persistence is only enabled on these.
func IsDesktop(platform string) bool {
	switch platform {
	case "darwin", "linux", "windows", "freebsd", "openbsd", "netbsd":
		return true
	}
	return false
}

// IsDevBuild reports whether the process runs as a development build:
// either under `wails dev` or without a release version stamped in.
func IsDevBuild(version string) bool {
	return getEnvVar(EnvWailsDev) != "" || version == DevVersion
}

// Load reads the config at path. A missing file yields defaults; a file that
// fails to parse is logged and also yields defaults.
func Load(path string) (*AppConfig, error) {
	cfg := Defaults()
	cfg.Dir = filepath.Dir(path)

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if len(data) > 0 {
		if err := toml.Unmarshal(data, &cfg); err != nil {
			slog.Warn("failed to parse config, using defaults", slog.String("path", path), slog.Any("error", err))
			cfg = Defaults()
			cfg.Dir = filepath.Dir(path)
		}
	}

	applyEnv(&cfg)
	normalize(&cfg)
	return &cfg, nil
}

// LogFile returns the log file to write, defaulting under the config dir.
func (c *AppConfig) LogFile() string {
	if c.Log.File != "" {
		return c.Log.File
	}
	return filepath.Join(c.Dir, "logs", "debug.log")
}

// WindowStatePath returns the window-state file location.
func (c *AppConfig) WindowStatePath() string {
	return filepath.Join(c.Dir, "window-state.json")
}

// PersistWindowState reports whether window geometry should be saved and restored.
func (c *AppConfig) PersistWindowState() bool {
	return c.Desktop && c.Window.Persist
}

func applyEnv(cfg *AppConfig) {
	if v := getEnvVar(EnvDebug); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Debug = b
		}
	}
	if v := getEnvVar(EnvLogLevel); v != "" {
		cfg.Log.Level = v
	}
	if v := getEnvVar(EnvLogFormat); v != "" {
		cfg.Log.Format = v
	}
	if v := getEnvVar(EnvLogFile); v != "" {
		cfg.Log.File = v
	}
	if v := getEnvVar(EnvWindowState); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Window.Persist = b
		}
	}
}

func normalize(cfg *AppConfig) {
	cfg.Log.Level = strings.ToLower(strings.TrimSpace(cfg.Log.Level))
	switch cfg.Log.Level {
	case "debug", "info", "warn", "error":
		// Valid
	case "warning":
		cfg.Log.Level = "warn"
	default:
		cfg.Log.Level = "info"
	}

	cfg.Log.Format = strings.ToLower(strings.TrimSpace(cfg.Log.Format))
	switch cfg.Log.Format {
	case "console", "json":
		// Valid
	default:
		cfg.Log.Format = "console"
	}

	d := Defaults().Window
	if cfg.Window.MinWidth <= 0 {
		cfg.Window.MinWidth = d.MinWidth
	}
	if cfg.Window.MinHeight <= 0 {
		cfg.Window.MinHeight = d.MinHeight
	}
	if cfg.Window.Width < cfg.Window.MinWidth {
		cfg.Window.Width = max(d.Width, cfg.Window.MinWidth)
	}
	if cfg.Window.Height < cfg.Window.MinHeight {
		cfg.Window.Height = max(d.Height, cfg.Window.MinHeight)
	}

	cfg.Desktop = IsDesktop(goos)
}
