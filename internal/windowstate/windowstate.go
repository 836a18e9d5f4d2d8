// Package windowstate remembers the main window's size, position and
// maximised flag across restarts. It is only registered on desktop targets.
package windowstate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/wailsapp/wails/v2/pkg/runtime"
)

// Package-level hooks for testing. In production, these use the real implementations.
var (
	windowGetSize     = runtime.WindowGetSize
	windowGetPosition = runtime.WindowGetPosition
	windowIsMaximised = runtime.WindowIsMaximised
	windowIsMinimised = runtime.WindowIsMinimised
	windowSetSize     = runtime.WindowSetSize
	windowSetPosition = runtime.WindowSetPosition
	windowMaximise    = runtime.WindowMaximise
	now               = time.Now
)

// Geometry is the persisted window state.
type Geometry struct {
	X         int       `json:"x"`
	Y         int       `json:"y"`
	Width     int       `json:"width"`
	Height    int       `json:"height"`
	Maximised bool      `json:"maximised"`
	SavedAt   time.Time `json:"savedAt"`
}

// Valid reports whether the geometry is worth restoring.
func (g Geometry) Valid(minWidth, minHeight int) bool {
	return g.Width >= minWidth && g.Height >= minHeight
}

// Store reads and writes window-state.json.
type Store struct {
	path      string
	minWidth  int
	minHeight int
	log       *slog.Logger

	ctx context.Context
}

// NewStore creates a store at path. Geometries smaller than the minimum
// size are never restored.
func NewStore(path string, minWidth, minHeight int, log *slog.Logger) *Store {
	if log == nil {
		log = slog.Default()
	}
	return &Store{
		path:      path,
		minWidth:  minWidth,
		minHeight: minHeight,
		log:       log.With(slog.String("component", "windowstate")),
	}
}

// withFileLock executes fn while holding an exclusive lock on the state file.
// fn receives the current geometry (nil if none saved) and returns the one
// to write back, or nil to leave the file unchanged.
func (s *Store) withFileLock(fn func(current *Geometry) (*Geometry, error)) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	unlock, err := lockFile(s.path)
	if err != nil {
		return err
	}
	defer func() { _ = unlock() }()

	current, err := s.read()
	if err != nil {
		// Corrupt state is not fatal: start over from defaults.
		s.log.Warn("failed to parse window state, using defaults", slog.Any("error", err))
		current = nil
	}

	next, err := fn(current)
	if err != nil || next == nil {
		return err
	}

	data, err := json.MarshalIndent(next, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write window state: %w", err)
	}
	return nil
}

func (s *Store) read() (*Geometry, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	var g Geometry
	if err := json.NewDecoder(f).Decode(&g); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, err
	}
	return &g, nil
}

// Load returns the saved geometry, or nil if nothing valid is stored.
func (s *Store) Load() (*Geometry, error) {
	var out *Geometry
	err := s.withFileLock(func(current *Geometry) (*Geometry, error) {
		if current != nil && current.Valid(s.minWidth, s.minHeight) {
			out = current
		}
		return nil, nil
	})
	return out, err
}

// Save records g. When g is maximised, the last non-maximised size and
// position are kept so un-maximising after a restart lands somewhere sane.
func (s *Store) Save(g Geometry) error {
	return s.withFileLock(func(current *Geometry) (*Geometry, error) {
		next := g
		next.SavedAt = now()
		if g.Maximised && current != nil && current.Valid(s.minWidth, s.minHeight) {
			next.X, next.Y = current.X, current.Y
			next.Width, next.Height = current.Width, current.Height
		}
		return &next, nil
	})
}

func (s *Store) Name() string { return "windowstate" }

// Start restores the saved geometry onto the window.
func (s *Store) Start(ctx context.Context) error {
	s.ctx = ctx
	g, err := s.Load()
	if err != nil {
		return err
	}
	if g == nil {
		return nil
	}
	s.Apply(ctx, *g)
	return nil
}

// Stop forgets the runtime context. Geometry is captured earlier by
// Capture, while the window still exists.
func (s *Store) Stop(context.Context) error {
	s.ctx = nil
	return nil
}

// Apply moves and sizes the window to g.
func (s *Store) Apply(ctx context.Context, g Geometry) {
	windowSetSize(ctx, g.Width, g.Height)
	windowSetPosition(ctx, g.X, g.Y)
	if g.Maximised {
		windowMaximise(ctx)
	}
	s.log.Info("window state restored",
		slog.Int("width", g.Width), slog.Int("height", g.Height),
		slog.Int("x", g.X), slog.Int("y", g.Y), slog.Bool("maximised", g.Maximised))
}

// Capture reads the current window geometry and saves it. A minimised
// window is skipped; its reported geometry is meaningless.
func (s *Store) Capture() error {
	if s.ctx == nil {
		return nil
	}
	if windowIsMinimised(s.ctx) {
		return nil
	}
	w, h := windowGetSize(s.ctx)
	x, y := windowGetPosition(s.ctx)
	return s.Save(Geometry{
		X:         x,
		Y:         y,
		Width:     w,
		Height:    h,
		Maximised: windowIsMaximised(s.ctx),
	})
}
