package windowstate

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeWindow records calls made through the runtime hooks.
type fakeWindow struct {
	width, height int
	x, y          int
	maximised     bool
	minimised     bool
	calls         []string
}

// setupTestHooks installs a fake window and returns it with a fresh store.
func setupTestHooks(t *testing.T) (*fakeWindow, *Store) {
	t.Helper()
	win := &fakeWindow{width: 1280, height: 800, x: 40, y: 60}

	origGetSize, origGetPos := windowGetSize, windowGetPosition
	origIsMax, origIsMin := windowIsMaximised, windowIsMinimised
	origSetSize, origSetPos, origMax := windowSetSize, windowSetPosition, windowMaximise
	origNow := now

	windowGetSize = func(context.Context) (int, int) { return win.width, win.height }
	windowGetPosition = func(context.Context) (int, int) { return win.x, win.y }
	windowIsMaximised = func(context.Context) bool { return win.maximised }
	windowIsMinimised = func(context.Context) bool { return win.minimised }
	windowSetSize = func(_ context.Context, w, h int) {
		win.width, win.height = w, h
		win.calls = append(win.calls, "size")
	}
	windowSetPosition = func(_ context.Context, x, y int) {
		win.x, win.y = x, y
		win.calls = append(win.calls, "position")
	}
	windowMaximise = func(context.Context) {
		win.maximised = true
		win.calls = append(win.calls, "maximise")
	}
	now = func() time.Time { return time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC) }

	t.Cleanup(func() {
		windowGetSize, windowGetPosition = origGetSize, origGetPos
		windowIsMaximised, windowIsMinimised = origIsMax, origIsMin
		windowSetSize, windowSetPosition, windowMaximise = origSetSize, origSetPos, origMax
		now = origNow
	})

	path := filepath.Join(t.TempDir(), "state", "window-state.json")
	return win, NewStore(path, 800, 600, nil)
}

// readState reads the window state file for test verification.
func readState(t *testing.T, s *Store) Geometry {
	t.Helper()
	data, err := os.ReadFile(s.path)
	require.NoError(t, err)
	var g Geometry
	require.NoError(t, json.Unmarshal(data, &g))
	return g
}

func TestLoad_NoFile(t *testing.T) {
	_, s := setupTestHooks(t)

	g, err := s.Load()
	require.NoError(t, err)
	assert.Nil(t, g)
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	_, s := setupTestHooks(t)

	require.NoError(t, s.Save(Geometry{X: 10, Y: 20, Width: 1200, Height: 900}))

	g, err := s.Load()
	require.NoError(t, err)
	require.NotNil(t, g)
	assert.Equal(t, 10, g.X)
	assert.Equal(t, 20, g.Y)
	assert.Equal(t, 1200, g.Width)
	assert.Equal(t, 900, g.Height)
	assert.False(t, g.Maximised)
	assert.Equal(t, now(), g.SavedAt.UTC())
}

func TestLoad_TooSmallIgnored(t *testing.T) {
	_, s := setupTestHooks(t)

	require.NoError(t, s.Save(Geometry{Width: 200, Height: 100}))

	g, err := s.Load()
	require.NoError(t, err)
	assert.Nil(t, g, "geometry below the minimum size should not be restored")
}

func TestLoad_CorruptFileFallsBack(t *testing.T) {
	_, s := setupTestHooks(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(s.path), 0700))
	require.NoError(t, os.WriteFile(s.path, []byte("{not json"), 0600))

	g, err := s.Load()
	require.NoError(t, err)
	assert.Nil(t, g)

	// A later save replaces the corrupt file.
	require.NoError(t, s.Save(Geometry{Width: 1000, Height: 700}))
	assert.Equal(t, 1000, readState(t, s).Width)
}

func TestSave_MaximisedKeepsNormalGeometry(t *testing.T) {
	_, s := setupTestHooks(t)

	require.NoError(t, s.Save(Geometry{X: 5, Y: 6, Width: 1100, Height: 700}))
	require.NoError(t, s.Save(Geometry{X: 0, Y: 0, Width: 2560, Height: 1440, Maximised: true}))

	g := readState(t, s)
	assert.True(t, g.Maximised)
	assert.Equal(t, 5, g.X)
	assert.Equal(t, 1100, g.Width)
	assert.Equal(t, 700, g.Height)
}

func TestStartAppliesSavedGeometry(t *testing.T) {
	win, s := setupTestHooks(t)
	require.NoError(t, s.Save(Geometry{X: 100, Y: 200, Width: 1300, Height: 850, Maximised: true}))

	require.NoError(t, s.Start(context.Background()))

	assert.Equal(t, []string{"size", "position", "maximise"}, win.calls)
	assert.Equal(t, 1300, win.width)
	assert.Equal(t, 200, win.y)
	assert.True(t, win.maximised)
}

func TestStartWithoutStateLeavesWindowAlone(t *testing.T) {
	win, s := setupTestHooks(t)

	require.NoError(t, s.Start(context.Background()))
	assert.Empty(t, win.calls)
}

func TestCapture(t *testing.T) {
	win, s := setupTestHooks(t)

	// Not started: nothing to capture.
	require.NoError(t, s.Capture())
	_, err := os.Stat(s.path)
	assert.True(t, os.IsNotExist(err))

	require.NoError(t, s.Start(context.Background()))
	require.NoError(t, s.Capture())

	g := readState(t, s)
	assert.Equal(t, Geometry{X: 40, Y: 60, Width: 1280, Height: 800, SavedAt: g.SavedAt}, g)

	// Minimised windows are not recorded.
	win.minimised = true
	win.width = 10
	require.NoError(t, s.Capture())
	assert.Equal(t, 1280, readState(t, s).Width)

	require.NoError(t, s.Stop(context.Background()))
}

func TestConcurrentSaves(t *testing.T) {
	_, s := setupTestHooks(t)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			assert.NoError(t, s.Save(Geometry{X: i, Width: 1000 + i, Height: 700}))
		}(i)
	}
	wg.Wait()

	g := readState(t, s)
	assert.GreaterOrEqual(t, g.Width, 1000)
	assert.Equal(t, g.Width-1000, g.X, "file must hold one complete write")
}
