package widget

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDisplay records the theme attribute the way the document root would.
type fakeDisplay struct {
	theme    Theme
	explicit bool
	applies  int
}

func (d *fakeDisplay) ApplyTheme(t Theme) {
	d.theme = t
	d.explicit = true
	d.applies++
}

func (d *fakeDisplay) ClearTheme() {
	d.theme = ""
	d.explicit = false
}

// brokenStore fails every operation, like storage being disabled.
type brokenStore struct{}

func (brokenStore) Get(string) (string, error) { return "", errors.New("storage disabled") }
func (brokenStore) Set(string, string) error   { return errors.New("storage disabled") }

func prefersDark() Theme  { return ThemeDark }
func prefersLight() Theme { return ThemeLight }

func TestThemeInitializeAppliesPersistedValue(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.Set(ThemeKey, "dark"))
	display := &fakeDisplay{}

	c := NewThemeController(store, display, prefersLight, nil)
	require.NoError(t, c.Initialize())

	assert.Equal(t, ThemeDark, display.theme)
	got, ok := c.Current()
	assert.True(t, ok)
	assert.Equal(t, ThemeDark, got)
}

func TestThemeInitializeWithoutStoredValueAppliesNothing(t *testing.T) {
	display := &fakeDisplay{}
	c := NewThemeController(NewMemoryStore(), display, prefersDark, nil)
	require.NoError(t, c.Initialize())

	// No explicit apply: the environment default stays in force.
	assert.Zero(t, display.applies)
	_, ok := c.Current()
	assert.False(t, ok)
	assert.Equal(t, ThemeDark, c.Resolved())
}

func TestThemeFirstToggleOpposesEnvironmentPreference(t *testing.T) {
	store := NewMemoryStore()
	display := &fakeDisplay{}
	c := NewThemeController(store, display, prefersDark, nil)
	require.NoError(t, c.Initialize())

	got := c.Toggle()

	assert.Equal(t, ThemeLight, got)
	assert.Equal(t, ThemeLight, display.theme)
	persisted, err := store.Get(ThemeKey)
	require.NoError(t, err)
	assert.Equal(t, "light", persisted)
}

func TestThemeToggleSequenceAlternatesDeterministically(t *testing.T) {
	store := NewMemoryStore()
	display := &fakeDisplay{}
	c := NewThemeController(store, display, prefersDark, nil)
	require.NoError(t, c.Initialize())

	// unset -> light -> dark -> light -> ...
	want := []Theme{ThemeLight, ThemeDark, ThemeLight, ThemeDark, ThemeLight}
	for i, w := range want {
		got := c.Toggle()
		assert.Equal(t, w, got, "toggle %d", i+1)

		// Applied and persisted state agree after every mutation.
		assert.Equal(t, w, display.theme)
		persisted, err := store.Get(ThemeKey)
		require.NoError(t, err)
		assert.Equal(t, string(w), persisted)
	}
}

func TestThemeBrokenStorageDegradesToMemory(t *testing.T) {
	display := &fakeDisplay{}
	c := NewThemeController(brokenStore{}, display, prefersLight, nil)
	require.NoError(t, c.Initialize())

	got := c.Toggle()
	assert.Equal(t, ThemeDark, got)
	assert.Equal(t, ThemeDark, display.theme)

	// The in-session value survives even though persistence failed.
	cur, ok := c.Current()
	assert.True(t, ok)
	assert.Equal(t, ThemeDark, cur)
	assert.Equal(t, ThemeLight, c.Toggle())
}

func TestThemeInitializeWithoutDisplayDisables(t *testing.T) {
	c := NewThemeController(NewMemoryStore(), nil, prefersLight, nil)
	assert.ErrorIs(t, c.Initialize(), ErrMissingAnchor)
}

func TestThemeInitializeIgnoresGarbagePersistedValue(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.Set(ThemeKey, "mauve"))
	display := &fakeDisplay{}
	c := NewThemeController(store, display, prefersLight, nil)
	require.NoError(t, c.Initialize())

	assert.Zero(t, display.applies)
	_, ok := c.Current()
	assert.False(t, ok)
}
