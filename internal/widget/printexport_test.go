package widget

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakePrinter records the theme visible at print time and can run a hook to
// simulate user activity while the dialog is up.
type fakePrinter struct {
	display *fakeDisplay
	seen    []Theme
	onPrint func()
}

func (p *fakePrinter) Print() {
	p.seen = append(p.seen, p.display.theme)
	if p.onPrint != nil {
		p.onPrint()
	}
}

func newExporterForTest(c *ThemeController, p Printer) *PrintExporter {
	e := NewPrintExporter(c, p)
	e.sleep = func(time.Duration) {} // no real waiting in tests
	return e
}

func TestPrintExportRestoresDarkExactly(t *testing.T) {
	display := &fakeDisplay{}
	c := NewThemeController(NewMemoryStore(), display, prefersLight, nil)
	require.NoError(t, c.Initialize())
	c.Set(ThemeDark)

	printer := &fakePrinter{display: display}
	e := newExporterForTest(c, printer)
	require.NoError(t, e.Initialize())
	e.ExportArtifact()

	// The snapshot was taken in light mode, then dark came back.
	assert.Equal(t, []Theme{ThemeLight}, printer.seen)
	assert.Equal(t, ThemeDark, display.theme)
	cur, ok := c.Current()
	assert.True(t, ok)
	assert.Equal(t, ThemeDark, cur)
}

func TestPrintExportRestoresUnsetAsUnset(t *testing.T) {
	display := &fakeDisplay{}
	c := NewThemeController(NewMemoryStore(), display, prefersDark, nil)
	require.NoError(t, c.Initialize())

	printer := &fakePrinter{display: display}
	e := newExporterForTest(c, printer)
	e.ExportArtifact()

	assert.Equal(t, []Theme{ThemeLight}, printer.seen)
	// Not coerced to light: the explicit attribute is cleared again.
	assert.False(t, display.explicit)
	_, ok := c.Current()
	assert.False(t, ok)
}

func TestPrintExportDoesNotPersistTheForcedTheme(t *testing.T) {
	store := NewMemoryStore()
	display := &fakeDisplay{}
	c := NewThemeController(store, display, prefersLight, nil)
	require.NoError(t, c.Initialize())
	c.Set(ThemeDark)

	e := newExporterForTest(c, &fakePrinter{display: display})
	e.ExportArtifact()

	persisted, err := store.Get(ThemeKey)
	require.NoError(t, err)
	assert.Equal(t, "dark", persisted)
}

func TestPrintExportSkipsRestoreWhenUserToggledMeanwhile(t *testing.T) {
	display := &fakeDisplay{}
	c := NewThemeController(NewMemoryStore(), display, prefersLight, nil)
	require.NoError(t, c.Initialize())
	c.Set(ThemeDark)

	printer := &fakePrinter{display: display}
	printer.onPrint = func() {
		// User picks light while the print dialog is open. The later
		// restore must not clobber this choice back to dark.
		c.Set(ThemeLight)
	}
	e := newExporterForTest(c, printer)
	e.ExportArtifact()

	assert.Equal(t, ThemeLight, display.theme)
	cur, ok := c.Current()
	assert.True(t, ok)
	assert.Equal(t, ThemeLight, cur)
}

func TestPrintExportRapidInvocationsKeepStateConsistent(t *testing.T) {
	display := &fakeDisplay{}
	c := NewThemeController(NewMemoryStore(), display, prefersLight, nil)
	require.NoError(t, c.Initialize())
	c.Set(ThemeDark)

	printer := &fakePrinter{display: display}
	e := newExporterForTest(c, printer)
	for range 3 {
		e.ExportArtifact()
	}

	assert.Equal(t, []Theme{ThemeLight, ThemeLight, ThemeLight}, printer.seen)
	assert.Equal(t, ThemeDark, display.theme)
}

func TestPrintExporterWithoutPrinterDisables(t *testing.T) {
	c := NewThemeController(NewMemoryStore(), &fakeDisplay{}, prefersLight, nil)
	e := NewPrintExporter(c, nil)
	assert.ErrorIs(t, e.Initialize(), ErrMissingAnchor)
}
