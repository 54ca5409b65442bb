package widget

import (
	"errors"
	"log/slog"
)

// Theme is an explicit color-scheme choice.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Display applies a resolved theme to the rendered document. In the browser
// runtime this maps to the single data attribute on the document root; in
// tests it is a fake.
type Display interface {
	// ApplyTheme sets the explicit theme attribute.
	ApplyTheme(Theme)
	// ClearTheme removes the explicit attribute so the environment
	// color-scheme preference rules again.
	ClearTheme()
}

// themeSnapshot captures the controller state at a point in time, including
// the "no explicit preference" case. The generation counter lets a restore
// detect whether the user changed the theme in between.
type themeSnapshot struct {
	theme      Theme
	explicit   bool
	generation uint64
}

// ThemeController owns the light/dark theme state. It is the only writer of
// the display's theme attribute and of the persisted ThemeKey; PrintExporter
// goes through its snapshot/restore pair.
//
// Invariant: after Initialize, Toggle, or Set, the applied display state and
// the persisted value agree.
type ThemeController struct {
	store   *fallbackStore
	display Display
	envPref func() Theme

	current    Theme
	explicit   bool
	generation uint64
	log        *slog.Logger
}

// NewThemeController builds a controller over the given store and display.
// envPref reports the environment's preferred color scheme and is consulted
// only when no explicit state exists. A nil store degrades to in-memory
// state; a nil display disables the widget at Initialize.
func NewThemeController(store Store, display Display, envPref func() Theme, log *slog.Logger) *ThemeController {
	if envPref == nil {
		envPref = func() Theme { return ThemeLight }
	}
	if log == nil {
		log = slog.Default()
	}
	return &ThemeController{
		store:   newFallbackStore(store),
		display: display,
		envPref: envPref,
		log:     log.With("component", "theme"),
	}
}

func (c *ThemeController) Name() string { return "theme" }

// Initialize applies a previously persisted theme if one exists. When no
// value is stored it deliberately applies nothing, leaving the environment
// preference in force.
func (c *ThemeController) Initialize() error {
	if c.display == nil {
		return ErrMissingAnchor
	}
	v, err := c.store.Get(ThemeKey)
	if err != nil {
		if !errors.Is(err, ErrNoValue) {
			c.log.Debug("theme store unavailable", "error", err)
		}
		return nil
	}
	switch Theme(v) {
	case ThemeLight, ThemeDark:
		c.apply(Theme(v))
	default:
		c.log.Debug("ignoring invalid persisted theme", "value", v)
	}
	return nil
}

// Current returns the explicit theme and whether one is set.
func (c *ThemeController) Current() (Theme, bool) {
	return c.current, c.explicit
}

// Resolved returns the theme actually in effect: the explicit choice when
// set, otherwise the environment preference.
func (c *ThemeController) Resolved() Theme {
	if c.explicit {
		return c.current
	}
	return c.envPref()
}

// Toggle flips the theme. Dark becomes light, light becomes dark, and when
// no explicit state is set the result is the opposite of the environment
// preference. The result is applied and persisted.
func (c *ThemeController) Toggle() Theme {
	next := opposite(c.Resolved())
	c.apply(next)
	return next
}

// Set applies and persists an explicit theme.
func (c *ThemeController) Set(t Theme) {
	if t != ThemeLight && t != ThemeDark {
		return
	}
	c.apply(t)
}

func (c *ThemeController) apply(t Theme) {
	c.current = t
	c.explicit = true
	c.generation++
	if c.display != nil {
		c.display.ApplyTheme(t)
	}
	_ = c.store.Set(ThemeKey, string(t))
}

// snapshot captures the state PrintExporter must restore, including "unset".
func (c *ThemeController) snapshot() themeSnapshot {
	return themeSnapshot{theme: c.current, explicit: c.explicit, generation: c.generation}
}

// applyDisplayOnly changes the rendered theme without touching the persisted
// value or the explicit state. Used by PrintExporter for the export window.
func (c *ThemeController) applyDisplayOnly(t Theme) {
	if c.display != nil {
		c.display.ApplyTheme(t)
	}
}

// restoreIfUnchanged puts the display back to the snapshot's state unless
// the user changed the theme since the snapshot was taken, in which case the
// newer choice wins and the restore is skipped.
func (c *ThemeController) restoreIfUnchanged(s themeSnapshot) {
	if c.generation != s.generation {
		return
	}
	if c.display == nil {
		return
	}
	if s.explicit {
		c.display.ApplyTheme(s.theme)
		return
	}
	c.display.ClearTheme()
}

func opposite(t Theme) Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}
