package widget

import (
	"errors"
	"log/slog"
)

// ErrMissingAnchor is returned by a widget's Initialize when the DOM anchor
// it hangs off is absent. The registry treats this as "disable the widget",
// not as a page failure.
var ErrMissingAnchor = errors.New("widget: anchor element missing")

// Widget is anything the composition root can initialize. Widgets are
// independent: none may rely on another having initialized first.
type Widget interface {
	Name() string
	Initialize() error
}

// Func adapts a bare init function into a Widget.
func Func(name string, init func() error) Widget {
	return widgetFunc{name: name, init: init}
}

type widgetFunc struct {
	name string
	init func() error
}

func (w widgetFunc) Name() string      { return w.name }
func (w widgetFunc) Initialize() error { return w.init() }

// Registry is the composition root: it holds explicit widget instances and
// initializes them one by one. Each widget's failure is contained to that
// widget — a missing anchor or init error disables it and the rest carry on.
type Registry struct {
	log      *slog.Logger
	widgets  []Widget
	disabled map[string]bool
}

func NewRegistry(log *slog.Logger) *Registry {
	if log == nil {
		log = slog.Default()
	}
	return &Registry{
		log:      log.With("component", "widgets"),
		disabled: map[string]bool{},
	}
}

// Register adds widgets to the init list. Order carries no meaning.
func (r *Registry) Register(ws ...Widget) {
	r.widgets = append(r.widgets, ws...)
}

// InitializeAll initializes every registered widget. No error escapes: a
// widget that cannot initialize is marked disabled and logged.
func (r *Registry) InitializeAll() {
	for _, w := range r.widgets {
		if err := w.Initialize(); err != nil {
			r.disabled[w.Name()] = true
			if errors.Is(err, ErrMissingAnchor) {
				r.log.Debug("widget disabled, anchor missing", "widget", w.Name())
				continue
			}
			r.log.Warn("widget failed to initialize", "widget", w.Name(), "error", err)
		}
	}
}

// Enabled reports whether the named widget initialized successfully.
func (r *Registry) Enabled(name string) bool {
	for _, w := range r.widgets {
		if w.Name() == name {
			return !r.disabled[name]
		}
	}
	return false
}
