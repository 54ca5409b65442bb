package widget

import "time"

// Printer is the platform print/export facility. Print blocks until the
// dialog returns or is dismissed.
type Printer interface {
	Print()
}

// DefaultPrintDelay is how long the exporter waits after forcing the light
// theme before taking the print snapshot, so the restyle has settled.
const DefaultPrintDelay = 100 * time.Millisecond

// PrintExporter produces a printed/exported artifact with consistent light
// styling regardless of the ambient theme. It snapshots the theme state
// before mutating and restores it afterwards; the capture/restore pair is
// scoped to each invocation, so overlapping calls do not share state.
type PrintExporter struct {
	theme   *ThemeController
	printer Printer
	delay   time.Duration
	sleep   func(time.Duration)
}

func NewPrintExporter(theme *ThemeController, printer Printer) *PrintExporter {
	return &PrintExporter{
		theme:   theme,
		printer: printer,
		delay:   DefaultPrintDelay,
		sleep:   time.Sleep,
	}
}

func (e *PrintExporter) Name() string { return "print" }

func (e *PrintExporter) Initialize() error {
	if e.theme == nil || e.printer == nil {
		return ErrMissingAnchor
	}
	return nil
}

// ExportArtifact forces the light theme, waits for the restyle, invokes the
// printer, and restores the prior state exactly — "no explicit preference"
// comes back as "no explicit preference", not as light. If the user changed
// the theme during the window, the restore is skipped and the user's newer
// choice stands.
func (e *PrintExporter) ExportArtifact() {
	if e.theme == nil || e.printer == nil {
		return
	}
	snap := e.theme.snapshot()
	e.theme.applyDisplayOnly(ThemeLight)
	e.sleep(e.delay)
	e.printer.Print()
	e.theme.restoreIfUnchanged(snap)
}
