package widget

// CertificateRef identifies the content a lightbox displays: an image
// source plus a display title. A ref with an empty Source is malformed and
// opening it is a no-op.
type CertificateRef struct {
	Source string
	Alt    string
	Title  string
}

// PageController is the lightbox's handle on the surrounding document:
// suspending scroll while the overlay is up and moving focus into it.
type PageController interface {
	SuspendScroll()
	ResumeScroll()
	FocusCloseControl()
}

// LightboxModal manages the certificate overlay lifecycle. The state
// machine has exactly two states: closed and open(ref). Opening while open
// replaces the displayed ref; multiple simultaneous modals are not a thing.
type LightboxModal struct {
	page    PageController
	open    bool
	current CertificateRef
}

func NewLightboxModal(page PageController) *LightboxModal {
	return &LightboxModal{page: page}
}

func (m *LightboxModal) Name() string { return "lightbox" }

// Initialize reports a missing page anchor; the modal carries no other
// startup state.
func (m *LightboxModal) Initialize() error {
	if m.page == nil {
		return ErrMissingAnchor
	}
	return nil
}

// Open shows ref in the modal. A ref without an image source leaves the
// state unchanged — still closed, or still showing the previous ref.
// On the closed→open transition scroll is suspended and focus moves to the
// close control.
func (m *LightboxModal) Open(ref CertificateRef) {
	if ref.Source == "" {
		return
	}
	wasOpen := m.open
	m.current = ref
	m.open = true
	if !wasOpen && m.page != nil {
		m.page.SuspendScroll()
	}
	if m.page != nil {
		m.page.FocusCloseControl()
	}
}

// Close hides the modal and restores page scroll. Safe to call when
// already closed.
func (m *LightboxModal) Close() {
	if !m.open {
		return
	}
	m.open = false
	m.current = CertificateRef{}
	if m.page != nil {
		m.page.ResumeScroll()
	}
}

// HandleEscape closes the modal on the cancel signal, but only while open.
func (m *LightboxModal) HandleEscape() {
	if m.open {
		m.Close()
	}
}

// HandleClick closes the modal when the click lands outside the content
// area (on the backdrop or the close control).
func (m *LightboxModal) HandleClick(insideContent bool) {
	if m.open && !insideContent {
		m.Close()
	}
}

// State returns the displayed ref and whether the modal is open.
func (m *LightboxModal) State() (CertificateRef, bool) {
	return m.current, m.open
}
