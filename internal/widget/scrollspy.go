package widget

import "strconv"

// SectionID identifies a page section. Nav links target sections by ID.
type SectionID string

// IntersectionConfig shapes the viewport-intersection signal. Margins are
// percentages of the viewport height; negative values shrink the observed
// band. The defaults bias toward early activation: a section counts as
// active once it scrolls into the upper-middle of the viewport.
type IntersectionConfig struct {
	TopMarginPercent    int
	BottomMarginPercent int
}

// DefaultIntersectionConfig returns the margins used by the CV page.
func DefaultIntersectionConfig() IntersectionConfig {
	return IntersectionConfig{TopMarginPercent: -20, BottomMarginPercent: -60}
}

// RootMargin renders the config in the CSS margin shorthand the platform
// intersection API expects ("-20% 0px -60% 0px").
func (c IntersectionConfig) RootMargin() string {
	return strconv.Itoa(c.TopMarginPercent) + "% 0px " + strconv.Itoa(c.BottomMarginPercent) + "% 0px"
}

// NavLink is a navigation entry targeting a section.
type NavLink struct {
	Target SectionID
	Label  string
}

// IntersectionChange is one entry of an intersection callback batch.
type IntersectionChange struct {
	Section      SectionID
	Intersecting bool
}

// ScrollSpyNavigator tracks which section is in view and mirrors it onto
// the navigation. At most one section is active at a time.
type ScrollSpyNavigator struct {
	cfg      IntersectionConfig
	links    []NavLink
	sections []SectionID
	active   SectionID
	enabled  bool
}

func NewScrollSpyNavigator(cfg IntersectionConfig) *ScrollSpyNavigator {
	return &ScrollSpyNavigator{cfg: cfg}
}

func (n *ScrollSpyNavigator) Name() string { return "scrollspy" }

// Initialize wires the navigator to its links and sections. A page with no
// nav or no sections leaves the navigator disabled; that is not an error.
func (n *ScrollSpyNavigator) Initialize(links []NavLink, sections []SectionID) {
	if len(links) == 0 || len(sections) == 0 {
		return
	}
	n.links = links
	n.sections = sections
	n.enabled = true
}

// Observe processes one intersection batch. Every section reported
// intersecting becomes the active section in turn, so when several fire in
// the same batch the last one wins. That ordering is an accepted property
// of the signal, not something the navigator tries to repair.
func (n *ScrollSpyNavigator) Observe(batch []IntersectionChange) {
	if !n.enabled {
		return
	}
	for _, ch := range batch {
		if ch.Intersecting {
			n.SetActive(ch.Section)
		}
	}
}

// SetActive marks exactly the nav entry targeting id as active. Idempotent:
// repeated calls with the same id do not change the result.
func (n *ScrollSpyNavigator) SetActive(id SectionID) {
	if !n.enabled {
		return
	}
	n.active = id
}

// Active returns the current active section, empty when none.
func (n *ScrollSpyNavigator) Active() SectionID {
	return n.active
}

// IsActive reports whether the nav link targeting id carries the active
// marker.
func (n *ScrollSpyNavigator) IsActive(id SectionID) bool {
	return n.enabled && n.active == id && n.hasLink(id)
}

// ActiveLinks returns the targets of all links currently marked active.
// The invariant is that this has at most one element.
func (n *ScrollSpyNavigator) ActiveLinks() []SectionID {
	if !n.enabled || n.active == "" || !n.hasLink(n.active) {
		return nil
	}
	return []SectionID{n.active}
}

func (n *ScrollSpyNavigator) hasLink(id SectionID) bool {
	for _, l := range n.links {
		if l.Target == id {
			return true
		}
	}
	return false
}
