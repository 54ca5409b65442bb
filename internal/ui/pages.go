package ui

import (
	"cvsite/internal/content"

	. "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

type cvSection struct {
	ID    string
	Label string
}

var cvSections = []cvSection{
	{ID: "about", Label: "About"},
	{ID: "experience", Label: "Experience"},
	{ID: "education", Label: "Education"},
	{ID: "skills", Label: "Skills"},
	{ID: "certificates", Label: "Certificates"},
}

// CVPage renders the full CV. Widget anchors (nav data attributes, section
// ids, the lightbox and the toggle buttons) are what the behavior script
// binds to; a page rendered without one of them simply loses that widget.
func CVPage(p *content.Profile) Node {
	nav := make([]Node, 0, len(cvSections))
	for _, s := range cvSections {
		nav = append(nav, A(
			Href("#"+s.ID),
			Attr("data-nav", s.ID),
			Text(s.Label),
		))
	}

	return page(p.Name+" — "+p.Title,
		Header(Class("site-header"),
			Div(Class("identity"),
				H1(Text(p.Name)),
				P(Class(mutedClass()), Text(p.Title)),
			),
			Div(Class("header-actions"),
				Button(ID("theme-toggle"), Class("icon-button"),
					Attr("aria-label", "Switch theme"), Text("◐")),
				Button(ID("print-button"), Class("icon-button"),
					Attr("aria-label", "Print or save as PDF"), Text("⎙")),
			),
		),
		Nav(Class("site-nav"), Group(nav)),
		Main(Class("cv-main"),
			aboutSection(p),
			experienceSection(p.Experience),
			educationSection(p.Education),
			skillsSection(p.Skills),
			certificatesSection(p.Certificates),
		),
		lightbox(),
		Footer(Class("site-footer"),
			P(Class(mutedClass()), Text(p.Location)),
		),
		Script(Raw(widgetBehaviorScript)),
	)
}

func aboutSection(p *content.Profile) Node {
	paras := make([]Node, 0, len(p.About))
	for _, text := range p.About {
		paras = append(paras, P(Text(text)))
	}

	links := make([]Node, 0, len(p.Links)+1)
	if p.Email != "" {
		links = append(links, A(Href("mailto:"+p.Email), Text(p.Email)))
	}
	for _, l := range p.Links {
		links = append(links, A(Href(l.URL), Target("_blank"), Rel("noopener"), Text(l.Label)))
	}

	return Section(ID("about"), Attr("data-section", ""),
		sectionHeading("About"),
		Group(paras),
		Div(Class("contact-links"), Group(links)),
	)
}

func experienceSection(entries []content.Experience) Node {
	items := make([]Node, 0, len(entries))
	for _, e := range entries {
		highlights := make([]Node, 0, len(e.Highlights))
		for _, h := range e.Highlights {
			highlights = append(highlights, Li(Text(h)))
		}
		items = append(items, Div(Class(cardClass()),
			H3(Text(e.Role)),
			P(Class(mutedClass()), Text(e.Company+" · "+e.Period)),
			Ul(Group(highlights)),
		))
	}
	return Section(ID("experience"), Attr("data-section", ""),
		sectionHeading("Experience"),
		Group(items),
	)
}

func educationSection(entries []content.Education) Node {
	items := make([]Node, 0, len(entries))
	for _, e := range entries {
		items = append(items, Div(Class(cardClass()),
			H3(Text(e.Degree)),
			P(Class(mutedClass()), Text(e.Institution+" · "+e.Period)),
		))
	}
	return Section(ID("education"), Attr("data-section", ""),
		sectionHeading("Education"),
		Group(items),
	)
}

func skillsSection(groups []content.SkillGroup) Node {
	items := make([]Node, 0, len(groups))
	for _, g := range groups {
		tags := make([]Node, 0, len(g.Items))
		for _, item := range g.Items {
			tags = append(tags, Span(Class("tag"), Text(item)))
		}
		items = append(items, Div(Class("skill-group"),
			H3(Text(g.Name)),
			Div(Class("tags"), Group(tags)),
		))
	}
	return Section(ID("skills"), Attr("data-section", ""),
		sectionHeading("Skills"),
		Group(items),
	)
}

func certificatesSection(certs []content.Certificate) Node {
	items := make([]Node, 0, len(certs))
	for _, c := range certs {
		items = append(items, Button(
			Class("cert-thumb"),
			Attr("data-lightbox-src", c.Source),
			Attr("data-lightbox-alt", c.Alt),
			Attr("data-lightbox-title", c.Title),
			Img(Src(c.Source), Alt(c.Alt), Attr("loading", "lazy")),
			Span(Class("cert-title"), Text(c.Title)),
		))
	}
	return Section(ID("certificates"), Attr("data-section", ""),
		sectionHeading("Certificates"),
		Div(Class("cert-grid"), Group(items)),
	)
}

// lightbox is the single modal the certificate gallery reuses. It starts
// closed; the behavior script owns its state.
func lightbox() Node {
	return Div(ID("lightbox"), Class("lightbox"), Attr("aria-hidden", "true"),
		Div(ID("lightbox-content"), Class("lightbox-content"),
			Button(ID("lightbox-close"), Class("icon-button"),
				Attr("aria-label", "Close"), Text("×")),
			Img(ID("lightbox-image"), Src(""), Alt("")),
			P(ID("lightbox-caption"), Class(mutedClass())),
		),
	)
}
