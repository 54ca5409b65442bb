package ui

import (
	. "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

// page is the shared document shell. The theme init script runs inline in
// <head> so a persisted theme applies before first paint.
func page(title string, body ...Node) Node {
	return HTML(
		Lang("en"),
		Head(
			Meta(Charset("utf-8")),
			Meta(Name("viewport"), Content("width=device-width, initial-scale=1")),
			TitleEl(Text(title)),
			Link(Rel("icon"), Href("data:,")),
			Link(Rel("stylesheet"), Href("/static/app.css")),
			Script(Raw(themeInitScript)),
		),
		Body(Group(body)),
	)
}

func sectionHeading(text string) Node {
	return H2(Class("section-heading"), Text(text))
}

func cardClass(extra ...string) string {
	class := "card"
	for _, e := range extra {
		class += " " + e
	}
	return class
}

func mutedClass() string {
	return "muted"
}
