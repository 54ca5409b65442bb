// Package assets embeds the static files served under /static: the site
// stylesheet and the certificate images.
package assets

import "embed"

//go:embed static
var staticFS embed.FS

func StaticFS() embed.FS {
	return staticFS
}
