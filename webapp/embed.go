// Package webapp bundles the control-center frontend: a dashboard for
// backups and a blog reader/editor, all plain static pages talking to the
// REST API.
package webapp

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed static
var assets embed.FS

// Handler serves the embedded frontend assets.
func Handler() http.Handler {
	sub, err := fs.Sub(assets, "static")
	if err != nil {
		panic(err)
	}
	return http.FileServer(http.FS(sub))
}
