// Package web embeds the storefront's stylesheet and script.
package web

import (
	"embed"
	"io/fs"
)

//go:embed static
var files embed.FS

// Static is rooted at the static directory.
func Static() fs.FS {
	sub, err := fs.Sub(files, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
