package assets

import (
	"embed"
	"io/fs"

	"github.com/benbjohnson/hashfs"
)

//go:embed public
var FS embed.FS

// HashFS serves the module stylesheets under content-hashed names so they can
// be cached aggressively.
var HashFS = hashfs.NewFS(mustSub(FS, "public"))

func mustSub(fsys fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic(err)
	}
	return sub
}
