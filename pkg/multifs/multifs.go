// Package multifs merges several hashed asset filesystems into one
// http.FileSystem so modules can each ship their own static files.
package multifs

import (
	"io/fs"
	"net/http"

	"github.com/benbjohnson/hashfs"
)

type multiFS struct {
	fileSystems []fs.FS
}

// New combines the given filesystems. Open tries each in registration order
// and returns the first match, so earlier filesystems shadow later ones.
func New(fsInstances ...*hashfs.FS) http.FileSystem {
	fileSystems := make([]fs.FS, 0, len(fsInstances))
	for _, instance := range fsInstances {
		fileSystems = append(fileSystems, instance)
	}
	return http.FS(&multiFS{fileSystems: fileSystems})
}

func (m *multiFS) Open(name string) (fs.File, error) {
	for _, fsys := range m.fileSystems {
		if f, err := fsys.Open(name); err == nil {
			return f, nil
		}
	}
	return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
}
