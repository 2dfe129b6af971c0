package multifs

import (
	"io"
	"testing"
	"testing/fstest"

	"github.com/benbjohnson/hashfs"
	"github.com/stretchr/testify/require"
)

func TestMultiFS_OpenPrefersEarlierFS(t *testing.T) {
	first := hashfs.NewFS(fstest.MapFS{
		"css/app.css": {Data: []byte("first")},
	})
	second := hashfs.NewFS(fstest.MapFS{
		"css/app.css": {Data: []byte("second")},
		"js/app.js":   {Data: []byte("script")},
	})

	fsys := New(first, second)

	f, err := fsys.Open("/css/app.css")
	require.NoError(t, err)
	defer f.Close()
	content, err := io.ReadAll(f)
	require.NoError(t, err)
	require.Equal(t, "first", string(content))

	f2, err := fsys.Open("/js/app.js")
	require.NoError(t, err)
	defer f2.Close()
	content, err = io.ReadAll(f2)
	require.NoError(t, err)
	require.Equal(t, "script", string(content))
}

func TestMultiFS_OpenResolvesHashedNames(t *testing.T) {
	base := hashfs.NewFS(fstest.MapFS{
		"css/app.css": {Data: []byte("body{}")},
	})
	fsys := New(base)

	hashed := base.HashName("css/app.css")
	require.NotEqual(t, "css/app.css", hashed)

	f, err := fsys.Open("/" + hashed)
	require.NoError(t, err)
	defer f.Close()
	content, err := io.ReadAll(f)
	require.NoError(t, err)
	require.Equal(t, "body{}", string(content))
}

func TestMultiFS_OpenMissingFile(t *testing.T) {
	fsys := New(hashfs.NewFS(fstest.MapFS{}))

	_, err := fsys.Open("/missing.txt")
	require.Error(t, err)
}
