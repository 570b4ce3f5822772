package site

import (
	"embed"
	"io/fs"
)

//go:embed static/**
var staticFS embed.FS

// staticFiles returns the embedded shell rooted at static/.
func staticFiles() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		return staticFS
	}
	return sub
}
