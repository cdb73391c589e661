package staticfiles

import (
	"embed"
	"io/fs"
)

//go:embed css/* js/*
var embedded embed.FS

// EmbeddedFS serves the editor and tracker assets.
func EmbeddedFS() fs.FS {
	return embedded
}
