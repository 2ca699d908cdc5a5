// Package templates holds the embedded scaffolding trees, one directory per
// project type plus the shared monorepo base. Files ending in .tmpl go
// through variable substitution at copy time; everything else is verbatim.
package templates

import (
	"embed"
	"io/fs"
)

//go:embed all:nextjs all:expo all:tauri all:flutter all:monorepo
var content embed.FS

// FS returns the embedded template corpus.
func FS() fs.FS {
	return content
}
