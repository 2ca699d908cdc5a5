// Package template implements the two template primitives: a pure text
// renderer for the {{var}} / {{#if flag}} markup used by the template
// corpus, and a directory copier that materializes a template tree into a
// target directory, rendering an allow-listed subset of files.
package template

import "errors"

// Sentinel errors for template operations.
var (
	// ErrTemplateNotFound indicates a requested template path does not exist.
	ErrTemplateNotFound = errors.New("template: not found")

	// ErrPathTraversal indicates a template path would escape the target root.
	ErrPathTraversal = errors.New("template: path escapes target root")
)
