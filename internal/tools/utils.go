// Package tools implements the MCP tools served by refspan.
package tools

import (
	"path/filepath"
	"strings"

	"go.lsp.dev/uri"
)

// PathToURI converts a file path to a file URI. Relative paths are resolved
// against the workspace root.
func PathToURI(path string, workspaceRoot string) uri.URI {
	if strings.HasPrefix(path, "file://") {
		return uri.URI(path)
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(workspaceRoot, path)
	}
	return uri.File(path)
}

// URIToPath converts a file URI to a local file path
func URIToPath(u uri.URI) string {
	if strings.HasPrefix(string(u), "file://") {
		return u.Filename()
	}
	return string(u)
}

// RelativePath converts an absolute path to a path relative to the
// workspace root.
func RelativePath(absolutePath, workspaceRoot string) string {
	if rel, err := filepath.Rel(workspaceRoot, absolutePath); err == nil {
		return rel
	}
	return filepath.Base(absolutePath)
}
