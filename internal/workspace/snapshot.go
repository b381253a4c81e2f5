// Package workspace pins a fixed view of the searched source tree.
// Documents are read lazily and cached per snapshot, so one aggregation
// pass always sees one consistent set of file contents.
package workspace

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.lsp.dev/uri"
	"golang.org/x/mod/modfile"
)

// Snapshot resolves file URIs inside a workspace root into documents.
type Snapshot struct {
	root string
	fsys fs.FS

	mu   sync.RWMutex
	docs map[uri.URI]*Document

	modOnce sync.Once
	module  string
}

// NewSnapshot pins the workspace rooted at the given absolute path.
func NewSnapshot(root string) *Snapshot {
	return NewSnapshotFS(root, os.DirFS(root))
}

// NewSnapshotFS pins a workspace served from an arbitrary file system,
// addressed as if it were rooted at root.
func NewSnapshotFS(root string, fsys fs.FS) *Snapshot {
	return &Snapshot{
		root: filepath.Clean(root),
		fsys: fsys,
		docs: make(map[uri.URI]*Document),
	}
}

// Root reports the absolute workspace root.
func (s *Snapshot) Root() string {
	return s.root
}

// Contains reports whether the absolute path lies inside the workspace
// root. The root itself does not count.
func (s *Snapshot) Contains(path string) bool {
	rel, err := filepath.Rel(s.root, filepath.Clean(path))
	if err != nil {
		return false
	}
	if rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return false
	}
	return true
}

// ResolveDocument resolves a file URI to its snapshot document. Resolution
// fails for URIs outside the workspace and for files that cannot be read.
// The first successful read is cached for the life of the snapshot.
func (s *Snapshot) ResolveDocument(u uri.URI) (*Document, bool) {
	s.mu.RLock()
	doc, ok := s.docs[u]
	s.mu.RUnlock()
	if ok {
		return doc, true
	}

	rel, ok := s.relPath(u)
	if !ok {
		return nil, false
	}
	content, err := fs.ReadFile(s.fsys, rel)
	if err != nil {
		return nil, false
	}
	doc = NewDocument(u, rel, content)

	s.mu.Lock()
	if cached, ok := s.docs[u]; ok {
		doc = cached
	} else {
		s.docs[u] = doc
	}
	s.mu.Unlock()
	return doc, true
}

// ModulePath reports the module path from the workspace go.mod, falling
// back to the root directory name when there is none.
func (s *Snapshot) ModulePath() string {
	s.modOnce.Do(func() {
		s.module = filepath.Base(s.root)
		data, err := fs.ReadFile(s.fsys, "go.mod")
		if err != nil {
			return
		}
		if path := modfile.ModulePath(data); path != "" {
			s.module = path
		}
	})
	return s.module
}

func (s *Snapshot) relPath(u uri.URI) (string, bool) {
	if !strings.HasPrefix(string(u), "file://") {
		return "", false
	}
	filename := filepath.Clean(u.Filename())
	rel, err := filepath.Rel(s.root, filename)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return filepath.ToSlash(rel), true
}
