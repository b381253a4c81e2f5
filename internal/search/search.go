// Package search adapts language server results into aggregation input:
// definitions become definition symbols, reference results become raw
// candidates, and locations are classified by workspace origin.
package search

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"go.lsp.dev/protocol"
	"go.lsp.dev/uri"
	"golang.org/x/mod/module"

	"github.com/refspan/refspan/internal/usages"
	"github.com/refspan/refspan/internal/workspace"
	"github.com/refspan/refspan/pkg/types"
)

// Searcher runs symbol queries against a language server and a workspace
// snapshot.
type Searcher struct {
	client types.Client
	snap   *workspace.Snapshot
}

// NewSearcher creates a searcher over a client and a snapshot.
func NewSearcher(client types.Client, snap *workspace.Snapshot) *Searcher {
	return &Searcher{
		client: client,
		snap:   snap,
	}
}

// Snapshot returns the workspace snapshot queries are classified against.
func (s *Searcher) Snapshot() *workspace.Snapshot {
	return s.snap
}

// ReferencedSymbols resolves the symbol under the given position into
// definition symbols paired with raw reference candidates. When the
// position resolves to several distinct definitions, every definition
// shares the same candidate list; aggregation settles the ambiguity.
func (s *Searcher) ReferencedSymbols(ctx context.Context, u uri.URI, position protocol.Position) ([]usages.ReferencedSymbol, error) {
	defs, err := s.client.Definitions(ctx, u, position)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve definitions: %w", err)
	}
	if len(defs) == 0 {
		slog.Debug("No definitions under position", "uri", u, "line", position.Line)
		return nil, nil
	}

	refs, err := s.client.References(ctx, u, position, false)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve references: %w", err)
	}
	candidates := make([]usages.Location, len(refs))
	for i, ref := range refs {
		candidates[i] = s.classify(ref)
	}

	type identity struct {
		name      string
		kind      usages.SymbolKind
		container string
	}

	var symbols []usages.ReferencedSymbol
	seen := make(map[identity]*usages.Symbol)
	for _, def := range defs {
		sym, err := s.resolveSymbol(ctx, def)
		if err != nil {
			return nil, err
		}
		if sym == nil {
			slog.Debug("No enclosing symbol for definition", "uri", def.URI)
			continue
		}

		key := identity{name: sym.Name, kind: sym.Kind, container: sym.Container}
		if existing, ok := seen[key]; ok {
			// Another declaration of a symbol we already carry.
			existing.Declarations = append(existing.Declarations, s.classify(def))
			continue
		}

		sym.Declarations = []usages.Location{s.classify(def)}
		seen[key] = sym
		symbols = append(symbols, usages.ReferencedSymbol{Definition: sym, Locations: candidates})
	}

	slog.Debug("Resolved referenced symbols",
		"uri", u,
		"definitions", len(symbols),
		"candidates", len(candidates))
	return symbols, nil
}

// NamedSymbol is one workspace symbol matched by name.
type NamedSymbol struct {
	Name      string
	Kind      usages.SymbolKind
	Container string
	Location  usages.Location
}

// SymbolsByName matches workspace symbols against a query, best matches
// first. A non-positive limit means no limit.
func (s *Searcher) SymbolsByName(ctx context.Context, query string, limit int) ([]NamedSymbol, error) {
	infos, err := s.client.WorkspaceSymbols(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to search workspace symbols: %w", err)
	}

	names := make([]string, len(infos))
	for i, info := range infos {
		names[i] = info.Name
	}
	ranks := fuzzy.RankFindNormalizedFold(query, names)
	sort.Sort(ranks)

	matched := make([]NamedSymbol, 0, len(ranks))
	for _, rank := range ranks {
		if limit > 0 && len(matched) >= limit {
			break
		}
		info := infos[rank.OriginalIndex]
		matched = append(matched, NamedSymbol{
			Name:      info.Name,
			Kind:      KindOf(info.Kind),
			Container: info.ContainerName,
			Location:  s.classify(info.Location),
		})
	}

	slog.Debug("Matched workspace symbols", "query", query, "count", len(matched))
	return matched, nil
}

// resolveSymbol turns a definition location into a definition symbol using
// the symbol tree of the declaring document. A nil symbol (without error)
// means no symbol encloses the location.
func (s *Searcher) resolveSymbol(ctx context.Context, def protocol.Location) (*usages.Symbol, error) {
	tree, err := s.client.DocumentSymbols(ctx, def.URI)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve declaring document symbols: %w", err)
	}

	node, container, ok := enclosing(tree, def.Range.Start)
	if !ok {
		return nil, nil
	}

	deprecated := node.Deprecated || hasDeprecatedTag(node.Tags)
	if !deprecated {
		deprecated = s.deprecatedInDocs(ctx, def)
	}

	return &usages.Symbol{
		Name:        node.Name,
		Kind:        KindOf(node.Kind),
		Container:   container,
		Detail:      node.Detail,
		Origination: s.origination(def.URI),
		Deprecated:  deprecated,
	}, nil
}

// deprecatedInDocs reports whether the symbol's documentation marks it
// deprecated. The symbol tree rarely carries deprecation flags for Go, but
// the doc comment convention ("Deprecated: ...") surfaces in hover text.
func (s *Searcher) deprecatedInDocs(ctx context.Context, def protocol.Location) bool {
	docs, err := s.client.Hover(ctx, def.URI, def.Range.Start)
	if err != nil {
		slog.Debug("Skipping deprecation check, hover failed", "uri", def.URI, "error", err)
		return false
	}
	for _, line := range strings.Split(docs, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "Deprecated:") {
			return true
		}
	}
	return false
}

// enclosing finds the deepest symbol whose range contains pos, along with
// the name of its direct parent.
func enclosing(symbols []protocol.DocumentSymbol, pos protocol.Position) (protocol.DocumentSymbol, string, bool) {
	for _, sym := range symbols {
		if !containsPosition(sym.Range, pos) {
			continue
		}
		if node, parent, ok := enclosing(sym.Children, pos); ok {
			if parent == "" {
				parent = sym.Name
			}
			return node, parent, true
		}
		return sym, "", true
	}
	return protocol.DocumentSymbol{}, "", false
}

func containsPosition(r protocol.Range, pos protocol.Position) bool {
	if pos.Line < r.Start.Line || (pos.Line == r.Start.Line && pos.Character < r.Start.Character) {
		return false
	}
	if pos.Line > r.End.Line || (pos.Line == r.End.Line && pos.Character > r.End.Character) {
		return false
	}
	return true
}

func hasDeprecatedTag(tags []protocol.SymbolTag) bool {
	for _, tag := range tags {
		if tag == protocol.SymbolTagDeprecated {
			return true
		}
	}
	return false
}

// classify stamps a raw location with its workspace origin.
func (s *Searcher) classify(loc protocol.Location) usages.Location {
	origin := usages.OriginDependency
	if isFileURI(loc.URI) && s.snap.Contains(loc.URI.Filename()) {
		origin = usages.OriginSource
	}
	return usages.Location{Origin: origin, URI: loc.URI, Span: loc.Range}
}

// origination names where a file's symbols come from: the workspace module,
// a module@version out of the module cache, or the standard library.
func (s *Searcher) origination(u uri.URI) string {
	if !isFileURI(u) {
		return string(u)
	}
	filename := u.Filename()
	if s.snap.Contains(filename) {
		return s.snap.ModulePath()
	}
	if entry, ok := moduleCacheEntry(filename); ok {
		return entry
	}
	sep := string(filepath.Separator)
	if strings.Contains(filename, sep+"src"+sep) {
		return "std"
	}
	return filepath.Base(filepath.Dir(filename))
}

// moduleCacheEntry extracts "module@version" from a module cache path such
// as /home/u/go/pkg/mod/github.com/!masterminds/squirrel@v1.5.4/select.go,
// undoing the cache's case escaping.
func moduleCacheEntry(filename string) (string, bool) {
	sep := string(filepath.Separator)
	marker := sep + "pkg" + sep + "mod" + sep
	idx := strings.Index(filename, marker)
	if idx < 0 {
		return "", false
	}

	rest := filepath.ToSlash(filename[idx+len(marker):])
	segments := strings.Split(rest, "/")
	for i, segment := range segments {
		if !strings.Contains(segment, "@") {
			continue
		}
		joined := strings.Join(segments[:i+1], "/")
		escapedPath, escapedVersion, _ := strings.Cut(joined, "@")
		path, err := module.UnescapePath(escapedPath)
		if err != nil {
			path = escapedPath
		}
		version, err := module.UnescapeVersion(escapedVersion)
		if err != nil {
			version = escapedVersion
		}
		return path + "@" + version, true
	}
	return "", false
}

func isFileURI(u uri.URI) bool {
	return strings.HasPrefix(string(u), "file://")
}
