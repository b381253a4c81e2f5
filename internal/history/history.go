// Package history persists completed usage searches in a local SQLite
// database so that recent lookups can be listed without another round
// trip through gopls.
package history

import (
	"fmt"
	"path/filepath"
	"sort"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/lithammer/fuzzysearch/fuzzy"

	_ "embed"

	_ "modernc.org/sqlite"
)

//go:embed init.sql
var initScript string

// Search is one recorded find-usages run.
type Search struct {
	ID              int64  `db:"id"`
	CreatedAt       string `db:"created_at"`
	Anchor          string `db:"anchor"`
	SymbolName      string `db:"symbol_name"`
	SymbolKind      string `db:"symbol_kind"`
	DefinitionCount int    `db:"definition_count"`
	ReferenceCount  int    `db:"reference_count"`
	DurationMS      int64  `db:"duration_ms"`
}

// Store reads and writes the search history database.
type Store struct {
	db *sqlx.DB
}

// Open opens the history database at path, creating it if needed.
func Open(path string) (*Store, error) {
	if !filepath.IsAbs(path) {
		abs, err := filepath.Abs(path)
		if err != nil {
			return nil, err
		}
		path = abs
	}
	return setupStore(path)
}

// OpenInMemory opens a history database that lives only for the process.
func OpenInMemory() (*Store, error) {
	return setupStore(":memory:")
}

func setupStore(path string) (*Store, error) {
	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}
	if _, err := db.Exec(initScript); err != nil {
		return nil, fmt.Errorf("failed to initialize history database: %w", err)
	}
	return &Store{db: db}, nil
}

// Record appends one search to the history. An empty CreatedAt is filled
// with the current time.
func (s *Store) Record(search Search) error {
	if search.CreatedAt == "" {
		search.CreatedAt = time.Now().Format(time.RFC3339Nano)
	}

	_, err := s.db.NamedExec(`INSERT INTO usage_searches (
	created_at, anchor, symbol_name, symbol_kind,
	definition_count, reference_count, duration_ms
) VALUES (
	:created_at, :anchor, :symbol_name, :symbol_kind,
	:definition_count, :reference_count, :duration_ms
)`, &search)
	return err
}

// Recent returns up to limit searches, newest first. A non-empty
// symbolFilter narrows the result to fuzzy matches on the symbol name,
// closest match first.
func (s *Store) Recent(limit int, symbolFilter string) ([]Search, error) {
	query := sq.Select(
		"id", "created_at", "anchor", "symbol_name", "symbol_kind",
		"definition_count", "reference_count", "duration_ms",
	).From("usage_searches").OrderBy("id DESC")
	if symbolFilter == "" && limit > 0 {
		query = query.Limit(uint64(limit))
	}

	stmt, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build history query: %w", err)
	}

	searches := []Search{}
	if err := s.db.Select(&searches, stmt, args...); err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}

	if symbolFilter != "" {
		searches = rankBySymbol(searches, symbolFilter)
		if limit > 0 && len(searches) > limit {
			searches = searches[:limit]
		}
	}
	return searches, nil
}

// rankBySymbol keeps fuzzy matches on the symbol name, closest match
// first. Ties keep their newest-first order.
func rankBySymbol(searches []Search, filter string) []Search {
	names := make([]string, len(searches))
	for i, search := range searches {
		names[i] = search.SymbolName
	}

	ranks := fuzzy.RankFindNormalizedFold(filter, names)
	sort.SliceStable(ranks, func(i, j int) bool {
		return ranks[i].Distance < ranks[j].Distance
	})

	ranked := make([]Search, 0, len(ranks))
	for _, rank := range ranks {
		ranked = append(ranked, searches[rank.OriginalIndex])
	}
	return ranked
}

// Close releases the underlying database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
